package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"

	"venuebook/internal/api"
	"venuebook/internal/auth"
	"venuebook/internal/repository"
	"venuebook/internal/schedule"
	"venuebook/internal/service"
)

func main() {
	godotenv.Load()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL not set")
	}
	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}

	store := repository.NewReservationRepository(db)
	scheduler := schedule.NewService(store, service.NewFanoutNotifier())
	bookingSvc := service.NewBookingService(scheduler)
	adminSvc := service.NewAdminService(repository.NewAdminRepository(db))
	authSvc := service.NewStaffAuthService(repository.NewStaffAuthRepository(db))
	jobSvc := service.NewJobService(repository.NewJobRepository(db))

	reservationHandler := api.NewReservationHandler(bookingSvc)
	adminHandler := api.NewAdminHandler(adminSvc)
	authHandler := api.NewStaffAuthHandler(authSvc)

	c := cron.New()
	if _, err := c.AddFunc("@every 5m", func() {
		if err := jobSvc.RolloverReservationStatuses(); err != nil {
			log.Printf("Cron Job: rollover failed: %v", err)
		}
	}); err != nil {
		log.Fatalf("Failed to register rollover job: %v", err)
	}
	c.Start()
	defer c.Stop()

	r := mux.NewRouter()

	// Public endpoints
	r.HandleFunc("/api/auth/login", authHandler.Login).Methods("POST")

	// Staff endpoints (authenticated)
	staff := r.PathPrefix("/api").Subrouter()
	staff.Use(auth.StaffAuthMiddleware)
	staff.HandleFunc("/reservations", auth.RequireRole("principal", reservationHandler.CreateReservation)).Methods("POST")
	staff.HandleFunc("/reservations/{id}", auth.RequireRole("principal", reservationHandler.CancelReservation)).Methods("DELETE")
	staff.HandleFunc("/venues/{venue}/reservations", reservationHandler.ListVenueReservations).Methods("GET")

	// Admin endpoints (principal only)
	admin := r.PathPrefix("/admin").Subrouter()
	admin.Use(auth.StaffAuthMiddleware)
	admin.HandleFunc("/reservations", auth.RequireRole("principal", adminHandler.ListReservations)).Methods("GET")
	admin.HandleFunc("/staff", auth.RequireRole("principal", authHandler.CreateStaff)).Methods("POST")

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{os.Getenv("CORS_ALLOWED_ORIGIN")}),
		handlers.AllowedMethods([]string{"GET", "POST", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Authorization", "Content-Type"}),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server running on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, handlers.LoggingHandler(os.Stdout, cors(r))))
}
