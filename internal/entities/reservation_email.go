package entities

type ReservationEmailData struct {
	RecipientName      string
	Title              string
	Venue              string
	ReservationID      string
	StartTimeFormatted string
	EndTimeFormatted   string
	CurrentYear        int
	Status             string
}
