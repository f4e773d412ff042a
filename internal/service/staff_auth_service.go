package service

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"venuebook/internal/repository"
)

type StaffAuthService interface {
	Login(email, password string) (string, error)
	CreateStaff(email, password, role string) error
}

type staffAuthService struct {
	repo repository.StaffAuthRepository
}

func NewStaffAuthService(repo repository.StaffAuthRepository) StaffAuthService {
	return &staffAuthService{repo: repo}
}

func (s *staffAuthService) Login(email, password string) (string, error) {
	acct, err := s.repo.GetByEmail(email)
	if err != nil {
		return "", err
	}
	if acct == nil {
		return "", errors.New("invalid credentials")
	}

	err = bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(password))
	if err != nil {
		return "", errors.New("invalid credentials")
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return "", errors.New("JWT_SECRET not set")
	}

	claims := jwt.MapClaims{
		"staff_id": acct.ID,
		"email":    acct.Email,
		"role":     acct.Role,
		"exp":      time.Now().Add(time.Hour * 8).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func (s *staffAuthService) CreateStaff(email, password, role string) error {
	if email == "" || password == "" {
		return errors.New("email and password cannot be empty")
	}
	if role == "" {
		role = "staff"
	}
	return s.repo.CreateAccount(email, password, role)
}
