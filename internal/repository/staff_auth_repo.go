package repository

import (
	"database/sql"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"venuebook/internal/db"
)

type StaffAuthRepository interface {
	GetByEmail(email string) (*db.StaffAccount, error)
	CreateAccount(email, password, role string) error
}

type staffAuthRepository struct {
	db *sql.DB
}

func NewStaffAuthRepository(db *sql.DB) StaffAuthRepository {
	return &staffAuthRepository{db: db}
}

func (r *staffAuthRepository) GetByEmail(email string) (*db.StaffAccount, error) {
	var acct db.StaffAccount
	err := r.db.QueryRow("SELECT id, email, role, password_hash FROM staff_accounts WHERE email = $1", email).
		Scan(&acct.ID, &acct.Email, &acct.Role, &acct.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &acct, nil
}

func (r *staffAuthRepository) CreateAccount(email, password, role string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	query := "INSERT INTO staff_accounts (email, password_hash, role) VALUES ($1, $2, $3)"
	_, err = r.db.Exec(query, email, hashedPassword, role)
	if err != nil {
		return err
	}
	return nil
}
