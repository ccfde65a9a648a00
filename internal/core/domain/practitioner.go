package domain

import (
	"errors"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrPractitionerNotFound = errors.New("practitioner not found")
	ErrEmailAlreadyExists   = errors.New("email already exists")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrInvalidEmail         = errors.New("invalid email format")
	ErrPasswordTooShort     = errors.New("password must be at least 8 characters long")
	ErrNameEmpty            = errors.New("practitioner name cannot be empty")
)

type Practitioner struct {
	ID           string    `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	FullName     string    `json:"fullName" db:"full_name"`
	Profession   string    `json:"profession" db:"profession"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// PractitionerSummary is the slice of the practitioner the dashboard
// exposes.
type PractitionerSummary struct {
	ID         string `json:"id"`
	FullName   string `json:"fullName"`
	Profession string `json:"profession"`
}

func NewPractitioner(id, email, fullName, profession string) (*Practitioner, error) {
	email = strings.TrimSpace(email)
	if !isValidEmail(email) {
		return nil, ErrInvalidEmail
	}

	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return nil, ErrNameEmpty
	}

	now := time.Now().UTC()
	return &Practitioner{
		ID:         id,
		Email:      strings.ToLower(email),
		FullName:   fullName,
		Profession: strings.TrimSpace(profession),
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

func (p *Practitioner) SetPassword(plainPassword string) error {
	if utf8.RuneCountInString(plainPassword) < 8 {
		return ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(plainPassword), 12)
	if err != nil {
		return err
	}

	p.PasswordHash = string(hash)
	p.UpdatedAt = time.Now().UTC()
	return nil
}

func (p *Practitioner) CheckPassword(plainPassword string) error {
	return bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(plainPassword))
}

func (p *Practitioner) Summary() PractitionerSummary {
	return PractitionerSummary{
		ID:         p.ID,
		FullName:   p.FullName,
		Profession: p.Profession,
	}
}

func isValidEmail(email string) bool {
	_, err := mail.ParseAddress(email)
	return err == nil
}
