// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User represents a customer account. Only the salted one-way password hash
// is ever stored; the plaintext never leaves the registration/login path.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// SavedBook links a user to a customized book they bookmarked for later.
type SavedBook struct {
	ID               uuid.UUID       `json:"id"`
	UserID           uuid.UUID       `json:"userId"`
	CustomizedBookID uuid.UUID       `json:"customizedBookId"`
	Book             *CustomizedBook `json:"book,omitempty"` // Populated on reads that join the book.
	CreatedAt        time.Time       `json:"createdAt"`
}
