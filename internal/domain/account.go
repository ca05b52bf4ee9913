package domain

import (
	"time"

	"github.com/google/uuid"
)

// Account is a person who can sign in: a citizen submitting reports or a
// member of the traffic authority reviewing them.
type Account struct {
	ID           uuid.UUID
	Email        string
	Name         string
	PasswordHash string
	Role         AccountRole
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
