package entities

import (
	"time"

	"github.com/aarondl/null/v8"
)

// Profile - учетная запись пользователя системы.
type Profile struct {
	ID           string      `json:"id" db:"id"`
	Email        string      `json:"email" db:"email"`
	FullName     null.String `json:"full_name" db:"full_name"`
	Role         string      `json:"role" db:"role"`
	PasswordHash string      `json:"-" db:"password_hash"`
	CreatedAt    time.Time   `json:"created_at" db:"created_at"`
}
