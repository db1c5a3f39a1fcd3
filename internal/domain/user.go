package domain

import "time"

// User is the domain model for dealership accounts. The password is only
// ever held as a bcrypt hash.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
