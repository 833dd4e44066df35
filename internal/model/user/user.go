// Package user defines the credential store record.
package user

import "time"

// User is a registered account. PasswordHash is a bcrypt digest and never
// leaves the process.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}
