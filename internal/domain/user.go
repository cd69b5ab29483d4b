package domain

import "time"

type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	MobileNumber string
	Gender       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Public returns a copy of u with the credential removed.
func (u User) Public() User {
	u.PasswordHash = ""
	return u
}
