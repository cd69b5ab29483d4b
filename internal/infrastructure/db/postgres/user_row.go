package postgres

import (
	"time"

	"github.com/baechuer/account-service/internal/domain"
)

type userRow struct {
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

func (ur userRow) toDomain() domain.User {
	return domain.User{
		ID:           ur.ID,
		Username:     ur.Username,
		Email:        ur.Email,
		PasswordHash: ur.PasswordHash,
		FirstName:    ur.FirstName,
		LastName:     ur.LastName,
		MobileNumber: ur.MobileNumber,
		Gender:       ur.Gender,
		CreatedAt:    ur.CreatedAt,
		UpdatedAt:    ur.UpdatedAt,
	}
}
