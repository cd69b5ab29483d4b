package dto

import (
	"github.com/baechuer/account-service/internal/application/account"
)

type RegisterRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	MobileNumber    string `json:"mobileNumber"`
	Gender          string `json:"gender"`
}

// Input leaves every field rule to the account service so the full per-field report is returned.
func (r RegisterRequest) Input() account.RegisterInput {
	return account.RegisterInput{
		Username:        r.Username,
		Email:           r.Email,
		Password:        r.Password,
		ConfirmPassword: r.ConfirmPassword,
		FirstName:       r.FirstName,
		LastName:        r.LastName,
		MobileNumber:    r.MobileNumber,
		Gender:          r.Gender,
	}
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type UpdateRequest struct {
	Email        string `json:"email" validate:"required"`
	Password     string `json:"password"`
	FirstName    string `json:"firstName" validate:"required"`
	LastName     string `json:"lastName" validate:"required"`
	MobileNumber string `json:"mobileNumber" validate:"required"`
	Gender       string `json:"gender" validate:"required"`
}

func (r UpdateRequest) Input() account.UpdateInput {
	return account.UpdateInput{
		Email:        r.Email,
		Password:     r.Password,
		FirstName:    r.FirstName,
		LastName:     r.LastName,
		MobileNumber: r.MobileNumber,
		Gender:       r.Gender,
	}
}
