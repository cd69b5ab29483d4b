package dto

import (
	"time"

	"github.com/baechuer/account-service/internal/application/account"
	"github.com/baechuer/account-service/internal/domain"
	"github.com/baechuer/account-service/internal/userdata"
)

// UserView is the public shape of an account. It never carries the password hash.
type UserView struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Initials     string    `json:"initials"`
	MobileNumber string    `json:"mobileNumber"`
	Gender       string    `json:"gender"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func NewUserView(u domain.User) UserView {
	return UserView{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Initials:     userdata.UserInitials(u.FirstName, u.LastName),
		MobileNumber: u.MobileNumber,
		Gender:       u.Gender,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func NewUserViews(users []domain.User) []UserView {
	out := make([]UserView, 0, len(users))
	for _, u := range users {
		out = append(out, NewUserView(u))
	}
	return out
}

type LoginResponse struct {
	Token     string   `json:"token"`
	TokenType string   `json:"token_type"`
	ExpiresIn int64    `json:"expires_in"` // seconds
	User      UserView `json:"user"`
}

func NewLoginResponse(res account.LoginResult) LoginResponse {
	return LoginResponse{
		Token:     res.Token.Value,
		TokenType: "Bearer",
		ExpiresIn: int64(res.Token.ExpiresIn.Seconds()),
		User:      NewUserView(res.User),
	}
}

// CheckResponse is the full-record validation result: the verdict plus, when valid,
// the canonical record without credentials.
type CheckResponse struct {
	IsValid    bool                `json:"isValid"`
	Errors     map[string][]string `json:"errors"`
	Normalized userdata.Record     `json:"normalized,omitempty"`
}

func NewCheckResponse(c account.RecordCheck) CheckResponse {
	return CheckResponse{
		IsValid:    c.Verdict.IsValid,
		Errors:     c.Verdict.Errors,
		Normalized: c.Normalized,
	}
}
