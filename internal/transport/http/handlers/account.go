package http_handlers

import (
	"errors"
	"net/http"

	"github.com/baechuer/account-service/internal/application/account"
	"github.com/baechuer/account-service/internal/domain"
	"github.com/baechuer/account-service/internal/logger"
	"github.com/baechuer/account-service/internal/transport/http/dto"
	"github.com/baechuer/account-service/internal/transport/http/middleware"
	"github.com/baechuer/account-service/internal/transport/http/response"
	"github.com/baechuer/account-service/internal/userdata"
)

type AccountHandler struct {
	svc *account.Service
}

func NewAccountHandler(svc *account.Service) *AccountHandler {
	return &AccountHandler{svc: svc}
}

// Register handles POST /auth/register
func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := response.DecodeJSON(w, r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}

	u, err := h.svc.Register(r.Context(), req.Input())
	middleware.RegistrationsTotal.WithLabelValues(statusLabel(err)).Inc()
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info().
		Str("user_id", u.ID).
		Msg("user_registered")

	response.Created(w, dto.NewUserView(u))
}

// Login handles POST /auth/login
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := response.DecodeJSON(w, r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := dto.Validate(req); err != nil {
		response.WriteError(w, r, err)
		return
	}

	res, err := h.svc.Login(r.Context(), req.Email, req.Password)
	middleware.LoginAttemptsTotal.WithLabelValues(statusLabel(err)).Inc()
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, dto.NewLoginResponse(res))
}

// Validate handles POST /auth/validate: one {isValid, message} per field.
func (h *AccountHandler) Validate(w http.ResponseWriter, r *http.Request) {
	var rec userdata.Record
	if err := response.DecodeJSON(w, r, &rec); err != nil {
		response.WriteError(w, r, err)
		return
	}

	report, err := h.svc.CheckFields(rec)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, report)
}

// ValidateFull handles POST /auth/validate/full: the aggregate verdict for a whole record.
// An invalid record is still a 200; the verdict carries the messages.
func (h *AccountHandler) ValidateFull(w http.ResponseWriter, r *http.Request) {
	var rec userdata.Record
	if err := response.DecodeJSON(w, r, &rec); err != nil {
		response.WriteError(w, r, err)
		return
	}

	check, err := h.svc.ValidateRecord(rec)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.NewCheckResponse(check))
}

// Update handles POST /auth/update
func (h *AccountHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateRequest
	if err := response.DecodeJSON(w, r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := dto.Validate(req); err != nil {
		response.WriteError(w, r, err)
		return
	}

	u, err := h.svc.Update(r.Context(), req.Input())
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info().
		Str("user_id", u.ID).
		Msg("user_updated")

	response.OK(w, dto.NewUserView(u))
}

// Users handles GET /auth/users (bearer-gated).
func (h *AccountHandler) Users(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.List(r.Context())
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.NewUserViews(users))
}

func statusLabel(err error) string {
	if err == nil {
		return "success"
	}
	var de *domain.Error
	if errors.As(err, &de) {
		return de.Code
	}
	return "internal_error"
}
