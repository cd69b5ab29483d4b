package account

import (
	"context"
	"time"

	"github.com/baechuer/account-service/internal/domain"
	appCtx "github.com/baechuer/account-service/internal/pkg/context"
	"github.com/baechuer/account-service/internal/userdata"
)

type Service struct {
	users  UserStore
	hasher PasswordHasher
	tokens TokenIssuer
	pub    EventPublisher

	registerPolicy userdata.FieldValidationPolicy
	validatePolicy userdata.FieldValidationPolicy

	audit func(action string, fields map[string]string)
	now   func() time.Time
}

// Config selects the validation policies. RegisterPolicy governs everything that is
// persisted (register, update, full-record validation); ValidatePolicy governs the
// quick per-field check. Nil fields fall back to strict and lenient respectively.
type Config struct {
	RegisterPolicy userdata.FieldValidationPolicy
	ValidatePolicy userdata.FieldValidationPolicy
}

func NewService(
	users UserStore,
	hasher PasswordHasher,
	tokens TokenIssuer,
	pub EventPublisher,
	cfg Config,
) *Service {
	registerPolicy := cfg.RegisterPolicy
	if registerPolicy == nil {
		registerPolicy = userdata.NewStrictPolicy()
	}
	validatePolicy := cfg.ValidatePolicy
	if validatePolicy == nil {
		validatePolicy = userdata.NewLenientPolicy()
	}
	return &Service{
		users:          users,
		hasher:         hasher,
		tokens:         tokens,
		pub:            pub,
		registerPolicy: registerPolicy,
		validatePolicy: validatePolicy,
		audit:          func(string, map[string]string) {},
		now:            time.Now,
	}
}

type RegisterInput struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
	FirstName       string
	LastName        string
	MobileNumber    string
	Gender          string
}

// Record returns the input keyed by wire field names, for the policy checks.
func (in RegisterInput) Record() userdata.Record {
	return userdata.Record{
		userdata.FieldUsername:        in.Username,
		userdata.FieldEmail:           in.Email,
		userdata.FieldPassword:        in.Password,
		userdata.FieldConfirmPassword: in.ConfirmPassword,
		userdata.FieldFirstName:       in.FirstName,
		userdata.FieldLastName:        in.LastName,
		userdata.FieldMobileNumber:    in.MobileNumber,
		userdata.FieldGender:          in.Gender,
	}
}

type UpdateInput struct {
	Email        string
	Password     string // optional
	FirstName    string
	LastName     string
	MobileNumber string
	Gender       string
}

func (in UpdateInput) Record() userdata.Record {
	return userdata.Record{
		userdata.FieldEmail:        in.Email,
		userdata.FieldPassword:     in.Password,
		userdata.FieldFirstName:    in.FirstName,
		userdata.FieldLastName:     in.LastName,
		userdata.FieldMobileNumber: in.MobileNumber,
		userdata.FieldGender:       in.Gender,
	}
}

type LoginResult struct {
	User  domain.User
	Token Token
}

func (s *Service) WithAudit(fn func(action string, fields map[string]string)) *Service {
	if fn != nil {
		s.audit = fn
	}
	return s
}

// RegisterPolicy reports the policy applied to persisted data.
func (s *Service) RegisterPolicy() userdata.FieldValidationPolicy { return s.registerPolicy }

// ValidatePolicy reports the policy applied by the quick field check.
func (s *Service) ValidatePolicy() userdata.FieldValidationPolicy { return s.validatePolicy }

func (s *Service) record(ctx context.Context, action string, err error, fields map[string]string) {
	if fields == nil {
		fields = map[string]string{}
	}
	if rid := appCtx.GetRequestID(ctx); rid != "" {
		fields["request_id"] = rid
	}
	if err != nil {
		fields["result"] = "error"
		fields["error_code"] = domainCode(err)
	} else {
		fields["result"] = "success"
	}
	s.audit(action, fields)
}
