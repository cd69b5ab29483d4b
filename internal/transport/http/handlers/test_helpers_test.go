package http_handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/baechuer/account-service/internal/application/account"
	"github.com/baechuer/account-service/internal/infrastructure/memory"
	"github.com/baechuer/account-service/internal/infrastructure/security"
	"github.com/baechuer/account-service/internal/transport/http/middleware"
	"github.com/baechuer/account-service/internal/transport/http/response"
)

type testEnv struct {
	router http.Handler
	store  *memory.UserStore
	svc    *account.Service
}

// newTestEnv wires the handlers over the in-memory store with real bcrypt and JWT.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := memory.NewUserStore()
	issuer, err := security.NewJWTIssuer(security.JWTConfig{Secret: "test-secret", Issuer: "test"})
	if err != nil {
		t.Fatalf("jwt issuer: %v", err)
	}
	svc := account.NewService(
		store,
		security.NewBcryptHasher(bcrypt.MinCost),
		issuer,
		memory.NewNoopPublisher(zerolog.Nop()),
		account.Config{},
	)
	h := NewAccountHandler(svc)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Post("/auth/register", h.Register)
	r.Post("/auth/login", h.Login)
	r.Post("/auth/validate", h.Validate)
	r.Post("/auth/validate/full", h.ValidateFull)
	r.Post("/auth/update", h.Update)
	r.With(middleware.Auth(svc, response.WriteError)).Get("/auth/users", h.Users)

	return &testEnv{router: r, store: store, svc: svc}
}

func mustJSONBody(t *testing.T, v any) io.Reader {
	t.Helper()
	if s, ok := v.(string); ok {
		return bytes.NewBufferString(s)
	}
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("json marshal: %v", err)
	}
	return bytes.NewReader(b)
}

func (e *testEnv) do(t *testing.T, method, path string, body any, header ...string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		rd = mustJSONBody(t, body)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

// mustReadData decodes the {"data": ...} envelope into out.
func mustReadData(t *testing.T, rr *httptest.ResponseRecorder, out any) {
	t.Helper()
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil || len(env.Data) == 0 {
		t.Fatalf("decode envelope failed; body=%s", rr.Body.String())
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		t.Fatalf("decode data failed; body=%s err=%v", rr.Body.String(), err)
	}
}

func mustReadError(t *testing.T, rr *httptest.ResponseRecorder) response.ErrorPayload {
	t.Helper()
	var body response.ErrorBody
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body failed; body=%s", rr.Body.String())
	}
	return body.Error
}

func registerBody() map[string]string {
	return map[string]string{
		"username":        "Hazem_H",
		"email":           "Hazem@Example.com",
		"password":        "Passw0rd!",
		"confirmPassword": "Passw0rd!",
		"firstName":       "hazem",
		"lastName":        "HASSAN",
		"mobileNumber":    "+201234567890",
		"gender":          "Male",
	}
}
