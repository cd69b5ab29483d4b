package security

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baechuer/account-service/internal/domain"
)

func newIssuer(t *testing.T, secret string) *JWTIssuer {
	t.Helper()
	iss, err := NewJWTIssuer(JWTConfig{Secret: secret, Issuer: "account-service"})
	require.NoError(t, err)
	return iss
}

func TestNewJWTIssuer_RequiresSecret(t *testing.T) {
	t.Parallel()

	_, err := NewJWTIssuer(JWTConfig{})
	assert.Error(t, err)
}

func TestJWTIssuer_DefaultTTLIsOneHour(t *testing.T) {
	t.Parallel()

	iss := newIssuer(t, "secret")
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	iss.now = func() time.Time { return fixed }

	tok, err := iss.Issue("u1")
	require.NoError(t, err)
	assert.Equal(t, time.Hour, tok.ExpiresIn)
	assert.Equal(t, fixed.Add(time.Hour), tok.ExpiresAt)
}

func TestJWTIssuer_IssueAndVerify(t *testing.T) {
	t.Parallel()

	iss := newIssuer(t, "secret")
	tok, err := iss.Issue("u1")
	require.NoError(t, err)
	require.NotEmpty(t, tok.Value)

	claims, err := iss.Verify(tok.Value)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.Subject)
	assert.False(t, claims.ExpiresAt.IsZero())
	assert.False(t, claims.IssuedAt.IsZero())
}

func TestJWTIssuer_Verify_Expired(t *testing.T) {
	t.Parallel()

	iss := newIssuer(t, "secret")
	iss.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	tok, err := iss.Issue("u1")
	require.NoError(t, err)

	iss.now = time.Now
	_, err = iss.Verify(tok.Value)
	assert.True(t, domain.Is(err, "token_expired"), "got %v", err)
}

func TestJWTIssuer_Verify_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := newIssuer(t, "secret1").Issue("u1")
	require.NoError(t, err)

	_, err = newIssuer(t, "secret2").Verify(tok.Value)
	assert.True(t, domain.Is(err, "token_invalid"), "got %v", err)
}

func TestJWTIssuer_Verify_WrongIssuer(t *testing.T) {
	t.Parallel()

	other, err := NewJWTIssuer(JWTConfig{Secret: "secret", Issuer: "someone-else"})
	require.NoError(t, err)
	tok, err := other.Issue("u1")
	require.NoError(t, err)

	_, err = newIssuer(t, "secret").Verify(tok.Value)
	assert.True(t, domain.Is(err, "token_invalid"), "got %v", err)
}

func TestJWTIssuer_Verify_AlgNoneRejected(t *testing.T) {
	t.Parallel()

	claims := jwt.MapClaims{
		"sub": "u1",
		"iss": "account-service",
		"exp": time.Now().Add(time.Minute).Unix(),
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = newIssuer(t, "secret").Verify(unsigned)
	assert.True(t, domain.Is(err, "token_invalid"), "got %v", err)
}

func TestJWTIssuer_Verify_Garbage(t *testing.T) {
	t.Parallel()

	_, err := newIssuer(t, "secret").Verify("not.a.jwt")
	assert.True(t, domain.Is(err, "token_invalid"), "got %v", err)
}
