package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/napat-t/task-tracker-api/internal/auth"
)

const (
	testIssuer = "task-tracker-api"
	testSecret = "test-signing-secret"
)

func mintToken(t *testing.T, secret string, expiresIn time.Duration) string {
	t.Helper()

	now := time.Now()
	jwtAuth := auth.NewJWTAuthenticator(testIssuer, testIssuer)
	tokenStr, err := jwtAuth.GenerateToken(auth.SessionClaims{
		UserID:    "68b3f0a1c2d4e5f60718293a",
		UserEmail: "a@x.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    testIssuer,
			Audience:  jwt.ClaimStrings{testIssuer},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
		},
	}, secret)
	require.NoError(t, err)

	return tokenStr
}

func guardedEndpoint() (http.Handler, *auth.SessionClaims) {
	captured := &auth.SessionClaims{}

	jwtAuth := auth.NewJWTAuthenticator(testIssuer, testIssuer)
	guard := Authenticator(jwtAuth, testSecret)

	handler := guard(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if claims, ok := SessionFromContext(r.Context()); ok {
			*captured = *claims
		}
		w.WriteHeader(http.StatusOK)
	}))

	return handler, captured
}

func TestAuthenticator_ValidToken(t *testing.T) {
	handler, captured := guardedEndpoint()

	req := httptest.NewRequest(http.MethodGet, "/todos", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, testSecret, 24*time.Hour))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "68b3f0a1c2d4e5f60718293a", captured.UserID)
	assert.Equal(t, "a@x.com", captured.UserEmail)
}

func TestAuthenticator_MissingHeader(t *testing.T) {
	handler, _ := guardedEndpoint()

	req := httptest.NewRequest(http.MethodGet, "/todos", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticator_MalformedHeader(t *testing.T) {
	handler, _ := guardedEndpoint()

	req := httptest.NewRequest(http.MethodGet, "/todos", nil)
	req.Header.Set("Authorization", "Token abcdef")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticator_WrongSecret(t *testing.T) {
	handler, _ := guardedEndpoint()

	req := httptest.NewRequest(http.MethodGet, "/todos", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, "another-secret", 24*time.Hour))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticator_ExpiredToken(t *testing.T) {
	handler, _ := guardedEndpoint()

	req := httptest.NewRequest(http.MethodGet, "/todos", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, testSecret, -time.Minute))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
