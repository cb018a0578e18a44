package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mintMockClerkJWT builds a structurally valid token that no Clerk instance
// signed, so verification must fail.
func mintMockClerkJWT(t *testing.T, clerkID string) string {
	t.Helper()

	claims := jwt.MapClaims{
		"sub": clerkID,
		"iss": "https://clerk.test",
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(time.Hour).Unix(),
		"sid": "sess_test123",
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-secret-key-for-testing-only"))
	require.NoError(t, err)
	return signed
}

func protectedProbe() (http.Handler, *bool) {
	reached := false
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		w.WriteHeader(http.StatusOK)
	})
	return ClerkAuthMiddleware(inner), &reached
}

func TestAuthRejectsMissingHeader(t *testing.T) {
	handler, reached := protectedProbe()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/user/profile", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, *reached)
	assert.JSONEq(t, `{"success": false, "error": "Authorization header required"}`, rec.Body.String())
}

func TestAuthRejectsNonBearerHeader(t *testing.T) {
	handler, reached := protectedProbe()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/user/profile", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, *reached)
}

func TestAuthRejectsUnverifiableToken(t *testing.T) {
	handler, reached := protectedProbe()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/user/profile", nil)
	req.Header.Set("Authorization", "Bearer "+mintMockClerkJWT(t, "clerk_user_123"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, *reached)
}

func TestGetClerkIDRoundTrip(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := GetClerkID(req.Context())
	assert.False(t, ok)
}
