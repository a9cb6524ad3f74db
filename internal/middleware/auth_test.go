// AngelaMos | 2026
// auth_test.go

package middleware_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpke-dev/beatstore/internal/core"
	"github.com/mpke-dev/beatstore/internal/middleware"
)

type fakeVerifier struct {
	claims *middleware.AccessTokenClaims
	err    error
}

func (f fakeVerifier) VerifyAccessToken(
	ctx context.Context,
	token string,
) (*middleware.AccessTokenClaims, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.claims, nil
}

type fakeRoles struct {
	role string
	err  error
}

func (f fakeRoles) RoleForUser(
	ctx context.Context,
	userID int64,
) (string, error) {
	return f.role, f.err
}

func errorField(t *testing.T, body []byte) string {
	t.Helper()
	var payload map[string]string
	require.NoError(t, json.Unmarshal(body, &payload))
	return payload["error"]
}

func runAuth(
	t *testing.T,
	verifier middleware.TokenVerifier,
	roles middleware.RoleLookup,
	authHeader string,
) (*httptest.ResponseRecorder, *middleware.Identity) {
	t.Helper()

	var captured *middleware.Identity
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if identity, ok := middleware.GetIdentity(r.Context()); ok {
			captured = identity
		}
		w.WriteHeader(http.StatusOK)
	})

	handler := middleware.Authenticator(verifier, roles)(next)

	req := httptest.NewRequest(http.MethodGet, "/api/carts", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	return rec, captured
}

func TestAuthenticatorMissingToken(t *testing.T) {
	rec, _ := runAuth(t, fakeVerifier{}, fakeRoles{}, "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "no token provided", errorField(t, rec.Body.Bytes()))
}

func TestAuthenticatorInvalidToken(t *testing.T) {
	verifier := fakeVerifier{err: core.ErrTokenInvalid}

	rec, _ := runAuth(t, verifier, fakeRoles{}, "Bearer bad")

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAuthenticatorExpiredToken(t *testing.T) {
	verifier := fakeVerifier{err: core.ErrTokenExpired}

	rec, _ := runAuth(t, verifier, fakeRoles{}, "Bearer stale")

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

// A role lookup failure means the token was fine but the database was not;
// that must surface as a server error, never as an auth rejection.
func TestAuthenticatorRoleLookupFailure(t *testing.T) {
	verifier := fakeVerifier{
		claims: &middleware.AccessTokenClaims{UserID: 7},
	}
	roles := fakeRoles{err: errors.New("connection refused")}

	rec, _ := runAuth(t, verifier, roles, "Bearer good")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestAuthenticatorAttachesIdentity(t *testing.T) {
	verifier := fakeVerifier{
		claims: &middleware.AccessTokenClaims{
			UserID: 7,
			Email:  "mo@example.com",
			Name:   "Mo",
		},
	}
	roles := fakeRoles{role: "admin"}

	rec, identity := runAuth(t, verifier, roles, "Bearer good")

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, identity)
	assert.EqualValues(t, 7, identity.ID)
	assert.Equal(t, "mo@example.com", identity.Email)
	assert.Equal(t, "admin", identity.Role)
}

func TestOptionalAuthPassesAnonymously(t *testing.T) {
	var captured *middleware.Identity
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if identity, ok := middleware.GetIdentity(r.Context()); ok {
			captured = identity
		}
		w.WriteHeader(http.StatusOK)
	})

	handler := middleware.OptionalAuth(fakeVerifier{}, fakeRoles{})(next)

	req := httptest.NewRequest(http.MethodPost, "/api/beats/1/opinions", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, captured)
}

func TestRequireAdminRejectsUserRole(t *testing.T) {
	verifier := fakeVerifier{
		claims: &middleware.AccessTokenClaims{UserID: 7},
	}
	roles := fakeRoles{role: "user"}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := middleware.Authenticator(verifier, roles)(
		middleware.RequireAdmin(next),
	)

	req := httptest.NewRequest(http.MethodPost, "/api/upload-beat", nil)
	req.Header.Set("Authorization", "Bearer good")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
