// AngelaMos | 2026
// auth.go

package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/mpke-dev/beatstore/internal/core"
)

type contextKey string

const identityKey contextKey = "identity"

// Identity is the authenticated caller attached to the request context:
// the verified token claims plus the role loaded from the database.
type Identity struct {
	ID    int64
	Email string
	Name  string
	Role  string
}

type AccessTokenClaims struct {
	UserID int64
	Email  string
	Name   string
}

type TokenVerifier interface {
	VerifyAccessToken(
		ctx context.Context,
		token string,
	) (*AccessTokenClaims, error)
}

// RoleLookup resolves the caller's role through the user_roles join table.
// A lookup failure is a server error, never a token error.
type RoleLookup interface {
	RoleForUser(ctx context.Context, userID int64) (string, error)
}

func Authenticator(
	verifier TokenVerifier,
	roles RoleLookup,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ExtractToken(r)

			if token == "" {
				core.JSONError(
					w,
					core.UnauthorizedError("no token provided"),
				)
				return
			}

			identity, err := resolveIdentity(r.Context(), verifier, roles, token)
			if err != nil {
				handleAuthError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth attaches an identity when a valid token is present and
// passes the request through anonymously otherwise.
func OptionalAuth(
	verifier TokenVerifier,
	roles RoleLookup,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ExtractToken(r)

			if token != "" {
				identity, err := resolveIdentity(
					r.Context(),
					verifier,
					roles,
					token,
				)
				if err == nil {
					ctx := context.WithValue(
						r.Context(),
						identityKey,
						identity,
					)
					r = r.WithContext(ctx)
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

func resolveIdentity(
	ctx context.Context,
	verifier TokenVerifier,
	roles RoleLookup,
	token string,
) (*Identity, error) {
	claims, err := verifier.VerifyAccessToken(ctx, token)
	if err != nil {
		return nil, err
	}

	role, err := roles.RoleForUser(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}

	return &Identity{
		ID:    claims.UserID,
		Email: claims.Email,
		Name:  claims.Name,
		Role:  role,
	}, nil
}

func RequireRole(roles ...string) func(http.Handler) http.Handler {
	roleSet := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		roleSet[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := GetIdentity(r.Context())

			if !ok {
				core.JSONError(
					w,
					core.UnauthorizedError("authentication required"),
				)
				return
			}

			if _, ok := roleSet[identity.Role]; !ok {
				core.JSONError(
					w,
					core.ForbiddenError("insufficient permissions"),
				)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func RequireAdmin(next http.Handler) http.Handler {
	return RequireRole("admin")(next)
}

func ExtractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}

func handleAuthError(w http.ResponseWriter, err error) {
	if core.IsAppError(err) {
		core.JSONError(w, err)
		return
	}

	switch {
	case errors.Is(err, core.ErrTokenExpired):
		core.JSONError(w, core.TokenExpiredError())
	case errors.Is(err, core.ErrTokenInvalid):
		core.JSONError(w, core.TokenInvalidError())
	default:
		// Role lookup or other infrastructure failure.
		core.InternalServerError(w, err)
	}
}

func GetIdentity(ctx context.Context) (*Identity, bool) {
	identity, ok := ctx.Value(identityKey).(*Identity)
	return identity, ok
}

func GetUserID(ctx context.Context) (int64, bool) {
	identity, ok := GetIdentity(ctx)
	if !ok {
		return 0, false
	}
	return identity.ID, true
}

func GetUserRole(ctx context.Context) string {
	if identity, ok := GetIdentity(ctx); ok {
		return identity.Role
	}
	return ""
}

func IsAuthenticated(ctx context.Context) bool {
	_, ok := GetIdentity(ctx)
	return ok
}

func IsAdmin(ctx context.Context) bool {
	return GetUserRole(ctx) == "admin"
}
