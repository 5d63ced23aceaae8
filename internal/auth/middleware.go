package auth

import (
	"context"
	"net/http"
	"strings"

	"campusgate/internal/shared"
)

type contextKey string

const userContextKey contextKey = "campusgate_user"

func WithUser(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, userContextKey, u)
}

func UserFromContext(ctx context.Context) (*User, bool) {
	u, ok := ctx.Value(userContextKey).(*User)
	return u, ok
}

// Middleware is the authentication gate. It extracts and verifies the bearer
// token, resolves the account behind the identity claim with a single store
// lookup, and attaches the credential-stripped account to the request
// context. Every failure is terminal with a 401.
func Middleware(svc *Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token := ExtractToken(header)
			if token == "" {
				if strings.HasPrefix(header, "Basic ") {
					shared.RespondError(w, http.StatusUnauthorized, "invalid token format, authenticate again to get a bearer token")
				} else {
					shared.RespondError(w, http.StatusUnauthorized, "authentication required")
				}
				return
			}
			claims, err := svc.ParseToken(token)
			if err != nil || claims.UserID == "" {
				shared.RespondError(w, http.StatusUnauthorized, "invalid token")
				return
			}
			user, err := svc.store.GetByUserID(r.Context(), claims.UserID)
			if err != nil {
				shared.RespondError(w, http.StatusUnauthorized, "user not found")
				return
			}
			user.PasswordHash = ""
			ctx := WithUser(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin allows the request through only when the authenticated account
// holds the administrator role. Must run after Middleware.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			shared.RespondError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		if !user.IsAdministrator {
			shared.RespondError(w, http.StatusForbidden, "administrator privileges required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// CanAccess reports whether the authenticated account may act on the given
// resource owner: the owner itself or any administrator.
func CanAccess(u *User, ownerUserID string) bool {
	if u == nil {
		return false
	}
	return u.IsAdministrator || u.UserID == NormalizeUserID(ownerUserID)
}
