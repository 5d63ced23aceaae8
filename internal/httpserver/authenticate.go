package httpserver

import (
	"net/http"

	"log/slog"

	"campusgate/internal/auth"
	"campusgate/internal/shared"
)

// authenticateHandler exchanges Basic credentials for a bearer token. The
// token travels in the Authorization response header; the body is the
// sanitized profile. All failures are a generic 401 so the response never
// reveals whether the identity exists.
func authenticateHandler(svc *auth.Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, password, ok := r.BasicAuth()
		if !ok {
			w.Header().Set("WWW-Authenticate", "Basic")
			shared.RespondError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		user, token, err := svc.Authenticate(r.Context(), userID, password)
		if err != nil {
			w.Header().Set("WWW-Authenticate", "Basic")
			shared.RespondError(w, http.StatusUnauthorized, "authentication failed")
			return
		}
		logger.Info("user authenticated", "userID", user.UserID)
		w.Header().Set("Authorization", "Bearer "+token)
		shared.RespondJSON(w, http.StatusOK, user.Public())
	}
}
