package httpserver

import (
	"net/http"
	"time"

	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/unrolled/secure"

	"campusgate/internal/auth"
	"campusgate/internal/config"
	"campusgate/internal/degreecourses"
	"campusgate/internal/shared"
	"campusgate/internal/students"
	"campusgate/internal/users"
)

func NewRouter(
	logger *slog.Logger,
	cfg *config.Config,
	authSvc *auth.Service,
	userHandler *users.Handler,
	courseHandler *degreecourses.Handler,
	studentHandler *students.Handler,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(secureHeaders(cfg, logger))
	r.Use(withCORS)

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		shared.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		// Open surface: credential exchange and self-service flows, rate
		// limited by client IP.
		r.Group(func(r chi.Router) {
			r.Use(httprate.Limit(30, time.Minute, httprate.WithKeyFuncs(httprate.KeyByIP)))
			r.Get("/authenticate", authenticateHandler(authSvc, logger))
			r.Post("/register", userHandler.Register)
			r.Post("/students", studentHandler.Create)
		})

		// Everything else sits behind the token gate.
		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(authSvc))
			userHandler.MountRoutes(r)
			courseHandler.MountRoutes(r)
			studentHandler.MountRoutes(r)
		})
	})

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		shared.RespondError(w, http.StatusNotFound, "path doesn't exist")
	})

	return r
}

func secureHeaders(cfg *config.Config, logger *slog.Logger) func(http.Handler) http.Handler {
	sec := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
		SSLRedirect:        cfg.IsProduction(),
		SSLProxyHeaders:    map[string]string{"X-Forwarded-Proto": "https"},
	})
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := sec.Process(w, r); err != nil {
				logger.Warn("secure headers blocked request", "err", err)
				shared.RespondError(w, http.StatusInternalServerError, "request blocked")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// withCORS allows browser frontends on other origins to reach the API. The
// Authorization response header is exposed because the authenticate endpoint
// returns the token there.
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Origin, X-Requested-With, Content-Type, Accept, Authorization")
		w.Header().Set("Access-Control-Expose-Headers", "Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
