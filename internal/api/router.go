package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth"
	"github.com/go-chi/render"

	"github.com/tendant/learning-tracks/internal/domain"
)

// RouterConfig holds everything the HTTP surface is assembled from
type RouterConfig struct {
	Contents       *ContentHandler
	Tracks         *TrackHandler
	Users          *UserHandler
	Auth           *jwtauth.JWTAuth
	RequestTimeout time.Duration
	// AllowCORS answers cross-origin requests from any origin, for local development
	AllowCORS bool
}

// NewRouter mounts the public and token-protected routes
func NewRouter(cfg RouterConfig) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	if cfg.RequestTimeout > 0 {
		r.Use(middleware.Timeout(cfg.RequestTimeout))
	}
	if cfg.AllowCORS {
		r.Use(allowAllOrigins)
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, map[string]string{"status": "ok"})
	})

	r.Mount("/users", cfg.Users.UserRoutes())
	r.Mount("/auth", cfg.Users.AuthRoutes())

	r.Group(func(r chi.Router) {
		r.Use(jwtauth.Verifier(cfg.Auth))
		r.Use(requireToken)

		r.Mount("/contents", cfg.Contents.Routes())
		r.Mount("/tracks", cfg.Tracks.Routes())
	})

	return r
}

// requireToken rejects requests whose bearer token is missing or failed
// verification, answering with the JSON error body.
func requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, _, err := jwtauth.FromContext(r.Context())
		if err != nil || token == nil {
			renderError(w, r, domain.ErrUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func allowAllOrigins(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
