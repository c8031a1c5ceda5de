package router

import (
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/strand-dev/strand/internal/middleware"
	"github.com/strand-dev/strand/internal/middleware/metrics"
	rl "github.com/strand-dev/strand/internal/middleware/ratelimiter"
	"github.com/strand-dev/strand/internal/setup"
)

// New creates and configures a new mux router with all the routes.
// IMPORTANT! ratelimiters set with .Use limit requests for all endpoints combined in that subrouter
func New(deps *setup.Dependencies) *mux.Router {
	r := mux.NewRouter()

	// Enable gzip compression for all responses
	r.Use(handlers.CompressHandler)

	// setup CORS for frontend
	r.Use(handlers.CORS(
		handlers.AllowedOrigins(deps.Config.Public.AllowedOrigins),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	))

	r.Use(middleware.RequestLog)
	r.Use(metrics.Middleware)

	// Add a wildcard OPTIONS handler to avoid 404s for preflight requests
	r.Methods("OPTIONS").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	h := deps.Handler
	auth := deps.Auth

	r.HandleFunc("/v1/health", h.Health).Methods("GET")
	r.HandleFunc("/v1/ready", h.Ready).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	v1 := r.PathPrefix("/v1").Subrouter()

	// Reads: auth optional, the viewer only personalizes like flags
	reads := v1.NewRoute().Subrouter()
	reads.Use(auth.OptionalAuth())
	reads.Use(middleware.RateLimit(rl.Rps100(), middleware.GetViewerIdentity))
	reads.HandleFunc("/posts", h.GetFeed).Methods("GET")
	reads.HandleFunc("/threads/{thread}", h.GetThread).Methods("GET")
	reads.HandleFunc("/users/{user}", h.GetUser).Methods("GET")
	reads.HandleFunc("/users/{user}/threads", h.GetUserThreads).Methods("GET")
	reads.HandleFunc("/communities/{community}", h.GetCommunity).Methods("GET")
	reads.HandleFunc("/communities/{community}/threads", h.GetCommunityThreads).Methods("GET")

	// Writes: auth required, tighter per-viewer limits
	writes := v1.NewRoute().Subrouter()
	writes.Use(auth.NeedAuth())
	writes.Use(middleware.RateLimit(rl.Rps10(), middleware.GetViewerIdentity))
	writes.HandleFunc("/threads", h.CreateThread).Methods("POST")
	writes.HandleFunc("/threads/{thread}", h.DeleteThread).Methods("DELETE")
	writes.HandleFunc("/threads/{thread}/comments", h.CreateComment).Methods("POST")
	writes.HandleFunc("/users/{user}", h.UpdateUser).Methods("PUT")

	// ToggleLike: cheap and idempotent, but still capped per viewer
	writes.Handle("/threads/{thread}/like",
		middleware.RateLimit(rl.New(1, 5, 1*time.Hour), middleware.GetViewerIdentity)(http.HandlerFunc(h.ToggleLike))).Methods("POST")

	// Webhooks: signature-verified, limited globally rather than per viewer
	webhooks := v1.NewRoute().Subrouter()
	webhooks.Use(middleware.GlobalRateLimit(rl.Rps100()))
	webhooks.HandleFunc("/webhooks/identity", h.IdentityWebhook).Methods("POST")

	return r
}
