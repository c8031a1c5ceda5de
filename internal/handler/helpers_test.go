package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
	svix "github.com/svix/svix-webhooks/go"

	"github.com/strand-dev/strand/internal/middleware"
)

const (
	testJwtKey        = "unit-test-jwt-key"
	testWebhookSecret = "whsec_MfKQ9r8GKYqrTwjUPD8ILPZIo2LaLaSw"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	wh, err := svix.NewWebhook(testWebhookSecret)
	require.NoError(t, err)
	return &Handler{
		thread:     &MockThreadService{},
		feed:       &MockFeedService{},
		engagement: &MockEngagementService{},
		user:       &MockUserService{},
		community:  &MockCommunityService{},
		webhook:    wh,
	}
}

// newTestRouter mirrors the real route table with the real auth middleware,
// minus rate limiting.
func newTestRouter(h *Handler) *mux.Router {
	auth := middleware.NewAuth(testJwtKey)
	r := mux.NewRouter()

	reads := r.PathPrefix("/v1").Subrouter()
	reads.Use(auth.OptionalAuth())
	reads.HandleFunc("/posts", h.GetFeed).Methods("GET")
	reads.HandleFunc("/threads/{thread}", h.GetThread).Methods("GET")
	reads.HandleFunc("/users/{user}", h.GetUser).Methods("GET")
	reads.HandleFunc("/users/{user}/threads", h.GetUserThreads).Methods("GET")
	reads.HandleFunc("/communities/{community}", h.GetCommunity).Methods("GET")
	reads.HandleFunc("/communities/{community}/threads", h.GetCommunityThreads).Methods("GET")

	writes := r.PathPrefix("/v1").Subrouter()
	writes.Use(auth.NeedAuth())
	writes.HandleFunc("/threads", h.CreateThread).Methods("POST")
	writes.HandleFunc("/threads/{thread}", h.DeleteThread).Methods("DELETE")
	writes.HandleFunc("/threads/{thread}/comments", h.CreateComment).Methods("POST")
	writes.HandleFunc("/threads/{thread}/like", h.ToggleLike).Methods("POST")
	writes.HandleFunc("/users/{user}", h.UpdateUser).Methods("PUT")

	r.HandleFunc("/v1/webhooks/identity", h.IdentityWebhook).Methods("POST")
	return r
}

func signToken(t *testing.T, subject string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString([]byte(testJwtKey))
	require.NoError(t, err)
	return signed
}

func authorize(t *testing.T, req *http.Request, subject string) {
	t.Helper()
	req.Header.Set("Authorization", "Bearer "+signToken(t, subject))
}
