package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Key to store the viewer identity in the request context
type key int

const viewerKey key = 0

// Auth validates identity-provider bearer tokens. The system never mints
// tokens itself; it only verifies the shared-key signature and extracts the
// opaque external user id from the subject claim.
type Auth struct {
	jwtKey []byte
}

func NewAuth(jwtKey string) *Auth {
	return &Auth{jwtKey: []byte(jwtKey)}
}

// NeedAuth returns middleware that requires an authenticated viewer
func (a *Auth) NeedAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			viewer, err := a.extractViewer(r)
			if err != nil {
				http.Error(w, "Please sign-in", http.StatusUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), viewerKey, viewer)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth populates the viewer if a valid token is present, but never rejects
func (a *Auth) OptionalAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if viewer, err := a.extractViewer(r); err == nil {
				ctx := context.WithValue(r.Context(), viewerKey, viewer)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (a *Auth) extractViewer(r *http.Request) (string, error) {
	tokenString, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !found || tokenString == "" {
		return "", errNoToken
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errInvalidClaims
		}
		return a.jwtKey, nil
	})
	if err != nil || !token.Valid {
		return "", errInvalidClaims
	}

	subject, err := token.Claims.GetSubject()
	if err != nil || subject == "" {
		return "", errInvalidClaims
	}
	return subject, nil
}

// GetViewerFromContext returns the authenticated viewer's external id, or ""
// for anonymous requests.
func GetViewerFromContext(r *http.Request) string {
	if viewer, ok := r.Context().Value(viewerKey).(string); ok {
		return viewer
	}
	return ""
}

var (
	errNoToken       = errorString("no token")
	errInvalidClaims = errorString("invalid claims")
)

type errorString string

func (e errorString) Error() string { return string(e) }
