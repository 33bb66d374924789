package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Dan9191/salon-ops/internal/models"
)

type contextKey string

const usernameKey contextKey = "username"

// Authenticator verifies the credentials presented on a request.
type Authenticator interface {
	ValidateToken(token string) (string, error)
	Authenticate(creds models.Credentials) error
}

// Username returns the authenticated user stored by AuthMiddleware.
func Username(ctx context.Context) (string, bool) {
	user, ok := ctx.Value(usernameKey).(string)
	return user, ok && user != ""
}

// WithUsername returns a copy of ctx carrying the authenticated user.
func WithUsername(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, usernameKey, username)
}

// AuthMiddleware accepts either a bearer JWT or HTTP Basic credentials.
func AuthMiddleware(auth Authenticator, log *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username, ok := authenticate(auth, r)
			if !ok {
				log.WithFields(logrus.Fields{
					"method": r.Method,
					"path":   r.URL.Path,
				}).Warn("Unauthorized request")
				w.Header().Set("WWW-Authenticate", `Bearer, Basic realm="salon-ops"`)
				unauthorized(w)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUsername(r.Context(), username)))
		})
	}
}

func authenticate(auth Authenticator, r *http.Request) (string, bool) {
	if user, pass, ok := r.BasicAuth(); ok {
		creds := models.Credentials{Username: user, Password: pass}
		if err := auth.Authenticate(creds); err != nil {
			return "", false
		}
		return creds.Username, true
	}

	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", false
	}
	username, err := auth.ValidateToken(strings.TrimSpace(token))
	if err != nil {
		return "", false
	}
	return username, true
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  http.StatusUnauthorized,
		"message": "authentication required",
	})
}
