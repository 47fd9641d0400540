package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

var ErrMissingToken = errors.New("missing bearer token")

type contextKey string

const SubjectKey contextKey = "subject"

// RequireBearer rejects requests without a valid "Authorization: Bearer"
// token and stores the token subject in the request context.
func (s *Service) RequireBearer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		subject, err := s.authenticate(bearerToken(r))
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": err.Error()})
			return
		}
		next.ServeHTTP(w, r.WithContext(WithSubject(r.Context(), subject)))
	})
}

// QueryToken validates the "token" query parameter, used by websocket
// clients that cannot set headers.
func (s *Service) QueryToken(r *http.Request) (string, error) {
	return s.authenticate(r.URL.Query().Get("token"))
}

func (s *Service) authenticate(token string) (string, error) {
	if token == "" {
		return "", ErrMissingToken
	}
	subject, err := s.ValidateToken(token)
	if err != nil {
		return "", ErrInvalidToken
	}
	return subject, nil
}

func bearerToken(r *http.Request) string {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func WithSubject(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, SubjectKey, subject)
}

func SubjectFromContext(ctx context.Context) string {
	subject, _ := ctx.Value(SubjectKey).(string)
	return subject
}
