package auth

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"

	"ventas/internal/httpx"

	"go.uber.org/zap"
)

const APIKeyHeader = "X-Api-Key"

type subjectKey struct{}

// Subject returns the authenticated username stored by RequireBearer.
func Subject(ctx context.Context) (string, bool) {
	s, ok := ctx.Value(subjectKey{}).(string)
	return s, ok
}

type Middleware struct {
	tokens TokenValidator
	logger *zap.Logger
}

func NewMiddleware(tokens TokenValidator, logger *zap.Logger) *Middleware {
	return &Middleware{tokens: tokens, logger: logger}
}

// RequireBearer rejects requests without a valid bearer token before they
// reach the wrapped handler.
func (m *Middleware) RequireBearer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			httpx.WriteErrorResponse(w, r, m.logger, http.StatusUnauthorized, httpx.CodeUnauthenticated, "missing bearer token")
			return
		}

		subject, err := m.tokens.Validate(token)
		if err != nil {
			m.logger.Info("bearer token rejected",
				zap.String("traceId", httpx.TraceID(r.Context())),
				zap.Error(err),
			)
			httpx.WriteErrorResponse(w, r, m.logger, http.StatusUnauthorized, httpx.CodeUnauthenticated, "invalid or expired token")
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), subjectKey{}, subject)))
	})
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// RequireAPIKey gates a route behind a static shared secret sent in the
// X-Api-Key header. It is independent of the bearer scheme.
func RequireAPIKey(key string, logger *zap.Logger) func(http.Handler) http.Handler {
	expected := []byte(key)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := []byte(r.Header.Get(APIKeyHeader))
			if len(expected) == 0 || subtle.ConstantTimeCompare(got, expected) != 1 {
				httpx.WriteErrorResponse(w, r, logger, http.StatusUnauthorized, httpx.CodeUnauthenticated, "invalid API key")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
