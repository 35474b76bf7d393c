package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/renthome/renter-service/internal/platform/auth"
)

// contextKey avoids collisions with other packages' context values.
type contextKey string

const renterIDCtxKey = contextKey("renter_id")

// RenterIDFromContext returns the authenticated renter id set by JWTAuth.
func RenterIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(renterIDCtxKey).(string)
	return id, ok
}

// JWTAuth rejects requests without a valid bearer credential and stores the
// verified renter id on the request context.
func JWTAuth(authSvc *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token := strings.TrimPrefix(header, "Bearer ")
			if header == "" || token == header {
				writeJSONError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			renterID, err := authSvc.Verify(token)
			if err != nil {
				writeJSONError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), renterIDCtxKey, renterID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequestLogger logs every request with a generated request id.
func RequestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			requestID := uuid.NewString()
			w.Header().Set("X-Request-Id", requestID)

			next.ServeHTTP(w, r)

			logger.Info("request handled",
				zap.String("requestID", requestID),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Duration("duration", time.Since(start)))
		})
	}
}
