package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/walink/walink/internal/models"
)

// APIKeyHeader is the shared-secret header checked on protected routes.
const APIKeyHeader = "x-api-key"

const unauthorizedMessage = "Unauthorized: Invalid or missing API Key."

// APIKey rejects requests whose shared-secret header does not match the
// configured value. The comparison is constant-time; the response body is
// part of the API contract.
func APIKey(key string, logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			supplied := r.Header.Get(APIKeyHeader)

			if supplied == "" || subtle.ConstantTimeCompare([]byte(supplied), []byte(key)) != 1 {
				logger.Warn("Request rejected: invalid or missing API key",
					zap.String("path", r.URL.Path),
					zap.String("remote_addr", r.RemoteAddr))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, models.SendResponse{
					Success: false,
					Message: unauthorizedMessage,
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
