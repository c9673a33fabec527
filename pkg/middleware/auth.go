package middleware

import (
	"net/http"

	"classifieds-market/pkg/utils"

	"go.uber.org/zap"
)

// APIKeyHeader carries the static key on privileged routes.
const APIKeyHeader = "access_token"

// APIKey rejects requests whose access_token header does not equal key.
// It guards operator-only reads and is not an authentication layer.
func APIKey(key string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get(APIKeyHeader)
			if key == "" || token != key {
				logger.Warn("API key rejected",
					zap.String("path", r.URL.Path),
					zap.String("ip", r.RemoteAddr),
				)
				utils.ResponseForbidden(w, "Could not validate credentials")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
