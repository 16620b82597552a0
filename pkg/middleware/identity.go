package middleware

import (
	"net/http"

	"venue-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// userIDHeader is set by the upstream identity provider after it has
// authenticated the session. Identity itself is outside this service.
const userIDHeader = "X-User-ID"

// Identity extracts the acting user from the identity provider's header and
// puts it on the request context. Requests without a valid user id are
// rejected before reaching protected handlers.
func Identity(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get(userIDHeader)
			if raw == "" {
				utils.ResponseUnauthorized(w, "Missing user identity")
				return
			}

			userID, err := uuid.Parse(raw)
			if err != nil {
				logger.Warn("Malformed user identity header",
					zap.String("path", r.URL.Path))
				utils.ResponseUnauthorized(w, "Invalid user identity")
				return
			}

			ctx := utils.SetUserContext(r.Context(), userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
