package transport

import (
	"crypto/subtle"
	"net/http"

	"github.com/muhammadheryan/runhub-checkout/constant"
	"github.com/muhammadheryan/runhub-checkout/utils/errors"
	"github.com/muhammadheryan/runhub-checkout/utils/logger"
	"go.uber.org/zap"
)

// InternalMiddleware guards /internal routes with the static service API key.
// An empty key rejects every call.
func InternalMiddleware(apiKey string) func(http.Handler) http.Handler {
	expected := []byte("Bearer " + apiKey)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := []byte(r.Header.Get("Authorization"))
			if apiKey == "" || subtle.ConstantTimeCompare(got, expected) != 1 {
				logger.Warn("[InternalMiddleware] rejected internal call",
					zap.String("path", r.URL.Path),
					zap.String("caller", r.Header.Get("X-Internal-Service")))
				writeError(w, errors.SetCustomError(constant.ErrForbidden))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
