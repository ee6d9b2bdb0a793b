package transport

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
	"github.com/muhammadheryan/runhub-checkout/constant"
	utilsContext "github.com/muhammadheryan/runhub-checkout/utils/context"
	"github.com/muhammadheryan/runhub-checkout/utils/errors"
	"github.com/muhammadheryan/runhub-checkout/utils/logger"
	"go.uber.org/zap"
)

// AuthMiddleware verifies the HS256 access token issued by the auth provider
// and puts its subject into the context as the user id.
func AuthMiddleware(jwtSecret string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublicPath(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			auth := r.Header.Get("Authorization")
			if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
				writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
				return
			}

			userID, err := parseSubject(strings.TrimPrefix(auth, "Bearer "), jwtSecret)
			if err != nil {
				logger.Debug("[AuthMiddleware] rejected token", zap.String("error", err.Error()))
				writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
				return
			}

			next.ServeHTTP(w, r.WithContext(utilsContext.WithUserID(r.Context(), userID)))
		})
	}
}

func parseSubject(tokenString, secret string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return "", jwt.ErrTokenInvalidClaims
	}
	if claims.Subject == "" {
		return "", jwt.ErrTokenRequiredClaimMissing
	}
	return claims.Subject, nil
}

// isPublicPath lists endpoints served without a user token.
func isPublicPath(path string) bool {
	switch {
	case strings.HasPrefix(path, "/swagger/"), strings.HasPrefix(path, "/internal/"):
		return true
	case strings.HasPrefix(path, "/api/products"):
		return true
	case path == "/api/checkout/momo/callback", path == "/metrics", path == "/healthz":
		return true
	}
	return false
}
