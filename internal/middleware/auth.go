package middleware

import (
	"context"
	"net/http"
	"strings"

	"drumgen_testbench/internal/config"
	"drumgen_testbench/internal/model"
	"drumgen_testbench/internal/webutil"

	"github.com/golang-jwt/jwt/v5"
)

// OperatorAuthMiddleware guards admin routes with an HS256 bearer token.
// When auth is disabled in config every request passes through.
func OperatorAuthMiddleware(cfg *config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !cfg.Auth.Enabled {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := GetLogger(r.Context())

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.Warn("Operator auth failed: Authorization header missing")
				webutil.HandleError(w, logger, model.NewAppError("UNAUTHORIZED", "Authorization header is required.", "", model.ErrUnauthorized))
				return
			}

			scheme, tokenString, ok := strings.Cut(authHeader, " ")
			if !ok || !strings.EqualFold(scheme, "bearer") || tokenString == "" {
				logger.Warn("Operator auth failed: invalid Authorization header format")
				webutil.HandleError(w, logger, model.NewAppError("UNAUTHORIZED", "Authorization header must be 'Bearer <token>'.", "", model.ErrUnauthorized))
				return
			}

			claims := &model.OperatorClaims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
				return []byte(cfg.JWT.SecretKey), nil
			}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
			if err != nil || !token.Valid {
				logger.Warn("Operator auth failed: invalid token", "error", err)
				webutil.HandleError(w, logger, model.NewAppError("INVALID_TOKEN", "Token is invalid or expired.", "", model.ErrUnauthorized))
				return
			}

			subject, err := claims.GetSubject()
			if err != nil || subject == "" {
				logger.Warn("Operator auth failed: subject claim missing")
				webutil.HandleError(w, logger, model.NewAppError("INVALID_TOKEN", "Token has no subject.", "", model.ErrUnauthorized))
				return
			}

			ctx := context.WithValue(r.Context(), model.OperatorKey, subject)
			ctx = context.WithValue(ctx, logCtxKey{}, logger.With("operator", subject))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetOperator returns the authenticated operator, if any.
func GetOperator(ctx context.Context) (string, bool) {
	subject, ok := ctx.Value(model.OperatorKey).(string)
	return subject, ok
}
