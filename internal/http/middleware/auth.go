package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/GORLEABHILASH/booklovers/internal/platform/ctxutil"
	"github.com/GORLEABHILASH/booklovers/internal/platform/logger"
)

// TokenVerifier resolves a bearer token to the user id it was issued to.
type TokenVerifier interface {
	Verify(tokenString string) (string, error)
}

type AuthMiddleware struct {
	log      *logger.Logger
	verifier TokenVerifier
}

func NewAuthMiddleware(log *logger.Logger, verifier TokenVerifier) *AuthMiddleware {
	middlewareLogger := log.With("Middleware", "AuthMiddleware")
	return &AuthMiddleware{log: middlewareLogger, verifier: verifier}
}

func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractTokenFromAll(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"message": "missing or invalid token", "code": "unauthorized"},
			})
			return
		}
		userID, err := am.verifier.Verify(tokenString)
		if err != nil {
			am.log.Debug("Token rejected", "path", c.Request.URL.Path, "error", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"message": err.Error(), "code": "unauthorized"},
			})
			return
		}
		userID = strings.TrimSpace(userID)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": gin.H{"message": "forbidden", "code": "forbidden"},
			})
			return
		}
		ctx := ctxutil.WithRequestData(c.Request.Context(), &ctxutil.RequestData{
			TokenString: tokenString,
			UserID:      userID,
		})
		c.Request = c.Request.WithContext(ctx)
		c.Set("user_id", userID)
		c.Next()
	}
}

func extractTokenFromAll(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return ""
}
