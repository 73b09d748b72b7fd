package middleware

import (
	"context"
	"errors"
	"hiphop_roadmap_backend/internal/util"
	"hiphop_roadmap_backend/pkg/logger"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TokenAuthenticator 校验 token 并返回其中的用户信息
type TokenAuthenticator interface {
	Authenticate(ctx context.Context, token string) (*util.Claims, error)
}

// AuthMiddleware 从 Authorization: Bearer 头或 token Cookie 读取 JWT
func AuthMiddleware(auth TokenAuthenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""
		if authHeader := c.GetHeader("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
			tokenString = strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		}

		if tokenString == "" {
			tokenString, _ = c.Cookie(util.TokenCookie)
		}

		if tokenString == "" {
			util.Error(c, http.StatusUnauthorized, "Not authorized, no token")
			c.Abort()
			return
		}

		claims, err := auth.Authenticate(c.Request.Context(), tokenString)
		if err != nil {
			if errors.Is(err, util.ErrTokenRevoked) {
				util.Error(c, http.StatusUnauthorized, "Not authorized, token revoked")
			} else {
				logger.Log.Debug("JWT verification failed", zap.Error(err))
				util.Error(c, http.StatusUnauthorized, "Not authorized, token failed")
			}
			c.Abort()
			return
		}

		c.Set(util.ContextClaimsKey, claims)
		c.Set(util.ContextTokenKey, tokenString)
		c.Next()
	}
}
