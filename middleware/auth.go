// middleware/auth.go
package middleware

import (
	"net/http"

	"flynext/utils"

	"github.com/gin-gonic/gin"
)

// JWTAuthMiddleware authenticates the request from the access token cookie.
//
// No token answers 401 "Unauthorized". An expired access token with a live
// refresh token answers 401 "Token expired" so the client can refresh; when the
// refresh token is gone too the answer is 440 and the client must log in again.
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(utils.AccessTokenCookie)
		if err != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		payload, err := utils.VerifyAccessToken(token)
		if err != nil {
			if refresh, rerr := c.Cookie(utils.RefreshTokenCookie); rerr == nil && refresh != "" {
				if _, err := utils.VerifyRefreshToken(refresh); err == nil {
					c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token expired"})
					return
				}
			}
			utils.SessionExpired(c)
			return
		}

		c.Set(utils.ContextUserID, payload.ID)
		c.Set(utils.ContextRole, payload.Role)
		c.Set(utils.ContextEmail, payload.Email)
		c.Next()
	}
}

// RequireRole lets through only the listed roles. It must run after JWTAuthMiddleware.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(utils.ContextRole)
		for _, r := range roles {
			if r == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access Denied"})
	}
}
