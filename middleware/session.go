package middleware

import (
	"net/http"
	"strings"

	"streamafrica/utils"

	"github.com/gin-gonic/gin"
)

// SessionMiddleware resolves the funnel session from the bearer token
// issued when the session started, and puts its ID on the context.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
					"code":  500,
				})
			}
		}()

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Missing session token",
				"code":  0,
			})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Missing session token",
				"code":  0,
			})
			return
		}

		sessionID, err := utils.ExtractSessionIDFromToken(tokenString)
		if err != nil || sessionID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid session token",
				"code":  0,
			})
			return
		}

		c.Set("sessionID", sessionID)
		c.Next()
	}
}
