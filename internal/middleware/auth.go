package middleware

import (
	"net/http"
	"strings"

	"clientdesk/internal/model"
	"clientdesk/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware rejects requests without a live session token in the
// Authorization header.
func AuthMiddleware(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, model.NewErrorResponse("Missing session token", ""))
			return
		}
		token := strings.TrimPrefix(header, "Bearer ")
		if !auth.ValidateToken(token) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, model.NewErrorResponse("Invalid or expired session", ""))
			return
		}
		c.Set("sessionToken", token)
		c.Next()
	}
}
