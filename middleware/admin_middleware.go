package middleware

import (
	"net/http"
	"strings"

	"github.com/Mininormi/mininormi1210/config"
	"github.com/Mininormi/mininormi1210/models"
	"github.com/Mininormi/mininormi1210/services"
	"github.com/gin-gonic/gin"
)

// AdminAuthMiddleware validates the admin JWT from the admin_token cookie or
// a Bearer header and puts its claims in the context.
func AdminAuthMiddleware(jwtService *services.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie("admin_token")
		if err != nil || token == "" {
			authHeader := c.GetHeader("Authorization")
			if authHeader == "" {
				c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized - no token provided"))
				c.Abort()
				return
			}

			// Extract token from "Bearer <token>"
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized - invalid token format"))
				c.Abort()
				return
			}
			token = parts[1]
		}

		claims, err := jwtService.VerifyAdminJWT(token)
		if err != nil {
			config.Log.Warn().Err(err).Str("path", c.Request.URL.Path).Msg("[auth] invalid token")
			c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized - invalid token"))
			c.Abort()
			return
		}

		c.Set("adminID", claims.AdminID)
		c.Set("adminEmail", claims.Email)
		c.Set("adminRole", claims.Role)

		c.Next()
	}
}

// RequireRole must run after AdminAuthMiddleware.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("adminRole")
		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}

		config.Log.Warn().Str("role", role).Str("path", c.Request.URL.Path).Msg("[auth] role not allowed")
		c.JSON(http.StatusForbidden, models.ErrorResponse(c, "Forbidden - insufficient role"))
		c.Abort()
	}
}
