package middleware

import (
	"urbanset/utils"

	"github.com/gin-gonic/gin"
)

// RequireRole must run after Authenticate.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := CurrentPrincipal(c)
		if !ok {
			utils.JSONError(c, utils.KindUnauthenticated, "authentication required")
			return
		}
		for _, role := range roles {
			if p.Role == role {
				c.Next()
				return
			}
		}
		utils.JSONError(c, utils.KindAuthorization, "this action requires the "+roles[0]+" role")
	}
}
