package middleware

import (
	"context"
	"strings"

	"urbanset/models"
	"urbanset/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RoleResolver looks up an identity's current role.
type RoleResolver interface {
	ResolveRole(ctx context.Context, identityID string) (string, error)
}

// Authenticate verifies the bearer token and stores the caller's principal
// in the gin context. The role comes from the resolver rather than the
// token so a role flip takes effect without re-login.
func Authenticate(resolver RoleResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.JSONError(c, utils.KindUnauthenticated, "missing or invalid Authorization header")
			return
		}
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))

		claims, err := utils.ParseToken(tokenString)
		if err != nil {
			utils.JSONError(c, utils.KindUnauthenticated, "invalid or expired token")
			return
		}

		role, err := resolver.ResolveRole(c.Request.Context(), claims.Subject)
		if err != nil {
			if utils.KindOf(err) == utils.KindUnauthenticated {
				utils.JSONError(c, utils.KindUnauthenticated, "account no longer exists")
				return
			}
			utils.GetLogger().Error("role resolution failed", zap.String("identityId", claims.Subject), zap.Error(err))
			utils.JSONError(c, utils.KindUnexpected, "could not verify account")
			return
		}

		c.Set(utils.ContextPrincipalKey, models.Principal{ID: claims.Subject, Role: role})
		c.Next()
	}
}

// CurrentPrincipal returns the principal stored by Authenticate.
func CurrentPrincipal(c *gin.Context) (models.Principal, bool) {
	v, exists := c.Get(utils.ContextPrincipalKey)
	if !exists {
		return models.Principal{}, false
	}
	p, ok := v.(models.Principal)
	return p, ok
}
