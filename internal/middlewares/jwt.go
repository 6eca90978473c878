package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/graphuraprojects/farming-sub001/internal/domain"
	a "github.com/graphuraprojects/farming-sub001/pkg/auth"
)

// JWTAuth validates the bearer token and stashes the caller as a
// domain.Actor. A token with an unknown role claim is refused here, never
// interpreted downstream.
func JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if !strings.HasPrefix(h, "Bearer ") {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		claims, err := a.ParseValidate(strings.TrimPrefix(h, "Bearer "))
		if err != nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		role, err := domain.ParseRole(claims.Role)
		if err != nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		c.Set("actor", domain.Actor{UserID: claims.Sub, Role: role})
		c.Set("email", claims.Email)
		c.Next()
	}
}

func RequireRole(roles ...domain.Role) gin.HandlerFunc {
	allowed := map[domain.Role]struct{}{}
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		actor := Actor(c)
		if _, ok := allowed[actor.Role]; !ok {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}
		c.Next()
	}
}

// Actor returns the caller set by JWTAuth; zero value if unauthenticated.
func Actor(c *gin.Context) domain.Actor {
	v, _ := c.Get("actor")
	actor, _ := v.(domain.Actor)
	return actor
}
