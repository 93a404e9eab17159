package middleware

import (
	"net/http"

	"condo-panel/database"
	"condo-panel/database/model"
	"condo-panel/web/session"

	"github.com/gin-gonic/gin"
)

// RequireRole gates a route group to the given roles. The role is always
// re-read from the store of record: a cached session role claim is never
// trusted beyond identifying the user.
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool)
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		sessionUser := session.GetLoginUser(c)
		if sessionUser == nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		user := &model.User{}
		err := database.GetDB().First(user, sessionUser.Id).Error
		if err != nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		if !allowed[user.Role] {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}

		c.Set("user", user)
		c.Set("role", user.Role)
		c.Next()
	}
}
