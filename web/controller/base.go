// Package controller provides the HTTP request handlers of the condo panel:
// login and registration, the resident and sindico pages, and the JSON API.
package controller

import (
	"net/http"

	"condo-panel/database"
	"condo-panel/database/model"
	"condo-panel/logger"
	"condo-panel/web/session"

	"github.com/gin-gonic/gin"
)

// BaseController provides common functionality for all controllers,
// including authentication and role checks for HTML routes.
type BaseController struct{}

// checkLogin is a middleware that verifies user authentication and handles
// unauthorized access.
func (a *BaseController) checkLogin(c *gin.Context) {
	if !session.IsLogin(c) {
		if isAjax(c) {
			pureJsonMsg(c, http.StatusUnauthorized, false, I18nWeb(c, "pages.login.toasts.loginAgain"))
		} else {
			c.Redirect(http.StatusTemporaryRedirect, c.GetString("base_path"))
		}
		c.Abort()
	} else {
		c.Next()
	}
}

// checkRole builds a middleware that restricts an HTML route group to one
// role. The role is re-read from the database on every request; the session
// only identifies the user.
func (a *BaseController) checkRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionUser := session.GetLoginUser(c)
		if sessionUser == nil {
			c.Redirect(http.StatusTemporaryRedirect, c.GetString("base_path"))
			c.Abort()
			return
		}

		user := &model.User{}
		if err := database.GetDB().First(user, sessionUser.Id).Error; err != nil {
			logger.Warning("check role err:", err)
			c.Redirect(http.StatusTemporaryRedirect, c.GetString("base_path"))
			c.Abort()
			return
		}

		if user.Role != role {
			if isAjax(c) {
				pureJsonMsg(c, http.StatusForbidden, false, I18nWeb(c, "toasts.users.forbidden"))
			} else {
				c.Redirect(http.StatusTemporaryRedirect, c.GetString("base_path")+"panel/")
			}
			c.Abort()
			return
		}

		c.Set("user", user)
		c.Set("role", user.Role)
		c.Next()
	}
}

// loginUser returns the request-scoped user set by checkRole, falling back
// to the session identity.
func loginUser(c *gin.Context) *model.User {
	if obj, ok := c.Get("user"); ok {
		if user, ok := obj.(*model.User); ok {
			return user
		}
	}
	return session.GetLoginUser(c)
}

// I18nWeb retrieves an internationalized message based on the current locale.
func I18nWeb(c *gin.Context, name string, params ...string) string {
	anyfunc, funcExists := c.Get("I18n")
	if !funcExists {
		logger.Warning("I18n function not exists in gin context!")
		return ""
	}
	i18nFunc, _ := anyfunc.(func(key string, keyParams ...string) string)
	if i18nFunc == nil {
		return ""
	}
	return i18nFunc(name, params...)
}
