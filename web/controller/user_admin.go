package controller

import (
	"net/http"
	"strconv"

	"condo-panel/web/service"
	"condo-panel/web/session"

	"github.com/gin-gonic/gin"
)

// UserAdminController handles the role transfer actions on the manage page.
type UserAdminController struct {
	BaseController

	userService service.UserService
	roleService service.RoleService
}

func NewUserAdminController(sindico *gin.RouterGroup) *UserAdminController {
	a := &UserAdminController{}
	a.initRouter(sindico)
	return a
}

func (a *UserAdminController) initRouter(sindico *gin.RouterGroup) {
	sindico.POST("/users/:id/promote", a.promote)
	sindico.POST("/users/:id/demote", a.demote)
}

// promote transfers the sindico role to the target user. The caller loses
// the role in the same transaction; their session stays valid but the role
// gate re-reads the store, so sindico pages close immediately.
func (a *UserAdminController) promote(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "toasts.requests.notFound"))
		return
	}

	user, err := a.roleService.Promote(id)
	if err == service.ErrUserNotFound {
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "toasts.requests.notFound"))
		return
	} else if err != nil {
		jsonMsg(c, I18nWeb(c, "fail"), err)
		return
	}

	// Refresh the caller's session snapshot; their stored role changed.
	if current := session.GetLoginUser(c); current != nil && current.Id != user.Id {
		if refreshed, err := a.userService.GetUserById(current.Id); err == nil {
			session.SetLoginUser(c, refreshed)
		}
	}

	jsonMsg(c, I18nWeb(c, "toasts.users.promoted", "email=="+user.Email), nil)
}

// demote revokes the sindico role. Fails with a reported message when the
// target does not hold the role.
func (a *UserAdminController) demote(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "toasts.requests.notFound"))
		return
	}

	user, err := a.roleService.Demote(id)
	if err == service.ErrNotSindico {
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "toasts.users.notSindico"))
		return
	} else if err == service.ErrUserNotFound {
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "toasts.requests.notFound"))
		return
	} else if err != nil {
		jsonMsg(c, I18nWeb(c, "fail"), err)
		return
	}

	jsonMsg(c, I18nWeb(c, "toasts.users.demoted", "email=="+user.Email), nil)
}
