package controller

import (
	"strconv"

	"condo-panel/database/model"
	"condo-panel/logger"
	"condo-panel/web/middleware"
	"condo-panel/web/service"

	"github.com/gin-gonic/gin"
)

// APIController exposes the sindico JSON API consumed by the panel pages:
// request listings for AJAX tables, user listing, host status and logs.
type APIController struct {
	BaseController

	userService    service.UserService
	serverService  service.ServerService
	requestService service.RequestService

	settingController *SettingController
}

func NewAPIController(g *gin.RouterGroup) *APIController {
	a := &APIController{}
	a.initRouter(g)
	return a
}

func (a *APIController) initRouter(g *gin.RouterGroup) {
	g = g.Group("/panel/api")
	g.Use(a.checkLogin)
	g.Use(middleware.RequireRole(model.RoleSindico))

	g.GET("/requests", a.requests)
	g.GET("/users", a.users)
	g.GET("/server/status", a.status)
	g.GET("/logs/:count", a.getLogs)

	a.settingController = NewSettingController(g)
}

// requests returns the filtered request list; same filter semantics as the
// all-requests page and the export.
func (a *APIController) requests(c *gin.Context) {
	filter := parseRequestFilter(c)
	requests, err := a.requestService.ListAll(filter)
	if err != nil {
		jsonMsg(c, I18nWeb(c, "fail"), err)
		return
	}
	jsonObj(c, requests, nil)
}

func (a *APIController) users(c *gin.Context) {
	users, err := a.userService.GetAllUsers()
	if err != nil {
		jsonMsg(c, I18nWeb(c, "fail"), err)
		return
	}
	jsonObj(c, users, nil)
}

func (a *APIController) status(c *gin.Context) {
	jsonObj(c, a.serverService.GetStatus(), nil)
}

func (a *APIController) getLogs(c *gin.Context) {
	count, err := strconv.Atoi(c.Param("count"))
	if err != nil {
		count = 50
	}
	level := c.DefaultQuery("level", "INFO")
	jsonObj(c, logger.GetLogs(count, level), nil)
}
