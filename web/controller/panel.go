package controller

import (
	"net/http"
	"time"

	"condo-panel/database/model"
	"condo-panel/web/service"

	"github.com/gin-gonic/gin"
)

// PanelController routes and renders the HTML pages of the panel. Mutating
// endpoints live in the dedicated controllers registered on the same groups.
type PanelController struct {
	BaseController

	requestService service.RequestService
	catalogService service.CatalogService
	userService    service.UserService
	serverService  service.ServerService
	settingService service.SettingService

	requestController *RequestController
	catalogController *CatalogController
	userAdminController *UserAdminController
}

func NewPanelController(g *gin.RouterGroup) *PanelController {
	a := &PanelController{}
	a.initRouter(g)
	return a
}

func (a *PanelController) initRouter(g *gin.RouterGroup) {
	g = g.Group("/panel")
	g.Use(a.checkLogin)

	g.GET("/", a.index)

	morador := g.Group("/")
	morador.Use(a.checkRole(model.RoleMorador))
	{
		morador.GET("/dashboard", a.moradorDashboard)
		morador.GET("/requests", a.myRequests)
		morador.GET("/requests/new", a.newRequest)
		morador.GET("/profile", a.profile)
		morador.POST("/profile", a.updateProfile)
	}

	sindico := g.Group("/")
	sindico.Use(a.checkRole(model.RoleSindico))
	{
		sindico.GET("/sindico", a.sindicoDashboard)
		sindico.GET("/all-requests", a.allRequests)
		sindico.GET("/history", a.history)
		sindico.GET("/manage", a.manage)
		sindico.GET("/settings", a.settings)
	}

	a.requestController = NewRequestController(morador, sindico)
	a.catalogController = NewCatalogController(sindico)
	a.userAdminController = NewUserAdminController(sindico)
}

// index redirects to the dashboard matching the user's stored role.
func (a *PanelController) index(c *gin.Context) {
	user := loginUser(c)
	current, err := a.userService.GetUserById(user.Id)
	if err != nil {
		c.Redirect(http.StatusTemporaryRedirect, c.GetString("base_path"))
		return
	}

	if current.Role == model.RoleSindico {
		c.Redirect(http.StatusTemporaryRedirect, "sindico")
	} else {
		c.Redirect(http.StatusTemporaryRedirect, "dashboard")
	}
}

func (a *PanelController) moradorDashboard(c *gin.Context) {
	html(c, "morador.html", "pages.morador.title", gin.H{
		"user": loginUser(c),
	})
}

// myRequests lists the resident's own requests, optionally filtered by
// service type.
func (a *PanelController) myRequests(c *gin.Context) {
	user := loginUser(c)
	filter := service.RequestFilter{}
	filter.ServiceTypeId = parseRequestFilter(c).ServiceTypeId

	requests, err := a.requestService.ListForOwner(user.Id, filter)
	if err != nil {
		jsonMsg(c, I18nWeb(c, "fail"), err)
		return
	}

	serviceTypes, err := a.catalogService.List()
	if err != nil {
		jsonMsg(c, I18nWeb(c, "fail"), err)
		return
	}

	html(c, "my_requests.html", "pages.morador.myRequests.title", gin.H{
		"requests": a.formatRequests(requests),
		"services": serviceTypes,
	})
}

func (a *PanelController) newRequest(c *gin.Context) {
	serviceTypes, err := a.catalogService.List()
	if err != nil {
		jsonMsg(c, I18nWeb(c, "fail"), err)
		return
	}
	html(c, "request_new.html", "pages.morador.newRequest.title", gin.H{
		"services": serviceTypes,
	})
}

func (a *PanelController) profile(c *gin.Context) {
	user := loginUser(c)
	current, err := a.userService.GetUserById(user.Id)
	if err != nil {
		jsonMsg(c, I18nWeb(c, "fail"), err)
		return
	}
	html(c, "profile.html", "pages.morador.profile.title", gin.H{
		"user": current,
	})
}

// ProfileForm carries the resident's own profile edits.
type ProfileForm struct {
	Name      string `json:"name" form:"name"`
	Email     string `json:"email" form:"email"`
	Phone     string `json:"phone" form:"phone"`
	Block     string `json:"block" form:"block"`
	Apartment string `json:"apartment" form:"apartment"`
	Password  string `json:"password" form:"password"`
}

func (a *PanelController) updateProfile(c *gin.Context) {
	user := loginUser(c)

	var form ProfileForm
	if err := c.ShouldBind(&form); err != nil {
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "pages.login.toasts.invalidFormData"))
		return
	}
	if form.Email == "" {
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "pages.login.toasts.emptyEmail"))
		return
	}

	err := a.userService.UpdateProfile(user.Id, form.Email, form.Name, form.Phone, form.Block, form.Apartment, form.Password)
	if err == service.ErrEmailInUse {
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "pages.morador.profile.toasts.emailInUse"))
		return
	} else if err != nil {
		jsonMsg(c, I18nWeb(c, "pages.morador.profile.toasts.saved"), err)
		return
	}

	jsonMsg(c, I18nWeb(c, "pages.morador.profile.toasts.saved"), nil)
}

// sindicoDashboard renders the manager dashboard with the request aggregates
// and the host status block.
func (a *PanelController) sindicoDashboard(c *gin.Context) {
	serviceCounts, err := a.requestService.CountByServiceType()
	if err != nil {
		jsonMsg(c, I18nWeb(c, "fail"), err)
		return
	}
	statusCounts, err := a.requestService.CountByStatus()
	if err != nil {
		jsonMsg(c, I18nWeb(c, "fail"), err)
		return
	}

	html(c, "sindico.html", "pages.sindico.title", gin.H{
		"serviceCounts": serviceCounts,
		"statusCounts":  statusCounts,
		"status":        a.serverService.GetStatus(),
	})
}

// allRequests lists every request with the full filter form. Sindico only.
func (a *PanelController) allRequests(c *gin.Context) {
	filter := parseRequestFilter(c)

	requests, err := a.requestService.ListAll(filter)
	if err != nil {
		jsonMsg(c, I18nWeb(c, "fail"), err)
		return
	}
	serviceTypes, err := a.catalogService.List()
	if err != nil {
		jsonMsg(c, I18nWeb(c, "fail"), err)
		return
	}

	html(c, "all_requests.html", "pages.sindico.requests.title", gin.H{
		"requests": a.formatRequests(requests),
		"services": serviceTypes,
		"statuses": []string{model.StatusPending, model.StatusInProgress, model.StatusCompleted},
		"filter":   filter,
	})
}

// history shows all requests with the status-change dropdown.
func (a *PanelController) history(c *gin.Context) {
	requests, err := a.requestService.ListAll(service.RequestFilter{})
	if err != nil {
		jsonMsg(c, I18nWeb(c, "fail"), err)
		return
	}

	html(c, "history.html", "pages.sindico.history.title", gin.H{
		"requests": a.formatRequests(requests),
		"statuses": []string{model.StatusPending, model.StatusInProgress, model.StatusCompleted},
	})
}

// manage shows the catalog management and the resident list with
// promote/demote actions.
func (a *PanelController) manage(c *gin.Context) {
	users, err := a.userService.GetAllUsers()
	if err != nil {
		jsonMsg(c, I18nWeb(c, "fail"), err)
		return
	}
	serviceTypes, err := a.catalogService.List()
	if err != nil {
		jsonMsg(c, I18nWeb(c, "fail"), err)
		return
	}

	html(c, "manage.html", "pages.sindico.manage.title", gin.H{
		"users":    users,
		"services": serviceTypes,
	})
}

func (a *PanelController) settings(c *gin.Context) {
	html(c, "settings.html", "pages.sindico.settings.title", nil)
}

// formatRequests projects request rows into the plain maps the templates
// consume, with timestamps in the configured display timezone.
func (a *PanelController) formatRequests(requests []model.Request) []gin.H {
	loc, err := a.settingService.GetTimeLocation()
	if err != nil {
		loc = time.UTC
	}

	out := make([]gin.H, 0, len(requests))
	for i := range requests {
		r := &requests[i]
		out = append(out, gin.H{
			"id":          r.Id,
			"title":       r.Title,
			"service":     r.ServiceType.Name,
			"owner":       r.User.Email,
			"ownerName":   r.User.Name,
			"description": r.Description,
			"status":      r.Status,
			"note":        r.Note,
			"photo":       r.PhotoPath,
			"date":        r.CreatedAt.In(loc).Format("02/01/2006 15:04"),
		})
	}
	return out
}
