package controller

import (
	"net/http"

	"condo-panel/web/service"

	"github.com/gin-gonic/gin"
)

// ServiceForm carries the new service type name.
type ServiceForm struct {
	Name string `json:"name" form:"name"`
}

// CatalogController handles service-catalog mutations. Listing is served by
// the pages that embed the catalog.
type CatalogController struct {
	BaseController

	catalogService service.CatalogService
}

func NewCatalogController(sindico *gin.RouterGroup) *CatalogController {
	a := &CatalogController{}
	a.initRouter(sindico)
	return a
}

func (a *CatalogController) initRouter(sindico *gin.RouterGroup) {
	sindico.POST("/services", a.create)
}

// create registers a new service type. Sindico only.
func (a *CatalogController) create(c *gin.Context) {
	var form ServiceForm
	if err := c.ShouldBind(&form); err != nil {
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "pages.login.toasts.invalidFormData"))
		return
	}

	serviceType, err := a.catalogService.Create(form.Name)
	switch err {
	case nil:
	case service.ErrEmptyServiceName:
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "toasts.services.emptyName"))
		return
	case service.ErrDuplicateServiceName:
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "toasts.services.duplicate"))
		return
	default:
		jsonMsg(c, I18nWeb(c, "fail"), err)
		return
	}

	jsonMsg(c, I18nWeb(c, "toasts.services.created", "name=="+serviceType.Name), nil)
}
