package controller

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"condo-panel/database/model"
	"condo-panel/logger"
	"condo-panel/web/service"

	"github.com/gin-gonic/gin"
)

// StatusForm carries the sindico status update for one request.
type StatusForm struct {
	Status string `json:"status" form:"status"`
	Note   string `json:"note" form:"note"`
}

// RequestController handles the mutations and the export of service requests.
type RequestController struct {
	BaseController

	requestService    service.RequestService
	catalogService    service.CatalogService
	attachmentService service.AttachmentService
	settingService    service.SettingService
}

func NewRequestController(morador *gin.RouterGroup, sindico *gin.RouterGroup) *RequestController {
	a := &RequestController{}
	a.initRouter(morador, sindico)
	return a
}

func (a *RequestController) initRouter(morador *gin.RouterGroup, sindico *gin.RouterGroup) {
	morador.POST("/requests/new", a.create)

	sindico.POST("/requests/:id/status", a.updateStatus)
	sindico.GET("/export", a.export)
}

// create stores a resident's new request, with an optional photo upload.
func (a *RequestController) create(c *gin.Context) {
	user := loginUser(c)

	serviceTypeId, _ := strconv.Atoi(c.PostForm("serviceTypeId"))
	title := c.PostForm("title")
	description := c.PostForm("description")

	photoPath := ""
	if file, err := c.FormFile("photo"); err == nil && file != nil {
		name, err := a.attachmentService.Save(file)
		if err == service.ErrUnsupportedFormat {
			pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "toasts.requests.unsupportedFormat"))
			return
		} else if err != nil {
			jsonMsg(c, I18nWeb(c, "toasts.requests.created"), err)
			return
		}
		photoPath = name
	}

	_, err := a.requestService.Create(user.Id, serviceTypeId, title, description, photoPath)
	switch err {
	case nil:
	case service.ErrMissingField:
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "toasts.requests.missingField"))
		return
	case service.ErrInvalidServiceType:
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "toasts.requests.invalidService"))
		return
	default:
		jsonMsg(c, I18nWeb(c, "toasts.requests.created"), err)
		return
	}

	logger.Infof("morador %d created request for service %d", user.Id, serviceTypeId)
	jsonMsg(c, I18nWeb(c, "toasts.requests.created"), nil)
}

// updateStatus changes the status and note of one request. Sindico only.
func (a *RequestController) updateStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "toasts.requests.notFound"))
		return
	}

	var form StatusForm
	if err := c.ShouldBind(&form); err != nil {
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "pages.login.toasts.invalidFormData"))
		return
	}

	_, err = a.requestService.UpdateStatus(id, form.Status, form.Note)
	switch err {
	case nil:
	case service.ErrInvalidStatus:
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "toasts.requests.invalidStatus"))
		return
	case service.ErrRequestNotFound:
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "toasts.requests.notFound"))
		return
	default:
		jsonMsg(c, I18nWeb(c, "toasts.requests.statusUpdated", "status=="+form.Status), err)
		return
	}

	jsonMsg(c, I18nWeb(c, "toasts.requests.statusUpdated", "status=="+form.Status), nil)
}

// export streams the filtered requests as a CSV download. Sindico only;
// same filter semantics as the all-requests listing.
func (a *RequestController) export(c *gin.Context) {
	filter := parseRequestFilter(c)

	loc, err := a.settingService.GetTimeLocation()
	if err != nil {
		loc = time.UTC
	}

	header := []string{
		I18nWeb(c, "export.header.user"),
		I18nWeb(c, "export.header.name"),
		I18nWeb(c, "export.header.service"),
		I18nWeb(c, "export.header.description"),
		I18nWeb(c, "export.header.date"),
		I18nWeb(c, "export.header.status"),
	}

	data, err := a.requestService.ExportCSV(filter, header, loc)
	if err != nil {
		jsonMsg(c, I18nWeb(c, "fail"), err)
		return
	}

	filename := fmt.Sprintf("pedidos_%s.csv", time.Now().In(loc).Format("2006-01-02"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}

// parseRequestFilter reads the optional filter fields shared by the
// all-requests page and the export endpoint.
func parseRequestFilter(c *gin.Context) service.RequestFilter {
	filter := service.RequestFilter{
		Title: c.Query("title"),
	}

	if id, err := strconv.Atoi(c.Query("service")); err == nil {
		filter.ServiceTypeId = id
	}

	if status := c.Query("status"); model.ValidStatus(status) {
		filter.Status = status
	}

	if from, err := time.Parse("2006-01-02", c.Query("from")); err == nil {
		filter.DateFrom = from
	}
	if to, err := time.Parse("2006-01-02", c.Query("to")); err == nil {
		filter.DateTo = to
	}

	return filter
}
