package controller

import (
	"net/http"
	"time"

	"condo-panel/config"
	"condo-panel/web/entity"
	"condo-panel/web/service"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"
	"github.com/xlzd/gotp"
)

// SettingController serves the settings JSON API consumed by the settings
// page, including the optional TOTP setup for the sindico account.
type SettingController struct {
	BaseController

	settingService service.SettingService
	panelService   service.PanelService
}

func NewSettingController(g *gin.RouterGroup) *SettingController {
	a := &SettingController{}
	a.initRouter(g)
	return a
}

func (a *SettingController) initRouter(g *gin.RouterGroup) {
	g = g.Group("/setting")

	g.GET("/all", a.getAllSetting)
	g.POST("/update", a.updateSetting)
	g.POST("/restartPanel", a.restartPanel)

	g.POST("/twoFactor", a.setTwoFactor)
	g.GET("/twoFactor/qr", a.twoFactorQR)
}

func (a *SettingController) getAllSetting(c *gin.Context) {
	allSetting, err := a.settingService.GetAllSetting()
	if err != nil {
		jsonMsg(c, I18nWeb(c, "fail"), err)
		return
	}
	jsonObj(c, allSetting, nil)
}

func (a *SettingController) updateSetting(c *gin.Context) {
	allSetting := &entity.AllSetting{}
	if err := c.ShouldBind(allSetting); err != nil {
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "pages.login.toasts.invalidFormData"))
		return
	}

	err := a.settingService.UpdateAllSetting(allSetting)
	jsonMsg(c, I18nWeb(c, "toasts.settings.saved"), err)
}

func (a *SettingController) restartPanel(c *gin.Context) {
	err := a.panelService.RestartPanel(time.Second * 3)
	jsonMsg(c, I18nWeb(c, "toasts.settings.restarting"), err)
}

// TwoFactorForm toggles TOTP. Enabling generates a fresh shared secret.
type TwoFactorForm struct {
	Enable bool `json:"enable" form:"enable"`
}

func (a *SettingController) setTwoFactor(c *gin.Context) {
	var form TwoFactorForm
	if err := c.ShouldBind(&form); err != nil {
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "pages.login.toasts.invalidFormData"))
		return
	}

	if !form.Enable {
		err := a.settingService.SetTwoFactorEnable(false)
		if err == nil {
			err = a.settingService.SetTwoFactorToken("")
		}
		jsonMsg(c, I18nWeb(c, "toasts.settings.saved"), err)
		return
	}

	token := gotp.RandomSecret(32)
	err := a.settingService.SetTwoFactorToken(token)
	if err == nil {
		err = a.settingService.SetTwoFactorEnable(true)
	}
	jsonMsgObj(c, I18nWeb(c, "toasts.settings.saved"), token, err)
}

// twoFactorQR renders the provisioning QR code for the stored TOTP secret.
func (a *SettingController) twoFactorQR(c *gin.Context) {
	token, err := a.settingService.GetTwoFactorToken()
	if err != nil || token == "" {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}

	user := loginUser(c)
	uri := gotp.NewDefaultTOTP(token).ProvisioningUri(user.Email, config.GetName())
	png, err := qrcode.Encode(uri, qrcode.Medium, 256)
	if err != nil {
		jsonMsg(c, I18nWeb(c, "fail"), err)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}
