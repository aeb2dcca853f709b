package controller

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/taskmanager/taskmanager/config"
	"github.com/taskmanager/taskmanager/logger"
	"github.com/taskmanager/taskmanager/web/middleware"
	"github.com/taskmanager/taskmanager/web/service"
	"github.com/taskmanager/taskmanager/web/session"

	"github.com/gin-gonic/gin"
)

// LoginForm represents the login request structure.
type LoginForm struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required,min=8"`
	Redirect string `json:"redirect" form:"redirect"`
}

// IndexController handles the login and logout routes.
type IndexController struct {
	BaseController
}

func NewIndexController(g *gin.RouterGroup, base BaseController) *IndexController {
	a := &IndexController{BaseController: base}
	a.initRouter(g)
	return a
}

func (a *IndexController) initRouter(g *gin.RouterGroup) {
	g.GET("/login", middleware.LoadAuth(a.auth), a.index)
	g.POST("/login", middleware.RateLimit(middleware.DefaultRateLimitConfig(config.GetLoginRateLimit())), a.login)
	g.GET("/logout", a.logout)
}

// index shows the login page, or sends administrators that are already signed in to the panel.
func (a *IndexController) index(c *gin.Context) {
	if middleware.GetUser(c).IsAdmin() {
		c.Redirect(http.StatusFound, a.redirectTarget(c, c.Query("redirect")))
		return
	}
	html(c, "login.html", "pages.login.title", gin.H{
		"redirect": c.Query("redirect"),
	})
}

func (a *IndexController) login(c *gin.Context) {
	var form LoginForm
	if err := c.ShouldBind(&form); err != nil {
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "pages.login.toasts.invalidFormData"))
		return
	}

	auth, err := a.auth.SignIn(c.Request.Context(), form.Email, form.Password, getRemoteIp(c), c.Request.UserAgent())
	if errors.Is(err, service.ErrInvalidCredentials) {
		logger.Warningf("failed login for %q from %s", form.Email, getRemoteIp(c))
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "pages.login.toasts.wrongEmailOrPassword"))
		return
	}
	if err != nil {
		jsonMsg(c, I18nWeb(c, "pages.login.toasts.failed"), err)
		return
	}

	// Only administrators may use the panel; anyone else is signed straight back out.
	if !auth.User.IsAdmin() {
		if err := a.auth.SignOut(c.Request.Context(), auth.Session.Token); err != nil {
			logger.Warning("failed to close non-admin session: ", err)
		}
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "pages.login.toasts.failed"))
		return
	}

	session.SetMaxAge(c, int(a.auth.MaxAge().Seconds()))
	if err := session.SetSessionToken(c, auth.Session.Token); err != nil {
		jsonMsg(c, I18nWeb(c, "pages.login.toasts.failed"), err)
		return
	}

	logger.Infof("%s logged in from %s", auth.User.Email, getRemoteIp(c))
	jsonMsgObj(c, I18nWeb(c, "pages.login.toasts.successLogin"), gin.H{
		"redirect": a.redirectTarget(c, form.Redirect),
	}, nil)
}

// redirectTarget accepts only local paths under the base path other than the
// login page. Browsers read a backslash like a slash, so "/\host" counts as
// another host and is refused along with any scheme or authority.
func (a *IndexController) redirectTarget(c *gin.Context, redirect string) string {
	basePath := c.GetString("base_path")
	if redirect == "" || strings.ContainsRune(redirect, '\\') || strings.HasPrefix(redirect, "//") {
		return basePath
	}
	u, err := url.Parse(redirect)
	if err != nil || u.Scheme != "" || u.Host != "" || u.Opaque != "" || u.User != nil {
		return basePath
	}
	if !strings.HasPrefix(u.Path, basePath) || u.Path == basePath+"login" {
		return basePath
	}
	return redirect
}

func (a *IndexController) logout(c *gin.Context) {
	if token := session.GetSessionToken(c); token != "" {
		if err := a.auth.SignOut(c.Request.Context(), token); err != nil {
			logger.Warning("failed to sign out: ", err)
		}
		a.sizing.Forget(token)
	}
	if err := session.ClearSession(c); err != nil {
		logger.Warning("unable to save session after clearing: ", err)
	}
	c.Redirect(http.StatusFound, c.GetString("base_path")+"login")
}
