package controller

import (
	"errors"
	"net/http"

	"github.com/taskmanager/taskmanager/web/middleware"
	"github.com/taskmanager/taskmanager/web/service"

	"github.com/gin-gonic/gin"
)

// UserController exposes user management to administrators.
type UserController struct {
	BaseController
}

func NewUserController(g *gin.RouterGroup, base BaseController) *UserController {
	a := &UserController{BaseController: base}
	a.initRouter(g)
	return a
}

func (a *UserController) initRouter(g *gin.RouterGroup) {
	g.GET("", a.list)
	g.POST("", a.create)
	g.POST("/:id", a.update)
	g.POST("/:id/delete", a.delete)
}

func (a *UserController) list(c *gin.Context) {
	page, err := a.users.ListUsers(c.Request.Context(), pageState(c))
	jsonObj(c, page, err)
}

func (a *UserController) create(c *gin.Context) {
	var in service.UserCreate
	if err := c.ShouldBind(&in); err != nil {
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "pages.login.toasts.invalidFormData"))
		return
	}
	user, err := a.users.InsertUser(c.Request.Context(), in)
	if err != nil {
		a.fail(c, err)
		return
	}
	jsonMsgObj(c, I18nWeb(c, "pages.users.toasts.created"), user, nil)
}

func (a *UserController) update(c *gin.Context) {
	var in service.UserUpdate
	if err := c.ShouldBind(&in); err != nil {
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "pages.login.toasts.invalidFormData"))
		return
	}
	in.Id = c.Param("id")
	if err := a.users.UpdateUser(c.Request.Context(), in); err != nil {
		a.fail(c, err)
		return
	}
	jsonMsg(c, I18nWeb(c, "pages.users.toasts.updated"), nil)
}

func (a *UserController) delete(c *gin.Context) {
	err := a.users.DeleteUser(c.Request.Context(), middleware.GetUser(c), c.Param("id"))
	if err != nil {
		a.fail(c, err)
		return
	}
	jsonMsg(c, I18nWeb(c, "pages.users.toasts.deleted"), nil)
}

var userErrorKeys = []struct {
	err error
	key string
}{
	{service.ErrAdminRequired, "pages.users.toasts.adminRequired"},
	{service.ErrDeleteSelf, "pages.users.toasts.deleteSelf"},
	{service.ErrEmailTaken, "pages.users.toasts.emailTaken"},
	{service.ErrUserNotFound, "pages.users.toasts.userNotFound"},
	{service.ErrInvalidRole, "pages.users.toasts.invalidRole"},
}

// fail reports err to the page, localized when it is a known user error.
func (a *UserController) fail(c *gin.Context, err error) {
	for _, e := range userErrorKeys {
		if errors.Is(err, e.err) {
			pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, e.key))
			return
		}
	}
	jsonMsg(c, "", err)
}
