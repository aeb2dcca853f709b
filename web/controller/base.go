// Package controller provides the HTTP handlers of the task manager panel:
// the login flow, the users page with its pinned-column table, and the JSON
// API used by the page scripts.
package controller

import (
	"github.com/taskmanager/taskmanager/web/cache"
	"github.com/taskmanager/taskmanager/web/locale"
	"github.com/taskmanager/taskmanager/web/middleware"
	"github.com/taskmanager/taskmanager/web/service"

	"github.com/gin-gonic/gin"
)

// BaseController carries the services shared by every controller.
type BaseController struct {
	auth   *service.AuthService
	users  *service.UserService
	sizing *cache.SizingStore
}

func NewBaseController(auth *service.AuthService, sizing *cache.SizingStore) BaseController {
	return BaseController{
		auth:   auth,
		users:  &service.UserService{Auth: auth},
		sizing: sizing,
	}
}

func (a *BaseController) authRequired() gin.HandlerFunc {
	return middleware.AuthRequired(a.auth)
}

func (a *BaseController) adminOnly() gin.HandlerFunc {
	return middleware.AdminOnly(a.auth)
}

// I18nWeb retrieves a message in the language of the current request.
func I18nWeb(c *gin.Context, name string, params ...string) string {
	return locale.I18nWeb(c, name, params...)
}
