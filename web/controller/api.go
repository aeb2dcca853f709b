package controller

import (
	"github.com/taskmanager/taskmanager/web/middleware"

	"github.com/gin-gonic/gin"
)

// APIController groups the JSON endpoints used by the panel scripts.
type APIController struct {
	BaseController
	userController  *UserController
	tableController *TableController
	logController   *LogController
}

func NewAPIController(g *gin.RouterGroup, base BaseController) *APIController {
	a := &APIController{BaseController: base}
	a.initRouter(g)
	return a
}

func (a *APIController) initRouter(g *gin.RouterGroup) {
	api := g.Group("/api")
	api.Use(a.authRequired())
	api.GET("/session", a.session)

	users := api.Group("/users")
	users.Use(a.adminOnly())
	a.userController = NewUserController(users, a.BaseController)

	logs := api.Group("/logs")
	logs.Use(a.adminOnly())
	a.logController = NewLogController(logs, a.BaseController)

	tables := api.Group("/tables")
	a.tableController = NewTableController(tables, a.BaseController)
}

// session returns the signed-in user and the session expiry.
func (a *APIController) session(c *gin.Context) {
	jsonObj(c, middleware.GetAuth(c), nil)
}
