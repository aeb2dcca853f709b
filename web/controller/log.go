package controller

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/taskmanager/taskmanager/logger"

	"github.com/gin-gonic/gin"
)

const defaultLogLevel = "INFO"

// LogController lets administrators read the panel's recent log entries.
type LogController struct {
	BaseController
}

func NewLogController(g *gin.RouterGroup, base BaseController) *LogController {
	a := &LogController{BaseController: base}
	a.initRouter(g)
	return a
}

func (a *LogController) initRouter(g *gin.RouterGroup) {
	g.POST("/:count", a.getLogs)
}

// getLogs returns up to count of the newest entries at or above the posted level, newest first.
func (a *LogController) getLogs(c *gin.Context) {
	count, err := strconv.Atoi(c.Param("count"))
	if err != nil || count <= 0 {
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "pages.login.toasts.invalidFormData"))
		return
	}
	level := strings.ToUpper(c.PostForm("level"))
	if level == "" {
		level = defaultLogLevel
	}
	logs := logger.GetLogs(count, level)
	if logs == nil {
		logs = []string{}
	}
	jsonObj(c, logs, nil)
}
