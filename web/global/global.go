// Package global exposes the running web server to packages that cannot import it.
package global

import (
	"context"

	"github.com/robfig/cron/v3"
)

var webServer WebServer

type WebServer interface {
	GetCron() *cron.Cron
	GetCtx() context.Context
}

func SetWebServer(s WebServer) {
	webServer = s
}

// GetWebServer returns the running server, or nil outside of "run".
func GetWebServer() WebServer {
	return webServer
}
