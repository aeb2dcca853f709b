package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RedirectMiddleware moves requests for retired page paths to their current
// location. Only exact paths are matched so that sub-routes stay reachable.
func RedirectMiddleware(basePath string) gin.HandlerFunc {
	redirects := map[string]string{
		"users": "",
		"task":  "selfintroduction",
	}
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for from, to := range redirects {
			from, to = basePath+from, basePath+to
			if path != from && path != from+"/" {
				continue
			}
			if q := c.Request.URL.RawQuery; q != "" {
				to += "?" + q
			}
			c.Redirect(http.StatusMovedPermanently, to)
			c.Abort()
			return
		}
		c.Next()
	}
}
