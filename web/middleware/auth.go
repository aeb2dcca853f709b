// Package middleware contains the gin middleware guarding the panel's routes.
package middleware

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/taskmanager/taskmanager/database/model"
	"github.com/taskmanager/taskmanager/logger"
	"github.com/taskmanager/taskmanager/web/entity"
	"github.com/taskmanager/taskmanager/web/locale"
	"github.com/taskmanager/taskmanager/web/service"
	"github.com/taskmanager/taskmanager/web/session"

	"github.com/gin-gonic/gin"
)

const authKey = "auth"

// GetAuth returns the session resolved by AuthRequired, or nil.
func GetAuth(c *gin.Context) *service.AuthSession {
	v, ok := c.Get(authKey)
	if !ok {
		return nil
	}
	a, _ := v.(*service.AuthSession)
	return a
}

// GetUser returns the signed-in user, or nil.
func GetUser(c *gin.Context) *model.User {
	if a := GetAuth(c); a != nil {
		return &a.User
	}
	return nil
}

// LoadAuth resolves the session cookie, if any, without rejecting the request.
func LoadAuth(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		resolve(c, auth)
		c.Next()
	}
}

// AuthRequired rejects requests without a valid session: API calls get a 401
// and pages are redirected to the login page with a redirect parameter.
func AuthRequired(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetAuth(c) == nil && resolve(c, auth) == nil {
			rejectAnonymous(c)
			return
		}
		c.Next()
	}
}

func rejectAnonymous(c *gin.Context) {
	if wantsJSON(c) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, entity.Msg{
			Msg: locale.I18nWeb(c, "pages.login.loginAgain"),
		})
		return
	}
	target := c.GetString("base_path") + "login?redirect=" + url.QueryEscape(c.Request.URL.RequestURI())
	c.Redirect(http.StatusFound, target)
	c.Abort()
}

func resolve(c *gin.Context, auth *service.AuthService) *service.AuthSession {
	token := session.GetSessionToken(c)
	if token == "" {
		return nil
	}
	a, err := auth.GetSession(c.Request.Context(), token)
	if err != nil {
		if !errors.Is(err, service.ErrSessionNotFound) {
			logger.Warning("failed to resolve session: ", err)
		}
		return nil
	}
	c.Set(authKey, a)
	return a
}

func wantsJSON(c *gin.Context) bool {
	if c.GetHeader("X-Requested-With") == "XMLHttpRequest" {
		return true
	}
	return strings.HasPrefix(c.Request.URL.Path, c.GetString("base_path")+"api/")
}
