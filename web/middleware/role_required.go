package middleware

import (
	"net/http"

	"github.com/taskmanager/taskmanager/database/model"
	"github.com/taskmanager/taskmanager/logger"
	"github.com/taskmanager/taskmanager/web/entity"
	"github.com/taskmanager/taskmanager/web/locale"
	"github.com/taskmanager/taskmanager/web/service"
	"github.com/taskmanager/taskmanager/web/session"

	"github.com/gin-gonic/gin"
)

// RoleRequired lets through only users holding one of roles. Requests without
// a session are rejected like in AuthRequired; a signed-in user with another
// role is signed out and sent to the login page.
func RoleRequired(auth *service.AuthService, roles ...model.Role) gin.HandlerFunc {
	allowed := make(map[model.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		a := GetAuth(c)
		if a == nil {
			a = resolve(c, auth)
		}
		if a == nil {
			rejectAnonymous(c)
			return
		}
		if allowed[a.User.Role] {
			c.Next()
			return
		}

		logger.Warningf("%s (%s) denied access to %s", a.User.Email, a.User.Role, c.Request.URL.Path)
		if err := auth.SignOut(c.Request.Context(), a.Session.Token); err != nil {
			logger.Warning("failed to sign out: ", err)
		}
		if err := session.ClearSession(c); err != nil {
			logger.Warning("failed to clear session: ", err)
		}
		if wantsJSON(c) {
			c.AbortWithStatusJSON(http.StatusForbidden, entity.Msg{Msg: locale.I18nWeb(c, "pages.users.toasts.adminRequired")})
			return
		}
		c.Redirect(http.StatusFound, c.GetString("base_path")+"login")
		c.Abort()
	}
}

func AdminOnly(auth *service.AuthService) gin.HandlerFunc {
	return RoleRequired(auth, model.RoleAdmin)
}
