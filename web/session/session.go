// Package session keeps the sign-in token in the gin session cookie.
package session

import (
	"net/http"

	"github.com/taskmanager/taskmanager/config"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	// Name is the cookie name of the panel session.
	Name     = "taskmanager"
	tokenKey = "token"
)

// Options returns the cookie options for a session under basePath.
func Options(basePath string, maxAge int) sessions.Options {
	return sessions.Options{
		Path:     basePath,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   config.IsProduction(),
		SameSite: http.SameSiteStrictMode,
	}
}

// SetMaxAge sets the cookie lifetime in seconds for the current response.
func SetMaxAge(c *gin.Context, maxAge int) {
	s := sessions.Default(c)
	s.Options(Options(c.GetString("base_path"), maxAge))
}

func SetSessionToken(c *gin.Context, token string) error {
	s := sessions.Default(c)
	s.Set(tokenKey, token)
	return s.Save()
}

func GetSessionToken(c *gin.Context) string {
	s := sessions.Default(c)
	token, _ := s.Get(tokenKey).(string)
	return token
}

// ClearSession empties the session and expires the cookie.
func ClearSession(c *gin.Context) error {
	s := sessions.Default(c)
	s.Clear()
	s.Options(Options(c.GetString("base_path"), -1))
	return s.Save()
}
