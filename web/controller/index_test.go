package controller

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRedirectTarget(t *testing.T) {
	gin.SetMode(gin.TestMode)
	a := &IndexController{}

	cases := []struct {
		basePath string
		redirect string
		want     string
	}{
		{"/", "", "/"},
		{"/", "/selfintroduction", "/selfintroduction"},
		{"/", "/?page=2&pageSize=50", "/?page=2&pageSize=50"},
		{"/", "/login", "/"},
		{"/", "/login?redirect=%2F", "/"},
		{"/", "//evil.example", "/"},
		{"/", "/\\evil.example", "/"},
		{"/", "/\\/evil.example", "/"},
		{"/", "/users\\..\\evil", "/"},
		{"/", "https://evil.example/", "/"},
		{"/", "javascript:alert(1)", "/"},
		{"/", "/\t/evil.example", "/"},
		{"/panel/", "/panel/selfintroduction", "/panel/selfintroduction"},
		{"/panel/", "/other", "/panel/"},
		{"/panel/", "/panel/login", "/panel/"},
	}
	for _, tc := range cases {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Set("base_path", tc.basePath)
		assert.Equal(t, tc.want, a.redirectTarget(c, tc.redirect), "base %q redirect %q", tc.basePath, tc.redirect)
	}
}
