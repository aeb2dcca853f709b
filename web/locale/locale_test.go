package locale

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestTranslate(t *testing.T) {
	require.NoError(t, InitLocalizer(os.DirFS("..")))
	assert.ElementsMatch(t, []string{"en-US", "ja-JP"}, Languages())

	assert.Equal(t, "データがありません。", T("", "table.noRecord"))
	assert.Equal(t, "No records.", T("en-US,en;q=0.9", "table.noRecord"))
	assert.Equal(t, "全 47 件 中 21 件目 ~ 40 件目",
		T("ja", "pages.pagination.range", "Total==47", "Start==21", "End==40"))
	assert.Equal(t, "47 total, showing 21–40",
		T("en", "pages.pagination.range", "Total==47", "Start==21", "End==40"))
	assert.Equal(t, "山田さん", T("ja-JP", "pages.users.nameSuffix", "Name==山田"))
	assert.Equal(t, "no.such.key", T("en", "no.such.key"))
}

func TestLocalizerMiddleware(t *testing.T) {
	require.NoError(t, InitLocalizer(os.DirFS("..")))

	r := gin.New()
	r.Use(LocalizerMiddleware())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, I18nWeb(c, "pages.login.title"))
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "en-US")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, "Log in", rec.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "en-US")
	req.AddCookie(&http.Cookie{Name: "lang", Value: "ja-JP"})
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, "ログイン", rec.Body.String(), "the cookie wins over the header")
}
