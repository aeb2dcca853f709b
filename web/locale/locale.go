// Package locale translates panel messages with go-i18n bundles read from TOML files.
package locale

import (
	"io/fs"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"github.com/taskmanager/taskmanager/logger"
	"golang.org/x/text/language"
)

// DefaultLanguage is used when the request names no supported language.
var DefaultLanguage = language.MustParse("ja-JP")

const (
	langCookie   = "lang"
	localizerKey = "localizer"
	langKey      = "lang"
)

var bundle *i18n.Bundle

// InitLocalizer parses every file under translation/ in fsys.
func InitLocalizer(fsys fs.FS) error {
	b := i18n.NewBundle(DefaultLanguage)
	b.RegisterUnmarshalFunc("toml", toml.Unmarshal)
	err := fs.WalkDir(fsys, "translation", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return err
		}
		_, err = b.ParseMessageFileBytes(data, path)
		return err
	})
	if err != nil {
		return err
	}
	bundle = b
	return nil
}

// Languages lists the language tags that have translations.
func Languages() []string {
	if bundle == nil {
		return nil
	}
	tags := bundle.LanguageTags()
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		out = append(out, t.String())
	}
	return out
}

func createTemplateData(params []string, separator ...string) map[string]any {
	sep := "=="
	if len(separator) > 0 {
		sep = separator[0]
	}
	templateData := make(map[string]any)
	for _, param := range params {
		parts := strings.SplitN(param, sep, 2)
		if len(parts) == 2 {
			templateData[parts[0]] = parts[1]
		}
	}
	return templateData
}

// NewLocalizer returns a localizer for an Accept-Language style list.
func NewLocalizer(langs ...string) *i18n.Localizer {
	if bundle == nil {
		return nil
	}
	return i18n.NewLocalizer(bundle, langs...)
}

// Translate localizes key; params are "name==value" pairs. Unknown keys come back unchanged.
func Translate(localizer *i18n.Localizer, key string, params ...string) string {
	if localizer == nil {
		return key
	}
	msg, err := localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: createTemplateData(params),
	})
	if err != nil {
		logger.Warningf("Failed to localize message %q: %v", key, err)
		return key
	}
	return msg
}

// T translates key for a language list; it backs the templates' i18n function.
func T(lang string, key string, params ...string) string {
	return Translate(NewLocalizer(lang), key, params...)
}

// I18nWeb translates key for the language of the current request.
func I18nWeb(c *gin.Context, key string, params ...string) string {
	l, _ := c.Get(localizerKey)
	localizer, _ := l.(*i18n.Localizer)
	return Translate(localizer, key, params...)
}

// Lang returns the language list chosen for the current request.
func Lang(c *gin.Context) string {
	return c.GetString(langKey)
}

// LocalizerMiddleware picks the request language from the lang cookie or the
// Accept-Language header and stores a localizer for it in the context.
func LocalizerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := c.GetHeader("Accept-Language")
		if cookie, err := c.Cookie(langCookie); err == nil && cookie != "" {
			lang = cookie
		}
		c.Set(langKey, lang)
		c.Set(localizerKey, NewLocalizer(lang))
		c.Next()
	}
}
