package controller

import (
	"math"
	"net/http"

	"github.com/taskmanager/taskmanager/web/entity"
	"github.com/taskmanager/taskmanager/web/session"
	"github.com/taskmanager/taskmanager/web/table"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
)

// TableController receives the header widths measured by table.js.
type TableController struct {
	BaseController
}

func NewTableController(g *gin.RouterGroup, base BaseController) *TableController {
	a := &TableController{BaseController: base}
	a.initRouter(g)
	return a
}

func (a *TableController) initRouter(g *gin.RouterGroup) {
	g.POST("/:table/sizing", a.reportSizing)
}

// reportSizing folds a width report into the session's sizing state. When any
// width changed the response carries the recomputed column styles, which the
// browser applies before measuring again.
func (a *TableController) reportSizing(c *gin.Context) {
	tableID := c.Param("table")
	styler, ok := sizedTables[tableID]
	if !ok {
		pureJsonMsg(c, http.StatusNotFound, false, I18nWeb(c, "fail"))
		return
	}

	body, err := c.GetRawData()
	if err != nil {
		jsonMsg(c, "", err)
		return
	}
	var report entity.SizingReport
	if err := json.Unmarshal(body, &report); err != nil || report.Widths == nil {
		pureJsonMsg(c, http.StatusBadRequest, false, I18nWeb(c, "pages.login.toasts.invalidFormData"))
		return
	}

	known := make(map[string]bool)
	for _, s := range styler(c, nil) {
		known[s.ID] = true
	}
	widths := make(map[string]float64, len(report.Widths))
	for id, w := range report.Widths {
		if known[id] && w > 0 && !math.IsInf(w, 0) && !math.IsNaN(w) {
			widths[id] = w
		}
	}

	changed, state := a.sizing.Measure(session.GetSessionToken(c), tableID, widths)
	result := entity.SizingResult{Changed: len(changed) > 0}
	if result.Changed {
		result.Columns = columnStyles(styler(c, state))
	}
	jsonObj(c, result, nil)
}

func columnStyles(styles []table.ColumnStyle) []entity.ColumnStyle {
	out := make([]entity.ColumnStyle, 0, len(styles))
	for _, s := range styles {
		out = append(out, entity.ColumnStyle{ID: s.ID, Style: string(s.Style)})
	}
	return out
}
