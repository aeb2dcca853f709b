// Package table renders tabular data for the panel's html templates.
//
// A Table is built from an ordered column model and one page of rows. Grid
// turns it into a template-ready view with pinned-column geometry applied,
// Synchronizer reconciles browser-measured header widths into the Sizing
// state, and Pager describes the pagination control shown next to a table.
package table

import (
	"fmt"
	"html/template"

	"github.com/taskmanager/taskmanager/logger"
)

type PinSide string

const (
	PinNone  PinSide = ""
	PinLeft  PinSide = "left"
	PinRight PinSide = "right"
)

// DefaultColumnSize is the width of a column that has neither a measured nor a declared size.
const DefaultColumnSize = 150.0

// DefaultNoRecord is shown in an empty table when the caller supplies no content.
const DefaultNoRecord template.HTML = "データがありません。"

const (
	headerClass    = "dt-th"
	cellClass      = "dt-td"
	rowClass       = "dt-row"
	clickableClass = "cursor-pointer"
	emptyClass     = "dt-empty"
)

// Meta holds the style hooks of a column. Both classes are applied verbatim.
type Meta struct {
	HeaderClass string
	CellClass   string
}

type HeaderFunc func() template.HTML

type CellFunc[T any] func(row Row[T]) template.HTML

type Column[T any] struct {
	ID     string
	Header HeaderFunc
	// Cell renders the cell; when nil the escaped Accessor value is used.
	Cell     CellFunc[T]
	Accessor func(T) any
	Pin      PinSide
	// Size is the declared width in pixels; zero means DefaultColumnSize.
	Size   float64
	Hidden bool
	Meta   Meta
}

type Row[T any] struct {
	ID    string
	Index int
	Data  T
}

type Options[T any] struct {
	// ID names the table for the width report endpoint.
	ID      string
	Columns []Column[T]
	Data    []T
	// RowID derives the render key of a row; the row index is used when nil.
	RowID        func(data T, index int) string
	Sizing       Sizing
	NoRecord     template.HTML
	OutlineClass string
	OnRowClick   func(row Row[T], index int)
	// ClickURL is the endpoint a clicked row is sent to, with the row index appended.
	ClickURL string
}

type Table[T any] struct {
	opts    Options[T]
	visible []Column[T]
	rows    []Row[T]
	byID    map[string]int
	dups    []string
}

// Text returns a header that prints s escaped.
func Text(s string) HeaderFunc {
	return func() template.HTML { return template.HTML(template.HTMLEscapeString(s)) }
}

// Static returns a cell that ignores the row and prints s escaped.
func Static[T any](s string) CellFunc[T] {
	return func(Row[T]) template.HTML { return template.HTML(template.HTMLEscapeString(s)) }
}

func New[T any](opts Options[T]) *Table[T] {
	t := &Table[T]{
		opts: opts,
		byID: make(map[string]int, len(opts.Data)),
	}
	t.opts.Sizing = opts.Sizing.Clone()
	for _, col := range opts.Columns {
		if !col.Hidden {
			t.visible = append(t.visible, col)
		}
	}

	seen := make(map[string]bool)
	t.rows = make([]Row[T], len(opts.Data))
	for i, data := range opts.Data {
		id := fmt.Sprint(i)
		if opts.RowID != nil {
			id = opts.RowID(data, i)
		}
		t.rows[i] = Row[T]{ID: id, Index: i, Data: data}
		if _, ok := t.byID[id]; ok && !seen[id] {
			seen[id] = true
			t.dups = append(t.dups, id)
		}
		t.byID[id] = i
	}
	if len(t.dups) > 0 {
		logger.Warningf("table %q: duplicate row ids %v, the last row wins", opts.ID, t.dups)
	}
	return t
}

func (t *Table[T]) ID() string { return t.opts.ID }

func (t *Table[T]) Rows() []Row[T] { return t.rows }

func (t *Table[T]) Columns() []Column[T] { return t.opts.Columns }

func (t *Table[T]) VisibleColumns() []Column[T] { return t.visible }

func (t *Table[T]) Sizing() Sizing { return t.opts.Sizing }

func (t *Table[T]) Clickable() bool { return t.opts.OnRowClick != nil }

// RowByID returns the row rendered under id. With duplicate ids the last row wins.
func (t *Table[T]) RowByID(id string) (Row[T], bool) {
	i, ok := t.byID[id]
	if !ok {
		return Row[T]{}, false
	}
	return t.rows[i], true
}

// Click fires the row-click callback for the row at index.
// It reports false when there is no callback or no such row.
func (t *Table[T]) Click(index int) bool {
	if t.opts.OnRowClick == nil || index < 0 || index >= len(t.rows) {
		return false
	}
	t.opts.OnRowClick(t.rows[index], index)
	return true
}

// ClickByID fires the row-click callback for the row rendered under id.
// With duplicate ids the last row is the one clicked.
func (t *Table[T]) ClickByID(id string) bool {
	row, ok := t.RowByID(id)
	if !ok {
		return false
	}
	return t.Click(row.Index)
}

type HeaderCell struct {
	ID      string
	Class   string
	Style   template.CSS
	Content template.HTML
}

type BodyCell struct {
	ColumnID string
	Class    string
	Style    template.CSS
	Content  template.HTML
}

type BodyRow struct {
	Key   string
	Index int
	Class string
	Cells []BodyCell
}

type EmptyRow struct {
	ColSpan int
	Class   string
	Content template.HTML
}

// Grid is the template view of a table.
type Grid struct {
	ID           string
	OutlineClass string
	Headers      []HeaderCell
	Rows         []BodyRow
	Empty        *EmptyRow
	Clickable    bool
	ClickURL     string
}

func (t *Table[T]) Grid() Grid {
	g := Grid{
		ID:           t.opts.ID,
		OutlineClass: t.opts.OutlineClass,
		Headers:      make([]HeaderCell, 0, len(t.visible)),
		Clickable:    t.Clickable(),
	}
	if g.Clickable {
		g.ClickURL = t.opts.ClickURL
	}

	styles := make(map[string]template.CSS, len(t.visible))
	for _, col := range t.visible {
		styles[col.ID] = t.Geometry(col.ID).Style()
		g.Headers = append(g.Headers, HeaderCell{
			ID:      col.ID,
			Class:   joinClass(headerClass, col.Meta.HeaderClass),
			Style:   styles[col.ID],
			Content: renderHeader(col),
		})
	}

	if len(t.rows) == 0 {
		content := t.opts.NoRecord
		if content == "" {
			content = DefaultNoRecord
		}
		g.Empty = &EmptyRow{ColSpan: len(t.opts.Columns), Class: emptyClass, Content: content}
		return g
	}

	rowCls := rowClass
	if g.Clickable {
		rowCls = joinClass(rowClass, clickableClass)
	}
	g.Rows = make([]BodyRow, 0, len(t.rows))
	for _, row := range t.rows {
		cells := make([]BodyCell, 0, len(t.visible))
		for _, col := range t.visible {
			cells = append(cells, BodyCell{
				ColumnID: col.ID,
				Class:    joinClass(cellClass, col.Meta.CellClass),
				Style:    styles[col.ID],
				Content:  renderCell(col, row),
			})
		}
		g.Rows = append(g.Rows, BodyRow{Key: row.ID, Index: row.Index, Class: rowCls, Cells: cells})
	}
	return g
}

func renderHeader[T any](col Column[T]) template.HTML {
	if col.Header == nil {
		return template.HTML(template.HTMLEscapeString(col.ID))
	}
	return col.Header()
}

func renderCell[T any](col Column[T], row Row[T]) template.HTML {
	switch {
	case col.Cell != nil:
		return col.Cell(row)
	case col.Accessor != nil:
		return template.HTML(template.HTMLEscapeString(fmt.Sprint(col.Accessor(row.Data))))
	}
	return ""
}

func joinClass(base, extra string) string {
	if extra == "" {
		return base
	}
	return base + " " + extra
}
