package table

import (
	"html/template"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type person struct {
	ID   string
	Name string
	Age  int
}

func personColumns() []Column[person] {
	return []Column[person]{
		{ID: "id", Header: Text("ID"), Accessor: func(p person) any { return p.ID }, Pin: PinLeft},
		{
			ID:     "name",
			Header: Text("Name"),
			Cell: func(r Row[person]) template.HTML {
				return template.HTML(template.HTMLEscapeString(r.Data.Name) + "#" + strconv.Itoa(r.Index))
			},
			Meta: Meta{HeaderClass: "w-40", CellClass: "whitespace-nowrap"},
		},
		{ID: "age", Header: Text("Age"), Accessor: func(p person) any { return p.Age }, Pin: PinRight},
	}
}

var people = []person{
	{ID: "a", Name: "Alice", Age: 31},
	{ID: "b", Name: "<Bob>", Age: 42},
}

func TestGridRendersHeadersAndCells(t *testing.T) {
	tbl := New(Options[person]{
		ID:           "people",
		Columns:      personColumns(),
		Data:         people,
		RowID:        func(p person, _ int) string { return p.ID },
		OutlineClass: "overflow-x-auto",
	})
	g := tbl.Grid()

	assert.Equal(t, "overflow-x-auto", g.OutlineClass)
	require.Len(t, g.Headers, 3)
	assert.Equal(t, template.HTML("Name"), g.Headers[1].Content)
	assert.Equal(t, "dt-th w-40", g.Headers[1].Class)
	assert.Equal(t, "dt-th", g.Headers[0].Class)

	require.Len(t, g.Rows, 2)
	assert.Nil(t, g.Empty)
	assert.Equal(t, "b", g.Rows[1].Key)
	require.Len(t, g.Rows[1].Cells, 3)
	assert.Equal(t, template.HTML("b"), g.Rows[1].Cells[0].Content)
	assert.Equal(t, template.HTML("&lt;Bob&gt;#1"), g.Rows[1].Cells[1].Content)
	assert.Equal(t, "dt-td whitespace-nowrap", g.Rows[1].Cells[1].Class)
	assert.Equal(t, template.HTML("42"), g.Rows[1].Cells[2].Content)
}

func TestGridHiddenColumns(t *testing.T) {
	cols := personColumns()
	cols[1].Hidden = true
	g := New(Options[person]{Columns: cols, Data: people}).Grid()

	require.Len(t, g.Headers, 2)
	assert.Equal(t, "age", g.Headers[1].ID)
	for _, row := range g.Rows {
		assert.Len(t, row.Cells, 2)
	}
}

func TestGridEmptyPlaceholder(t *testing.T) {
	cols := personColumns()
	cols[2].Hidden = true

	g := New(Options[person]{Columns: cols}).Grid()
	require.NotNil(t, g.Empty)
	assert.Empty(t, g.Rows)
	assert.Equal(t, 3, g.Empty.ColSpan, "placeholder spans every defined column")
	assert.Equal(t, DefaultNoRecord, g.Empty.Content)

	g = New(Options[person]{Columns: cols, NoRecord: "No users yet."}).Grid()
	assert.Equal(t, template.HTML("No users yet."), g.Empty.Content)
}

func TestGridZeroColumns(t *testing.T) {
	g := New(Options[person]{Data: people}).Grid()
	assert.Empty(t, g.Headers)
	require.Len(t, g.Rows, 2)
	assert.Empty(t, g.Rows[0].Cells)

	g = New(Options[person]{}).Grid()
	require.NotNil(t, g.Empty)
	assert.Zero(t, g.Empty.ColSpan)
}

func TestRowClick(t *testing.T) {
	var gotRow Row[person]
	gotIndex := -1
	tbl := New(Options[person]{
		Columns:    personColumns(),
		Data:       people,
		RowID:      func(p person, _ int) string { return p.ID },
		OnRowClick: func(r Row[person], i int) { gotRow, gotIndex = r, i },
		ClickURL:   "/users/row",
	})

	g := tbl.Grid()
	assert.True(t, g.Clickable)
	assert.Equal(t, "/users/row", g.ClickURL)
	assert.Equal(t, "dt-row cursor-pointer", g.Rows[0].Class)

	assert.True(t, tbl.Click(1))
	assert.Equal(t, 1, gotIndex)
	assert.Equal(t, people[1], gotRow.Data)
	assert.Equal(t, "b", gotRow.ID)

	assert.False(t, tbl.Click(2))
	assert.False(t, tbl.Click(-1))
}

func TestRowWithoutClickHandler(t *testing.T) {
	tbl := New(Options[person]{Columns: personColumns(), Data: people, ClickURL: "/users/row"})
	g := tbl.Grid()
	assert.False(t, g.Clickable)
	assert.Empty(t, g.ClickURL)
	assert.Equal(t, "dt-row", g.Rows[0].Class)
	assert.False(t, tbl.Click(0))
}

func TestDuplicateRowIDsLastWins(t *testing.T) {
	data := []person{{ID: "x", Name: "first"}, {ID: "y", Name: "other"}, {ID: "x", Name: "second"}, {ID: "x", Name: "third"}}
	tbl := New(Options[person]{
		Columns: personColumns(),
		Data:    data,
		RowID:   func(p person, _ int) string { return p.ID },
	})

	row, ok := tbl.RowByID("x")
	require.True(t, ok)
	assert.Equal(t, "third", row.Data.Name)
	assert.Equal(t, 3, row.Index)
	assert.Equal(t, []string{"x"}, tbl.dups)

	assert.Len(t, tbl.Grid().Rows, 4, "every row is still rendered")

	_, ok = tbl.RowByID("z")
	assert.False(t, ok)
}

func TestDefaultRowIDIsIndex(t *testing.T) {
	tbl := New(Options[person]{Data: people})
	row, ok := tbl.RowByID("1")
	require.True(t, ok)
	assert.Equal(t, "<Bob>", row.Data.Name)
	assert.Empty(t, tbl.dups)
}

func TestClickByIDLastWins(t *testing.T) {
	data := []person{{ID: "x", Name: "first"}, {ID: "y", Name: "other"}, {ID: "x", Name: "second"}}
	var clicked Row[person]
	clickedIndex := -1
	tbl := New(Options[person]{
		Columns: personColumns(),
		Data:    data,
		RowID:   func(p person, _ int) string { return p.ID },
		OnRowClick: func(row Row[person], index int) {
			clicked = row
			clickedIndex = index
		},
	})

	require.True(t, tbl.ClickByID("x"))
	assert.Equal(t, "second", clicked.Data.Name)
	assert.Equal(t, 2, clickedIndex)

	assert.False(t, tbl.ClickByID("missing"))

	noHandler := New(Options[person]{Data: data, RowID: func(p person, _ int) string { return p.ID }})
	assert.False(t, noHandler.ClickByID("y"))
}

func TestSizingIsCopied(t *testing.T) {
	state := Sizing{"name": 90}
	tbl := New(Options[person]{Columns: personColumns(), Sizing: state})
	tbl.Sizing()["name"] = 10
	assert.Equal(t, 90.0, state["name"])
}
