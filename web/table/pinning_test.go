package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func col(id string, pin PinSide) Column[person] {
	return Column[person]{ID: id, Pin: pin}
}

func TestGeometryOneLeftOneRight(t *testing.T) {
	tbl := New(Options[person]{Columns: []Column[person]{
		col("left", PinLeft), col("middle", PinNone), col("right", PinRight),
	}})

	left := tbl.Geometry("left")
	assert.Equal(t, PositionSticky, left.Position)
	require.NotNil(t, left.Left)
	assert.Zero(t, *left.Left)
	assert.Nil(t, left.Right)
	assert.Equal(t, ShadowLastLeft, left.Shadow)
	assert.Equal(t, 1, left.ZIndex)

	middle := tbl.Geometry("middle")
	assert.Equal(t, PositionStatic, middle.Position)
	assert.Empty(t, middle.Shadow)
	assert.Nil(t, middle.Left)
	assert.Nil(t, middle.Right)
	assert.Zero(t, middle.ZIndex)
	assert.Equal(t, DefaultColumnSize, middle.Width)

	right := tbl.Geometry("right")
	assert.Equal(t, PositionSticky, right.Position)
	require.NotNil(t, right.Right)
	assert.Zero(t, *right.Right)
	assert.Equal(t, ShadowFirstRight, right.Shadow)
	assert.Equal(t, 1, right.ZIndex)
}

func TestGeometryOffsetsAccumulate(t *testing.T) {
	cols := []Column[person]{
		col("l1", PinLeft), col("l2", PinLeft), col("c1", PinNone),
		col("l3", PinLeft), col("r1", PinRight), col("c2", PinNone), col("r2", PinRight),
	}
	cols[1].Size = 80
	tbl := New(Options[person]{
		Columns: cols,
		Sizing:  Sizing{"l1": 42.5, "r2": 60},
	})

	tests := []struct {
		id     string
		left   float64
		right  float64
		shadow string
	}{
		{id: "l1", left: 0},
		{id: "l2", left: 42.5},
		{id: "l3", left: 122.5, shadow: ShadowLastLeft},
		{id: "r1", right: 60, shadow: ShadowFirstRight},
		{id: "r2", right: 0},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			g := tbl.Geometry(tt.id)
			assert.Equal(t, tt.shadow, g.Shadow)
			if g.Pin == PinLeft {
				require.NotNil(t, g.Left)
				assert.Equal(t, tt.left, *g.Left)
			} else {
				require.NotNil(t, g.Right)
				assert.Equal(t, tt.right, *g.Right)
			}
		})
	}
}

func TestGeometryWidthSources(t *testing.T) {
	cols := []Column[person]{col("measured", PinNone), col("declared", PinNone), col("fallback", PinNone)}
	cols[0].Size = 90
	cols[1].Size = 90
	tbl := New(Options[person]{Columns: cols, Sizing: Sizing{"measured": 123.25}})

	assert.Equal(t, 123.25, tbl.Geometry("measured").Width)
	assert.Equal(t, 90.0, tbl.Geometry("declared").Width)
	assert.Equal(t, DefaultColumnSize, tbl.Geometry("fallback").Width)
}

func TestGeometrySkipsHiddenColumns(t *testing.T) {
	cols := []Column[person]{col("l1", PinLeft), col("l2", PinLeft), col("l3", PinLeft)}
	cols[2].Hidden = true
	tbl := New(Options[person]{Columns: cols})

	g := tbl.Geometry("l2")
	assert.Equal(t, ShadowLastLeft, g.Shadow)
	assert.Equal(t, 150.0, *g.Left)
	assert.Equal(t, PositionStatic, tbl.Geometry("l3").Position)
}

func TestGeometryStyle(t *testing.T) {
	tbl := New(Options[person]{
		Columns: []Column[person]{col("a", PinLeft), col("b", PinNone)},
		Sizing:  Sizing{"a": 64.5},
	})
	assert.Equal(t,
		"box-shadow: -4px 0 4px -4px gray inset; left: 0px; position: sticky; width: 64.5px; z-index: 1;",
		string(tbl.Geometry("a").Style()))
	assert.Equal(t,
		"position: static; width: 150px; z-index: 0;",
		string(tbl.Geometry("b").Style()))
}

func TestColumnStyles(t *testing.T) {
	cols := []Column[person]{col("a", PinLeft), col("b", PinNone), col("c", PinRight)}
	cols[1].Hidden = true
	styles := New(Options[person]{Columns: cols}).ColumnStyles()

	require.Len(t, styles, 2)
	assert.Equal(t, "a", styles[0].ID)
	assert.Equal(t, "c", styles[1].ID)
	assert.Contains(t, string(styles[1].Style), "right: 0px;")
}
