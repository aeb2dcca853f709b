package table

import (
	"html/template"
	"strconv"
	"strings"
)

const (
	PositionSticky = "sticky"
	PositionStatic = "static"

	ShadowLastLeft   = "-4px 0 4px -4px gray inset"
	ShadowFirstRight = "4px 0 4px -4px gray inset"
)

// ColumnGeometry is the placement of one column. Left is set only for left-pinned
// columns and Right only for right-pinned ones.
type ColumnGeometry struct {
	Pin      PinSide
	Position string
	Left     *float64
	Right    *float64
	Width    float64
	ZIndex   int
	Shadow   string
}

// Width returns the effective width of a column: the measured size when
// known, otherwise its declared size.
func (t *Table[T]) Width(col Column[T]) float64 {
	if w, ok := t.opts.Sizing[col.ID]; ok {
		return w
	}
	if col.Size > 0 {
		return col.Size
	}
	return DefaultColumnSize
}

// Geometry computes the placement of the visible column id.
// Unknown ids get a static zero-width geometry.
func (t *Table[T]) Geometry(id string) ColumnGeometry {
	idx := -1
	for i, col := range t.visible {
		if col.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ColumnGeometry{Position: PositionStatic}
	}

	col := t.visible[idx]
	g := ColumnGeometry{
		Pin:      col.Pin,
		Position: PositionStatic,
		Width:    t.Width(col),
	}

	switch col.Pin {
	case PinLeft:
		var offset float64
		last := true
		for i, other := range t.visible {
			if other.Pin != PinLeft {
				continue
			}
			if i < idx {
				offset += t.Width(other)
			} else if i > idx {
				last = false
			}
		}
		g.Left = &offset
		if last {
			g.Shadow = ShadowLastLeft
		}
	case PinRight:
		var offset float64
		first := true
		for i, other := range t.visible {
			if other.Pin != PinRight {
				continue
			}
			if i > idx {
				offset += t.Width(other)
			} else if i < idx {
				first = false
			}
		}
		g.Right = &offset
		if first {
			g.Shadow = ShadowFirstRight
		}
	default:
		return g
	}

	g.Position = PositionSticky
	g.ZIndex = 1
	return g
}

// Style renders the geometry as an inline style attribute value.
func (g ColumnGeometry) Style() template.CSS {
	var b strings.Builder
	if g.Shadow != "" {
		b.WriteString("box-shadow: " + g.Shadow + "; ")
	}
	if g.Left != nil {
		b.WriteString("left: " + px(*g.Left) + "; ")
	}
	if g.Right != nil {
		b.WriteString("right: " + px(*g.Right) + "; ")
	}
	b.WriteString("position: " + g.Position + "; ")
	b.WriteString("width: " + px(g.Width) + "; ")
	b.WriteString("z-index: " + strconv.Itoa(g.ZIndex) + ";")
	return template.CSS(b.String())
}

func px(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}

// ColumnStyle is the inline style of one visible column.
type ColumnStyle struct {
	ID    string
	Style template.CSS
}

// ColumnStyles returns the style of every visible column in column order.
func (t *Table[T]) ColumnStyles() []ColumnStyle {
	out := make([]ColumnStyle, 0, len(t.visible))
	for _, col := range t.visible {
		out = append(out, ColumnStyle{ID: col.ID, Style: t.Geometry(col.ID).Style()})
	}
	return out
}
