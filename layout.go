// layout.go re-exports layout types from internal/layout.
// Any changes to internal/layout types must be mirrored here.
package cells

import "github.com/cellgrid/cells/internal/layout"

// Direction specifies the main axis for laying out children.
type Direction = layout.Direction

const (
	Row    = layout.Row
	Column = layout.Column
)

// Justify specifies how children are distributed along the main axis.
type Justify = layout.Justify

const (
	JustifyStart        = layout.JustifyStart
	JustifyEnd          = layout.JustifyEnd
	JustifyCenter       = layout.JustifyCenter
	JustifySpaceBetween = layout.JustifySpaceBetween
	JustifySpaceAround  = layout.JustifySpaceAround
	JustifySpaceEvenly  = layout.JustifySpaceEvenly
)

// Align specifies how children are aligned along the cross axis.
type Align = layout.Align

const (
	AlignStart   = layout.AlignStart
	AlignEnd     = layout.AlignEnd
	AlignCenter  = layout.AlignCenter
	AlignStretch = layout.AlignStretch
)

// Wrap specifies whether a flex line overflows or wraps onto new lines.
type Wrap = layout.Wrap

const (
	NoWrap = layout.NoWrap
	DoWrap = layout.DoWrap
)

// Position specifies how a node's Rect is derived relative to its parent.
type Position = layout.Position

const (
	PositionStatic   = layout.PositionStatic
	PositionRelative = layout.PositionRelative
	PositionAbsolute = layout.PositionAbsolute
)

// Offset is a signed, optional edge offset used by Relative and Absolute
// positioning; nil means unset.
type Offset = layout.Offset

// OffsetValue allocates an Offset holding n.
func OffsetValue(n int) Offset {
	return layout.OffsetValue(n)
}

// Value represents a dimension value (fixed, percent, auto, fill, or flex).
type Value = layout.Value

// Unit specifies how a Value is interpreted.
type Unit = layout.Unit

const (
	UnitAuto    = layout.UnitAuto
	UnitFixed   = layout.UnitFixed
	UnitPercent = layout.UnitPercent
	UnitFill    = layout.UnitFill
	UnitFlex    = layout.UnitFlex
)

// LayoutStyle holds the layout properties for a node.
type LayoutStyle = layout.Style

// Rect represents a rectangle with position and dimensions.
type Rect = layout.Rect

// Edges represents spacing on four sides (top, right, bottom, left).
type Edges = layout.Edges

// Size represents a width/height pair.
type Size = layout.Size

// Point represents an x/y coordinate.
type Point = layout.Point

// LayoutResult holds the computed layout for a node.
type LayoutResult = layout.Layout

// Layoutable is the interface that nodes must implement for layout calculation.
type Layoutable = layout.Layoutable

// Fixed creates a Value with a fixed character count.
func Fixed(n int) Value {
	return layout.Fixed(n)
}

// Percent creates a Value representing a percentage of available space.
func Percent(p float64) Value {
	return layout.Percent(p)
}

// Auto creates a Value that sizes to content.
func Auto() Value {
	return layout.Auto()
}

// Fill creates a Value that stretches to consume remaining main-axis space,
// split evenly among Fill siblings.
func Fill() Value {
	return layout.Fill()
}

// Flex creates a Value that claims a weighted share of remaining main-axis
// space, proportional to weight among sibling Flex values.
func Flex(weight float64) Value {
	return layout.Flex(weight)
}

// DefaultLayoutStyle returns a Style with default values.
func DefaultLayoutStyle() LayoutStyle {
	return layout.DefaultStyle()
}

// NewRect creates a new Rect with the given position and dimensions.
func NewRect(x, y, width, height int) Rect {
	return layout.NewRect(x, y, width, height)
}

// EdgeAll creates Edges with the same value on all sides.
func EdgeAll(n int) Edges {
	return layout.EdgeAll(n)
}

// EdgeSymmetric creates Edges with vertical (top/bottom) and horizontal (left/right) values.
func EdgeSymmetric(v, h int) Edges {
	return layout.EdgeSymmetric(v, h)
}

// EdgeTRBL creates Edges following CSS order: Top, Right, Bottom, Left.
func EdgeTRBL(t, r, b, l int) Edges {
	return layout.EdgeTRBL(t, r, b, l)
}

// Calculate performs flexbox layout on the given tree.
func Calculate(root Layoutable, availableWidth, availableHeight int) {
	layout.Calculate(root, availableWidth, availableHeight)
}

// InsetRect returns a new Rect inset by the given amounts on each edge.
// The order follows CSS convention: top, right, bottom, left.
// This is a convenience function that wraps Rect.Inset(Edges).
func InsetRect(r Rect, top, right, bottom, left int) Rect {
	return r.Inset(layout.EdgeTRBL(top, right, bottom, left))
}

// InsetUniform returns a new Rect inset by n on all edges.
// This is a convenience function that wraps Rect.Inset(Edges).
func InsetUniform(r Rect, n int) Rect {
	return r.Inset(layout.EdgeAll(n))
}
