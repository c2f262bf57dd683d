package layout

import "math"

// Calculate performs layout calculation on the tree rooted at node.
// The node and all descendants satisfying Layoutable will have their Layout
// populated via SetLayout. A clean node whose border box is unchanged is
// skipped along with its subtree (incremental layout): dirtiness propagates
// upward through MarkDirty/SetDirty at the call site, so such a subtree is
// clean.
//
// availableWidth and availableHeight specify the root constraint, typically
// the terminal size.
func Calculate(node Layoutable, availableWidth, availableHeight int) {
	if node == nil {
		return
	}

	style := node.LayoutStyle()
	width := resolveRootAxis(style.Width, availableWidth)
	height := resolveRootAxis(style.Height, availableHeight)

	calculateNode(node, NewRect(0, 0, width, height))
}

// resolveRootAxis resolves the root node's own size against the terminal
// constraint. Fill and Flex have no siblings to share space with at the
// root, so both simply consume all available space.
func resolveRootAxis(v Value, available int) int {
	if v.ParticipatesInFreeSpace() {
		return available
	}
	return v.Resolve(available, available)
}

// calculateNode computes the layout for a single node within the available
// space. available is the border box space allocated by the parent (after
// the parent already applied this node's margin and flex sizing).
func calculateNode(node Layoutable, available Rect) {
	style := node.LayoutStyle()
	borderBox := computeBorderBox(style, available)
	if !node.IsDirty() && node.GetLayout().Rect == borderBox {
		return
	}
	contentRect := borderBox.Inset(style.Padding)

	children := node.LayoutChildren()
	if len(children) > 0 {
		layoutChildren(style, children, contentRect)
	}

	node.SetLayout(Layout{
		Rect:        borderBox,
		ContentRect: contentRect,
		AbsoluteX:   float64(borderBox.X),
		AbsoluteY:   float64(borderBox.Y),
	})
	node.SetDirty(false)
}

// computeBorderBox clamps the available slot to this node's min/max
// constraints. Width/Height were already consumed by the parent's flex
// pass (or the root resolution); only min/max remain to apply here.
func computeBorderBox(style Style, available Rect) Rect {
	width := available.Width
	height := available.Height

	minWidth := style.MinWidth.Resolve(available.Width, 0)
	maxWidth := resolveMax(style.MaxWidth, available.Width)
	width = clampInt(width, minWidth, maxWidth)

	minHeight := style.MinHeight.Resolve(available.Height, 0)
	maxHeight := resolveMax(style.MaxHeight, available.Height)
	height = clampInt(height, minHeight, maxHeight)

	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}

	return Rect{X: available.X, Y: available.Y, Width: width, Height: height}
}

// resolveMax resolves a Max* constraint; Auto means "no constraint", which
// we represent as the available size itself so clampInt is a no-op.
func resolveMax(v Value, available int) int {
	if v.IsAuto() {
		return available
	}
	return v.Resolve(available, available)
}

// clampInt restricts v to [minVal, maxVal]. If minVal > maxVal, minVal wins.
func clampInt(v, minVal, maxVal int) int {
	if v < minVal {
		return minVal
	}
	if maxVal >= minVal && v > maxVal {
		return maxVal
	}
	return v
}

// flexItem holds intermediate calculation state for a single child during
// one line of flex distribution. It is stack-allocated per call, never
// stored on the node itself.
type flexItem struct {
	node      Layoutable
	baseSize  int
	mainSize  int
	crossSize int
	mainPos   int
	crossPos  int
	grow      float64
	shrink    float64
}

// layoutChildren arranges node's children within contentRect, implementing
// the core flex algorithm plus this engine's extensions: Fill/Flex sizing,
// line wrapping, and absolute/relative positioning.
func layoutChildren(style Style, children []Layoutable, contentRect Rect) {
	flow, absolute := partitionByPosition(children)

	if len(flow) > 0 {
		if style.Wrap == DoWrap {
			layoutWrappedLines(style, flow, contentRect)
		} else {
			layoutLine(style, flow, contentRect, 0)
		}
	}

	for _, child := range absolute {
		layoutAbsoluteChild(child, contentRect)
	}
}

// partitionByPosition splits children into those that participate in
// normal flex flow (Static, Relative) and those removed from flow
// (Absolute).
func partitionByPosition(children []Layoutable) (flow, absolute []Layoutable) {
	flow = make([]Layoutable, 0, len(children))
	for _, c := range children {
		if c.LayoutStyle().Position == PositionAbsolute {
			absolute = append(absolute, c)
		} else {
			flow = append(flow, c)
		}
	}
	return flow, absolute
}

// layoutWrappedLines splits flow children into lines that each fit within
// the container's main-axis extent, then lays out each line independently,
// stacking lines along the cross axis using style.Gap as inter-line
// spacing.
func layoutWrappedLines(style Style, flow []Layoutable, contentRect Rect) {
	isRow := style.Direction == Row
	mainSize := contentRect.Width
	if !isRow {
		mainSize = contentRect.Height
	}

	lines := splitIntoLines(flow, mainSize, style.Gap, isRow)

	crossOffset := 0
	for _, line := range lines {
		lineRect := contentRect
		if isRow {
			lineRect.Y = contentRect.Y + crossOffset
		} else {
			lineRect.X = contentRect.X + crossOffset
		}
		lineCross := layoutLine(style, line, lineRect, crossOffset)
		crossOffset += lineCross + style.Gap
	}
}

// splitIntoLines greedily accumulates children's intrinsic/fixed base main
// sizes (ignoring flex growth, which only matters within a line) until the
// next child would overflow mainSize, starting a new line.
func splitIntoLines(flow []Layoutable, mainSize, gap int, isRow bool) [][]Layoutable {
	var lines [][]Layoutable
	var current []Layoutable
	used := 0

	for _, child := range flow {
		st := child.LayoutStyle()
		mainVal := st.Width
		if !isRow {
			mainVal = st.Height
		}
		iw, ih := child.IntrinsicSize()
		intrinsicMain := iw
		if !isRow {
			intrinsicMain = ih
		}
		size := mainVal.Resolve(mainSize, intrinsicMain)

		next := size
		if len(current) > 0 {
			next += gap
		}

		if len(current) > 0 && used+next > mainSize {
			lines = append(lines, current)
			current = nil
			used = 0
			next = size
		}

		current = append(current, child)
		used += next
	}

	if len(current) > 0 {
		lines = append(lines, current)
	}

	return lines
}

// layoutLine runs the single-line flex algorithm (base sizing, free-space
// distribution, min/max clamping, justify, cross-axis alignment) over one
// set of siblings and returns the line's cross-axis extent.
func layoutLine(style Style, flow []Layoutable, contentRect Rect, crossBase int) int {
	isRow := style.Direction == Row

	mainSize := contentRect.Width
	crossSize := contentRect.Height
	if !isRow {
		mainSize, crossSize = crossSize, mainSize
	}

	items := make([]flexItem, len(flow))
	totalFixed := 0
	totalGrow := 0.0
	totalShrink := 0.0

	for i, child := range flow {
		item := &items[i]
		item.node = child
		st := child.LayoutStyle()

		var mainMargin int
		if isRow {
			mainMargin = st.Margin.Horizontal()
		} else {
			mainMargin = st.Margin.Vertical()
		}

		mainVal := st.Width
		if !isRow {
			mainVal = st.Height
		}
		iw, ih := child.IntrinsicSize()
		intrinsicMain := iw
		if !isRow {
			intrinsicMain = ih
		}

		switch {
		case mainVal.IsFlex():
			item.baseSize = mainMargin
			item.grow = mainVal.FlexWeight()
		case mainVal.IsFill():
			item.baseSize = mainMargin
			item.grow = 1
			if st.FlexGrow > 1 {
				item.grow = st.FlexGrow
			}
		default:
			item.baseSize = mainVal.Resolve(mainSize, intrinsicMain) + mainMargin
			item.grow = st.FlexGrow
		}
		item.shrink = st.FlexShrink

		totalFixed += item.baseSize
		totalGrow += item.grow
		totalShrink += item.shrink
	}

	totalGap := style.Gap * maxInt(0, len(flow)-1)
	freeSpace := mainSize - totalFixed - totalGap

	switch {
	case freeSpace > 0 && totalGrow > 0:
		for i := range items {
			if items[i].grow > 0 {
				extra := int(float64(freeSpace) * items[i].grow / totalGrow)
				items[i].mainSize = items[i].baseSize + extra
			} else {
				items[i].mainSize = items[i].baseSize
			}
		}
	case freeSpace < 0 && totalShrink > 0:
		deficit := -freeSpace
		for i := range items {
			if items[i].shrink > 0 {
				reduction := int(float64(deficit) * items[i].shrink / totalShrink)
				items[i].mainSize = maxInt(0, items[i].baseSize-reduction)
			} else {
				items[i].mainSize = items[i].baseSize
			}
		}
	default:
		for i := range items {
			items[i].mainSize = items[i].baseSize
		}
		freeSpace = maxInt(0, freeSpace)
	}

	for i, child := range flow {
		st := child.LayoutStyle()
		minMain := resolveMinMain(st, isRow, mainSize)
		maxMain := resolveMaxMain(st, isRow, mainSize)
		items[i].mainSize = clampInt(items[i].mainSize, minMain, maxMain)
	}

	totalUsed := 0
	for i := range items {
		totalUsed += items[i].mainSize
	}
	freeSpace = mainSize - totalUsed - totalGap

	offset := calculateJustifyOffset(style.JustifyContent, freeSpace, len(items))
	spacing := calculateJustifySpacing(style.JustifyContent, freeSpace, len(items))

	for i := range items {
		items[i].mainPos = offset
		offset += items[i].mainSize + style.Gap + spacing
	}

	lineCross := 0
	for i, child := range flow {
		st := child.LayoutStyle()
		align := style.AlignItems
		if st.AlignSelf != nil {
			align = *st.AlignSelf
		}

		var crossStyleValue Value
		var crossMargin int
		if isRow {
			crossStyleValue = st.Height
			crossMargin = st.Margin.Vertical()
		} else {
			crossStyleValue = st.Width
			crossMargin = st.Margin.Horizontal()
		}

		iw, ih := child.IntrinsicSize()
		intrinsicCross := ih
		if isRow {
			intrinsicCross = ih
		} else {
			intrinsicCross = iw
		}

		availableCross := crossSize - crossMargin

		var contentCross int
		switch {
		case align == AlignStretch && crossStyleValue.IsAuto():
			contentCross = availableCross
		case crossStyleValue.IsAuto():
			contentCross = intrinsicCross
		case crossStyleValue.ParticipatesInFreeSpace():
			contentCross = availableCross
		default:
			contentCross = crossStyleValue.Resolve(availableCross, availableCross)
		}

		items[i].crossSize = contentCross + crossMargin
		items[i].crossPos = calculateAlignOffset(align, crossSize, items[i].crossSize)
		if items[i].crossSize > lineCross {
			lineCross = items[i].crossSize
		}
	}

	for i, child := range flow {
		st := child.LayoutStyle()

		var slot Rect
		if isRow {
			slot = Rect{
				X:      contentRect.X + items[i].mainPos,
				Y:      contentRect.Y + items[i].crossPos,
				Width:  items[i].mainSize,
				Height: items[i].crossSize,
			}
		} else {
			slot = Rect{
				X:      contentRect.X + items[i].crossPos,
				Y:      contentRect.Y + items[i].mainPos,
				Width:  items[i].crossSize,
				Height: items[i].mainSize,
			}
		}

		childBorderBox := slot.Inset(st.Margin)
		if st.Position == PositionRelative {
			childBorderBox = applyRelativeOffset(childBorderBox, st)
		}

		calculateNode(child, childBorderBox)
	}

	return lineCross
}

// applyRelativeOffset shifts a relatively-positioned child by its Top/Left
// (or Bottom/Right as fallback) offsets without disturbing sibling layout.
func applyRelativeOffset(box Rect, st Style) Rect {
	dx, dy := 0, 0
	switch {
	case st.Left != nil:
		dx = *st.Left
	case st.Right != nil:
		dx = -*st.Right
	}
	switch {
	case st.Top != nil:
		dy = *st.Top
	case st.Bottom != nil:
		dy = -*st.Bottom
	}
	return box.Translate(dx, dy)
}

// layoutAbsoluteChild sizes and positions a child removed from normal flow.
// Its containing block is the nearest ancestor's content rect—here, the
// container currently being laid out. Any two of the four offsets may be
// set; an unset edge falls back to the child's natural (intrinsic/auto)
// position on that edge.
func layoutAbsoluteChild(child Layoutable, containing Rect) {
	st := child.LayoutStyle()
	iw, ih := child.IntrinsicSize()

	width := st.Width.Resolve(containing.Width, iw)
	height := st.Height.Resolve(containing.Height, ih)

	x := containing.X
	switch {
	case st.Left != nil:
		x = containing.X + *st.Left
	case st.Right != nil:
		x = containing.Right() - width - *st.Right
	}

	y := containing.Y
	switch {
	case st.Top != nil:
		y = containing.Y + *st.Top
	case st.Bottom != nil:
		y = containing.Bottom() - height - *st.Bottom
	}

	box := Rect{X: x, Y: y, Width: width, Height: height}
	calculateNode(child, box)
}

// calculateJustifyOffset returns the initial offset for positioning children
// based on the justify mode and available free space.
func calculateJustifyOffset(justify Justify, freeSpace, itemCount int) int {
	if freeSpace <= 0 || itemCount == 0 {
		return 0
	}

	switch justify {
	case JustifyEnd:
		return freeSpace
	case JustifyCenter:
		return freeSpace / 2
	case JustifySpaceAround:
		return int(math.Round(float64(freeSpace) / float64(itemCount*2)))
	case JustifySpaceEvenly:
		return freeSpace / (itemCount + 1)
	default: // JustifyStart, JustifySpaceBetween
		return 0
	}
}

// calculateJustifySpacing returns the extra spacing inserted between
// children based on the justify mode and available free space.
func calculateJustifySpacing(justify Justify, freeSpace, itemCount int) int {
	if freeSpace <= 0 || itemCount <= 1 {
		return 0
	}

	switch justify {
	case JustifySpaceBetween:
		return freeSpace / (itemCount - 1)
	case JustifySpaceAround:
		return int(math.Round(float64(freeSpace) / float64(itemCount)))
	case JustifySpaceEvenly:
		return freeSpace / (itemCount + 1)
	default: // JustifyStart, JustifyEnd, JustifyCenter
		return 0
	}
}

// calculateAlignOffset returns the cross-axis offset for a child's slot.
func calculateAlignOffset(align Align, crossSize, itemSize int) int {
	switch align {
	case AlignEnd:
		return crossSize - itemSize
	case AlignCenter:
		return (crossSize - itemSize) / 2
	default: // AlignStart, AlignStretch
		return 0
	}
}

// resolveMinMain resolves the minimum main-axis size constraint.
func resolveMinMain(style Style, isRow bool, available int) int {
	if isRow {
		return style.MinWidth.Resolve(available, 0)
	}
	return style.MinHeight.Resolve(available, 0)
}

// resolveMaxMain resolves the maximum main-axis size constraint. Auto means
// no constraint, represented as available so clampInt is a no-op.
func resolveMaxMain(style Style, isRow bool, available int) int {
	if isRow {
		if style.MaxWidth.IsAuto() {
			return available
		}
		return style.MaxWidth.Resolve(available, available)
	}
	if style.MaxHeight.IsAuto() {
		return available
	}
	return style.MaxHeight.Resolve(available, available)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
