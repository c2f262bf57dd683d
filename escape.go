package cells

import (
	"bytes"
	"strconv"
)

// escBuilder accumulates ANSI escape sequences and plain text into a single
// byte buffer, so a full frame can be written to the terminal in one
// syscall. Not safe for concurrent use; callers serialize access (the
// renderer owns one per App).
type escBuilder struct {
	buf bytes.Buffer
}

// newEscBuilder returns an escBuilder with buf pre-sized to size bytes.
func newEscBuilder(size int) *escBuilder {
	e := &escBuilder{}
	e.buf.Grow(size)
	return e
}

// Bytes returns the accumulated bytes. The slice is invalidated by the next
// Reset.
func (e *escBuilder) Bytes() []byte {
	return e.buf.Bytes()
}

// Len returns the number of bytes currently buffered.
func (e *escBuilder) Len() int {
	return e.buf.Len()
}

// Reset empties the buffer for reuse.
func (e *escBuilder) Reset() {
	e.buf.Reset()
}

// WriteString appends s verbatim.
func (e *escBuilder) WriteString(s string) {
	e.buf.WriteString(s)
}

// WriteRune appends a single rune as UTF-8.
func (e *escBuilder) WriteRune(r rune) {
	e.buf.WriteRune(r)
}

// MoveTo emits a CUP (Cursor Position) sequence for the given 0-indexed
// terminal coordinates.
func (e *escBuilder) MoveTo(x, y int) {
	e.buf.WriteString("\x1b[")
	e.buf.WriteString(strconv.Itoa(y + 1))
	e.buf.WriteByte(';')
	e.buf.WriteString(strconv.Itoa(x + 1))
	e.buf.WriteByte('H')
}

func (e *escBuilder) moveBy(n int, final byte) {
	if n <= 0 {
		return
	}
	e.buf.WriteString("\x1b[")
	if n != 1 {
		e.buf.WriteString(strconv.Itoa(n))
	}
	e.buf.WriteByte(final)
}

// MoveUp moves the cursor up n rows. No-op for n <= 0.
func (e *escBuilder) MoveUp(n int) { e.moveBy(n, 'A') }

// MoveDown moves the cursor down n rows. No-op for n <= 0.
func (e *escBuilder) MoveDown(n int) { e.moveBy(n, 'B') }

// MoveRight moves the cursor right n columns. No-op for n <= 0.
func (e *escBuilder) MoveRight(n int) { e.moveBy(n, 'C') }

// MoveLeft moves the cursor left n columns. No-op for n <= 0.
func (e *escBuilder) MoveLeft(n int) { e.moveBy(n, 'D') }

// ClearScreen emits ED 2 (erase entire display).
func (e *escBuilder) ClearScreen() {
	e.buf.WriteString("\x1b[2J")
}

// ClearScrollback emits ED 3 (erase scrollback buffer), used after a resize
// to stop stale rows from bleeding back in on terminals that repaint from
// scrollback.
func (e *escBuilder) ClearScrollback() {
	e.buf.WriteString("\x1b[3J")
}

// ClearToEnd emits ED 0 (erase from cursor to end of display).
func (e *escBuilder) ClearToEnd() {
	e.buf.WriteString("\x1b[0J")
}

// ClearLine emits EL 2 (erase entire line).
func (e *escBuilder) ClearLine() {
	e.buf.WriteString("\x1b[2K")
}

// HideCursor emits DECTCEM reset.
func (e *escBuilder) HideCursor() {
	e.buf.WriteString("\x1b[?25l")
}

// ShowCursor emits DECTCEM set.
func (e *escBuilder) ShowCursor() {
	e.buf.WriteString("\x1b[?25h")
}

// EnterAltScreen emits the alternate screen buffer sequence.
func (e *escBuilder) EnterAltScreen() {
	e.buf.WriteString("\x1b[?1049h")
}

// ExitAltScreen restores the primary screen buffer.
func (e *escBuilder) ExitAltScreen() {
	e.buf.WriteString("\x1b[?1049l")
}

// EnableMouse enables X10 button tracking plus SGR extended coordinate
// encoding, so clicks report correctly past column 223.
func (e *escBuilder) EnableMouse() {
	e.buf.WriteString("\x1b[?1000h\x1b[?1006h")
}

// DisableMouse disables mouse reporting.
func (e *escBuilder) DisableMouse() {
	e.buf.WriteString("\x1b[?1006l\x1b[?1000l")
}

// ResetStyle emits SGR 0 (reset all attributes and colors).
func (e *escBuilder) ResetStyle() {
	e.buf.WriteString("\x1b[0m")
}

// attrCodes lists SGR attribute codes in the order they are emitted. Values
// skip 6 and 8 (no conceal/reverse-adjacent codes used by this renderer).
var attrCodes = []struct {
	attr Attr
	code string
}{
	{AttrBold, "1"},
	{AttrDim, "2"},
	{AttrItalic, "3"},
	{AttrUnderline, "4"},
	{AttrBlink, "5"},
	{AttrReverse, "7"},
	{AttrStrikethrough, "9"},
}

// SetStyle emits a single SGR sequence encoding style's attributes and
// colors. RGB colors are reduced to the 256-color palette when caps lacks
// true color; palette colors are emitted as given. The sequence always begins with
// an explicit reset (0) so cells never inherit a prior cell's style.
func (e *escBuilder) SetStyle(style Style, caps Capabilities) {
	e.buf.WriteString("\x1b[0")

	for _, ac := range attrCodes {
		if style.Attrs&ac.attr == ac.attr {
			e.buf.WriteByte(';')
			e.buf.WriteString(ac.code)
		}
	}

	e.writeColorParams(style.Fg, caps, false)
	e.writeColorParams(style.Bg, caps, true)

	e.buf.WriteByte('m')
}

// writeColorParams appends the SGR parameters for a single foreground or
// background color. An RGB color falls back to its nearest 256-palette entry
// when caps.TrueColor is false; palette indexes 16-255 are written as 38;5 /
// 48;5 without checking caps.Colors.
func (e *escBuilder) writeColorParams(c Color, caps Capabilities, background bool) {
	switch c.Type() {
	case ColorDefault:
		return
	case ColorRGB:
		if caps.TrueColor {
			r, g, b := c.RGB()
			base := "38"
			if background {
				base = "48"
			}
			e.buf.WriteByte(';')
			e.buf.WriteString(base)
			e.buf.WriteString(";2;")
			e.buf.WriteString(strconv.Itoa(int(r)))
			e.buf.WriteByte(';')
			e.buf.WriteString(strconv.Itoa(int(g)))
			e.buf.WriteByte(';')
			e.buf.WriteString(strconv.Itoa(int(b)))
			return
		}
		e.writeColorParams(c.ToANSI(), caps, background)
	case ColorANSI:
		idx := c.ANSI()
		if idx < 16 {
			e.buf.WriteByte(';')
			e.buf.WriteString(strconv.Itoa(int(ansiBasicCode(idx, background))))
			return
		}
		base := "38"
		if background {
			base = "48"
		}
		e.buf.WriteByte(';')
		e.buf.WriteString(base)
		e.buf.WriteString(";5;")
		e.buf.WriteString(strconv.Itoa(int(idx)))
	}
}

// ansiBasicCode maps a basic/bright ANSI palette index (0-15) to its SGR
// foreground or background code (30-37, 40-47, 90-97, 100-107).
func ansiBasicCode(idx uint8, background bool) int {
	if idx < 8 {
		base := 30
		if background {
			base = 40
		}
		return base + int(idx)
	}
	base := 90
	if background {
		base = 100
	}
	return base + int(idx-8)
}
