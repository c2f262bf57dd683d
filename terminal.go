package cells

import (
	"io"
	"os"
)

// ColorLevel describes the level of color support a terminal offers.
type ColorLevel int

const (
	// ColorNone indicates a monochrome terminal with no color support.
	ColorNone ColorLevel = iota
	// Color16 indicates basic 16-color support (ANSI standard colors).
	Color16
	// Color256 indicates ANSI 256 palette support.
	Color256
	// ColorTrue indicates 24-bit true color (RGB) support.
	ColorTrue
)

// Capabilities describes what features a terminal supports.
type Capabilities struct {
	// Colors indicates the level of color support.
	Colors ColorLevel
	// Unicode indicates whether the terminal can render Unicode characters.
	Unicode bool
	// TrueColor indicates whether 24-bit RGB colors are supported.
	TrueColor bool
	// AltScreen indicates whether the terminal supports the alternate screen buffer.
	AltScreen bool
}

// Terminal abstracts terminal operations for rendering and input. Implementations
// handle ANSI output, or stand in for tests (MockTerminal, EmulatorTerminal).
type Terminal interface {
	// Size returns the terminal dimensions (width, height) in cells.
	Size() (width, height int)

	// Flush writes the given cell changes to the terminal. Changes are
	// expected in row-major order for optimal cursor-movement batching.
	Flush(changes []CellChange)

	// Clear clears the entire terminal screen.
	Clear()

	// ClearToEnd clears from the cursor position to the end of the screen.
	ClearToEnd()

	// SetCursor moves the cursor to the specified 0-indexed position.
	SetCursor(x, y int)

	// HideCursor makes the cursor invisible.
	HideCursor()

	// ShowCursor makes the cursor visible.
	ShowCursor()

	// EnterRawMode puts the terminal into raw mode for character-by-character input.
	EnterRawMode() error

	// ExitRawMode restores the terminal to its previous mode.
	ExitRawMode() error

	// EnterAltScreen switches to the alternate screen buffer.
	EnterAltScreen()

	// ExitAltScreen switches back to the main screen buffer.
	ExitAltScreen()

	// EnableMouse turns on mouse event reporting.
	EnableMouse()

	// DisableMouse turns off mouse event reporting.
	DisableMouse()

	// Caps returns the terminal's capabilities.
	Caps() Capabilities

	// SetCaps overrides the terminal's detected capabilities.
	SetCaps(caps Capabilities)

	// WriteDirect writes raw bytes straight to the terminal, bypassing
	// style/cursor tracking. Used for sequences Flush doesn't model.
	WriteDirect(b []byte) (int, error)
}

// ANSITerminal implements Terminal using ANSI escape sequences, for any
// terminal emulator that understands them.
type ANSITerminal struct {
	out       io.Writer
	in        io.Reader
	caps      Capabilities
	lastStyle Style
	esc       *escBuilder
	inFd      int
	outFd     int
	rawState  *rawModeState
}

var _ Terminal = (*ANSITerminal)(nil)

// NewANSITerminal creates an ANSI terminal with auto-detected capabilities.
// out is typically os.Stdout and in is typically os.Stdin.
func NewANSITerminal(out io.Writer, in io.Reader) (*ANSITerminal, error) {
	t := &ANSITerminal{
		out:  out,
		in:   in,
		caps: DetectCapabilities(),
		esc:  newEscBuilder(4096),
	}

	if f, ok := out.(*os.File); ok {
		t.outFd = int(f.Fd())
	}
	if f, ok := in.(*os.File); ok {
		t.inFd = int(f.Fd())
	}

	return t, nil
}

// Size returns the terminal dimensions, falling back to 80x24 when they
// cannot be determined (e.g. output is not a real terminal).
func (t *ANSITerminal) Size() (width, height int) {
	w, h, err := getTerminalSize(t.outFd)
	if err != nil {
		return 80, 24
	}
	return w, h
}

// Flush writes the given cell changes, batching cursor movement and style
// changes so sequential, same-style runs cost a single SGR sequence.
func (t *ANSITerminal) Flush(changes []CellChange) {
	if len(changes) == 0 {
		return
	}

	t.esc.Reset()
	lastX, lastY := -1, -1

	for _, ch := range changes {
		if ch.Cell.IsContinuation() {
			continue
		}

		if ch.Y != lastY || ch.X != lastX+1 {
			t.esc.MoveTo(ch.X, ch.Y)
		}

		if !ch.Cell.Style.Equal(t.lastStyle) {
			t.esc.SetStyle(ch.Cell.Style, t.caps)
			t.lastStyle = ch.Cell.Style
		}

		if ch.Cell.Rune != 0 {
			t.esc.WriteRune(ch.Cell.Rune)
		} else {
			t.esc.WriteRune(' ')
		}

		lastX = ch.X
		if ch.Cell.Width > 1 {
			lastX = ch.X + int(ch.Cell.Width) - 1
		}
		lastY = ch.Y
	}

	t.out.Write(t.esc.Bytes())
}

// Clear clears the visible screen and scrollback, then homes the cursor.
func (t *ANSITerminal) Clear() {
	t.esc.Reset()
	t.esc.ResetStyle()
	t.esc.MoveTo(0, 0)
	t.esc.ClearScreen()
	t.esc.ClearScrollback()
	t.esc.MoveTo(0, 0)
	t.out.Write(t.esc.Bytes())
	t.lastStyle = NewStyle()
}

// ClearToEnd clears from the cursor position to the end of the screen.
func (t *ANSITerminal) ClearToEnd() {
	t.esc.Reset()
	t.esc.ClearToEnd()
	t.out.Write(t.esc.Bytes())
}

// SetCursor moves the cursor to the specified 0-indexed position.
func (t *ANSITerminal) SetCursor(x, y int) {
	t.esc.Reset()
	t.esc.MoveTo(x, y)
	t.out.Write(t.esc.Bytes())
}

// HideCursor makes the cursor invisible.
func (t *ANSITerminal) HideCursor() {
	t.esc.Reset()
	t.esc.HideCursor()
	t.out.Write(t.esc.Bytes())
}

// ShowCursor makes the cursor visible.
func (t *ANSITerminal) ShowCursor() {
	t.esc.Reset()
	t.esc.ShowCursor()
	t.out.Write(t.esc.Bytes())
}

// EnterRawMode puts the terminal into raw mode.
func (t *ANSITerminal) EnterRawMode() error {
	state, err := enableRawMode(t.inFd)
	if err != nil {
		return err
	}
	t.rawState = state
	return nil
}

// ExitRawMode restores the terminal to its mode prior to EnterRawMode.
func (t *ANSITerminal) ExitRawMode() error {
	if t.rawState == nil {
		return nil
	}
	err := disableRawMode(t.rawState)
	t.rawState = nil
	return err
}

// EnterAltScreen switches to the alternate screen buffer.
func (t *ANSITerminal) EnterAltScreen() {
	t.esc.Reset()
	t.esc.EnterAltScreen()
	t.out.Write(t.esc.Bytes())
}

// ExitAltScreen switches back to the main screen buffer.
func (t *ANSITerminal) ExitAltScreen() {
	t.esc.Reset()
	t.esc.ExitAltScreen()
	t.out.Write(t.esc.Bytes())
}

// EnableMouse turns on mouse event reporting.
func (t *ANSITerminal) EnableMouse() {
	t.esc.Reset()
	t.esc.EnableMouse()
	t.out.Write(t.esc.Bytes())
}

// DisableMouse turns off mouse event reporting.
func (t *ANSITerminal) DisableMouse() {
	t.esc.Reset()
	t.esc.DisableMouse()
	t.out.Write(t.esc.Bytes())
}

// Caps returns the terminal's capabilities.
func (t *ANSITerminal) Caps() Capabilities {
	return t.caps
}

// SetCaps overrides the terminal's detected capabilities.
func (t *ANSITerminal) SetCaps(caps Capabilities) {
	t.caps = caps
}

// WriteDirect writes raw bytes straight to the terminal.
func (t *ANSITerminal) WriteDirect(b []byte) (int, error) {
	return t.out.Write(b)
}
