//go:build unix

package cells

import (
	"golang.org/x/sys/unix"
)

// rawModeState stores the original termios for restoration, plus the fd it
// was captured from.
type rawModeState struct {
	fd      int
	termios unix.Termios
}

// enableRawMode puts the terminal into raw mode and returns the previous
// state.
func enableRawMode(fd int) (*rawModeState, error) {
	termios, err := unix.IoctlGetTermios(fd, unix.TIOCGETA)
	if err != nil {
		return nil, err
	}

	state := &rawModeState{fd: fd, termios: *termios}

	raw := *termios
	raw.Lflag &^= unix.ECHO | unix.ICANON | unix.ISIG | unix.IEXTEN
	raw.Iflag &^= unix.IXON | unix.ICRNL | unix.BRKINT | unix.INPCK | unix.ISTRIP
	raw.Oflag &^= unix.OPOST
	raw.Cflag |= unix.CS8
	raw.Cc[unix.VMIN] = 1
	raw.Cc[unix.VTIME] = 0

	if err := unix.IoctlSetTermios(fd, unix.TIOCSETA, &raw); err != nil {
		return nil, err
	}

	return state, nil
}

// disableRawMode restores the terminal to the state captured by enableRawMode.
func disableRawMode(state *rawModeState) error {
	if state == nil {
		return nil
	}
	return unix.IoctlSetTermios(state.fd, unix.TIOCSETA, &state.termios)
}

// getTerminalSize returns the terminal dimensions in cells.
func getTerminalSize(fd int) (width, height int, err error) {
	ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
	if err != nil {
		return 0, 0, err
	}
	return int(ws.Col), int(ws.Row), nil
}
