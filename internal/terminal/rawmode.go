package terminal

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"golang.org/x/term"
)

// ErrRawMode is returned when the terminal could not be switched to raw mode.
var ErrRawMode = errors.New("raw mode unavailable")

// RawMode puts a terminal into raw, no-echo mode and restores the previous
// mode on Release. Callers pair Acquire with a deferred Release.
//
// When the file is not a terminal (piped input, tests, platforms without
// termios support) Acquire is a no-op and Release has nothing to restore.
type RawMode struct {
	mu    sync.Mutex
	fd    int
	state *term.State
}

// NewRawMode returns a guard for the terminal behind f, usually os.Stdin.
func NewRawMode(f *os.File) *RawMode {
	return &RawMode{fd: int(f.Fd())}
}

// Acquire switches the terminal to raw mode. A failure leaves the terminal
// untouched; the interaction can still continue in cooked mode.
func (r *RawMode) Acquire() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != nil {
		return nil
	}
	if !term.IsTerminal(r.fd) {
		return nil
	}

	oldState, err := term.MakeRaw(r.fd)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRawMode, err)
	}
	r.state = oldState
	return nil
}

// Release restores the mode captured by Acquire. Calling it more than once,
// or without a successful Acquire, is a no-op.
func (r *RawMode) Release() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state == nil {
		return nil
	}
	state := r.state
	r.state = nil
	if err := term.Restore(r.fd, state); err != nil {
		return fmt.Errorf("failed to restore terminal: %w", err)
	}
	return nil
}

// Active reports whether raw mode is currently engaged.
func (r *RawMode) Active() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state != nil
}

// Releaser is anything that can undo a terminal mode change.
type Releaser interface {
	Release() error
}
