// Package selector implements a single-column, keyboard-driven menu for a
// raw-mode terminal: a key decoder, a scrollable list model, a renderer, and
// the confirm/cancel loop that ties them together.
package selector

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/moasq/recent/internal/terminal"
)

var (
	// ErrNoCandidates is returned when there is nothing to select.
	ErrNoCandidates = errors.New("no candidates")
	// ErrActionFailed wraps the error returned by the commit action.
	ErrActionFailed = errors.New("action failed")
)

// State is the controller state.
type State int

const (
	StateRunning State = iota
	StateConfirmed
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateConfirmed:
		return "confirmed"
	case StateCancelled:
		return "cancelled"
	default:
		return "running"
	}
}

// Guard switches the terminal into raw mode for the interaction.
// terminal.RawMode satisfies it.
type Guard interface {
	Acquire() error
	Release() error
}

// Action is the side effect run on the confirmed item.
type Action func(ctx context.Context, item string) error

// Result describes how an interaction ended.
type Result struct {
	State  State
	Choice string // set when State is StateConfirmed
}

// Selector runs the interactive loop over a terminal.
type Selector struct {
	in     *KeyReader
	out    io.Writer
	guard  Guard
	title  string
	logger *slog.Logger
}

// Option configures a Selector.
type Option func(*Selector)

// WithTitle replaces the menu title.
func WithTitle(title string) Option {
	return func(s *Selector) { s.title = title }
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Selector) { s.logger = logger }
}

// New returns a Selector reading keys from in and drawing on out.
func New(in io.Reader, out io.Writer, guard Guard, opts ...Option) *Selector {
	s := &Selector{
		in:     NewKeyReader(in),
		out:    out,
		guard:  guard,
		title:  DefaultTitle,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Select runs the menu until the user confirms or cancels. The terminal
// mode is restored and the cursor shown before Select returns, on every
// path including a panic.
func (s *Selector) Select(l *List) (state State, err error) {
	if l.Len() == 0 {
		return StateCancelled, ErrNoCandidates
	}

	if err := s.guard.Acquire(); err != nil {
		s.logger.Warn("continuing without raw mode", "error", err)
	}
	defer func() {
		if relErr := s.guard.Release(); relErr != nil {
			s.logger.Error("terminal restore failed", "error", relErr)
			if err == nil {
				err = relErr
			}
		}
		if _, werr := io.WriteString(s.out, terminal.ShowCursor); werr != nil && err == nil {
			err = werr
		}
	}()

	if _, err := io.WriteString(s.out, terminal.HideCursor); err != nil {
		return StateCancelled, err
	}

	state = StateRunning
	for state == StateRunning {
		if err := WriteFrame(s.out, Render(l, s.title)); err != nil {
			return StateCancelled, fmt.Errorf("failed to draw menu: %w", err)
		}

		ev, err := s.in.Next()
		if err != nil {
			return StateCancelled, err
		}
		s.logger.Debug("key", "event", ev, "index", l.Index(), "offset", l.Offset())
		state = step(l, ev)
	}
	return state, nil
}

// step applies one event and returns the next state.
func step(l *List, ev Event) State {
	switch ev {
	case EventConfirm:
		return StateConfirmed
	case EventCancel, EventEOF:
		return StateCancelled
	}
	l.Apply(ev)
	return StateRunning
}

// Run drives a full interaction: Select, then apply on the confirmed item
// once the terminal has been restored. A successful action moves the item
// to the front of l.
func (s *Selector) Run(ctx context.Context, l *List, apply Action) (Result, error) {
	state, err := s.Select(l)
	if err != nil {
		return Result{State: state}, err
	}
	if state != StateConfirmed {
		s.logger.Info("selection cancelled")
		return Result{State: state}, nil
	}

	choice := l.Selected()
	res := Result{State: state, Choice: choice}
	s.logger.Info("selection confirmed", "item", choice)

	if err := apply(ctx, choice); err != nil {
		return res, fmt.Errorf("%w: %w", ErrActionFailed, err)
	}
	l.Promote(choice)
	return res, nil
}
