package selector

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGuard struct {
	acquireErr error
	acquired   int
	released   int
	active     bool
}

func (g *fakeGuard) Acquire() error {
	g.acquired++
	if g.acquireErr != nil {
		return g.acquireErr
	}
	g.active = true
	return nil
}

func (g *fakeGuard) Release() error {
	g.released++
	g.active = false
	return nil
}

// keys feeds one keypress per read, the way a terminal delivers them.
type keys struct {
	chunks [][]byte
}

func (k *keys) Read(p []byte) (int, error) {
	if len(k.chunks) == 0 {
		return 0, nil
	}
	n := copy(p, k.chunks[0])
	k.chunks = k.chunks[1:]
	return n, nil
}

func press(chunks ...string) *keys {
	k := &keys{}
	for _, c := range chunks {
		k.chunks = append(k.chunks, []byte(c))
	}
	return k
}

const (
	up   = "\x1b[A"
	down = "\x1b[B"
	esc  = "\x1b"
)

func TestSelectDownDownUpConfirm(t *testing.T) {
	guard := &fakeGuard{}
	var out bytes.Buffer
	l := NewList(items(5), "", 5)

	state, err := New(press(down, down, up, "\r"), &out, guard).Select(l)
	require.NoError(t, err)
	assert.Equal(t, StateConfirmed, state)
	assert.Equal(t, 1, l.Index())
	assert.Equal(t, 1, guard.acquired)
	assert.Equal(t, 1, guard.released)
	assert.False(t, guard.active)
}

func TestSelectHidesAndRestoresCursor(t *testing.T) {
	var out bytes.Buffer
	_, err := New(press("q"), &out, &fakeGuard{}).Select(NewList(items(2), "", 5))
	require.NoError(t, err)

	s := out.String()
	assert.True(t, strings.HasPrefix(s, "\x1b[?25l"))
	assert.True(t, strings.HasSuffix(s, "\x1b[?25h"))
}

func TestSelectCancelKeys(t *testing.T) {
	for name, key := range map[string]string{"q": "q", "Q": "Q", "escape": esc} {
		t.Run(name, func(t *testing.T) {
			l := NewList(scenario, "main", 3)
			state, err := New(press(down, key), &bytes.Buffer{}, &fakeGuard{}).Select(l)
			require.NoError(t, err)
			assert.Equal(t, StateCancelled, state)
		})
	}
}

func TestSelectEndOfInputCancels(t *testing.T) {
	guard := &fakeGuard{}
	state, err := New(press(down, "x"), &bytes.Buffer{}, guard).Select(NewList(items(3), "", 2))
	require.NoError(t, err)
	assert.Equal(t, StateCancelled, state)
	assert.Equal(t, 1, guard.released)
}

func TestSelectIgnoresUnknownKeys(t *testing.T) {
	l := NewList(items(3), "", 2)
	state, err := New(press("x", "\x1b[", "\x1b[C", "j", " "), &bytes.Buffer{}, &fakeGuard{}).Select(l)
	require.NoError(t, err)
	assert.Equal(t, StateConfirmed, state)
	assert.Equal(t, 1, l.Index())
}

func TestSelectGuardFailureIsNotFatal(t *testing.T) {
	guard := &fakeGuard{acquireErr: errors.New("not a tty")}
	l := NewList(items(3), "", 2)
	state, err := New(press("j", "\n"), &bytes.Buffer{}, guard).Select(l)
	require.NoError(t, err)
	assert.Equal(t, StateConfirmed, state)
	assert.Equal(t, "branch-1", l.Selected())
	assert.Equal(t, 1, guard.released)
}

func TestSelectReadErrorRestoresTerminal(t *testing.T) {
	guard := &fakeGuard{}
	boom := errors.New("read failed")
	_, err := New(failingReader{boom}, &bytes.Buffer{}, guard).Select(NewList(items(3), "", 2))
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, guard.released)
	assert.False(t, guard.active)
}

type panicWriter struct{ writes int }

func (p *panicWriter) Write(b []byte) (int, error) {
	p.writes++
	if p.writes == 2 {
		panic("render exploded")
	}
	return len(b), nil
}

func TestSelectPanicRestoresTerminal(t *testing.T) {
	guard := &fakeGuard{}
	assert.Panics(t, func() {
		_, _ = New(press("q"), &panicWriter{}, guard).Select(NewList(items(3), "", 2))
	})
	assert.Equal(t, 1, guard.released)
	assert.False(t, guard.active)
}

func TestSelectEmptyListNeverTouchesTerminal(t *testing.T) {
	guard := &fakeGuard{}
	var out bytes.Buffer
	_, err := New(press("q"), &out, guard).Select(NewList(nil, "", 5))
	assert.ErrorIs(t, err, ErrNoCandidates)
	assert.Zero(t, guard.acquired)
	assert.Zero(t, out.Len())
}

func TestSelectCustomTitle(t *testing.T) {
	var out bytes.Buffer
	_, err := New(press("q"), &out, &fakeGuard{}, WithTitle("Pick one:")).Select(NewList(items(1), "", 5))
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Pick one:\n")
}

func TestRunConfirmAppliesAfterRelease(t *testing.T) {
	guard := &fakeGuard{}
	l := NewList(scenario, "main", 3)
	var applied []string

	res, err := New(press(down, down, "\r"), &bytes.Buffer{}, guard).Run(context.Background(), l,
		func(_ context.Context, item string) error {
			assert.False(t, guard.active, "action must run after the terminal is restored")
			applied = append(applied, item)
			return nil
		})
	require.NoError(t, err)
	assert.Equal(t, Result{State: StateConfirmed, Choice: "fix-y"}, res)
	assert.Equal(t, []string{"fix-y"}, applied)
	assert.Equal(t, []string{"fix-y", "feat-x", "main", "dev", "release"}, l.Items())
}

func TestRunCancelLeavesListUntouched(t *testing.T) {
	l := NewList(scenario, "main", 3)
	called := false

	res, err := New(press(down, down, down, "q"), &bytes.Buffer{}, &fakeGuard{}).Run(context.Background(), l,
		func(context.Context, string) error {
			called = true
			return nil
		})
	require.NoError(t, err)
	assert.Equal(t, StateCancelled, res.State)
	assert.Empty(t, res.Choice)
	assert.False(t, called)
	assert.Equal(t, scenario, l.Items())
	assert.Equal(t, "main", l.Active())
}

func TestRunActionFailureKeepsOrder(t *testing.T) {
	l := NewList(scenario, "main", 3)
	checkoutErr := errors.New("exit status 1")

	res, err := New(press(down, down, "\n"), &bytes.Buffer{}, &fakeGuard{}).Run(context.Background(), l,
		func(context.Context, string) error { return checkoutErr })
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrActionFailed)
	assert.ErrorIs(t, err, checkoutErr)
	assert.Equal(t, "fix-y", res.Choice)
	assert.Equal(t, scenario, l.Items())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "running", StateRunning.String())
	assert.Equal(t, "confirmed", StateConfirmed.String())
	assert.Equal(t, "cancelled", StateCancelled.String())
}
