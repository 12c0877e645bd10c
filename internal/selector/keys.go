package selector

import (
	"errors"
	"fmt"
	"io"
)

// Event is a logical input event decoded from raw terminal bytes.
type Event int

const (
	EventIgnore Event = iota
	EventUp
	EventDown
	EventConfirm
	EventCancel
	// EventEOF means the input stream is closed. It ends the loop like a
	// cancel but is not a keypress.
	EventEOF
)

func (e Event) String() string {
	switch e {
	case EventUp:
		return "up"
	case EventDown:
		return "down"
	case EventConfirm:
		return "confirm"
	case EventCancel:
		return "cancel"
	case EventEOF:
		return "eof"
	default:
		return "ignore"
	}
}

const (
	keyEsc    = 27
	arrowUp   = 'A' // ESC [ A
	arrowDown = 'B' // ESC [ B
)

// chunkSize is the largest read the decoder classifies. Arrow keys arrive
// as a single 3-byte ESC [ X write.
const chunkSize = 3

// keyTable classifies single bytes. ESC is handled separately because its
// meaning depends on how many bytes arrived with it.
var keyTable = func() [256]Event {
	var t [256]Event
	for _, b := range []byte{'k', 'w'} {
		t[b] = EventUp
	}
	for _, b := range []byte{'j', 's'} {
		t[b] = EventDown
	}
	for _, b := range []byte{'\n', '\r', ' '} {
		t[b] = EventConfirm
	}
	for _, b := range []byte{'q', 'Q'} {
		t[b] = EventCancel
	}
	return t
}()

// Decode classifies one read chunk. It is total: any input, including an
// empty or oversized chunk, maps to exactly one Event.
//
// A lone ESC cancels. ESC followed by two bytes is an arrow key when the
// third byte is A or B. A 2-byte chunk starting with ESC is an incomplete
// sequence and is ignored.
func Decode(chunk []byte) Event {
	if len(chunk) == 0 {
		return EventEOF
	}
	if chunk[0] != keyEsc {
		return keyTable[chunk[0]]
	}

	switch {
	case len(chunk) == 1:
		return EventCancel
	case len(chunk) == 2:
		return EventIgnore
	}
	switch chunk[2] {
	case arrowUp:
		return EventUp
	case arrowDown:
		return EventDown
	}
	return EventIgnore
}

// KeyReader reads raw chunks from a terminal and decodes them.
type KeyReader struct {
	r   io.Reader
	buf [chunkSize]byte
}

// NewKeyReader returns a KeyReader on r.
func NewKeyReader(r io.Reader) *KeyReader {
	return &KeyReader{r: r}
}

// Next blocks for the next chunk of input. A closed stream yields EventEOF
// with a nil error; any other read failure yields EventEOF and the error.
func (k *KeyReader) Next() (Event, error) {
	n, err := k.r.Read(k.buf[:])
	if n > 0 {
		// Bytes that arrived with an error are still a keypress. The error
		// resurfaces on the next read.
		return Decode(k.buf[:n]), nil
	}
	if err == nil || errors.Is(err, io.EOF) {
		return EventEOF, nil
	}
	return EventEOF, fmt.Errorf("failed to read input: %w", err)
}
