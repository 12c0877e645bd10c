package selector

import (
	"io"
	"strings"

	"github.com/moasq/recent/internal/terminal"
)

// DefaultTitle is the first line of the menu.
const DefaultTitle = "Select recent branch:"

// Render draws l as a sequence of terminal writes. It reads l and nothing
// else. Raw mode keeps the cursor column across "\n", so every row returns
// to column 1 first.
func Render(l *List, title string) []string {
	visible := l.Visible()
	frame := make([]string, 0, len(visible)*2+6)

	frame = append(frame, terminal.ClearScreen, title+"\n")
	frame = append(frame, terminal.ColumnStart, indicator("(less)", l.HasMoreAbove()))

	for i, item := range visible {
		mark := " "
		if l.Active() != "" && item == l.Active() {
			mark = "*"
		}
		frame = append(frame, terminal.ColumnStart)
		if l.Offset()+i == l.Index() {
			frame = append(frame, " "+terminal.Highlight+mark+" "+item+terminal.Reset+"\n")
		} else {
			frame = append(frame, " "+mark+" "+item+"\n")
		}
	}

	frame = append(frame, terminal.ColumnStart, indicator("(more)", l.HasMoreBelow()))
	return frame
}

// indicator renders a scroll hint, inverted when rows are hidden in that
// direction and faint otherwise.
func indicator(label string, more bool) string {
	style := terminal.Faint
	if more {
		style = terminal.Inverted
	}
	return "  " + style + label + terminal.Reset + "\n"
}

// WriteFrame writes a rendered frame in a single call.
func WriteFrame(w io.Writer, frame []string) error {
	_, err := io.WriteString(w, strings.Join(frame, ""))
	return err
}
