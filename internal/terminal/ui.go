package terminal

import (
	"fmt"
	"io"
	"strings"
)

// Colors for terminal output.
const (
	Reset  = "\033[0m"
	Bold   = "\033[1m"
	Dim    = "\033[2m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Blue   = "\033[34m"
)

// Control sequences used by the selector. These are reproduced exactly so
// the menu looks the same on every terminal the tool has been used on.
const (
	ClearScreen = "\033[H\033[J" // cursor home, clear to end of screen
	ColumnStart = "\033[G"       // cursor to column 1
	HideCursor  = "\033[?25l"
	ShowCursor  = "\033[?25h"

	Highlight = "\033[44;30m" // blue background, black text
	Inverted  = "\033[47;30m" // white background, black text
	Faint     = "\033[30m"    // black text on the default background
)

// UI helper functions.

// Success prints a green success message.
func Success(w io.Writer, msg string) {
	fmt.Fprintf(w, "%s%s✓%s %s\n", Bold, Green, Reset, msg)
}

// Error prints a red error message.
func Error(w io.Writer, msg string) {
	fmt.Fprintf(w, "%s%s✗%s %s\n", Bold, Red, Reset, msg)
}

// Info prints a blue info message.
func Info(w io.Writer, msg string) {
	fmt.Fprintf(w, "%s%si%s %s\n", Bold, Blue, Reset, msg)
}

// Warning prints a yellow warning message.
func Warning(w io.Writer, msg string) {
	fmt.Fprintf(w, "%s%s!%s %s\n", Bold, Yellow, Reset, msg)
}

// Header prints a bold header.
func Header(w io.Writer, msg string) {
	fmt.Fprintf(w, "\n%s%s%s\n", Bold, msg, Reset)
}

// Detail prints an indented detail line.
func Detail(w io.Writer, label, value string) {
	fmt.Fprintf(w, "  %s%s:%s %s\n", Dim, label, Reset, value)
}

// Divider prints a horizontal line.
func Divider(w io.Writer) {
	fmt.Fprintf(w, "%s%s%s\n", Dim, strings.Repeat("─", 60), Reset)
}
