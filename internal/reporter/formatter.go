package reporter

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/term"
)

const SEPARATOR_CHAR = "-"

// Returns the width of the terminal. If it cannot be determined, it returns
// a default value of 80.
func termWidth() int {
	width, _, err := term.GetSize(0)
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// Prints a separator line with a title, more or less left aligned.
//
// Example:
//
//	--- MyTitle ---------------------------------------
func printSeparatorWithTitle(w io.Writer, title string) {
	width := termWidth()
	preTitle := "--- "
	separatorWidth := width - len(title) - len(preTitle) - 1
	if separatorWidth < 0 {
		separatorWidth = 0
	}

	fmt.Fprintf(w, "%s%s %s\n", preTitle, title, strings.Repeat(SEPARATOR_CHAR, separatorWidth))
}

func printSeparator(w io.Writer) {
	fmt.Fprintf(w, "%s\n", strings.Repeat(SEPARATOR_CHAR, termWidth()))
}

// Prints the rendered report framed by separators, followed by the one line
// result summary.
func PrintReport(w io.Writer, rep Report, format Format) error {
	printSeparatorWithTitle(w, "Jester report")

	if err := Render(w, rep, format); err != nil {
		return err
	}

	summary := NewSummary(rep)
	printSeparator(w)
	fmt.Fprintf(w, "TEST RESULT: %s. %s\n", summary.Status().ColorString(), summary.Summary())

	return nil
}
