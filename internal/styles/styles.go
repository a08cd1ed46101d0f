package styles

import (
	"os"

	"github.com/muesli/termenv"
)

var (
	stdout = termenv.NewOutput(os.Stdout)

	ERROR = func(s string) string {
		return stdout.String(s).
			Foreground(stdout.Color("9")).
			String()
	}
	// HEADING styles section headings in usage output
	HEADING = func(s string) string {
		return stdout.String(s).
			Foreground(stdout.Color("12")).
			Bold().
			String()
	}
	// HINT styles secondary text with dimmed appearance
	HINT = func(s string) string {
		return stdout.String(s).
			Foreground(stdout.Color("244")).
			String()
	}
	// COMMITTED styles the confirmation line printed after a submission
	COMMITTED = func(s string) string {
		return stdout.String(s).
			Foreground(stdout.Color("42")).
			String()
	}
)
