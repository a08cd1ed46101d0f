package main

import (
	"bufio"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/robottwo/trigline/pkg/trigger"
)

// lineHost is a Host over one input line with the caret at its end.
type lineHost struct {
	text  string
	caret int
}

func newLineHost(line string) *lineHost {
	return &lineHost{text: line, caret: utf8.RuneCountInString(line)}
}

func (h *lineHost) Text() string        { return h.text }
func (h *lineHost) Caret() int          { return h.caret }
func (h *lineHost) SetText(s string)    { h.text = s }
func (h *lineHost) SetCaret(offset int) { h.caret = offset }

// runPipe scans each input line as if the user had just typed it. Lines
// without an active trigger are echoed unchanged. With accept set, the
// highlighted option is committed and the edited line printed; otherwise
// the session and its options are listed.
func runPipe(r io.Reader, w io.Writer, engine *trigger.Engine, accept bool) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		host := newLineHost(scanner.Text())
		widget := trigger.NewWidget(host, engine)

		if fetch := widget.HandleInput(); fetch != nil {
			widget.Deliver(fetch())
		}

		snap := engine.Snapshot()
		switch {
		case !snap.IsOpen:
			fmt.Fprintln(w, host.Text())
		case accept:
			if handled, _ := widget.HandleKey(trigger.IntentAccept); !handled {
				widget.Abort()
			}
			fmt.Fprintln(w, host.Text())
		default:
			writeSession(w, snap, engine.Config().Trigger())
		}

		// Each line is its own edit session.
		widget.Blur()
	}
	return scanner.Err()
}

// writeSession prints plain text so the output stays scriptable.
func writeSession(w io.Writer, snap trigger.Snapshot, char rune) {
	fmt.Fprintf(w, "%c%s at %d\n", char, snap.Query, snap.Start)

	if snap.Err != nil {
		fmt.Fprintln(w, "  options unavailable: "+snap.Err.Error())
		return
	}
	for i, o := range snap.Options {
		marker := "  "
		if i == snap.Highlighted {
			marker = "> "
		}
		line := marker + o.Label
		if o.Detail != "" {
			line += "  " + o.Detail
		}
		fmt.Fprintln(w, line)
	}
}
