package trigger

// Descriptor describes the autocomplete session found at the caret. Start is
// the rune offset of the trigger character itself and Query is the text
// between the trigger and the caret.
type Descriptor struct {
	Active bool
	Start  int
	Query  string
}

// End returns the rune offset just past the query, which is the caret the
// descriptor was scanned at.
func (d Descriptor) End() int {
	if !d.Active {
		return 0
	}
	return d.Start + 1 + len([]rune(d.Query))
}

// Scan walks backward from the caret over query characters and reports an
// active session when it stops on a trigger that sits on a word boundary.
//
// Scan keeps no state. Callers re-run it on every text or caret change, so
// pastes and programmatic edits need no special handling. A caret past the
// end of text is clamped.
func Scan(text []rune, caret int, cfg Config) Descriptor {
	caret = clamp(caret, 0, len(text))
	if caret == 0 {
		return Descriptor{}
	}

	i := caret
	for i > 0 && cfg.inQuery(text[i-1]) {
		i--
	}
	if i == 0 {
		return Descriptor{}
	}

	start := i - 1
	if text[start] != cfg.trigger {
		return Descriptor{}
	}
	if start > 0 && !cfg.boundary(text[start-1]) {
		return Descriptor{}
	}

	return Descriptor{
		Active: true,
		Start:  start,
		Query:  string(text[start+1 : caret]),
	}
}

// ScanString is Scan over a string.
func ScanString(text string, caret int, cfg Config) Descriptor {
	return Scan([]rune(text), caret, cfg)
}
