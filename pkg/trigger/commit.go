package trigger

// Splice is the result of a commit: the full new text and the caret to place
// immediately after the inserted option.
type Splice struct {
	Text  string
	Caret int
}

// Commit replaces the span from the trigger character up to the caret with
// the option's insert text. Runes before d.Start and from the caret onward
// are copied unchanged. An inactive descriptor returns the text untouched.
//
// The caret is clamped to the text, and to no less than d.Start, so a host
// that reports a stale caret cannot cause an out-of-range slice.
func Commit(text []rune, caret int, d Descriptor, opt Option) Splice {
	caret = clamp(caret, 0, len(text))
	if !d.Active || d.Start >= len(text) {
		return Splice{Text: string(text), Caret: caret}
	}

	start := clamp(d.Start, 0, len(text))
	end := clamp(caret, start, len(text))
	replacement := []rune(opt.Text())

	newValue := make([]rune, 0, len(text)-end+start+len(replacement))
	newValue = append(newValue, text[:start]...)
	newValue = append(newValue, replacement...)
	newValue = append(newValue, text[end:]...)

	return Splice{
		Text:  string(newValue),
		Caret: start + len(replacement),
	}
}
