package trigger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommit_EndToEnd(t *testing.T) {
	cfg := mustConfig(t, '#')
	text := []rune("Hello #proj")

	d := Scan(text, len(text), cfg)
	assert.Equal(t, Descriptor{Active: true, Start: 6, Query: "proj"}, d)

	opt := Option{ID: "1", Label: "project-alpha", InsertText: "project-alpha"}
	got := Commit(text, len(text), d, opt)

	assert.Equal(t, "Hello project-alpha", got.Text)
	assert.Equal(t, 6+len("project-alpha"), got.Caret)
}

func TestCommit_PreservesTextOutsideSpan(t *testing.T) {
	cfg := mustConfig(t, '@')
	text := []rune("ping @an - about the release")
	caret := 8 // after "@an"

	d := Scan(text, caret, cfg)
	assert.True(t, d.Active)

	got := Commit(text, caret, d, Option{ID: "ann", Label: "Ann", InsertText: "@ann"})
	after := []rune(got.Text)

	assert.Equal(t, string(text[:d.Start]), string(after[:d.Start]))
	assert.Equal(t, string(text[caret:]), string(after[got.Caret:]))
	assert.Equal(t, "ping @ann - about the release", got.Text)
	assert.Equal(t, 9, got.Caret)
}

func TestCommit_CaretInsideQueryKeepsRest(t *testing.T) {
	cfg := mustConfig(t, '#')
	text := []rune("#project tail")
	caret := 3 // "#pr|oject"

	d := Scan(text, caret, cfg)
	got := Commit(text, caret, d, Option{InsertText: "prod"})

	assert.Equal(t, "prodoject tail", got.Text)
	assert.Equal(t, 4, got.Caret)
}

func TestCommit_InactiveDescriptorIsNoop(t *testing.T) {
	text := []rune("nothing here")
	got := Commit(text, 4, Descriptor{}, Option{InsertText: "x"})

	assert.Equal(t, "nothing here", got.Text)
	assert.Equal(t, 4, got.Caret)
}

func TestCommit_ClampsCaretBeyondText(t *testing.T) {
	text := []rune("#ab")
	d := Descriptor{Active: true, Start: 0, Query: "ab"}

	got := Commit(text, 50, d, Option{InsertText: "abc"})
	assert.Equal(t, "abc", got.Text)
	assert.Equal(t, 3, got.Caret)
}

func TestCommit_FallsBackToLabel(t *testing.T) {
	text := []rune("#x")
	d := Descriptor{Active: true, Start: 0, Query: "x"}

	got := Commit(text, 2, d, Option{Label: "xylophone"})
	assert.Equal(t, "xylophone", got.Text)
	assert.Equal(t, 9, got.Caret)
}
