package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/robottwo/trigline/pkg/trigger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testOptions = []trigger.Option{
	{ID: "p1", Label: "project-alpha", InsertText: "project-alpha", Detail: "Platform rewrite"},
	{ID: "p2", Label: "project-beta", InsertText: "project-beta"},
	{ID: "r1", Label: "release", InsertText: "release"},
}

func newTestEngine(t *testing.T) *trigger.Engine {
	t.Helper()
	cfg, err := trigger.NewConfig('#')
	require.NoError(t, err)
	e, err := trigger.NewEngine(cfg, trigger.Static(testOptions), nil)
	require.NoError(t, err)
	return e
}

func TestRunPipe_ListsSessions(t *testing.T) {
	in := strings.NewReader("no trigger here\nHello #proj\n")
	var out bytes.Buffer

	require.NoError(t, runPipe(in, &out, newTestEngine(t), false))

	assert.Equal(t, strings.Join([]string{
		"no trigger here",
		"#proj at 6",
		"> project-beta",
		"  project-alpha  Platform rewrite",
		"",
	}, "\n"), out.String())
}

func TestRunPipe_Accept(t *testing.T) {
	in := strings.NewReader("Hello #proj\n#zz\n#rel\nplain\n")
	var out bytes.Buffer

	require.NoError(t, runPipe(in, &out, newTestEngine(t), true))

	assert.Equal(t, strings.Join([]string{
		"Hello project-beta",
		"#zz",
		"release",
		"plain",
		"",
	}, "\n"), out.String())
}

func TestLineHost(t *testing.T) {
	h := newLineHost("héllo #x")
	assert.Equal(t, 8, h.Caret(), "caret counts runes")

	h.SetText("abc")
	h.SetCaret(1)
	assert.Equal(t, "abc", h.Text())
	assert.Equal(t, 1, h.Caret())
}
