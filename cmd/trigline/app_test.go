package main

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func sendKeys(a app, s string) app {
	for _, r := range s {
		m, _ := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		a = m.(app)
	}
	return a
}

func press(a app, k tea.KeyType) (app, tea.Cmd) {
	m, cmd := a.Update(tea.KeyMsg{Type: k})
	return m.(app), cmd
}

func TestApp_EnterCommitsThenSubmits(t *testing.T) {
	a := newApp(newTestEngine(t), zap.NewNop())

	a = sendKeys(a, "ship #rel")
	assert.Contains(t, a.View(), "release")

	a, _ = press(a, tea.KeyEnter)
	assert.Equal(t, "ship release", a.input.Value(), "enter commits the highlighted option")
	assert.Empty(t, a.submitted)

	a, cmd := press(a, tea.KeyEnter)
	assert.NotNil(t, cmd)
	assert.Equal(t, []string{"ship release"}, a.submitted, "enter with a closed menu submits")
	assert.Empty(t, a.input.Value())
}

func TestApp_EscapeThenNewLine(t *testing.T) {
	a := newApp(newTestEngine(t), zap.NewNop())

	a = sendKeys(a, "#zz")
	a, _ = press(a, tea.KeyEsc)
	assert.False(t, a.input.Engine().IsOpen())

	a, _ = press(a, tea.KeyEnter)
	require.Equal(t, []string{"#zz"}, a.submitted)

	a = sendKeys(a, "#re")
	assert.True(t, a.input.Engine().IsOpen(), "a cleared line starts fresh")
}

func TestApp_BlankLineIsNotSubmitted(t *testing.T) {
	a := newApp(newTestEngine(t), zap.NewNop())
	a = sendKeys(a, "   ")

	a, cmd := press(a, tea.KeyEnter)
	assert.Nil(t, cmd)
	assert.Empty(t, a.submitted)
}

func TestApp_Quit(t *testing.T) {
	a := newApp(newTestEngine(t), zap.NewNop())
	a = sendKeys(a, "#re")

	a, cmd := press(a, tea.KeyCtrlC)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, a.quitting)
	assert.Empty(t, a.View())
	assert.False(t, a.input.Engine().IsOpen())
}

func TestApp_CtrlDOnEmptyLineQuits(t *testing.T) {
	a := newApp(newTestEngine(t), zap.NewNop())

	_, cmd := press(a, tea.KeyCtrlD)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestApp_WindowSize(t *testing.T) {
	a := newApp(newTestEngine(t), zap.NewNop())

	m, _ := a.Update(tea.WindowSizeMsg{Width: 60, Height: 20})
	assert.Equal(t, 59, m.(app).input.Width)
}
