/*
This file is derived from the textinput component from
github.com/charmbracelet/bubbles

# MIT License

# Copyright (c) 2020-2023 Charmbracelet, Inc

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.
*/
package triggerinput

import (
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/runeutil"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/robottwo/trigline/pkg/trigger"
)

// ============================================================================
// Internal Messages
// ============================================================================

type (
	pasteMsg    string
	pasteErrMsg struct{ error }

	// optionsMsg carries a provider result back onto the update loop.
	optionsMsg trigger.Result
)

// ============================================================================
// Types and Configuration
// ============================================================================

// KeyMap is the key bindings for the input and its options menu.
type KeyMap struct {
	CharacterForward        key.Binding
	CharacterBackward       key.Binding
	WordForward             key.Binding
	WordBackward            key.Binding
	DeleteWordBackward      key.Binding
	DeleteWordForward       key.Binding
	DeleteAfterCursor       key.Binding
	DeleteBeforeCursor      key.Binding
	DeleteCharacterBackward key.Binding
	DeleteCharacterForward  key.Binding
	LineStart               key.Binding
	LineEnd                 key.Binding
	Paste                   key.Binding
	Yank                    key.Binding
	YankPop                 key.Binding

	// Menu bindings. They only take effect while a session is open;
	// otherwise the key reaches the input (or the parent program).
	NextOption key.Binding
	PrevOption key.Binding
	Accept     key.Binding
	Dismiss    key.Binding
}

// DefaultKeyMap is the default set of key bindings.
var DefaultKeyMap = KeyMap{
	CharacterForward:        key.NewBinding(key.WithKeys("right", "ctrl+f")),
	CharacterBackward:       key.NewBinding(key.WithKeys("left", "ctrl+b")),
	WordForward:             key.NewBinding(key.WithKeys("alt+right", "ctrl+right", "alt+f")),
	WordBackward:            key.NewBinding(key.WithKeys("alt+left", "ctrl+left", "alt+b")),
	DeleteWordBackward:      key.NewBinding(key.WithKeys("alt+backspace", "ctrl+w")),
	DeleteWordForward:       key.NewBinding(key.WithKeys("alt+delete", "alt+d")),
	DeleteAfterCursor:       key.NewBinding(key.WithKeys("ctrl+k")),
	DeleteBeforeCursor:      key.NewBinding(key.WithKeys("ctrl+u")),
	DeleteCharacterBackward: key.NewBinding(key.WithKeys("backspace", "ctrl+h")),
	DeleteCharacterForward:  key.NewBinding(key.WithKeys("delete", "ctrl+d")),
	LineStart:               key.NewBinding(key.WithKeys("home", "ctrl+a")),
	LineEnd:                 key.NewBinding(key.WithKeys("end", "ctrl+e")),
	Paste:                   key.NewBinding(key.WithKeys("ctrl+v")),
	Yank:                    key.NewBinding(key.WithKeys("ctrl+y")),
	YankPop:                 key.NewBinding(key.WithKeys("alt+y")),
	NextOption:              key.NewBinding(key.WithKeys("down", "ctrl+n")),
	PrevOption:              key.NewBinding(key.WithKeys("up", "ctrl+p")),
	Accept:                  key.NewBinding(key.WithKeys("enter", "tab")),
	Dismiss:                 key.NewBinding(key.WithKeys("esc")),
}

// ============================================================================
// Model
// ============================================================================

// Model is a single-line text input with trigger-activated autocomplete.
// The trigger engine is shared by copies of the model.
type Model struct {
	Err error

	Prompt      string
	Placeholder string
	Cursor      cursor.Model

	// Styles. These will be applied as inline styles.
	PromptStyle       lipgloss.Style
	TextStyle         lipgloss.Style
	PlaceholderStyle  lipgloss.Style
	MenuStyle         lipgloss.Style
	ItemStyle         lipgloss.Style
	SelectedItemStyle lipgloss.Style
	DetailStyle       lipgloss.Style
	StatusStyle       lipgloss.Style
	ErrorStyle        lipgloss.Style

	// CharLimit is the maximum amount of characters this input element will
	// accept. If 0 or less, there's no limit.
	CharLimit int

	// Width marks the horizontal boundary for the input line. Content that
	// exceeds it is wrapped. If 0 or less this setting is ignored.
	Width int

	// MenuWidth bounds the options menu. If 0 or less it follows Width.
	MenuWidth int

	KeyMap KeyMap

	focus bool
	pos   int
	value []rune
	rsan  runeutil.Sanitizer

	killRing killRing

	engine *trigger.Engine
}

// ============================================================================
// Constructor
// ============================================================================

// New creates a new model driven by engine.
func New(engine *trigger.Engine) Model {
	return Model{
		Prompt:            "> ",
		Cursor:            cursor.New(),
		KeyMap:            DefaultKeyMap,
		PlaceholderStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		MenuStyle:         lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("62")),
		ItemStyle:         lipgloss.NewStyle().PaddingLeft(1).PaddingRight(1),
		SelectedItemStyle: lipgloss.NewStyle().PaddingLeft(1).PaddingRight(1).Foreground(lipgloss.Color("170")).Bold(true),
		DetailStyle:       lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		StatusStyle:       lipgloss.NewStyle().PaddingLeft(1).Foreground(lipgloss.Color("240")).Italic(true),
		ErrorStyle:        lipgloss.NewStyle().PaddingLeft(1).Foreground(lipgloss.Color("9")),

		value:  []rune{},
		engine: engine,
	}
}

// Engine returns the trigger engine behind the model.
func (m Model) Engine() *trigger.Engine {
	return m.engine
}

// ============================================================================
// Value Management
// ============================================================================

// SetValue sets the value of the text input, moves the cursor to the end and
// re-scans. The returned command fetches options when the engine uses a
// provider.
func (m *Model) SetValue(s string) tea.Cmd {
	runes := m.san().Sanitize([]rune(s))
	if m.CharLimit > 0 && len(runes) > m.CharLimit {
		runes = runes[:m.CharLimit]
	}
	m.value = runes
	m.CursorEnd()
	return m.sync()
}

// Value returns the value of the text input.
func (m Model) Value() string {
	return string(m.value)
}

// Position returns the cursor position.
func (m Model) Position() int {
	return m.pos
}

// SetCursor moves the cursor to the given position. If the position is
// out of bounds the cursor will be moved to the start or end accordingly.
func (m *Model) SetCursor(pos int) {
	m.pos = clamp(pos, 0, len(m.value))
}

// CursorStart moves the cursor to the start of the input field.
func (m *Model) CursorStart() {
	m.SetCursor(0)
}

// CursorEnd moves the cursor to the end of the input field.
func (m *Model) CursorEnd() {
	m.SetCursor(len(m.value))
}

// Reset clears the input and closes any open session.
func (m *Model) Reset() {
	m.value = []rune{}
	m.pos = 0
	m.engine.Close()
}

// ============================================================================
// Focus and Blur
// ============================================================================

// Focused returns the focus state on the model.
func (m Model) Focused() bool {
	return m.focus
}

// Focus sets the focus state on the model. When the model is in focus it can
// receive keyboard input and the cursor will be shown.
func (m *Model) Focus() tea.Cmd {
	m.focus = true
	return m.Cursor.Focus()
}

// Blur removes the focus state on the model and closes any open session.
func (m *Model) Blur() {
	m.focus = false
	m.Cursor.Blur()
	m.engine.Close()
}

// ============================================================================
// Session commands
// ============================================================================

// Consumes reports whether the open session would handle msg. Parent models
// use it to decide whether Enter submits the line or commits an option.
func (m Model) Consumes(msg tea.KeyMsg) bool {
	snap := m.engine.Snapshot()
	return trigger.Route(snap.IsOpen, snap.Highlighted, m.intentFor(msg)).Consumed()
}

// Select commits the listed option with the given id.
func (m *Model) Select(id string) tea.Cmd {
	splice, _, ok := m.engine.CommitID(id)
	if !ok {
		return nil
	}
	m.applySplice(splice)
	return m.sync()
}

// Navigate moves the menu highlight by delta.
func (m *Model) Navigate(delta int) {
	m.engine.Navigate(delta)
}

// Abort closes the menu without changing the text.
func (m *Model) Abort() {
	m.engine.Abort()
}

// sync re-scans the buffer. A provider fetch runs as a command and its result
// returns to Update as an optionsMsg.
func (m *Model) sync() tea.Cmd {
	fetch := m.engine.Sync(string(m.value), m.pos)
	if fetch == nil {
		return nil
	}
	return func() tea.Msg {
		return optionsMsg(fetch())
	}
}

func (m *Model) applySplice(s trigger.Splice) {
	m.value = []rune(s.Text)
	m.SetCursor(s.Caret)
}

// intentFor translates a key press into a trigger intent.
func (m Model) intentFor(msg tea.KeyMsg) trigger.Intent {
	switch {
	case key.Matches(msg, m.KeyMap.NextOption):
		return trigger.IntentDown
	case key.Matches(msg, m.KeyMap.PrevOption):
		return trigger.IntentUp
	case key.Matches(msg, m.KeyMap.Accept):
		return trigger.IntentAccept
	case key.Matches(msg, m.KeyMap.Dismiss):
		return trigger.IntentEscape
	case key.Matches(msg,
		m.KeyMap.DeleteWordBackward, m.KeyMap.DeleteWordForward,
		m.KeyMap.DeleteAfterCursor, m.KeyMap.DeleteBeforeCursor,
		m.KeyMap.DeleteCharacterBackward, m.KeyMap.DeleteCharacterForward):
		return trigger.IntentDelete
	case key.Matches(msg,
		m.KeyMap.CharacterForward, m.KeyMap.CharacterBackward,
		m.KeyMap.WordForward, m.KeyMap.WordBackward,
		m.KeyMap.LineStart, m.KeyMap.LineEnd):
		return trigger.IntentCaret
	default:
		return trigger.IntentInsert
	}
}

// rsan initializes or retrieves the rune sanitizer.
func (m *Model) san() runeutil.Sanitizer {
	if m.rsan == nil {
		// Single line input: collapse newlines and tabs to single spaces.
		m.rsan = runeutil.NewSanitizer(
			runeutil.ReplaceTabs(" "), runeutil.ReplaceNewlines(" "))
	}
	return m.rsan
}

// ============================================================================
// Update Loop
// ============================================================================

// Update is the Bubble Tea update loop.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if res, ok := msg.(optionsMsg); ok {
		m.engine.Deliver(trigger.Result(res))
		return m, nil
	}

	if !m.focus {
		return m, nil
	}

	oldPos := m.pos
	edited := false

	switch msg := msg.(type) {
	case tea.KeyMsg:
		snap := m.engine.Snapshot()
		action := trigger.Route(snap.IsOpen, snap.Highlighted, m.intentFor(msg))

		switch action.Kind {
		case trigger.ActionNavigate:
			m.engine.Navigate(action.Delta)
			return m, nil
		case trigger.ActionAbort:
			m.engine.Abort()
			return m, nil
		case trigger.ActionCommit:
			if splice, _, ok := m.engine.CommitHighlighted(); ok {
				m.applySplice(splice)
			}
			return m, m.sync()
		}

		edited = true
		killCommand := key.Matches(msg,
			m.KeyMap.DeleteWordBackward, m.KeyMap.DeleteWordForward,
			m.KeyMap.DeleteAfterCursor, m.KeyMap.DeleteBeforeCursor)
		yankCommand := key.Matches(msg, m.KeyMap.Yank, m.KeyMap.YankPop)
		if !killCommand && !yankCommand {
			m.killRing.reset()
		}

		switch {
		case key.Matches(msg, m.KeyMap.DeleteWordBackward):
			m.deleteWordBackward()
		case key.Matches(msg, m.KeyMap.DeleteCharacterBackward):
			m.deleteCharacterBackward()
		case key.Matches(msg, m.KeyMap.WordBackward):
			m.wordBackward()
		case key.Matches(msg, m.KeyMap.CharacterBackward):
			if m.pos > 0 {
				m.SetCursor(m.pos - 1)
			}
		case key.Matches(msg, m.KeyMap.WordForward):
			m.wordForward()
		case key.Matches(msg, m.KeyMap.CharacterForward):
			if m.pos < len(m.value) {
				m.SetCursor(m.pos + 1)
			}
		case key.Matches(msg, m.KeyMap.LineStart):
			m.CursorStart()
		case key.Matches(msg, m.KeyMap.DeleteCharacterForward):
			m.deleteCharacterForward()
		case key.Matches(msg, m.KeyMap.LineEnd):
			m.CursorEnd()
		case key.Matches(msg, m.KeyMap.DeleteAfterCursor):
			m.deleteAfterCursor()
		case key.Matches(msg, m.KeyMap.DeleteBeforeCursor):
			m.deleteBeforeCursor()
		case key.Matches(msg, m.KeyMap.DeleteWordForward):
			m.deleteWordForward()
		case key.Matches(msg, m.KeyMap.Paste):
			return m, Paste
		case key.Matches(msg, m.KeyMap.Yank):
			m.yank()
		case key.Matches(msg, m.KeyMap.YankPop):
			m.yankPop()
		case msg.Type == tea.KeyTab:
			// Nothing to accept: tab is ordinary input, sanitized to a space.
			m.insertRunesFromUserInput([]rune{'\t'})
		case key.Matches(msg, m.KeyMap.NextOption, m.KeyMap.PrevOption, m.KeyMap.Accept, m.KeyMap.Dismiss):
			// Other menu keys with nothing to act on belong to the parent program.
			edited = false
		default:
			m.insertRunesFromUserInput(msg.Runes)
		}

	case pasteMsg:
		m.insertRunesFromUserInput([]rune(msg))
		edited = true

	case pasteErrMsg:
		m.Err = msg
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd

	m.Cursor, cmd = m.Cursor.Update(msg)
	cmds = append(cmds, cmd)

	if oldPos != m.pos && m.Cursor.Mode() == cursor.CursorBlink {
		m.Cursor.Blink = false
		cmds = append(cmds, m.Cursor.BlinkCmd())
	}

	if edited {
		cmds = append(cmds, m.sync())
	}

	return m, tea.Batch(cmds...)
}

// ============================================================================
// Commands
// ============================================================================

// Blink is a command used to initialize cursor blinking.
func Blink() tea.Msg {
	return cursor.Blink()
}

// Paste is a command for pasting from the clipboard into the text input.
func Paste() tea.Msg {
	str, err := clipboard.ReadAll()
	if err != nil {
		return pasteErrMsg{err}
	}
	return pasteMsg(str)
}
