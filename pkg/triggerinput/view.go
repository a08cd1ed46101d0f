package triggerinput

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/ansi"
	"github.com/muesli/reflow/wrap"
	"github.com/rivo/uniseg"
)

const (
	defaultMenuWidth = 40
	ellipsis         = "…"
)

// View renders the input line with prompt and cursor.
func (m Model) View() string {
	styleText := m.TextStyle.Inline(true).Render

	value := m.value
	pos := max(0, m.pos)

	if len(value) == 0 && m.Placeholder != "" {
		return m.placeholderView()
	}

	v := m.PromptStyle.Render(m.Prompt) + styleText(string(value[:pos]))

	if pos < len(value) {
		m.Cursor.SetChar(string(value[pos]))
		v += m.Cursor.View()
		v += styleText(string(value[pos+1:]))
	} else {
		m.Cursor.SetChar(" ")
		v += m.Cursor.View()
	}

	totalWidth := ansi.PrintableRuneWidth(v)

	// If a max width is set, we need to respect the horizontal boundary
	if m.Width > 0 {
		if totalWidth <= m.Width {
			// fill empty spaces with the background color
			v += styleText(strings.Repeat(" ", m.Width-totalWidth))
		} else {
			v = wrap.String(v, m.Width)
		}
	}

	return v
}

func (m Model) placeholderView() string {
	p := []rune(m.Placeholder)

	m.Cursor.TextStyle = m.PlaceholderStyle
	m.Cursor.SetChar(string(p[:1]))

	v := m.PromptStyle.Render(m.Prompt) + m.Cursor.View()
	if len(p) > 1 {
		v += m.PlaceholderStyle.Inline(true).Render(string(p[1:]))
	}
	return v
}

// MenuView renders the open session's options, one per line, with the
// highlighted option styled as selected. It returns an empty string while
// no session is open.
func (m Model) MenuView() string {
	snap := m.engine.Snapshot()
	if !snap.IsOpen {
		return ""
	}

	width := m.menuWidth()
	var lines []string

	switch {
	case snap.Err != nil:
		msg := wrap.String("options unavailable: "+snap.Err.Error(), width)
		lines = append(lines, m.ErrorStyle.Render(msg))
	case len(snap.Options) == 0 && snap.Loading:
		lines = append(lines, m.StatusStyle.Render("searching"+ellipsis))
	case len(snap.Options) == 0:
		lines = append(lines, m.StatusStyle.Render("no matches"))
	}

	labelWidth := 0
	for _, o := range snap.Options {
		labelWidth = max(labelWidth, uniseg.StringWidth(o.Label))
	}
	labelWidth = min(labelWidth, width)

	for i, o := range snap.Options {
		label := runewidth.Truncate(o.Label, labelWidth, ellipsis)
		line := label + strings.Repeat(" ", max(0, labelWidth-runewidth.StringWidth(label)))

		if room := width - labelWidth - 2; o.Detail != "" && room > 3 {
			line += "  " + m.DetailStyle.Render(runewidth.Truncate(o.Detail, room, ellipsis))
		}

		style := m.ItemStyle
		if i == snap.Highlighted {
			style = m.SelectedItemStyle
		}
		lines = append(lines, style.Render(line))
	}

	if snap.Loading && len(snap.Options) > 0 {
		lines = append(lines, m.StatusStyle.Render("updating"+ellipsis))
	}

	return m.MenuStyle.Render(strings.Join(lines, "\n"))
}

func (m Model) menuWidth() int {
	switch {
	case m.MenuWidth > 0:
		return m.MenuWidth
	case m.Width > 4:
		return m.Width - 4
	default:
		return defaultMenuWidth
	}
}
