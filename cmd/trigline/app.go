package main

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/robottwo/trigline/internal/styles"
	"github.com/robottwo/trigline/pkg/trigger"
	"github.com/robottwo/trigline/pkg/triggerinput"
	"go.uber.org/zap"
)

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))

// app hosts one trigger input. Submitted lines are printed above the
// input and kept in submitted.
type app struct {
	input     triggerinput.Model
	logger    *zap.Logger
	submitted []string
	quitting  bool
}

func newApp(engine *trigger.Engine, logger *zap.Logger) app {
	input := triggerinput.New(engine)
	input.Placeholder = "type " + string(engine.Config().Trigger()) + " to insert an option"
	input.Focus()

	return app{
		input:  input,
		logger: logger,
	}
}

func (a app) Init() tea.Cmd {
	return triggerinput.Blink
}

func (a app) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.input.Width = msg.Width - 1
		return a, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			a.quitting = true
			a.input.Blur()
			return a, tea.Quit
		case tea.KeyCtrlD:
			if a.input.Value() == "" {
				a.quitting = true
				return a, tea.Quit
			}
		case tea.KeyEnter:
			if !a.input.Consumes(msg) {
				return a.submit()
			}
		}
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// submit accepts the current line as final output.
func (a app) submit() (tea.Model, tea.Cmd) {
	line := a.input.Value()
	a.input.Reset()
	if strings.TrimSpace(line) == "" {
		return a, nil
	}

	a.submitted = append(a.submitted, line)
	a.logger.Debug("line submitted", zap.String("line", line))
	return a, tea.Println(styles.COMMITTED("> ") + line)
}

func (a app) View() string {
	if a.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(a.input.View())
	if menu := a.input.MenuView(); menu != "" {
		b.WriteString("\n")
		b.WriteString(menu)
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter submit • esc close list • ctrl+c quit"))
	return b.String()
}
