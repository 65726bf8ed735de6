// Copyright (c) 2026 The confctl Authors.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	footerStyle = lipgloss.NewStyle().Faint(true).Padding(0, 1)

	addStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	delStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hunkStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
)

// Colorize styles diff lines: additions green, deletions red, hunk headers
// cyan. File headers keep the add/del colors so the direction stays obvious.
func Colorize(diff string) string {
	var b strings.Builder
	for _, line := range splitKeepNewlines(diff) {
		switch {
		case strings.HasPrefix(line, "@@"):
			b.WriteString(hunkStyle.Render(strings.TrimSuffix(line, "\n")) + "\n")
		case strings.HasPrefix(line, "+"):
			b.WriteString(addStyle.Render(strings.TrimSuffix(line, "\n")) + "\n")
		case strings.HasPrefix(line, "-"):
			b.WriteString(delStyle.Render(strings.TrimSuffix(line, "\n")) + "\n")
		default:
			b.WriteString(line)
		}
	}
	return b.String()
}

// Page shows content in a scrollable full-screen viewport until the operator
// quits. Used instead of spawning an external pager so the decision prompt
// regains the terminal cleanly afterwards.
func Page(title, content string) error {
	p := tea.NewProgram(
		pagerModel{title: title, content: content},
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}

type pagerModel struct {
	title    string
	content  string
	viewport viewport.Model
	ready    bool
}

func (m pagerModel) Init() tea.Cmd { return nil }

func (m pagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		headerHeight := lipgloss.Height(m.headerView())
		footerHeight := lipgloss.Height(m.footerView())
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-headerHeight-footerHeight)
			m.viewport.SetContent(m.content)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - headerHeight - footerHeight
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m pagerModel) View() string {
	if !m.ready {
		return "\n  loading..."
	}
	return m.headerView() + "\n" + m.viewport.View() + "\n" + m.footerView()
}

func (m pagerModel) headerView() string {
	return titleStyle.Render(m.title)
}

func (m pagerModel) footerView() string {
	return footerStyle.Render("↑/↓ PgUp/PgDn: scroll   q/ESC: back to prompt")
}
