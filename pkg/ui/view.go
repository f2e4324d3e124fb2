package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// View renders the UI based on the current route and open dialog
func (m Model) View() string {
	var sb strings.Builder

	switch {
	case m.route == routeLogin:
		sb.WriteString(m.login.View())

	case m.route == routeHelp:
		sb.WriteString(m.renderHelp())

	case m.filterDialog.IsOpen():
		sb.WriteString(m.titleBar())
		sb.WriteString("\n\n")
		sb.WriteString(m.filterDialog.View())

	case m.addTodo.IsOpen():
		sb.WriteString(m.titleBar())
		sb.WriteString("\n\n")
		sb.WriteString(m.addTodo.View())

	case m.chooser.IsOpen():
		sb.WriteString(m.titleBar())
		sb.WriteString("\n\n")
		sb.WriteString(m.chooser.View())

	case m.deleting != nil:
		var body strings.Builder
		body.WriteString(m.theme.Error.Render("Delete Todo"))
		body.WriteString("\n\n")
		body.WriteString("Are you sure you want to delete this todo?\n\n")
		body.WriteString(fmt.Sprintf("Subject: %s\n", m.deleting.Subject))
		if m.deleting.Description != "" {
			body.WriteString(fmt.Sprintf("Description: %s\n", m.deleting.Description))
		}
		body.WriteString("\n")
		body.WriteString(lipgloss.NewStyle().Bold(true).Render("Press Y to confirm, N to cancel"))
		sb.WriteString(m.titleBar())
		sb.WriteString("\n\n")
		sb.WriteString(m.theme.DangerBox.Render(body.String()))

	default:
		sb.WriteString(m.titleBar())
		sb.WriteString("\n\n")
		if len(m.table.Rows()) == 0 {
			sb.WriteString(m.theme.Muted.Render("  Nothing to show. Press " + m.keyMap.AddTodo.Help().Key + " to add a todo."))
			sb.WriteString("\n")
		} else {
			sb.WriteString(m.table.View())
			sb.WriteString("\n")
		}
		sb.WriteString(m.viewInfo())
		sb.WriteString("\n")
	}

	if m.status != "" {
		sb.WriteString("\n")
		sb.WriteString(m.theme.Muted.Render(m.status))
	}

	// Error message if any
	if m.err != nil {
		sb.WriteString("\n")
		sb.WriteString(m.theme.Error.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	// Add help status bar at the bottom
	sb.WriteString("\n")
	sb.WriteString(m.helpBar())

	return sb.String()
}

func (m Model) titleBar() string {
	title := m.theme.Title.Render(fmt.Sprintf(" todoshell - %s ", m.currentList.Name))
	if m.user == nil {
		return title
	}
	return title + " " + m.theme.Muted.Render(m.user.DisplayName())
}

// viewInfo summarises the visible items and the applied filter
func (m Model) viewInfo() string {
	info := fmt.Sprintf("Showing %d of %d todos", len(m.shown), len(m.items))
	chips := m.filter.Chips()
	if len(chips) == 0 {
		return m.theme.Normal.Render(info + " (no filter)")
	}
	return m.theme.Normal.Render(info+" | ") + m.theme.Muted.Render(strings.Join(chips, ", "))
}

func (m Model) renderHelp() string {
	var sb strings.Builder

	// Fullscreen commands view
	sb.WriteString(lipgloss.NewStyle().Bold(true).Render("Available Commands"))
	sb.WriteString("\n\n")

	addCommand := func(binding key.Binding) {
		sb.WriteString(fmt.Sprintf("%s: %s\n",
			m.theme.Desc.Render(binding.Help().Desc),
			m.theme.Key.Render(strings.Join(binding.Keys(), ", "))))
	}
	for _, binding := range m.keyMap.HelpBindings() {
		addCommand(binding)
	}

	sb.WriteString("\n")
	sb.WriteString(lipgloss.NewStyle().Bold(true).Render("Filter Dialog"))
	sb.WriteString("\n\n")
	for _, line := range [][2]string{
		{"move between rows", "↑/↓, tab"},
		{"apply or ignore a criterion", "space"},
		{"switch a criterion's value", "enter, ←/→"},
		{"reorder kanban columns", "shift+↑/↓, K/J"},
		{"remove kanban column", "d"},
		{"close", "esc"},
	} {
		sb.WriteString(fmt.Sprintf("%s: %s\n", m.theme.Desc.Render(line[0]), m.theme.Key.Render(line[1])))
	}

	return sb.String()
}

// helpBar renders a sleek status bar with available actions
func (m Model) helpBar() string {
	var actions []string

	separator := m.theme.Separator.Render(" • ")

	addAction := func(k, desc string) {
		actions = append(actions, fmt.Sprintf("%s %s", m.theme.Key.Render(k), m.theme.Desc.Render(desc)))
	}
	addBinding := func(b key.Binding, desc string) {
		addAction(b.Help().Key, desc)
	}

	switch {
	case m.route == routeLogin:
		addAction("tab", "next field")
		addAction("enter", "sign in")
		addAction("esc", "quit")

	case m.route == routeHelp:
		addAction(m.keyMap.ShowHelp.Help().Key+"/esc", "back")
		addBinding(m.keyMap.QuitApp, "quit")

	case m.filterDialog.IsOpen():
		addAction("↑/↓", "row")
		addAction("space", "apply")
		addAction("enter", "switch")
		addAction("esc", "close")

	case m.addTodo.IsOpen():
		addAction("tab", "next field")
		addAction("ctrl+s", "save")
		addAction("esc", "cancel")

	case m.chooser.IsOpen():
		addAction("↑/↓", "nav")
		addAction("enter", "select")
		addAction("esc", "cancel")

	case m.deleting != nil:
		addAction("y", "confirm")
		addAction("n", "cancel")

	default:
		addBinding(m.keyMap.AddTodo, "add")
		addBinding(m.keyMap.DeleteTodo, "del")
		addBinding(m.keyMap.ToggleCompleted, "done")
		addBinding(m.keyMap.OpenFilter, "filter")
		addBinding(m.keyMap.ChooseTodoList, "lists")
		addAction(m.keyMap.MoveColumnLeft.Help().Key+m.keyMap.MoveColumnRight.Help().Key, "column")
		addBinding(m.keyMap.ShowHelp, "help")
		addBinding(m.keyMap.QuitApp, "quit")
	}

	return strings.Join(actions, separator)
}
