package ui

import (
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"todoshell/pkg/config"
	"todoshell/pkg/models"
	"todoshell/pkg/storage"
)

// ListChooser shows the supplied todo lists in a table
type ListChooser struct {
	open  bool
	lists []models.TodoList
	table table.Model

	modals *storage.ModalStorage
	theme  Theme
}

// NewListChooser creates a closed chooser
func NewListChooser(modals *storage.ModalStorage, theme Theme, styles config.Styles) ListChooser {
	t := table.New(
		table.WithColumns([]table.Column{{Title: "Todo lists", Width: 40}}),
		table.WithFocused(true),
		table.WithHeight(8),
	)
	t.SetStyles(theme.TableStyles(styles))

	return ListChooser{
		table:  t,
		modals: modals,
		theme:  theme,
	}
}

// Open shows lists with the cursor on currentUUID
func (c *ListChooser) Open(lists []models.TodoList, currentUUID string) {
	c.open = true
	c.lists = lists

	rows := make([]table.Row, len(lists))
	cursor := 0
	for i, l := range lists {
		rows[i] = table.Row{l.Name}
		if l.UUID == currentUUID {
			cursor = i
		}
	}
	c.table.SetRows(rows)
	c.table.SetCursor(cursor)
	c.modals.SetModalIsOpen(true, storage.ModalTodoListChooser)
}

func (c *ListChooser) Close() {
	c.open = false
	c.modals.SetModalIsOpen(false, storage.ModalTodoListChooser)
}

func (c ListChooser) IsOpen() bool {
	return c.open
}

// Update handles navigation; enter closes the chooser and emits the selection
func (c ListChooser) Update(msg tea.Msg) (ListChooser, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	switch keyMsg.String() {
	case "esc", "q", "ctrl+c":
		c.Close()
		return c, nil
	case "enter":
		idx := c.table.Cursor()
		if idx < 0 || idx >= len(c.lists) {
			return c, nil
		}
		selected := c.lists[idx]
		c.Close()
		return c, func() tea.Msg {
			return TodoListSelectedMsg{List: selected}
		}
	}

	var cmd tea.Cmd
	c.table, cmd = c.table.Update(keyMsg)
	return c, cmd
}

func (c ListChooser) View() string {
	body := c.theme.Title.Render(" Choose Todo List ") + "\n\n" + c.table.View()
	return c.theme.Box.Render(body)
}
