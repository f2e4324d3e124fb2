package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"todoshell/pkg/models"
	"todoshell/pkg/storage"
	"todoshell/pkg/utils"
)

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case LoggedInMsg:
		if err := m.SetUser(&msg.User); err != nil {
			m.setError(err)
		}

	case FilterChangedMsg:
		f := msg.Filter
		if err := m.SetFilter(&f); err != nil {
			m.setError(err)
		}

	case TodoItemAddedMsg:
		m.addItem(msg.Item)

	case TodoListSelectedMsg:
		utils.Log("Selected todo list %s", msg.List.UUID)
		m.currentList = msg.List
		m.table.SetCursor(0)
		if err := m.loadItems(); err != nil {
			m.setError(err)
		}

	case openAddTodoMsg:
		// another modal may have opened while the tick was pending
		if m.route == routeTodos && !m.deps.Modals.IsModalOpen() {
			m.addTodo.Open(m.currentList.UUID, m.newItemColumn())
		}

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// handleKey routes a key press to the login form, the open dialog or the
// todo view
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch {
	case m.route == routeLogin:
		m.login, cmd = m.login.Update(msg)
		return m, cmd

	case m.filterDialog.IsOpen():
		m.filterDialog, cmd = m.filterDialog.Update(msg)
		return m, cmd

	case m.addTodo.IsOpen():
		m.addTodo, cmd = m.addTodo.Update(msg)
		return m, cmd

	case m.chooser.IsOpen():
		m.chooser, cmd = m.chooser.Update(msg)
		return m, cmd

	case m.deleting != nil:
		switch msg.String() {
		case "y", "Y":
			m.deleteConfirmed()
		case "n", "N", "esc":
			m.closeDeleteConfirm()
		}
		return m, nil

	case m.route == routeHelp:
		switch {
		case key.Matches(msg, m.keyMap.QuitApp):
			return m, tea.Quit
		case key.Matches(msg, m.keyMap.ShowHelp), msg.String() == "esc":
			m.route = routeTodos
			m.deps.Modals.SetModalIsOpen(false, storage.ModalHelp)
		}
		return m, nil
	}

	m.status = ""

	switch {
	case key.Matches(msg, m.keyMap.QuitApp):
		return m, tea.Quit

	case key.Matches(msg, m.keyMap.ShowHelp):
		m.route = routeHelp
		m.deps.Modals.SetModalIsOpen(true, storage.ModalHelp)

	case key.Matches(msg, m.keyMap.AddTodo), isAddTodoShortcut(msg):
		return m, requestAddTodo(m.deps.Modals)

	case key.Matches(msg, m.keyMap.ToggleCompleted):
		m.updateSelected(func(item *models.TodoItem) { item.Completed = !item.Completed })

	case key.Matches(msg, m.keyMap.TogglePriority):
		m.updateSelected(func(item *models.TodoItem) { item.IsPriority = !item.IsPriority })

	case key.Matches(msg, m.keyMap.ToggleArchived):
		m.updateSelected(func(item *models.TodoItem) { item.Archived = !item.Archived })

	case key.Matches(msg, m.keyMap.DeleteTodo):
		if item, ok := m.selectedItem(); ok {
			m.deleting = &item
			m.deps.Modals.SetModalIsOpen(true, storage.ModalDeleteConfirm)
		}

	case key.Matches(msg, m.keyMap.MoveColumnLeft):
		m.moveSelectedColumn(-1)

	case key.Matches(msg, m.keyMap.MoveColumnRight):
		m.moveSelectedColumn(1)

	case key.Matches(msg, m.keyMap.OpenFilter):
		m.filterDialog.Open(m.filter)

	case key.Matches(msg, m.keyMap.ChooseTodoList):
		if err := m.loadLists(); err != nil {
			m.setError(err)
			return m, nil
		}
		m.chooser.Open(m.lists, m.currentList.UUID)

	case key.Matches(msg, m.keyMap.Logout):
		if err := m.SetUser(nil); err != nil {
			m.setError(err)
		}

	default:
		m.table, cmd = m.table.Update(msg)
	}

	return m, cmd
}

func (m *Model) closeDeleteConfirm() {
	m.deleting = nil
	m.deps.Modals.SetModalIsOpen(false, storage.ModalDeleteConfirm)
}
