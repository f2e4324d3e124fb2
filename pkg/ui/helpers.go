package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"

	"todoshell/pkg/filter"
	"todoshell/pkg/models"
)

// refreshRows applies the filter and grouping to the loaded items
func (m *Model) refreshRows() {
	visible := m.filter.Apply(m.items, m.deps.Now())
	groupedItems := GroupItems(visible, m.filter)
	grouped := m.filter.Group != filter.GroupNone

	m.shown = nil
	m.rowItems = nil
	m.rowGroups = nil
	tableRows := []table.Row{}

	for gi, group := range groupedItems {
		// Add group header if grouping is enabled
		if grouped {
			header := fmt.Sprintf("== %s (%d) ==", group.GroupName, len(group.Items))
			tableRows = append(tableRows, table.Row{m.theme.Header.Render(header)})
			m.rowItems = append(m.rowItems, -1)
			m.rowGroups = append(m.rowGroups, group.GroupName)
		}

		for _, item := range group.Items {
			tableRows = append(tableRows, table.Row{m.renderItem(item)})
			m.rowItems = append(m.rowItems, len(m.shown))
			m.rowGroups = append(m.rowGroups, group.GroupName)
			m.shown = append(m.shown, item)
		}

		// Add empty line between groups
		if grouped && gi < len(groupedItems)-1 {
			tableRows = append(tableRows, table.Row{""})
			m.rowItems = append(m.rowItems, -1)
			m.rowGroups = append(m.rowGroups, group.GroupName)
		}
	}

	m.table.SetRows(tableRows)
	// the table clamps its cursor to -1 while it has no rows
	if n := len(tableRows); n > 0 {
		if c := m.table.Cursor(); c < 0 {
			m.table.SetCursor(0)
		} else if c >= n {
			m.table.SetCursor(n - 1)
		}
	}
}

// renderItem formats one item as a table row
func (m Model) renderItem(item models.TodoItem) string {
	status := "[ ]"
	if item.Completed {
		status = "[x]"
	}

	subject := item.Subject
	switch {
	case item.Completed:
		subject = m.theme.Completed.Render(subject)
	case item.IsPriority:
		subject = m.theme.Priority.Render("! " + subject)
	}

	parts := []string{status, subject}
	if item.Due != nil {
		parts = append(parts, m.theme.Muted.Render("due "+item.Due.Local().Format("2006-01-02")))
	}
	if item.Archived {
		parts = append(parts, m.theme.Muted.Render("(archived)"))
	}
	return strings.Join(parts, " ")
}

// updateSelected applies fn to the selected item and stores it
func (m *Model) updateSelected(fn func(item *models.TodoItem)) {
	item, ok := m.selectedItem()
	if !ok {
		return
	}
	fn(&item)
	if err := m.deps.Backend.UpdateTodoItem(m.ctx, item); err != nil {
		m.setError(err)
		return
	}
	if err := m.loadItems(); err != nil {
		m.setError(err)
	}
}

// moveSelectedColumn moves the selected item to the adjacent kanban column
func (m *Model) moveSelectedColumn(dir int) {
	item, ok := m.selectedItem()
	if !ok {
		return
	}
	column, ok := nextColumn(m.filter.KanbanColumns, item.KanbanColumn, dir)
	if !ok || column == item.KanbanColumn {
		return
	}
	m.updateSelected(func(item *models.TodoItem) {
		item.KanbanColumn = column
	})
	m.status = fmt.Sprintf("Moved to %s", column)
}

// addItem stores an item submitted from the add-todo dialog
func (m *Model) addItem(item models.TodoItem) {
	if item.TodoListUUID == "" {
		item.TodoListUUID = m.currentList.UUID
	}
	added, err := m.deps.Backend.AddTodoItem(m.ctx, item)
	if err != nil {
		m.setError(err)
		return
	}
	m.status = fmt.Sprintf("Added %q", added.Subject)
	if err := m.loadItems(); err != nil {
		m.setError(err)
	}
}

// deleteConfirmed removes the item awaiting confirmation
func (m *Model) deleteConfirmed() {
	if m.deleting == nil {
		return
	}
	item := *m.deleting
	m.closeDeleteConfirm()
	if err := m.deps.Backend.DeleteTodoItem(m.ctx, item.UUID); err != nil {
		m.setError(err)
		return
	}
	m.status = fmt.Sprintf("Deleted %q", item.Subject)
	if err := m.loadItems(); err != nil {
		m.setError(err)
	}
}
