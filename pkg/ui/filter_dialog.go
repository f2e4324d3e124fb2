package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"todoshell/pkg/filter"
	"todoshell/pkg/storage"
)

type filterRow int

const (
	rowSubject filterRow = iota
	rowCompleted
	rowPriority
	rowArchived
	rowDue
	rowGroup
	rowColumns
	rowNewColumn
)

// FilterDialog edits a working copy of the filter and publishes a clone of
// it after every change
type FilterDialog struct {
	open   bool
	filter filter.Filter
	focus  filterRow

	subject      textinput.Model
	newColumn    textinput.Model
	columnCursor int

	modals *storage.ModalStorage
	theme  Theme
}

// NewFilterDialog creates a closed filter dialog
func NewFilterDialog(modals *storage.ModalStorage, theme Theme) FilterDialog {
	subject := textinput.New()
	subject.Placeholder = "Subject contains"
	subject.Width = 40

	newColumn := textinput.New()
	newColumn.Placeholder = "New column name"
	newColumn.Width = 30

	return FilterDialog{
		subject:   subject,
		newColumn: newColumn,
		modals:    modals,
		theme:     theme,
	}
}

// Open shows the dialog for f
func (d *FilterDialog) Open(f filter.Filter) {
	d.open = true
	d.filter = f.Clone()
	d.focus = rowSubject
	d.columnCursor = 0
	d.subject.SetValue(f.Subject())
	d.subject.CursorEnd()
	d.newColumn.Reset()
	d.focusInputs()
	d.modals.SetModalIsOpen(true, storage.ModalFilter)
}

// Close hides the dialog
func (d *FilterDialog) Close() {
	d.open = false
	d.subject.Blur()
	d.newColumn.Blur()
	d.modals.SetModalIsOpen(false, storage.ModalFilter)
}

func (d FilterDialog) IsOpen() bool {
	return d.open
}

// Filter returns the dialog's working copy
func (d FilterDialog) Filter() filter.Filter {
	return d.filter.Clone()
}

func (d FilterDialog) lastRow() filterRow {
	if d.filter.Group == filter.GroupKanban {
		return rowNewColumn
	}
	return rowGroup
}

func (d *FilterDialog) focusInputs() {
	d.subject.Blur()
	d.newColumn.Blur()
	switch d.focus {
	case rowSubject:
		d.subject.Focus()
	case rowNewColumn:
		d.newColumn.Focus()
	}
}

func (d *FilterDialog) moveFocus(delta int) {
	next := int(d.focus) + delta
	last := int(d.lastRow())
	if next < 0 {
		next = last
	} else if next > last {
		next = 0
	}
	d.focus = filterRow(next)
	if d.focus == rowColumns {
		if delta > 0 {
			d.columnCursor = 0
		} else {
			d.columnCursor = max(len(d.filter.KanbanColumns)-1, 0)
		}
	}
	d.focusInputs()
}

// change applies fn to a clone of the working filter, keeps the clone and
// publishes it
func (d *FilterDialog) change(fn func(f *filter.Filter)) tea.Cmd {
	next := d.filter.Clone()
	fn(&next)
	d.filter = next
	if d.focus > d.lastRow() {
		d.focus = d.lastRow()
		d.focusInputs()
	}
	published := next.Clone()
	return func() tea.Msg {
		return FilterChangedMsg{Filter: published}
	}
}

// Update handles key presses while the dialog is open
func (d FilterDialog) Update(msg tea.Msg) (FilterDialog, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return d, nil
	}

	switch keyMsg.String() {
	case "esc", "ctrl+c":
		d.Close()
		return d, nil
	case "tab":
		d.moveFocus(1)
		return d, nil
	case "shift+tab":
		d.moveFocus(-1)
		return d, nil
	case "down":
		if d.focus == rowColumns && d.columnCursor < len(d.filter.KanbanColumns)-1 {
			d.columnCursor++
			return d, nil
		}
		d.moveFocus(1)
		return d, nil
	case "up":
		if d.focus == rowColumns && d.columnCursor > 0 {
			d.columnCursor--
			return d, nil
		}
		d.moveFocus(-1)
		return d, nil
	}

	switch d.focus {
	case rowSubject:
		var cmd tea.Cmd
		before := d.subject.Value()
		d.subject, cmd = d.subject.Update(keyMsg)
		if value := d.subject.Value(); value != before {
			return d, tea.Batch(cmd, d.change(func(f *filter.Filter) { f.SetSubjectContains(value) }))
		}
		return d, cmd

	case rowCompleted, rowPriority, rowArchived:
		return d, d.updateTriState(keyMsg)

	case rowDue:
		if dir := cycleDirection(keyMsg); dir != 0 {
			next := cycleOption(filter.DueOptions, dueOption(d.filter.Due), dir)
			return d, d.change(func(f *filter.Filter) { f.SetDue(next) })
		}

	case rowGroup:
		if dir := cycleDirection(keyMsg); dir != 0 {
			next := cycleOption(filter.GroupOptions, groupOption(d.filter.Group), dir)
			return d, d.change(func(f *filter.Filter) { f.SetGroup(next) })
		}

	case rowColumns:
		return d, d.updateColumns(keyMsg)

	case rowNewColumn:
		if keyMsg.String() == "enter" {
			name := strings.TrimSpace(d.newColumn.Value())
			d.newColumn.Reset()
			return d, d.change(func(f *filter.Filter) {
				f.SetKanbanColumns(filter.AddColumn(f.KanbanColumns, name))
			})
		}
		var cmd tea.Cmd
		d.newColumn, cmd = d.newColumn.Update(keyMsg)
		return d, cmd
	}

	return d, nil
}

func (d *FilterDialog) updateTriState(msg tea.KeyMsg) tea.Cmd {
	var toggleUse, toggleValue func(f *filter.Filter)
	switch d.focus {
	case rowCompleted:
		toggleUse, toggleValue = (*filter.Filter).ToggleUseCompleted, (*filter.Filter).ToggleCompleted
	case rowPriority:
		toggleUse, toggleValue = (*filter.Filter).ToggleUseIsPriority, (*filter.Filter).ToggleIsPriority
	case rowArchived:
		toggleUse, toggleValue = (*filter.Filter).ToggleUseArchived, (*filter.Filter).ToggleArchived
	default:
		return nil
	}

	switch msg.String() {
	case " ", "space":
		return d.change(toggleUse)
	case "enter", "left", "right", "h", "l":
		if !d.triState().IsSet() {
			return nil
		}
		return d.change(toggleValue)
	}
	return nil
}

func (d FilterDialog) triState() filter.TriState {
	switch d.focus {
	case rowCompleted:
		return d.filter.Completed
	case rowPriority:
		return d.filter.IsPriority
	case rowArchived:
		return d.filter.Archived
	}
	return filter.Unset
}

func (d *FilterDialog) updateColumns(msg tea.KeyMsg) tea.Cmd {
	cols := d.filter.KanbanColumns
	if len(cols) == 0 {
		return nil
	}
	if d.columnCursor >= len(cols) {
		d.columnCursor = len(cols) - 1
	}

	switch msg.String() {
	case "shift+up", "K":
		if d.columnCursor == 0 {
			return nil
		}
		from := d.columnCursor
		d.columnCursor--
		return d.change(func(f *filter.Filter) {
			f.SetKanbanColumns(filter.MoveColumn(f.KanbanColumns, from, from-1))
		})
	case "shift+down", "J":
		if d.columnCursor >= len(cols)-1 {
			return nil
		}
		from := d.columnCursor
		d.columnCursor++
		return d.change(func(f *filter.Filter) {
			f.SetKanbanColumns(filter.MoveColumn(f.KanbanColumns, from, from+1))
		})
	case "d", "delete", "backspace":
		name := cols[d.columnCursor]
		cmd := d.change(func(f *filter.Filter) {
			f.SetKanbanColumns(filter.RemoveColumn(f.KanbanColumns, name))
		})
		if d.columnCursor >= len(d.filter.KanbanColumns) {
			d.columnCursor = max(len(d.filter.KanbanColumns)-1, 0)
		}
		return cmd
	}
	return nil
}

func cycleDirection(msg tea.KeyMsg) int {
	switch msg.String() {
	case "right", "l", "enter", " ":
		return 1
	case "left", "h":
		return -1
	}
	return 0
}

func cycleOption(options []string, current string, dir int) string {
	idx := 0
	for i, o := range options {
		if o == current {
			idx = i
			break
		}
	}
	idx = (idx + dir + len(options)) % len(options)
	return options[idx]
}

func dueOption(d filter.Due) string {
	if d == filter.DueNone {
		return "none"
	}
	return string(d)
}

func groupOption(g filter.Group) string {
	if g == filter.GroupNone {
		return "none"
	}
	return string(g)
}

// View renders the dialog
func (d FilterDialog) View() string {
	var sb strings.Builder

	sb.WriteString(d.theme.Title.Render(" Filter "))
	sb.WriteString("\n\n")

	label := func(row filterRow, text string) string {
		if d.focus == row {
			return d.theme.Focused.Render("> " + text)
		}
		return d.theme.Normal.Render("  " + text)
	}

	sb.WriteString(label(rowSubject, "Subject"))
	sb.WriteString("\n  ")
	sb.WriteString(d.subject.View())
	sb.WriteString("\n\n")

	triRow := func(row filterRow, name string, t filter.TriState) {
		check := "[ ]"
		if t.IsSet() {
			check = "[x]"
		}
		value := d.theme.Muted.Render("any")
		switch t {
		case filter.True:
			value = "yes"
		case filter.False:
			value = "no"
		}
		sb.WriteString(fmt.Sprintf("%s %s  %s\n", label(row, check), name, value))
	}
	triRow(rowCompleted, "Completed", d.filter.Completed)
	triRow(rowPriority, "Priority", d.filter.IsPriority)
	triRow(rowArchived, "Archived", d.filter.Archived)
	sb.WriteString("\n")

	dueLabel := filter.DueLabels[dueOption(d.filter.Due)]
	if dueLabel == "" {
		dueLabel = string(d.filter.Due)
	}
	sb.WriteString(fmt.Sprintf("%s  ‹ %s ›\n", label(rowDue, "Due"), dueLabel))
	sb.WriteString(fmt.Sprintf("%s  ‹ %s ›\n", label(rowGroup, "Group by"), groupOption(d.filter.Group)))

	if d.filter.Group == filter.GroupKanban {
		sb.WriteString("\n")
		sb.WriteString(label(rowColumns, "Kanban columns"))
		sb.WriteString("\n")
		if len(d.filter.KanbanColumns) == 0 {
			sb.WriteString(d.theme.Muted.Render("    (no columns)"))
			sb.WriteString("\n")
		}
		for i, c := range d.filter.KanbanColumns {
			line := "    " + c
			if d.focus == rowColumns && i == d.columnCursor {
				sb.WriteString(d.theme.Focused.Render(line))
			} else {
				sb.WriteString(d.theme.Normal.Render(line))
			}
			sb.WriteString("\n")
		}
		sb.WriteString(label(rowNewColumn, "Add column"))
		sb.WriteString("\n  ")
		sb.WriteString(d.newColumn.View())
		sb.WriteString("\n")
	}

	if chips := d.filter.Chips(); len(chips) > 0 {
		sb.WriteString("\n")
		rendered := make([]string, len(chips))
		for i, c := range chips {
			rendered[i] = d.theme.Chip.Render(c)
		}
		sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
		sb.WriteString("\n")
	}

	return d.theme.Box.Render(sb.String())
}
