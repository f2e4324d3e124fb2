package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"todoshell/pkg/keymaps"
	"todoshell/pkg/models"
	"todoshell/pkg/storage"
)

// addTodoOpenDelay defers opening the dialog so the triggering key press is
// not typed into the subject field
const addTodoOpenDelay = 10 * time.Millisecond

const (
	inputSubject = iota
	inputDescription
	inputDue
	inputPriority
	inputCount
)

// AddTodoDialog is the form used to create a new todo item
type AddTodoDialog struct {
	open bool

	subjectInput textinput.Model
	descInput    textinput.Model
	dueDateInput textinput.Model
	priority     bool
	activeInput  int

	listUUID string
	column   string
	err      error

	modals *storage.ModalStorage
	theme  Theme
}

// NewAddTodoDialog creates a closed add-todo dialog
func NewAddTodoDialog(modals *storage.ModalStorage, theme Theme) AddTodoDialog {
	subjectInput := textinput.New()
	subjectInput.Placeholder = "Subject"
	subjectInput.Width = 40

	descInput := textinput.New()
	descInput.Placeholder = "Description"
	descInput.Width = 40

	dueDateInput := textinput.New()
	dueDateInput.Placeholder = "Due Date (YYYY-MM-DD, optional)"
	dueDateInput.Width = 40

	return AddTodoDialog{
		subjectInput: subjectInput,
		descInput:    descInput,
		dueDateInput: dueDateInput,
		modals:       modals,
		theme:        theme,
	}
}

// isAddTodoShortcut reports whether msg is the global add-todo shortcut
func isAddTodoShortcut(msg tea.KeyMsg) bool {
	return msg.Type == tea.KeyRunes && len(msg.Runes) == 1 && msg.Runes[0] == keymaps.AddTodoKeyCode
}

// requestAddTodo schedules the dialog to open unless any modal is open
func requestAddTodo(modals *storage.ModalStorage) tea.Cmd {
	if modals.IsModalOpen() {
		return nil
	}
	return tea.Tick(addTodoOpenDelay, func(time.Time) tea.Msg {
		return openAddTodoMsg{}
	})
}

// Open shows an empty form. New items land in listUUID and column.
func (d *AddTodoDialog) Open(listUUID, column string) {
	d.open = true
	d.listUUID = listUUID
	d.column = column
	d.resetInputs()
	d.modals.SetModalIsOpen(true, storage.ModalAddTodo)
}

// Close hides the dialog without emitting anything
func (d *AddTodoDialog) Close() {
	d.open = false
	d.err = nil
	d.subjectInput.Blur()
	d.descInput.Blur()
	d.dueDateInput.Blur()
	d.modals.SetModalIsOpen(false, storage.ModalAddTodo)
}

func (d AddTodoDialog) IsOpen() bool {
	return d.open
}

// resetInputs clears all form inputs
func (d *AddTodoDialog) resetInputs() {
	d.subjectInput.Reset()
	d.descInput.Reset()
	d.dueDateInput.Reset()
	d.priority = false
	d.err = nil

	d.activeInput = inputSubject
	d.focusInputs()
}

func (d *AddTodoDialog) focusInputs() {
	d.subjectInput.Blur()
	d.descInput.Blur()
	d.dueDateInput.Blur()
	switch d.activeInput {
	case inputSubject:
		d.subjectInput.Focus()
	case inputDescription:
		d.descInput.Focus()
	case inputDue:
		d.dueDateInput.Focus()
	}
}

// focusNextInput cycles through the form inputs
func (d *AddTodoDialog) focusNextInput() {
	d.activeInput = (d.activeInput + 1) % inputCount
	d.focusInputs()
}

// focusPreviousInput cycles through the form inputs
func (d *AddTodoDialog) focusPreviousInput() {
	d.activeInput = (d.activeInput - 1 + inputCount) % inputCount
	d.focusInputs()
}

// Update handles key presses while the dialog is open
func (d AddTodoDialog) Update(msg tea.Msg) (AddTodoDialog, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return d, nil
	}

	switch keyMsg.String() {
	case "esc", "ctrl+c":
		d.Close()
		return d, nil
	case "tab", "down":
		d.focusNextInput()
		return d, nil
	case "shift+tab", "up":
		d.focusPreviousInput()
		return d, nil
	case "ctrl+s":
		return d.submit()
	case "enter":
		if d.activeInput == inputPriority {
			return d.submit()
		}
		d.focusNextInput()
		return d, nil
	}

	var cmd tea.Cmd
	switch d.activeInput {
	case inputSubject:
		d.subjectInput, cmd = d.subjectInput.Update(keyMsg)
	case inputDescription:
		d.descInput, cmd = d.descInput.Update(keyMsg)
	case inputDue:
		d.dueDateInput, cmd = d.dueDateInput.Update(keyMsg)
	case inputPriority:
		switch keyMsg.String() {
		case " ", "space", "left", "right", "y", "n":
			d.priority = !d.priority
		}
	}
	return d, cmd
}

// submit validates the form, closes the dialog and emits the new item
func (d AddTodoDialog) submit() (AddTodoDialog, tea.Cmd) {
	subject := strings.TrimSpace(d.subjectInput.Value())
	desc := strings.TrimSpace(d.descInput.Value())
	dueDate := strings.TrimSpace(d.dueDateInput.Value())

	if subject == "" {
		d.err = fmt.Errorf("subject is required")
		d.activeInput = inputSubject
		d.focusInputs()
		return d, nil
	}

	item := models.TodoItem{
		TodoListUUID: d.listUUID,
		Subject:      subject,
		Description:  desc,
		IsPriority:   d.priority,
		KanbanColumn: d.column,
	}
	if dueDate != "" {
		parsed, err := time.ParseInLocation("2006-01-02", dueDate, time.Local)
		if err != nil {
			d.err = fmt.Errorf("invalid date format: use YYYY-MM-DD")
			d.activeInput = inputDue
			d.focusInputs()
			return d, nil
		}
		item.Due = &parsed
	}

	d.Close()
	return d, func() tea.Msg {
		return TodoItemAddedMsg{Item: item}
	}
}

// View renders the input form
func (d AddTodoDialog) View() string {
	var sb strings.Builder

	sb.WriteString(d.theme.Title.Render(" Add New Todo "))
	sb.WriteString("\n\n")

	sb.WriteString("Subject:\n")
	sb.WriteString(d.subjectInput.View())
	sb.WriteString("\n\n")

	sb.WriteString("Description:\n")
	sb.WriteString(d.descInput.View())
	sb.WriteString("\n\n")

	sb.WriteString("Due Date (YYYY-MM-DD):\n")
	sb.WriteString(d.dueDateInput.View())
	sb.WriteString("\n\n")

	check := "[ ]"
	if d.priority {
		check = "[x]"
	}
	priority := check + " Priority"
	if d.activeInput == inputPriority {
		sb.WriteString(d.theme.Focused.Render(priority))
	} else {
		sb.WriteString(priority)
	}

	if d.err != nil {
		sb.WriteString("\n\n")
		sb.WriteString(d.theme.Error.Render(d.err.Error()))
	}

	return d.theme.Box.Render(sb.String())
}
