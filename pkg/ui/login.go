package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"todoshell/pkg/models"
)

// LoginForm collects the account shown when nobody is signed in
type LoginForm struct {
	inputs []textinput.Model
	active int
	err    error
	theme  Theme
}

const (
	loginName = iota
	loginEmail
	loginToken
	loginImageURL
)

func NewLoginForm(theme Theme) LoginForm {
	placeholders := []string{"Name", "Email", "Token", "Image URL (optional)"}
	inputs := make([]textinput.Model, len(placeholders))
	for i, p := range placeholders {
		in := textinput.New()
		in.Placeholder = p
		in.Width = 40
		inputs[i] = in
	}
	inputs[loginToken].EchoMode = textinput.EchoPassword
	inputs[loginName].Focus()
	return LoginForm{inputs: inputs, theme: theme}
}

// Reset clears the form
func (f *LoginForm) Reset() {
	for i := range f.inputs {
		f.inputs[i].Reset()
	}
	f.err = nil
	f.active = loginName
	f.focusInputs()
}

func (f *LoginForm) focusInputs() {
	for i := range f.inputs {
		if i == f.active {
			f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
}

// Update handles typing; enter on the last field submits the form
func (f LoginForm) Update(msg tea.Msg) (LoginForm, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return f, nil
	}

	switch keyMsg.String() {
	case "ctrl+c", "esc":
		return f, tea.Quit
	case "tab", "down":
		f.active = (f.active + 1) % len(f.inputs)
		f.focusInputs()
		return f, nil
	case "shift+tab", "up":
		f.active = (f.active - 1 + len(f.inputs)) % len(f.inputs)
		f.focusInputs()
		return f, nil
	case "enter":
		if f.active < len(f.inputs)-1 {
			f.active++
			f.focusInputs()
			return f, nil
		}
		return f.submit()
	}

	var cmd tea.Cmd
	f.inputs[f.active], cmd = f.inputs[f.active].Update(keyMsg)
	return f, cmd
}

func (f LoginForm) submit() (LoginForm, tea.Cmd) {
	user := models.User{
		Name:     strings.TrimSpace(f.inputs[loginName].Value()),
		Email:    strings.TrimSpace(f.inputs[loginEmail].Value()),
		Token:    strings.TrimSpace(f.inputs[loginToken].Value()),
		ImageURL: strings.TrimSpace(f.inputs[loginImageURL].Value()),
	}
	if user.Name == "" && user.Email == "" {
		f.err = fmt.Errorf("a name or an email is required")
		f.active = loginName
		f.focusInputs()
		return f, nil
	}
	f.err = nil
	return f, func() tea.Msg {
		return LoggedInMsg{User: user}
	}
}

func (f LoginForm) View() string {
	var sb strings.Builder
	sb.WriteString(f.theme.Title.Render(" Sign in "))
	sb.WriteString("\n\n")

	labels := []string{"Name", "Email", "Token", "Image URL"}
	for i, in := range f.inputs {
		sb.WriteString(labels[i] + ":\n")
		sb.WriteString(in.View())
		sb.WriteString("\n\n")
	}
	if f.err != nil {
		sb.WriteString(f.theme.Error.Render(f.err.Error()))
		sb.WriteString("\n")
	}
	return sb.String()
}
