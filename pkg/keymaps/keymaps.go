package keymaps

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// AddTodoKeyCode is the character code that opens the add-todo dialog
const AddTodoKeyCode = 97

type KeyDefinition struct {
	DefaultKey string
	Help       string
}

var KeyDefinitions = map[string]KeyDefinition{
	"ShowHelp":        {"ctrl+b,?", "show/hide commands"},
	"QuitApp":         {"q,ctrl+c", "quit"},
	"ToggleCompleted": {"space", "toggle completed"},
	"TogglePriority":  {"p", "toggle priority"},
	"ToggleArchived":  {"x", "toggle archived"},
	"AddTodo":         {string(rune(AddTodoKeyCode)), "add todo"},
	"DeleteTodo":      {"d", "delete todo"},
	"OpenFilter":      {"f", "filter list"},
	"ChooseTodoList":  {"l", "choose todo list"},
	"MoveColumnLeft":  {"[", "move to previous kanban column"},
	"MoveColumnRight": {"]", "move to next kanban column"},
	"Logout":          {"L", "log out"},
}

type KeyMap struct {
	ShowHelp        key.Binding
	QuitApp         key.Binding
	ToggleCompleted key.Binding
	TogglePriority  key.Binding
	ToggleArchived  key.Binding
	AddTodo         key.Binding
	DeleteTodo      key.Binding
	OpenFilter      key.Binding
	ChooseTodoList  key.Binding
	MoveColumnLeft  key.Binding
	MoveColumnRight key.Binding
	Logout          key.Binding
}

// BuildKeyMap applies config overrides to the default bindings. Override
// keys are matched case-insensitively since viper lowercases map keys.
func BuildKeyMap(configOverrides map[string]string) KeyMap {
	overrides := make(map[string]string, len(configOverrides))
	for action, keys := range configOverrides {
		overrides[strings.ToLower(action)] = keys
	}

	km := KeyMap{}
	for action, def := range KeyDefinitions {
		keyStr := def.DefaultKey
		if override, exists := overrides[strings.ToLower(action)]; exists && override != "" {
			keyStr = override
		}

		binding := parseKeyBinding(keyStr, def.DefaultKey, def.Help)
		switch action {
		case "ShowHelp":
			km.ShowHelp = binding
		case "QuitApp":
			km.QuitApp = binding
		case "ToggleCompleted":
			km.ToggleCompleted = binding
		case "TogglePriority":
			km.TogglePriority = binding
		case "ToggleArchived":
			km.ToggleArchived = binding
		case "AddTodo":
			km.AddTodo = binding
		case "DeleteTodo":
			km.DeleteTodo = binding
		case "OpenFilter":
			km.OpenFilter = binding
		case "ChooseTodoList":
			km.ChooseTodoList = binding
		case "MoveColumnLeft":
			km.MoveColumnLeft = binding
		case "MoveColumnRight":
			km.MoveColumnRight = binding
		case "Logout":
			km.Logout = binding
		}
	}
	return km
}

// HelpBindings returns the bindings in the order shown on the help screen
func (km KeyMap) HelpBindings() []key.Binding {
	return []key.Binding{
		km.AddTodo,
		km.ToggleCompleted,
		km.TogglePriority,
		km.ToggleArchived,
		km.DeleteTodo,
		km.MoveColumnLeft,
		km.MoveColumnRight,
		km.OpenFilter,
		km.ChooseTodoList,
		km.Logout,
		km.ShowHelp,
		km.QuitApp,
	}
}

func parseKeyBinding(keyStr, defaultKey, helpText string) key.Binding {
	if keyStr == "" {
		keyStr = defaultKey
	}

	// Handle multiple keys separated by commas
	keys := strings.Split(keyStr, ",")
	for i, k := range keys {
		keys[i] = strings.TrimSpace(k)
	}
	// the space bar reports itself as " "
	for _, k := range keys {
		if k == "space" {
			keys = append(keys, " ")
			break
		}
	}

	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(keys[0], helpText),
	)
}

// GetDefaultKeyMappings returns the default key mappings for configuration
func GetDefaultKeyMappings() map[string]string {
	keyMappings := make(map[string]string)
	for action, def := range KeyDefinitions {
		keyMappings[action] = def.DefaultKey
	}
	return keyMappings
}
