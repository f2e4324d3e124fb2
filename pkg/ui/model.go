package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"todoshell/pkg/backend"
	"todoshell/pkg/config"
	"todoshell/pkg/filter"
	"todoshell/pkg/keymaps"
	"todoshell/pkg/models"
	"todoshell/pkg/storage"
	"todoshell/pkg/utils"
)

// route selects the screen shown by the app shell
type route int

const (
	routeLogin route = iota
	routeTodos
	routeHelp
)

// Deps are the collaborators the app shell is built from
type Deps struct {
	Backend backend.Backend
	Users   *storage.UserStorage
	Filters *storage.FilterStorage
	Modals  *storage.ModalStorage
	Config  config.Config
	Styles  config.Styles

	// Now defaults to time.Now
	Now func() time.Time
}

// Model represents the application state
type Model struct {
	ctx  context.Context
	deps Deps

	theme  Theme
	keyMap keymaps.KeyMap
	route  route

	user   *models.User
	filter filter.Filter

	lists       []models.TodoList
	currentList models.TodoList
	items       []models.TodoItem

	// shown holds the visible items in display order. rowItems maps a table
	// row to an index in shown, or -1 for headers and spacers; rowGroups
	// maps a row to its group name.
	table     table.Model
	shown     []models.TodoItem
	rowItems  []int
	rowGroups []string

	filterDialog FilterDialog
	addTodo      AddTodoDialog
	chooser      ListChooser
	login        LoginForm

	// Delete confirmation state
	deleting *models.TodoItem

	width, height int
	status        string
	err           error
}

// NewModel loads the stored user and filter and the default todo list
func NewModel(ctx context.Context, deps Deps) (Model, error) {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	theme := NewTheme(deps.Styles)

	// Create an empty column - the title will be empty to avoid showing a header
	t := table.New(
		table.WithColumns([]table.Column{{Title: "", Width: 60}}),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	t.SetStyles(theme.TableStyles(deps.Styles))

	m := Model{
		ctx:          ctx,
		deps:         deps,
		theme:        theme,
		keyMap:       keymaps.BuildKeyMap(deps.Config.KeyMap),
		table:        t,
		filterDialog: NewFilterDialog(deps.Modals, theme),
		addTodo:      NewAddTodoDialog(deps.Modals, theme),
		chooser:      NewListChooser(deps.Modals, theme, deps.Styles),
		login:        NewLoginForm(theme),
	}

	user, ok, err := deps.Users.LoadUser(ctx)
	if err != nil {
		return m, fmt.Errorf("load user: %w", err)
	}
	if ok {
		m.user = &user
		m.route = routeTodos
	}

	m.filter, err = deps.Filters.LoadFilter(ctx)
	if err != nil {
		return m, fmt.Errorf("load filter: %w", err)
	}

	list, err := deps.Backend.EnsureDefaultList(ctx)
	if err != nil {
		return m, err
	}
	m.currentList = list
	if err := m.loadLists(); err != nil {
		return m, err
	}
	if err := m.loadItems(); err != nil {
		return m, err
	}

	return m, nil
}

// Init initializes the model (required by Bubble Tea Model interface)
func (m Model) Init() tea.Cmd {
	return nil
}

// User returns the signed-in user, or nil
func (m Model) User() *models.User {
	if m.user == nil {
		return nil
	}
	u := *m.user
	return &u
}

// Filter returns a copy of the current filter
func (m Model) Filter() filter.Filter {
	return m.filter.Clone()
}

// SetUser stores u, or logs out when u is nil
func (m *Model) SetUser(u *models.User) error {
	if u == nil {
		m.user = nil
		m.route = routeLogin
		m.login.Reset()
		utils.Logger().Info("user logged out")
		if err := m.deps.Users.LogoutUser(m.ctx); err != nil {
			return fmt.Errorf("logout: %w", err)
		}
		return nil
	}

	user := models.User{
		Name:     u.Name,
		Token:    u.Token,
		Email:    u.Email,
		ImageURL: u.ImageURL,
	}
	m.user = &user
	if m.route == routeLogin {
		m.route = routeTodos
	}
	utils.Logger().Info("user logged in", "name", user.DisplayName())
	if err := m.deps.Users.SaveUser(m.ctx, user); err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	return nil
}

// SetFilter stores a copy of f, or resets to the default filter when f is nil
func (m *Model) SetFilter(f *filter.Filter) error {
	defer m.refreshRows()

	if f == nil {
		m.filter = filter.Default()
		if err := m.deps.Filters.ClearFilter(m.ctx); err != nil {
			return fmt.Errorf("clear filter: %w", err)
		}
		return nil
	}

	m.filter = f.Clone()
	if err := m.deps.Filters.SaveFilter(m.ctx, m.filter); err != nil {
		return fmt.Errorf("save filter: %w", err)
	}
	return nil
}

func (m *Model) loadLists() error {
	lists, err := m.deps.Backend.TodoLists(m.ctx)
	if err != nil {
		return fmt.Errorf("load todo lists: %w", err)
	}
	m.lists = lists
	return nil
}

// loadItems reloads the current list and redraws the table
func (m *Model) loadItems() error {
	items, err := m.deps.Backend.TodoItems(m.ctx, m.currentList.UUID)
	if err != nil {
		return fmt.Errorf("load todo items: %w", err)
	}
	m.items = items
	m.refreshRows()
	return nil
}

// setError records err on the status line and in the log
func (m *Model) setError(err error) {
	m.err = err
	if err != nil {
		utils.Logger().Error("ui error", "err", err)
	}
}

// selectedItem returns the item under the table cursor
func (m Model) selectedItem() (models.TodoItem, bool) {
	row := m.table.Cursor()
	if row < 0 || row >= len(m.rowItems) || m.rowItems[row] < 0 {
		return models.TodoItem{}, false
	}
	return m.shown[m.rowItems[row]], true
}

// newItemColumn is the kanban column of the group under the cursor, falling
// back to the first configured column
func (m Model) newItemColumn() string {
	row := m.table.Cursor()
	if m.filter.Group == filter.GroupKanban && row >= 0 && row < len(m.rowGroups) {
		for _, c := range m.filter.KanbanColumns {
			if c == m.rowGroups[row] {
				return c
			}
		}
	}
	if len(m.filter.KanbanColumns) > 0 {
		return m.filter.KanbanColumns[0]
	}
	return ""
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	if width > 8 {
		m.table.SetColumns([]table.Column{{Title: "", Width: width - 4}})
	}
	if height > 10 {
		m.table.SetHeight(height - 8)
	}
}
