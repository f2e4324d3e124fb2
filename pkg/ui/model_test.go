package ui

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"todoshell/pkg/backend"
	"todoshell/pkg/config"
	"todoshell/pkg/database"
	"todoshell/pkg/filter"
	"todoshell/pkg/models"
	"todoshell/pkg/storage"
)

var testNow = time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)

type harness struct {
	deps Deps
	kv   *storage.MemoryStorage
}

func newHarness(t *testing.T) harness {
	t.Helper()
	db, err := database.ConnectDB(database.DriverSQLite, filepath.Join(t.TempDir(), "todo.db"))
	if err != nil {
		t.Fatalf("ConnectDB: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := database.EnsureSchema(db); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}

	kv := storage.NewMemoryStorage()
	return harness{
		kv: kv,
		deps: Deps{
			Backend: backend.NewSQLBackend(db),
			Users:   storage.NewUserStorage(kv),
			Filters: storage.NewFilterStorage(kv),
			Modals:  storage.NewModalStorage(storage.NewMemoryStorage()),
			Styles:  config.DefaultStyles(),
			Now:     func() time.Time { return testNow },
		},
	}
}

func (h harness) model(t *testing.T) Model {
	t.Helper()
	m, err := NewModel(context.Background(), h.deps)
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}
	return m
}

func (h harness) loggedIn(t *testing.T) Model {
	t.Helper()
	if err := h.deps.Users.SaveUser(context.Background(), models.User{Name: "A", Token: "t"}); err != nil {
		t.Fatalf("SaveUser: %v", err)
	}
	return h.model(t)
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyType(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm, cmd
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		m, _ = update(t, m, keyRunes(string(r)))
	}
	return m
}

func TestNewModel_RoutesByStoredUser(t *testing.T) {
	h := newHarness(t)
	if m := h.model(t); m.route != routeLogin || m.User() != nil {
		t.Fatalf("expected login route without a stored user, got %v", m.route)
	}
	if m := h.loggedIn(t); m.route != routeTodos || m.User().Name != "A" {
		t.Fatalf("expected todo route for stored user, got %v", m.route)
	}
}

func TestAddTodoShortcut_OpensAfterDelay(t *testing.T) {
	h := newHarness(t)
	m := h.loggedIn(t)

	m, cmd := update(t, m, keyRunes(string(rune(97))))
	if cmd == nil {
		t.Fatal("expected a deferred open command")
	}
	if m.addTodo.IsOpen() {
		t.Fatal("dialog must not open before the tick fires")
	}
	msg := cmd()
	if _, ok := msg.(openAddTodoMsg); !ok {
		t.Fatalf("expected openAddTodoMsg, got %T", msg)
	}

	m, _ = update(t, m, msg)
	if !m.addTodo.IsOpen() {
		t.Fatal("expected add-todo dialog to be open")
	}
	if got := h.deps.Modals.OpenModals(); !reflect.DeepEqual(got, []string{storage.ModalAddTodo}) {
		t.Fatalf("open modals = %v", got)
	}
}

func TestAddTodoShortcut_IgnoredWhileOtherModalOpen(t *testing.T) {
	h := newHarness(t)
	m := h.loggedIn(t)

	h.deps.Modals.SetModalIsOpen(true, storage.ModalFilter)
	m, cmd := update(t, m, keyRunes("a"))
	if cmd != nil {
		t.Fatal("shortcut must not schedule the dialog while a modal is open")
	}

	// a tick already in flight is dropped too
	m, _ = update(t, m, openAddTodoMsg{})
	if m.addTodo.IsOpen() {
		t.Fatal("dialog opened while another modal was open")
	}
}

func TestAddTodo_SubmitStoresItem(t *testing.T) {
	h := newHarness(t)
	m := h.loggedIn(t)
	m, _ = update(t, m, openAddTodoMsg{})

	m = typeText(t, m, "Buy milk")
	m, _ = update(t, m, keyType(tea.KeyTab))
	m, _ = update(t, m, keyType(tea.KeyTab))
	m = typeText(t, m, "2026-10-20")
	m, _ = update(t, m, keyType(tea.KeyTab))
	m, _ = update(t, m, keyType(tea.KeySpace))

	m, cmd := update(t, m, keyType(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected submission command")
	}
	if m.addTodo.IsOpen() || h.deps.Modals.IsModalOpen() {
		t.Fatal("dialog should close on submit")
	}
	added, ok := cmd().(TodoItemAddedMsg)
	if !ok {
		t.Fatal("expected TodoItemAddedMsg")
	}
	if added.Item.Subject != "Buy milk" || !added.Item.IsPriority || added.Item.Due == nil {
		t.Fatalf("unexpected item %#v", added.Item)
	}
	if added.Item.KanbanColumn != "Todo" {
		t.Fatalf("new items land in the first column, got %q", added.Item.KanbanColumn)
	}

	m, _ = update(t, m, added)
	if len(m.items) != 1 || len(m.shown) != 1 {
		t.Fatalf("expected the item to be loaded and shown, items=%d shown=%d", len(m.items), len(m.shown))
	}
	if m.items[0].TodoListUUID != m.currentList.UUID {
		t.Fatal("item should belong to the current list")
	}
}

func TestAddTodo_RequiresSubjectAndValidDate(t *testing.T) {
	h := newHarness(t)
	d := NewAddTodoDialog(h.deps.Modals, NewTheme(config.DefaultStyles()))
	d.Open("list", "")

	d, cmd := d.Update(keyType(tea.KeyCtrlS))
	if cmd != nil || !d.IsOpen() || d.err == nil {
		t.Fatal("empty subject must be rejected")
	}

	for _, r := range "x" {
		d, _ = d.Update(keyRunes(string(r)))
	}
	d.dueDateInput.SetValue("14/10/2026")
	d, cmd = d.Update(keyType(tea.KeyCtrlS))
	if cmd != nil || d.err == nil || d.activeInput != inputDue {
		t.Fatalf("bad date must be rejected, err=%v", d.err)
	}

	d, _ = d.Update(keyType(tea.KeyEsc))
	if d.IsOpen() || h.deps.Modals.IsModalOpen() {
		t.Fatal("esc should close the dialog")
	}
}

func TestFilterDialog_PublishesCopy(t *testing.T) {
	h := newHarness(t)
	m := h.loggedIn(t)

	m, _ = update(t, m, keyRunes("f"))
	if !m.filterDialog.IsOpen() || !h.deps.Modals.IsOtherModalOpen(storage.ModalAddTodo) {
		t.Fatal("filter dialog should be open and registered")
	}

	m, _ = update(t, m, keyType(tea.KeyDown))
	m, cmd := update(t, m, keyType(tea.KeySpace))
	if cmd == nil {
		t.Fatal("expected FilterChangedMsg command")
	}
	if m.Filter().Completed != filter.False {
		t.Fatal("shell filter must not change before the message is delivered")
	}

	changed := cmd().(FilterChangedMsg)
	if changed.Filter.Completed != filter.Unset {
		t.Fatalf("published completed = %v", changed.Filter.Completed)
	}
	m, _ = update(t, m, changed)
	if m.Filter().Completed != filter.Unset {
		t.Fatal("shell should adopt the published filter")
	}
	stored, err := h.deps.Filters.LoadFilter(context.Background())
	if err != nil || stored.Completed != filter.Unset {
		t.Fatalf("filter not persisted: %v %v", stored.Completed, err)
	}

	// the rune 97 shortcut types into the dialog instead of opening add-todo
	m, _ = update(t, m, keyType(tea.KeyUp))
	m, cmd = update(t, m, keyRunes("a"))
	if m.addTodo.IsOpen() {
		t.Fatal("add-todo must stay closed while the filter dialog is open")
	}
	if cmd == nil {
		t.Fatal("typing in the subject should publish a change")
	}

	m, _ = update(t, m, keyType(tea.KeyEsc))
	if m.filterDialog.IsOpen() || h.deps.Modals.IsModalOpen() {
		t.Fatal("esc should close the filter dialog")
	}
}

func TestFilterDialog_KanbanEditor(t *testing.T) {
	h := newHarness(t)
	d := NewFilterDialog(h.deps.Modals, NewTheme(config.DefaultStyles()))
	d.Open(filter.Default())

	publish := func(cmd tea.Cmd) filter.Filter {
		t.Helper()
		if cmd == nil {
			t.Fatal("expected a published filter")
		}
		return cmd().(FilterChangedMsg).Filter
	}

	d.focus = rowGroup
	var cmd tea.Cmd
	d, cmd = d.Update(keyType(tea.KeyRight))
	if f := publish(cmd); f.Group != filter.GroupKanban {
		t.Fatalf("group = %q", f.Group)
	}

	d, _ = d.Update(keyType(tea.KeyDown))
	if d.focus != rowColumns || d.columnCursor != 0 {
		t.Fatalf("expected column editor focus, got %v/%d", d.focus, d.columnCursor)
	}
	d, cmd = d.Update(keyRunes("J"))
	if f := publish(cmd); !reflect.DeepEqual(f.KanbanColumns, []string{"Doing", "Todo", "Done"}) {
		t.Fatalf("after move: %v", f.KanbanColumns)
	}

	d, _ = d.Update(keyType(tea.KeyDown))
	d, cmd = d.Update(keyRunes("d"))
	if f := publish(cmd); !reflect.DeepEqual(f.KanbanColumns, []string{"Doing", "Todo"}) {
		t.Fatalf("after remove: %v", f.KanbanColumns)
	}

	d, _ = d.Update(keyType(tea.KeyDown))
	if d.focus != rowNewColumn {
		t.Fatalf("expected new column input, got %v", d.focus)
	}
	for _, r := range " Review " {
		d, _ = d.Update(keyRunes(string(r)))
	}
	d, cmd = d.Update(keyType(tea.KeyEnter))
	if f := publish(cmd); !reflect.DeepEqual(f.KanbanColumns, []string{"Doing", "Todo", "Review"}) {
		t.Fatalf("after add: %v", f.KanbanColumns)
	}
	if d.newColumn.Value() != "" {
		t.Fatal("column input should clear after adding")
	}

	for _, r := range "   " {
		d, _ = d.Update(keyRunes(string(r)))
	}
	d, cmd = d.Update(keyType(tea.KeyEnter))
	if f := publish(cmd); !reflect.DeepEqual(f.KanbanColumns, []string{"Doing", "Todo", "Review", ""}) {
		t.Fatalf("blank name should be appended trimmed: %q", f.KanbanColumns)
	}
	if d.newColumn.Value() != "" {
		t.Fatal("column input should clear after a blank add")
	}
}

func TestFilterDialog_DueCycles(t *testing.T) {
	h := newHarness(t)
	d := NewFilterDialog(h.deps.Modals, NewTheme(config.DefaultStyles()))
	d.Open(filter.Default())
	d.focus = rowDue

	d, cmd := d.Update(keyType(tea.KeyRight))
	if f := cmd().(FilterChangedMsg).Filter; f.Due != filter.DueNoDate {
		t.Fatalf("due = %q", f.Due)
	}
	d, cmd = d.Update(keyType(tea.KeyLeft))
	if f := cmd().(FilterChangedMsg).Filter; f.Due != filter.DueNone {
		t.Fatalf("due = %q", f.Due)
	}
	_, cmd = d.Update(keyType(tea.KeyLeft))
	if f := cmd().(FilterChangedMsg).Filter; f.Due != filter.DueSun {
		t.Fatalf("due should wrap around, got %q", f.Due)
	}
}

func TestSetUserAndSetFilter_Persist(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	m := h.model(t)

	if err := m.SetUser(&models.User{Name: "A", Token: "t"}); err != nil {
		t.Fatalf("SetUser: %v", err)
	}
	if ok, _ := h.deps.Users.IsUserLoggedIn(ctx); !ok || m.route != routeTodos {
		t.Fatal("expected user to be stored and routed to todos")
	}

	f := filter.Default()
	f.SetSubjectContains("milk")
	if err := m.SetFilter(&f); err != nil {
		t.Fatalf("SetFilter: %v", err)
	}
	f.SetSubjectContains("changed afterwards")
	if m.Filter().Subject() != "milk" {
		t.Fatal("shell must keep its own copy of the filter")
	}

	if err := m.SetFilter(nil); err != nil {
		t.Fatalf("SetFilter(nil): %v", err)
	}
	if _, err := h.kv.Get(ctx, "filter"); err == nil {
		t.Fatal("filter key should be removed")
	}
	if !reflect.DeepEqual(m.Filter(), filter.Default()) {
		t.Fatal("expected default filter after reset")
	}

	if err := m.SetUser(nil); err != nil {
		t.Fatalf("SetUser(nil): %v", err)
	}
	if ok, _ := h.deps.Users.IsUserLoggedIn(ctx); ok || m.route != routeLogin {
		t.Fatal("expected logout")
	}
}

func TestLogin_SubmitsUser(t *testing.T) {
	h := newHarness(t)
	m := h.model(t)

	m = typeText(t, m, "Ada")
	m, _ = update(t, m, keyType(tea.KeyEnter))
	m = typeText(t, m, "ada@example.com")
	m, _ = update(t, m, keyType(tea.KeyEnter))
	m, _ = update(t, m, keyType(tea.KeyEnter))
	m, cmd := update(t, m, keyType(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected LoggedInMsg")
	}
	m, _ = update(t, m, cmd())
	if m.route != routeTodos || m.User().Email != "ada@example.com" {
		t.Fatalf("login failed: route=%v user=%#v", m.route, m.User())
	}
}

func TestItemActions(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	m := h.loggedIn(t)

	m, _ = update(t, m, TodoItemAddedMsg{Item: models.TodoItem{Subject: "Write report", KanbanColumn: "Todo"}})
	if _, ok := m.selectedItem(); !ok {
		t.Fatal("expected the new item under the cursor")
	}

	m, _ = update(t, m, keyRunes("p"))
	m, _ = update(t, m, keyRunes("]"))
	items, _ := h.deps.Backend.TodoItems(ctx, m.currentList.UUID)
	if !items[0].IsPriority || items[0].KanbanColumn != "Doing" {
		t.Fatalf("unexpected item after toggles: %#v", items[0])
	}

	// completing hides the item under the default filter
	m, _ = update(t, m, keyType(tea.KeySpace))
	if len(m.shown) != 0 {
		t.Fatalf("completed item should be filtered out, shown=%d", len(m.shown))
	}

	m, _ = update(t, m, FilterChangedMsg{Filter: filter.Filter{}})
	m, _ = update(t, m, keyRunes("d"))
	if m.deleting == nil || !h.deps.Modals.IsModalOpen() {
		t.Fatal("expected delete confirmation")
	}
	m, _ = update(t, m, keyRunes("y"))
	if items, _ := h.deps.Backend.TodoItems(ctx, m.currentList.UUID); len(items) != 0 {
		t.Fatalf("expected item deleted, got %d", len(items))
	}
	if h.deps.Modals.IsModalOpen() {
		t.Fatal("confirmation should be closed")
	}
}

func TestListChooser_EmitsSelection(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	if _, err := h.deps.Backend.EnsureDefaultList(ctx); err != nil {
		t.Fatalf("EnsureDefaultList: %v", err)
	}
	work, err := h.deps.Backend.CreateTodoList(ctx, "Work")
	if err != nil {
		t.Fatalf("CreateTodoList: %v", err)
	}
	m := h.loggedIn(t)

	m, _ = update(t, m, keyRunes("l"))
	if !m.chooser.IsOpen() {
		t.Fatal("chooser should be open")
	}
	m, _ = update(t, m, keyType(tea.KeyDown))
	m, cmd := update(t, m, keyType(tea.KeyEnter))
	if cmd == nil || m.chooser.IsOpen() {
		t.Fatal("enter should close the chooser and emit the list")
	}
	msg, ok := cmd().(TodoListSelectedMsg)
	if !ok || msg.List.UUID != work.UUID {
		t.Fatalf("selected %#v", msg.List)
	}
	m, _ = update(t, m, msg)
	if m.currentList.UUID != work.UUID {
		t.Fatal("shell should switch lists")
	}
}

func TestHelpAndLogoutKeys(t *testing.T) {
	h := newHarness(t)
	m := h.loggedIn(t)

	m, _ = update(t, m, keyRunes("?"))
	if m.route != routeHelp || !h.deps.Modals.IsModalOpen() {
		t.Fatal("expected help view")
	}
	if m.View() == "" {
		t.Fatal("empty help view")
	}
	m, _ = update(t, m, keyType(tea.KeyEsc))
	if m.route != routeTodos || h.deps.Modals.IsModalOpen() {
		t.Fatal("esc should leave help")
	}

	m, _ = update(t, m, keyRunes("L"))
	if m.route != routeLogin || m.User() != nil {
		t.Fatal("expected logout")
	}
}
