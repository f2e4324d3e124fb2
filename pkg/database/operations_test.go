package database

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"

	"todoshell/pkg/models"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := ConnectDB(DriverSQLite, filepath.Join(t.TempDir(), "nested", "todo.db"))
	if err != nil {
		t.Fatalf("ConnectDB: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := EnsureSchema(db); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}
	return db
}

func TestKeyValue_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	if _, err := GetValue(ctx, db, "user"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := SetValue(ctx, db, "user", `{"name":"A"}`); err != nil {
		t.Fatalf("SetValue: %v", err)
	}
	if err := SetValue(ctx, db, "user", `{"name":"B"}`); err != nil {
		t.Fatalf("SetValue (overwrite): %v", err)
	}
	got, err := GetValue(ctx, db, "user")
	if err != nil {
		t.Fatalf("GetValue: %v", err)
	}
	if got != `{"name":"B"}` {
		t.Fatalf("last write should win, got %s", got)
	}
	if err := DeleteValue(ctx, db, "user"); err != nil {
		t.Fatalf("DeleteValue: %v", err)
	}
	if _, err := GetValue(ctx, db, "user"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestTodoItems_CRUD(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	list := models.NewTodoList("Inbox")
	if err := AddTodoList(ctx, db, list); err != nil {
		t.Fatalf("AddTodoList: %v", err)
	}
	lists, err := LoadTodoLists(ctx, db)
	if err != nil || len(lists) != 1 || lists[0].Name != "Inbox" {
		t.Fatalf("LoadTodoLists: %v %#v", err, lists)
	}

	due := time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)
	item := models.NewTodoItem(models.TodoItem{
		TodoListUUID: list.UUID,
		Subject:      "Write report",
		IsPriority:   true,
		Due:          &due,
		KanbanColumn: "Todo",
	})
	if err := AddTodoItem(ctx, db, item); err != nil {
		t.Fatalf("AddTodoItem: %v", err)
	}
	other := models.NewTodoItem(models.TodoItem{TodoListUUID: "other", Subject: "elsewhere"})
	if err := AddTodoItem(ctx, db, other); err != nil {
		t.Fatalf("AddTodoItem: %v", err)
	}

	items, err := LoadTodoItems(ctx, db, list.UUID)
	if err != nil {
		t.Fatalf("LoadTodoItems: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item in list, got %d", len(items))
	}
	got := items[0]
	if got.Subject != "Write report" || !got.IsPriority || got.Completed || got.KanbanColumn != "Todo" {
		t.Fatalf("unexpected item: %#v", got)
	}
	if got.Due == nil || !got.Due.Equal(due) {
		t.Fatalf("due mismatch: %v", got.Due)
	}

	got.Completed = true
	got.Due = nil
	if err := UpdateTodoItem(ctx, db, got); err != nil {
		t.Fatalf("UpdateTodoItem: %v", err)
	}
	items, _ = LoadTodoItems(ctx, db, list.UUID)
	if !items[0].Completed || items[0].Due != nil {
		t.Fatalf("update not persisted: %#v", items[0])
	}

	if err := UpdateTodoItem(ctx, db, models.TodoItem{UUID: "missing"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing item, got %v", err)
	}

	n, err := PurgeTodoItems(ctx, db, PurgeOptions{DoneOnly: true})
	if err != nil || n != 1 {
		t.Fatalf("PurgeTodoItems: n=%d err=%v", n, err)
	}
	all, _ := LoadTodoItems(ctx, db, "")
	if len(all) != 1 || all[0].UUID != other.UUID {
		t.Fatalf("expected only the other item to remain, got %#v", all)
	}
}

func TestAdd_ReportsInsertErrors(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	list := models.NewTodoList("Inbox")
	if err := AddTodoList(ctx, db, list); err != nil {
		t.Fatalf("AddTodoList: %v", err)
	}
	if err := AddTodoList(ctx, db, list); err == nil {
		t.Fatal("duplicate list uuid should fail")
	}

	item := models.NewTodoItem(models.TodoItem{TodoListUUID: list.UUID, Subject: "once"})
	if err := AddTodoItem(ctx, db, item); err != nil {
		t.Fatalf("AddTodoItem: %v", err)
	}
	if err := AddTodoItem(ctx, db, item); err == nil {
		t.Fatal("duplicate item uuid should fail")
	}
	items, _ := LoadTodoItems(ctx, db, list.UUID)
	if len(items) != 1 {
		t.Fatalf("expected one stored item, got %d", len(items))
	}
}

func TestRebind(t *testing.T) {
	pg := sqlx.NewDb(nil, DriverPostgres)
	if got := pg.Rebind("a = ? AND b = ?"); got != "a = $1 AND b = $2" {
		t.Fatalf("postgres rebind: %s", got)
	}
	lite := sqlx.NewDb(nil, DriverSQLite)
	if got := lite.Rebind("a = ?"); got != "a = ?" {
		t.Fatalf("sqlite rebind: %s", got)
	}
}

func TestBuildPurgeWhereClause(t *testing.T) {
	where, args := BuildPurgeWhereClause(PurgeOptions{ListUUID: "l1", UndoneOnly: true})
	if where != "todolist_uuid = ? AND completed = ?" || len(args) != 2 || args[1] != false {
		t.Fatalf("got %q %v", where, args)
	}
	if where, _ := BuildPurgeWhereClause(PurgeOptions{}); where != "" {
		t.Fatalf("expected empty clause, got %q", where)
	}
}

func TestConnectDB_UnknownDriver(t *testing.T) {
	if _, err := ConnectDB("mysql", "x"); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}
