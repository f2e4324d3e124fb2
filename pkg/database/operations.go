package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"todoshell/pkg/models"
	"todoshell/pkg/utils"
)

// ErrNotFound is returned when a key or row does not exist
var ErrNotFound = errors.New("not found")

// GetValue reads a value from the key-value table
func GetValue(ctx context.Context, db *DB, key string) (string, error) {
	var value string
	err := db.GetContext(ctx, &value, db.Rebind("SELECT value FROM storage WHERE key = ?"), key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get %q: %w", key, err)
	}
	return value, nil
}

// SetValue writes a value into the key-value table, replacing any previous value
func SetValue(ctx context.Context, db *DB, key, value string) error {
	_, err := db.ExecContext(ctx, db.Rebind(
		`INSERT INTO storage (key, value) VALUES (?, ?)
		 ON CONFLICT (key) DO UPDATE SET value = excluded.value`),
		key, value,
	)
	if err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	utils.Log("Stored key %s (%d bytes)", key, len(value))
	return nil
}

// DeleteValue removes a key from the key-value table
func DeleteValue(ctx context.Context, db *DB, key string) error {
	if _, err := db.ExecContext(ctx, db.Rebind("DELETE FROM storage WHERE key = ?"), key); err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}

// LoadTodoLists retrieves all todo lists ordered by creation
func LoadTodoLists(ctx context.Context, db *DB) ([]models.TodoList, error) {
	var lists []models.TodoList
	if err := db.SelectContext(ctx, &lists, "SELECT uuid, name, created FROM todolists ORDER BY created, name"); err != nil {
		return nil, err
	}
	return lists, nil
}

// AddTodoList inserts a new todo list
func AddTodoList(ctx context.Context, db *DB, list models.TodoList) error {
	_, err := db.ExecContext(ctx, db.Rebind(
		"INSERT INTO todolists (uuid, name, created) VALUES (?, ?, ?)"),
		list.UUID, list.Name, list.Created,
	)
	if err != nil {
		return fmt.Errorf("add todo list: %w", err)
	}
	utils.Log("Added todo list: %s", list.UUID)
	return nil
}

// LoadTodoItems retrieves the items of a list; an empty listUUID loads every item
func LoadTodoItems(ctx context.Context, db *DB, listUUID string) ([]models.TodoItem, error) {
	query := `
		SELECT uuid, todolist_uuid, subject, description, completed, is_priority, archived,
		       due, kanban_column, created, modified
		FROM todos
	`
	var args []any
	if listUUID != "" {
		query += " WHERE todolist_uuid = ?"
		args = append(args, listUUID)
	}
	query += " ORDER BY created"

	var items []models.TodoItem
	if err := db.SelectContext(ctx, &items, db.Rebind(query), args...); err != nil {
		return nil, err
	}

	utils.Log("Loaded %d todo items from database", len(items))
	return items, nil
}

// AddTodoItem inserts a new item into the database
func AddTodoItem(ctx context.Context, db *DB, item models.TodoItem) error {
	_, err := db.ExecContext(ctx, db.Rebind(
		`INSERT INTO todos (uuid, todolist_uuid, subject, description, completed, is_priority, archived, due, kanban_column, created, modified)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		item.UUID,
		item.TodoListUUID,
		item.Subject,
		item.Description,
		item.Completed,
		item.IsPriority,
		item.Archived,
		nullTime(item.Due),
		item.KanbanColumn,
		item.Created,
		item.Modified,
	)
	if err != nil {
		return fmt.Errorf("add todo item: %w", err)
	}
	utils.Log("Added todo item: %s", item.UUID)
	return nil
}

// UpdateTodoItem updates an existing item in the database
func UpdateTodoItem(ctx context.Context, db *DB, item models.TodoItem) error {
	res, err := db.ExecContext(ctx, db.Rebind(
		`UPDATE todos SET todolist_uuid = ?, subject = ?, description = ?, completed = ?, is_priority = ?, archived = ?,
		 due = ?, kanban_column = ?, modified = ?
		 WHERE uuid = ?`),
		item.TodoListUUID,
		item.Subject,
		item.Description,
		item.Completed,
		item.IsPriority,
		item.Archived,
		nullTime(item.Due),
		item.KanbanColumn,
		time.Now(),
		item.UUID,
	)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("todo item %s: %w", item.UUID, ErrNotFound)
	}
	utils.Log("Updated todo item: %s", item.UUID)
	return nil
}

// DeleteTodoItem removes an item from the database
func DeleteTodoItem(ctx context.Context, db *DB, uuid string) error {
	_, err := db.ExecContext(ctx, db.Rebind("DELETE FROM todos WHERE uuid = ?"), uuid)
	return err
}

// PurgeOptions selects the items removed by PurgeTodoItems
type PurgeOptions struct {
	ListUUID   string
	DoneOnly   bool
	UndoneOnly bool
}

// PurgeTodoItems deletes the items selected by opts and reports how many were removed
func PurgeTodoItems(ctx context.Context, db *DB, opts PurgeOptions) (int64, error) {
	where, args := BuildPurgeWhereClause(opts)
	query := "DELETE FROM todos"
	if where != "" {
		query += " WHERE " + where
	}

	res, err := db.ExecContext(ctx, db.Rebind(query), args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// BuildPurgeWhereClause builds a parameterised where clause for purge operations
func BuildPurgeWhereClause(opts PurgeOptions) (string, []any) {
	var conditions []string
	var args []any

	if opts.ListUUID != "" {
		conditions = append(conditions, "todolist_uuid = ?")
		args = append(args, opts.ListUUID)
	}

	if opts.DoneOnly {
		conditions = append(conditions, "completed = ?")
		args = append(args, true)
	} else if opts.UndoneOnly {
		conditions = append(conditions, "completed = ?")
		args = append(args, false)
	}

	where := strings.Join(conditions, " AND ")
	utils.Log("Built purge where clause: %s", where)
	return where, args
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
