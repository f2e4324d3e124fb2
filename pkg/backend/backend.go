package backend

import (
	"context"
	"fmt"
	"strings"

	"todoshell/pkg/database"
	"todoshell/pkg/models"
	"todoshell/pkg/utils"
)

// DefaultListName is the list created when no list exists yet
const DefaultListName = "Inbox"

// Backend exposes CRUD operations over todo lists and items
type Backend interface {
	TodoLists(ctx context.Context) ([]models.TodoList, error)
	CreateTodoList(ctx context.Context, name string) (models.TodoList, error)
	EnsureDefaultList(ctx context.Context) (models.TodoList, error)
	TodoItems(ctx context.Context, listUUID string) ([]models.TodoItem, error)
	AddTodoItem(ctx context.Context, item models.TodoItem) (models.TodoItem, error)
	UpdateTodoItem(ctx context.Context, item models.TodoItem) error
	DeleteTodoItem(ctx context.Context, uuid string) error
	PurgeTodoItems(ctx context.Context, opts database.PurgeOptions) (int64, error)
}

// SQLBackend stores lists and items in the todolists and todos tables
type SQLBackend struct {
	db *database.DB
}

func NewSQLBackend(db *database.DB) *SQLBackend {
	return &SQLBackend{db: db}
}

func (b *SQLBackend) TodoLists(ctx context.Context) ([]models.TodoList, error) {
	return database.LoadTodoLists(ctx, b.db)
}

func (b *SQLBackend) CreateTodoList(ctx context.Context, name string) (models.TodoList, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.TodoList{}, fmt.Errorf("todo list name is empty")
	}
	list := models.NewTodoList(name)
	if err := database.AddTodoList(ctx, b.db, list); err != nil {
		return models.TodoList{}, fmt.Errorf("create todo list: %w", err)
	}
	return list, nil
}

// EnsureDefaultList returns the first list, creating one when there is none
func (b *SQLBackend) EnsureDefaultList(ctx context.Context) (models.TodoList, error) {
	lists, err := b.TodoLists(ctx)
	if err != nil {
		return models.TodoList{}, err
	}
	if len(lists) > 0 {
		return lists[0], nil
	}
	utils.Logger().Info("creating default todo list", "name", DefaultListName)
	return b.CreateTodoList(ctx, DefaultListName)
}

func (b *SQLBackend) TodoItems(ctx context.Context, listUUID string) ([]models.TodoItem, error) {
	return database.LoadTodoItems(ctx, b.db, listUUID)
}

// AddTodoItem fills in the id and timestamps before inserting the item
func (b *SQLBackend) AddTodoItem(ctx context.Context, item models.TodoItem) (models.TodoItem, error) {
	item = models.NewTodoItem(item)
	if strings.TrimSpace(item.Subject) == "" {
		return models.TodoItem{}, fmt.Errorf("todo item subject is empty")
	}
	if err := database.AddTodoItem(ctx, b.db, item); err != nil {
		return models.TodoItem{}, fmt.Errorf("add todo item: %w", err)
	}
	return item, nil
}

func (b *SQLBackend) UpdateTodoItem(ctx context.Context, item models.TodoItem) error {
	return database.UpdateTodoItem(ctx, b.db, item)
}

func (b *SQLBackend) DeleteTodoItem(ctx context.Context, uuid string) error {
	return database.DeleteTodoItem(ctx, b.db, uuid)
}

func (b *SQLBackend) PurgeTodoItems(ctx context.Context, opts database.PurgeOptions) (int64, error) {
	return database.PurgeTodoItems(ctx, b.db, opts)
}
