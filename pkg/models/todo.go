package models

import (
	"time"

	"github.com/google/uuid"
)

// TodoItem represents a single todo task
type TodoItem struct {
	UUID         string     `json:"uuid" db:"uuid"`
	TodoListUUID string     `json:"todoListUuid" db:"todolist_uuid"`
	Subject      string     `json:"subject" db:"subject"`
	Description  string     `json:"description" db:"description"`
	Completed    bool       `json:"completed" db:"completed"`
	IsPriority   bool       `json:"isPriority" db:"is_priority"`
	Archived     bool       `json:"archived" db:"archived"`
	Due          *time.Time `json:"due" db:"due"`
	KanbanColumn string     `json:"kanbanColumn" db:"kanban_column"`
	Created      time.Time  `json:"created" db:"created"`
	Modified     time.Time  `json:"modified" db:"modified"`
}

// NewTodoItem completes a partially filled item with an id and timestamps
func NewTodoItem(item TodoItem) TodoItem {
	if item.UUID == "" {
		item.UUID = uuid.NewString()
	}
	now := time.Now()
	if item.Created.IsZero() {
		item.Created = now
	}
	if item.Modified.IsZero() {
		item.Modified = now
	}
	return item
}

// TodoList is a named collection of todo items
type TodoList struct {
	UUID    string    `json:"uuid" db:"uuid"`
	Name    string    `json:"name" db:"name"`
	Created time.Time `json:"created" db:"created"`
}

// NewTodoList creates a list with a fresh id
func NewTodoList(name string) TodoList {
	return TodoList{
		UUID:    uuid.NewString(),
		Name:    name,
		Created: time.Now(),
	}
}
