package ui

import (
	"todoshell/pkg/filter"
	"todoshell/pkg/models"
)

// FilterChangedMsg carries a new filter value published by the filter dialog
type FilterChangedMsg struct {
	Filter filter.Filter
}

// TodoItemAddedMsg carries an item submitted from the add-todo dialog
type TodoItemAddedMsg struct {
	Item models.TodoItem
}

// TodoListSelectedMsg carries the list picked in the todo-list chooser
type TodoListSelectedMsg struct {
	List models.TodoList
}

// LoggedInMsg carries the user entered in the login form
type LoggedInMsg struct {
	User models.User
}

// openAddTodoMsg is delivered shortly after the add-todo shortcut fires
type openAddTodoMsg struct{}
