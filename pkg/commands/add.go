package commands

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"todoshell/pkg/backend"
	"todoshell/pkg/models"
)

// AddOptions describes a todo added from the command line
type AddOptions struct {
	Subject  string
	Date     string
	List     string
	Column   string
	Priority bool
}

// HandleAddTodo processes the add command
func HandleAddTodo(ctx context.Context, b backend.Backend, out io.Writer, opts AddOptions) error {
	subject := strings.TrimSpace(opts.Subject)
	if subject == "" {
		return fmt.Errorf("subject is required")
	}

	// Parse date
	var due *time.Time
	if opts.Date != "" {
		parsed, err := parseDate(opts.Date)
		if err != nil {
			return err
		}
		due = &parsed
	}

	list, err := resolveList(ctx, b, opts.List)
	if err != nil {
		return err
	}

	item, err := b.AddTodoItem(ctx, models.TodoItem{
		TodoListUUID: list.UUID,
		Subject:      subject,
		IsPriority:   opts.Priority,
		Due:          due,
		KanbanColumn: opts.Column,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Added %q to %s\n", item.Subject, list.Name)
	return nil
}

// parseDate accepts YYYY-MM-DD and the words today and tomorrow
func parseDate(s string) (time.Time, error) {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	switch strings.ToLower(s) {
	case "today":
		return today, nil
	case "tomorrow":
		return today.AddDate(0, 0, 1), nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: use YYYY-MM-DD", s)
	}
	return t, nil
}

// resolveList finds a list by name, falling back to the default list when
// name is empty
func resolveList(ctx context.Context, b backend.Backend, name string) (models.TodoList, error) {
	if name == "" {
		return b.EnsureDefaultList(ctx)
	}
	lists, err := b.TodoLists(ctx)
	if err != nil {
		return models.TodoList{}, err
	}
	for _, l := range lists {
		if strings.EqualFold(l.Name, name) {
			return l, nil
		}
	}
	return models.TodoList{}, fmt.Errorf("todo list %q not found", name)
}
