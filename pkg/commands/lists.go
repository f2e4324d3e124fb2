package commands

import (
	"context"
	"fmt"
	"io"

	"todoshell/pkg/backend"
)

// HandleListLists prints every todo list with its open and total item counts
func HandleListLists(ctx context.Context, b backend.Backend, out io.Writer) error {
	if _, err := b.EnsureDefaultList(ctx); err != nil {
		return err
	}
	lists, err := b.TodoLists(ctx)
	if err != nil {
		return err
	}

	for _, l := range lists {
		items, err := b.TodoItems(ctx, l.UUID)
		if err != nil {
			return err
		}
		open := 0
		for _, item := range items {
			if !item.Completed {
				open++
			}
		}
		fmt.Fprintf(out, "%s (%d open, %d total)\n", l.Name, open, len(items))
	}
	return nil
}

// HandleCreateList adds a new todo list
func HandleCreateList(ctx context.Context, b backend.Backend, out io.Writer, name string) error {
	// the first list is the default one
	if _, err := b.EnsureDefaultList(ctx); err != nil {
		return err
	}
	if _, err := resolveList(ctx, b, name); err == nil {
		return fmt.Errorf("todo list %q already exists", name)
	}
	list, err := b.CreateTodoList(ctx, name)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Created todo list %s\n", list.Name)
	return nil
}
