package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"todoshell/pkg/backend"
	"todoshell/pkg/database"
)

// PurgeOptions selects the todos removed by the purge command
type PurgeOptions struct {
	List        string
	DoneOnly    bool
	UndoneOnly  bool
	SkipConfirm bool
}

// HandlePurgeCommand deletes the selected todos after confirmation
func HandlePurgeCommand(ctx context.Context, b backend.Backend, in io.Reader, out io.Writer, opts PurgeOptions) error {
	if opts.DoneOnly && opts.UndoneOnly {
		return fmt.Errorf("--done and --undone are mutually exclusive")
	}

	dbOpts := database.PurgeOptions{DoneOnly: opts.DoneOnly, UndoneOnly: opts.UndoneOnly}
	if opts.List != "" {
		list, err := resolveList(ctx, b, opts.List)
		if err != nil {
			return err
		}
		dbOpts.ListUUID = list.UUID
	}

	// Show confirmation unless --yes flag is used
	if !opts.SkipConfirm {
		fmt.Fprint(out, "Are you sure you want to delete these todos? (y/N): ")
		response, _ := bufio.NewReader(in).ReadString('\n')
		response = strings.ToLower(strings.TrimSpace(response))
		if response != "y" && response != "yes" {
			fmt.Fprintln(out, "Operation cancelled.")
			return nil
		}
	}

	n, err := b.PurgeTodoItems(ctx, dbOpts)
	if err != nil {
		return fmt.Errorf("purge todos: %w", err)
	}
	fmt.Fprintf(out, "Successfully deleted %d todo(s)\n", n)
	return nil
}
