package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"todoshell/pkg/commands"
	"todoshell/pkg/models"
)

func newAddCmd(app *App) *cobra.Command {
	var opts commands.AddOptions

	cmd := &cobra.Command{
		Use:   "add <subject>",
		Short: "Add a todo",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := app.open()
			if err != nil {
				return err
			}
			defer env.close()

			opts.Subject = joinArgs(args)
			if opts.Column == "" {
				f, err := env.filters.LoadFilter(cmd.Context())
				if err != nil {
					return err
				}
				if len(f.KanbanColumns) > 0 {
					opts.Column = f.KanbanColumns[0]
				}
			}
			return commands.HandleAddTodo(cmd.Context(), env.backend, cmd.OutOrStdout(), opts)
		},
	}
	cmd.Flags().StringVar(&opts.Date, "date", "", "Due date (YYYY-MM-DD, today, tomorrow)")
	cmd.Flags().StringVar(&opts.List, "list", "", "Todo list name (default: first list)")
	cmd.Flags().StringVar(&opts.Column, "column", "", "Kanban column (default: first column of the filter)")
	cmd.Flags().BoolVarP(&opts.Priority, "priority", "p", false, "Mark as priority")
	return cmd
}

func newListsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lists",
		Short: "Show todo lists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := app.open()
			if err != nil {
				return err
			}
			defer env.close()
			return commands.HandleListLists(cmd.Context(), env.backend, cmd.OutOrStdout())
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "create <name>",
		Short: "Create a todo list",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := app.open()
			if err != nil {
				return err
			}
			defer env.close()
			return commands.HandleCreateList(cmd.Context(), env.backend, cmd.OutOrStdout(), joinArgs(args))
		},
	})
	return cmd
}

func newLoginCmd(app *App) *cobra.Command {
	var user models.User

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store the signed-in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := app.open()
			if err != nil {
				return err
			}
			defer env.close()
			return commands.HandleLogin(cmd.Context(), env.users, cmd.OutOrStdout(), user)
		},
	}
	cmd.Flags().StringVar(&user.Name, "name", "", "Display name")
	cmd.Flags().StringVar(&user.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&user.Token, "token", "", "Access token")
	cmd.Flags().StringVar(&user.ImageURL, "image-url", "", "Avatar URL")
	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the signed-in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := app.open()
			if err != nil {
				return err
			}
			defer env.close()
			return commands.HandleLogout(cmd.Context(), env.users, cmd.OutOrStdout())
		},
	}
}

func newWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := app.open()
			if err != nil {
				return err
			}
			defer env.close()
			return commands.HandleWhoami(cmd.Context(), env.users, cmd.OutOrStdout())
		},
	}
}

func newFilterCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Inspect or reset the stored filter",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the stored filter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := app.open()
			if err != nil {
				return err
			}
			defer env.close()
			return commands.HandleFilterShow(cmd.Context(), env.filters, cmd.OutOrStdout())
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Restore the default filter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := app.open()
			if err != nil {
				return err
			}
			defer env.close()
			return commands.HandleFilterReset(cmd.Context(), env.filters, cmd.OutOrStdout())
		},
	})
	return cmd
}

func newExportCmd(app *App) *cobra.Command {
	var exportType string

	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Export all lists and todos",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := app.open()
			if err != nil {
				return err
			}
			defer env.close()
			return commands.HandleExportCommand(cmd.Context(), env.backend, cmd.OutOrStdout(), args[0], exportType)
		},
	}
	cmd.Flags().StringVar(&exportType, "type", "json", "Export file type (json, txt)")
	return cmd
}

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import todos from a JSON or text export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := app.open()
			if err != nil {
				return err
			}
			defer env.close()
			return commands.HandleImportCommand(cmd.Context(), env.backend, cmd.OutOrStdout(), args[0])
		},
	}
}

func newPurgeCmd(app *App) *cobra.Command {
	var opts commands.PurgeOptions

	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Delete todos",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := app.open()
			if err != nil {
				return err
			}
			defer env.close()
			return commands.HandlePurgeCommand(cmd.Context(), env.backend, cmd.InOrStdin(), cmd.OutOrStdout(), opts)
		},
	}
	cmd.Flags().StringVar(&opts.List, "list", "", "Only purge this todo list")
	cmd.Flags().BoolVar(&opts.DoneOnly, "done", false, "Only purge completed todos")
	cmd.Flags().BoolVar(&opts.UndoneOnly, "undone", false, "Only purge open todos")
	cmd.Flags().BoolVarP(&opts.SkipConfirm, "yes", "y", false, "Skip confirmation")
	return cmd
}

func joinArgs(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}
