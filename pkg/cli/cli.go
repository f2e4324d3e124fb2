package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"todoshell/pkg/backend"
	"todoshell/pkg/config"
	"todoshell/pkg/database"
	"todoshell/pkg/storage"
	"todoshell/pkg/ui"
	"todoshell/pkg/utils"
)

// App holds the persistent flags and the configuration they feed
type App struct {
	ConfigPath string
	Driver     string
	DSN        string
	Verbose    bool

	v *viper.Viper
}

// environment is everything a command needs, built once per invocation
type environment struct {
	db      *database.DB
	config  config.Config
	styles  config.Styles
	backend backend.Backend
	users   *storage.UserStorage
	filters *storage.FilterStorage
}

// NewRootCmd builds the todoshell command tree
func NewRootCmd() *cobra.Command {
	app := &App{v: viper.New()}

	cmd := &cobra.Command{
		Use:          config.AppName,
		Short:        "Todo lists in the terminal",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  todoshell

  # Add a todo from a script
  todoshell add "Pay rent" --date 2026-11-01 --priority

  # Use a postgres database instead of the local sqlite file
  todoshell --driver postgres --database "postgres://localhost/todos?sslmode=disable"
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			return runTUI(cmd.Context(), app)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&app.ConfigPath, "config", "", "Path to configuration file (default ~/.config/todoshell/config.json)")
	flags.StringVar(&app.Driver, "driver", "", "Database driver (sqlite3|postgres)")
	flags.StringVar(&app.DSN, "database", "", "Database file (sqlite3) or connection string (postgres)")
	flags.BoolVarP(&app.Verbose, "verbose", "v", false, "Enable verbose logging")

	_ = app.v.BindPFlag("database.driver", flags.Lookup("driver"))
	_ = app.v.BindPFlag("database.dsn", flags.Lookup("database"))
	_ = app.v.BindPFlag("verbose", flags.Lookup("verbose"))

	cmd.AddCommand(newAddCmd(app))
	cmd.AddCommand(newListsCmd(app))
	cmd.AddCommand(newLoginCmd(app))
	cmd.AddCommand(newLogoutCmd(app))
	cmd.AddCommand(newWhoamiCmd(app))
	cmd.AddCommand(newFilterCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newImportCmd(app))
	cmd.AddCommand(newPurgeCmd(app))

	return cmd
}

// open loads the configuration and connects the storage and backend
func (app *App) open() (*environment, error) {
	cfg, styles, err := config.Load(app.v, app.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if err := utils.InitLogger(cfg.Verbose, cfg.LogFile); err != nil {
		return nil, err
	}
	utils.Log("Using %s database %s", cfg.Database.Driver, cfg.Database.DSN)

	db, err := database.ConnectDB(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		utils.CloseLogger()
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if err := database.EnsureSchema(db); err != nil {
		db.Close()
		utils.CloseLogger()
		return nil, err
	}

	kv := storage.NewSQLStorage(db)
	return &environment{
		db:      db,
		config:  cfg,
		styles:  styles,
		backend: backend.NewSQLBackend(db),
		users:   storage.NewUserStorage(kv),
		filters: storage.NewFilterStorage(kv),
	}, nil
}

func (env *environment) close() {
	env.db.Close()
	utils.CloseLogger()
}

func runTUI(ctx context.Context, app *App) error {
	env, err := app.open()
	if err != nil {
		return err
	}
	defer env.close()

	m, err := ui.NewModel(ctx, ui.Deps{
		Backend: env.backend,
		Users:   env.users,
		Filters: env.filters,
		// dialog flags live for the process only
		Modals: storage.NewModalStorage(storage.NewMemoryStorage()),
		Config: env.config,
		Styles: env.styles,
	})
	if err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}
