package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"console-shell/internal/config"
	"console-shell/internal/format"
	"console-shell/internal/logging"
	"console-shell/internal/store"
	"console-shell/internal/tui"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// skipConfigLoad marks commands that must run even when the config file is
// unreadable or invalid; they start from the built-in defaults.
const skipConfigLoad = "console/skip-config-load"

type App struct {
	ConfigPath string
	Dir        string
	StoreName  string
	PrettyJSON bool
	Format     string
	NoPersist  bool
	Verbose    bool

	cfg *config.Config
	log *zap.Logger
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "console",
		Short:        "Point-of-sale admin console with a responsive sidebar",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive console
  console

  # Inspect or change the persisted sidebar preference
  console prefs show
  console prefs set collapsed

  # What would a 1200px page load render?
  console layout --width 1200

  # Replay a scripted session on a virtual clock
  console simulate session.yaml
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive console.
			if len(args) == 0 {
				return runTUI(cmd, app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.setup(cmd)
	}
	cmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		if app.log != nil {
			_ = app.log.Sync()
		}
	}

	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", "", "Path to config file (default: $CONSOLE_CONFIG or ~/.console/config.yaml)")
	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("CONSOLE_DIR", ""), "State directory (overrides state_dir from config)")
	cmd.PersistentFlags().StringVar(&app.StoreName, "store", "", "Preference store backend (sqlite|json|memory; overrides config)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("CONSOLE_FORMAT", "json"), "Output format (json|edn)")
	cmd.PersistentFlags().BoolVar(&app.NoPersist, "no-persist", false, "Keep preferences in memory only")
	cmd.PersistentFlags().BoolVarP(&app.Verbose, "verbose", "v", false, "Debug logging")

	cmd.AddCommand(newPrefsCmd(app))
	cmd.AddCommand(newLayoutCmd(app))
	cmd.AddCommand(newSimulateCmd(app))
	cmd.AddCommand(newConfigCmd(app))

	return cmd
}

// setup resolves configuration in precedence order: defaults, config file,
// CONSOLE_* environment, then flags.
func (app *App) setup(cmd *cobra.Command) error {
	if err := format.Check(app.Format); err != nil {
		return writeErr(cmd, invalidValue("--format", app.Format, "json|edn"))
	}

	path := strings.TrimSpace(app.ConfigPath)
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return writeErr(cmd, err)
		}
		path = p
	}
	app.ConfigPath = path

	cfg := config.Default()
	if cmd.Annotations[skipConfigLoad] != "true" {
		loaded, err := config.Load(path)
		if err != nil {
			return writeErr(cmd, err)
		}
		cfg = loaded
	}
	if d := strings.TrimSpace(app.Dir); d != "" {
		cfg.StateDir = d
	}
	if s := strings.TrimSpace(app.StoreName); s != "" {
		if _, err := store.ParseBackend(s); err != nil {
			return writeErr(cmd, invalidValue("--store", s, "sqlite|json|memory"))
		}
		cfg.Store.Backend = s
	}
	if app.NoPersist {
		cfg.Store.Backend = string(store.BackendMemory)
	}
	if err := cfg.Validate(); err != nil {
		return writeErr(cmd, fmt.Errorf("invalid config %s: %w", path, err))
	}
	app.cfg = cfg

	opts := logging.Options{Level: cfg.Log.Level, Verbose: app.Verbose, File: cfg.Log.File}
	var (
		logger *zap.Logger
		err    error
	)
	if cmd == cmd.Root() {
		// The terminal UI owns the screen; stderr logging would corrupt it.
		logger, err = logging.ForTUI(opts)
	} else {
		logger, err = logging.New(opts)
	}
	if err != nil {
		return writeErr(cmd, err)
	}
	app.log = logger
	return nil
}

func (app *App) openPrefs(ctx context.Context) (store.KV, error) {
	s := store.Store{Dir: app.cfg.StateDir}
	kv, err := s.Open(ctx, app.cfg.Backend())
	if err != nil {
		return nil, fmt.Errorf("open %s preference store: %w", app.cfg.Backend(), err)
	}
	app.log.Debug("preference store opened",
		zap.String("backend", string(app.cfg.Backend())),
		zap.String("dir", app.cfg.StateDir),
	)
	return kv, nil
}

func runTUI(cmd *cobra.Command, app *App) error {
	kv, err := app.openPrefs(cmd.Context())
	if err != nil {
		return writeErr(cmd, err)
	}
	defer kv.Close()

	err = tui.Run(tui.Options{
		Prefs:         kv,
		Logger:        app.log,
		Metrics:       app.cfg.Metrics(),
		NavCloseDelay: app.cfg.NavCloseDelay,
		CellWidthPx:   app.cfg.CellWidthPx,
	})
	if err != nil {
		return writeErr(cmd, err)
	}
	return nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
