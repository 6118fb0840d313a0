package cli

import (
	"fmt"
	"os"

	"console-shell/internal/config"

	"github.com/spf13/cobra"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or create the console configuration",
	}
	cmd.AddCommand(newConfigShowCmd(app))
	cmd.AddCommand(newConfigInitCmd(app))
	return cmd
}

func configPayload(app *App, cfg *config.Config) map[string]any {
	return map[string]any{
		"path":          app.ConfigPath,
		"stateDir":      cfg.StateDir,
		"store":         map[string]any{"backend": cfg.Store.Backend},
		"navCloseDelay": cfg.NavCloseDelay.String(),
		"cellWidthPx":   cfg.CellWidthPx,
		"sidebar": map[string]any{
			"width":          cfg.Sidebar.Width,
			"collapsedWidth": cfg.Sidebar.CollapsedWidth,
			"tabletWidth":    cfg.Sidebar.TabletWidth,
			"tabletMax":      cfg.Sidebar.TabletMax,
		},
		"log": map[string]any{
			"level": cfg.Log.Level,
			"file":  cfg.Log.File,
		},
	}
}

func newConfigShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration (file, environment and flags applied)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeOut(cmd, app, map[string]any{"data": configPayload(app, app.cfg)})
		},
	}
}

func newConfigInitCmd(app *App) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default settings",
		Args:  cobra.NoArgs,
		// A broken config file must not stop the command that replaces it.
		Annotations: map[string]string{skipConfigLoad: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(app.ConfigPath); err == nil && !force {
				return writeErr(cmd, fmt.Errorf("config already exists: %s (use --force to overwrite)", app.ConfigPath))
			}
			cfg := config.Default()
			if app.Dir != "" {
				cfg.StateDir = app.Dir
			}
			if err := cfg.Save(app.ConfigPath); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": configPayload(app, cfg)})
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")
	return cmd
}
