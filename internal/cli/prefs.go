package cli

import (
	"console-shell/internal/layout"

	"github.com/spf13/cobra"
)

func newPrefsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Inspect or change the persisted sidebar preference",
	}
	cmd.AddCommand(newPrefsShowCmd(app))
	cmd.AddCommand(newPrefsSetCmd(app))
	cmd.AddCommand(newPrefsResetCmd(app))
	return cmd
}

func prefsPayload(app *App, raw string, present bool) map[string]any {
	effective := layout.Expanded
	recognized := false
	if present {
		if st, ok := layout.ParseCollapseState(raw); ok {
			effective = st
			recognized = true
		}
	}
	out := map[string]any{
		"key":       layout.StorageKey,
		"backend":   string(app.cfg.Backend()),
		"present":   present,
		"effective": effective.String(),
	}
	if present {
		out["value"] = raw
		out["recognized"] = recognized
	}
	return out
}

func newPrefsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the stored value and the desktop state it loads as",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kv, err := app.openPrefs(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			defer kv.Close()

			v, ok, err := kv.Get(cmd.Context(), layout.StorageKey)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": prefsPayload(app, v, ok)})
		},
	}
}

func newPrefsSetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set <collapsed|expanded>",
		Short: "Persist the desktop sidebar state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, ok := layout.ParseCollapseState(args[0])
			if !ok {
				return writeErr(cmd, invalidValue("sidebar state", args[0], "collapsed|expanded"))
			}
			kv, err := app.openPrefs(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			defer kv.Close()

			if err := kv.Set(cmd.Context(), layout.StorageKey, st.String()); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": prefsPayload(app, st.String(), true)})
		},
	}
}

func newPrefsResetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Forget the stored preference (next load starts expanded)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kv, err := app.openPrefs(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			defer kv.Close()

			if err := kv.Delete(cmd.Context(), layout.StorageKey); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": prefsPayload(app, "", false)})
		},
	}
}
