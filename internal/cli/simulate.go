package cli

import (
	"fmt"
	"io"
	"os"

	"console-shell/internal/layout"
	"console-shell/internal/sim"
	"console-shell/internal/store"

	"github.com/spf13/cobra"
)

func newSimulateCmd(app *App) *cobra.Command {
	var useStore bool
	cmd := &cobra.Command{
		Use:   "simulate <script.yaml|->",
		Short: "Replay a scripted session on a virtual clock",
		Long: `Replay a scripted session on a virtual clock and print one snapshot per step.

Scripts run against an empty in-memory preference store unless --use-store is
given, in which case the configured store is read and written.`,
		Example: `  cat <<'YAML' | console simulate -
  persisted: collapsed
  steps:
    - init: 1200
    - resize: 600
    - toggle-mobile
    - navigate
    - advance: 100ms
  YAML`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := readScript(cmd, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}

			var prefs store.KV = store.NewMemory()
			if useStore {
				prefs, err = app.openPrefs(cmd.Context())
				if err != nil {
					return writeErr(cmd, err)
				}
			}
			defer prefs.Close()

			delay := app.cfg.NavCloseDelay
			r := &sim.Runner{
				Prefs:         prefs,
				Metrics:       app.cfg.Metrics(),
				NavCloseDelay: &delay,
				Logger:        app.log,
			}
			results, err := r.Run(cmd.Context(), sc)
			if err != nil {
				return writeErr(cmd, err)
			}

			persisted, ok, err := prefs.Get(cmd.Context(), layout.StorageKey)
			if err != nil {
				return writeErr(cmd, err)
			}
			meta := map[string]any{"steps": len(results)}
			if ok {
				meta["persisted"] = persisted
			}
			return writeOut(cmd, app, map[string]any{
				"data": results,
				"meta": meta,
			})
		},
	}
	cmd.Flags().BoolVar(&useStore, "use-store", false, "Run against the configured preference store instead of a scratch one")
	return cmd
}

func readScript(cmd *cobra.Command, path string) (*sim.Script, error) {
	var r io.Reader
	if path == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open script: %w", err)
		}
		defer f.Close()
		r = f
	}
	sc, err := sim.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sc, nil
}
