package cli

import (
	"errors"
	"math"

	"console-shell/internal/layout"

	"github.com/spf13/cobra"
)

func newLayoutCmd(app *App) *cobra.Command {
	var (
		width  float64
		cols   int
		toggle bool
	)
	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Show the layout a page load at the given width would render",
		Example: `  console layout --width 1200
  console layout --cols 80 --toggle`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			widthSet := cmd.Flags().Changed("width")
			colsSet := cmd.Flags().Changed("cols")
			switch {
			case widthSet && colsSet:
				return writeErr(cmd, errors.New("--width and --cols are mutually exclusive"))
			case colsSet:
				if cols < 0 {
					return writeErr(cmd, invalidValue("--cols", cmd.Flags().Lookup("cols").Value.String(), "a non-negative column count"))
				}
				width = float64(cols) * app.cfg.CellWidthPx
			case widthSet:
				if width < 0 || math.IsNaN(width) || math.IsInf(width, 0) {
					return writeErr(cmd, invalidValue("--width", cmd.Flags().Lookup("width").Value.String(), "a non-negative px width"))
				}
			default:
				return writeErr(cmd, errors.New("one of --width or --cols is required"))
			}

			kv, err := app.openPrefs(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			defer kv.Close()

			rec := &layout.Recorder{}
			ctl := layout.NewController(rec.Surfaces(), kv, nil,
				layout.WithLogger(app.log),
				layout.WithMetrics(app.cfg.Metrics()),
			)
			ctl.Initialize(width)
			loaded, _ := ctl.Snapshot()

			data := map[string]any{
				"width":    width,
				"snapshot": loaded,
			}
			if toggle {
				if ctl.State().Viewport() == layout.Desktop {
					ctl.ToggleDesktop()
				} else {
					ctl.ToggleMobile()
				}
				after, _ := ctl.Snapshot()
				data["toggled"] = after
			}
			return writeOut(cmd, app, map[string]any{"data": data})
		},
	}
	cmd.Flags().Float64Var(&width, "width", 0, "Viewport width in px")
	cmd.Flags().IntVar(&cols, "cols", 0, "Viewport width in terminal columns")
	cmd.Flags().BoolVar(&toggle, "toggle", false, "Press the toggle control once after loading")
	return cmd
}
