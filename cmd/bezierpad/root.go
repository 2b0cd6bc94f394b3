package main

import (
	"context"
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/kpango/glg"
	"github.com/spf13/cobra"

	"github.com/gucio321/bezierpad/pkg/config"
	"github.com/gucio321/bezierpad/pkg/termview"
	"github.com/gucio321/bezierpad/pkg/viewer"
	"github.com/gucio321/bezierpad/pkg/webview"
)

type app struct {
	configPath string
	cfg        *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:          "bezierpad",
		Short:        "Interactive Bezier curve editor",
		SilenceUsage: true,
		Long: strings.TrimSpace(`
Place control points with the left mouse button, drag them around and delete
them with the right button. The curve follows every change.
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// no subcommand => desktop window
			return a.runGUI()
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "config file (json, yaml or toml)")
	flags.String("log-level", "INFO", "log level (DEBUG, INFO, WARN, ERR)")
	flags.Int("steps", 100, "number of segments approximating the curve")
	flags.Float64("radius", 7, "control point marker radius")

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(a.configPath, cmd.Flags())
		if err != nil {
			return err
		}

		a.cfg = cfg
		setupLogging(cfg.LogLevel)

		return nil
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "gui",
			Short: "Edit in a desktop window",
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.runGUI()
			},
		},
		&cobra.Command{
			Use:   "tui",
			Short: "Edit in the terminal",
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.runTUI()
			},
		},
		newWebCmd(a),
	)

	return cmd
}

func newWebCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "web",
		Short: "Serve the editor to a browser",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return a.runWeb(ctx)
		},
	}

	cmd.Flags().String("addr", ":8700", "listen address")

	return cmd
}

func (a *app) runGUI() error {
	v, err := viewer.NewViewer(a.cfg)
	if err != nil {
		return err
	}

	ebiten.SetWindowSize(a.cfg.Canvas.Width, a.cfg.Canvas.Height)
	ebiten.SetWindowTitle("bezierpad")

	glg.Info("starting desktop editor")

	if err := ebiten.RunGame(v); err != nil {
		return fmt.Errorf("cannot run viewer: %w", err)
	}

	return nil
}

func (a *app) runTUI() error {
	// the terminal belongs to the editor now
	glg.Get().SetMode(glg.NONE)

	p := tea.NewProgram(termview.New(a.cfg), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("cannot run terminal editor: %w", err)
	}

	return nil
}

func (a *app) runWeb(ctx context.Context) error {
	glg.Infof("open http://%s/ in a browser", displayAddr(a.cfg.Web.Addr))
	return webview.New(a.cfg).Run(ctx)
}

func setupLogging(level string) {
	tag := strings.ToUpper(strings.TrimSpace(level))
	if tag == "DEBUG" {
		tag = "DEBG"
	}

	glg.Get().SetLevel(glg.TagStringToLevel(tag))
}

func displayAddr(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "localhost" + addr
	}

	return addr
}
