// wireview is an interactive wireframe viewer.
//
// Controls:
//
//	W/S         Rotate around X axis
//	A/D         Rotate around Y axis
//	Q/E         Rotate around Z axis
//	Up/Down     Zoom in / out
//	Left/Right  Pan horizontally
//	PgUp/PgDn   Pan vertically
//	R           Reset camera to default view
//	Escape      Exit
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"wireview/internal/config"
	"wireview/internal/input"
	"wireview/internal/render"
	"wireview/internal/scene"
)

type globalFlags struct {
	configPath string
	modelPath  string
	verbose    bool
}

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var g globalFlags

	root := &cobra.Command{
		Use:   "wireview",
		Short: "Interactive wireframe viewer",
		Long: `wireview - interactive wireframe viewer

Shows a suburban street (or a glTF model) as coloured wireframes. Hold keys to
move the camera; motion eases toward where you steer it.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd.Context(), g, stdout, stderr)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.StringVarP(&g.configPath, "config", "c", "", "TOML or YAML configuration file")
	pf.StringVarP(&g.modelPath, "model", "m", "", "glTF model (.gltf or .glb) to show instead of the built-in scene")
	pf.BoolVarP(&g.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(newSnapshotCmd(&g, stderr), newInfoCmd(&g, stdout, stderr))
	return root
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// setup loads the configuration and scene shared by every command
func setup(g globalFlags, logger *slog.Logger) (config.Config, []*scene.Mesh, error) {
	cfg := config.Default()
	if g.configPath != "" {
		var err error
		if cfg, err = config.Load(g.configPath); err != nil {
			return cfg, nil, err
		}
		logger.Debug("loaded config", "path", g.configPath)
	}

	if g.modelPath == "" {
		meshes := scene.Suburb()
		logger.Debug("built scene", "meshes", len(meshes))
		return cfg, meshes, nil
	}

	switch strings.ToLower(filepath.Ext(g.modelPath)) {
	case ".gltf", ".glb":
	default:
		return cfg, nil, fmt.Errorf("unsupported model %s (use .gltf or .glb)", g.modelPath)
	}
	fallback, _ := scene.Named("black")
	meshes, err := scene.LoadGLTF(g.modelPath, fallback, logger)
	return cfg, meshes, err
}

func newRenderer(cfg config.Config, meshes []*scene.Mesh) *render.Renderer {
	return render.New(meshes, cfg.Camera(), &input.HeldKeys{}, render.Options{
		Projector: cfg.Projector(),
		Viewport:  cfg.Viewport(),
		Mapper:    cfg.Mapper(),
	})
}

func runView(ctx context.Context, g globalFlags, stdout, stderr io.Writer) error {
	logger := newLogger(stderr, g.verbose)
	cfg, meshes, err := setup(g, logger)
	if err != nil {
		return err
	}

	printControls(stdout)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	err = runWindow(ctx, newRenderer(cfg, meshes), cfg, logger)
	if err == context.Canceled {
		return nil
	}
	return err
}

func printControls(w io.Writer) {
	out := termenv.NewOutput(w)
	fmt.Fprintln(w, out.String("wireview").Bold().String())
	fmt.Fprintln(w)
	fmt.Fprintln(w, out.String("Controls (hold keys for continuous movement):").Underline().String())
	for _, line := range render.Controls {
		fmt.Fprintln(w, "  "+line)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, out.String("Click the window to give it focus.").Faint().String())
}
