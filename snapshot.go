package main

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"wireview/internal/config"
	"wireview/internal/input"
	"wireview/internal/render"
	"wireview/internal/scene"
)

type snapshotFlags struct {
	output string
	frames int
	hold   []string
	cube   bool
	noHUD  bool
}

func newSnapshotCmd(g *globalFlags, stderr io.Writer) *cobra.Command {
	var f snapshotFlags

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Render frames without a window and save the last one as PNG",
		Long: `Render frames without a window and save the last one as PNG.

Keys named with --hold stay pressed for every frame, e.g.
  wireview snapshot --hold zoom-out --hold yaw-left --frames 60 -o view.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(stderr, g.verbose)
			cfg, meshes, err := setup(*g, logger)
			if err != nil {
				return err
			}
			if f.cube {
				black, _ := scene.Named("black")
				meshes = []*scene.Mesh{scene.Cube(1, black)}
			}

			held, err := parseKeys(f.hold)
			if err != nil {
				return err
			}
			img, stats, err := renderSnapshot(cfg, meshes, held, f.frames, !f.noHUD)
			if err != nil {
				return err
			}
			if err := writePNG(f.output, img); err != nil {
				return err
			}
			logger.Info("wrote snapshot", "path", f.output, "frames", f.frames,
				"lines", stats.Lines, "culled", stats.Culled)
			return nil
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&f.output, "output", "o", "wireview.png", "PNG file to write")
	fl.IntVarP(&f.frames, "frames", "n", 1, "Number of frames to simulate")
	fl.StringSliceVar(&f.hold, "hold", nil, "Key actions held during every frame (e.g. pitch-up, zoom-out, reset)")
	fl.BoolVar(&f.cube, "cube", false, "Render a unit cube instead of the scene")
	fl.BoolVar(&f.noHUD, "no-hud", false, "Leave out the controls and telemetry text")
	return cmd
}

func parseKeys(names []string) ([]input.Key, error) {
	keys := make([]input.Key, 0, len(names))
	for _, name := range names {
		k, ok := input.ParseKey(name)
		if !ok {
			return nil, fmt.Errorf("unknown key action %q", name)
		}
		keys = append(keys, k)
	}
	return keys, nil
}

// renderSnapshot runs frames ticks with held pressed and rasterises the last one
func renderSnapshot(cfg config.Config, meshes []*scene.Mesh, held []input.Key, frames int, hud bool) (*image.RGBA, render.FrameStats, error) {
	if frames < 1 {
		return nil, render.FrameStats{}, fmt.Errorf("frames must be at least 1, got %d", frames)
	}

	r := newRenderer(cfg, meshes)
	for _, k := range held {
		r.Keys().Press(k)
	}
	for i := 1; i < frames; i++ {
		r.Frame()
	}

	canvas := render.NewImageCanvas(cfg.Window.Width, cfg.Window.Height, cfg.Background())
	stats := r.Render(canvas)
	if hud {
		black, _ := scene.Named("black")
		render.DrawHUD(canvas.Image, r.Camera(), stats, black)
	}
	return canvas.Image, stats, nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

func newInfoCmd(g *globalFlags, stdout, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Print the scene's mesh, vertex and edge counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(stderr, g.verbose)
			_, meshes, err := setup(*g, logger)
			if err != nil {
				return err
			}
			printInfo(stdout, g.modelPath, meshes)
			return nil
		},
	}
}

func printInfo(w io.Writer, source string, meshes []*scene.Mesh) {
	if source == "" {
		source = "built-in suburb"
	}
	out := termenv.NewOutput(w)
	s := scene.Stats(meshes)

	fmt.Fprintf(w, "%s %s\n", out.String("Scene:").Bold().String(), source)
	fmt.Fprintf(w, "%s %d\n", out.String("Meshes:").Bold().String(), s.Meshes)
	fmt.Fprintf(w, "%s %d\n", out.String("Vertices:").Bold().String(), s.Vertices)
	fmt.Fprintf(w, "%s %d\n", out.String("Edges:").Bold().String(), s.Edges)
}
