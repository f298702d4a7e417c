//go:build ebiten

package main

import (
	"context"
	"log/slog"

	"wireview/internal/backend/ebitenview"
	"wireview/internal/config"
	"wireview/internal/render"
)

// ebiten runs its own loop and closes on Escape; ctx only stops it before it starts
func runWindow(ctx context.Context, r *render.Renderer, cfg config.Config, logger *slog.Logger) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return ebitenview.Run(r, ebitenview.Options{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Background: cfg.Background(),
		Interval:   cfg.Interval(),
	}, logger)
}
