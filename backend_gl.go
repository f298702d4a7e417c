//go:build !ebiten

package main

import (
	"context"
	"log/slog"

	"wireview/internal/backend/glview"
	"wireview/internal/config"
	"wireview/internal/render"
)

func runWindow(ctx context.Context, r *render.Renderer, cfg config.Config, logger *slog.Logger) error {
	return glview.Run(ctx, r, glview.Options{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Background: cfg.Background(),
		Interval:   cfg.Interval(),
	}, logger)
}
