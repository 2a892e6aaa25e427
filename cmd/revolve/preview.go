package main

import (
	"errors"
	"fmt"
	"image/png"
	"os"

	"github.com/rs/zerolog/log"

	"revolve/internal/app"
	"revolve/internal/config"
	"revolve/internal/math3d"
	"revolve/internal/raster"
	"revolve/internal/surface"
)

// A vase-like outline used when no points are given.
var defaultProfile = []math3d.Vec3{
	{X: 0.3, Y: -0.8},
	{X: 0.6, Y: -0.6},
	{X: 0.7, Y: -0.2},
	{X: 0.4, Y: 0.3},
	{X: 0.3, Y: 0.6},
	{X: 0.45, Y: 0.8},
}

func previewCommand(settings config.Settings, profile []math3d.Vec3) error {
	opts := CLI.Preview
	if opts.Width > 0 {
		settings.Window.Width = opts.Width
	}
	if opts.Height > 0 {
		settings.Window.Height = opts.Height
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	state := app.New(settings, log.Logger)
	if opts.Grid {
		g, err := surface.Grid(gridSize, gridStep, surface.Wave(waveAmplitude, waveFrequency))
		if err != nil {
			return err
		}
		state.ShowSurface(g.Mesh)
	} else {
		if len(profile) == 0 {
			profile = defaultProfile
		}
		for _, p := range profile {
			state.AddPoint(p)
		}
		state.KeyPressed(app.KeyToggleMode)
		if state.Mode != app.ViewSurface {
			return errors.New("a surface needs at least 2 profile points")
		}
	}
	state.RotationX = opts.RotateX
	state.RotationY = opts.RotateY

	frame, err := state.Frame()
	if err != nil {
		return err
	}
	mvp := frame.Projection.Mul(frame.View).Mul(frame.Model)

	width, height := state.Size()
	img := raster.NewCanvas(width, height)
	drawn := raster.DrawMesh(img, state.Surface, mvp, raster.Surface)

	// The profile is ring 0 of the surface, so it overlays in model space.
	if !opts.Grid {
		raster.DrawPolyline(img, state.Curve, mvp, raster.Green)
		raster.DrawPoints(img, state.Profile.Points(), mvp, 5, raster.Yellow)
	}

	f, err := os.Create(opts.Output)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encoding %s: %w", opts.Output, err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	lo, hi := state.Surface.Bounds()
	log.Info().
		Str("output", opts.Output).
		Stringer("min", lo).
		Stringer("max", hi).
		Int("triangles", state.Surface.TriangleCount()).
		Int("drawn", drawn).
		Msg("wrote preview")
	return nil
}
