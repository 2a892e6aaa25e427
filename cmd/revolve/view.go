package main

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/rs/zerolog/log"

	"revolve/internal/app"
	"revolve/internal/config"
	"revolve/internal/math3d"
	"revolve/internal/render"
	"revolve/internal/surface"
)

var heldKeys = map[glfw.Key]app.Key{
	glfw.KeyW:     app.KeyForward,
	glfw.KeyS:     app.KeyBackward,
	glfw.KeyA:     app.KeyLeft,
	glfw.KeyD:     app.KeyRight,
	glfw.KeyLeft:  app.KeyRotateLeft,
	glfw.KeyRight: app.KeyRotateRight,
	glfw.KeyUp:    app.KeyRotateUp,
	glfw.KeyDown:  app.KeyRotateDown,
}

var pressedKeys = map[glfw.Key]app.Key{
	glfw.KeyP: app.KeyToggleMode,
	glfw.KeyC: app.KeyClear,
}

func viewCommand(settings config.Settings, preload []math3d.Vec3, grid bool) error {
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("failed to initialize glfw: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	title := settings.Window.Title
	window, err := glfw.CreateWindow(settings.Window.Width, settings.Window.Height, title, nil, nil)
	if err != nil {
		return err
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		return err
	}
	log.Info().Str("version", gl.GoStr(gl.GetString(gl.VERSION))).Msg("opengl ready")

	renderer, err := render.NewRenderer()
	if err != nil {
		return err
	}
	defer renderer.Delete()

	state := app.New(settings, log.Logger)
	state.Resize(window.GetFramebufferSize())
	for _, p := range preload {
		state.AddPoint(p)
	}
	if grid {
		g, err := surface.Grid(gridSize, gridStep, surface.Wave(waveAmplitude, waveFrequency))
		if err != nil {
			return err
		}
		state.ShowSurface(g.Mesh)
	}
	syncCursor(window, state)

	window.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		state.Resize(width, height)
	})
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if action != glfw.Press {
			return
		}
		if key == glfw.KeyEscape {
			w.SetShouldClose(true)
			return
		}
		if k, ok := pressedKeys[key]; ok {
			state.KeyPressed(k)
			syncCursor(w, state)
		}
	})
	window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		if button != glfw.MouseButtonLeft || action != glfw.Press {
			return
		}
		x, y := framebufferCursor(w)
		state.Click(x, y)
	})
	window.SetCursorPosCallback(func(_ *glfw.Window, xpos, ypos float64) {
		state.CursorMoved(xpos, ypos)
	})
	window.SetScrollCallback(func(_ *glfw.Window, _, yoffset float64) {
		state.Scroll(yoffset)
	})

	lastFrameTime := glfw.GetTime()
	lastFpsTime := lastFrameTime
	frameCount := 0

	for !window.ShouldClose() {
		currentTime := glfw.GetTime()
		deltaTime := currentTime - lastFrameTime
		lastFrameTime = currentTime

		frameCount++
		if currentTime-lastFpsTime >= 1.0 {
			window.SetTitle(fmt.Sprintf("%s | %s | FPS: %d", title, state.Mode, frameCount))
			frameCount = 0
			lastFpsTime = currentTime
		}

		var held app.KeySet
		for key, k := range heldKeys {
			if window.GetKey(key) == glfw.Press {
				held = held.With(k)
			}
		}
		state.Update(float32(deltaTime), held)

		frame, err := state.Frame()
		switch {
		case errors.Is(err, math3d.ErrInvalidProjection):
			// Minimised windows report a zero-sized framebuffer.
			log.Debug().Err(err).Msg("skipping frame")
		case err != nil:
			syncCursor(window, state)
		default:
			renderer.Draw(state, frame)
		}

		window.SwapBuffers()
		glfw.PollEvents()
	}
	return nil
}

// framebufferCursor returns the cursor position scaled to framebuffer pixels,
// which differ from window coordinates on high-DPI displays.
func framebufferCursor(w *glfw.Window) (float64, float64) {
	x, y := w.GetCursorPos()
	ww, wh := w.GetSize()
	fw, fh := w.GetFramebufferSize()
	if ww == 0 || wh == 0 {
		return x, y
	}
	return x * float64(fw) / float64(ww), y * float64(fh) / float64(wh)
}

func syncCursor(w *glfw.Window, s *app.State) {
	if s.Mode == app.ViewSurface {
		w.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	} else {
		w.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	}
}
