package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"revolve/internal/config"
	"revolve/internal/math3d"
)

// profilePoint parses an "x,y" pair on the drawing plane.
type profilePoint math3d.Vec3

func (p *profilePoint) UnmarshalText(text []byte) error {
	xs, ys, ok := strings.Cut(string(text), ",")
	if !ok {
		return fmt.Errorf("point %q: expected x,y", text)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 32)
	if err != nil {
		return fmt.Errorf("point %q: %w", text, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 32)
	if err != nil {
		return fmt.Errorf("point %q: %w", text, err)
	}
	*p = profilePoint(math3d.V3(float32(x), float32(y), 0))
	return nil
}

var CLI struct {
	Debug    bool   `help:"Whether to enable debug logging."`
	Settings string `help:"YAML settings file." type:"existingfile" short:"c"`

	View struct {
		Points []profilePoint `name:"point" short:"p" sep:"none" help:"Preload a profile point as x,y. Repeatable."`
		Grid   bool           `help:"Start on the wave height-field instead of drawing a profile."`
	} `cmd:"" default:"withargs" help:"Open the interactive window."`

	Preview struct {
		Output  string         `arg:"" help:"PNG file to write." type:"path"`
		Points  []profilePoint `name:"point" short:"p" sep:"none" help:"Profile point as x,y. Repeatable."`
		Grid    bool           `help:"Render the wave height-field instead of a revolution surface."`
		RotateX float32        `name:"rotate-x" help:"Model rotation about X in degrees."`
		RotateY float32        `name:"rotate-y" help:"Model rotation about Y in degrees."`
		Width   int            `help:"Image width; defaults to the window width."`
		Height  int            `help:"Image height; defaults to the window height."`
	} `cmd:"" help:"Render the surface as a wireframe PNG without opening a window."`

	Config struct {
	} `cmd:"" help:"Write the default settings to standard output."`
}

// Wave height-field parameters used by --grid.
const (
	gridSize      = 64
	gridStep      = 0.05
	waveAmplitude = 0.2
	waveFrequency = 4
)

func writeError(err error) {
	fmt.Fprintf(os.Stderr, "%s\n", err)
	os.Exit(1)
}

func main() {
	consoleWriter := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	log.Logger = log.Output(consoleWriter)

	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	ctx := kong.Parse(&CLI,
		kong.Name("revolve"),
		kong.Description("draw a profile and view its surface of revolution"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}))

	if CLI.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Warn().Msg("debug logging enabled")
	}

	if ctx.Command() == "config" {
		if err := config.Default().Write(os.Stdout); err != nil {
			writeError(err)
		}
		return
	}

	settings, err := config.Load(CLI.Settings)
	if err != nil {
		writeError(err)
	}

	switch ctx.Command() {
	case "view":
		err = viewCommand(settings, points(CLI.View.Points), CLI.View.Grid)
	case "preview <output>":
		err = previewCommand(settings, points(CLI.Preview.Points))
	}
	if err != nil {
		writeError(err)
	}
}

func points(ps []profilePoint) []math3d.Vec3 {
	out := make([]math3d.Vec3, len(ps))
	for i, p := range ps {
		out[i] = math3d.Vec3(p)
	}
	return out
}
