// Package config holds the command line and environment configuration of the commands.
package config

import (
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/segmentio/encoding/json"
)

// Viewer configures the windowed impossible-box command.
type Viewer struct {
	Width       int    `cli:"" env:"IMPOSSIBLE_BOX_WIDTH"        help:"Initial window width in pixels."`
	Height      int    `cli:"" env:"IMPOSSIBLE_BOX_HEIGHT"       help:"Initial window height in pixels."`
	Title       string `cli:"" env:"IMPOSSIBLE_BOX_TITLE"        help:"Window title."`
	VSync       bool   `cli:"" env:"IMPOSSIBLE_BOX_VSYNC"        help:"Synchronize presentation with the display refresh."`
	MSAA        int    `cli:"" env:"IMPOSSIBLE_BOX_MSAA"         help:"Multisample count (1|4)."`
	LogLevel    string `cli:"" env:"IMPOSSIBLE_BOX_LOG_LEVEL"    help:"Log level (debug|info|warning|error)."`
	LogIndent   bool   `cli:"" env:"IMPOSSIBLE_BOX_LOG_INDENT"   help:"Indent logs."`
	Profile     bool   `cli:"" env:"IMPOSSIBLE_BOX_PROFILE"      help:"Log frame statistics every second."`
	Spin        bool   `cli:"" env:"IMPOSSIBLE_BOX_SPIN"         help:"Spin the objects inside the pockets."`
	MetricsAddr string `cli:"" env:"IMPOSSIBLE_BOX_METRICS_ADDR" help:"Listening address for Prometheus metrics; empty disables."`
	Help        bool   `cli:"" env:"-"                           help:"Show help."`
}

// DefaultViewer returns the viewer defaults.
func DefaultViewer() Viewer {
	return Viewer{
		Width:    1280,
		Height:   720,
		Title:    "Impossible Box",
		VSync:    true,
		MSAA:     4,
		LogLevel: logs.InfoLevel.String(),
		Spin:     true,
	}
}

// Validate reports the first invalid field.
//
// Returns:
//   - error: nil when the configuration is usable
func (c Viewer) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return errors.New("window size must be positive").
			WithTag("width", c.Width).
			WithTag("height", c.Height)
	}
	if c.MSAA != 1 && c.MSAA != 4 {
		return errors.New("msaa must be 1 or 4").WithTag("msaa", c.MSAA)
	}
	return nil
}

// Snapshot configures the headless portal-snapshot command.
type Snapshot struct {
	Width     int     `cli:"" env:"PORTAL_SNAPSHOT_WIDTH"      help:"Image width in pixels."`
	Height    int     `cli:"" env:"PORTAL_SNAPSHOT_HEIGHT"     help:"Image height in pixels."`
	Frames    int     `cli:"" env:"PORTAL_SNAPSHOT_FRAMES"     help:"Number of animation frames to advance before the capture."`
	DT        float64 `cli:"" env:"PORTAL_SNAPSHOT_DT"         help:"Seconds per animation frame."`
	Out       string  `cli:"" env:"PORTAL_SNAPSHOT_OUT"        help:"Output PNG path."`
	Stencil   string  `cli:"" env:"PORTAL_SNAPSHOT_STENCIL"    help:"Optional output path for a PNG visualizing the stencil buffer."`
	Workers   int     `cli:"" env:"PORTAL_SNAPSHOT_WORKERS"    help:"Rasterizer worker count; 0 uses one less than the CPU count."`
	Spin      bool    `cli:"" env:"PORTAL_SNAPSHOT_SPIN"       help:"Spin the objects inside the pockets."`
	LogLevel  string  `cli:"" env:"PORTAL_SNAPSHOT_LOG_LEVEL"  help:"Log level (debug|info|warning|error)."`
	LogIndent bool    `cli:"" env:"PORTAL_SNAPSHOT_LOG_INDENT" help:"Indent logs."`
	Help      bool    `cli:"" env:"-"                          help:"Show help."`
}

// DefaultSnapshot returns the snapshot defaults.
func DefaultSnapshot() Snapshot {
	return Snapshot{
		Width:    800,
		Height:   600,
		Frames:   60,
		DT:       1.0 / 60,
		Out:      "impossible-box.png",
		Spin:     true,
		LogLevel: logs.InfoLevel.String(),
	}
}

// Validate reports the first invalid field.
//
// Returns:
//   - error: nil when the configuration is usable
func (c Snapshot) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return errors.New("image size must be positive").
			WithTag("width", c.Width).
			WithTag("height", c.Height)
	case c.Frames < 0:
		return errors.New("frames must not be negative").WithTag("frames", c.Frames)
	case c.DT < 0:
		return errors.New("dt must not be negative").WithTag("dt", c.DT)
	case c.Out == "":
		return errors.New("output path is required")
	case c.Workers < 0:
		return errors.New("workers must not be negative").WithTag("workers", c.Workers)
	}
	return nil
}

// SetupLogs applies the level and JSON encoding to the logs and errors packages.
//
// Parameters:
//   - level: a level name understood by logs.ParseLevel
//   - indent: indent the JSON output
func SetupLogs(level string, indent bool) {
	logs.SetLevel(logs.ParseLevel(level))
	logs.Encoder = json.Marshal
	if indent {
		logs.Encoder = func(v any) ([]byte, error) {
			return json.MarshalIndent(v, "", "  ")
		}
	}
	errors.Encoder = json.Marshal
}
