package glue

import "log/slog"

// Orientation of the device screen.
type Orientation int

const (
	OrientationAny Orientation = iota
	OrientationPortrait
	OrientationLandscape
	OrientationSquare
)

func (o Orientation) String() string {
	switch o {
	case OrientationPortrait:
		return "port"
	case OrientationLandscape:
		return "land"
	case OrientationSquare:
		return "square"
	default:
		return "any"
	}
}

// Configuration is the device configuration the worker sees. It is reloaded
// from the ConfigSource on every CmdConfigChanged.
type Configuration struct {
	Language       string
	Country        string
	Orientation    Orientation
	Density        int // dots per inch
	Touchscreen    bool
	Keyboard       bool
	Navigation     bool
	ScreenWidthPx  int
	ScreenHeightPx int
	SDKVersion     int
	UIModeNight    bool
}

// ConfigSource returns the platform's current configuration.
type ConfigSource func() Configuration

// LogValue implements slog.LogValuer.
func (c Configuration) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("lang", c.Language),
		slog.String("country", c.Country),
		slog.String("orientation", c.Orientation.String()),
		slog.Int("density", c.Density),
		slog.Bool("touch", c.Touchscreen),
		slog.Bool("keys", c.Keyboard),
		slog.Bool("nav", c.Navigation),
		slog.Int("width", c.ScreenWidthPx),
		slog.Int("height", c.ScreenHeightPx),
		slog.Int("sdk", c.SDKVersion),
		slog.Bool("night", c.UIModeNight),
	)
}
