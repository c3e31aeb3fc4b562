package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/fedor-rusak/chickpea-android/internal/glue"
	"github.com/fedor-rusak/chickpea-android/internal/logging"
)

// Config is the desktop host configuration.
type Config struct {
	Path        string
	LogLevel    string
	AssetDir    string // empty selects the embedded assets
	StartScript string
	Window      Window
	Device      Device
}

// Window describes the desktop window standing in for the activity surface.
type Window struct {
	Width  int
	Height int
	Title  string
}

// Device is the simulated device configuration reported to the worker.
type Device struct {
	Language    string
	Country     string
	Density     int
	Orientation string
}

const (
	defaultConfigPath  = "~/.config/chickpea/config.toml"
	defaultStartScript = "init.js"
	defaultWidth       = 800
	defaultHeight      = 600
	defaultTitle       = "chickpea"
	defaultLanguage    = "en"
	defaultCountry     = "US"
	defaultDensity     = 160
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		LogLevel:    logging.LevelInfo,
		StartScript: defaultStartScript,
		Window: Window{
			Width:  defaultWidth,
			Height: defaultHeight,
			Title:  defaultTitle,
		},
		Device: Device{
			Language: defaultLanguage,
			Country:  defaultCountry,
			Density:  defaultDensity,
		},
	}
}

// DefaultPath returns the expanded default config file location.
func DefaultPath() string {
	return mustExpand(defaultConfigPath)
}

// Load locates and parses the config file, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()
	cfg.Path = resolved

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		LogLevel    string `toml:"log_level"`
		AssetDir    string `toml:"asset_dir"`
		StartScript string `toml:"start_script"`
		Window      struct {
			Width  int    `toml:"width"`
			Height int    `toml:"height"`
			Title  string `toml:"title"`
		} `toml:"window"`
		Device struct {
			Language    string `toml:"language"`
			Country     string `toml:"country"`
			Density     int    `toml:"density"`
			Orientation string `toml:"orientation"`
		} `toml:"device"`
	}
	if err := toml.Unmarshal(data, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if level := strings.TrimSpace(raw.LogLevel); level != "" {
		if !logging.IsValidLevel(level) {
			return Config{}, fmt.Errorf("invalid log_level %q (want one of %s)", level, strings.Join(logging.ValidLevels, ", "))
		}
		cfg.LogLevel = strings.ToUpper(level)
	}
	if dir := strings.TrimSpace(raw.AssetDir); dir != "" {
		cfg.AssetDir = mustExpand(dir)
	}
	if script := strings.TrimSpace(raw.StartScript); script != "" {
		cfg.StartScript = script
	}

	if raw.Window.Width > 0 {
		cfg.Window.Width = raw.Window.Width
	}
	if raw.Window.Height > 0 {
		cfg.Window.Height = raw.Window.Height
	}
	if title := strings.TrimSpace(raw.Window.Title); title != "" {
		cfg.Window.Title = title
	}

	if lang := strings.TrimSpace(raw.Device.Language); lang != "" {
		cfg.Device.Language = lang
	}
	if country := strings.TrimSpace(raw.Device.Country); country != "" {
		cfg.Device.Country = country
	}
	if raw.Device.Density > 0 {
		cfg.Device.Density = raw.Device.Density
	}
	cfg.Device.Orientation = strings.ToLower(strings.TrimSpace(raw.Device.Orientation))
	if _, err := ParseOrientation(cfg.Device.Orientation); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// ParseOrientation maps a config value to a glue orientation. The empty
// string means the orientation follows the window shape.
func ParseOrientation(s string) (glue.Orientation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "any":
		return glue.OrientationAny, nil
	case "port", "portrait":
		return glue.OrientationPortrait, nil
	case "land", "landscape":
		return glue.OrientationLandscape, nil
	case "square":
		return glue.OrientationSquare, nil
	default:
		return glue.OrientationAny, fmt.Errorf("invalid orientation %q", s)
	}
}

// Configuration builds the device snapshot for a window of the given pixel
// size. Without an explicit orientation it is derived from the size.
func (d Device) Configuration(width, height int) glue.Configuration {
	orientation, _ := ParseOrientation(d.Orientation)
	if orientation == glue.OrientationAny {
		switch {
		case width > height:
			orientation = glue.OrientationLandscape
		case width < height:
			orientation = glue.OrientationPortrait
		case width > 0:
			orientation = glue.OrientationSquare
		}
	}
	return glue.Configuration{
		Language:       d.Language,
		Country:        d.Country,
		Orientation:    orientation,
		Density:        d.Density,
		Touchscreen:    false,
		Keyboard:       true,
		Navigation:     false,
		ScreenWidthPx:  width,
		ScreenHeightPx: height,
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
