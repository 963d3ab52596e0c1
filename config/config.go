// Package config holds the demo's startup settings, persisted as TOML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/solarlune/lightscene"
)

// FileName is the settings file looked for in the working directory.
const FileName = ".lightscene.toml"

// Settings holds the window and scene options read at startup. Settings are read once and passed by value; nothing
// watches the file afterwards.
type Settings struct {
	Title string `toml:"title"`

	WindowWidth  int  `toml:"window_width"`
	WindowHeight int  `toml:"window_height"`
	VSync        bool `toml:"vsync"`
	Fullscreen   bool `toml:"fullscreen"`

	// ViewportScaleFactor scales the rendering resolution relative to the window; 2 renders at half resolution.
	ViewportScaleFactor float64 `toml:"viewport_scale_factor"`

	MaxLights int `toml:"max_lights"`

	AssetsDir string `toml:"assets_dir"`
	// ModelPath is an optional glTF file, relative to AssetsDir, drawn alongside the cubes.
	ModelPath string `toml:"model_path,omitempty"`

	LogLevel string `toml:"log_level"`
}

// Default returns the default settings: an 800x600 vsynced window and room for DefaultMaxLights lights.
func Default() Settings {
	return Settings{
		Title:               "lightscene",
		WindowWidth:         800,
		WindowHeight:        600,
		VSync:               true,
		Fullscreen:          false,
		ViewportScaleFactor: 1,
		MaxLights:           lightscene.DefaultMaxLights,
		AssetsDir:           "Resources",
		LogLevel:            "info",
	}
}

// Load reads settings from the TOML file at path. Keys missing from the file keep their default values, and a missing
// file yields Default(). A malformed file, an unknown key or an invalid value is an error.
func Load(path string) (Settings, error) {

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	} else if err != nil {
		return Default(), err
	}

	s, err := Parse(data)
	if err != nil {
		return Default(), fmt.Errorf("%s: %w", path, err)
	}

	return s, nil

}

// Parse decodes settings from TOML data on top of Default() and validates them.
func Parse(data []byte) (Settings, error) {

	s := Default()

	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&s); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return Default(), errors.New(strings.TrimSpace(strict.String()))
		}
		return Default(), err
	}

	if err := s.Validate(); err != nil {
		return Default(), err
	}

	return s, nil

}

// Save writes settings to path as TOML, creating the parent directory if needed.
func Save(path string, s Settings) error {

	if err := s.Validate(); err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	data, err := toml.Marshal(s)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)

}

// Validate reports the first setting that's out of range.
func (s Settings) Validate() error {

	if s.WindowWidth <= 0 || s.WindowHeight <= 0 {
		return fmt.Errorf("window size %dx%d must be positive", s.WindowWidth, s.WindowHeight)
	}

	if s.ViewportScaleFactor <= 0 {
		return fmt.Errorf("viewport_scale_factor %v must be positive", s.ViewportScaleFactor)
	}

	if s.MaxLights < 1 || s.MaxLights > lightscene.DefaultMaxLights {
		return fmt.Errorf("max_lights %d must be between 1 and %d", s.MaxLights, lightscene.DefaultMaxLights)
	}

	if _, err := s.Level(); err != nil {
		return err
	}

	return nil

}

// Level parses LogLevel ("debug", "info", "warn" or "error") as a slog level.
func (s Settings) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log_level %q: %w", s.LogLevel, err)
	}
	return level, nil
}

// ModelFile returns the path of the optional model, or "" if none is set.
func (s Settings) ModelFile() string {
	if s.ModelPath == "" {
		return ""
	}
	return s.Asset(s.ModelPath)
}

// Asset returns the path of a file under AssetsDir.
func (s Settings) Asset(name string) string {
	return filepath.Join(s.AssetsDir, filepath.FromSlash(name))
}
