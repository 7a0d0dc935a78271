// Package config reads the optional keel.yaml project configuration and
// resolves defaults from the surrounding Go module.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"gopkg.in/yaml.v3"
)

// Config represents the optional keel.yaml configuration.
type Config struct {
	App       AppConfig       `yaml:"app"`
	Window    WindowConfig    `yaml:"window"`
	Inspector InspectorConfig `yaml:"inspector"`
}

// AppConfig contains application metadata.
type AppConfig struct {
	Name string `yaml:"name,omitempty"`
}

// WindowConfig contains the main window settings.
type WindowConfig struct {
	Title  string  `yaml:"title,omitempty"`
	Width  float64 `yaml:"width,omitempty"`
	Height float64 `yaml:"height,omitempty"`
}

// InspectorConfig contains the HTTP inspector settings.
type InspectorConfig struct {
	Addr string `yaml:"addr,omitempty"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Root         string
	ModulePath   string
	AppName      string
	WindowTitle  string
	WindowWidth  float64
	WindowHeight float64
	InspectAddr  string
}

// Default window geometry used when keel.yaml leaves it unset.
const (
	DefaultWindowWidth  = 800.0
	DefaultWindowHeight = 600.0
)

// LoadOptional reads keel.yaml if present.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, "keel.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read keel.yaml: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse keel.yaml: %w", err)
	}

	return &cfg, nil
}

// Resolve loads keel.yaml (if present) and resolves defaults against the
// module's go.mod.
func Resolve(dir string) (*Resolved, error) {
	modulePath, err := modulePath(dir)
	if err != nil {
		return nil, err
	}

	cfg, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}

	appName := strings.TrimSpace(cfg.App.Name)
	if appName == "" {
		appName = defaultAppName(modulePath, dir)
	}

	title := strings.TrimSpace(cfg.Window.Title)
	if title == "" {
		title = appName
	}

	width := cfg.Window.Width
	height := cfg.Window.Height
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("window size cannot be negative (%gx%g)", width, height)
	}
	if width == 0 {
		width = DefaultWindowWidth
	}
	if height == 0 {
		height = DefaultWindowHeight
	}

	return &Resolved{
		Root:         dir,
		ModulePath:   modulePath,
		AppName:      appName,
		WindowTitle:  title,
		WindowWidth:  width,
		WindowHeight: height,
		InspectAddr:  strings.TrimSpace(cfg.Inspector.Addr),
	}, nil
}

// FindProjectRoot walks up from the current directory to find go.mod.
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not in a Go module (no go.mod found)")
		}
		dir = parent
	}
}

func modulePath(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		return "", fmt.Errorf("failed to read go.mod: %w", err)
	}
	path := modfile.ModulePath(data)
	if path == "" {
		return "", fmt.Errorf("could not determine module path from go.mod")
	}
	return path, nil
}

// defaultAppName derives an app name from the module path's last
// segment, falling back to the directory basename.
func defaultAppName(modPath, dir string) string {
	base := filepath.Base(dir)
	modName, _, ok := module.SplitPathVersion(modPath)
	if ok {
		parts := strings.Split(modName, "/")
		if len(parts) > 0 && parts[len(parts)-1] != "" {
			base = parts[len(parts)-1]
		}
	}
	if base == "" {
		return "keel_app"
	}
	return base
}
