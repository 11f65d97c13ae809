// Package config resolves the tasks file location and CLI settings.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	// AppName is the application directory name.
	AppName = "todo"

	// ConfigFile is the optional settings filename inside the config dir.
	ConfigFile = "config.toml"

	// TasksFile is the default tasks filename.
	TasksFile = "tasks.json"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// TasksPath is the tasks file location.
	TasksPath string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses confirmation output.
	Quiet bool
}

// File mirrors config.toml.
type File struct {
	TasksFile string `toml:"tasks_file"`
	Quiet     bool   `toml:"quiet"`
}

// New creates a Config for the given config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/todo or $HOME/.config/todo.
// TasksPath starts at DefaultTasksPath.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	return &Config{
		Dir:       dir,
		TasksPath: DefaultTasksPath(),
	}, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// DefaultTasksPath returns tasks.json next to the running executable.
func DefaultTasksPath() string {
	exe, err := os.Executable()
	if err != nil {
		return TasksFile
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Join(filepath.Dir(exe), TasksFile)
}

// FilePath returns the path to config.toml.
func (c *Config) FilePath() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// LoadFile applies config.toml on top of the current settings.
// A missing file leaves the config unchanged.
func (c *Config) LoadFile() error {
	data, err := os.ReadFile(c.FilePath())
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config %s: %w", c.FilePath(), err)
	}

	var f File
	if _, err := toml.Decode(string(data), &f); err != nil {
		return fmt.Errorf("parse config %s: %w", c.FilePath(), err)
	}

	if f.TasksFile != "" {
		path, err := ExpandPath(f.TasksFile)
		if err != nil {
			return fmt.Errorf("tasks_file: %w", err)
		}
		if !filepath.IsAbs(path) {
			path = filepath.Join(c.Dir, path)
		}
		c.TasksPath = path
	}
	if f.Quiet {
		c.Quiet = true
	}
	return nil
}

// ExpandPath expands environment variables and a leading ~.
func ExpandPath(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return value, nil
	}

	expanded := os.ExpandEnv(value)
	if expanded != "~" && !strings.HasPrefix(expanded, "~/") {
		return expanded, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	if expanded == "~" {
		return home, nil
	}
	return filepath.Join(home, expanded[2:]), nil
}
