// internal/config/config.go
//
// This package handles configuration and the .libris directory structure.
// Every directory the catalog runs in gets a .libris/ folder created in
// its root, holding the data files, the session log and config.yaml.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// LibrisDir is the name of the directory we create next to the catalog
	LibrisDir = ".libris"

	defaultCatalogFile  = "catalog.json"
	defaultErrorFile    = "errors.json"
	defaultListPageSize = 10
)

const defaultProjectConfigYAML = `# libris configuration
version: 1

# Data files, relative to the .libris directory.
files:
  catalog: catalog.json
  errors: errors.json

# How many books the list screen shows per page.
display:
  page_size: 10
`

// FilesConfig names the data files inside .libris/.
type FilesConfig struct {
	Catalog string `yaml:"catalog"`
	Errors  string `yaml:"errors"`
}

// DisplayConfig captures presentation preferences.
type DisplayConfig struct {
	PageSize int `yaml:"page_size"`
}

// ProjectConfig models .libris/config.yaml.
type ProjectConfig struct {
	Version int           `yaml:"version"`
	Files   FilesConfig   `yaml:"files"`
	Display DisplayConfig `yaml:"display"`
}

// Config holds the runtime configuration for libris.
type Config struct {
	// BaseDir is the directory the user ran `libris` from
	BaseDir string

	// LibrisProjectDir is BaseDir/.libris
	LibrisProjectDir string

	Project ProjectConfig
}

// InitLibrisDir creates the .libris directory structure in the given base
// directory. Called once when the program starts.
//
// Structure created:
// .libris/
// ├── logs/         <- session log
// ├── catalog.json  <- the book list (on first save)
// ├── errors.json   <- the error log (on first failure)
// └── config.yaml
func InitLibrisDir(baseDir string) error {
	librisDir := filepath.Join(baseDir, LibrisDir)
	if err := os.MkdirAll(filepath.Join(librisDir, "logs"), 0o755); err != nil {
		return err
	}
	return ensureProjectConfig(filepath.Join(librisDir, "config.yaml"))
}

// NewConfig creates a Config populated from .libris/config.yaml, falling
// back to defaults when the file is absent.
func NewConfig(baseDir string) (*Config, error) {
	cfg := &Config{
		BaseDir:          baseDir,
		LibrisProjectDir: filepath.Join(baseDir, LibrisDir),
		Project:          defaultProjectConfig(),
	}
	if err := cfg.loadProjectConfig(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// CatalogPath returns the path of the persisted book list.
func (c *Config) CatalogPath() string {
	return filepath.Join(c.LibrisProjectDir, c.Project.Files.Catalog)
}

// ErrorLogPath returns the path of the persisted error list.
func (c *Config) ErrorLogPath() string {
	return filepath.Join(c.LibrisProjectDir, c.Project.Files.Errors)
}

// LogsDir returns the path to the logs directory.
func (c *Config) LogsDir() string {
	return filepath.Join(c.LibrisProjectDir, "logs")
}

// SessionLogPath returns the path of the line-oriented session log.
func (c *Config) SessionLogPath() string {
	return filepath.Join(c.LogsDir(), "libris.log")
}

// ProjectConfigPath returns the on-disk location for the config file.
func (c *Config) ProjectConfigPath() string {
	return filepath.Join(c.LibrisProjectDir, "config.yaml")
}

// PageSize returns how many books the list screen shows per page.
func (c *Config) PageSize() int {
	return c.Project.Display.PageSize
}

func (c *Config) loadProjectConfig() error {
	path := c.ProjectConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	var parsed ProjectConfig
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	parsed.applyDefaults()
	parsed.normalize()
	if err := parsed.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	c.Project = parsed
	return nil
}

func defaultProjectConfig() ProjectConfig {
	return ProjectConfig{
		Version: 1,
		Files: FilesConfig{
			Catalog: defaultCatalogFile,
			Errors:  defaultErrorFile,
		},
		Display: DisplayConfig{
			PageSize: defaultListPageSize,
		},
	}
}

func (pc *ProjectConfig) applyDefaults() {
	if pc.Version == 0 {
		pc.Version = 1
	}
	if pc.Files.Catalog == "" {
		pc.Files.Catalog = defaultCatalogFile
	}
	if pc.Files.Errors == "" {
		pc.Files.Errors = defaultErrorFile
	}
	if pc.Display.PageSize == 0 {
		pc.Display.PageSize = defaultListPageSize
	}
}

func (pc *ProjectConfig) normalize() {
	pc.Files.Catalog = strings.TrimSpace(pc.Files.Catalog)
	pc.Files.Errors = strings.TrimSpace(pc.Files.Errors)
}

func (pc *ProjectConfig) validate() error {
	if pc.Version < 1 {
		return fmt.Errorf("config version must be >= 1")
	}
	for name, value := range map[string]string{
		"files.catalog": pc.Files.Catalog,
		"files.errors":  pc.Files.Errors,
	} {
		if value == "" {
			return fmt.Errorf("%s is required", name)
		}
		if value != filepath.Base(value) {
			return fmt.Errorf("%s must be a bare file name, got %q", name, value)
		}
	}
	if pc.Files.Catalog == pc.Files.Errors {
		return fmt.Errorf("files.catalog and files.errors must differ")
	}
	if pc.Display.PageSize < 1 {
		return fmt.Errorf("display.page_size must be >= 1")
	}
	return nil
}

func ensureProjectConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.WriteFile(path, []byte(defaultProjectConfigYAML), 0o644)
}
