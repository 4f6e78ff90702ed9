package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/docforge/pkg/errors"
)

// Environment variable names
const (
	// EnvConfigDir overrides the XDG config directory for docforge
	EnvConfigDir = "DOCFORGE_CONFIG_DIR"

	// EnvStateDir overrides the XDG state directory for docforge
	EnvStateDir = "DOCFORGE_STATE_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

const (
	// AppDirName is the directory name for docforge-specific files
	AppDirName = "docforge"

	// UserConfigFile is the name of the user configuration file
	UserConfigFile = "config.toml"

	// LogFileName is the name of the log file
	LogFileName = "docforge.log"
)

// ProjectConfigFiles are the per-document configuration file names, in lookup order.
var ProjectConfigFiles = []string{"docforge.toml", ".docforge.toml"}

// Paths provides the docforge XDG locations.
type Paths interface {
	ConfigDir() string
	StateDir() string
	UserConfigPath() string
	LogFilePath() string
}

type paths struct {
	xdgConfig string
	xdgState  string
}

// New resolves the docforge directories, respecting environment overrides.
func New() Paths {
	p := &paths{}

	if configDir := os.Getenv(EnvConfigDir); configDir != "" {
		p.xdgConfig = ExpandHome(configDir)
	} else if xdgHome := os.Getenv("XDG_CONFIG_HOME"); xdgHome != "" {
		p.xdgConfig = filepath.Join(xdgHome, AppDirName)
	} else {
		p.xdgConfig = filepath.Join(xdg.ConfigHome, AppDirName)
	}

	// xdg caches the environment at init, so explicit variables are read first
	if stateDir := os.Getenv(EnvStateDir); stateDir != "" {
		p.xdgState = ExpandHome(stateDir)
	} else if xdgHome := os.Getenv("XDG_STATE_HOME"); xdgHome != "" {
		p.xdgState = filepath.Join(xdgHome, AppDirName)
	} else {
		p.xdgState = filepath.Join(xdg.StateHome, AppDirName)
	}

	return p
}

func (p *paths) ConfigDir() string { return p.xdgConfig }

func (p *paths) StateDir() string { return p.xdgState }

func (p *paths) UserConfigPath() string {
	return filepath.Join(p.xdgConfig, UserConfigFile)
}

func (p *paths) LogFilePath() string {
	return filepath.Join(p.xdgState, LogFileName)
}

// FindProjectConfig returns the first project config file present in dir, or "".
func FindProjectConfig(dir string) string {
	for _, name := range ProjectConfigFiles {
		candidate := filepath.Join(dir, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
	}
	return ""
}

// DefaultOutputPath swaps the extension of a document program for ext.
func DefaultOutputPath(docPath, ext string) string {
	return strings.TrimSuffix(docPath, filepath.Ext(docPath)) + ext
}

// NormalizePath expands ~ and returns an absolute, cleaned path.
func NormalizePath(path string) (string, error) {
	if path == "" {
		return "", errors.New(errors.ErrInvalidInput, "path cannot be empty")
	}
	abs, err := filepath.Abs(ExpandHome(path))
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for %s", path)
	}
	return filepath.Clean(abs), nil
}

// ExpandHome expands a leading ~ to the user's home directory.
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return path
		}
	}

	if len(path) == 1 {
		return homeDir
	}
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}
	return path
}
