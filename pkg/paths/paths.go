package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

// Environment variable names
const (
	// EnvConfigDir overrides the XDG config directory for creatorly
	EnvConfigDir = "CREATORLY_CONFIG_DIR"

	// EnvCacheDir overrides the XDG cache directory for creatorly
	EnvCacheDir = "CREATORLY_CACHE_DIR"

	// EnvStateHome is the XDG state root, which xdg does not expose on all platforms
	EnvStateHome = "XDG_STATE_HOME"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Default directories and files
const (
	// AppDirName is the directory name used under every XDG root
	AppDirName = "creatorly"

	// ConfigFileName is the name of the user configuration file
	ConfigFileName = "config.toml"

	// LogFileName is the name of the log file
	LogFileName = "creatorly.log"

	// ClonesDir is the cache subdirectory holding remote template clones
	ClonesDir = "clones"
)

// ConfigDir returns the directory holding the user configuration
func ConfigDir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return ExpandHome(dir)
	}
	return filepath.Join(xdg.ConfigHome, AppDirName)
}

// ConfigFilePath returns the path of the user configuration file
func ConfigFilePath() string {
	return filepath.Join(ConfigDir(), ConfigFileName)
}

// CacheDir returns the creatorly cache directory
func CacheDir() string {
	if dir := os.Getenv(EnvCacheDir); dir != "" {
		return ExpandHome(dir)
	}
	return filepath.Join(xdg.CacheHome, AppDirName)
}

// CloneDir returns the default directory remote templates are cloned into
func CloneDir() string {
	return filepath.Join(CacheDir(), ClonesDir)
}

// StateDir returns the creatorly state directory.
// XDG doesn't provide StateHome on every platform, so we check manually.
func StateDir() string {
	if stateHome := os.Getenv(EnvStateHome); stateHome != "" {
		return filepath.Join(stateHome, AppDirName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if we can't get home
		return AppDirName
	}
	return filepath.Join(home, ".local", "state", AppDirName)
}

// LogFilePath returns the path to the log file
func LogFilePath() string {
	return filepath.Join(StateDir(), LogFileName)
}

// ExpandHome expands a leading ~ to the user's home directory
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
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(homeDir, path[2:])
	}
	return path
}
