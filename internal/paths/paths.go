// Package paths decides where the config file and the data directory live.
// Resolution is a fixed precedence chain per directory; nothing here reads
// the resolved locations, it only names them.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// appDirName is the directory name used under every platform base.
const appDirName = "fieldbook"

// Directory names relative to the working directory, used at the bottom of
// the precedence chain.
const (
	DefaultConfigDirName = ".fieldbook"
	DefaultDataDirName   = ".fieldbook-data"
)

// Override environment variables.
const (
	EnvConfigDir = "FIELDBOOK_CONFIG_DIR"
	EnvDataDir   = "FIELDBOOK_DATA_DIR"
)

// platformDir indirects the OS lookups so tests can substitute them.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// platformBase picks the platform directory for the app: on Linux the given
// XDG variable (or the home-relative fallback path), elsewhere the OS config
// directory, which os.UserConfigDir maps to ~/Library/Application Support on
// macOS and %APPDATA% on Windows.
func platformBase(xdgEnv string, homeFallback ...string) (string, error) {
	if runtime.GOOS != "linux" {
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, appDirName), nil
	}
	if xdg := os.Getenv(xdgEnv); xdg != "" {
		return filepath.Join(xdg, appDirName), nil
	}
	home, err := platformDir.homeDir()
	if err != nil {
		return "", err
	}
	parts := append([]string{home}, homeFallback...)
	parts = append(parts, appDirName)
	return filepath.Join(parts...), nil
}

// DefaultConfigDir returns the per-platform configuration directory:
// $XDG_CONFIG_HOME/fieldbook (or ~/.config/fieldbook) on Linux, the OS
// config directory plus "fieldbook" elsewhere.
func DefaultConfigDir() (string, error) {
	return platformBase("XDG_CONFIG_HOME", ".config")
}

// DefaultDataDir returns the per-platform data directory:
// $XDG_DATA_HOME/fieldbook (or ~/.local/share/fieldbook) on Linux, the same
// location as the config directory elsewhere.
func DefaultDataDir() (string, error) {
	return platformBase("XDG_DATA_HOME", ".local", "share")
}

// ResolveConfigDir applies the config-directory precedence chain:
// flag, then FIELDBOOK_CONFIG_DIR, then the platform default.
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveDataDir applies the data-directory precedence chain: flag, then
// the config.yaml value, then FIELDBOOK_DATA_DIR, then a working-directory
// relative default. The config value outranking the environment lets a
// written config pin the data location across shells.
func ResolveDataDir(flag, configYAMLValue string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configYAMLValue != "" {
		return filepath.Abs(configYAMLValue)
	}
	if env := os.Getenv(EnvDataDir); env != "" {
		return filepath.Abs(env)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultDataDirName), nil
}
