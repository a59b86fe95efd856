package env

import (
	"os"
	"path/filepath"
)

const (
	defaultXDGConfigDirname = ".config"
	defaultXDGDataDirname   = ".local/share"
)

var (
	RTRASH_CONFIG_PATH string
	RTRASH_LOG_PATH    string
	RTRASH_COOKIE_PATH string
)

func init() {
	// https://github.com/charmbracelet/log/issues/35
	os.Setenv("CLICOLOR_FORCE", "1")

	// Follow https://specifications.freedesktop.org/basedir-spec/latest/
	RTRASH_CONFIG_PATH = os.Getenv("RTRASH_CONFIG_PATH")
	if RTRASH_CONFIG_PATH == "" {
		RTRASH_CONFIG_PATH = filepath.Join(xdgDir("XDG_CONFIG_HOME", defaultXDGConfigDirname), "rtrash", "config.yaml")
	}

	RTRASH_LOG_PATH = os.Getenv("RTRASH_LOG_PATH")
	if RTRASH_LOG_PATH == "" {
		RTRASH_LOG_PATH = filepath.Join(xdgDir("XDG_DATA_HOME", defaultXDGDataDirname), "rtrash", "debug.log")
	}

	RTRASH_COOKIE_PATH = os.Getenv("RTRASH_COOKIE_PATH")
	if RTRASH_COOKIE_PATH == "" {
		RTRASH_COOKIE_PATH = filepath.Join(xdgDir("XDG_DATA_HOME", defaultXDGDataDirname), "rtrash", "cookies.json")
	}
}

func xdgDir(key, fallback string) string {
	if dir := os.Getenv(key); dir != "" {
		return dir
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		panic(err)
	}
	return filepath.Join(homeDir, fallback)
}
