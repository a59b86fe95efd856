package config

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/k1LoW/duration"
)

// validateSize validates the size format (e.g., "10MB", "1GB")
func validateSize(fl validator.FieldLevel) bool {
	value := strings.ToUpper(fl.Field().String())
	re := regexp.MustCompile(`^\d+(B|KB|MB|GB|TB|PB)$`)
	return re.MatchString(value)
}

// validateDuration accepts anything k1LoW/duration can parse ("30s", "5min", "1 hour")
func validateDuration(fl validator.FieldLevel) bool {
	value := strings.TrimSpace(fl.Field().String())
	if value == "" {
		return true
	}
	_, err := duration.Parse(value)
	return err == nil
}

// validateColorCode checks if the field contains a valid hex color code.
func validateColorCode(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	re := regexp.MustCompile(`^#([0-9A-Fa-f]{3}|[0-9A-Fa-f]{6})$`)
	return re.MatchString(value)
}

// expandPath expands environment variables and "~" in paths
func expandPath(path string) (string, error) {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, path[2:])
	}

	path = os.ExpandEnv(path)

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	return abs, nil
}

// validateDirPath is a validation function for directory paths that works on any OS.
// The standard "dirpath" validator rejects some valid Windows paths such as
// "C:\Users\name\.dir\", so existence and kind are checked directly instead.
func validateDirPath(fl validator.FieldLevel) bool {
	path := strings.TrimSpace(fl.Field().String())
	if path == "" {
		return false
	}

	cleanPath := filepath.Clean(path)

	fi, err := os.Stat(cleanPath)
	if err == nil {
		return fi.IsDir()
	}
	if os.IsNotExist(err) {
		// created on first download
		return true
	}
	if _, ok := err.(*os.PathError); ok {
		return false
	}
	return true
}
