package config

import "github.com/babarot/rtrash/internal/env"

// NewDefaultConfig creates a new Config with default values
func NewDefaultConfig() *Config {
	return &Config{
		Server: Server{
			URL:     "http://localhost:8080",
			Timeout: "5min",
		},
		Session: Session{
			CookieFile: env.RTRASH_COOKIE_PATH,
		},
		Transfer: Transfer{
			DownloadDir:   "",
			MaxUploadSize: "10GB",
		},
		Core: Core{
			StrictEmpty: false,
			Verbose:     true,
		},
		UI: UI{
			Paginator:   "dots",
			ExitMessage: "bye!",
			Style: StyleConfig{
				Cursor:         "#AD58B4", // Purple
				Placeholder:    "#666666",
				PaneBorder:     "#3C3C3C",
				FocusedBorder:  "#EEEEDD",
				DeletionDialog: "#FF007F",
				Status: StatusStyle{
					Normal: "#27AE60", // Green
					Error:  "#E74C3C", // Red
				},
			},
		},
		Logging: LoggingConfig{
			Enabled: true,
			Level:   "debug",
			Format:  "text",
			Rotation: RotationConfig{
				MaxSize:  "10MB",
				MaxFiles: 3,
			},
		},
	}
}
