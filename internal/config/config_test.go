package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParse(t *testing.T) {
	testCases := []struct {
		name    string
		content string
		wantErr bool
		check   func(t *testing.T, cfg Config)
	}{
		{
			name:    "partial file keeps defaults",
			content: "server:\n  url: https://files.example.com\n",
			check: func(t *testing.T, cfg Config) {
				if cfg.Server.URL != "https://files.example.com" {
					t.Errorf("Server.URL = %q", cfg.Server.URL)
				}
				if cfg.UI.Paginator != "dots" {
					t.Errorf("UI.Paginator = %q, want default", cfg.UI.Paginator)
				}
				if cfg.Transfer.MaxUploadSize != "10GB" {
					t.Errorf("Transfer.MaxUploadSize = %q, want default", cfg.Transfer.MaxUploadSize)
				}
			},
		},
		{
			name:    "timeout and size",
			content: "server:\n  url: http://127.0.0.1:9000\n  timeout: 30s\ntransfer:\n  max_upload_size: 1MB\n",
			check: func(t *testing.T, cfg Config) {
				if got := cfg.Server.TimeoutDuration(); got != 30*time.Second {
					t.Errorf("TimeoutDuration() = %v", got)
				}
				if got := cfg.Transfer.MaxUploadBytes(); got != 1000*1000 {
					t.Errorf("MaxUploadBytes() = %d", got)
				}
			},
		},
		{
			name:    "invalid url",
			content: "server:\n  url: not a url\n",
			wantErr: true,
		},
		{
			name:    "invalid paginator",
			content: "ui:\n  paginator_type: roman\n",
			wantErr: true,
		},
		{
			name:    "invalid color",
			content: "ui:\n  style:\n    cursor: purple\n",
			wantErr: true,
		},
		{
			name:    "invalid size",
			content: "transfer:\n  max_upload_size: lots\n",
			wantErr: true,
		},
		{
			name:    "invalid yaml",
			content: "server: [\n",
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := Parse(writeConfig(t, tc.content))
			if (err != nil) != tc.wantErr {
				t.Fatalf("Parse() error = %v, wantErr %v", err, tc.wantErr)
			}
			if tc.check != nil {
				tc.check(t, cfg)
			}
		})
	}
}

func TestParseMissingFile(t *testing.T) {
	_, err := Parse(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestDefaultConfigIsValid(t *testing.T) {
	if err := Validate(*NewDefaultConfig()); err != nil {
		t.Fatalf("default config does not validate: %v", err)
	}
}
