package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/babarot/rtrash/internal/env"
	"github.com/docker/go-units"
	"github.com/go-playground/validator/v10"
	"github.com/k1LoW/duration"
	"github.com/muesli/reflow/indent"
	"gopkg.in/yaml.v2"
)

var validate *validator.Validate

type Config struct {
	Server   Server        `yaml:"server"`
	Session  Session       `yaml:"session"`
	Transfer Transfer      `yaml:"transfer"`
	Core     Core          `yaml:"core"`
	UI       UI            `yaml:"ui"`
	Logging  LoggingConfig `yaml:"logging"`
}

type Server struct {
	URL     string `yaml:"url" validate:"required,url"`
	Timeout string `yaml:"timeout" validate:"validDuration"`
}

type Session struct {
	CookieFile string `yaml:"cookie_file"`
}

type Transfer struct {
	DownloadDir   string `yaml:"download_dir" validate:"omitempty,validDirPath"`
	MaxUploadSize string `yaml:"max_upload_size" validate:"validSize"`
}

type Core struct {
	// StrictEmpty requires typing YES before the trash is emptied from the command line
	StrictEmpty bool `yaml:"strict_empty"`
	Verbose     bool `yaml:"verbose"`
}

type UI struct {
	Paginator   string      `yaml:"paginator_type" validate:"required,oneof=dots arabic"`
	ExitMessage string      `yaml:"exit_message"`
	Style       StyleConfig `yaml:"style"`
}

type StyleConfig struct {
	Cursor         string      `yaml:"cursor" validate:"colorCode"`
	Placeholder    string      `yaml:"placeholder" validate:"colorCode"`
	PaneBorder     string      `yaml:"pane_border" validate:"colorCode"`
	FocusedBorder  string      `yaml:"focused_border" validate:"colorCode"`
	DeletionDialog string      `yaml:"deletion_dialog" validate:"colorCode"`
	Status         StatusStyle `yaml:"status"`
}

type StatusStyle struct {
	Normal string `yaml:"normal" validate:"colorCode"`
	Error  string `yaml:"error" validate:"colorCode"`
}

type LoggingConfig struct {
	Enabled  bool           `yaml:"enabled"`
	Level    string         `yaml:"level" validate:"oneof=debug info warn error"`
	Format   string         `yaml:"format" validate:"omitempty,oneof=text json logfmt"`
	Rotation RotationConfig `yaml:"rotation"`
}

type RotationConfig struct {
	MaxSize  string `yaml:"max_size" validate:"validSize"`
	MaxFiles int    `yaml:"max_files" validate:"gte=0"`
}

// TimeoutDuration returns the per-request timeout, zero meaning no limit.
func (s Server) TimeoutDuration() time.Duration {
	if s.Timeout == "" {
		return 0
	}
	d, err := duration.Parse(s.Timeout)
	if err != nil {
		return 0
	}
	return d
}

// MaxUploadBytes returns the local upload limit in bytes, zero meaning unlimited.
func (t Transfer) MaxUploadBytes() int64 {
	if t.MaxUploadSize == "" {
		return 0
	}
	n, err := units.FromHumanSize(t.MaxUploadSize)
	if err != nil {
		return 0
	}
	return n
}

type configError struct {
	configPath string
	configDir  string
	parser     parser
	err        error
}

type parser struct{}

func (p parser) getDefaultConfigContents() string {
	content, _ := yaml.Marshal(NewDefaultConfig())
	return string(content)
}

func (e configError) Error() string {
	return heredoc.Docf(`
		Couldn't find the "%s" config file.
		Please try again after creating it or specifying a valid config path.
		The recommended config path is %s (default).
		Example YAML file contents:
		---
		%s
		---
		Original error:
		%s
		`,
		e.configPath,
		env.RTRASH_CONFIG_PATH,
		e.parser.getDefaultConfigContents(),
		indent.String(e.err.Error(), 2),
	)
}

func (p parser) createConfigFile(path string) error {
	if err := p.ensureDirExists(filepath.Dir(path)); err != nil {
		return err
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		slog.Warn("creating config file as it does not exist", "config-file", path)
		f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0666)
		if err != nil {
			return err
		}
		defer f.Close()

		if _, err := f.WriteString(p.getDefaultConfigContents()); err != nil {
			return err
		}
	}

	return nil
}

func (p parser) ensureDirExists(dirPath string) error {
	if _, err := os.Stat(dirPath); os.IsNotExist(err) {
		slog.Warn("creating directory as it does not exist", "dir", dirPath)
		if err := os.MkdirAll(dirPath, os.ModePerm); err != nil {
			return err
		}
	}
	return nil
}

func (p parser) ensureConfigFile() (string, error) {
	path := env.RTRASH_CONFIG_PATH

	if err := p.createConfigFile(path); err != nil {
		return "", configError{
			configPath: path,
			configDir:  filepath.Dir(path),
			parser:     p,
			err:        err,
		}
	}

	return path, nil
}

type parsingError struct {
	err error
}

func (e parsingError) Error() string {
	return fmt.Sprintf("failed to parse config: %v", e.err)
}

func (e parsingError) Unwrap() error {
	return e.err
}

func (p parser) readConfigFile(path string) (Config, error) {
	// Start from defaults so that a partial file only overrides what it names
	cfg := *NewDefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, configError{
			configPath: path,
			configDir:  filepath.Dir(path),
			parser:     p,
			err:        err,
		}
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	if err := expandPaths(&cfg); err != nil {
		return cfg, err
	}

	if err := Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks cfg against the struct tag rules.
func Validate(cfg Config) error {
	if validate == nil {
		initParser()
	}
	if err := validate.Struct(cfg); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok {
			for _, err := range errs {
				return fmt.Errorf("validation error: Field %s, %q is invalid", err.Namespace(), err.Value())
			}
		}
		return err
	}
	return nil
}

func expandPaths(cfg *Config) error {
	for _, p := range []*string{&cfg.Session.CookieFile, &cfg.Transfer.DownloadDir} {
		if *p == "" {
			continue
		}
		expanded, err := expandPath(*p)
		if err != nil {
			return err
		}
		*p = expanded
	}
	return nil
}

func initParser() parser {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.Split(fld.Tag.Get("yaml"), ",")[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation("validSize", validateSize)
	_ = validate.RegisterValidation("validDuration", validateDuration)
	_ = validate.RegisterValidation("validDirPath", validateDirPath)
	_ = validate.RegisterValidation("colorCode", validateColorCode)

	return parser{}
}

func Parse(path string) (Config, error) {
	parser := initParser()

	var cfg Config
	var err error
	var configPath string

	if path == "" {
		configPath, err = parser.ensureConfigFile()
		if err != nil {
			return cfg, parsingError{err: err}
		}
	} else {
		configPath = path
	}
	slog.Debug("config file found", "config-file", configPath)

	cfg, err = parser.readConfigFile(configPath)
	if err != nil {
		return cfg, parsingError{err: err}
	}

	return cfg, nil
}
