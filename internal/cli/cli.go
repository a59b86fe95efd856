package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/babarot/rtrash/internal/config"
	"github.com/babarot/rtrash/internal/env"
	"github.com/babarot/rtrash/internal/utils/debug"
	"github.com/babarot/rtrash/internal/utils/log"
	"github.com/jessevdk/go-flags"
	"github.com/rs/xid"
)

type Option struct {
	Config string `long:"config" description:"Path to config file" default:""`
	Server string `short:"s" long:"server" description:"Server URL (overrides server.url)"`
	Force  bool   `short:"f" long:"force" description:"Never prompt before destructive actions"`

	Meta MetaOption `group:"Meta Options"`

	Browse   struct{}        `command:"browse" description:"Browse files and trash interactively (default)"`
	List     ListCommand     `command:"ls" description:"List files (or trash with --trash)"`
	Upload   UploadCommand   `command:"upload" description:"Upload local files"`
	Download DownloadCommand `command:"download" description:"Download files"`
	Remove   NamesCommand    `command:"rm" description:"Move files to the trash"`
	Restore  NamesCommand    `command:"restore" description:"Restore files from the trash"`
	Purge    NamesCommand    `command:"purge" description:"Permanently delete files from the trash"`
	Empty    struct{}        `command:"empty" description:"Permanently delete everything in the trash"`
	Login    LoginCommand    `command:"login" description:"Sign in and keep the session"`
	Logout   struct{}        `command:"logout" description:"Sign out and forget the session"`
}

type MetaOption struct {
	Version bool   `short:"V" long:"version" description:"Show version"`
	Debug   string `long:"debug" description:"View debug logs (default: \"full\")" optional-value:"full" optional:"yes" choice:"full" choice:"live" choice:"config"`
}

type ListCommand struct {
	Trash bool `short:"t" long:"trash" description:"List the trash instead of files"`
	All   bool `short:"a" long:"all" description:"List files and trash side by side"`
	Args  struct {
		Patterns []string `positional-arg-name:"PATTERN"`
	} `positional-args:"yes"`
}

type UploadCommand struct {
	Args struct {
		Files []string `positional-arg-name:"FILE" required:"1"`
	} `positional-args:"yes"`
}

type DownloadCommand struct {
	Output string `short:"o" long:"output" description:"Directory to save into (overrides transfer.download_dir)"`
	Args   struct {
		Names []string `positional-arg-name:"NAME" required:"1"`
	} `positional-args:"yes"`
}

type NamesCommand struct {
	Args struct {
		Names []string `positional-arg-name:"NAME" required:"1"`
	} `positional-args:"yes"`
}

type LoginCommand struct {
	User string `short:"u" long:"user" description:"User name (prompted if empty)"`
}

var (
	// ErrLoginRequired is returned by one-shot commands whose session is gone
	ErrLoginRequired = errors.New("login required")

	errFailed = errors.New("some operations failed")
)

type CLI struct {
	version Version
	option  Option
	command string
	config  config.Config
	runID   string

	stdout io.Writer
	stderr io.Writer
	// interactive reports whether prompts can be shown
	interactive bool
}

var runID = sync.OnceValue(func() string {
	id := xid.New().String()
	return id
})

func Run(v Version) error {
	var opt Option
	parser := flags.NewParser(&opt, flags.Default)
	parser.Name = v.AppName
	parser.SubcommandsOptional = true
	if _, err := parser.Parse(); err != nil {
		if flags.WroteHelp(err) {
			return nil
		}
		return err
	}

	cfg, err := config.Parse(opt.Config)
	if err != nil {
		return err
	}
	if opt.Server != "" {
		cfg.Server.URL = strings.TrimSuffix(opt.Server, "/")
		if err := config.Validate(cfg); err != nil {
			return err
		}
	}

	closeLog, err := setupLogger(cfg.Logging)
	if err != nil {
		return err
	}
	defer closeLog()

	defer slog.Debug("main function finished\n\n\n")
	slog.Debug("main function started", "version", v.Version, "revision", v.Revision, "buildDate", v.BuildDate)

	command := "browse"
	if parser.Active != nil {
		command = parser.Active.Name
	}

	c := CLI{
		version:     v,
		option:      opt,
		command:     command,
		config:      cfg,
		runID:       runID(),
		stdout:      os.Stdout,
		stderr:      os.Stderr,
		interactive: isTerminal(os.Stdin) && isTerminal(os.Stderr),
	}

	if err := c.Run(context.Background()); err != nil {
		slog.Error("exit", "error", fmt.Errorf("cli.run failed: %w", err))
		return err
	}
	return nil
}

func setupLogger(cfg config.LoggingConfig) (func(), error) {
	if !cfg.Enabled {
		log.New(log.UseOutput(io.Discard), log.AsDefault())
		return func() {}, nil
	}

	w, err := log.NewRotateWriter(env.RTRASH_LOG_PATH, cfg.Rotation)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	log.New(
		log.UseOutput(w),
		log.UseLevel(log.ParseLevel(cfg.Level)),
		log.UseReportCaller(true),
		log.UseReportTimestamp(true),
		log.UseTimeFormat(time.Kitchen),
		log.UseFormatter(log.ParseFormatter(cfg.Format)),
		log.UseAttrs(slog.String("run_id", runID())),
		log.AsDefault(),
	)
	return func() { _ = w.Close() }, nil
}

func (c CLI) Run(ctx context.Context) error {
	switch {
	case c.option.Meta.Version:
		fmt.Fprint(c.stdout, c.version.Print())
		return nil

	case c.option.Meta.Debug == "config":
		debug.DumpConfig(c.stdout, c.config)
		return nil

	case c.option.Meta.Debug != "":
		return debug.Logs(c.stdout, env.RTRASH_LOG_PATH, c.config.Logging, c.option.Meta.Debug == "live")
	}

	switch c.command {
	case "ls":
		return c.List(ctx, c.option.List)
	case "upload":
		return c.Upload(ctx, c.option.Upload.Args.Files)
	case "download":
		return c.Download(ctx, c.option.Download)
	case "rm":
		return c.SoftDelete(ctx, c.option.Remove.Args.Names)
	case "restore":
		return c.RestoreFiles(ctx, c.option.Restore.Args.Names)
	case "purge":
		return c.Purge(ctx, c.option.Purge.Args.Names)
	case "empty":
		return c.EmptyTrash(ctx)
	case "login":
		return c.Login(ctx, c.option.Login.User)
	case "logout":
		return c.Logout(ctx)
	default:
		return c.Browse(ctx)
	}
}
