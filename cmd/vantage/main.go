// Package main is the entry point for the vantage editor.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"golang.org/x/term"

	"github.com/dshills/vantage/internal/app"
	"github.com/dshills/vantage/internal/commands"
	"github.com/dshills/vantage/internal/config"
	"github.com/dshills/vantage/internal/plugin/lua"
	"github.com/dshills/vantage/internal/renderer/backend"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type options struct {
	configPath string
	logFile    string
	logLevel   string
	files      []string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintf(os.Stderr, "Error: vantage must be run in a terminal\n")
		return 1
	}

	logger, closeLog, err := openLog(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer closeLog()
	app.SetLogger(logger)

	// A broken preferences file still opens the editor with the defaults.
	prefs, prefsErr := loadPreferences(opts.configPath)
	if prefsErr != nil {
		logger.Warn("preferences: %v", prefsErr)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	host := lua.NewHost()
	defer host.Close()
	var pluginErrs []error
	for _, p := range prefs.Plugins {
		if err := host.LoadFile(ctx, config.ExpandPath(p)); err != nil {
			logger.Warn("plugin: %v", err)
			pluginErrs = append(pluginErrs, err)
		}
	}

	terminal, err := backend.NewTerminal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	if err := terminal.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize terminal: %v\n", err)
		return 1
	}
	defer terminal.Shutdown()

	root, _ := os.Getwd()
	if len(opts.files) > 0 {
		if abs, err := filepath.Abs(opts.files[0]); err == nil {
			if info, err := os.Stat(abs); err == nil && info.IsDir() {
				root = abs
				opts.files = opts.files[1:]
			}
		}
	}

	application, err := app.New(app.Options{
		Backend:     terminal,
		Preferences: prefs,
		Commands:    commands.Registry(),
		Root:        root,
		Plugins:     host,
		Clipboard:   app.NewClipboard(true),
		Logger:      logger,
	})
	if err != nil {
		terminal.Shutdown()
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}

	var openErrs []error
	for _, path := range opts.files {
		if _, err := application.OpenPath(path); err != nil {
			openErrs = append(openErrs, err)
		}
	}
	if err := errors.Join(append(append([]error{prefsErr}, pluginErrs...), openErrs...)...); err != nil {
		application.ReportError(err)
	}

	if err := application.Run(ctx); err != nil {
		if errors.Is(err, app.ErrQuit) || errors.Is(err, context.Canceled) {
			return 0
		}
		terminal.Shutdown()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags() options {
	var opts options
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.configPath, "config", "", "Path to the preferences file")
	flag.StringVar(&opts.configPath, "c", "", "Path to the preferences file (shorthand)")
	flag.StringVar(&opts.logFile, "log-file", "", "Write logs to this file (default $XDG_STATE_HOME/vantage/vantage.log)")
	flag.StringVar(&opts.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "vantage - modal terminal text editor\n\n")
		fmt.Fprintf(os.Stderr, "Usage: vantage [options] [directory] [files...]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  vantage                     Open the current directory\n")
		fmt.Fprintf(os.Stderr, "  vantage main.go             Open a file\n")
		fmt.Fprintf(os.Stderr, "  vantage ./project a.go      Use ./project as the workspace\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("vantage %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	switch opts.logLevel {
	case "debug", "info", "warn", "error":
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.logLevel)
		os.Exit(1)
	}

	opts.files = flag.Args()
	return opts
}

func loadPreferences(path string) (*config.Preferences, error) {
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			return config.Default(), err
		}
	}
	return config.Load(config.ExpandPath(path))
}

// openLog opens the log file for appending. The terminal belongs to the
// editor, so nothing is logged to stderr.
func openLog(opts options) (*app.Logger, func(), error) {
	path := opts.logFile
	if path == "" {
		dir := os.Getenv("XDG_STATE_HOME")
		if dir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return app.NullLogger, func() {}, nil
			}
			dir = filepath.Join(home, ".local", "state")
		}
		path = filepath.Join(dir, "vantage", "vantage.log")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}

	cfg := app.DefaultLoggerConfig()
	cfg.Level = app.ParseLogLevel(opts.logLevel)
	cfg.Output = f
	return app.NewLogger(cfg), func() { f.Close() }, nil
}
