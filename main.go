package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"folio/app"
	"folio/hal"
	"folio/internal/buildinfo"
	"folio/internal/config"
	"folio/stage"
)

func main() {
	var (
		headless   hal.HeadlessConfig
		term       hal.TerminalConfig
		useTerm    bool
		cfgPath    string
		logLevel   string
		debug      bool
		dumpConfig bool
	)
	flag.BoolVar(&headless.Enabled, "headless", false, "Run without a window.")
	flag.IntVar(&headless.Hz, "hz", 60, "Tick rate in headless and terminal mode.")
	flag.Uint64Var(&headless.Ticks, "ticks", 0, "Stop after N ticks in headless or terminal mode (0 = run forever).")
	flag.Float64Var(&headless.AutoScroll, "autoscroll", 0, "Wheel notches to scroll per tick in headless mode.")
	flag.BoolVar(&useTerm, "term", false, "Render into the terminal.")
	flag.IntVar(&term.CellWidth, "cell", 8, "Logical pixels per terminal column.")
	flag.StringVar(&cfgPath, "config", "", "YAML config file (defaults are used when empty).")
	flag.StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error.")
	flag.BoolVar(&debug, "debug", false, "Show the frame statistics overlay.")
	flag.BoolVar(&dumpConfig, "dump-config", false, "Print the effective config as YAML and exit.")
	flag.Parse()

	if err := run(headless, term, useTerm, cfgPath, logLevel, debug, dumpConfig); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(headless hal.HeadlessConfig, term hal.TerminalConfig, useTerm bool, cfgPath, logLevel string, debug, dumpConfig bool) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	stage.SetLogger(logger.With(buildinfo.Attrs()...))

	cfg := config.Default()
	if cfgPath != "" {
		var err error
		if cfg, err = config.Load(cfgPath); err != nil {
			return err
		}
	}
	if dumpConfig {
		return config.Encode(os.Stdout, cfg)
	}

	newApp := func(h hal.HAL) func() error {
		return app.New(h, cfg, app.WithDebug(debug))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var err error
	switch {
	case useTerm:
		term.Hz, term.Ticks = headless.Hz, headless.Ticks
		err = hal.RunTerminal(ctx, newApp, term)
	case headless.Enabled:
		headless.Width, headless.Height = cfg.Window.Width, cfg.Window.Height
		err = hal.RunHeadless(ctx, newApp, headless)
	default:
		err = hal.RunWindow(hal.WindowConfig{
			Title:  cfg.Window.Title,
			Width:  cfg.Window.Width,
			Height: cfg.Window.Height,
		}, newApp)
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
