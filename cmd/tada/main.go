package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/tada/internal/auth"
	"github.com/idilsaglam/tada/internal/cli"
	"github.com/idilsaglam/tada/internal/config"
	"github.com/idilsaglam/tada/internal/router"
	"github.com/idilsaglam/tada/internal/store"
	"github.com/idilsaglam/tada/internal/todoapi"
	"github.com/idilsaglam/tada/internal/ui"
)

func main() {
	// Root flags (apply to every subcommand)
	themeFlag := flag.String("theme", "", "color theme: dark or light (overrides TADA_THEME)")
	flag.Parse()

	os.Exit(run(flag.Args(), *themeFlag))
}

func run(args []string, themeName string) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		return 1
	}
	if themeName == "" {
		themeName = cfg.Theme
	}
	theme, err := ui.LookupTheme(themeName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	logger, closeLog, err := newLogger(cfg, cli.WantsUI(args))
	if err != nil {
		theme.Fail(os.Stderr, "log: "+err.Error())
		return 1
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	kvStore, err := store.Open(cfg.Storage, cfg.DataDir)
	if err != nil {
		theme.Fail(os.Stderr, "storage: "+err.Error())
		return 1
	}
	defer kvStore.Close()

	session := auth.New(kvStore, auth.WithLogger(logger.WithPrefix("auth")))
	// Loads in the background; the router guard waits on Ready.
	go session.Initialize(ctx)

	env := cli.Env{
		Ctx:     ctx,
		Session: session,
		Router:  router.New(router.DefaultRoutes(), session, logger.WithPrefix("router")),
		Todos: todoapi.New(cfg.APIBaseURL,
			todoapi.WithTimeout(cfg.APITimeout),
			todoapi.WithLogger(logger.WithPrefix("api")),
		),
		Logger:      logger,
		Theme:       theme,
		InitTimeout: cfg.InitTimeout,
		Storage:     cfg.Storage + " (" + cfg.DataDir + ")",
		In:          os.Stdin,
		Out:         os.Stdout,
		Err:         os.Stderr,
	}
	return cli.Run(env, args)
}

// newLogger writes to TADA_LOG_FILE when set. Without one, the full-screen UI
// gets a silent logger so stderr does not tear the alt screen.
func newLogger(cfg config.Config, fullscreen bool) (*log.Logger, func(), error) {
	lvl, err := cfg.Level()
	if err != nil {
		return nil, nil, err
	}

	var w io.Writer = os.Stderr
	closeFn := func() {}
	switch {
	case cfg.LogFile != "":
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w = f
		closeFn = func() { _ = f.Close() }
	case fullscreen:
		w = io.Discard
	}

	logger := log.NewWithOptions(w, log.Options{
		Level:           lvl,
		ReportTimestamp: cfg.LogFile != "",
	})
	return logger, closeFn, nil
}
