package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/gpucatalog/gpucatalog/internal/catalogsrv/config"
	"github.com/gpucatalog/gpucatalog/internal/catalogsrv/db"
	"github.com/gpucatalog/gpucatalog/internal/catalogsrv/server"
	"github.com/gpucatalog/gpucatalog/internal/common/logtrace"
)

type cmdoptions struct {
	configFile *string
	pretty     *bool
}

func main() {
	// Parse command line flags
	opt := parseFlags()

	// load config file
	if err := config.LoadConfig(*opt.configFile); err != nil {
		fmt.Fprintf(os.Stderr, "unable to load config file %q: %v\n", *opt.configFile, err)
		os.Exit(1)
	}
	logtrace.InitLogger(config.Config().LogLevel, *opt.pretty)
	slog := log.With().Str("state", "init").Logger()
	slog.Info().Str("config_file", *opt.configFile).Str("store", config.Config().Store).Msg("config loaded")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := db.Open(slog.WithContext(ctx), config.Config())
	if err != nil {
		slog.Error().Err(err).Msg("unable to open store")
		os.Exit(1)
	}
	defer store.Close()

	s, err := server.CreateNewServer(store)
	if err != nil {
		slog.Error().Err(err).Msg("Unable to create server")
		os.Exit(1)
	}
	s.MountHandlers()

	srv := &http.Server{
		Addr:              ":" + config.Config().ServerPort,
		Handler:           s.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown failed")
		}
	}()

	slog.Info().Str("addr", srv.Addr).Msg("listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
	slog.Info().Msg("server stopped")
}

func parseFlags() cmdoptions {
	var opt cmdoptions
	opt.configFile = flag.String("config", "", "Path to the TOML config file, defaults are used when empty")
	opt.pretty = flag.Bool("pretty", false, "Human readable log output")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: gpucatalogsrv [options]\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	return opt
}
