package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/woozymasta/randomspot/internal/config"
	"github.com/woozymasta/randomspot/internal/logger"
	"github.com/woozymasta/randomspot/internal/server"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile  string `short:"c" long:"config"       env:"CONFIG_FILE"    description:"Path to configuration file (optional)" default:"config.yaml"`
	Addr        string `short:"a" long:"addr"         env:"LISTEN_ADDRESS" description:"Address to listen on"                  default:"0.0.0.0"`
	Port        int    `short:"p" long:"port"         env:"LISTEN_PORT"    description:"Port to listen on"                     default:"8080"`
	MaxAttempts int    `short:"m" long:"max-attempts" env:"MAX_ATTEMPTS"   description:"Rejection sampling attempt cap, overrides max_attempts from the config file (default 1000)"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	// Setup Logging
	opts.Logger.Setup()

	// Load Config
	cfg, err := config.Load(opts.ConfigFile)
	if errors.Is(err, os.ErrNotExist) {
		log.Warn().Str("path", opts.ConfigFile).Msg("Configuration file not found, running without presets")
		cfg = &config.Config{}
	} else if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	applyOptions(cfg, opts)

	srvCtx := server.NewServerContext(cfg)

	handler := server.RequestLogger(srvCtx.Routes())

	listenAddr := fmt.Sprintf("%s:%d", opts.Addr, opts.Port)
	srv := &http.Server{
		Addr:              listenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Info().
		Str("addr", listenAddr).
		Int("regions_loaded", len(cfg.Regions)).
		Int("max_attempts", cfg.MaxAttempts).
		Msg("Web server started")

	if err := srv.ListenAndServe(); err != nil {
		log.Fatal().Err(err).Msg("Server failed")
	}
}

// applyOptions lets explicitly given command line or env values win over the config file.
func applyOptions(cfg *config.Config, opts Options) {
	if opts.MaxAttempts > 0 {
		cfg.MaxAttempts = opts.MaxAttempts
	}
}
