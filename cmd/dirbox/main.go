// Package main provides the dirbox command-line player.
package main

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"syscall"

	"github.com/alecthomas/kingpin/v2"
	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/dirbox/internal/app/console"
	"github.com/osa030/dirbox/internal/app/filter"
	"github.com/osa030/dirbox/internal/app/session"
	"github.com/osa030/dirbox/internal/infra/audio"
	"github.com/osa030/dirbox/internal/infra/config"
	"github.com/osa030/dirbox/internal/infra/library"
	"github.com/osa030/dirbox/internal/infra/logger"
)

var (
	app        = kingpin.New("dirbox", "Play the audio files of a directory as a playlist")
	directory  = app.Flag("directory", "Directory containing audio files (default: current directory)").Short('d').String()
	loop       = app.Flag("loop", "Start over after the last track").Short('l').Bool()
	configPath = app.Flag("config", "Path to config file").String()
	engineType = app.Flag("engine", "Audio engine").Enum(audio.TypeSpeaker, audio.TypeSilent)
	verbose    = app.Flag("verbose", "Enable verbose (DEBUG) logging").Short('v').Bool()
	logfile    = app.Flag("logfile", "Path to log file (default: stderr)").String()

	// list-filters command
	listFiltersCmd = app.Command("list-filters", "List available scan filters and exit")
)

func init() {
	// play command (default) - no need to store the command
	app.Command("play", "Play the directory (default)").Default()
}

func main() {
	// Load .env file if it exists (errors are ignored)
	_ = godotenv.Load()

	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	if command == listFiltersCmd.FullCommand() {
		printFilters()
		return
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	loggerConfig := logger.Config{
		Output: cfg.Log.Output,
		Level:  cfg.Log.Level,
	}
	if *verbose {
		loggerConfig.Level = "debug"
	}
	if *logfile != "" {
		loggerConfig.Output = *logfile
	}
	if err := logger.Init(loggerConfig); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		zlog.Debug().Msgf("exiting with error: %+v", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the config file when given and applies command-line flags.
func loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if *configPath != "" {
		cfg, err = config.Load(*configPath)
	} else {
		cfg, err = config.Default()
	}
	if err != nil {
		return nil, err
	}

	if *directory != "" {
		cfg.Player.Directory = *directory
	}
	if *loop {
		cfg.Player.Loop = true
	}
	if *engineType != "" {
		cfg.Engine.Type = *engineType
	}
	return cfg, nil
}

// run executes the player. Using a separate function ensures deferred
// cleanup runs before the process exits.
func run(cfg *config.Config) error {
	if err := cfg.ValidateExtensions(audio.SupportedExtensions()); err != nil {
		return errors.Wrap(err, "invalid player config")
	}

	chain, err := filter.NewChainFromConfig(cfg, audio.Probe)
	if err != nil {
		return errors.Wrap(err, "invalid filter config")
	}

	tracks, err := library.Scan(cfg.Player.Directory, cfg.NormalizedExtensions(), chain)
	if err != nil {
		return err
	}
	if tracks.IsEmpty() {
		return errors.Newf("no audio files found in %s", tracks.Dir)
	}

	engine, err := audio.NewEngine(cfg.Engine)
	if err != nil {
		return errors.Wrap(err, "failed to create audio engine")
	}

	rl, err := console.NewPrompt(tracks.Len(), "")
	if err != nil {
		return err
	}
	defer rl.Close()

	// Signals end the prompt like quit, so the deferred cleanup still runs
	stop := console.CloseOnSignal(rl, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mgr := session.NewManager(session.Config{
		PollInterval: cfg.PollInterval(),
		Loop:         cfg.Player.Loop,
	}, tracks, engine, rl.Stdout())
	defer func() {
		if err := mgr.Close(); err != nil {
			zlog.Error().Err(err).Msg("failed to close session")
		}
	}()

	zlog.Info().Msgf("starting session: id=%s dir=%s tracks=%d loop=%v engine=%s",
		mgr.ID(), tracks.Dir, tracks.Len(), cfg.Player.Loop, cfg.Engine.Type)

	cons := console.New(mgr.Controller(), rl.Stdout())
	cons.List()
	if err := mgr.Start(); err != nil {
		return err
	}
	cons.PrintUsage()

	return cons.Run(rl)
}

// printFilters prints available filters.
func printFilters() {
	// The duration filter is built with a decoder, so it is not registered.
	filters := []filter.Filter{filter.NewDurationLimitFilter(nil)}
	for _, factory := range filter.GetRegistered() {
		filters = append(filters, factory())
	}
	sort.Slice(filters, func(i, j int) bool {
		return filters[i].Name() < filters[j].Name()
	})

	fmt.Println("Available Filters:")
	for _, f := range filters {
		codes := strings.Join(f.ReturnCodes(), ", ")
		fmt.Printf("  %-24s - %s [codes: %s]\n", f.Name(), f.Description(), codes)
	}
}
