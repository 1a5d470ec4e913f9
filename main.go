package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/integrii/flaggy"
	"github.com/pkg/errors"
	"github.com/pkg/profile"
	"golang.org/x/text/language"

	"github.com/sheikhrachel/go-life/game"
	"github.com/sheikhrachel/go-life/model"
	"github.com/sheikhrachel/go-life/utils"
	"github.com/sheikhrachel/go-life/view"
)

const version = "0.3.0"

// cliOptions are the flags that are not part of the game configuration
type cliOptions struct {
	configPath string
	profile    string
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "go-life: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	flagged, opts := parseFlags()

	// Load configuration: defaults, then file, then environment, then flags
	base, err := utils.Load(opts.configPath)
	if err != nil {
		return err
	}
	config := utils.Overlay(base, flagged, utils.DefaultConfig())
	if err := config.Validate(); err != nil {
		return err
	}

	var logOut io.Writer = os.Stderr
	if config.Interactive {
		// the terminal belongs to the ui
		logOut = io.Discard
	}
	logger := utils.NewLogger(config.LogLevel, config.LogFormat, logOut)
	slog.SetDefault(logger)

	switch opts.profile {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.Quiet).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.Quiet).Stop()
	default:
		return errors.Errorf("unknown profile mode %q", opts.profile)
	}

	// Handle Ctrl+C gracefully
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if config.Interactive {
		return runInteractive(config, logger)
	}
	return runHeadless(ctx, config, logger)
}

func runInteractive(config utils.Config, logger *slog.Logger) error {
	u, err := game.NewUniverse(config, logger)
	if err != nil {
		return err
	}
	ui, err := view.NewConsoleUI(u, config, logger)
	if err != nil {
		return err
	}
	return ui.Start()
}

func runHeadless(ctx context.Context, config utils.Config, logger *slog.Logger) error {
	renderer := model.NewTerminalRenderer(os.Stdout, config.Color)
	runner, err := game.NewRunner(config, renderer, logger, game.WithClearScreen())
	if err != nil {
		return err
	}

	fmt.Printf("Grid: %dx%d | Seed: %s | Memory pool: %v\n", config.Width, config.Height, config.Seed, config.UseMemoryPool)
	fmt.Println("Press Ctrl+C to exit gracefully")

	start := time.Now()
	if err := runner.Run(ctx); err != nil {
		return err
	}
	if ctx.Err() != nil {
		fmt.Println("\nShutting down gracefully...")
	}
	fmt.Println("Final stats:", runner.Stats().Summary(language.English, time.Since(start)))
	return nil
}

func parseFlags() (utils.Config, cliOptions) {
	config := utils.DefaultConfig()
	var opts cliOptions

	flaggy.SetName("go-life")
	flaggy.SetDescription("Conway's Game of Life on a toroidal grid")
	flaggy.SetVersion(version)
	flaggy.DefaultParser.ShowHelpOnUnexpected = true

	flaggy.String(&opts.configPath, "c", "config", "Path to a .json or .hcl configuration file")
	flaggy.UInt32(&config.Width, "x", "width", "Width of the universe")
	flaggy.UInt32(&config.Height, "y", "height", "Height of the universe")
	flaggy.Duration(&config.FrameRate, "i", "interval", "Interval between generations, for example 150ms")
	flaggy.Int(&config.MaxGenerations, "s", "maxGenerations", "Stop after this many generations, 0 runs forever")
	flaggy.String(&config.Seed, "", "seed", "Initial pattern [modulo|empty|patterns|random]")
	flaggy.Int64(&config.RandomSeed, "", "randomSeed", "Seed for the random pattern and life injection")
	flaggy.Float64(&config.RandomDensity, "", "density", "Share of live cells for the random pattern")
	flaggy.Bool(&config.AutoRestart, "a", "autoRestart", "Reseed on extinction or stagnation instead of stopping")
	flaggy.Bool(&config.Interactive, "n", "interactive", "Start the interactive terminal ui")
	flaggy.Bool(&config.Color, "", "color", "Color live cells")
	flaggy.String(&config.LogLevel, "", "logLevel", "Log level [debug|info|warn|error]")
	flaggy.String(&config.LogFormat, "", "logFormat", "Log format [text|json]")
	flaggy.String(&opts.profile, "", "profile", "Write a profile to the working directory [cpu|mem]")

	flaggy.Parse()
	return config, opts
}
