package game

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/go-life/model"
	"github.com/sheikhrachel/go-life/utils"
)

const (
	statusActive   = "Active"
	statusExtinct  = "Extinct"
	statusStagnant = "Stagnant"

	// stagnant generations tolerated before random cells are injected
	injectAfter = 2
)

// Frame is an immutable snapshot handed from the simulation to the display
type Frame struct {
	Generation    int
	SinceRestart  int
	LiveCells     int
	Density       float64
	Status        string
	Grid          string
	Report        model.TickReport
	GensPerSecond float64
	AvgPopulation float64
	Runtime       time.Duration
}

// Runner drives a universe at the configured frame rate and displays every generation.
// The universe is only touched from the simulation goroutine.
type Runner struct {
	config      utils.Config
	universe    *model.Universe
	history     *model.History
	renderer    *model.TerminalRenderer
	stats       *utils.Stats
	logger      *slog.Logger
	rng         *rand.Rand
	clearScreen bool
}

// RunnerOption configures a Runner
type RunnerOption func(r *Runner)

// WithClearScreen clears the terminal before every frame
func WithClearScreen() RunnerOption {
	return func(r *Runner) { r.clearScreen = true }
}

// NewRunner sets up the initial game state
func NewRunner(config utils.Config, renderer *model.TerminalRenderer, logger *slog.Logger, opts ...RunnerOption) (*Runner, error) {
	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(err, "[NewRunner]")
	}

	u, err := NewUniverse(config, logger)
	if err != nil {
		return nil, err
	}

	r := &Runner{
		config:   config,
		universe: u,
		history:  model.NewHistory(0),
		renderer: renderer,
		stats:    utils.NewStats(),
		logger:   logger,
		rng:      rand.New(rand.NewSource(config.RandomSeed)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Stats returns the run statistics. Read it after Run returns.
func (r *Runner) Stats() *utils.Stats {
	return r.stats
}

// Run simulates until the generation limit, extinction or stagnation without restart, or ctx is done.
// Cancellation is a normal way to stop and is not reported as an error.
func (r *Runner) Run(ctx context.Context) error {
	frames := make(chan Frame, 1)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		defer close(frames)
		return r.simulate(egCtx, frames)
	})
	eg.Go(func() error {
		return r.display(egCtx, frames)
	})

	if err := eg.Wait(); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

func (r *Runner) simulate(ctx context.Context, frames chan<- Frame) error {
	var (
		generation     = 0
		stagnantCount  = 0
		lastRestartGen = 0
		lastFrameTime  = time.Now()
	)

	r.logger.Info("simulation started",
		"width", r.config.Width, "height", r.config.Height,
		"seed", r.config.Seed, "live_cells", r.universe.LiveCells())

	for {
		frameStart := time.Now()
		frame := r.updateGameState(generation, lastRestartGen, lastFrameTime)
		lastFrameTime = frameStart

		if frame.Status == statusStagnant {
			stagnantCount++
		} else {
			stagnantCount = 0
		}

		select {
		case frames <- frame:
		case <-ctx.Done():
			return ctx.Err()
		}

		if r.config.MaxGenerations > 0 && generation >= r.config.MaxGenerations {
			r.logger.Info("reached maximum generations limit", "max_generations", r.config.MaxGenerations)
			return nil
		}

		shouldRestart, reason := checkRestartConditions(frame.LiveCells, stagnantCount, r.config)
		switch {
		case shouldRestart && r.config.AutoRestart:
			r.logger.Info("restarting", "reason", reason, "generation", generation)
			r.restart()
			lastRestartGen = generation
			stagnantCount = 0
		case shouldRestart:
			r.logger.Info("simulation finished", "reason", reason, "generation", generation)
			return nil
		case stagnantCount >= injectAfter && r.config.InjectionCount > 0:
			// Inject some life to try to break the stagnation
			r.universe.InjectRandomLife(r.rng, r.config.InjectionCount)
			r.logger.Debug("injected random life", "cells", r.config.InjectionCount, "generation", generation)
		}

		r.universe.Tick()
		report := r.universe.LastTick()
		r.stats.RecordTick(report.Births, report.Deaths())
		generation++

		if err := sleep(ctx, r.config.FrameRate); err != nil {
			return err
		}
	}
}

// updateGameState records the current generation and returns its snapshot
func (r *Runner) updateGameState(generation, lastRestartGen int, lastFrameTime time.Time) Frame {
	u := r.universe
	livingCells := u.LiveCells()
	density := float64(livingCells) / float64(int(u.GetWidth())*int(u.GetHeight())) * 100

	r.stats.Update(generation, livingCells, time.Since(lastFrameTime))

	// compare with earlier generations before recording this one
	isStagnant := r.history.IsStagnant(u)
	r.history.Update(u)

	status := statusActive
	if isStagnant {
		status = statusStagnant
	}
	if livingCells == 0 {
		status = statusExtinct
	}

	return Frame{
		Generation:    generation,
		SinceRestart:  generation - lastRestartGen,
		LiveCells:     livingCells,
		Density:       density,
		Status:        status,
		Grid:          u.Render(),
		Report:        u.LastTick(),
		GensPerSecond: r.stats.GenerationsPerSecond,
		AvgPopulation: r.stats.AveragePopulation,
		Runtime:       time.Since(r.stats.StartTime),
	}
}

// checkRestartConditions determines if the game should restart
func checkRestartConditions(livingCells, stagnantCount int, config utils.Config) (bool, string) {
	if livingCells == 0 {
		return true, "extinction"
	}
	if stagnantCount >= config.StagnationThreshold {
		return true, "stagnation detected"
	}
	return false, ""
}

// restart reseeds the universe and forgets its history
func (r *Runner) restart() {
	Seed(r.universe, r.config)
	r.history.Reset()
	r.stats.Restarts++
}

func (r *Runner) display(ctx context.Context, frames <-chan Frame) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case frame, ok := <-frames:
			if !ok {
				return nil
			}
			if err := r.displayFrame(frame); err != nil {
				return err
			}
		}
	}
}

// displayFrame shows the status lines followed by the grid
func (r *Runner) displayFrame(f Frame) error {
	if r.clearScreen {
		if err := r.renderer.Clear(); err != nil {
			r.logger.Warn("failed to clear terminal", "error", err)
		}
	}

	status := f.Status
	if f.Status != statusActive {
		status = r.renderer.Highlight(f.Status)
	}

	lines := []string{
		fmt.Sprintf("Gen: %d | Living: %d | Density: %.1f%% | Status: %s", f.Generation, f.LiveCells, f.Density, status),
		fmt.Sprintf("Births: %d | Deaths: %d | Performance: %.1f gen/sec | Avg Pop: %.1f | Runtime: %.1fs",
			f.Report.Births, f.Report.Deaths(), f.GensPerSecond, f.AvgPopulation, f.Runtime.Seconds()),
	}
	// Show time since last restart
	if f.SinceRestart > 0 && f.SinceRestart != f.Generation {
		lines = append(lines, fmt.Sprintf("Generations since restart: %d", f.SinceRestart))
	}

	for _, line := range lines {
		if err := r.renderer.Status("%s", line); err != nil {
			return err
		}
	}
	return r.renderer.Display(f.Grid)
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
