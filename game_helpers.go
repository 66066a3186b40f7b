package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-gol-engine/engine"
	"github.com/sheikhrachel/go-gol-engine/model"
	"github.com/sheikhrachel/go-gol-engine/utils"
)

// gameStatus summarises the board for the status line
func gameStatus(s engine.Snapshot) string {
	switch {
	case s.Population == 0:
		return "Extinct"
	case s.Stagnant:
		return "Stagnant"
	case s.Running:
		return "Running"
	default:
		return "Paused"
	}
}

// formatStatus renders the one-line summary shown above the grid
func formatStatus(s engine.Snapshot, stats *utils.Stats) string {
	density := float64(s.Population) / float64(s.Columns*s.Rows) * 100
	return fmt.Sprintf("Gen: %d | Living: %d | Density: %.1f%% | Grid: %dx%d | Tick: %v | Status: %s | %.1f gen/sec",
		s.Generation, s.Population, density, s.Columns, s.Rows, s.TickInterval, gameStatus(s), stats.GenerationsPerSecond)
}

// displayGameInfo shows the initial game information
func displayGameInfo(out io.Writer, config utils.Config, s engine.Snapshot) {
	fmt.Fprintf(out, "Features: Memory Pool: %v, Parallel: %v\n", config.UseMemoryPool, config.UseParallel)
	fmt.Fprintf(out, "Grid: %dx%d | Initial living cells: %d\n", s.Columns, s.Rows, s.Population)
	fmt.Fprintln(out, "Press Ctrl+C to exit gracefully")
	fmt.Fprintln(out)
}

// runHeadless runs the engine and prints every frame until the generation
// limit is reached or the process is interrupted. A limit of 0 runs forever.
func runHeadless(config utils.Config, generations int, out io.Writer) error {
	// newest frame wins when the terminal falls behind the timer
	frames := make(chan engine.Snapshot, 1)
	e, err := engine.NewFromConfig(config, engine.WithOnChange(func(s engine.Snapshot) {
		select {
		case frames <- s:
		default:
		}
	}))
	if err != nil {
		return errors.Wrap(err, "[runHeadless] failed to create engine")
	}
	defer e.Close()

	renderer := &model.TerminalRenderer{Out: out}
	stats := utils.NewStats()
	displayGameInfo(out, config, e.Snapshot())

	// Handle Ctrl+C gracefully
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	e.SetRunning(true)

	for {
		select {
		case <-sigChan:
			fmt.Fprintln(out, "\nShutting down gracefully...")
			fmt.Fprintf(out, "Final stats: %d generations, %.1f avg population\n",
				stats.TotalGenerations, stats.AveragePopulation)
			return nil
		case s := <-frames:
			stats.Update(s.Generation, s.Population, time.Now())
			if err = renderer.Clear(); err != nil {
				return errors.Wrap(err, "[runHeadless] failed to clear terminal")
			}
			fmt.Fprintln(out, formatStatus(s, stats))
			if err = renderer.Display(s.Grid); err != nil {
				return errors.Wrap(err, "[runHeadless] failed to render grid")
			}

			if generations > 0 && s.Generation >= generations {
				fmt.Fprintf(out, "\nReached generation limit (%d)\n", generations)
				return nil
			}
		}
	}
}
