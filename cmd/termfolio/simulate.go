package main

import (
	"context"
	"fmt"
	"math/rand"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/termfolio/internal/app"
	"github.com/vovakirdan/termfolio/internal/config"
	"github.com/vovakirdan/termfolio/internal/core"
	"github.com/vovakirdan/termfolio/internal/loop"
	"github.com/vovakirdan/termfolio/internal/registry"
)

var (
	flagSimDuration time.Duration
	flagSimEvery    time.Duration
	flagSimSilent   bool
	flagSimSave     bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate <game>",
	Short: "Run a game headless with random input",
	Long: `Run a game on a real-time loop without a screen. An autopilot taps a
random direction at a fixed interval, and the events are played through the
speaker unless --silent is given. The run ends after --duration or at game
over, and the final state is printed.

Examples:
  termfolio simulate snake --duration 30s
  termfolio simulate breakout --seed 42 --silent
  termfolio simulate tetris --every 100ms --save`,
	Args: cobra.ExactArgs(1),
	RunE: runSimulate,
}

func init() {
	f := simulateCmd.Flags()
	f.DurationVar(&flagSimDuration, "duration", 10*time.Second, "How long to run")
	f.DurationVar(&flagSimEvery, "every", 250*time.Millisecond, "Autopilot input interval")
	f.BoolVar(&flagSimSilent, "silent", false, "Do not open the audio device")
	f.BoolVar(&flagSimSave, "save", false, "Save the final score")
	f.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
}

var autopilot = []core.Action{core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight}

func runSimulate(cmd *cobra.Command, args []string) error {
	gameID := args[0]
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return err
	}
	game, err := registry.Create(gameID, registry.Options{Preset: preset})
	if err != nil {
		return err
	}

	a, err := openApp(app.Options{Sound: !flagSimSilent, NoStore: !flagSimSave})
	if err != nil {
		return err
	}
	defer a.Close()
	a.Sound.SetOptions(a.Preferences().SoundOptions())

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rc := core.RuntimeConfig{TickRate: flagFPS, Seed: seed}
	driver := loop.NewDriver(game, nil, rc, loop.WithListener(a.Sound))

	counts := make(map[core.Event]int)
	over := make(chan struct{})
	runner := loop.NewRunner(driver, 0)
	runner.OnStep = func(res core.StepResult, _ int) {
		for _, e := range res.Events {
			counts[e]++
			a.Logger.Debug("event", "game", gameID, "event", e)
		}
		if res.State.GameOver() && over != nil {
			close(over)
			over = nil
		}
	}
	done := over

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, flagSimDuration)
	defer cancel()

	driver.Latch().Tap(core.ActionToggle)
	if err := runner.Start(ctx); err != nil {
		return err
	}
	a.Logger.Info("simulation started", "game", gameID, "seed", seed, "duration", flagSimDuration)

	rng := rand.New(rand.NewSource(seed))
	pilot := time.NewTicker(flagSimEvery)
	defer pilot.Stop()
loop:
	for {
		select {
		case <-ctx.Done():
			break loop
		case <-done:
			break loop
		case <-pilot.C:
			driver.Latch().Tap(autopilot[rng.Intn(len(autopilot))])
		}
	}
	runner.Stop()

	st := driver.State()
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: %s after %d ticks, score %d\n", game.Title(), st.Status, driver.Ticks(), st.Score)
	events := make([]core.Event, 0, len(counts))
	for e := range counts {
		events = append(events, e)
	}
	slices.Sort(events)
	for _, e := range events {
		fmt.Fprintf(out, "  %-10s %d\n", e, counts[e])
	}

	if flagSimSave && a.Store != nil && st.Score > 0 {
		if _, err := a.Store.SaveScore(gameID, st.Score); err != nil {
			return fmt.Errorf("saving score: %w", err)
		}
		fmt.Fprintln(out, "Score saved.")
	}
	return nil
}
