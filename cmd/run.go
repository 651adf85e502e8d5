package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"time"

	"github.com/bradford-hamilton/chipvm/internal/audio"
	"github.com/bradford-hamilton/chipvm/internal/chip8"
	"github.com/bradford-hamilton/chipvm/internal/emulator"
	"github.com/bradford-hamilton/chipvm/internal/pixel"
	"github.com/bradford-hamilton/chipvm/internal/termui"
	"github.com/faiface/pixel/pixelgl"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const (
	frontendWindow   = "window"
	frontendTerminal = "terminal"
)

type runOptions struct {
	legacyShift bool
	chip48Jump  bool
	clockHz     int
	frontend    string
	seed        uint64
	mute        bool
}

var runOpts runOptions

// runCmd runs the chipvm virtual machine until the window is closed, the
// program faults, or an interrupt arrives
var runCmd = &cobra.Command{
	Use:   "run `path/to/rom`",
	Short: "run a rom in the chipvm emulator",
	Args:  cobra.ExactArgs(1),
	RunE:  runChipVM,
}

func init() {
	flags := runCmd.Flags()
	flags.BoolVar(&runOpts.legacyShift, "legacy-shift", false, "SHR/SHL shift Vx in place and ignore Vy")
	flags.BoolVar(&runOpts.chip48Jump, "chip48-jump", true, "BNNN jumps to Vx+NNN instead of V0+NNN")
	flags.IntVar(&runOpts.clockHz, "hz", emulator.DefaultClockHz, "instructions executed per second")
	flags.StringVar(&runOpts.frontend, "frontend", frontendWindow, "display to use: window or terminal")
	flags.Uint64Var(&runOpts.seed, "seed", 0, "seed for the RND instruction, 0 picks one from the clock")
	flags.BoolVar(&runOpts.mute, "mute", false, "do not play the sound timer tone")
}

func runChipVM(cmd *cobra.Command, args []string) error {
	if runOpts.frontend != frontendWindow && runOpts.frontend != frontendTerminal {
		return fmt.Errorf("unknown frontend %q, expected %s or %s", runOpts.frontend, frontendWindow, frontendTerminal)
	}
	if runOpts.frontend == frontendTerminal && !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("the terminal frontend needs stdout to be a terminal")
	}

	log := newLogger()
	cfg := emulator.Config{
		Config: chip8.Config{
			LegacyShift: runOpts.legacyShift,
			Chip48Jump:  runOpts.chip48Jump,
			Logger:      log,
		},
		ClockHz: runOpts.clockHz,
	}
	if runOpts.seed != 0 {
		cfg.Rand = rand.New(rand.NewPCG(runOpts.seed, runOpts.seed))
	}

	m := emulator.New(cfg)
	if err := loadROM(m, args[0]); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if !runOpts.mute {
		startAudio(ctx, m, log)
	}

	runErr := make(chan error, 1)
	go func() {
		runErr <- m.Run(ctx)
		cancel()
	}()

	var feErr error
	switch runOpts.frontend {
	case frontendWindow:
		pixelgl.Run(func() {
			feErr = presentWindow(ctx, m)
		})
	case frontendTerminal:
		feErr = presentTerminal(ctx, m)
	}
	cancel()

	if err := <-runErr; err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(cmd.ErrOrStderr(), m.Dump())
		return fmt.Errorf("running %s: %w", args[0], err)
	}
	if feErr != nil && !errors.Is(feErr, context.Canceled) {
		return feErr
	}
	return nil
}

func loadROM(m *emulator.Machine, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening rom: %w", err)
	}
	defer f.Close()

	if err := m.Load(f); err != nil {
		return fmt.Errorf("loading rom %q: %w", path, err)
	}
	return nil
}

func startAudio(ctx context.Context, m *emulator.Machine, log *slog.Logger) {
	player, err := audio.NewPlayer(time.Second / emulator.TimerHz)
	if err != nil {
		log.Warn("audio disabled", slog.String("error", err.Error()))
		return
	}
	go player.Serve(ctx, m.Beep)
}

func presentWindow(ctx context.Context, m *emulator.Machine) error {
	w, err := pixel.NewWindow("chipvm")
	if err != nil {
		return err
	}
	defer w.Destroy()
	return emulator.Present(ctx, m, w)
}

func presentTerminal(ctx context.Context, m *emulator.Machine) error {
	t, err := termui.New()
	if err != nil {
		return fmt.Errorf("initialising terminal: %w", err)
	}
	defer t.Close()
	return emulator.Present(ctx, m, t)
}
