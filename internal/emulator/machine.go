// Package emulator drives a chip8.VM in real time and shares it safely with
// a rendering frontend.
package emulator

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/bradford-hamilton/chipvm/internal/chip8"
)

const (
	// DefaultClockHz is the instruction rate used when Config.ClockHz is zero.
	DefaultClockHz = 700
	// TimerHz is the fixed rate at which the delay and sound timers count down.
	TimerHz = 60
)

// Config configures a Machine.
type Config struct {
	chip8.Config

	// ClockHz is the number of instructions executed per second.
	ClockHz int
}

// Machine owns a VM and serialises every access to it. A tick, a key write,
// a timer decrement and a frame snapshot never interleave.
type Machine struct {
	mu      sync.Mutex
	vm      *chip8.VM
	clockHz int
	log     *slog.Logger

	// Beep receives a value on every timer tick while the sound timer is
	// non-zero. Sends never block; a slow reader just misses beeps.
	Beep chan struct{}
}

// New returns a Machine with a fresh VM.
func New(cfg Config) *Machine {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	hz := cfg.ClockHz
	if hz <= 0 {
		hz = DefaultClockHz
	}
	return &Machine{
		vm:      chip8.NewVM(cfg.Config),
		clockHz: hz,
		log:     cfg.Logger,
		Beep:    make(chan struct{}, 1),
	}
}

// Load reads a program image from r into memory at chip8.ProgramStart.
func (m *Machine) Load(r io.Reader) error {
	rom, err := io.ReadAll(io.LimitReader(r, chip8.MaxProgramSize+1))
	if err != nil {
		return fmt.Errorf("reading rom: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.vm.LoadProgram(rom); err != nil {
		return err
	}
	m.vm.SetPC(chip8.ProgramStart)
	m.log.Debug("rom loaded", slog.Int("size", len(rom)))
	return nil
}

// Step executes one instruction.
func (m *Machine) Step() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.vm.Tick()
}

// TickTimers decrements both timers once and signals Beep if sound is active.
func (m *Machine) TickTimers() {
	m.mu.Lock()
	m.vm.DecrementTimers()
	sound := m.vm.SoundTimer() > 0
	m.mu.Unlock()

	if !sound {
		return
	}
	select {
	case m.Beep <- struct{}{}:
	default:
	}
}

// SetKey marks a hex key as down or up.
func (m *Machine) SetKey(key byte, down bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vm.SetKey(key, down)
}

// Frame returns a snapshot of the display.
func (m *Machine) Frame() chip8.Frame {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.vm.Frame()
}

// SoundActive reports whether the sound timer is non-zero.
func (m *Machine) SoundActive() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.vm.SoundTimer() > 0
}

// PC returns the program counter.
func (m *Machine) PC() uint16 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.vm.PC()
}

// Dump renders the register state.
func (m *Machine) Dump() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.vm.Dump()
}

// Run executes instructions at the configured clock rate and decrements the
// timers at TimerHz until ctx is done or a tick fails. The tick error is
// returned unchanged so callers can inspect it with errors.Is.
func (m *Machine) Run(ctx context.Context) error {
	clock := time.NewTicker(time.Second / time.Duration(m.clockHz))
	defer clock.Stop()
	timers := time.NewTicker(time.Second / TimerHz)
	defer timers.Stop()

	m.log.Info("machine started", slog.Int("clock_hz", m.clockHz))
	for {
		select {
		case <-ctx.Done():
			m.log.Info("machine stopped")
			return ctx.Err()
		case <-timers.C:
			m.TickTimers()
		case <-clock.C:
			if err := m.Step(); err != nil {
				m.log.Error("tick failed",
					slog.String("error", err.Error()),
					slog.String("pc", fmt.Sprintf("0x%03X", m.PC())),
				)
				return err
			}
		}
	}
}
