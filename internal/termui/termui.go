// Package termui renders the chip-8 display in a terminal using termbox.
//
// Two display rows share one character cell via half-block glyphs, so the
// 64x32 screen needs a 64x16 terminal area. Terminals only report key
// presses, never releases, so a key counts as held for HoldTime after its
// last press or auto-repeat.
package termui

import (
	"sync"
	"time"

	"github.com/bradford-hamilton/chipvm/internal/chip8"
	"github.com/bradford-hamilton/chipvm/internal/emulator"
	"github.com/nsf/termbox-go"
)

// HoldTime is how long a key stays down after the terminal reports it.
const HoldTime = 150 * time.Millisecond

// KeyMap uses the same QWERTY layout as the window frontend.
var KeyMap = map[rune]byte{
	'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xC,
	'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xD,
	'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xE,
	'z': 0xA, 'x': 0x0, 'c': 0xB, 'v': 0xF,
}

// Terminal implements emulator.Frontend on top of termbox.
type Terminal struct {
	mu      sync.Mutex
	pressed [chip8.KeyCount]time.Time
	closed  bool
	now     func() time.Time
	done    chan struct{}
}

var _ emulator.Frontend = (*Terminal)(nil)

// New initialises termbox and starts reading keyboard events in the background.
// Close must be called to restore the terminal.
func New() (*Terminal, error) {
	if err := termbox.Init(); err != nil {
		return nil, err
	}
	termbox.HideCursor()

	t := newTerminal()
	go t.pollEvents()
	return t, nil
}

func newTerminal() *Terminal {
	return &Terminal{
		now:  time.Now,
		done: make(chan struct{}),
	}
}

// Close stops event polling and restores the terminal.
func (t *Terminal) Close() {
	t.mu.Lock()
	t.closed = true
	t.mu.Unlock()

	select {
	case <-t.done:
	default:
		// Interrupt blocks until PollEvent picks it up
		termbox.Interrupt()
		<-t.done
	}
	termbox.Close()
}

func (t *Terminal) pollEvents() {
	defer close(t.done)
	for {
		switch ev := termbox.PollEvent(); ev.Type {
		case termbox.EventKey:
			t.handleKey(ev)
		case termbox.EventInterrupt, termbox.EventError:
			return
		}
	}
}

func (t *Terminal) handleKey(ev termbox.Event) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if ev.Key == termbox.KeyEsc || ev.Key == termbox.KeyCtrlC {
		t.closed = true
		return
	}
	if key, ok := KeyMap[ev.Ch]; ok {
		t.pressed[key] = t.now()
	}
}

// Closed reports whether the user asked to quit with Esc or Ctrl-C.
func (t *Terminal) Closed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.closed
}

// PollKeys reports every key pressed within the last HoldTime as down.
func (t *Terminal) PollKeys(sink emulator.KeySink) {
	t.mu.Lock()
	now := t.now()
	var held [chip8.KeyCount]bool
	for key, at := range t.pressed {
		held[key] = !at.IsZero() && now.Sub(at) < HoldTime
	}
	t.mu.Unlock()

	for key, down := range held {
		sink.SetKey(byte(key), down)
	}
}

// Draw writes the frame to the terminal back buffer and flushes it.
func (t *Terminal) Draw(frame chip8.Frame) {
	_ = termbox.Clear(termbox.ColorDefault, termbox.ColorDefault)
	for row := 0; row < chip8.DisplayHeight/2; row++ {
		for x := 0; x < chip8.DisplayWidth; x++ {
			ch := cell(frame[row*2][x], frame[row*2+1][x])
			termbox.SetCell(x, row, ch, termbox.ColorWhite, termbox.ColorDefault)
		}
	}
	_ = termbox.Flush()
}

// cell picks the glyph for a vertical pair of pixels.
func cell(top, bottom bool) rune {
	switch {
	case top && bottom:
		return '█'
	case top:
		return '▀'
	case bottom:
		return '▄'
	}
	return ' '
}
