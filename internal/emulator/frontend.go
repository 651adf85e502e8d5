package emulator

import (
	"context"
	"time"

	"github.com/bradford-hamilton/chipvm/internal/chip8"
)

// FrameRate is how often Present redraws and polls input.
const FrameRate = 60

// KeySink accepts keypad state from a frontend.
type KeySink interface {
	SetKey(key byte, down bool)
}

// Frontend renders frames and reports key state.
type Frontend interface {
	Draw(frame chip8.Frame)
	PollKeys(sink KeySink)
	Closed() bool
}

// Present polls input and redraws fe at FrameRate until fe is closed or ctx
// is done. It must run on whatever goroutine fe requires, usually main.
func Present(ctx context.Context, m *Machine, fe Frontend) error {
	frames := time.NewTicker(time.Second / FrameRate)
	defer frames.Stop()

	for !fe.Closed() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-frames.C:
			fe.PollKeys(m)
			fe.Draw(m.Frame())
		}
	}
	return nil
}
