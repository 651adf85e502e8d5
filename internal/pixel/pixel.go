// Package pixel renders the chip-8 display in an OpenGL window and reads the
// keypad from the keyboard.
package pixel

import (
	"fmt"

	"github.com/bradford-hamilton/chipvm/internal/chip8"
	"github.com/bradford-hamilton/chipvm/internal/emulator"
	"github.com/faiface/pixel"
	"github.com/faiface/pixel/imdraw"
	"github.com/faiface/pixel/pixelgl"
	"golang.org/x/image/colornames"
)

const screenWidth float64 = 1024
const screenHeight float64 = 512

// KeyMap maps the hex keypad onto the left side of a QWERTY keyboard:
//
//	1 2 3 C      1 2 3 4
//	4 5 6 D  ->  Q W E R
//	7 8 9 E      A S D F
//	A 0 B F      Z X C V
var KeyMap = map[byte]pixelgl.Button{
	0x1: pixelgl.Key1, 0x2: pixelgl.Key2,
	0x3: pixelgl.Key3, 0xC: pixelgl.Key4,
	0x4: pixelgl.KeyQ, 0x5: pixelgl.KeyW,
	0x6: pixelgl.KeyE, 0xD: pixelgl.KeyR,
	0x7: pixelgl.KeyA, 0x8: pixelgl.KeyS,
	0x9: pixelgl.KeyD, 0xE: pixelgl.KeyF,
	0xA: pixelgl.KeyZ, 0x0: pixelgl.KeyX,
	0xB: pixelgl.KeyC, 0xF: pixelgl.KeyV,
}

// Window embeds a pixelgl window and implements emulator.Frontend.
type Window struct {
	*pixelgl.Window
}

var _ emulator.Frontend = (*Window)(nil)

// NewWindow handles creating a new pixelgl window config, initializing the window,
// and returning a pointer a Window with an embedded *pixelgl.Window. It must be
// called from within pixelgl.Run.
func NewWindow(title string) (*Window, error) {
	cfg := pixelgl.WindowConfig{
		Title:  title,
		Bounds: pixel.R(0, 0, screenWidth, screenHeight),
		VSync:  true,
	}
	w, err := pixelgl.NewWindow(cfg)
	if err != nil {
		return nil, fmt.Errorf("error creating new window: %w", err)
	}
	return &Window{Window: w}, nil
}

// Draw paints lit pixels as white rectangles on black. Row 0 of the frame
// is the top of the window; pixel's origin is bottom left.
func (w *Window) Draw(frame chip8.Frame) {
	w.Clear(colornames.Black)
	imDraw := imdraw.New(nil)
	imDraw.Color = colornames.White
	width := screenWidth / chip8.DisplayWidth
	height := screenHeight / chip8.DisplayHeight

	for y := 0; y < chip8.DisplayHeight; y++ {
		for x := 0; x < chip8.DisplayWidth; x++ {
			if !frame[chip8.DisplayHeight-1-y][x] {
				continue
			}
			imDraw.Push(pixel.V(width*float64(x), height*float64(y)))
			imDraw.Push(pixel.V(width*float64(x)+width, height*float64(y)+height))
			imDraw.Rectangle(0)
		}
	}

	imDraw.Draw(w)
	w.Update()
}

// PollKeys reports the held state of every mapped key. Update, called by
// Draw, refreshes the state pixelgl reads here.
func (w *Window) PollKeys(sink emulator.KeySink) {
	for key, button := range KeyMap {
		sink.SetKey(key, w.Pressed(button))
	}
}
