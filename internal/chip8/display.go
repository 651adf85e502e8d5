package chip8

// Display dimensions in pixels.
const (
	DisplayWidth  = 64
	DisplayHeight = 32
)

// Frame is a snapshot of the display, indexed [y][x].
type Frame [DisplayHeight][DisplayWidth]bool

// Display is the monochrome framebuffer. Coordinates must already be in
// range; wrapping is the caller's job.
type Display struct {
	pixels Frame
}

// Get returns the pixel at x, y.
func (d *Display) Get(x, y int) bool {
	return d.pixels[y][x]
}

// Flip toggles the pixel at x, y.
func (d *Display) Flip(x, y int) {
	d.pixels[y][x] = !d.pixels[y][x]
}

// Clear sets every pixel to v.
func (d *Display) Clear(v bool) {
	for y := range d.pixels {
		for x := range d.pixels[y] {
			d.pixels[y][x] = v
		}
	}
}

// Pixels returns a copy of the grid.
func (d *Display) Pixels() Frame {
	return d.pixels
}
