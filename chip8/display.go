package chip8

import (
	"math/bits"
	"strings"
)

const (
	/// DisplayWidth is the number of pixel columns.
	///
	DisplayWidth = 64

	/// DisplayHeight is the number of pixel rows.
	///
	DisplayHeight = 32
)

/// Frame is the 64x32 monochrome video memory. Each row is stored MSB
/// first, so pixel <0,y> is bit 63 of row y.
///
type Frame [DisplayHeight]uint64

/// Pixel returns true if the pixel at x, y is lit. Coordinates wrap.
///
func (f Frame) Pixel(x, y int) bool {
	return f[wrap(y, DisplayHeight)]&columnMask(x) != 0
}

/// Width returns the number of pixel columns.
///
func (f Frame) Width() int {
	return DisplayWidth
}

/// Height returns the number of pixel rows.
///
func (f Frame) Height() int {
	return DisplayHeight
}

/// Lit returns the number of lit pixels.
///
func (f Frame) Lit() int {
	n := 0
	for _, row := range f {
		n += bits.OnesCount64(row)
	}
	return n
}

/// String renders one line of text per row, a block for each lit pixel.
///
func (f Frame) String() string {
	var sb strings.Builder

	sb.Grow(DisplayHeight * (DisplayWidth*3 + 1))
	for _, row := range f {
		for x := 0; x < DisplayWidth; x++ {
			if row&columnMask(x) != 0 {
				sb.WriteRune('█')
			} else {
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}

/// Display owns the video memory. It is only changed by Clear and
/// DrawSprite.
///
type Display struct {
	frame Frame
}

/// Clear turns every pixel off.
///
func (d *Display) Clear() {
	d.frame = Frame{}
}

/// DrawSprite XORs each sprite byte onto a row starting at x, y. Every
/// pixel wraps around the screen edges independently. It returns 1 if
/// any lit pixel was turned off, otherwise 0.
///
func (d *Display) DrawSprite(x, y int, sprite []byte) byte {
	x = wrap(x, DisplayWidth)
	y = wrap(y, DisplayHeight)

	var erased uint64

	for r, s := range sprite {
		row := &d.frame[(y+r)%DisplayHeight]

		// place the sprite byte at column 0, then rotate so the columns
		// that fall off the right edge come back in on the left
		mask := bits.RotateLeft64(uint64(s)<<56, -x)

		erased |= *row & mask
		*row ^= mask
	}

	if erased != 0 {
		return 1
	}

	return 0
}

/// Pixel returns true if the pixel at x, y is lit.
///
func (d *Display) Pixel(x, y int) bool {
	return d.frame.Pixel(x, y)
}

/// Frame returns a copy of the video memory.
///
func (d *Display) Frame() Frame {
	return d.frame
}

func columnMask(x int) uint64 {
	return 1 << (DisplayWidth - 1 - wrap(x, DisplayWidth))
}

func wrap(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}
