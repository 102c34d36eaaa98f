package chip8

import (
	"strings"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestDisplayClear(t *testing.T) {
	var d Display

	d.DrawSprite(10, 10, []byte{0xFF, 0xFF})
	d.DrawSprite(60, 31, []byte{0xAA, 0x55, 0xFF})
	assert.True(t, d.Frame().Lit() > 0)

	d.Clear()
	for y := 0; y < DisplayHeight; y++ {
		for x := 0; x < DisplayWidth; x++ {
			assert.False(t, d.Pixel(x, y))
		}
	}
}

func TestDisplayXORSelfInverse(t *testing.T) {
	var d Display

	d.DrawSprite(2, 4, []byte{0x40})
	before := d.Frame()

	sprite := []byte{0x3C, 0x42, 0x81}
	assert.Equal(t, byte(1), d.DrawSprite(2, 3, sprite))
	assert.Equal(t, byte(1), d.DrawSprite(2, 3, sprite))
	assert.Equal(t, before, d.Frame())
}

func TestDisplayCollision(t *testing.T) {
	var d Display

	assert.Equal(t, byte(0), d.DrawSprite(0, 0, []byte{0xF0}))
	assert.Equal(t, byte(0), d.DrawSprite(4, 0, []byte{0xF0}))
	assert.Equal(t, byte(1), d.DrawSprite(7, 0, []byte{0x80}))
	assert.False(t, d.Pixel(7, 0))
}

func TestDisplayWrapColumns(t *testing.T) {
	var d Display

	d.DrawSprite(60, 0, []byte{0xFF})

	for _, x := range []int{60, 61, 62, 63, 0, 1, 2, 3} {
		assert.True(t, d.Pixel(x, 0))
	}
	assert.False(t, d.Pixel(4, 0))
	assert.False(t, d.Pixel(59, 0))
	assert.Equal(t, 8, d.Frame().Lit())
}

func TestDisplayWrapRows(t *testing.T) {
	var d Display

	d.DrawSprite(0, 30, []byte{0x80, 0x80, 0x80, 0x80})

	for _, y := range []int{30, 31, 0, 1} {
		assert.True(t, d.Pixel(0, y))
	}
	assert.False(t, d.Pixel(0, 2))
}

func TestDisplayWrapOrigin(t *testing.T) {
	var d Display

	// origins are taken modulo the screen size
	d.DrawSprite(64+5, 32+6, []byte{0x80})
	assert.True(t, d.Pixel(5, 6))
}

func TestFrameString(t *testing.T) {
	var d Display

	d.DrawSprite(0, 0, []byte{0xA0})

	lines := strings.Split(d.Frame().String(), "\n")
	assert.Equal(t, DisplayHeight+1, len(lines))
	assert.True(t, strings.HasPrefix(lines[0], "█ █ "))
	assert.Equal(t, strings.Repeat(" ", DisplayWidth), lines[1])
}
