/* Copyright (c) 2017 Jeffrey Massung
 *
 * This software is provided 'as-is', without any express or implied
 * warranty.  In no event will the authors be held liable for any damages
 * arising from the use of this software.
 *
 * Permission is granted to anyone to use this software for any purpose,
 * including commercial applications, and to alter it and redistribute it
 * freely, subject to the following restrictions:
 *
 * 1. The origin of this software must not be misrepresented; you must not
 *    claim that you wrote the original software. If you use this software
 *    in a product, an acknowledgment in the product documentation would be
 *    appreciated but is not required.
 *
 * 2. Altered source versions must be plainly marked as such, and must not be
 *    misrepresented as being the original software.
 *
 * 3. This notice may not be removed or altered from any source distribution.
 */

// Package render turns CHIP-8 video memory into something a host can
// present: an RGBA image for a window, or text for a terminal.
package render

import (
	"bufio"
	"image"
	"image/color"
	"io"
	"strings"

	"github.com/massung/chip-8/chip8"
	"golang.org/x/image/colornames"
	"golang.org/x/term"
)

/// Palette holds the colors of lit and unlit pixels.
///
type Palette struct {
	On  color.RGBA
	Off color.RGBA
}

var (
	// Classic is white on black.
	Classic = Palette{On: colornames.White, Off: colornames.Black}

	// LCD mimics a greenish liquid crystal panel.
	LCD = Palette{On: colornames.Darkslategray, Off: colornames.Darkseagreen}
)

/// RGBA expands each logical pixel of the frame into a scale x scale
/// block of opaque color.
///
func RGBA(frame chip8.Frame, palette Palette, scale int) *image.RGBA {
	if scale < 1 {
		scale = 1
	}

	w, h := frame.Width(), frame.Height()
	img := image.NewRGBA(image.Rect(0, 0, w*scale, h*scale))

	for py := 0; py < h*scale; py++ {
		row := img.Pix[py*img.Stride : py*img.Stride+w*scale*4]

		for px := 0; px < w*scale; px++ {
			c := palette.Off
			if frame.Pixel(px/scale, py/scale) {
				c = palette.On
			}

			row[px*4+0] = c.R
			row[px*4+1] = c.G
			row[px*4+2] = c.B
			row[px*4+3] = 0xFF
		}
	}

	return img
}

/// Terminal writes frames as text.
///
type Terminal struct {
	w  io.Writer
	fd int
}

/// NewTerminal returns a Terminal writing to w. If fd refers to a tty,
/// the cursor is homed before each frame and rows are clipped to the
/// terminal width; otherwise frames are written one after another.
///
func NewTerminal(w io.Writer, fd int) *Terminal {
	return &Terminal{w: w, fd: fd}
}

/// IsTerminal returns true if the output is an interactive terminal.
///
func (t *Terminal) IsTerminal() bool {
	return t.fd >= 0 && term.IsTerminal(t.fd)
}

/// Draw writes a single frame.
///
func (t *Terminal) Draw(frame chip8.Frame) error {
	out := bufio.NewWriter(t.w)

	width := frame.Width()
	if t.IsTerminal() {
		if cols, _, err := term.GetSize(t.fd); err == nil && cols < width {
			width = cols
		}

		// cursor home
		if _, err := out.WriteString("\x1b[H"); err != nil {
			return err
		}
	}

	for _, line := range strings.Split(strings.TrimSuffix(frame.String(), "\n"), "\n") {
		runes := []rune(line)
		if len(runes) > width {
			runes = runes[:width]
		}

		if _, err := out.WriteString(string(runes) + "\n"); err != nil {
			return err
		}
	}

	return out.Flush()
}
