package main

import (
	"fmt"
	"image/color"
	"image/png"
	"os"

	"github.com/massung/chip-8/chip8"
	"github.com/massung/chip-8/render"
	"github.com/retroenv/retrogolib/log"
	"github.com/veandco/go-sdl2/sdl"
)

var (
	/// The SDL Window and Renderer.
	///
	Window   *sdl.Window
	Renderer *sdl.Renderer

	/// Palette and Scale used to present the CHIP-8 video memory.
	///
	Palette render.Palette
	Scale   int
)

/// InitScreen creates the window and renderer for the CHIP-8 display.
///
func InitScreen(scale int, palette render.Palette) error {
	var err error

	Scale = scale
	Palette = palette

	w := int32(chip8.DisplayWidth * scale)
	h := int32(chip8.DisplayHeight * scale)

	if Window, Renderer, err = sdl.CreateWindowAndRenderer(w, h, sdl.WINDOW_SHOWN); err != nil {
		return fmt.Errorf("creating window: %w", err)
	}

	return nil
}

/// CloseScreen destroys the renderer and window.
///
func CloseScreen() {
	if Renderer != nil {
		_ = Renderer.Destroy()
	}
	if Window != nil {
		_ = Window.Destroy()
	}
}

/// RefreshScreen with the CHIP-8 video memory.
///
func RefreshScreen() {
	frame := VM.Frame()

	// the background color for the screen
	setDrawColor(Palette.Off)
	_ = Renderer.Clear()

	// set the pixel color
	setDrawColor(Palette.On)

	// draw all the lit pixels as scaled blocks
	for y := 0; y < frame.Height(); y++ {
		for x := 0; x < frame.Width(); x++ {
			if frame.Pixel(x, y) {
				_ = Renderer.FillRect(&sdl.Rect{
					X: int32(x * Scale),
					Y: int32(y * Scale),
					W: int32(Scale),
					H: int32(Scale),
				})
			}
		}
	}

	Renderer.Present()
}

/// Screenshot writes the current CHIP-8 video memory to a PNG file.
///
func Screenshot() {
	file := fmt.Sprintf("chip8-%06d.png", VM.Cycles())

	f, err := os.Create(file)
	if err != nil {
		Logger.Error("Screenshot failed", log.Err(err))
		return
	}
	defer f.Close()

	if err := png.Encode(f, render.RGBA(VM.Frame(), Palette, Scale)); err != nil {
		Logger.Error("Screenshot failed", log.Err(err))
		return
	}

	Logger.Info("Screenshot saved", log.String("file", file))
}

func setDrawColor(c color.RGBA) {
	_ = Renderer.SetDrawColor(c.R, c.G, c.B, c.A)
}
