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

package main

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/massung/chip-8/chip8"
	"github.com/massung/chip-8/render"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
	"github.com/veandco/go-sdl2/sdl"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

const (
	/// ClockRate is how often a CHIP-8 instruction is executed. The
	/// COSMAC VIP managed roughly 500 instructions per second.
	///
	ClockRate = time.Second / 500

	/// RefreshRate is how often the screen is redrawn and the buzzer fed.
	///
	RefreshRate = time.Second / 60
)

var (
	/// The CHIP-8 virtual machine.
	///
	VM *chip8.CHIP_8

	/// Logger for host and interpreter diagnostics.
	///
	Logger *log.Logger

	/// Halted is set once the VM hit an unrecoverable error.
	///
	Halted bool

	/// palettes selectable with -palette.
	///
	palettes = map[string]render.Palette{
		"classic": render.Classic,
		"lcd":     render.LCD,
	}
)

func init() {
	runtime.LockOSThread()
}

func main() {
	opts, err := ParseFlags(os.Args[1:])
	if err != nil {
		var usageErr *UsageError
		if errors.As(err, &usageErr) {
			printBanner()
			fmt.Println(usageErr.Error())
			usageErr.ShowUsage(os.Stdout)
		}
		os.Exit(1)
	}

	Logger = CreateLogger(opts.Debug, opts.Quiet)
	if !opts.Quiet {
		printBanner()
	}

	file, program, err := LoadROM(opts.ROM)
	if err != nil {
		Logger.Fatal("Loading ROM failed", log.Err(err))
	}

	// create a new CHIP-8 virtual machine, must happen early!
	VM = chip8.New(chip8.DefaultConfig(), chip8.WithLogger(Logger))

	if err := VM.LoadProgram(program); err != nil {
		Logger.Fatal("Loading ROM failed", log.String("file", file), log.Err(err))
	}
	Logger.Info("Loaded ROM", log.String("file", file), log.Int("size", len(program)))

	if opts.Terminal {
		if err := RunTerminal(opts); err != nil {
			Logger.Fatal("Terminal output failed", log.Err(err))
		}
		return
	}

	if err := RunWindow(opts, file); err != nil {
		Logger.Fatal("Video output failed", log.Err(err))
	}
}

func printBanner() {
	fmt.Println("[---------------------------------]")
	fmt.Println("[ chip-8 - CHIP-8 virtual machine ]")
	fmt.Printf("[---------------------------------]\n\n")
	fmt.Printf("version: %s\n\n", buildinfo.Version(version, commit, date))
}

/// Step the virtual machine once. Unknown opcodes were already logged
/// by the VM and are skipped; anything else halts emulation.
///
func Step() {
	if Halted {
		return
	}

	if err := VM.Run(); err != nil && !chip8.IsRecoverable(err) {
		Logger.Error("Emulation halted", log.Err(err), log.String("registers", VM.Registers().String()))
		Halted = true
	}
}

/// Reboot the loaded program.
///
func Reboot() {
	VM.Reset()
	Halted = false

	Logger.Info("Rebooted")
}

/// RunWindow opens the SDL window and runs until it is closed.
///
func RunWindow(opts Options, file string) error {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_AUDIO); err != nil {
		return err
	}
	defer sdl.Quit()

	if err := InitScreen(opts.Scale, palettes[opts.Palette]); err != nil {
		return err
	}
	defer CloseScreen()

	Window.SetTitle("CHIP-8 - " + file)

	// a missing audio device is not fatal, the game is just silent
	if err := InitAudio(); err != nil {
		Logger.Warn("Audio disabled", log.Err(err))
	}
	defer CloseAudio()

	// set processor speed and refresh rate
	clock := time.NewTicker(ClockRate)
	video := time.NewTicker(RefreshRate)
	defer clock.Stop()
	defer video.Stop()

	// loop until window closed or user quit
	for ProcessEvents() {
		select {
		case <-video.C:
			RefreshScreen()
			RefreshAudio()
		case <-clock.C:
			Step()
		}
	}

	return nil
}
