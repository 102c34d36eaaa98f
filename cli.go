package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/retroenv/retrogolib/log"
)

/// Options are the host settings read from the command line.
///
type Options struct {
	ROM      string
	Scale    int
	Palette  string
	Terminal bool
	Frames   int
	Debug    bool
	Quiet    bool
}

/// UsageError is returned when the command line could not be parsed.
///
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

/// ShowUsage prints the usage text and all flag defaults.
///
func (e *UsageError) ShowUsage(w io.Writer) {
	fmt.Fprintf(w, "usage: chip-8 [options] [rom file]\n\n")
	e.flags.SetOutput(w)
	e.flags.PrintDefaults()
	fmt.Fprintln(w)
}

/// ParseFlags parses the command line arguments (without the program name).
///
func ParseFlags(args []string) (Options, error) {
	flags := flag.NewFlagSet("chip-8", flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	opts := Options{}
	flags.IntVar(&opts.Scale, "scale", 10, "size of each CHIP-8 pixel in window pixels")
	flags.StringVar(&opts.Palette, "palette", "classic", "display colors: classic or lcd")
	flags.BoolVar(&opts.Terminal, "term", false, "render to the terminal instead of opening a window")
	flags.IntVar(&opts.Frames, "frames", 0, "stop after this many frames in terminal mode, 0 runs forever")
	flags.BoolVar(&opts.Debug, "debug", false, "trace every executed instruction")
	flags.BoolVar(&opts.Quiet, "q", false, "only log errors")

	if err := flags.Parse(args); err != nil {
		return opts, &UsageError{flags: flags, msg: err.Error()}
	}

	switch rest := flags.Args(); len(rest) {
	case 0:
	case 1:
		opts.ROM = rest[0]
	default:
		return opts, &UsageError{flags: flags, msg: fmt.Sprintf("unexpected argument %s", rest[1])}
	}

	if opts.Scale < 1 {
		return opts, &UsageError{flags: flags, msg: "scale must be at least 1"}
	}
	if opts.Frames < 0 {
		return opts, &UsageError{flags: flags, msg: "frames can not be negative"}
	}
	if _, ok := palettes[opts.Palette]; !ok {
		return opts, &UsageError{flags: flags, msg: fmt.Sprintf("unknown palette %s", opts.Palette)}
	}
	if opts.Terminal && opts.ROM == "" {
		return opts, &UsageError{flags: flags, msg: "terminal mode needs a rom file"}
	}

	return opts, nil
}

/// CreateLogger creates a logger for the selected verbosity.
///
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}
