package main

import (
	"fmt"
	"os"

	"github.com/sqweek/dialog"
)

/// LoadROM reads the program bytes from file. If no file was given the
/// user is asked to pick one.
///
func LoadROM(file string) (string, []byte, error) {
	if file == "" {
		var err error

		file, err = dialog.File().
			Filter("CHIP-8 ROM", "ch8", "c8").
			Filter("All files", "*").
			Title("Load CHIP-8 ROM").
			Load()
		if err != nil {
			return "", nil, fmt.Errorf("selecting rom: %w", err)
		}
	}

	program, err := os.ReadFile(file)
	if err != nil {
		return file, nil, fmt.Errorf("reading rom: %w", err)
	}

	return file, program, nil
}
