// SPDX-FileCopyrightText: © 2025 Olivier Meunier <olivier@neokraft.net>
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package app provides the command line interface. Each command
// registers itself with an init function and receives the common
// application flags on top of its own.
package app

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/cristalhq/acmd"

	"codeberg.org/readeck/aeopress/configs"
)

var commands []acmd.Command

const (
	bold        = "\033[1m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
	colorReset  = "\033[0m"
)

// appFlags holds the flags shared by every command.
type appFlags struct {
	configFile string
}

// Flags returns a new flag set carrying the common flags.
func (f *appFlags) Flags() *flag.FlagSet {
	fs := flag.NewFlagSet("", flag.ContinueOnError)
	fs.StringVar(&f.configFile, "config", "", "configuration file (config.toml when present)")
	return fs
}

// appPreRun loads the configuration file, then the environment
// overrides, and sets the process logger up. An explicitly named file
// must exist, the implicit config.toml may not.
func appPreRun(flags *appFlags) error {
	filename := flags.configFile
	if filename == "" {
		filename = "config.toml"
		if _, err := os.Stat(filename); err != nil {
			filename = ""
		}
	}

	if err := configs.LoadConfiguration(filename); err != nil {
		return fmt.Errorf("could not load configuration: %w", err)
	}

	initLogger()
	return nil
}

func fatal(msg string, err error) {
	fmt.Fprintf(os.Stderr, "%s%serror:%s %s", bold, colorRed, colorReset, msg)
	if err != nil {
		fmt.Fprintf(os.Stderr, ": %s", err)
	}
	fmt.Fprintln(os.Stderr)
	os.Exit(1)
}

// Run executes the command line and returns its error.
func Run() error {
	version := configs.Version()
	if t := configs.BuildTime(); !t.IsZero() {
		version += " (" + t.Format(time.DateOnly) + ")"
	}

	r := acmd.RunnerOf(commands, acmd.Config{
		AppName:        "aeopress",
		AppDescription: "Static page generator for answer engines",
		Version:        version,
	})

	return r.Run()
}
