// SPDX-FileCopyrightText: © 2025 Olivier Meunier <olivier@neokraft.net>
//
// SPDX-License-Identifier: AGPL-3.0-only

package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cristalhq/acmd"

	"codeberg.org/readeck/aeopress/internal/manifest"
)

func init() {
	commands = append(commands, acmd.Command{
		Name:        "status",
		Description: "Show the build manifest of a source directory",
		ExecFunc:    runStatus,
	})
}

func runStatus(_ context.Context, args []string) error {
	var dest string

	var flags appFlags
	fs := flags.Flags()
	// nolint: errcheck
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "Usage: status [arguments...] DIR")
		fmt.Fprintln(fs.Output(), "  DIR")
		fmt.Fprintln(fs.Output(), "    \tsource directory")
		fs.PrintDefaults()
	}
	fs.StringVar(&dest, "o", "", "build directory")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	dir := strings.TrimSpace(fs.Arg(0))
	if dir == "" {
		return errors.New("source directory is required")
	}

	if err := appPreRun(&flags); err != nil {
		return err
	}

	path := filepath.Join(batchOutputDir(dir, dest), "manifest.db")
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("no manifest at %s, run batch first", path)
	}

	m, err := manifest.Open(path)
	if err != nil {
		return err
	}
	defer func() {
		if err := m.Close(); err != nil {
			fatal("error closing the manifest", err)
		}
	}()

	b, err := m.LastBuild()
	switch {
	case errors.Is(err, manifest.ErrNotFound):
		fmt.Fprintf(os.Stdout, "%sno build recorded%s\n", colorYellow, colorReset)
		return nil
	case err != nil:
		return err
	}

	fmt.Fprintf(os.Stdout, "%slast build%s %s%s%s\n", bold, colorReset, colorGreen, b.UID, colorReset)
	fmt.Fprintf(os.Stdout, "  created   %s\n", b.Created.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(os.Stdout, "  source    %s\n", b.Source)
	fmt.Fprintf(os.Stdout, "  documents %d\n", b.Documents)
	fmt.Fprintf(os.Stdout, "  assets    %d\n", b.Assets)

	count := 0
	for d, err := range m.Documents() {
		if err != nil {
			return err
		}
		if count == 0 {
			fmt.Fprintln(os.Stdout, "")
		}
		fmt.Fprintf(os.Stdout, "  - %s  %s\n",
			d.Updated.Local().Format("2006-01-02 15:04"), d.Name)
		count++
	}
	fmt.Fprintf(os.Stdout, "\n%d document(s) recorded\n", count)
	return nil
}
