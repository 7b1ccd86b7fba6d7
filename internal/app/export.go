// SPDX-FileCopyrightText: © 2024 Olivier Meunier <olivier@neokraft.net>
//
// SPDX-License-Identifier: AGPL-3.0-only

package app

import (
	"archive/zip"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/cristalhq/acmd"
)

func init() {
	commands = append(commands, acmd.Command{
		Name:        "export",
		Description: "Pack a build directory into a zip file",
		ExecFunc:    runExport,
	})
}

func runExport(_ context.Context, args []string) error {
	var dest string

	var flags appFlags
	fs := flags.Flags()
	// nolint: errcheck
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "Usage: export [arguments...] DIR")
		fmt.Fprintln(fs.Output(), "  DIR")
		fmt.Fprintln(fs.Output(), "    \tbuild directory")
		fs.PrintDefaults()
	}
	fs.StringVar(&dest, "o", "", "destination file (DIR.zip when empty)")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	dir := strings.TrimSpace(fs.Arg(0))
	if dir == "" {
		return errors.New("build directory is required")
	}

	if err := appPreRun(&flags); err != nil {
		return err
	}

	if dest == "" {
		dest = filepath.Base(filepath.Clean(dir)) + ".zip"
	}

	fmt.Fprintf(os.Stdout, "%sstarting export%s...\n", colorYellow, colorReset)

	n, err := exportDir(dir, dest)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "%d file(s) packed\n", n)
	fmt.Fprintf(os.Stdout, "%s%s%s%s created\n", bold, colorGreen, dest, colorReset)
	return nil
}

// exportDir packs every file under dir into a zip archive at dest.
// The build manifest and its write ahead files stay out of the
// archive, they only matter to the directory they live in.
func exportDir(dir, dest string) (int, error) {
	fd, err := os.Create(dest)
	if err != nil {
		return 0, err
	}
	defer fd.Close() //nolint:errcheck

	zw := zip.NewWriter(fd)

	count := 0
	err = filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		name := filepath.ToSlash(rel)
		if strings.HasPrefix(name, "manifest.db") {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		hdr, err := zip.FileInfoHeader(info)
		if err != nil {
			return err
		}
		hdr.Name = name
		hdr.Method = zip.Deflate

		w, err := zw.CreateHeader(hdr)
		if err != nil {
			return err
		}

		src, err := os.Open(p)
		if err != nil {
			return err
		}
		defer src.Close() //nolint:errcheck

		if _, err = io.Copy(w, src); err != nil {
			return err
		}

		fmt.Fprintf(os.Stdout, "  - %s\n", name)
		count++
		return nil
	})
	if err != nil {
		return 0, err
	}

	if err = zw.Close(); err != nil {
		return 0, err
	}
	return count, nil
}
