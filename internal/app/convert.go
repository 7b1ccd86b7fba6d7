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

	"codeberg.org/readeck/aeopress/configs"
	"codeberg.org/readeck/aeopress/internal/page"
	"codeberg.org/readeck/aeopress/pkg/aeoml"
	"codeberg.org/readeck/aeopress/pkg/xmltree"
)

func init() {
	commands = append(commands, acmd.Command{
		Name:        "convert",
		Description: "Convert AEOML documents to their publishable artifacts",
		ExecFunc:    runConvert,
	})
}

func runConvert(_ context.Context, args []string) error {
	var dest string
	var markdown, compress bool

	var flags appFlags
	fs := flags.Flags()
	// nolint: errcheck
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "Usage: convert [arguments...] FILE...")
		fmt.Fprintln(fs.Output(), "  FILE")
		fmt.Fprintln(fs.Output(), "    \tAEOML document(s)")
		fs.PrintDefaults()
	}
	fs.StringVar(&dest, "o", "", "output directory")
	fs.BoolVar(&markdown, "md", false, "write a markdown rendition")
	fs.BoolVar(&compress, "gz", false, "write precompressed .gz siblings")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() == 0 {
		return errors.New("at least one source file is required")
	}

	if err := appPreRun(&flags); err != nil {
		return err
	}

	options := []page.WriterOption{
		page.WithMarkdown(markdown || configs.Config.Convert.Markdown),
		page.WithCompression(compress || configs.Config.Convert.Compress),
	}

	for _, src := range fs.Args() {
		files, err := convertFile(src, outputDir(src, dest), options...)
		if err != nil {
			return fmt.Errorf("%s: %w", src, err)
		}
		for _, p := range files {
			fmt.Printf("  - %s\n", p)
		}
	}

	fmt.Printf("%s%s%d document(s) converted%s\n",
		bold, colorGreen, fs.NArg(), colorReset)
	return nil
}

// convertFile converts one source document and writes its artifacts,
// returning the created paths.
func convertFile(src, dest string, options ...page.WriterOption) ([]string, error) {
	res, err := loadDocument(src)
	if err != nil {
		return nil, err
	}

	w, err := page.NewWriter(dest, options...)
	if err != nil {
		return nil, err
	}
	return w.WriteDocument(docName(src), res)
}

// loadDocument parses and transforms one source file.
func loadDocument(src string) (*aeoml.Result, error) {
	fd, err := os.Open(src)
	if err != nil {
		return nil, err
	}
	defer fd.Close() //nolint:errcheck

	doc, err := xmltree.Parse(fd)
	if err != nil {
		return nil, err
	}
	return aeoml.Transform(doc)
}

// docName returns the document name of a source file, its base name
// without the extension.
func docName(src string) string {
	return strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
}

// outputDir returns the destination directory for a source file. An
// explicit destination wins, then the configured one. Without either, a
// file located in a "source" directory maps to the sibling "output"
// directory and any other file converts in place.
func outputDir(src, dest string) string {
	if dest == "" {
		dest = configs.Config.Convert.OutputDir
	}
	if dest != "" {
		return dest
	}

	dir := filepath.Dir(src)
	if filepath.Base(dir) == "source" {
		return filepath.Join(filepath.Dir(dir), "output")
	}
	return dir
}
