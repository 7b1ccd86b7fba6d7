// SPDX-FileCopyrightText: © 2025 Olivier Meunier <olivier@neokraft.net>
//
// SPDX-License-Identifier: AGPL-3.0-only

package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"sync/atomic"

	"github.com/cristalhq/acmd"
	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/sync/errgroup"

	"codeberg.org/readeck/aeopress/configs"
	"codeberg.org/readeck/aeopress/internal/manifest"
	"codeberg.org/readeck/aeopress/internal/page"
)

func init() {
	commands = append(commands, acmd.Command{
		Name:        "batch",
		Description: "Convert a source directory and copy its assets",
		ExecFunc:    runBatch,
	})
}

func runBatch(ctx context.Context, args []string) error {
	var dest string
	var force, markdown, compress bool

	var flags appFlags
	fs := flags.Flags()
	// nolint: errcheck
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "Usage: batch [arguments...] DIR")
		fmt.Fprintln(fs.Output(), "  DIR")
		fmt.Fprintln(fs.Output(), "    \tsource directory")
		fs.PrintDefaults()
	}
	fs.StringVar(&dest, "o", "", "output directory")
	fs.BoolVar(&force, "f", false, "convert unchanged documents too")
	fs.BoolVar(&markdown, "md", false, "write markdown renditions")
	fs.BoolVar(&compress, "gz", false, "write precompressed .gz siblings")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	dir := fs.Arg(0)
	if dir == "" {
		return errors.New("source directory is required")
	}

	if err := appPreRun(&flags); err != nil {
		return err
	}

	b := &batch{
		dir:   filepath.Clean(dir),
		dest:  batchOutputDir(dir, dest),
		force: force,
		options: []page.WriterOption{
			page.WithMarkdown(markdown || configs.Config.Convert.Markdown),
			page.WithCompression(compress || configs.Config.Convert.Compress),
		},
	}
	return b.run(ctx)
}

// batchOutputDir is the directory level counterpart of outputDir: a
// whole source directory always maps to its sibling "output".
func batchOutputDir(dir, dest string) string {
	if dest == "" {
		dest = configs.Config.Convert.OutputDir
	}
	if dest != "" {
		return dest
	}
	return filepath.Join(filepath.Dir(filepath.Clean(dir)), "output")
}

type batch struct {
	dir     string
	dest    string
	force   bool
	options []page.WriterOption

	converted atomic.Int64
	skipped   atomic.Int64
}

func (b *batch) run(ctx context.Context) error {
	if err := os.MkdirAll(b.dest, 0o755); err != nil {
		return err
	}

	m, err := manifest.Open(filepath.Join(b.dest, "manifest.db"))
	if err != nil {
		return err
	}
	defer func() {
		if err := m.Close(); err != nil {
			fatal("error closing the manifest", err)
		}
	}()

	sources, assets, err := b.collect()
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	workers := configs.Config.Convert.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	g.SetLimit(workers)

	for _, src := range sources {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return b.convertSource(m, src)
		})
	}
	for _, src := range assets {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return b.copyAsset(src)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	// The index lists every document, current or not.
	names := make([]string, len(sources))
	for i, src := range sources {
		names[i] = b.relName(src)
	}
	slices.Sort(names)

	w, err := page.NewWriter(b.dest, b.options...)
	if err != nil {
		return err
	}
	if _, err := w.WriteDocument("index", page.Index(names)); err != nil {
		return err
	}

	uid, err := m.AddBuild(b.dir, len(sources), len(assets))
	if err != nil {
		return err
	}

	fmt.Printf("%s%sbuild %s%s %d converted, %d unchanged, %d asset(s)\n",
		bold, colorGreen, uid, colorReset,
		b.converted.Load(), b.skipped.Load(), len(assets))
	return nil
}

// collect walks the source directory and splits documents from assets.
// The destination directory is left alone when it is nested in the
// source one, and so is the manifest database.
func (b *batch) collect() (sources, assets []string, err error) {
	err = filepath.WalkDir(b.dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p == b.dest {
				return filepath.SkipDir
			}
			return nil
		}

		if strings.EqualFold(filepath.Ext(p), ".xml") {
			sources = append(sources, p)
		} else {
			assets = append(assets, p)
		}
		return nil
	})
	return
}

// relName is a source file's document name, its path relative to the
// source directory without the extension, slash separated.
func (b *batch) relName(src string) string {
	rel, err := filepath.Rel(b.dir, src)
	if err != nil {
		rel = filepath.Base(src)
	}
	return strings.TrimSuffix(filepath.ToSlash(rel), filepath.Ext(rel))
}

func (b *batch) convertSource(m *manifest.Manifest, src string) error {
	sum, err := manifest.Checksum(src)
	if err != nil {
		return err
	}
	name := b.relName(src)

	if !b.force {
		changed, err := m.Changed(name, sum)
		if err != nil {
			return err
		}
		if !changed {
			slog.Debug("unchanged", slog.String("source", src))
			b.skipped.Add(1)
			return nil
		}
	}

	w, err := page.NewWriter(b.dest, b.options...)
	if err != nil {
		return err
	}

	res, err := loadDocument(src)
	if err != nil {
		return fmt.Errorf("%s: %w", src, err)
	}
	files, err := w.WriteDocument(name, res)
	if err != nil {
		return fmt.Errorf("%s: %w", src, err)
	}
	if err := m.RecordDocument(name, sum); err != nil {
		return err
	}

	slog.Info("converted",
		slog.String("source", src),
		slog.Int("files", len(files)),
	)
	b.converted.Add(1)
	return nil
}

func (b *batch) copyAsset(src string) error {
	mt, err := mimetype.DetectFile(src)
	if err != nil {
		return err
	}

	rel, err := filepath.Rel(b.dir, src)
	if err != nil {
		return err
	}
	dst := filepath.Join(b.dest, rel)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	if err := copyFile(src, dst); err != nil {
		return err
	}

	slog.Info("asset",
		slog.String("file", rel),
		slog.String("type", mt.String()),
	)
	return nil
}

func copyFile(src, dst string) error {
	r, err := os.Open(src)
	if err != nil {
		return err
	}
	defer r.Close() //nolint:errcheck

	w, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err = io.Copy(w, r); err != nil {
		w.Close() //nolint:errcheck
		return err
	}
	return w.Close()
}
