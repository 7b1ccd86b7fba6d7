// SPDX-FileCopyrightText: © 2025 Olivier Meunier <olivier@neokraft.net>
//
// SPDX-License-Identifier: AGPL-3.0-only

package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/cristalhq/acmd"

	"codeberg.org/readeck/aeopress/docs"
	"codeberg.org/readeck/aeopress/internal/page"
	"codeberg.org/readeck/aeopress/pkg/aeoml"
)

func init() {
	commands = append(commands, acmd.Command{
		Name:        "docs",
		Description: "Write the AEOML format reference as HTML pages",
		ExecFunc:    runDocs,
	})
}

func runDocs(_ context.Context, args []string) error {
	var dest string

	var flags appFlags
	fs := flags.Flags()
	fs.StringVar(&dest, "o", "output", "output directory")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if err := appPreRun(&flags); err != nil {
		return err
	}

	pages, err := docs.Render()
	if err != nil {
		return err
	}

	w, err := page.NewWriter(dest)
	if err != nil {
		return err
	}

	names := make([]string, len(pages))
	for i, p := range pages {
		names[i] = p.Name
		files, err := w.WriteDocument(p.Name, &aeoml.Result{
			HTML: p.HTML,
			Meta: aeoml.Meta{Title: p.Title},
		})
		if err != nil {
			return err
		}
		for _, f := range files {
			fmt.Printf("  - %s\n", f)
		}
	}

	if _, err := w.WriteDocument("index", page.Index(names)); err != nil {
		return err
	}

	assets, err := docs.Assets()
	if err != nil {
		return err
	}
	for _, name := range slices.Sorted(maps.Keys(assets)) {
		p := filepath.Join(dest, name)
		if err := os.WriteFile(p, assets[name], 0o644); err != nil {
			return err
		}
		fmt.Printf("  - %s\n", p)
	}

	fmt.Printf("%s%sformat reference written to %s%s\n",
		bold, colorGreen, dest, colorReset)
	return nil
}
