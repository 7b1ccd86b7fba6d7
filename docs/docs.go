// SPDX-FileCopyrightText: © 2025 Olivier Meunier <olivier@neokraft.net>
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package docs embeds the authoring format reference and converts it
// to HTML fragments the page shell can wrap.
package docs

import (
	"bytes"
	"embed"
	"io/fs"
	"path"
	"slices"
	"strings"

	figure "github.com/mangoumbrella/goldmark-figure"
	"github.com/yuin/goldmark"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/parser"
)

//go:embed assets
var assetFiles embed.FS

// Document is one converted reference page.
type Document struct {
	Name  string
	Title string
	HTML  string
}

// Render converts every embedded page. Titles come from the markdown
// frontmatter, falling back to the file name.
func Render() ([]Document, error) {
	md := goldmark.New(
		goldmark.WithExtensions(meta.Meta, figure.Figure),
	)

	res := []Document{}
	err := fs.WalkDir(assetFiles, "assets", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(p, ".md") {
			return nil
		}

		src, err := assetFiles.ReadFile(p)
		if err != nil {
			return err
		}

		buf := new(bytes.Buffer)
		ctx := parser.NewContext()
		if err := md.Convert(src, buf, parser.WithContext(ctx)); err != nil {
			return err
		}

		name := strings.TrimSuffix(path.Base(p), ".md")
		title, _ := meta.Get(ctx)["title"].(string)
		if title == "" {
			title = name
		}

		res = append(res, Document{
			Name:  name,
			Title: title,
			HTML:  strings.TrimRight(buf.String(), "\n"),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(res, func(a, b Document) int {
		return strings.Compare(a.Name, b.Name)
	})
	return res, nil
}

// Assets returns the embedded non markdown files, figures and diagrams
// the pages link to, keyed by base name.
func Assets() (map[string][]byte, error) {
	res := map[string][]byte{}
	err := fs.WalkDir(assetFiles, "assets", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || strings.HasSuffix(p, ".md") {
			return nil
		}

		b, err := assetFiles.ReadFile(p)
		if err != nil {
			return err
		}
		res[path.Base(p)] = b
		return nil
	})
	return res, err
}
