// SPDX-FileCopyrightText: © 2025 Olivier Meunier <olivier@neokraft.net>
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package page assembles complete HTML pages around converted documents
// and writes their artifacts (page, JSON-LD, optional markdown rendition,
// optional precompressed siblings).
package page

import (
	"embed"
	"io"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"github.com/CloudyKit/jet/v6"
	"github.com/araddon/dateparse"

	"codeberg.org/readeck/aeopress/configs"
	"codeberg.org/readeck/aeopress/pkg/aeoml"
	"codeberg.org/readeck/aeopress/pkg/jsonld"
)

//go:embed templates
var templateFiles embed.FS

// Shell renders page templates. The JSON-LD script block receives the
// graph serialized beforehand, inserted raw; title and description go
// through the template's escaping.
type Shell struct {
	views *jet.Set
}

// NewShell loads the embedded templates.
func NewShell() (*Shell, error) {
	loader := jet.NewInMemLoader()

	err := fs.WalkDir(templateFiles, "templates", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		b, err := templateFiles.ReadFile(p)
		if err != nil {
			return err
		}
		loader.Set(strings.TrimPrefix(p, "templates/"), string(b))
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &Shell{views: jet.NewSet(loader)}, nil
}

// RenderPage writes the full page for a converted document. name is the
// document's base name, used for the title fallback and the canonical
// URL. A nil JSON-LD graph (index or documentation pages) only drops the
// script block.
func (s *Shell) RenderPage(w io.Writer, name string, res *aeoml.Result) error {
	t, err := s.views.GetTemplate("page.jet.html")
	if err != nil {
		return err
	}

	title := res.Meta.Title
	if title == "" {
		title = name
	}
	if title == "" {
		title = configs.Config.Site.Name
	}

	graph := ""
	if res.JSONLD != nil {
		graph = res.JSONLD.String()
	}

	vars := make(jet.VarMap).
		Set("lang", configs.Config.Site.Lang).
		Set("title", title).
		Set("description", metaDescription(res)).
		Set("published", publishedTime(res.JSONLD)).
		Set("canonical", canonicalURL(name)).
		Set("generator", "AEOPress/"+configs.Version()).
		Set("jsonLD", graph).
		Set("fragment", res.HTML)

	return t.Execute(w, vars, nil)
}

// publishedTime normalizes a datePublished value to RFC 3339 for the
// article:published_time meta tag. The graph value itself stays whatever
// the source declared.
func publishedTime(o *jsonld.Object) string {
	if o == nil {
		return ""
	}
	s, ok := o.Get("datePublished").(string)
	if !ok || s == "" {
		return ""
	}
	t, err := dateparse.ParseAny(s)
	if err != nil {
		return ""
	}
	return t.Format(time.RFC3339)
}

func canonicalURL(name string) string {
	base := configs.Config.Site.BaseURL
	if base == "" || name == "" {
		return ""
	}
	u, err := url.JoinPath(base, name+".html")
	if err != nil {
		return ""
	}
	return u
}
