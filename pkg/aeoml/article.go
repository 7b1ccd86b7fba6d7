// SPDX-FileCopyrightText: © 2025 Olivier Meunier <olivier@neokraft.net>
//
// SPDX-License-Identifier: AGPL-3.0-only

package aeoml

import (
	"codeberg.org/readeck/aeopress/pkg/jsonld"
	"codeberg.org/readeck/aeopress/pkg/xmltree"
)

// authorNode resolves the author union. The variant is decided by which
// child key is present, Person first.
func authorNode(n *xmltree.Node) any {
	for _, typ := range []string{"Person", "Organization"} {
		if v := n.Get(typ); v != nil {
			return jsonld.New(typ).
				Set("name", textOf(v.Get("name"))).
				Set("url", textOf(v.Get("url")))
		}
	}
	return nil
}

func mapArticle(root *xmltree.Node) (*Result, error) {
	headline := text(root.Get("headline"))
	description := text(root.Get("description"))

	obj := jsonld.NewRoot("Article").
		Set("headline", textOf(root.Get("headline"))).
		Set("datePublished", textOf(root.Get("datePublished"))).
		Set("author", authorNode(root.Get("author"))).
		Set("image", imageURL(root.Get("image"))).
		Clean()

	f := new(fragment)
	heading := headline
	if heading == "" {
		heading = "Article"
	}
	f.line("<h1>%s</h1>", escape(heading))

	body := root.Get("body")
	for _, p := range body.All("paragraph") {
		f.line("<p>%s</p>", escape(p.Text()))
	}
	for _, s := range body.All("section") {
		f.line("<section>")
		f.line("<h2>%s</h2>", escape(text(s.Get("heading"))))
		for _, p := range s.All("paragraph") {
			f.line("<p>%s</p>", escape(p.Text()))
		}
		f.line("</section>")
	}

	return &Result{
		HTML:   f.String(),
		JSONLD: obj,
		Meta:   Meta{Title: headline, Description: description},
	}, nil
}
