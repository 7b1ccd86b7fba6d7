// SPDX-FileCopyrightText: © 2025 Olivier Meunier <olivier@neokraft.net>
//
// SPDX-License-Identifier: AGPL-3.0-only

package aeoml

import (
	"codeberg.org/readeck/aeopress/pkg/jsonld"
	"codeberg.org/readeck/aeopress/pkg/xmltree"
)

func sameAsList(root *xmltree.Node) []any {
	l := []any{}
	for _, n := range root.All("sameAs") {
		l = append(l, n.Text())
	}
	return l
}

// mapOrganization handles the OrgRoot document root. The tag diverges
// from the emitted "@type", which is plain "Organization".
func mapOrganization(root *xmltree.Node) (*Result, error) {
	name := text(root.Get("name"))
	url := text(root.Get("url"))

	contacts := []any{}
	for _, w := range root.All("contactPoint") {
		c := w.Get("ContactPoint")
		if c == nil {
			continue
		}
		contacts = append(contacts, jsonld.New("ContactPoint").
			Set("telephone", textOf(c.Get("telephone"))).
			Set("contactType", textOf(c.Get("contactType"))))
	}

	obj := jsonld.NewRoot("Organization").
		Set("name", textOf(root.Get("name"))).
		Set("url", textOf(root.Get("url"))).
		Set("logo", imageURL(root.Get("logo"))).
		Set("sameAs", sameAsList(root)).
		Set("contactPoint", contacts).
		Clean()

	f := new(fragment)
	f.line("<h1>%s</h1>", escape(name))
	if url != "" {
		f.line(`<p><a href="%s">%s</a></p>`, escape(url), escape(url))
	}

	return &Result{
		HTML:   f.String(),
		JSONLD: obj,
		Meta:   Meta{Title: name},
	}, nil
}
