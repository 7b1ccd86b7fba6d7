// SPDX-FileCopyrightText: © 2025 Olivier Meunier <olivier@neokraft.net>
//
// SPDX-License-Identifier: AGPL-3.0-only

package aeoml

import (
	"fmt"

	"codeberg.org/readeck/aeopress/pkg/jsonld"
	"codeberg.org/readeck/aeopress/pkg/xmltree"
)

// mapBreadcrumbList trusts the source: positions are coerced to numbers
// but never renumbered or sorted, and the page title comes from the last
// item in source order, not from the highest position.
func mapBreadcrumbList(root *xmltree.Node) (*Result, error) {
	items := []any{}
	lastName := ""

	f := new(fragment)
	f.line("<nav>")
	f.line("<ol>")

	for _, w := range root.All("itemListElement") {
		li := w.Get("ListItem")
		if li == nil {
			continue
		}

		position, err := toNumber(text(li.Get("position")))
		if err != nil {
			return nil, fmt.Errorf("breadcrumb position: %w", err)
		}

		items = append(items, jsonld.New("ListItem").
			Set("position", position).
			Set("name", textOf(li.Get("name"))).
			Set("item", textOf(li.Get("item"))))

		href := text(li.Get("item"))
		if href == "" {
			href = "#"
		}
		lastName = text(li.Get("name"))
		f.line(`<li><a href="%s">%s</a></li>`, escape(href), escape(lastName))
	}

	f.line("</ol>")
	f.line("</nav>")

	obj := jsonld.NewRoot("BreadcrumbList").
		Set("itemListElement", items).
		Clean()

	return &Result{
		HTML:   f.String(),
		JSONLD: obj,
		Meta:   Meta{Title: lastName},
	}, nil
}
