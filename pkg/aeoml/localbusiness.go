// SPDX-FileCopyrightText: © 2025 Olivier Meunier <olivier@neokraft.net>
//
// SPDX-License-Identifier: AGPL-3.0-only

package aeoml

import (
	"codeberg.org/readeck/aeopress/pkg/jsonld"
	"codeberg.org/readeck/aeopress/pkg/xmltree"
)

func postalAddress(n *xmltree.Node) any {
	a := n.Get("PostalAddress")
	if a == nil {
		return nil
	}
	return jsonld.New("PostalAddress").
		Set("streetAddress", textOf(a.Get("streetAddress"))).
		Set("addressLocality", textOf(a.Get("addressLocality"))).
		Set("addressRegion", textOf(a.Get("addressRegion"))).
		Set("postalCode", textOf(a.Get("postalCode"))).
		Set("addressCountry", textOf(a.Get("addressCountry")))
}

func mapLocalBusiness(root *xmltree.Node) (*Result, error) {
	name := text(root.Get("name"))
	telephone := text(root.Get("telephone"))

	hours := []any{}
	for _, w := range root.All("openingHoursSpecification") {
		spec := w.Get("OpeningHoursSpecification")
		if spec == nil {
			continue
		}

		// dayOfWeek may repeat; it stays a sequence even with one value.
		days := []any{}
		for _, d := range spec.All("dayOfWeek") {
			days = append(days, d.Text())
		}

		hours = append(hours, jsonld.New("OpeningHoursSpecification").
			Set("dayOfWeek", days).
			Set("opens", textOf(spec.Get("opens"))).
			Set("closes", textOf(spec.Get("closes"))))
	}

	obj := jsonld.NewRoot("LocalBusiness").
		Set("name", textOf(root.Get("name"))).
		Set("url", textOf(root.Get("url"))).
		Set("telephone", textOf(root.Get("telephone"))).
		Set("address", postalAddress(root.Get("address"))).
		Set("openingHoursSpecification", hours).
		Set("sameAs", sameAsList(root)).
		Clean()

	f := new(fragment)
	f.line("<h1>%s</h1>", escape(name))
	if telephone != "" {
		f.line("<p>%s</p>", escape(telephone))
	}

	return &Result{
		HTML:   f.String(),
		JSONLD: obj,
		Meta:   Meta{Title: name},
	}, nil
}
