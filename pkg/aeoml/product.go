// SPDX-FileCopyrightText: © 2025 Olivier Meunier <olivier@neokraft.net>
//
// SPDX-License-Identifier: AGPL-3.0-only

package aeoml

import (
	"codeberg.org/readeck/aeopress/pkg/jsonld"
	"codeberg.org/readeck/aeopress/pkg/xmltree"
)

func brandNode(n *xmltree.Node) any {
	b := n.Get("Brand")
	if b == nil {
		return nil
	}
	return jsonld.New("Brand").Set("name", textOf(b.Get("name")))
}

func ratingNode(n *xmltree.Node) any {
	r := n.Get("AggregateRating")
	if r == nil {
		return nil
	}
	return jsonld.New("AggregateRating").
		Set("ratingValue", textOf(r.Get("ratingValue"))).
		Set("reviewCount", textOf(r.Get("reviewCount")))
}

func mapProduct(root *xmltree.Node) (*Result, error) {
	name := text(root.Get("name"))
	description := text(root.Get("description"))

	images := []any{}
	for _, w := range root.All("image") {
		if u, ok := imageURL(w).(string); ok && u != "" {
			images = append(images, u)
		}
	}

	offers := []any{}
	var firstOffer *xmltree.Node
	for _, w := range root.All("offers") {
		o := w.Get("Offer")
		if o == nil {
			continue
		}
		if firstOffer == nil {
			firstOffer = o
		}
		offers = append(offers, jsonld.New("Offer").
			Set("price", textOf(o.Get("price"))).
			Set("priceCurrency", textOf(o.Get("priceCurrency"))).
			Set("availability", textOf(o.Get("availability"))))
	}

	// offers is declared kept: consumers receive "offers": [] when a
	// product has none, while every other empty sequence prunes away.
	obj := jsonld.NewRoot("Product").
		Set("name", textOf(root.Get("name"))).
		Set("description", textOf(root.Get("description"))).
		Set("image", images).
		Set("brand", brandNode(root.Get("brand"))).
		Set("sku", textOf(root.Get("sku"))).
		Set("gtin13", textOf(root.Get("gtin13"))).
		Set("offers", offers).
		Set("aggregateRating", ratingNode(root.Get("aggregateRating"))).
		Clean("offers")

	f := new(fragment)
	f.line("<article>")
	f.line("<h1>%s</h1>", escape(name))
	if description != "" {
		f.line("<p>%s</p>", escape(description))
	}
	if firstOffer != nil {
		f.line("<p>From: %s %s</p>",
			escape(text(firstOffer.Get("price"))),
			escape(text(firstOffer.Get("priceCurrency"))))
	}
	f.line("</article>")

	return &Result{
		HTML:   f.String(),
		JSONLD: obj,
		Meta:   Meta{Title: name, Description: description},
	}, nil
}
