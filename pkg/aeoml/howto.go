// SPDX-FileCopyrightText: © 2025 Olivier Meunier <olivier@neokraft.net>
//
// SPDX-License-Identifier: AGPL-3.0-only

package aeoml

import (
	"fmt"
	"strings"

	"codeberg.org/readeck/aeopress/pkg/jsonld"
	"codeberg.org/readeck/aeopress/pkg/xmltree"
)

func stepNode(st *xmltree.Node) *jsonld.Object {
	return jsonld.New("HowToStep").
		Set("name", textOf(st.Get("name"))).
		Set("text", textOf(st.Get("text"))).
		Set("image", imageURL(st.Get("image")))
}

func stepHTML(st *xmltree.Node) string {
	b := new(strings.Builder)
	fmt.Fprintf(b, "<b>%s</b>", escape(text(st.Get("name"))))

	if t := text(st.Get("text")); t != "" {
		fmt.Fprintf(b, "<p>%s</p>", escape(t))
	}
	if u, ok := imageURL(st.Get("image")).(string); ok && u != "" {
		fmt.Fprintf(b, `<figure><img src="%s" alt="%s"></figure>`,
			escape(u), escape(text(st.Get("name"))))
	}
	return b.String()
}

func mapHowTo(root *xmltree.Node) (*Result, error) {
	name := text(root.Get("name"))
	description := text(root.Get("description"))

	supplies := []any{}
	supplyItems := []string{}
	for _, w := range root.All("supply") {
		s := w.Get("HowToSupply")
		if s == nil {
			continue
		}
		supplies = append(supplies, jsonld.New("HowToSupply").
			Set("name", textOf(s.Get("name"))).
			Set("requiredQuantity", textOf(s.Get("requiredQuantity"))))

		item := escape(text(s.Get("name")))
		if q := text(s.Get("requiredQuantity")); q != "" {
			item = fmt.Sprintf("%s (%s)", item, escape(q))
		}
		supplyItems = append(supplyItems, item)
	}

	tools := []any{}
	toolItems := []string{}
	for _, w := range root.All("tool") {
		tn := w.Get("HowToTool")
		if tn == nil {
			continue
		}
		tools = append(tools, jsonld.New("HowToTool").
			Set("name", textOf(tn.Get("name"))))
		toolItems = append(toolItems, escape(text(tn.Get("name"))))
	}

	// Flat steps always come before sections, whatever their relative
	// order in the source document.
	steps := []any{}
	stepItems := []string{}
	for _, w := range root.All("step") {
		st := w.Get("HowToStep")
		if st == nil {
			continue
		}
		steps = append(steps, stepNode(st))
		stepItems = append(stepItems, "<li>"+stepHTML(st)+"</li>")
	}
	for _, w := range root.All("section") {
		sec := w.Get("HowToSection")
		if sec == nil {
			continue
		}

		sub := []any{}
		b := new(strings.Builder)
		fmt.Fprintf(b, "<b>%s</b><ol>", escape(text(sec.Get("name"))))
		for _, sw := range sec.All("step") {
			st := sw.Get("HowToStep")
			if st == nil {
				continue
			}
			sub = append(sub, stepNode(st))
			fmt.Fprintf(b, "<li>%s</li>", stepHTML(st))
		}
		b.WriteString("</ol>")

		steps = append(steps, jsonld.New("HowToSection").
			Set("name", textOf(sec.Get("name"))).
			Set("itemListElement", sub))
		stepItems = append(stepItems, "<li>"+b.String()+"</li>")
	}

	obj := jsonld.NewRoot("HowTo").
		Set("name", textOf(root.Get("name"))).
		Set("description", textOf(root.Get("description"))).
		Set("totalTime", textOf(root.Get("totalTime"))).
		Set("supply", supplies).
		Set("tool", tools).
		Set("step", steps).
		Clean()

	f := new(fragment)
	f.line("<h1>%s</h1>", escape(name))
	if description != "" {
		f.line("<p>%s</p>", escape(description))
	}
	if len(supplyItems) > 0 {
		f.line("<h2>Supplies</h2>")
		f.line("<ul>")
		for _, item := range supplyItems {
			f.line("<li>%s</li>", item)
		}
		f.line("</ul>")
	}
	if len(toolItems) > 0 {
		f.line("<h2>Tools</h2>")
		f.line("<ul>")
		for _, item := range toolItems {
			f.line("<li>%s</li>", item)
		}
		f.line("</ul>")
	}
	if len(stepItems) > 0 {
		f.line("<ol>")
		for _, item := range stepItems {
			f.line("%s", item)
		}
		f.line("</ol>")
	}

	return &Result{
		HTML:   f.String(),
		JSONLD: obj,
		Meta:   Meta{Title: name, Description: description},
	}, nil
}
