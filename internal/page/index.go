// SPDX-FileCopyrightText: © 2025 Olivier Meunier <olivier@neokraft.net>
//
// SPDX-License-Identifier: AGPL-3.0-only

package page

import (
	"fmt"
	"html"
	"strings"

	"codeberg.org/readeck/aeopress/configs"
	"codeberg.org/readeck/aeopress/pkg/aeoml"
)

// Index composes a document index as a regular conversion result so it
// renders and writes like any other document, without a graph.
func Index(names []string) *aeoml.Result {
	b := new(strings.Builder)
	fmt.Fprintf(b, "<h1>%s</h1>", html.EscapeString(configs.Config.Site.Name))
	b.WriteString("\n<ul>")
	for _, name := range names {
		fmt.Fprintf(b, "\n<li><a href=\"%s.html\">%s</a></li>",
			html.EscapeString(name), html.EscapeString(name))
	}
	b.WriteString("\n</ul>")

	return &aeoml.Result{
		HTML: b.String(),
		Meta: aeoml.Meta{Title: configs.Config.Site.Name},
	}
}
