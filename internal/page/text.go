// SPDX-FileCopyrightText: © 2025 Olivier Meunier <olivier@neokraft.net>
//
// SPDX-License-Identifier: AGPL-3.0-only

package page

import (
	"strings"

	"github.com/go-shiori/dom"
	"golang.org/x/net/html"

	"codeberg.org/readeck/aeopress/pkg/aeoml"
)

// FragmentText returns the visible text of an HTML fragment, whitespace
// collapsed.
func FragmentText(fragment string) string {
	node, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		return ""
	}
	return strings.Join(strings.Fields(dom.TextContent(node)), " ")
}

// metaDescription returns the declared description untouched. Without
// one, it derives a short description (60 words) from the fragment text.
func metaDescription(res *aeoml.Result) string {
	if res.Meta.Description != "" {
		return res.Meta.Description
	}

	parts := strings.Fields(FragmentText(res.HTML))
	if len(parts) > 60 {
		return strings.Join(parts[:60], " ") + "..."
	}
	return strings.Join(parts, " ")
}
