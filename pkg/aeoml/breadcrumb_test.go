// SPDX-FileCopyrightText: © 2025 Olivier Meunier <olivier@neokraft.net>
//
// SPDX-License-Identifier: AGPL-3.0-only

package aeoml_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"codeberg.org/readeck/aeopress/pkg/aeoml"
	"codeberg.org/readeck/aeopress/pkg/xmltree"
)

func TestBreadcrumbList(t *testing.T) {
	t.Run("positions pass through unsorted", runTransform(`
		<BreadcrumbList>
			<itemListElement><ListItem>
				<position>3</position><name>Current</name>
			</ListItem></itemListElement>
			<itemListElement><ListItem>
				<position>1</position><name>Home</name><item>/</item>
			</ListItem></itemListElement>
			<itemListElement><ListItem>
				<position>2</position><name>Guides</name><item>/guides</item>
			</ListItem></itemListElement>
		</BreadcrumbList>`,
		func(t *testing.T, res *aeoml.Result) {
			require.JSONEq(t, `{
				"@context": "https://schema.org",
				"@type": "BreadcrumbList",
				"itemListElement": [
					{"@type": "ListItem", "position": 3, "name": "Current"},
					{"@type": "ListItem", "position": 1, "name": "Home", "item": "/"},
					{"@type": "ListItem", "position": 2, "name": "Guides", "item": "/guides"}
				]
			}`, res.JSONLD.String())

			require.Equal(t, "<nav>\n"+
				"<ol>\n"+
				`<li><a href="#">Current</a></li>`+"\n"+
				`<li><a href="/">Home</a></li>`+"\n"+
				`<li><a href="/guides">Guides</a></li>`+"\n"+
				"</ol>\n"+
				"</nav>", res.HTML)

			// Last in source order, not the highest position.
			require.Equal(t, "Guides", res.Meta.Title)
			require.Equal(t, "", res.Meta.Description)
		},
	))

	t.Run("fractional position stays fractional", runTransform(
		`<BreadcrumbList><itemListElement><ListItem>
			<position>2.5</position><name>odd</name>
		</ListItem></itemListElement></BreadcrumbList>`,
		func(t *testing.T, res *aeoml.Result) {
			items := jsonValue(t, res)["itemListElement"].([]any)
			require.Equal(t, 2.5, items[0].(map[string]any)["position"])
		},
	))

	t.Run("non-numeric position is fatal", func(t *testing.T) {
		doc, err := xmltree.ParseBytes([]byte(
			`<BreadcrumbList><itemListElement><ListItem>
				<position>two</position><name>Home</name>
			</ListItem></itemListElement></BreadcrumbList>`))
		require.NoError(t, err)

		_, err = aeoml.Transform(doc)
		require.ErrorContains(t, err, "breadcrumb position")
		require.ErrorIs(t, err, strconv.ErrSyntax)
	})

	t.Run("missing position is fatal", func(t *testing.T) {
		doc, err := xmltree.ParseBytes([]byte(
			`<BreadcrumbList><itemListElement><ListItem>
				<name>Home</name>
			</ListItem></itemListElement></BreadcrumbList>`))
		require.NoError(t, err)

		_, err = aeoml.Transform(doc)
		require.Error(t, err)
	})
}
