// SPDX-FileCopyrightText: © 2025 Olivier Meunier <olivier@neokraft.net>
//
// SPDX-License-Identifier: AGPL-3.0-only

package aeoml_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"codeberg.org/readeck/aeopress/pkg/aeoml"
	"codeberg.org/readeck/aeopress/pkg/xmltree"
)

// runTransform parses src and hands the transform result to f.
func runTransform(src string, f func(t *testing.T, res *aeoml.Result)) func(t *testing.T) {
	return func(t *testing.T) {
		doc, err := xmltree.ParseBytes([]byte(src))
		require.NoError(t, err)

		res, err := aeoml.Transform(doc)
		require.NoError(t, err)
		f(t, res)
	}
}

// jsonValue decodes the emitted JSON-LD for direct value inspection.
func jsonValue(t *testing.T, res *aeoml.Result) map[string]any {
	t.Helper()
	m := map[string]any{}
	require.NoError(t, json.Unmarshal([]byte(res.JSONLD.String()), &m))
	return m
}

func TestDispatch(t *testing.T) {
	tests := []struct {
		src      string
		declared string
		emitted  string
	}{
		{`<Article><headline>a</headline></Article>`, "Article", "Article"},
		{`<HowTo><name>h</name></HowTo>`, "HowTo", "HowTo"},
		{`<BreadcrumbList></BreadcrumbList>`, "BreadcrumbList", "BreadcrumbList"},
		{`<OrgRoot><name>o</name></OrgRoot>`, "OrgRoot", "Organization"},
		{`<LocalBusiness><name>l</name></LocalBusiness>`, "LocalBusiness", "LocalBusiness"},
		{`<Product><name>p</name></Product>`, "Product", "Product"},
	}

	for _, test := range tests {
		t.Run(test.declared, runTransform(
			`<?xml version="1.0" encoding="utf-8"?>`+test.src,
			func(t *testing.T, res *aeoml.Result) {
				require.Equal(t, "https://schema.org", res.JSONLD.Get("@context"))
				require.Equal(t, test.emitted, res.JSONLD.Get("@type"))
			},
		))
	}
}

func TestDispatchErrors(t *testing.T) {
	t.Run("unsupported root", func(t *testing.T) {
		doc, err := xmltree.ParseBytes([]byte(`<Recipe><name>Flan</name></Recipe>`))
		require.NoError(t, err)

		_, err = aeoml.Transform(doc)
		require.ErrorIs(t, err, aeoml.ErrUnsupportedRoot)
		require.ErrorContains(t, err, "Recipe")
	})

	t.Run("declaration only", func(t *testing.T) {
		doc, err := xmltree.ParseBytes([]byte(`<?xml version="1.0" encoding="utf-8"?>`))
		require.NoError(t, err)

		_, err = aeoml.Transform(doc)
		require.ErrorIs(t, err, aeoml.ErrMissingRoot)
	})

	t.Run("empty document node", func(t *testing.T) {
		_, err := aeoml.Transform(&xmltree.Node{})
		require.ErrorIs(t, err, aeoml.ErrMissingRoot)
	})
}

func TestEscaping(t *testing.T) {
	const headline = `R&D <"Quotes"> 'kept'`

	t.Run("html escaped once, jsonld and meta never", runTransform(
		`<Article><headline>R&amp;D &lt;"Quotes"&gt; 'kept'</headline></Article>`,
		func(t *testing.T, res *aeoml.Result) {
			require.Equal(t,
				"<h1>R&amp;D &lt;&quot;Quotes&quot;&gt; 'kept'</h1>",
				res.HTML)

			require.Equal(t, headline, jsonValue(t, res)["headline"])
			require.Equal(t, headline, res.Meta.Title)
		},
	))

	t.Run("attribute values go through the same escaper", runTransform(
		`<BreadcrumbList><itemListElement><ListItem>`+
			`<position>1</position><name>Home</name>`+
			`<item>/search?a=1&amp;b="x"</item>`+
			`</ListItem></itemListElement></BreadcrumbList>`,
		func(t *testing.T, res *aeoml.Result) {
			require.Contains(t, res.HTML,
				`<a href="/search?a=1&amp;b=&quot;x&quot;">Home</a>`)

			items := jsonValue(t, res)["itemListElement"].([]any)
			first := items[0].(map[string]any)
			require.Equal(t, `/search?a=1&b="x"`, first["item"])
		},
	))
}

func TestResultIsolation(t *testing.T) {
	// Two transforms of the same document share nothing.
	src := `<Product><name>Widget</name></Product>`

	doc, err := xmltree.ParseBytes([]byte(src))
	require.NoError(t, err)

	a, err := aeoml.Transform(doc)
	require.NoError(t, err)
	b, err := aeoml.Transform(doc)
	require.NoError(t, err)

	a.JSONLD.Set("name", "changed")
	require.Equal(t, "Widget", b.JSONLD.Get("name"))
	require.Equal(t, a.HTML, b.HTML)
}
