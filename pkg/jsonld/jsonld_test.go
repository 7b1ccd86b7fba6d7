// SPDX-FileCopyrightText: © 2025 Olivier Meunier <olivier@neokraft.net>
//
// SPDX-License-Identifier: AGPL-3.0-only

package jsonld_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"codeberg.org/readeck/aeopress/pkg/jsonld"
)

func TestObject(t *testing.T) {
	t.Run("insertion order", func(t *testing.T) {
		o := jsonld.NewRoot("Article")
		o.Set("headline", "a")
		o.Set("datePublished", "2025-01-01")
		require.Equal(t, []string{"@context", "@type", "headline", "datePublished"}, o.Keys())
	})

	t.Run("set keeps first position", func(t *testing.T) {
		o := jsonld.New("Thing")
		o.Set("name", "first")
		o.Set("url", "https://example.net/")
		o.Set("name", "second")
		require.Equal(t, []string{"@type", "name", "url"}, o.Keys())
		require.Equal(t, "second", o.Get("name"))
	})

	t.Run("get absent", func(t *testing.T) {
		require.Nil(t, jsonld.New("Thing").Get("name"))
	})
}

func TestClean(t *testing.T) {
	build := func() *jsonld.Object {
		return jsonld.NewRoot("Product").
			Set("name", "Widget").
			Set("description", nil).
			Set("sku", "").
			Set("image", []any{}).
			Set("brand", jsonld.New("Brand").Set("name", nil)).
			Set("offers", []any{})
	}

	t.Run("prunes nil and empty sequences", func(t *testing.T) {
		o := build().Clean()
		require.Equal(t, []string{"@context", "@type", "name", "sku", "brand"}, o.Keys())
	})

	t.Run("empty strings survive", func(t *testing.T) {
		o := build().Clean()
		require.Equal(t, "", o.Get("sku"))
	})

	t.Run("recurses into nested objects", func(t *testing.T) {
		o := build().Clean()
		brand := o.Get("brand").(*jsonld.Object)
		require.Equal(t, []string{"@type"}, brand.Keys())
	})

	t.Run("kept keys survive empty", func(t *testing.T) {
		o := build().Clean("offers")
		require.Equal(t, []any{}, o.Get("offers"))
		require.Nil(t, o.Get("image"))
	})

	t.Run("cleans sequence elements", func(t *testing.T) {
		o := jsonld.NewRoot("HowTo").Set("step", []any{
			jsonld.New("HowToStep").Set("name", "one").Set("text", nil),
		})
		o.Clean()
		step := o.Get("step").([]any)[0].(*jsonld.Object)
		require.Equal(t, []string{"@type", "name"}, step.Keys())
	})

	t.Run("idempotent", func(t *testing.T) {
		once, err := json.Marshal(build().Clean())
		require.NoError(t, err)
		twice, err := json.Marshal(build().Clean().Clean())
		require.NoError(t, err)
		require.Equal(t, string(once), string(twice))
	})
}

func TestEncode(t *testing.T) {
	o := jsonld.NewRoot("Product")
	o.Set("name", `Say "hi" & <go>`)
	o.Set("image", []any{"https://example.net/a.png", "https://example.net/b.png"})
	o.Set("offers", []any{
		jsonld.New("Offer").Set("price", "9.99"),
	})
	o.Set("position", 2)

	expected := `{
  "@context": "https://schema.org",
  "@type": "Product",
  "name": "Say \"hi\" & <go>",
  "image": [
    "https://example.net/a.png",
    "https://example.net/b.png"
  ],
  "offers": [
    {
      "@type": "Offer",
      "price": "9.99"
    }
  ],
  "position": 2
}
`

	buf := new(bytes.Buffer)
	require.NoError(t, jsonld.Encode(buf, o))
	require.Equal(t, expected, buf.String())
}

func TestMarshalJSON(t *testing.T) {
	t.Run("html stays literal", func(t *testing.T) {
		o := jsonld.NewRoot("Article")
		o.Set("headline", "Ben & Jerry <3")

		b, err := o.MarshalJSON()
		require.NoError(t, err)
		require.Contains(t, string(b), `"Ben & Jerry <3"`)
		require.Equal(t, `{"@context":"https://schema.org","@type":"Article","headline":"Ben & Jerry <3"}`, string(b))
	})

	t.Run("round-trips through encoding/json", func(t *testing.T) {
		o := jsonld.NewRoot("Article")
		o.Set("headline", "Ben & Jerry <3")

		b, err := json.Marshal(o)
		require.NoError(t, err)
		require.JSONEq(t, `{
			"@context": "https://schema.org",
			"@type": "Article",
			"headline": "Ben & Jerry <3"
		}`, string(b))
	})

	t.Run("empty sequences and objects", func(t *testing.T) {
		o := jsonld.NewRoot("Product")
		o.Set("offers", []any{})
		o.Set("extra", jsonld.New(""))

		b, err := json.Marshal(o)
		require.NoError(t, err)
		require.JSONEq(t, `{
			"@context": "https://schema.org",
			"@type": "Product",
			"offers": [],
			"extra": {}
		}`, string(b))
	})
}
