// SPDX-FileCopyrightText: © 2025 Olivier Meunier <olivier@neokraft.net>
//
// SPDX-License-Identifier: AGPL-3.0-only

package aeoml_test

import (
	"testing"

	"github.com/kinbiko/jsonassert"
	"github.com/stretchr/testify/require"

	"codeberg.org/readeck/aeopress/pkg/aeoml"
)

func TestProduct(t *testing.T) {
	t.Run("complete document", runTransform(`<?xml version="1.0" encoding="utf-8"?>
		<Product>
			<name>Field Kettle</name>
			<description>Steel kettle for camp stoves.</description>
			<image><ImageObject url="https://example.net/kettle-front.jpg"/></image>
			<image><ImageObject/></image>
			<image><ImageObject url="https://example.net/kettle-side.jpg"/></image>
			<brand><Brand><name>ACME</name></Brand></brand>
			<sku>KET-042</sku>
			<gtin13>4006381333931</gtin13>
			<offers><Offer>
				<price>39.90</price>
				<priceCurrency>EUR</priceCurrency>
				<availability>https://schema.org/InStock</availability>
			</Offer></offers>
			<offers><Offer>
				<price>34.00</price>
				<priceCurrency>EUR</priceCurrency>
				<availability>https://schema.org/PreOrder</availability>
			</Offer></offers>
			<aggregateRating><AggregateRating>
				<ratingValue>4.4</ratingValue>
				<reviewCount>27</reviewCount>
			</AggregateRating></aggregateRating>
		</Product>`,
		func(t *testing.T, res *aeoml.Result) {
			ja := jsonassert.New(t)
			ja.Assertf(res.JSONLD.String(), `{
				"@context": "https://schema.org",
				"@type": "Product",
				"name": "Field Kettle",
				"description": "Steel kettle for camp stoves.",
				"image": [
					"https://example.net/kettle-front.jpg",
					"https://example.net/kettle-side.jpg"
				],
				"brand": {"@type": "Brand", "name": "ACME"},
				"sku": "KET-042",
				"gtin13": "4006381333931",
				"offers": [
					{
						"@type": "Offer",
						"price": "39.90",
						"priceCurrency": "EUR",
						"availability": "https://schema.org/InStock"
					},
					{
						"@type": "Offer",
						"price": "34.00",
						"priceCurrency": "EUR",
						"availability": "https://schema.org/PreOrder"
					}
				],
				"aggregateRating": {
					"@type": "AggregateRating",
					"ratingValue": "4.4",
					"reviewCount": "27"
				}
			}`)

			require.Equal(t, "<article>\n"+
				"<h1>Field Kettle</h1>\n"+
				"<p>Steel kettle for camp stoves.</p>\n"+
				"<p>From: 39.90 EUR</p>\n"+
				"</article>", res.HTML)

			require.Equal(t, "Field Kettle", res.Meta.Title)
			require.Equal(t, "Steel kettle for camp stoves.", res.Meta.Description)
		},
	))

	t.Run("first offer drives the price line", runTransform(
		`<Product><name>n</name>
			<offers><Offer><price>50.00</price><priceCurrency>EUR</priceCurrency></Offer></offers>
			<offers><Offer><price>10.00</price><priceCurrency>EUR</priceCurrency></Offer></offers>
		</Product>`,
		func(t *testing.T, res *aeoml.Result) {
			require.Contains(t, res.HTML, "<p>From: 50.00 EUR</p>")
		},
	))

	t.Run("zero offers keep an empty array", runTransform(
		`<Product><name>Bare</name></Product>`,
		func(t *testing.T, res *aeoml.Result) {
			require.NotContains(t, res.HTML, "From:")
			require.JSONEq(t, `{
				"@context": "https://schema.org",
				"@type": "Product",
				"name": "Bare",
				"offers": []
			}`, res.JSONLD.String())
		},
	))

	t.Run("images without a url are dropped", runTransform(
		`<Product><name>n</name>
			<image><ImageObject url=""/></image>
			<image><ImageObject url="https://example.net/ok.png"/></image>
		</Product>`,
		func(t *testing.T, res *aeoml.Result) {
			require.Equal(t, []any{"https://example.net/ok.png"}, jsonValue(t, res)["image"])
		},
	))
}
