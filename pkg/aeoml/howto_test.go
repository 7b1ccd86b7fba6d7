// SPDX-FileCopyrightText: © 2025 Olivier Meunier <olivier@neokraft.net>
//
// SPDX-License-Identifier: AGPL-3.0-only

package aeoml_test

import (
	"strings"
	"testing"

	"github.com/antchfx/htmlquery"
	"github.com/kinbiko/jsonassert"
	"github.com/stretchr/testify/require"

	"codeberg.org/readeck/aeopress/pkg/aeoml"
)

func TestHowTo(t *testing.T) {
	t.Run("complete document", runTransform(`<?xml version="1.0" encoding="utf-8"?>
		<HowTo>
			<name>Change a bike tube</name>
			<description>Repair a flat in minutes.</description>
			<totalTime>PT20M</totalTime>
			<supply><HowToSupply><name>Tube</name><requiredQuantity>1</requiredQuantity></HowToSupply></supply>
			<supply><HowToSupply><name>Talc</name></HowToSupply></supply>
			<tool><HowToTool><name>Tire levers</name></HowToTool></tool>
			<step><HowToStep><name>Remove the wheel</name><text>Open the quick release.</text></HowToStep></step>
			<section><HowToSection><name>Fitting</name>
				<step><HowToStep><name>Seat the bead</name><image><ImageObject url="https://example.net/bead.jpg"/></image></HowToStep></step>
				<step><HowToStep><name>Inflate</name></HowToStep></step>
			</HowToSection></section>
			<step><HowToStep><name>Check pressure</name></HowToStep></step>
		</HowTo>`,
		func(t *testing.T, res *aeoml.Result) {
			ja := jsonassert.New(t)
			ja.Assertf(res.JSONLD.String(), `{
				"@context": "https://schema.org",
				"@type": "HowTo",
				"name": "Change a bike tube",
				"description": "Repair a flat in minutes.",
				"totalTime": "PT20M",
				"supply": [
					{"@type": "HowToSupply", "name": "Tube", "requiredQuantity": "1"},
					{"@type": "HowToSupply", "name": "Talc"}
				],
				"tool": [
					{"@type": "HowToTool", "name": "Tire levers"}
				],
				"step": [
					{"@type": "HowToStep", "name": "Remove the wheel", "text": "Open the quick release."},
					{"@type": "HowToStep", "name": "Check pressure"},
					{
						"@type": "HowToSection",
						"name": "Fitting",
						"itemListElement": [
							{"@type": "HowToStep", "name": "Seat the bead", "image": "https://example.net/bead.jpg"},
							{"@type": "HowToStep", "name": "Inflate"}
						]
					}
				]
			}`)

			require.Equal(t, "<h1>Change a bike tube</h1>\n"+
				"<p>Repair a flat in minutes.</p>\n"+
				"<h2>Supplies</h2>\n"+
				"<ul>\n"+
				"<li>Tube (1)</li>\n"+
				"<li>Talc</li>\n"+
				"</ul>\n"+
				"<h2>Tools</h2>\n"+
				"<ul>\n"+
				"<li>Tire levers</li>\n"+
				"</ul>\n"+
				"<ol>\n"+
				"<li><b>Remove the wheel</b><p>Open the quick release.</p></li>\n"+
				"<li><b>Check pressure</b></li>\n"+
				`<li><b>Fitting</b><ol><li><b>Seat the bead</b><figure><img src="https://example.net/bead.jpg" alt="Seat the bead"></figure></li><li><b>Inflate</b></li></ol></li>`+"\n"+
				"</ol>", res.HTML)

			require.Equal(t, "Change a bike tube", res.Meta.Title)
			require.Equal(t, "Repair a flat in minutes.", res.Meta.Description)
		},
	))

	t.Run("flat steps come first whatever the source order", runTransform(
		`<HowTo><name>n</name>
			<section><HowToSection><name>Group</name>
				<step><HowToStep><name>grouped</name></HowToStep></step>
			</HowToSection></section>
			<step><HowToStep><name>flat</name></HowToStep></step>
		</HowTo>`,
		func(t *testing.T, res *aeoml.Result) {
			steps := jsonValue(t, res)["step"].([]any)
			require.Len(t, steps, 2)
			require.Equal(t, "HowToStep", steps[0].(map[string]any)["@type"])
			require.Equal(t, "flat", steps[0].(map[string]any)["name"])
			require.Equal(t, "HowToSection", steps[1].(map[string]any)["@type"])

			doc, err := htmlquery.Parse(strings.NewReader(res.HTML))
			require.NoError(t, err)
			items := htmlquery.Find(doc, "/html/body/ol/li")
			require.Len(t, items, 2)
			require.Equal(t, "flat", htmlquery.InnerText(items[0]))
		},
	))

	t.Run("step with only a name", runTransform(
		`<HowTo><name>n</name><step><HowToStep><name>just a name</name></HowToStep></step></HowTo>`,
		func(t *testing.T, res *aeoml.Result) {
			require.Contains(t, res.HTML, "<li><b>just a name</b></li>")

			steps := jsonValue(t, res)["step"].([]any)
			require.Equal(t, map[string]any{
				"@type": "HowToStep",
				"name":  "just a name",
			}, steps[0])
		},
	))

	t.Run("no steps, no list", runTransform(
		`<HowTo><name>n</name></HowTo>`,
		func(t *testing.T, res *aeoml.Result) {
			require.Equal(t, "<h1>n</h1>", res.HTML)
			require.NotContains(t, jsonValue(t, res), "step")
			require.NotContains(t, jsonValue(t, res), "supply")
		},
	))
}
