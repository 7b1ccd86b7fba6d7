// SPDX-FileCopyrightText: © 2025 Olivier Meunier <olivier@neokraft.net>
//
// SPDX-License-Identifier: AGPL-3.0-only

package aeoml_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"codeberg.org/readeck/aeopress/pkg/aeoml"
)

func TestOrganization(t *testing.T) {
	t.Run("complete document", runTransform(`<?xml version="1.0" encoding="utf-8"?>
		<OrgRoot>
			<name>ACME Tools</name>
			<url>https://acme.example.net/</url>
			<logo><ImageObject url="https://acme.example.net/logo.svg"/></logo>
			<sameAs>https://social.example.net/@acme</sameAs>
			<sameAs>https://videos.example.net/acme</sameAs>
			<contactPoint><ContactPoint>
				<telephone>+33 1 23 45 67 89</telephone>
				<contactType>customer service</contactType>
			</ContactPoint></contactPoint>
		</OrgRoot>`,
		func(t *testing.T, res *aeoml.Result) {
			require.JSONEq(t, `{
				"@context": "https://schema.org",
				"@type": "Organization",
				"name": "ACME Tools",
				"url": "https://acme.example.net/",
				"logo": "https://acme.example.net/logo.svg",
				"sameAs": [
					"https://social.example.net/@acme",
					"https://videos.example.net/acme"
				],
				"contactPoint": [{
					"@type": "ContactPoint",
					"telephone": "+33 1 23 45 67 89",
					"contactType": "customer service"
				}]
			}`, res.JSONLD.String())

			require.Equal(t, "<h1>ACME Tools</h1>\n"+
				`<p><a href="https://acme.example.net/">https://acme.example.net/</a></p>`,
				res.HTML)

			require.Equal(t, "ACME Tools", res.Meta.Title)
			require.Equal(t, "", res.Meta.Description)
		},
	))

	t.Run("name only", runTransform(
		`<OrgRoot><name>Solo</name></OrgRoot>`,
		func(t *testing.T, res *aeoml.Result) {
			require.JSONEq(t, `{
				"@context": "https://schema.org",
				"@type": "Organization",
				"name": "Solo"
			}`, res.JSONLD.String())
			require.Equal(t, "<h1>Solo</h1>", res.HTML)
		},
	))
}
