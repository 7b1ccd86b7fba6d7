// SPDX-FileCopyrightText: © 2025 Olivier Meunier <olivier@neokraft.net>
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package aeoml turns an AEOML content document into three artifacts built
// in one pass from the same source: a semantic HTML fragment, a schema.org
// JSON-LD node graph and the page's title/description metadata.
//
// A document declares exactly one content root among Article, HowTo,
// BreadcrumbList, OrgRoot, LocalBusiness and Product. Each root has a
// dedicated mapper; all mappers share the same normalization rules, the
// same pruning of absent fields and the same escaping policy (HTML text is
// entity-escaped exactly once, JSON-LD and metadata text never is).
package aeoml

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"codeberg.org/readeck/aeopress/pkg/jsonld"
	"codeberg.org/readeck/aeopress/pkg/xmltree"
)

var (
	// ErrMissingRoot is returned when a document contains no content
	// root at all.
	ErrMissingRoot = errors.New("document has no content root")

	// ErrUnsupportedRoot is returned when the content root is not one
	// of the known types. The wrapping error names the offending tag.
	ErrUnsupportedRoot = errors.New("unsupported root element")
)

// Meta carries the page metadata derived from a document. Values are
// plain text; an empty string means the field is absent. Escaping is left
// to whatever surface embeds them.
type Meta struct {
	Title       string
	Description string
}

// Result is the fixed envelope produced for every document: an HTML
// fragment valid inside a container element, one JSON-LD node graph with
// its "@context" set, and the page metadata. A Result is built fresh on
// every call and never retains the input tree.
type Result struct {
	HTML   string
	JSONLD *jsonld.Object
	Meta   Meta
}

type mapperFunc func(root *xmltree.Node) (*Result, error)

// rootTypes maps a content-root tag to its mapper. OrgRoot is the one
// divergence between tag name and emitted "@type".
var rootTypes = map[string]mapperFunc{
	"Article":        mapArticle,
	"HowTo":          mapHowTo,
	"BreadcrumbList": mapBreadcrumbList,
	"OrgRoot":        mapOrganization,
	"LocalBusiness":  mapLocalBusiness,
	"Product":        mapProduct,
}

// Transform maps a parsed document to its Result. The content root is the
// first document-level key that is not a processing instruction ("?"
// prefix). There is no recovery inside mappers: the Result is complete or
// the error is final, never both.
func Transform(doc *xmltree.Node) (*Result, error) {
	for _, key := range doc.Keys() {
		if strings.HasPrefix(key, "?") {
			continue
		}

		mapper, ok := rootTypes[key]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedRoot, key)
		}
		return mapper(doc.Get(key))
	}

	return nil, ErrMissingRoot
}

// text returns a node's text, empty when the node is absent.
func text(n *xmltree.Node) string {
	if n == nil {
		return ""
	}
	return n.Text()
}

// textOf returns a node's text as a JSON-LD value, nil when the node is
// absent so the field prunes away.
func textOf(n *xmltree.Node) any {
	if n == nil {
		return nil
	}
	return n.Text()
}

// imageURL resolves an image wrapper to its URL, nil when the wrapper or
// its ImageObject carries none.
func imageURL(n *xmltree.Node) any {
	if obj := n.Get("ImageObject"); obj != nil {
		return textOf(obj.Get("url"))
	}
	return nil
}

// toNumber coerces a field asserted as numeric. Values without a
// fractional part collapse to int so they serialize as JSON integers.
func toNumber(s string) (any, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	if f == float64(int(f)) {
		return int(f), nil
	}
	return f, nil
}
