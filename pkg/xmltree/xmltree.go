// SPDX-FileCopyrightText: © 2025 Olivier Meunier <olivier@neokraft.net>
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package xmltree loads an XML document into a generic, insertion-ordered
// tree that downstream mappers can traverse without caring how a value was
// spelled in the source. Element attributes and child elements share one
// namespace, repeated names accumulate in document order and character
// data is collapsed into a trimmed scalar per node.
package xmltree

import (
	"bytes"
	"io"
	"iter"
	"strings"

	"github.com/antchfx/xmlquery"
)

// Node is an element of the generic tree. The document itself is a Node
// whose children are the XML declaration, keyed "?xml" so content keys can
// be told apart by prefix, and the root element.
type Node struct {
	name     string
	text     strings.Builder
	keys     []string
	children map[string][]*Node
}

func newNode(name string) *Node {
	return &Node{
		name:     name,
		children: map[string][]*Node{},
	}
}

// Name returns the tag name. For attribute nodes it is the attribute name,
// for processing instructions the "?"-prefixed target.
func (n *Node) Name() string {
	return n.name
}

// Text returns the node's character data, trimmed of surrounding
// whitespace. Multiple text fragments (around child elements or CDATA
// sections) are concatenated in document order.
func (n *Node) Text() string {
	return strings.TrimSpace(n.text.String())
}

// Keys returns the distinct child names in first-seen document order.
// Attributes come before child elements.
func (n *Node) Keys() []string {
	return n.keys
}

// Has reports whether at least one child with the given name exists.
func (n *Node) Has(name string) bool {
	return len(n.children[name]) > 0
}

// Get returns the first child with the given name, or nil. A nil receiver
// yields nil so lookups can be chained.
func (n *Node) Get(name string) *Node {
	if n == nil {
		return nil
	}
	if l := n.children[name]; len(l) > 0 {
		return l[0]
	}
	return nil
}

// All returns every child with the given name in document order. It is the
// one sequence-normalization primitive of the tree: an absent name yields
// an empty slice, a single occurrence a one-element slice, so callers never
// need to distinguish the two.
func (n *Node) All(name string) []*Node {
	if n == nil {
		return nil
	}
	return n.children[name]
}

// Fields iterates over the child names in first-seen order, yielding each
// name with all its occurrences.
func (n *Node) Fields() iter.Seq2[string, []*Node] {
	return func(yield func(string, []*Node) bool) {
		for _, k := range n.keys {
			if !yield(k, n.children[k]) {
				return
			}
		}
	}
}

func (n *Node) add(child *Node) {
	if _, ok := n.children[child.name]; !ok {
		n.keys = append(n.keys, child.name)
	}
	n.children[child.name] = append(n.children[child.name], child)
}

func (n *Node) addText(s string) {
	n.text.WriteString(s)
}

// Parse reads an XML document and returns its generic tree.
func Parse(r io.Reader) (*Node, error) {
	doc, err := xmlquery.Parse(r)
	if err != nil {
		return nil, err
	}

	root := newNode("")
	loadChildren(root, doc)
	return root, nil
}

// ParseBytes is Parse for an in-memory document.
func ParseBytes(data []byte) (*Node, error) {
	return Parse(bytes.NewReader(data))
}

func loadChildren(dst *Node, src *xmlquery.Node) {
	for c := src.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case xmlquery.DeclarationNode:
			dst.add(newNode("?" + c.Data))
		case xmlquery.ElementNode:
			dst.add(loadElement(c))
		case xmlquery.TextNode, xmlquery.CharDataNode:
			dst.addText(c.Data)
		}
	}
}

func loadElement(src *xmlquery.Node) *Node {
	n := newNode(src.Data)

	// Attributes first, merged into the same namespace as child
	// elements, in declaration order.
	for _, attr := range src.Attr {
		a := newNode(attr.Name.Local)
		a.addText(attr.Value)
		n.add(a)
	}

	loadChildren(n, src)
	return n
}
