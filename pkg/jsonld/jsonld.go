// SPDX-FileCopyrightText: © 2025 Olivier Meunier <olivier@neokraft.net>
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package jsonld provides an insertion-ordered object model for schema.org
// JSON-LD nodes, with the pruning step applied to every emitted graph and
// a JSON encoder that never escapes HTML in text values.
package jsonld

import (
	"iter"
	"slices"
)

// Context is the vocabulary of every emitted root node.
const Context = "https://schema.org"

// Object is a JSON-LD node. Keys keep their insertion order through
// mutation, pruning and encoding.
type Object struct {
	values map[string]any
	keys   []string
}

// New returns an Object with its "@type" set when typ is not empty.
// Values may be strings, numbers, *Object, or []any sequences of those.
func New(typ string) *Object {
	o := &Object{
		values: map[string]any{},
		keys:   []string{},
	}
	if typ != "" {
		o.Set("@type", typ)
	}
	return o
}

// NewRoot returns the top node of a graph, carrying the fixed "@context"
// before its "@type".
func NewRoot(typ string) *Object {
	o := New("")
	o.Set("@context", Context)
	o.Set("@type", typ)
	return o
}

// Set stores a value, keeping the key's first insertion position. It
// returns the Object so nested nodes can be built in one expression.
func (o *Object) Set(key string, value any) *Object {
	o.values[key] = value
	if !slices.Contains(o.keys, key) {
		o.keys = append(o.keys, key)
	}
	return o
}

// Get returns the value stored under key, nil when absent.
func (o *Object) Get(key string) any {
	return o.values[key]
}

// Len returns the number of keys.
func (o *Object) Len() int {
	return len(o.keys)
}

// Keys returns the keys in insertion order.
func (o *Object) Keys() []string {
	return o.keys
}

// Items iterates over key/value pairs in insertion order.
func (o *Object) Items() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for _, key := range o.keys {
			if !yield(key, o.values[key]) {
				return
			}
		}
	}
}

func (o *Object) delete(key string) {
	delete(o.values, key)
	if i := slices.Index(o.keys, key); i >= 0 {
		o.keys = slices.Delete(o.keys, i, i+1)
	}
}

// Clean removes every key holding nil or an empty sequence, recursing into
// nested objects and sequence elements, and returns the Object. Keys listed
// in keep are never removed, whatever their value. Cleaning an already
// clean object changes nothing.
func (o *Object) Clean(keep ...string) *Object {
	for _, key := range slices.Clone(o.keys) {
		kept := slices.Contains(keep, key)

		switch v := o.values[key].(type) {
		case nil:
			if !kept {
				o.delete(key)
			}
		case *Object:
			if v == nil {
				if !kept {
					o.delete(key)
				}
				continue
			}
			v.Clean()
		case []any:
			for _, item := range v {
				if obj, ok := item.(*Object); ok && obj != nil {
					obj.Clean()
				}
			}
			if len(v) == 0 && !kept {
				o.delete(key)
			}
		}
	}
	return o
}
