// SPDX-FileCopyrightText: © 2025 Olivier Meunier <olivier@neokraft.net>
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package authoring carries the machine readable reference of the
// authoring vocabulary: every root tag, its fields and the entity each
// wrapper accepts. Editors consume it for completion, the schema
// command prints it.
package authoring

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

//go:embed defs.yaml
var defsFile []byte

// Field describes one element of a root's content model. A wrapper
// field carries the entity tags it accepts and their own fields.
type Field struct {
	Name     string   `yaml:"name" json:"name"`
	Doc      string   `yaml:"doc,omitempty" json:"doc,omitempty"`
	Required bool     `yaml:"required,omitempty" json:"required,omitempty"`
	Repeated bool     `yaml:"repeated,omitempty" json:"repeated,omitempty"`
	Wraps    []string `yaml:"wraps,omitempty" json:"wraps,omitempty"`
	Fields   []Field  `yaml:"fields,omitempty" json:"fields,omitempty"`
}

// Root describes one document root.
type Root struct {
	Name   string  `yaml:"name" json:"name"`
	Type   string  `yaml:"type" json:"type"`
	Doc    string  `yaml:"doc,omitempty" json:"doc,omitempty"`
	Fields []Field `yaml:"fields" json:"fields"`
}

// Definitions is the whole vocabulary.
type Definitions struct {
	Roots []Root `yaml:"roots" json:"roots"`
}

// Load parses the embedded definitions.
func Load() (*Definitions, error) {
	d := new(Definitions)
	if err := yaml.Unmarshal(defsFile, d); err != nil {
		return nil, fmt.Errorf("invalid definitions: %w", err)
	}
	return d, nil
}

// Root returns a root definition by tag name, or nil.
func (d *Definitions) Root(name string) *Root {
	for i := range d.Roots {
		if d.Roots[i].Name == name {
			return &d.Roots[i]
		}
	}
	return nil
}

// WriteJSON writes the definitions as indented JSON.
func (d *Definitions) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}

// WriteYAML writes the definitions as YAML.
func (d *Definitions) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return err
	}
	return enc.Close()
}
