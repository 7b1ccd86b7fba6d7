// SPDX-FileCopyrightText: © 2025 Olivier Meunier <olivier@neokraft.net>
//
// SPDX-License-Identifier: AGPL-3.0-only

package jsonld

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// Encode writes o to w as indented JSON, two spaces per level, keys in
// insertion order, HTML left unescaped.
func Encode(w io.Writer, o *Object) error {
	if err := encodeValue(w, o, ""); err != nil {
		return err
	}
	_, err := w.Write([]byte("\n"))
	return err
}

// MarshalJSON implements json.Marshaler with the same ordering and
// escaping rules as Encode, in compact form.
func (o *Object) MarshalJSON() ([]byte, error) {
	pretty := new(bytes.Buffer)
	if err := encodeValue(pretty, o, ""); err != nil {
		return nil, err
	}

	out := new(bytes.Buffer)
	if err := json.Compact(out, pretty.Bytes()); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// String returns the compact JSON serialization. Encoding errors degrade
// to an empty object, values built by this package cannot produce them.
func (o *Object) String() string {
	b, err := o.MarshalJSON()
	if err != nil {
		return "{}"
	}
	return string(b)
}

func encodeValue(w io.Writer, value any, indent string) error {
	switch v := value.(type) {
	case *Object:
		return encodeObject(w, v, indent)
	case []any:
		return encodeSequence(w, v, indent)
	default:
		return encodeScalar(w, v)
	}
}

func encodeObject(w io.Writer, o *Object, indent string) error {
	if o == nil || o.Len() == 0 {
		_, err := w.Write([]byte("{}"))
		return err
	}

	if _, err := w.Write([]byte("{\n")); err != nil {
		return err
	}

	i := 0
	for key, value := range o.Items() {
		k, err := json.Marshal(key)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%s  %s: ", indent, string(k)); err != nil {
			return err
		}
		if err := encodeValue(w, value, indent+"  "); err != nil {
			return err
		}

		i++
		if i < o.Len() {
			if _, err := w.Write([]byte(",\n")); err != nil {
				return err
			}
		}
	}

	_, err := w.Write([]byte("\n" + indent + "}"))
	return err
}

func encodeSequence(w io.Writer, l []any, indent string) error {
	if len(l) == 0 {
		_, err := w.Write([]byte("[]"))
		return err
	}

	if _, err := w.Write([]byte("[\n")); err != nil {
		return err
	}

	for i, item := range l {
		if _, err := w.Write([]byte(indent + "  ")); err != nil {
			return err
		}
		if err := encodeValue(w, item, indent+"  "); err != nil {
			return err
		}
		if i+1 < len(l) {
			if _, err := w.Write([]byte(",\n")); err != nil {
				return err
			}
		}
	}

	_, err := w.Write([]byte("\n" + indent + "]"))
	return err
}

func encodeScalar(w io.Writer, v any) error {
	buf := new(bytes.Buffer)
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(v); err != nil {
		return err
	}
	_, err := w.Write(bytes.TrimRight(buf.Bytes(), "\n"))
	return err
}
