// SPDX-FileCopyrightText: © 2025 Olivier Meunier <olivier@neokraft.net>
//
// SPDX-License-Identifier: AGPL-3.0-only

package aeoml

import (
	"fmt"
	"strings"
)

// htmlEscaper covers the four entities that make free text safe in both
// element content and quoted attribute values. Every HTML interpolation
// site passes raw source text through it, and nothing else, so values are
// escaped exactly once.
var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

func escape(s string) string {
	return htmlEscaper.Replace(s)
}

// fragment accumulates the HTML output, one top-level element per line,
// no trailing newline.
type fragment struct {
	b strings.Builder
}

func (f *fragment) line(format string, args ...any) {
	if f.b.Len() > 0 {
		f.b.WriteByte('\n')
	}
	fmt.Fprintf(&f.b, format, args...)
}

func (f *fragment) String() string {
	return f.b.String()
}
