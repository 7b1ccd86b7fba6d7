// SPDX-FileCopyrightText: © 2025 Olivier Meunier <olivier@neokraft.net>
//
// SPDX-License-Identifier: AGPL-3.0-only

// AEOPress converts AEOML documents into pages built for answer
// engines: semantic HTML fragments paired with JSON-LD graphs.
package main

import (
	"fmt"
	"os"

	"codeberg.org/readeck/aeopress/internal/app"
)

func main() {
	if err := app.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
