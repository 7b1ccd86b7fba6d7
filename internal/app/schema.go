// SPDX-FileCopyrightText: © 2025 Olivier Meunier <olivier@neokraft.net>
//
// SPDX-License-Identifier: AGPL-3.0-only

package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/cristalhq/acmd"

	"codeberg.org/readeck/aeopress/internal/authoring"
)

func init() {
	commands = append(commands, acmd.Command{
		Name:        "schema",
		Description: "Print the authoring vocabulary reference",
		ExecFunc:    runSchema,
	})
}

func runSchema(_ context.Context, args []string) error {
	var format string

	var flags appFlags
	fs := flags.Flags()
	fs.StringVar(&format, "format", "json", "output format (json or yaml)")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if err := appPreRun(&flags); err != nil {
		return err
	}

	defs, err := authoring.Load()
	if err != nil {
		return err
	}

	switch format {
	case "json":
		return defs.WriteJSON(os.Stdout)
	case "yaml":
		return defs.WriteYAML(os.Stdout)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
