// SPDX-FileCopyrightText: © 2025 Olivier Meunier <olivier@neokraft.net>
//
// SPDX-License-Identifier: AGPL-3.0-only

package app

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/cristalhq/acmd"
	"github.com/itchyny/gojq"
)

func init() {
	commands = append(commands, acmd.Command{
		Name:        "query",
		Description: "Run a jq expression against converted JSON-LD graphs",
		ExecFunc:    runQuery,
	})
}

func runQuery(_ context.Context, args []string) error {
	var flags appFlags
	fs := flags.Flags()
	// nolint: errcheck
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "Usage: query [arguments...] EXPR FILE...")
		fmt.Fprintln(fs.Output(), "  EXPR")
		fmt.Fprintln(fs.Output(), "    \tjq expression")
		fmt.Fprintln(fs.Output(), "  FILE")
		fmt.Fprintln(fs.Output(), "    \tAEOML document(s)")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() < 2 {
		return errors.New("an expression and at least one source file are required")
	}

	if err := appPreRun(&flags); err != nil {
		return err
	}

	query, err := gojq.Parse(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("invalid expression: %w", err)
	}
	code, err := gojq.Compile(query)
	if err != nil {
		return fmt.Errorf("invalid expression: %w", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetEscapeHTML(false)

	for _, src := range fs.Args()[1:] {
		if err := queryFile(code, enc, src); err != nil {
			return err
		}
	}
	return nil
}

// queryFile converts one source document and streams the expression's
// results over its graph.
func queryFile(code *gojq.Code, enc *json.Encoder, src string) error {
	res, err := loadDocument(src)
	if err != nil {
		return fmt.Errorf("%s: %w", src, err)
	}

	// The graph goes through its own serialization so the expression
	// sees exactly what a consumer reads from the jsonld file.
	b, err := res.JSONLD.MarshalJSON()
	if err != nil {
		return err
	}
	var input any
	if err := json.Unmarshal(b, &input); err != nil {
		return err
	}

	iter := code.Run(input)
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if err, ok := v.(error); ok {
			var halt *gojq.HaltError
			if errors.As(err, &halt) && halt.Value() == nil {
				break
			}
			return fmt.Errorf("%s: %w", src, err)
		}
		if err := enc.Encode(v); err != nil {
			return err
		}
	}
	return nil
}
