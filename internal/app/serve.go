// SPDX-FileCopyrightText: © 2025 Olivier Meunier <olivier@neokraft.net>
//
// SPDX-License-Identifier: AGPL-3.0-only

package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/cristalhq/acmd"

	"codeberg.org/readeck/aeopress/configs"
	"codeberg.org/readeck/aeopress/internal/preview"
)

func init() {
	commands = append(commands, acmd.Command{
		Name:        "serve",
		Description: "Start the authoring preview server",
		ExecFunc:    runServe,
	})
}

func runServe(ctx context.Context, args []string) error {
	var addr string

	var flags appFlags
	fs := flags.Flags()
	// nolint: errcheck
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "Usage: serve [arguments...] DIR")
		fmt.Fprintln(fs.Output(), "  DIR")
		fmt.Fprintln(fs.Output(), "    \tsource directory")
		fs.PrintDefaults()
	}
	fs.StringVar(&addr, "addr", "", "listen address (host:port)")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	dir := fs.Arg(0)
	if dir == "" {
		return errors.New("source directory is required")
	}

	if err := appPreRun(&flags); err != nil {
		return err
	}

	if addr == "" {
		addr = net.JoinHostPort(
			configs.Config.Server.Host,
			strconv.Itoa(configs.Config.Server.Port),
		)
	}

	s, err := preview.New(dir)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return s.ListenAndServe(ctx, addr)
}
