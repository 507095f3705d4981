package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/grindlemire/qmlfmt/pkg/lsp"
)

func runLSP(args []string, s streams) error {
	var sf settingsFlags
	fs := newFlagSet("lsp", s)
	sf.register(fs, false)

	if _, err := parseArgs(fs, args); err != nil {
		return err
	}

	cfg, err := sf.resolve(fs, s.environ)
	if err != nil {
		return err
	}
	closeLog, err := openLog(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	opts, err := cfg.FormatterOptions()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var serverOpts []lsp.ServerOption
	if cfg.IndentWidthSet {
		serverOpts = append(serverOpts, lsp.WithFixedIndent())
	}
	server := lsp.NewServer(s.in, s.out, opts, serverOpts...)
	return server.Run(ctx)
}
