package main

import (
	"flag"
	"fmt"

	"github.com/grindlemire/qmlfmt/internal/config"
	"github.com/grindlemire/qmlfmt/internal/log"
)

// settingsFlags are the flags that override config values.
type settingsFlags struct {
	configPath string
	logPath    string
	blank      string
	delimiter  string
	indent     int
	clamp      bool
	jobs       int
}

// register adds the formatting flags to fs. The lsp command only takes
// --config and --log.
func (f *settingsFlags) register(fs *flag.FlagSet, formatting bool) {
	fs.StringVar(&f.configPath, "config", "", "config file")
	fs.StringVar(&f.logPath, "log", "", "path to log file for debugging")
	if !formatting {
		return
	}
	fs.StringVar(&f.blank, "blank", "", "blank line policy: strip-leading or collapse")
	fs.StringVar(&f.delimiter, "delimiter", "", "logical line separator")
	fs.IntVar(&f.indent, "indent", 0, "spaces per nesting level")
	fs.BoolVar(&f.clamp, "clamp", false, "never let nesting depth go below zero")
	fs.IntVar(&f.jobs, "j", 0, "files processed in parallel")
}

// resolve loads the config file, applies the environment and then every
// flag that was set explicitly on fs.
func (f *settingsFlags) resolve(fs *flag.FlagSet, environ []string) (config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return cfg, err
	}
	cfg, err = config.EnvOverlay(cfg, environ)
	if err != nil {
		return cfg, err
	}

	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "log":
			cfg.LogFile = f.logPath
		case "blank":
			cfg.BlankPolicy = f.blank
		case "delimiter":
			cfg.Delimiter = f.delimiter
		case "indent":
			cfg.IndentWidth = f.indent
			cfg.IndentWidthSet = true
		case "clamp":
			cfg.ClampNegative = f.clamp
		case "j":
			cfg.Jobs = f.jobs
		}
	})

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid settings: %w", err)
	}
	return cfg, nil
}

// openLog starts debug logging when cfg names a log file. The returned
// function closes it.
func openLog(cfg config.Config) (func(), error) {
	if cfg.LogFile == "" {
		return func() {}, nil
	}
	f, err := log.OpenFile(cfg.LogFile)
	if err != nil {
		return nil, err
	}
	return func() {
		log.SetOutput(nil)
		_ = f.Close()
	}, nil
}

// newFlagSet returns a flag set that reports parse errors to s.err instead
// of exiting.
func newFlagSet(name string, s streams) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(s.err)
	fs.Usage = func() {
		fmt.Fprintf(s.err, "usage: qmlfmt %s [options] [path...]\n", name)
		fs.PrintDefaults()
	}
	return fs
}
