// Package main provides the qmlfmt command, a structural re-indenter for
// QML files.
//
// Usage:
//
//	qmlfmt [fmt] [path...]    Re-indent .qml files in place
//	qmlfmt check [path...]    Report unbalanced brackets
//	qmlfmt lsp                Start the language server
//	qmlfmt help               Show help
//
// Examples:
//
//	qmlfmt ./...              Recursively format all .qml files
//	qmlfmt fmt --check ./ui   Check formatting of a directory
//	qmlfmt < Main.qml         Format stdin to stdout
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
)

const version = "0.1.0"

const usage = `qmlfmt - structural re-indenter for QML

Usage:
  qmlfmt [command] [options] [path...]

Commands:
  fmt         Re-indent files (the default when no command is given)
  check       Report unbalanced brackets without modifying files
  lsp         Start the language server (for editor integration)
  version     Print version information
  help        Show this help message

Options:
  --check         Fail if any file is not formatted
  --stdout        Print formatted output to stdout
  -l              List files whose formatting differs
  -v              Verbose output, including bracket warnings
  --config FILE   Config file (default .qmlfmt.yaml if present)
  --blank POLICY  Blank line policy: strip-leading or collapse
  --clamp         Never let nesting depth go below zero
  --indent N      Spaces per nesting level
  --delimiter C   Logical line separator
  --log FILE      Write debug logs to FILE
  -j N            Files processed in parallel

Examples:
  qmlfmt ./...                       Recursively format all .qml files
  qmlfmt fmt --check ./...           Check formatting without modifying
  qmlfmt fmt --stdout Main.qml       Print formatted output to stdout
  qmlfmt < Main.qml                  Format stdin to stdout
  qmlfmt check -v ./ui               Report bracket problems
  qmlfmt lsp --log /tmp/qmlfmt.log   Start LSP server with debug logging

Settings are read from .qmlfmt.yaml, then QMLFMT_* environment variables
(a .env file in the working directory is loaded first), then flags.
`

// streams carries the process I/O so commands can be run from tests.
type streams struct {
	in  io.Reader
	out io.Writer
	err io.Writer
	// interactive reports whether in is a terminal.
	interactive bool
	environ     []string
}

// errSilent fails a command whose problems were already reported.
var errSilent = errors.New("")

func main() {
	// A missing .env is the common case.
	_ = godotenv.Load()

	s := streams{
		in:          os.Stdin,
		out:         os.Stdout,
		err:         os.Stderr,
		interactive: isTerminal(os.Stdin),
		environ:     os.Environ(),
	}
	os.Exit(run(os.Args[1:], s))
}

// run dispatches args to a command and returns the process exit code.
func run(args []string, s streams) int {
	command := "fmt"
	if len(args) > 0 {
		switch args[0] {
		case "fmt", "check", "lsp", "version", "help", "-h", "--help":
			command = args[0]
			args = args[1:]
		}
	}

	var err error
	switch command {
	case "fmt":
		err = runFmt(args, s)
	case "check":
		err = runCheck(args, s)
	case "lsp":
		err = runLSP(args, s)
	case "version":
		fmt.Fprintf(s.out, "qmlfmt version %s\n", version)
	case "help", "-h", "--help":
		fmt.Fprint(s.out, usage)
	}

	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		if !errors.Is(err, errSilent) {
			fmt.Fprintf(s.err, "error: %v\n", err)
		}
		return 1
	}
	return 0
}
