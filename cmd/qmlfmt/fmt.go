package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/grindlemire/qmlfmt/internal/config"
	"github.com/grindlemire/qmlfmt/internal/fileio"
	"github.com/grindlemire/qmlfmt/internal/log"
	"github.com/grindlemire/qmlfmt/pkg/formatter"
)

// stdinName stands in for a path when filtering stdin.
const stdinName = "<stdin>"

type fmtMode int

const (
	modeInPlace fmtMode = iota
	modeCheck
	modeStdout
	modeList
)

// runFmt implements the fmt subcommand.
// It formats files in place, checks formatting, or filters stdin.
func runFmt(args []string, s streams) error {
	var (
		sf      settingsFlags
		check   bool // exit 1 if any file is not formatted
		stdout  bool // print to stdout instead of modifying files
		list    bool // print the names of files that would change
		verbose bool
	)

	fs := newFlagSet("fmt", s)
	sf.register(fs, true)
	fs.BoolVar(&check, "check", false, "fail if any file is not formatted")
	fs.BoolVar(&stdout, "stdout", false, "print formatted output to stdout")
	fs.BoolVar(&list, "l", false, "list files whose formatting differs")
	fs.BoolVar(&verbose, "v", false, "verbose output")

	paths, err := parseArgs(fs, args)
	if err != nil {
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

	fmtr, err := newFormatter(cfg)
	if err != nil {
		return err
	}

	mode := modeInPlace
	switch {
	case check:
		mode = modeCheck
	case list:
		mode = modeList
	case stdout:
		mode = modeStdout
	}

	// Filter stdin when it is piped and no paths were given
	if len(paths) == 0 && !s.interactive {
		return fmtStdin(fmtr, mode, verbose, s)
	}

	files, err := findFiles(paths, cfg)
	if err != nil {
		return err
	}
	if verbose {
		fmt.Fprintf(s.err, "Found %d file(s)\n", len(files))
	}

	results := formatFiles(fmtr, files, mode == modeInPlace, cfg.Jobs)

	var errorCount, notFormattedCount int
	for _, res := range results {
		if res.err != nil {
			fmt.Fprintf(s.err, "%s: %v\n", res.path, res.err)
			errorCount++
			continue
		}
		if verbose {
			warnImbalances(s.err, res.path, res.result)
		}

		switch mode {
		case modeInPlace:
			if res.changed {
				fmt.Fprintf(s.out, "Formatted: %s\n", res.path)
			}
		case modeCheck:
			if res.changed {
				fmt.Fprintf(s.err, "ERROR: %s is not formatted\n", res.path)
				notFormattedCount++
			}
		case modeList:
			if res.changed {
				fmt.Fprintln(s.out, res.path)
			}
		case modeStdout:
			if len(results) > 1 {
				fmt.Fprintf(s.out, "// %s\n", res.path)
			}
			fmt.Fprint(s.out, res.result.Content)
		}
	}

	if errorCount > 0 {
		return fmt.Errorf("%d file(s) had errors", errorCount)
	}
	if notFormattedCount > 0 {
		return fmt.Errorf("%d file(s) not formatted", notFormattedCount)
	}
	return nil
}

// fmtStdin formats stdin according to mode. In-place mode writes the result
// to stdout.
func fmtStdin(fmtr *formatter.Formatter, mode fmtMode, verbose bool, s streams) error {
	res, changed, err := formatStdin(fmtr, s.in)
	if err != nil {
		return err
	}
	if verbose {
		warnImbalances(s.err, stdinName, res)
	}

	switch mode {
	case modeCheck:
		if changed {
			fmt.Fprintf(s.err, "ERROR: %s is not formatted\n", stdinName)
			return errSilent
		}
	case modeList:
		if changed {
			fmt.Fprintln(s.out, stdinName)
		}
	default:
		fmt.Fprint(s.out, res.Content)
	}
	return nil
}

func formatStdin(fmtr *formatter.Formatter, in io.Reader) (formatter.FormatResult, bool, error) {
	data, err := io.ReadAll(in)
	if err != nil {
		return formatter.FormatResult{}, false, fmt.Errorf("reading stdin: %w", err)
	}
	src, err := fileio.DecodeSource(data)
	if err != nil {
		return formatter.FormatResult{}, false, fmt.Errorf("decoding stdin: %w", err)
	}
	res := fmtr.FormatWithResult(src)
	return res, res.Content != string(data), nil
}

// fileResult is the outcome of formatting one file.
type fileResult struct {
	path   string
	result formatter.FormatResult
	// changed compares against the raw bytes, so CRLF files count as
	// changed even when only line endings differ.
	changed bool
	err     error
}

// formatFiles formats files in parallel, at most jobs at a time, and
// returns the results in input order. A failing file never stops the
// others.
func formatFiles(fmtr *formatter.Formatter, files []string, write bool, jobs int) []fileResult {
	results := make([]fileResult, len(files))

	var g errgroup.Group
	g.SetLimit(jobs)
	for i, path := range files {
		i, path := i, path // per-iteration copy; go directive is 1.21 (pre-loopvar semantics)
		g.Go(func() error {
			results[i] = formatFile(fmtr, path, write)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func formatFile(fmtr *formatter.Formatter, path string, write bool) fileResult {
	res := fileResult{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		res.err = fmt.Errorf("reading file: %w", err)
		return res
	}
	src, err := fileio.DecodeSource(data)
	if err != nil {
		res.err = err
		return res
	}

	res.result = fmtr.FormatWithResult(src)
	res.changed = res.result.Content != string(data)
	log.Format("%s: changed=%t final depth=%d", path, res.changed, res.result.FinalDepth)

	if write && res.changed {
		if err := fileio.WriteAtomic(path, res.result.Content); err != nil {
			res.err = err
		}
	}
	return res
}

// warnImbalances prints one line per bracket imbalance, positioned on the
// physical line of the input.
func warnImbalances(w io.Writer, path string, res formatter.FormatResult) {
	for _, im := range res.Imbalances {
		fmt.Fprintf(w, "%s:%d: warning: %s\n", path, res.SourceLine(im.Line)+1, im.Message())
	}
}

// findFiles collects files from paths, defaulting to the current
// directory.
func findFiles(paths []string, cfg config.Config) ([]string, error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}
	files, err := collectFiles(paths, cfg)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no %s files found", strings.Join(cfg.Extensions, ", "))
	}
	return files, nil
}

func newFormatter(cfg config.Config) (*formatter.Formatter, error) {
	opts, err := cfg.FormatterOptions()
	if err != nil {
		return nil, err
	}
	return formatter.NewWithOptions(opts)
}

// parseArgs parses flags that may be interleaved with paths and returns
// the paths. Everything after "--" is a path. Parse errors have already
// been printed by fs.
func parseArgs(fs *flag.FlagSet, args []string) ([]string, error) {
	var paths []string
	for {
		if err := fs.Parse(args); err != nil {
			if err == flag.ErrHelp {
				return nil, err
			}
			return nil, errSilent
		}
		rest := fs.Args()
		if n := len(args) - len(rest); n > 0 && args[n-1] == "--" {
			return append(paths, rest...), nil
		}
		if len(rest) == 0 {
			return paths, nil
		}
		paths = append(paths, rest[0])
		args = rest[1:]
	}
}
