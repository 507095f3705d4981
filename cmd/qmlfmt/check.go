package main

import (
	"fmt"

	"github.com/grindlemire/qmlfmt/internal/fileio"
)

// runCheck implements the check subcommand.
// It reports unbalanced brackets without modifying anything, which is
// useful in CI where a mis-nested file would otherwise be re-indented
// silently.
func runCheck(args []string, s streams) error {
	var (
		sf      settingsFlags
		verbose bool
	)

	fs := newFlagSet("check", s)
	sf.register(fs, true)
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

	if len(paths) == 0 && !s.interactive {
		res, _, err := formatStdin(fmtr, s.in)
		if err != nil {
			return err
		}
		if !res.Balanced() {
			warnImbalances(s.err, stdinName, res)
			return errSilent
		}
		return nil
	}

	files, err := findFiles(paths, cfg)
	if err != nil {
		return err
	}

	var errorCount, unbalancedCount int
	for _, path := range files {
		src, err := fileio.ReadSource(path)
		if err != nil {
			fmt.Fprintf(s.err, "%s: %v\n", path, err)
			errorCount++
			continue
		}

		res := fmtr.FormatWithResult(src)
		if !res.Balanced() {
			warnImbalances(s.err, path, res)
			unbalancedCount++
			continue
		}
		if verbose {
			fmt.Fprintf(s.out, "OK: %s\n", path)
		}
	}

	if errorCount > 0 {
		return fmt.Errorf("%d file(s) had errors", errorCount)
	}
	if unbalancedCount > 0 {
		return fmt.Errorf("%d file(s) have unbalanced brackets", unbalancedCount)
	}

	if verbose {
		fmt.Fprintf(s.out, "Checked %d file(s)\n", len(files))
	}
	return nil
}
