package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/teris-io/cli"

	"github.com/mateuszpolis/ctlfmt/pkg/ctl"
)

var Description = strings.ReplaceAll(`
The CTL Formatter re-emits CTL (WinCC-OA Control language) source in canonical
form. Given a single .ctl file it formats that file in place (or to -o);
given a directory it recurses and formats every .ctl file it finds in place.
`, "\n", " ")

// FS is the filesystem the driver reads/writes through. It defaults to the
// real OS filesystem but is swapped for an afero.NewMemMapFs() in tests, the
// same substitution the teacher's provider_directory_test.go performs.
var FS afero.Fs = afero.NewOsFs()

const lintErrorsFile = "lint_errors.txt"

var CtlFormatter = cli.New(Description).
	WithArg(cli.NewArg("path", "A .ctl file or a directory to format recursively")).
	WithOption(cli.NewOption("o", "Output file (single-file mode only, default: overwrite in place)").
		WithType(cli.TypeString)).
	WithOption(cli.NewOption("a", "Write the AST text dump to this file (single-file mode only)").
		WithType(cli.TypeString)).
	WithAction(Handler)

func Handler(args []string, options map[string]string) int {
	if len(args) < 1 {
		fmt.Printf("ERROR: Not enough arguments provided, use --help\n")
		return -1
	}
	target := args[0]

	info, err := FS.Stat(target)
	if err != nil {
		log.Errorf("unable to stat %s: %s", target, err)
		return -1
	}

	if info.IsDir() {
		if options["o"] != "" || options["a"] != "" {
			log.Error("-o and -a are rejected in directory mode")
			return -1
		}
		return runDirectory(target)
	}
	return runFile(target, options["o"], options["a"])
}

// runFile formats a single .ctl file, writing the result to outPath (the
// input path itself when outPath is empty) and, when astPath is non-empty,
// the AST text dump to astPath.
func runFile(inPath, outPath, astPath string) int {
	program, err := formatOne(inPath)
	if err != nil {
		log.Errorf("%s: %s", inPath, err)
		return -1
	}

	if outPath == "" {
		outPath = inPath
	}
	if err := afero.WriteFile(FS, outPath, []byte(program.formatted), 0o644); err != nil {
		log.Errorf("unable to write %s: %s", outPath, err)
		return -1
	}

	if astPath != "" {
		if err := afero.WriteFile(FS, astPath, []byte(program.dump), 0o644); err != nil {
			log.Errorf("unable to write %s: %s", astPath, err)
			return -1
		}
	}

	log.Infof("%s: formatted", inPath)
	return 0
}

type formatResult struct {
	formatted string
	dump      string
}

// formatOne reads, lexes, parses, and re-emits a single .ctl file. It is the
// shared core of both the single-file and directory-walk modes.
func formatOne(path string) (formatResult, error) {
	content, err := afero.ReadFile(FS, path)
	if err != nil {
		return formatResult{}, fmt.Errorf("reading file: %w", err)
	}

	tokens, err := ctl.Lex(string(content))
	if err != nil {
		return formatResult{}, fmt.Errorf("lexing: %w", err)
	}

	program, err := ctl.Parse(tokens)
	if err != nil {
		return formatResult{}, fmt.Errorf("parsing: %w", err)
	}

	return formatResult{formatted: ctl.Format(program), dump: ctl.Dump(program)}, nil
}

// runDirectory recurses over target, formatting every .ctl file it finds in
// place, logging a status line per file and accumulating failures into a
// single multierror rather than stopping at the first one. Failures are
// also appended to lint_errors.txt (cleared at startup) and counted into the
// final run summary.
func runDirectory(target string) int {
	if err := FS.Remove(lintErrorsFile); err != nil && !os.IsNotExist(err) {
		log.Errorf("unable to clear %s: %s", lintErrorsFile, err)
		return -1
	}

	var total, successful int
	var failures *multierror.Error

	err := afero.Walk(FS, target, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || filepath.Ext(path) != ".ctl" {
			return nil
		}

		total++
		result, fErr := formatOne(path)
		if fErr != nil {
			failures = multierror.Append(failures, fmt.Errorf("%s: %w", path, fErr))
			appendLintError(path, fErr)
			log.Errorf("%s: %s", path, fErr)
			return nil
		}

		if werr := afero.WriteFile(FS, path, []byte(result.formatted), 0o644); werr != nil {
			failures = multierror.Append(failures, fmt.Errorf("%s: %w", path, werr))
			appendLintError(path, werr)
			log.Errorf("%s: %s", path, werr)
			return nil
		}

		successful++
		log.Infof("%s: formatted", path)
		return nil
	})
	if err != nil {
		log.Errorf("unable to walk %s: %s", target, err)
		return -1
	}

	printSummary(total, successful)
	if failures != nil {
		log.Errorf("completed with %d failing file(s), see %s", len(failures.Errors), lintErrorsFile)
	}
	return 0
}

func appendLintError(path string, err error) {
	f, openErr := FS.OpenFile(lintErrorsFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if openErr != nil {
		log.Errorf("unable to open %s: %s", lintErrorsFile, openErr)
		return
	}
	defer f.Close()
	fmt.Fprintf(f, "%s: %s\n", path, err)
}

func printSummary(total, successful int) {
	failed := total - successful
	successRate, errorRate := 0.0, 0.0
	if total > 0 {
		successRate = float64(successful) / float64(total) * 100
		errorRate = float64(failed) / float64(total) * 100
	}
	log.Infof("processed %d file(s): %d successful, %d failed (%.1f%% success, %.1f%% error)",
		total, successful, failed, successRate, errorRate)
}

func main() { os.Exit(CtlFormatter.Run(os.Args, os.Stdout)) }
