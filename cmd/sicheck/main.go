// Command sicheck validates SI records stored in YAML or JSON files and
// prints the issues and auto-fixes found for each record.
//
// Usage:
//
//	sicheck [-format text|json] [-date YYYY-MM-DD] [-v] file...
//
// Text output lists errors for each record; -v adds auto-fixes, warnings and
// debug logging on stderr.
//
// The exit status is 1 when any record is invalid and 2 on usage or read errors.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/dmitrymomot/irisprep/pkg/iris"
	"github.com/dmitrymomot/irisprep/pkg/logger"
	"github.com/dmitrymomot/irisprep/pkg/rules"
	"github.com/dmitrymomot/irisprep/pkg/si"
	"github.com/dmitrymomot/irisprep/pkg/sifile"
)

type fileResult struct {
	File   string                `json:"file"`
	Record si.Record             `json:"record"`
	Result iris.ValidationResult `json:"result"`
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("sicheck", flag.ContinueOnError)
	fs.SetOutput(stderr)
	format := fs.String("format", "text", "output format: text or json")
	date := fs.String("date", "", "reference date for future-date checks (YYYY-MM-DD, default today)")
	verbose := fs.Bool("v", false, "print auto-fixes and warnings, log progress to stderr")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	log := logger.New(logger.WithFormat(logger.FormatText), logger.WithOutput(stderr), logger.WithLevel(level))

	if fs.NArg() == 0 || (*format != "text" && *format != "json") {
		fs.Usage()
		return 2
	}

	now := time.Now()
	if *date != "" {
		d, err := time.ParseInLocation(time.DateOnly, *date, time.Local)
		if err != nil {
			log.Error("invalid -date", logger.Error(err))
			return 2
		}
		now = d
	}

	reg := rules.New()
	var results []fileResult
	for _, path := range fs.Args() {
		recs, err := sifile.Load(ctx, path)
		if err != nil {
			log.Error("failed to load SI file", slog.String("file", path), logger.Error(err))
			return 2
		}
		for _, rec := range recs {
			res := iris.Validate(reg, rec, now)
			log.Debug("record validated", slog.String("file", path), logger.RecordID(rec.ID),
				logger.IssueCount(len(res.Issues)))
			results = append(results, fileResult{File: path, Record: rec, Result: res})
		}
	}

	if *format == "json" {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			log.Error("failed to write results", logger.Error(err))
			return 2
		}
	} else {
		printText(stdout, results, *verbose)
	}

	for _, r := range results {
		if !r.Result.IsValid {
			return 1
		}
	}
	return 0
}

func printText(w io.Writer, results []fileResult, verbose bool) {
	for _, r := range results {
		status := "VALID"
		if !r.Result.IsValid {
			status = "INVALID"
		}
		name := r.Record.ID
		if name == "" {
			name = "(no id)"
		}
		m := r.Result.Metadata
		fmt.Fprintf(w, "%s %s: %s (%d fields, %d invalid, %d warnings, %d auto-fixed)\n",
			r.File, name, status, m.TotalFields, m.InvalidFields, m.WarningFields, m.AutoFixedFields)

		issues := r.Result.Errors()
		if verbose {
			for _, fix := range r.Result.AutoFixes {
				fmt.Fprintf(w, "  fix   %-18s %q -> %q (%s)\n", fix.Field, fix.OriginalValue, fix.FixedValue, fix.Reason)
			}
			issues = r.Result.Issues
		}
		for _, is := range issues {
			fmt.Fprintf(w, "  %-5s %-18s %s: %s", is.Severity, is.Field, is.Code, is.Message)
			if is.Suggestion != "" {
				fmt.Fprintf(w, " (%s)", is.Suggestion)
			}
			fmt.Fprintln(w)
		}
	}
}
