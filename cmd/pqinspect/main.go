// Command pqinspect exercises the full lex/parse/inspection pipeline
// (package task) over one file and one cursor position, printing the
// visible scope, enclosing invocation, and autocomplete suggestions at
// that position — the same query an editor integration would run, run
// once from a terminal.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/odvcencio/powerquery-parser/inspection"
	"github.com/odvcencio/powerquery-parser/localization"
	"github.com/odvcencio/powerquery-parser/report"
	"github.com/odvcencio/powerquery-parser/task"
	"github.com/odvcencio/powerquery-parser/text"
)

func main() {
	log.SetFlags(0)

	input := flag.String("input", "", "path to a Power Query (.pq/.m) source file")
	posFlag := flag.String("pos", "1:1", "cursor position as line:column (1-based)")
	locale := flag.String("locale", "", "locale for rendered error messages (default "+localization.DefaultLocale+")")
	parserKind := flag.String("parser", "", "reader implementation: recursive-descent or combinatorial")
	configPath := flag.String("config", "", "optional YAML run configuration file")
	csvPath := flag.String("csv", "", "optional CSV report destination (appends one row)")
	flag.Parse()

	if *input == "" {
		fmt.Fprintln(os.Stderr, "usage: pqinspect -input file.pq -pos line:column [-locale xx-XX] [-parser recursive-descent|combinatorial] [-config run.yaml] [-csv report.csv]")
		os.Exit(1)
	}

	cfg, err := loadRunConfig(*configPath)
	if err != nil {
		log.Fatalf("load config %s: %v", *configPath, err)
	}
	if *locale == "" {
		*locale = cfg.Locale
	}
	if *parserKind == "" {
		*parserKind = cfg.Parser
	}
	if *csvPath == "" {
		*csvPath = cfg.CSV
	}

	line, column, err := parseLineColumn(*posFlag)
	if err != nil {
		log.Fatalf("parse -pos %q: %v", *posFlag, err)
	}

	source, err := os.ReadFile(*input)
	if err != nil {
		log.Fatalf("read %s: %v", *input, err)
	}
	src := string(source)

	settings := task.New(
		task.WithLocale(resolveLocale(*locale)),
		task.WithParser(resolveParserKind(*parserKind)),
	)

	pos := text.PositionAtLineColumn(src, "", line, column)
	result, err := task.TryLexParseInspection(settings, src, pos)
	if err != nil {
		msg, ok := localization.Message(settings.Locale, err)
		if !ok {
			msg = err.Error()
		}
		fmt.Fprintf(os.Stderr, "%s: %s\n", *input, msg)
		if result.Inspected.Scope == nil {
			os.Exit(1)
		}
		// A parse error still carries a usable partial inspection
		// (spec §7) — fall through and print it instead of exiting.
	}

	printInspected(os.Stdout, *input, pos, result.Inspected)

	if *csvPath != "" {
		if err := appendCSVRow(*csvPath, *input, pos, result.Inspected); err != nil {
			log.Fatalf("write csv %s: %v", *csvPath, err)
		}
	}
}

func parseLineColumn(s string) (line int, column int, err error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected line:column, got %q", s)
	}
	line, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid line %q: %w", parts[0], err)
	}
	column, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid column %q: %w", parts[1], err)
	}
	return line, column, nil
}

func resolveLocale(locale string) string {
	if locale == "" {
		return localization.DefaultLocale
	}
	return locale
}

func resolveParserKind(kind string) task.ParserKind {
	if kind == "combinatorial" {
		return task.ParserCombinatorial
	}
	return task.ParserRecursiveDescent
}

func printInspected(w io.Writer, file string, pos text.Position, inspected inspection.Inspected) {
	fmt.Fprintf(w, "%s @ %s\n", file, pos)
	if inspected.Scope != nil {
		fmt.Fprintf(w, "  scope: %s\n", strings.Join(inspected.Scope.Names(), ", "))
	}
	if inv := inspected.Invoke; inv != nil {
		name := "<dynamic>"
		if inv.Name != nil {
			name = *inv.Name
		}
		fmt.Fprintf(w, "  invoke: %s (argument %d of %d)\n", name, inv.PositionArgumentIndex, inv.NumArguments)
	}
	if len(inspected.KeywordAutocomplete) > 0 {
		fmt.Fprintf(w, "  keywords: %s\n", strings.Join(inspected.KeywordAutocomplete, ", "))
	}
	if len(inspected.PrimitiveTypeAutocomplete) > 0 {
		fmt.Fprintf(w, "  primitive types: %s\n", strings.Join(inspected.PrimitiveTypeAutocomplete, ", "))
	}
	if len(inspected.LanguageConstantAutocomplete) > 0 {
		fmt.Fprintf(w, "  language constants: %s\n", strings.Join(inspected.LanguageConstantAutocomplete, ", "))
	}
}

func appendCSVRow(path, file string, pos text.Position, inspected inspection.Inspected) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}

	var w *report.CSVWriter
	if info.Size() == 0 {
		w, err = report.NewCSVWriter(f)
		if err != nil {
			return err
		}
	} else {
		w = report.NewCSVAppender(f)
	}

	if err := w.WriteResult(report.FromInspected(file, pos, inspected)); err != nil {
		return err
	}
	return w.Close()
}
