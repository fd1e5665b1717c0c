// Command talkparse converts a local talk page file into topics JSON.
//
//	talkparse -lang de page.html > topics.json
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/dgallion1/talkgest/internal/namespaces"
	"github.com/dgallion1/talkgest/internal/parser"
	"github.com/dgallion1/talkgest/internal/talk"
)

func main() {
	lang := flag.String("lang", "en", "wiki language code used for user namespace names")
	workers := flag.Int("workers", talk.DefaultWorkers, "topics processed concurrently")
	validate := flag.Bool("validate", false, "check output against the talk schema")
	pretty := flag.Bool("pretty", false, "indent JSON output")
	verbose := flag.Bool("v", false, "debug logging to stderr")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] FILE\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := run(flag.Arg(0), *lang, *workers, *validate, *pretty, log); err != nil {
		log.Error("talkparse failed", "error", err)
		os.Exit(1)
	}
}

func run(path, lang string, workers int, validate, pretty bool, log *slog.Logger) error {
	p, err := parser.ForFile(path)
	if err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	doc, err := p.Parse(f, path)
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	names := namespaces.ForLang(lang)
	if names == nil {
		log.Warn("unknown language, user links will not count as signatures", "lang", lang)
	}
	out := talk.Parse(doc.Root, talk.Options{Names: names, Workers: workers, Logger: log})

	data, err := json.Marshal(out)
	if err != nil {
		return fmt.Errorf("marshal topics: %w", err)
	}
	if validate {
		if err := talk.ValidateOutput(data); err != nil {
			return err
		}
	}
	if pretty {
		var buf bytes.Buffer
		if err := json.Indent(&buf, data, "", "  "); err != nil {
			return err
		}
		data = buf.Bytes()
	}
	data = append(data, '\n')
	_, err = os.Stdout.Write(data)
	return err
}
