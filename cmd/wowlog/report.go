package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/halwyn/wowlog-parser/internal/config"
	"github.com/halwyn/wowlog-parser/internal/report"
	"github.com/halwyn/wowlog-parser/internal/store"
)

func runReport(cfg config.Config, args []string) int {
	fs := flag.NewFlagSet("report", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	filePath := fs.String("file", "", "path to combat log")
	version := fs.Int("version", cfg.LogVersion, "log format version (1 legacy text, 2 structured)")
	you := fs.String("you", cfg.LoggerName, "logger display name substituted for first-person references (v1 only)")
	baseYear := fs.Int("base-year", cfg.BaseYear, "year completing log timestamps (0 = current)")
	extensions := fs.String("extensions", strings.Join(cfg.Extensions, ","), "comma-separated extension set")
	doClassify := fs.Bool("classify", false, "run the class/pet classifier after the pass")
	hints := fs.String("hints", cfg.HintsPath, "classifier hint file")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *filePath == "" {
		fmt.Fprintln(os.Stderr, "--file is required")
		return 2
	}
	if !versionFlagValid(*version) {
		fmt.Fprintln(os.Stderr, "--version must be 1 or 2")
		return 2
	}

	p, err := newPass(*version, *you, *baseYear, strings.Split(*extensions, ","), *doClassify)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return 2
	}
	if err := p.ingest(*filePath, formatLabel(*version)); err != nil {
		fmt.Fprintf(os.Stderr, "failed to read file: %v\n", err)
		return 1
	}

	first := true
	section := func() {
		if !first {
			fmt.Fprintln(os.Stdout)
		}
		first = false
	}

	if h := p.healing(); h != nil {
		section()
		report.Healing(os.Stdout, h)
	}
	if d := p.dispels(); d != nil {
		section()
		report.Dispels(os.Stdout, d)
	}
	if ix := p.index(); ix != nil {
		section()
		report.Units(os.Stdout, ix)
	}
	if *doClassify {
		assignments, err := p.classify(*hints)
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			return 1
		}
		section()
		report.Classes(os.Stdout, assignments)
	}
	return 0
}

func runExport(cfg config.Config, args []string) int {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	filePath := fs.String("file", "", "path to combat log")
	dbPath := fs.String("db", "", "output SQLite database")
	version := fs.Int("version", cfg.LogVersion, "log format version (1 legacy text, 2 structured)")
	you := fs.String("you", cfg.LoggerName, "logger display name substituted for first-person references (v1 only)")
	baseYear := fs.Int("base-year", cfg.BaseYear, "year completing log timestamps (0 = current)")
	extensions := fs.String("extensions", strings.Join(cfg.Extensions, ","), "comma-separated extension set")
	doClassify := fs.Bool("classify", false, "also export class/pet assignments")
	hints := fs.String("hints", cfg.HintsPath, "classifier hint file")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *filePath == "" || *dbPath == "" {
		fmt.Fprintln(os.Stderr, "--file and --db are required")
		return 2
	}
	if !versionFlagValid(*version) {
		fmt.Fprintln(os.Stderr, "--version must be 1 or 2")
		return 2
	}

	p, err := newPass(*version, *you, *baseYear, strings.Split(*extensions, ","), *doClassify)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return 2
	}
	if err := p.ingest(*filePath, formatLabel(*version)); err != nil {
		fmt.Fprintf(os.Stderr, "failed to read file: %v\n", err)
		return 1
	}

	st, err := store.Open(*dbPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return 1
	}
	defer st.Close()

	if h := p.healing(); h != nil {
		if err := st.WriteHealing(h); err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			return 1
		}
	}
	if d := p.dispels(); d != nil {
		if err := st.WriteDispels(d); err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			return 1
		}
	}
	if ix := p.index(); ix != nil {
		if err := st.WriteUnits(ix); err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			return 1
		}
	}
	if *doClassify {
		assignments, err := p.classify(*hints)
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			return 1
		}
		if err := st.WriteClasses(assignments); err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			return 1
		}
	}
	return 0
}
