package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/halwyn/wowlog-parser/internal/classify"
	"github.com/halwyn/wowlog-parser/internal/config"
	"github.com/halwyn/wowlog-parser/internal/event"
	"github.com/halwyn/wowlog-parser/internal/logging"
	"github.com/halwyn/wowlog-parser/internal/metrics"
	"github.com/halwyn/wowlog-parser/internal/parse"
	"github.com/halwyn/wowlog-parser/internal/run"
	"github.com/halwyn/wowlog-parser/internal/stats"
)

func main() {
	os.Exit(runMain(os.Args[1:]))
}

func runMain(args []string) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return 2
	}
	logging.Init(cfg.LogLevel)

	if len(args) == 0 {
		usage()
		return 2
	}

	switch args[0] {
	case "report":
		return runReport(cfg, args[1:])
	case "export":
		return runExport(cfg, args[1:])
	case "publish":
		return runPublish(cfg, args[1:])
	case "-h", "--help", "help":
		usage()
		return 0
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", args[0])
		usage()
		return 2
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "wowlog report --file <path> [--version 1|2] [--you NAME] [--extensions healing,dispels,index] [--classify] [--hints <path>]")
	fmt.Fprintln(os.Stderr, "wowlog export --file <path> --db <out.db> [--version 1|2] [--you NAME] [--classify] [--hints <path>]")
	fmt.Fprintln(os.Stderr, "wowlog publish --file <path> --hub <url> --room <id> --token <token> [--follow]")
}

// pass is one full decode-and-distribute run over a log file.
type pass struct {
	decoder *parse.Decoder
	runner  *run.Runner
	exts    map[string]run.Extension

	// Extension names per kind plus wildcards, mirroring the runner's
	// dispatch index, for the per-extension dispatch counter.
	interested map[event.ActionKind][]string
	wildcards  []string

	// events is the materialized sequence for the batch classifier; nil
	// when classification was not requested.
	events []event.Event
}

func newPass(version int, you string, baseYear int, extNames []string, collect bool) (*pass, error) {
	d := parse.NewDecoder(parse.Version(version))
	d.LoggerName = you
	d.BaseYear = baseYear

	exts := make(map[string]run.Extension, len(extNames))
	ordered := make([]run.Extension, 0, len(extNames))
	interested := make(map[event.ActionKind][]string)
	var wildcards []string
	for _, name := range extNames {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		x, err := run.New(name)
		if err != nil {
			return nil, err
		}
		exts[name] = x
		ordered = append(ordered, x)
		kinds := x.Actions()
		if len(kinds) == 0 {
			wildcards = append(wildcards, name)
			continue
		}
		for _, k := range kinds {
			interested[k] = append(interested[k], name)
		}
	}

	p := &pass{
		decoder:    d,
		runner:     run.NewRunner(ordered...),
		exts:       exts,
		interested: interested,
		wildcards:  wildcards,
	}
	if collect {
		p.events = make([]event.Event, 0, 4096)
	}
	return p, nil
}

func (p *pass) ingest(path string, format string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	p.runner.Start()
	it := p.decoder.ParseFile(f)
	for it.Next() {
		ev := it.Event()
		metrics.LinesTotal.WithLabelValues(format).Inc()
		if ev.Kind == event.KindUnknown {
			metrics.UnrecognizedTotal.Inc()
		}
		p.runner.Process(&ev)
		for _, name := range p.interested[ev.Kind] {
			metrics.DispatchedTotal.WithLabelValues(name).Inc()
		}
		for _, name := range p.wildcards {
			metrics.DispatchedTotal.WithLabelValues(name).Inc()
		}
		if p.events != nil {
			p.events = append(p.events, ev)
		}
	}
	if err := it.Err(); err != nil {
		return err
	}
	p.runner.Finish()
	return nil
}

func (p *pass) healing() *stats.Healing {
	if x, ok := p.exts["healing"].(*stats.Healing); ok {
		return x
	}
	return nil
}

func (p *pass) dispels() *stats.Dispels {
	if x, ok := p.exts["dispels"].(*stats.Dispels); ok {
		return x
	}
	return nil
}

func (p *pass) index() *stats.Index {
	if x, ok := p.exts["index"].(*stats.Index); ok {
		return x
	}
	return nil
}

func (p *pass) classify(hintsPath string) (map[string]classify.Assignment, error) {
	var seeds map[string]classify.Seed
	if hintsPath != "" {
		var err error
		seeds, err = classify.LoadHints(hintsPath)
		if err != nil {
			return nil, err
		}
	}
	return classify.New(seeds).Run(p.events), nil
}

func versionFlagValid(v int) bool { return v == 1 || v == 2 }

func formatLabel(v int) string { return strconv.Itoa(v) }
