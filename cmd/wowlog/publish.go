package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/halwyn/wowlog-parser/internal/config"
	"github.com/halwyn/wowlog-parser/internal/event"
	"github.com/halwyn/wowlog-parser/internal/parse"
	"github.com/halwyn/wowlog-parser/internal/tail"
)

// Wire types for the hub's publish endpoint.
type statEvent struct {
	TsUnixMs int64  `json:"tsUnixMs"`
	Kind     string `json:"kind"`
	Actor    string `json:"actor"`
	Target   string `json:"target"`
	Spell    string `json:"spell"`
	Amount   int64  `json:"amount"`
	Crit     bool   `json:"crit"`
}

type publishBatch struct {
	PublisherID  string      `json:"publisherId"`
	SentAtUnixMs int64       `json:"sentAtUnixMs"`
	Events       []statEvent `json:"events"`
}

func runPublish(cfg config.Config, args []string) int {
	fs := flag.NewFlagSet("publish", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	filePath := fs.String("file", "", "path to combat log")
	hubURL := fs.String("hub", "", "hub base URL, e.g. http://127.0.0.1:8787")
	room := fs.String("room", "", "room id")
	token := fs.String("token", "", "room token")
	version := fs.Int("version", cfg.LogVersion, "log format version (1 legacy text, 2 structured)")
	you := fs.String("you", cfg.LoggerName, "logger display name substituted for first-person references (v1 only)")
	baseYear := fs.Int("base-year", cfg.BaseYear, "year completing log timestamps (0 = current)")
	follow := fs.Bool("follow", false, "tail the file and publish new lines as they are appended")
	interval := fs.Duration("interval", 2*time.Second, "batch publish interval")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *filePath == "" || *hubURL == "" || *room == "" || *token == "" {
		fmt.Fprintln(os.Stderr, "--file, --hub, --room and --token are required")
		return 2
	}
	if !versionFlagValid(*version) {
		fmt.Fprintln(os.Stderr, "--version must be 1 or 2")
		return 2
	}

	d := parse.NewDecoder(parse.Version(*version))
	d.LoggerName = *you
	d.BaseYear = *baseYear

	pub := &publisher{
		client:      &http.Client{Timeout: 10 * time.Second},
		endpoint:    strings.TrimRight(*hubURL, "/") + "/v1/rooms/" + *room + "/events",
		token:       *token,
		publisherID: uuid.NewString(),
	}

	if !*follow {
		f, err := os.Open(*filePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open file: %v\n", err)
			return 1
		}
		defer f.Close()

		it := d.ParseFile(f)
		for it.Next() {
			ev := it.Event()
			pub.observe(&ev)
		}
		if err := it.Err(); err != nil {
			fmt.Fprintf(os.Stderr, "failed to read file: %v\n", err)
			return 1
		}
		if err := pub.flush(); err != nil {
			fmt.Fprintf(os.Stderr, "publish failed: %v\n", err)
			return 1
		}
		return 0
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	lineCh := make(chan string, 1024)
	errCh := make(chan error, 1)
	go func() {
		errCh <- tail.Follow(ctx, *filePath, tail.Options{StartAtEnd: true}, func(line string) {
			select {
			case lineCh <- line:
			default:
			}
		})
	}()

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			_ = pub.flush()
			return 0
		case err := <-errCh:
			if err != nil {
				fmt.Fprintf(os.Stderr, "tail error: %v\n", err)
				return 1
			}
			return 0
		case line := <-lineCh:
			ev := d.ParseLine(line)
			pub.observe(&ev)
		case <-ticker.C:
			if err := pub.flush(); err != nil {
				fmt.Fprintf(os.Stderr, "publish failed: %v\n", err)
			}
		}
	}
}

// publisher buffers damage and heal facts in a bounded ring and ships them
// in batches.
type publisher struct {
	client      *http.Client
	endpoint    string
	token       string
	publisherID string

	buf []statEvent
}

const maxBuffered = 4096

func (p *publisher) observe(ev *event.Event) {
	var se statEvent
	switch x := ev.Extra.(type) {
	case event.Damage:
		se = statEvent{Kind: "damage", Spell: x.Spell.Name, Amount: x.Amount, Crit: x.Critical}
	case event.Heal:
		se = statEvent{Kind: "heal", Spell: x.Spell.Name, Amount: x.Amount, Crit: x.Critical}
	default:
		return
	}
	se.Actor = ev.Actor
	se.Target = ev.Target
	if ev.When > 0 {
		se.TsUnixMs = int64(ev.When * 1000)
	} else {
		se.TsUnixMs = time.Now().UnixMilli()
	}

	p.buf = append(p.buf, se)
	if len(p.buf) > maxBuffered {
		p.buf = p.buf[len(p.buf)-maxBuffered:]
	}
}

func (p *publisher) flush() error {
	if len(p.buf) == 0 {
		return nil
	}
	batch := publishBatch{
		PublisherID:  p.publisherID,
		SentAtUnixMs: time.Now().UnixMilli(),
		Events:       p.buf,
	}
	body, err := json.Marshal(batch)
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-WowLog-Token", p.token)

	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("hub returned %s", resp.Status)
	}

	p.buf = p.buf[:0]
	return nil
}
