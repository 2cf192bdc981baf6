// Package parse turns raw combat-log lines into canonical events. Two
// incompatible wire formats are supported: version 1 is the free-text
// narrative format decoded by an ordered grammar (legacy.go), version 2 is
// the comma-delimited structured format decoded positionally against a
// per-kind schema (structured.go).
package parse

import (
	"bufio"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/halwyn/wowlog-parser/internal/event"
)

// Version selects the wire format of the log being decoded.
type Version int

const (
	VersionLegacy     Version = 1
	VersionStructured Version = 2
)

// Decoder holds the per-pass configuration shared by both grammars.
type Decoder struct {
	Version Version

	// LoggerName replaces first-person references ("you") in legacy
	// lines. The structured format carries resolved names already.
	LoggerName string

	// BaseYear completes legacy/structured timestamps, which carry no
	// year. Zero means the current year.
	BaseYear int

	// Location resolves the wall-clock timestamp into epoch seconds.
	// Nil means time.Local.
	Location *time.Location
}

// NewDecoder returns a Decoder for the given format version with the
// default logger identity "You".
func NewDecoder(v Version) *Decoder {
	return &Decoder{Version: v, LoggerName: "You"}
}

// Timestamp prefix: "M/D H:MM:SS.fff" followed by two spaces.
var reTimestamp = regexp.MustCompile(`^(\d{1,2})/(\d{1,2}) (\d{1,2}):(\d{2}):(\d{2})\.(\d{1,3})  (.*)$`)

// ParseLine decodes one trimmed log line. A line matching no grammar rule
// (or an unknown structured kind) still yields an event; its Kind is
// event.KindUnknown or the unknown token respectively. ParseLine never
// fails: a malformed timestamp decodes as When=0 and the rest of the line
// is still consumed.
func (d *Decoder) ParseLine(line string) event.Event {
	line = strings.TrimSuffix(line, "\r")

	when, body := d.splitTimestamp(line)
	var ev event.Event
	if d.Version == VersionStructured {
		ev = d.decodeStructured(body)
	} else {
		ev = d.decodeLegacy(body)
	}
	ev.When = when
	return ev
}

// splitTimestamp strips a leading timestamp token and converts it to epoch
// seconds plus the retained fraction. Lines without one decode with When=0.
func (d *Decoder) splitTimestamp(line string) (float64, string) {
	m := reTimestamp.FindStringSubmatch(line)
	if m == nil {
		return 0, line
	}
	month, _ := strconv.Atoi(m[1])
	day, _ := strconv.Atoi(m[2])
	hour, _ := strconv.Atoi(m[3])
	min, _ := strconv.Atoi(m[4])
	sec, _ := strconv.Atoi(m[5])

	loc := d.Location
	if loc == nil {
		loc = time.Local
	}
	year := d.BaseYear
	if year == 0 {
		year = time.Now().In(loc).Year()
	}

	t := time.Date(year, time.Month(month), day, hour, min, sec, 0, loc)
	frac, _ := strconv.ParseFloat("0."+m[6], 64)
	return float64(t.Unix()) + frac, m[7]
}

// ParseFile returns an iterator over every line of r, in file order.
func (d *Decoder) ParseFile(r io.Reader) *Iterator {
	return &Iterator{r: r, d: d}
}

// Iterator walks a log stream line by line.
type Iterator struct {
	r   io.Reader
	s   *bufio.Scanner
	d   *Decoder
	err error

	cur event.Event
}

func (it *Iterator) Next() bool {
	if it.s == nil {
		it.s = bufio.NewScanner(it.r)
		// allow long lines
		buf := make([]byte, 0, 128*1024)
		it.s.Buffer(buf, 4*1024*1024)
	}

	for it.s.Scan() {
		line := it.s.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		it.cur = it.d.ParseLine(line)
		return true
	}
	it.err = it.s.Err()
	return false
}

func (it *Iterator) Event() event.Event { return it.cur }
func (it *Iterator) Err() error         { return it.err }

func parseInt64(s string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
