package stats

import (
	"sort"

	"github.com/halwyn/wowlog-parser/internal/event"
	"github.com/halwyn/wowlog-parser/internal/run"
)

func init() {
	run.Register("dispels", func() run.Extension { return NewDispels() })
}

// DispelRow is one (actor, removed aura) tally.
type DispelRow struct {
	Actor   string
	Removed string
	Count   int64
	Stolen  int64
}

type dispelKey struct {
	actor   string
	removed string
}

// Dispels counts removed auras per dispeller.
type Dispels struct {
	rows map[dispelKey]*DispelRow
}

func NewDispels() *Dispels {
	d := &Dispels{}
	d.Start()
	return d
}

func (d *Dispels) Start() {
	d.rows = make(map[dispelKey]*DispelRow)
}

func (d *Dispels) Actions() []event.ActionKind {
	return []event.ActionKind{event.KindAuraDispelled, event.KindAuraStolen}
}

func (d *Dispels) Process(ev *event.Event) {
	x, ok := ev.Extra.(event.Dispel)
	if !ok {
		return
	}
	key := dispelKey{actor: ev.Actor, removed: x.Removed.Name}
	row := d.rows[key]
	if row == nil {
		row = &DispelRow{Actor: ev.Actor, Removed: x.Removed.Name}
		d.rows[key] = row
	}
	row.Count++
	if ev.Kind == event.KindAuraStolen {
		row.Stolen++
	}
}

func (d *Dispels) Finish() {}

// Rows returns every tally sorted by count descending, then actor and
// removed-aura name ascending.
func (d *Dispels) Rows() []DispelRow {
	out := make([]DispelRow, 0, len(d.rows))
	for _, row := range d.rows {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		if out[i].Actor != out[j].Actor {
			return out[i].Actor < out[j].Actor
		}
		return out[i].Removed < out[j].Removed
	})
	return out
}
