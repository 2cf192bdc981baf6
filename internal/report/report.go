// Package report renders extension snapshots as tabwriter tables.
package report

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/halwyn/wowlog-parser/internal/classify"
	"github.com/halwyn/wowlog-parser/internal/spellmeta"
	"github.com/halwyn/wowlog-parser/internal/stats"
)

func newWriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
}

// Healing prints the per-actor healing rollup followed by a per-spell
// drill-down, effective/overheal split out.
func Healing(w io.Writer, h *stats.Healing) {
	tw := newWriter(w)
	fmt.Fprintln(tw, "Healer\tCasts\tTotal\tEffective\tOverheal")
	for _, t := range h.ActorsSortedByTotal() {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\n", t.Actor, t.Count, t.Total, t.Effective, t.Total-t.Effective)
	}
	_ = tw.Flush()

	fmt.Fprintln(w)
	tw = newWriter(w)
	fmt.Fprintln(tw, "Healer\tSpell\tTarget\tCasts\tTotal\tEffective\tHitMin\tHitMax\tCritMin\tCritMax\tTicks")
	for _, rec := range h.Records() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%d\t%d\t%d\t%d\t%d\t%d\n",
			rec.Actor,
			spellmeta.Decorate(rec.Spell.ID, rec.Spell.Name),
			rec.Target,
			rec.Count, rec.Total, rec.Effective,
			rec.Hit.Min, rec.Hit.Max,
			rec.Crit.Min, rec.Crit.Max,
			rec.Tick.Count,
		)
	}
	_ = tw.Flush()
}

// Dispels prints the dispel tally.
func Dispels(w io.Writer, d *stats.Dispels) {
	tw := newWriter(w)
	fmt.Fprintln(tw, "Dispeller\tRemoved\tCount\tStolen")
	for _, row := range d.Rows() {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\n", row.Actor, row.Removed, row.Count, row.Stolen)
	}
	_ = tw.Flush()
}

// Units prints the observed combatant index.
func Units(w io.Writer, ix *stats.Index) {
	tw := newWriter(w)
	fmt.Fprintln(tw, "Unit\tGUID\tReaction\tPet\tEvents")
	for _, u := range ix.Units() {
		pet := ""
		if u.Flags.IsPet() {
			pet = "yes"
		}
		fmt.Fprintf(tw, "%s\t0x%016x\t%s\t%s\t%d\n", u.Name, u.ID, u.Flags.Reaction(), pet, u.Seen)
	}
	_ = tw.Flush()
}

// Classes prints the classifier's assignments, name ascending, pets
// rendered inline after their owner.
func Classes(w io.Writer, assignments map[string]classify.Assignment) {
	names := make([]string, 0, len(assignments))
	for n := range assignments {
		names = append(names, n)
	}
	sort.Strings(names)

	tw := newWriter(w)
	fmt.Fprintln(tw, "Name\tClass\tPets\tSource")
	for _, n := range names {
		a := assignments[n]
		source := "heuristic"
		if a.FromHint {
			source = "hint"
		}
		pets := ""
		for i, p := range a.Pets {
			if i > 0 {
				pets += " "
			}
			pets += p
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", a.Name, a.Class, pets, source)
	}
	_ = tw.Flush()
}
