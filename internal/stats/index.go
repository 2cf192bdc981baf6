package stats

import (
	"sort"

	"github.com/halwyn/wowlog-parser/internal/event"
	"github.com/halwyn/wowlog-parser/internal/run"
)

func init() {
	run.Register("index", func() run.Extension { return NewIndex() })
}

// Unit is one observed combatant.
type Unit struct {
	ID    uint64
	Name  string
	Flags event.UnitFlags
	Seen  int64
}

// IndexedSpell is one observed spell id/name pair.
type IndexedSpell struct {
	ID   int64
	Name string
	Seen int64
}

// Index is a wildcard extension building name/id lookup tables from every
// event of the pass.
type Index struct {
	units  map[string]*Unit
	spells map[int64]*IndexedSpell
}

func NewIndex() *Index {
	ix := &Index{}
	ix.Start()
	return ix
}

func (ix *Index) Start() {
	ix.units = make(map[string]*Unit)
	ix.spells = make(map[int64]*IndexedSpell)
}

// Actions is empty: the index wants every kind.
func (ix *Index) Actions() []event.ActionKind { return nil }

func (ix *Index) Process(ev *event.Event) {
	ix.seeUnit(ev.Actor, ev.ActorID, ev.ActorFlags)
	ix.seeUnit(ev.Target, ev.TargetID, ev.TargetFlags)

	switch x := ev.Extra.(type) {
	case event.Damage:
		ix.seeSpell(x.Spell)
	case event.Missed:
		ix.seeSpell(x.Spell)
	case event.Heal:
		ix.seeSpell(x.Spell)
	case event.Energize:
		ix.seeSpell(x.Spell)
	case event.Drain:
		ix.seeSpell(x.Spell)
	case event.ExtraAttacks:
		ix.seeSpell(x.Spell)
	case event.Aura:
		ix.seeSpell(x.Spell)
	case event.AuraDose:
		ix.seeSpell(x.Spell)
	case event.Dispel:
		ix.seeSpell(x.Spell)
		ix.seeSpell(x.Removed)
	case event.Cast:
		ix.seeSpell(x.Spell)
	case event.CastFailed:
		ix.seeSpell(x.Spell)
	case event.Interrupt:
		ix.seeSpell(x.Spell)
		ix.seeSpell(x.Interrupted)
	}
}

func (ix *Index) Finish() {}

func (ix *Index) seeUnit(name string, id uint64, flags event.UnitFlags) {
	if name == "" {
		return
	}
	u := ix.units[name]
	if u == nil {
		u = &Unit{Name: name}
		ix.units[name] = u
	}
	if u.ID == 0 {
		u.ID = id
	}
	if u.Flags == 0 {
		u.Flags = flags
	}
	u.Seen++
}

func (ix *Index) seeSpell(sp event.Spell) {
	if sp.ID == 0 {
		return
	}
	s := ix.spells[sp.ID]
	if s == nil {
		s = &IndexedSpell{ID: sp.ID, Name: sp.Name}
		ix.spells[sp.ID] = s
	}
	s.Seen++
}

// Unit looks a combatant up by display name.
func (ix *Index) Unit(name string) (Unit, bool) {
	u, ok := ix.units[name]
	if !ok {
		return Unit{}, false
	}
	return *u, true
}

// SpellName looks a spell name up by id.
func (ix *Index) SpellName(id int64) (string, bool) {
	s, ok := ix.spells[id]
	if !ok {
		return "", false
	}
	return s.Name, true
}

// Units returns every observed combatant, name ascending.
func (ix *Index) Units() []Unit {
	out := make([]Unit, 0, len(ix.units))
	for _, u := range ix.units {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Spells returns every observed spell, id ascending.
func (ix *Index) Spells() []IndexedSpell {
	out := make([]IndexedSpell, 0, len(ix.spells))
	for _, s := range ix.spells {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
