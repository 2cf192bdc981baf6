// Package classify infers participant classes and pet-ownership edges from
// behavioral fingerprints, in one batch pass over the full event sequence.
package classify

import (
	"regexp"
	"sort"

	"github.com/halwyn/wowlog-parser/internal/event"
)

// Assignment is the classifier's verdict for one participant.
type Assignment struct {
	Name  string
	Class string
	Pets  []string

	// FromHint marks ground-truth seeds, which take precedence over the
	// heuristic.
	FromHint bool
}

// Seed is a ground-truth override loaded from a hint file.
type Seed struct {
	Class string
	Pets  []string
}

// Shape of a player display name: initial capital, lowercase letters after.
var rePlayerName = regexp.MustCompile(`^[A-Z][a-z]*$`)

type category uint8

const (
	catDamage category = iota
	catHeals
	catCasts
	catAuras
)

// scratch: per participant, per class, the set of distinct matched spell
// names. Repeated casts of the same spell count once.
type scratch map[string]map[string]map[string]struct{}

func (s scratch) mark(name, class, spell string) {
	byClass := s[name]
	if byClass == nil {
		byClass = make(map[string]map[string]struct{})
		s[name] = byClass
	}
	spells := byClass[class]
	if spells == nil {
		spells = make(map[string]struct{})
		byClass[class] = spells
	}
	spells[spell] = struct{}{}
}

type matcher struct {
	// category -> spell name -> classes fingerprinting it
	sets [4]map[string][]string
}

func newMatcher(profiles []Profile) *matcher {
	m := &matcher{}
	for i := range m.sets {
		m.sets[i] = make(map[string][]string)
	}
	add := func(cat category, class string, spells []string) {
		for _, sp := range spells {
			m.sets[cat][sp] = append(m.sets[cat][sp], class)
		}
	}
	for _, p := range profiles {
		add(catDamage, p.Class, p.Damage)
		add(catHeals, p.Class, p.Heals)
		add(catCasts, p.Class, p.Casts)
		add(catAuras, p.Class, p.Auras)
	}
	return m
}

// Classifier scores the fixed fingerprint table against a collected event
// sequence. It never mutates runner or extension state.
type Classifier struct {
	profiles []Profile
	seeds    map[string]Seed
	m        *matcher
}

// New builds a Classifier over the static profile table. Seeds may be nil.
func New(seeds map[string]Seed) *Classifier {
	return &Classifier{
		profiles: Profiles,
		seeds:    seeds,
		m:        newMatcher(Profiles),
	}
}

// Run classifies every participant of the sequence. Hint seeds are applied
// first and win over heuristic guesses; each inferred pet is itself
// assigned the fixed class "Pet".
func (c *Classifier) Run(events []event.Event) map[string]Assignment {
	sc := make(scratch)
	pets := make(map[string]map[string]struct{}) // owner -> pet names

	for i := range events {
		ev := &events[i]
		c.observe(ev, sc)
		c.observePets(ev, pets)
	}

	out := make(map[string]Assignment)

	for name, seed := range c.seeds {
		out[name] = Assignment{Name: name, Class: seed.Class, Pets: append([]string(nil), seed.Pets...), FromHint: true}
		for _, pet := range seed.Pets {
			out[pet] = Assignment{Name: pet, Class: PetClass, FromHint: true}
		}
	}

	for name, byClass := range sc {
		if _, seeded := out[name]; seeded {
			continue
		}
		class, ok := decide(byClass)
		if !ok {
			continue
		}
		a := Assignment{Name: name, Class: class}
		for pet := range pets[name] {
			a.Pets = append(a.Pets, pet)
		}
		sort.Strings(a.Pets)
		out[name] = a
		for _, pet := range a.Pets {
			if _, seeded := out[pet]; !seeded {
				out[pet] = Assignment{Name: pet, Class: PetClass}
			}
		}
	}

	return out
}

// observe runs the four independent match passes. Damage and miss events
// attribute to the actor, heals and successful casts to the actor, applied
// auras to the target (auras are observed on the recipient).
func (c *Classifier) observe(ev *event.Event, sc scratch) {
	switch {
	case event.IsDamage(ev.Kind) || event.IsMiss(ev.Kind):
		c.match(sc, ev.Actor, catDamage, spellNameOf(ev.Extra))
	case event.IsHeal(ev.Kind):
		c.match(sc, ev.Actor, catHeals, spellNameOf(ev.Extra))
	case ev.Kind == event.KindCastSuccess:
		c.match(sc, ev.Actor, catCasts, spellNameOf(ev.Extra))
	case ev.Kind == event.KindAuraApplied:
		c.match(sc, ev.Target, catAuras, spellNameOf(ev.Extra))
	}
}

func (c *Classifier) match(sc scratch, name string, cat category, spell string) {
	if spell == "" || !participant(name) {
		return
	}
	for _, class := range c.m.sets[cat][spell] {
		sc.mark(name, class, spell)
	}
}

func (c *Classifier) observePets(ev *event.Event, pets map[string]map[string]struct{}) {
	if ev.Actor == "" || ev.Target == "" || ev.Actor == ev.Target {
		return
	}
	spell := spellNameOf(ev.Extra)
	if spell == "" {
		return
	}
	for _, rule := range petRules {
		if rule.spell != spell {
			continue
		}
		for _, k := range rule.kinds {
			if k != ev.Kind {
				continue
			}
			owner, pet := ev.Actor, ev.Target
			if !rule.ownerIsActor {
				owner, pet = ev.Target, ev.Actor
			}
			set := pets[owner]
			if set == nil {
				set = make(map[string]struct{})
				pets[owner] = set
			}
			set[pet] = struct{}{}
		}
	}
}

// participant reports whether a name looks like a player name. The literal
// "Unknown" participant is skipped entirely.
func participant(name string) bool {
	return name != "" && name != "Unknown" && rePlayerName.MatchString(name)
}

// decide applies the asymmetric evidence thresholds: a single matching
// class needs more than one distinct spell; when the fingerprint is
// ambiguous across classes the best one needs more than three.
func decide(byClass map[string]map[string]struct{}) (string, bool) {
	type score struct {
		class string
		count int
	}
	scores := make([]score, 0, len(byClass))
	for class, spells := range byClass {
		if len(spells) > 0 {
			scores = append(scores, score{class: class, count: len(spells)})
		}
	}
	if len(scores) == 0 {
		return "", false
	}
	sort.Slice(scores, func(i, j int) bool {
		if scores[i].count != scores[j].count {
			return scores[i].count < scores[j].count
		}
		return scores[i].class < scores[j].class
	})
	best := scores[len(scores)-1]

	if len(scores) == 1 {
		if best.count > 1 {
			return best.class, true
		}
		return "", false
	}
	if best.count > 3 {
		return best.class, true
	}
	return "", false
}

// spellNameOf pulls the primary spell name out of any payload variant.
func spellNameOf(p event.Payload) string {
	switch x := p.(type) {
	case event.Damage:
		return x.Spell.Name
	case event.Missed:
		return x.Spell.Name
	case event.Heal:
		return x.Spell.Name
	case event.Energize:
		return x.Spell.Name
	case event.Drain:
		return x.Spell.Name
	case event.ExtraAttacks:
		return x.Spell.Name
	case event.Aura:
		return x.Spell.Name
	case event.AuraDose:
		return x.Spell.Name
	case event.Dispel:
		return x.Spell.Name
	case event.Cast:
		return x.Spell.Name
	case event.CastFailed:
		return x.Spell.Name
	case event.Interrupt:
		return x.Spell.Name
	default:
		return ""
	}
}
