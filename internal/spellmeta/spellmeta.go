// Package spellmeta holds display-only spell metadata: rank suffixes keyed
// by spell id. It never influences decoding or aggregation.
package spellmeta

import "fmt"

// ranks maps a spell id to its rank number. Only ids the reports commonly
// show are listed; everything else renders undecorated.
var ranks = map[int64]int{
	2061:  7, // Flash Heal
	9474:  6,
	10917: 9,
	2060:  7, // Greater Heal
	10965: 4,
	25314: 6,
	139:   10, // Renew
	25315: 12,
	635:   9, // Holy Light
	19943: 6, // Flash of Light
	331:   9, // Healing Wave
	8010:  5, // Lesser Healing Wave
	1064:  3, // Chain Heal
	774:   11, // Rejuvenation
	8936:  8,  // Regrowth
	5185:  10, // Healing Touch
	133:   12, // Fireball
	116:   11, // Frostbolt
	686:   10, // Shadow Bolt
}

// Rank returns the rank for a spell id, if known.
func Rank(id int64) (int, bool) {
	r, ok := ranks[id]
	return r, ok
}

// Decorate renders a spell name with its rank suffix when the id is known:
// "Flash Heal (Rank 7)". Unknown ids return the bare name.
func Decorate(id int64, name string) string {
	r, ok := ranks[id]
	if !ok {
		return name
	}
	return fmt.Sprintf("%s (Rank %d)", name, r)
}
