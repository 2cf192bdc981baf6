package parse

import (
	"regexp"

	"github.com/halwyn/wowlog-parser/internal/event"
)

// Trailing damage modifiers appear as parenthesized groups after the
// period: "(123 resisted)", "(45 absorbed)", "(crushing)".
var (
	reModAmount = regexp.MustCompile(`\((\d+) (resisted|absorbed|blocked)\)`)
	reModFlag   = regexp.MustCompile(`\((crushing|glancing)\)`)
)

// parseModifiers applies every recognized parenthesized modifier group in
// trailing to d. Multiple groups all apply; unrecognized groups are ignored
// so newer modifier kinds do not break the decode.
func parseModifiers(trailing string, d *event.Damage) {
	for _, m := range reModAmount.FindAllStringSubmatch(trailing, -1) {
		n, ok := parseInt64(m[1])
		if !ok {
			continue
		}
		switch m[2] {
		case "resisted":
			d.Resisted = n
		case "absorbed":
			d.Absorbed = n
		case "blocked":
			d.Blocked = n
		}
	}
	for _, m := range reModFlag.FindAllStringSubmatch(trailing, -1) {
		switch m[1] {
		case "crushing":
			d.Crushing = true
		case "glancing":
			d.Glancing = true
		}
	}
}
