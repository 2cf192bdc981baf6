package event

import (
	"strconv"
	"strings"
)

// PowerName translates a structured-format power-type code into its display
// name. Unknown codes render as "<code> (?)" so newer logs stay readable.
func PowerName(code int64) string {
	switch code {
	case 0:
		return "mana"
	case 1:
		return "rage"
	case 2:
		return "focus"
	case 3:
		return "energy"
	case 4:
		return "happiness"
	case 5:
		return "runes"
	case -2:
		return "health"
	default:
		return strconv.FormatInt(code, 10) + " (?)"
	}
}

// PowerCode reverses PowerName; names produced for unknown codes parse back
// to the original code.
func PowerCode(name string) int64 {
	switch name {
	case "mana":
		return 0
	case "rage":
		return 1
	case "focus":
		return 2
	case "energy":
		return 3
	case "happiness":
		return 4
	case "runes":
		return 5
	case "health":
		return -2
	}
	if i := strings.IndexByte(name, ' '); i > 0 {
		if n, err := strconv.ParseInt(name[:i], 10, 64); err == nil {
			return n
		}
	}
	return 0
}
