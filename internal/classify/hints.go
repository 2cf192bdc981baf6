package classify

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Hint files carry ground-truth overrides, one per line:
//
//	Arcanista: Mage
//	Grimshot: Hunter (Fang Ripjaw)
//
// Lines starting with '#' and blank lines are ignored.

// ParseHints reads seed assignments from r.
func ParseHints(r io.Reader) (map[string]Seed, error) {
	seeds := make(map[string]Seed)
	s := bufio.NewScanner(r)
	lineNo := 0
	for s.Scan() {
		lineNo++
		line := strings.TrimSpace(s.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		name, rest, ok := strings.Cut(line, ":")
		if !ok {
			return nil, fmt.Errorf("hints: line %d: missing ':'", lineNo)
		}
		name = strings.TrimSpace(name)
		rest = strings.TrimSpace(rest)
		if name == "" || rest == "" {
			return nil, fmt.Errorf("hints: line %d: empty name or class", lineNo)
		}

		var pets []string
		if i := strings.IndexByte(rest, '('); i >= 0 {
			j := strings.IndexByte(rest, ')')
			if j < i {
				return nil, fmt.Errorf("hints: line %d: unbalanced parentheses", lineNo)
			}
			pets = strings.Fields(rest[i+1 : j])
			rest = strings.TrimSpace(rest[:i])
		}
		seeds[name] = Seed{Class: rest, Pets: pets}
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return seeds, nil
}

// LoadHints reads a hint file from disk.
func LoadHints(path string) (map[string]Seed, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseHints(f)
}
