package run

import (
	"fmt"
	"sort"
)

// Factory constructs a fresh extension instance for one pass.
type Factory func() Extension

var registry = map[string]Factory{}

// Register makes an extension constructible by name. It is meant to be
// called from package init functions; registering a duplicate name panics.
func Register(name string, f Factory) {
	if _, dup := registry[name]; dup {
		panic(fmt.Sprintf("run: extension %q registered twice", name))
	}
	registry[name] = f
}

// New resolves a registered extension name. An unknown name is a
// configuration error and is surfaced before any line is processed.
func New(name string) (Extension, error) {
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown extension: %s", name)
	}
	return f(), nil
}

// Names lists the registered extension names, sorted.
func Names() []string {
	out := make([]string, 0, len(registry))
	for n := range registry {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
