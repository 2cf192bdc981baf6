package run

import (
	"strings"
	"testing"
)

func TestRegistry(t *testing.T) {
	Register("registry-test", func() Extension {
		var trace []string
		return &recorder{name: "x", trace: &trace}
	})

	x, err := New("registry-test")
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if x == nil {
		t.Fatalf("nil extension")
	}

	found := false
	for _, n := range Names() {
		if n == "registry-test" {
			found = true
		}
	}
	if !found {
		t.Fatalf("names=%v", Names())
	}
}

func TestRegistry_UnknownName(t *testing.T) {
	_, err := New("no-such-extension")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "unknown extension") {
		t.Fatalf("err=%v", err)
	}
}
