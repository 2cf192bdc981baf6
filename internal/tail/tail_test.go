package tail

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestEmitLines(t *testing.T) {
	var got []string
	left := emitLines([]byte("one\r\ntwo\npart"), func(line string) { got = append(got, line) })
	if !reflect.DeepEqual(got, []string{"one", "two"}) {
		t.Fatalf("got=%v", got)
	}
	if string(left) != "part" {
		t.Fatalf("left=%q", left)
	}

	got = nil
	left = emitLines(append(left, []byte("ial\n\n")...), func(line string) { got = append(got, line) })
	if !reflect.DeepEqual(got, []string{"partial"}) {
		t.Fatalf("got=%v", got)
	}
	if len(left) != 0 {
		t.Fatalf("left=%q", left)
	}
}

func TestFollow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "combat.log")
	if err := os.WriteFile(path, []byte("one\ntwo\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	lines := make(chan string, 16)
	done := make(chan error, 1)
	go func() {
		done <- Follow(ctx, path, Options{PollInterval: 10 * time.Millisecond}, func(line string) {
			lines <- line
		})
	}()

	expect := func(want string) {
		t.Helper()
		select {
		case got := <-lines:
			if got != want {
				t.Fatalf("got=%q want=%q", got, want)
			}
		case <-time.After(5 * time.Second):
			t.Fatalf("timed out waiting for %q", want)
		}
	}
	expect("one")
	expect("two")

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := f.WriteString("three\n"); err != nil {
		t.Fatalf("append: %v", err)
	}
	f.Close()
	expect("three")

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("follow: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("follow did not stop")
	}
}

func TestFollow_MissingFile(t *testing.T) {
	err := Follow(context.Background(), filepath.Join(t.TempDir(), "absent.log"), Options{}, func(string) {})
	if err == nil {
		t.Fatalf("expected error")
	}
}
