// Package tail follows a growing combat-log file by polling, feeding
// complete lines to a callback. The game client only ever appends; a
// shrinking file means it was rotated and we restart from the top.
package tail

import (
	"context"
	"errors"
	"io"
	"os"
	"time"
)

type Options struct {
	// StartAtEnd skips history and follows new lines only.
	StartAtEnd bool

	// PollInterval is how often to re-check for growth. Defaults to
	// 100ms.
	PollInterval time.Duration
}

// Follow reads path until ctx is done, invoking onLine for every complete
// line (without its trailing newline). It returns nil on cancellation.
func Follow(ctx context.Context, path string, opts Options, onLine func(line string)) error {
	if onLine == nil {
		return errors.New("tail: onLine is nil")
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = 100 * time.Millisecond
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var offset int64
	if opts.StartAtEnd {
		if offset, err = f.Seek(0, io.SeekEnd); err != nil {
			return err
		}
	}

	var pending []byte
	readBuf := make([]byte, 32*1024)

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		fi, err := f.Stat()
		if err != nil {
			return err
		}
		if fi.Size() < offset {
			// Rotated or truncated; restart from the top.
			if _, err := f.Seek(0, io.SeekStart); err != nil {
				return err
			}
			offset = 0
			pending = pending[:0]
		}

		n, rerr := f.Read(readBuf)
		if n > 0 {
			offset += int64(n)
			pending = append(pending, readBuf[:n]...)
			pending = emitLines(pending, onLine)
		}

		if rerr != nil {
			if errors.Is(rerr, io.EOF) {
				if !sleep(ctx, opts.PollInterval) {
					return nil
				}
				continue
			}
			return rerr
		}
		if n == 0 {
			if !sleep(ctx, opts.PollInterval) {
				return nil
			}
		}
	}
}

// emitLines fires onLine for every complete line in buf and returns the
// leftover partial line in a fresh slice, so large read buffers are not
// pinned.
func emitLines(buf []byte, onLine func(string)) []byte {
	for {
		idx := -1
		for i, b := range buf {
			if b == '\n' {
				idx = i
				break
			}
		}
		if idx < 0 {
			break
		}
		line := buf[:idx]
		if len(line) > 0 && line[len(line)-1] == '\r' {
			line = line[:len(line)-1]
		}
		if len(line) > 0 {
			onLine(string(line))
		}
		buf = buf[idx+1:]
	}
	left := make([]byte, len(buf))
	copy(left, buf)
	return left
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
