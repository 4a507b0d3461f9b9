package cli

import (
	"io"
	"os"
	"sync"
)

// lockedWriter serialises writes so lines printed by the expiry watcher
// goroutine never interleave with REPL output.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func newLockedWriter(w io.Writer) *lockedWriter {
	return &lockedWriter{w: w}
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

// stdout is shared by the App and the REPL prompt.
var stdout = newLockedWriter(os.Stdout)
