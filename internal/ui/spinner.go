package ui

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
)

// Spinner displays an animated spinner with a message. It only animates when
// its writer is a terminal; otherwise it stays silent so piped output and
// --json stay clean.
type Spinner struct {
	w       io.Writer
	message string
	frames  []string
	done    chan struct{}
	wg      sync.WaitGroup
	mu      sync.Mutex
	current int
	active  bool
}

// Default spinner frames (dots style)
var defaultFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// NewSpinner creates a spinner writing to w, usually os.Stderr.
func NewSpinner(w io.Writer, message string) *Spinner {
	return &Spinner{
		w:       w,
		message: message,
		frames:  defaultFrames,
		done:    make(chan struct{}),
	}
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Start begins the spinner animation.
func (s *Spinner) Start() {
	if !IsTerminal(s.w) {
		return
	}

	s.mu.Lock()
	s.active = true
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		for {
			select {
			case <-s.done:
				// Clear the spinner line
				fmt.Fprint(s.w, "\r\033[K")
				return
			case <-ticker.C:
				s.mu.Lock()
				frame := s.frames[s.current%len(s.frames)]
				s.current++
				s.mu.Unlock()
				fmt.Fprintf(s.w, "\r%s %s", Bold.Render(frame), s.message)
			}
		}
	}()
}

// Stop stops the spinner. It is safe to call more than once.
func (s *Spinner) Stop() {
	s.mu.Lock()
	active := s.active
	s.active = false
	s.mu.Unlock()
	if !active {
		return
	}
	close(s.done)
	s.wg.Wait()
}
