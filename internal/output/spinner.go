package output

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

const (
	spinnerGlyphs   = "⠋⠙⠹⠸⠼⠴⠦⠧⠇⠏"
	spinnerInterval = 80 * time.Millisecond
	// spinnerWidth is the rendered line width; frames are padded to it
	// so a shorter redraw fully covers the previous one.
	spinnerWidth = 80
)

// Spinner renders scan progress as a single line redrawn in place,
// typically on stderr. The scan goroutine drives Update while the
// animation runs on its own goroutine; mu guards the shared state.
type Spinner struct {
	mu      sync.Mutex
	w       io.Writer
	message string
	done    chan struct{}
	stopped bool
}

// NewSpinner creates a spinner that writes to w.
func NewSpinner(w io.Writer) *Spinner {
	return &Spinner{w: w}
}

// Start begins the animation with the given message.
func (s *Spinner) Start(message string) {
	s.mu.Lock()
	s.message = message
	s.done = make(chan struct{})
	s.stopped = false
	s.mu.Unlock()

	go s.animate()
}

// Update replaces the displayed message while the spinner is running.
func (s *Spinner) Update(message string) {
	s.mu.Lock()
	s.message = message
	s.mu.Unlock()
}

// Stop halts the animation and blanks the spinner line. Safe to call
// more than once.
func (s *Spinner) Stop() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	s.mu.Unlock()

	close(s.done)

	s.mu.Lock()
	fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", len(s.message)+4))
	s.mu.Unlock()
}

func (s *Spinner) animate() {
	glyphs := []rune(spinnerGlyphs)
	tick := time.NewTicker(spinnerInterval)
	defer tick.Stop()

	for frame := 0; ; frame++ {
		select {
		case <-s.done:
			return
		case <-tick.C:
			s.render(glyphs[frame%len(glyphs)])
		}
	}
}

func (s *Spinner) render(glyph rune) {
	s.mu.Lock()
	defer s.mu.Unlock()
	line := fmt.Sprintf("\r%c %s", glyph, s.message)
	fmt.Fprintf(s.w, "%-*s", spinnerWidth, line)
}
