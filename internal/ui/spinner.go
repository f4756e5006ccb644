// Package ui provides small terminal presentation helpers.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner shows an animated progress line while a remote call is in
// flight. The animation runs on its own goroutine.
type Spinner struct {
	mu      sync.Mutex
	message string
	running bool
	done    chan struct{}
	writer  io.Writer
}

// NewSpinner creates a spinner writing to stdout.
func NewSpinner() *Spinner {
	return &Spinner{writer: os.Stdout}
}

// SetWriter sets the output writer.
func (s *Spinner) SetWriter(w io.Writer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writer = w
}

// Start begins the animation with a message. No-op if already running.
func (s *Spinner) Start(message string) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.message = message
	s.running = true
	s.done = make(chan struct{})
	s.mu.Unlock()

	go s.animate()
}

// UpdateMessage changes the message while running.
func (s *Spinner) UpdateMessage(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.message = message
}

// Stop ends the animation and clears the line.
func (s *Spinner) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	close(s.done)
	w := s.writer
	s.mu.Unlock()

	fmt.Fprintf(w, "\r%s\r", strings.Repeat(" ", 80))
}

func (s *Spinner) animate() {
	dim := color.New(color.Faint)
	ticker := time.NewTicker(80 * time.Millisecond)
	defer ticker.Stop()

	frame := 0
	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.mu.Lock()
			msg := s.message
			w := s.writer
			s.mu.Unlock()

			fmt.Fprintf(w, "\r%s %s ", dim.Sprint(spinnerFrames[frame%len(spinnerFrames)]), dim.Sprint(msg))
			frame++
		}
	}
}
