package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// SpinnerState represents the current state of a spinner.
type SpinnerState int

const (
	SpinnerPending SpinnerState = iota
	SpinnerInProgress
	SpinnerSuccess
	SpinnerFailed
)

// spinnerInterval is the animation frame rate.
const spinnerInterval = 100 * time.Millisecond

// Spinner displays an animated status line with a label. When the output is not a
// terminal it skips the animation and only prints the final line.
type Spinner struct {
	mu        sync.Mutex
	w         io.Writer
	animated  bool
	label     string
	state     SpinnerState
	frame     int
	startTime time.Time
	stopChan  chan struct{}
	doneChan  chan struct{}
	lastWidth int
}

// NewSpinner creates a spinner writing to stderr.
func NewSpinner(label string) *Spinner {
	return NewSpinnerTo(os.Stderr, label, IsTerminal(os.Stderr))
}

// NewSpinnerTo creates a spinner writing to w. animated controls the in-place frames.
func NewSpinnerTo(w io.Writer, label string, animated bool) *Spinner {
	return &Spinner{w: w, label: label, animated: animated}
}

// Start begins the animation. Calling Start twice is a no-op.
func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == SpinnerInProgress {
		return
	}
	s.state = SpinnerInProgress
	s.startTime = time.Now()

	if !s.animated {
		return
	}
	s.stopChan = make(chan struct{})
	s.doneChan = make(chan struct{})
	s.renderFrameLocked()
	go s.animate()
}

// Success stops the spinner and prints a success line.
func (s *Spinner) Success() {
	s.finish(SpinnerSuccess)
}

// Fail stops the spinner and prints a failure line.
func (s *Spinner) Fail() {
	s.finish(SpinnerFailed)
}

// State returns the current spinner state.
func (s *Spinner) State() SpinnerState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Label returns the spinner's label.
func (s *Spinner) Label() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.label
}

func (s *Spinner) finish(state SpinnerState) {
	s.mu.Lock()
	if s.state != SpinnerInProgress {
		s.mu.Unlock()
		return
	}
	stop, done := s.stopChan, s.doneChan
	s.mu.Unlock()

	if stop != nil {
		close(stop)
		<-done
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
	s.renderFinalLocked()
}

func (s *Spinner) animate() {
	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()
	defer close(s.doneChan)

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.mu.Lock()
			s.frame = (s.frame + 1) % len(SpinnerFrames.Frames)
			s.renderFrameLocked()
			s.mu.Unlock()
		}
	}
}

func (s *Spinner) renderFrameLocked() {
	style := lipgloss.NewStyle().Foreground(ColorSecondary)
	line := fmt.Sprintf("%s %s...", style.Render(SpinnerFrames.Frames[s.frame]), s.label)
	s.clearLocked()
	fmt.Fprint(s.w, line)
	s.lastWidth = lipgloss.Width(line)
}

func (s *Spinner) renderFinalLocked() {
	symbol, color := SymbolComplete, ColorSuccess
	if s.state == SpinnerFailed {
		symbol, color = SymbolFail, ColorError
	}

	s.clearLocked()
	fmt.Fprintln(s.w, FormatPhase(symbol, color, s.label, formatDuration(time.Since(s.startTime))))
}

func (s *Spinner) clearLocked() {
	if s.lastWidth == 0 {
		return
	}
	fmt.Fprint(s.w, "\r"+strings.Repeat(" ", s.lastWidth)+"\r")
	s.lastWidth = 0
}

// formatDuration formats a duration for display (e.g., "0.3s", "1.2s").
func formatDuration(d time.Duration) string {
	secs := d.Seconds()
	if secs < 0.1 {
		return fmt.Sprintf("%.2fs", secs)
	}
	return fmt.Sprintf("%.1fs", secs)
}
