package monitor

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/panelwatch/internal/panel"
	"github.com/rileyhilliard/panelwatch/internal/summary"
	"github.com/rileyhilliard/panelwatch/internal/ui"
)

// DefaultFetchTimeout bounds one dashboard refresh when no timeout is given.
const DefaultFetchTimeout = 15 * time.Second

// Model is the Bubble Tea model for the panel dashboard.
type Model struct {
	fetcher   panel.Fetcher
	formatter *summary.Formatter
	interval  time.Duration
	timeout   time.Duration

	snapshot    *panel.Snapshot
	payload     *summary.Payload
	history     *History
	lastUpdate  time.Time
	lastLatency time.Duration

	// fetching is true while a fetch is in flight. Ticks that arrive meanwhile are dropped.
	fetching bool

	spinner  spinner.Model
	width    int
	height   int
	quitting bool
	showHelp bool
}

// tickMsg signals a periodic refresh.
type tickMsg time.Time

// snapshotMsg carries the result of one fetch.
type snapshotMsg struct {
	snapshot panel.Snapshot
	payload  summary.Payload
	latency  time.Duration
	time     time.Time
}

// NewModel creates a dashboard that refreshes every interval.
// A zero timeout uses DefaultFetchTimeout.
func NewModel(fetcher panel.Fetcher, formatter *summary.Formatter, interval, timeout time.Duration) Model {
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}

	sp := spinner.New()
	sp.Spinner = ui.SpinnerFrames
	sp.Style = SpinnerStyle

	return Model{
		fetcher:   fetcher,
		formatter: formatter,
		interval:  interval,
		timeout:   timeout,
		history:   NewHistory(DefaultHistorySize),
		spinner:   sp,
		// Init always starts a fetch.
		fetching: true,
	}
}

// Init starts the tick timer, the spinner and the first fetch.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.tickCmd(),
		m.fetchCmd(),
		m.spinner.Tick,
	)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if handled, cmd := m.HandleKeyMsg(msg); handled {
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tickMsg:
		return m, tea.Batch(m.tickCmd(), m.startFetch())

	case snapshotMsg:
		m.fetching = false
		m.snapshot = &msg.snapshot
		m.payload = &msg.payload
		m.lastUpdate = msg.time
		m.lastLatency = msg.latency
		m.history.Push(Sample{
			Reachable: msg.snapshot.Reachable,
			Nodes:     len(msg.snapshot.Nodes),
			Latency:   msg.latency,
			At:        msg.time,
		})

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return m.renderDashboard()
}

// tickCmd returns a command that sends a tick after the refresh interval.
func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// startFetch marks a fetch in flight and returns it, or nil if one already is.
func (m *Model) startFetch() tea.Cmd {
	if m.fetching {
		return nil
	}
	m.fetching = true
	return m.fetchCmd()
}

// fetchCmd queries the panel off the UI goroutine.
func (m Model) fetchCmd() tea.Cmd {
	fetcher, formatter, timeout := m.fetcher, m.formatter, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		start := time.Now()
		snap := fetcher.Fetch(ctx)
		return snapshotMsg{
			snapshot: snap,
			payload:  formatter.Format(snap),
			latency:  time.Since(start),
			time:     time.Now(),
		}
	}
}

// Reachable reports whether the latest fetch reached the panel.
func (m Model) Reachable() bool {
	return m.snapshot != nil && m.snapshot.Reachable
}

// NodeCount returns the number of nodes in the latest snapshot.
func (m Model) NodeCount() int {
	if m.snapshot == nil {
		return 0
	}
	return len(m.snapshot.Nodes)
}

// Fetching reports whether a fetch is in flight.
func (m Model) Fetching() bool {
	return m.fetching
}

// History returns the refresh history.
func (m Model) History() *History {
	return m.history
}
