// Package monitor implements the terminal dashboard behind `panelwatch watch`.
//
// The dashboard polls the panel on a fixed interval, renders the same summary the
// bot posts to Discord as a lipgloss card, and keeps a short history of each
// refresh for an availability bar and a latency sparkline. It is read-only: it never
// touches the bot's tracker or sends alerts.
//
// # Architecture
//
// The package uses Bubble Tea (Model-Update-View):
//
//   - Model: the latest snapshot and payload, refresh history, layout size
//   - Update: keystrokes, interval ticks, finished fetches, spinner frames
//   - View: header, summary card, history line, footer
//
// # Message Flow
//
//  1. tickMsg fires every refresh interval
//  2. fetchCmd() queries the panel in the background
//  3. snapshotMsg arrives with the snapshot, payload and latency
//  4. View() re-renders with the new data
//
// A tick that arrives while a fetch is still in flight is skipped, so slow panels
// never pile up requests.
//
// # Keyboard Shortcuts
//
//	q, Ctrl+C   - Quit
//	r           - Refresh now
//	?           - Toggle help overlay
//	Esc         - Close help
package monitor
