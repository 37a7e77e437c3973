// Package ui provides the terminal building blocks shared by panelwatch commands.
//
// # Components
//
//	Spinner       - Animated status line for one-shot operations (stats, doctor)
//	PhaseDisplay  - Startup steps of the bot (config, Discord, commands)
//	SpinnerFrames - Frame set shared with the Bubble Tea dashboard
//
// # Color Scheme
//
// Colors are ANSI codes for broad terminal compatibility:
//
//	ColorSuccess   (green)  - Successful operations
//	ColorError     (red)    - Failures and errors
//	ColorWarning   (yellow) - Warnings and skipped steps
//	ColorInfo      (cyan)   - Informational messages
//	ColorMuted     (gray)   - Secondary text, timing info
//	ColorSecondary (blue)   - In-progress indicators
//
// ConfigureColors picks the color profile once at startup: --no-color, NO_COLOR or a
// non-terminal stdout all switch to plain ASCII output.
//
// # Symbols
//
//	SymbolSuccess  (checkmark)  - Operation succeeded
//	SymbolFail     (X)          - Operation failed
//	SymbolPending  (circle)     - Not yet started
//	SymbolProgress (half-fill)  - In progress
//	SymbolComplete (filled)     - Done
//	SymbolSkipped  (slashed)    - Skipped
package ui
