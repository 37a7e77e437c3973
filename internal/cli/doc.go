// Package cli implements the panelwatch command-line interface.
//
// Each Cobra command is a thin shell around a function taking an io.Writer, so the
// output can be captured in tests. The commands are:
//
//	panelwatch run            - Run the Discord bot (poll loop, alerts, /stats, presence)
//	panelwatch stats          - Print one summary to the terminal
//	panelwatch watch          - Full-screen panel dashboard
//	panelwatch init           - Create panelwatch.yaml
//	panelwatch config set|path - Edit or locate the config
//	panelwatch doctor         - Diagnose config, panel and Discord problems
//
// # Flag Handling
//
// Global flags (--config, --verbose, --no-color) live on the root command. Colors are
// configured and debug logging toggled in the root PersistentPreRun, before any
// subcommand runs.
//
// # Run Lifecycle
//
// run loads and validates the full config, opens the Discord gateway, registers /stats
// and then runs the poller and the presence rotator in one errgroup. SIGINT and SIGTERM
// cancel the group; the command removes /stats and closes the session on the way out.
package cli
