package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/panelwatch/internal/chat"
	"github.com/rileyhilliard/panelwatch/internal/config"
	"github.com/rileyhilliard/panelwatch/internal/doctor"
	"github.com/rileyhilliard/panelwatch/internal/logger"
	"github.com/rileyhilliard/panelwatch/internal/ui"
	"github.com/spf13/cobra"
)

var (
	doctorJSON bool
	doctorFix  bool
)

// doctorCmd diagnoses config, panel and Discord problems
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose config, panel and Discord problems",
	Long: `Run diagnostic checks and report anything that would stop the bot working.

Checks the config file, that the panel answers the node listing, and that Discord
accepts the token and the bot can see the status channel. Panel and Discord checks
only run once the config sections they need are valid.

Examples:
  panelwatch doctor
  panelwatch doctor --json
  panelwatch doctor --fix`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return doctorCommand(cmd.Context(), cmd.OutOrStdout())
	},
}

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false, "output in JSON format")
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "attempt automatic fixes where possible")
}

// DoctorOutput represents the JSON output for doctor command.
type DoctorOutput struct {
	Categories []CategoryOutput `json:"categories"`
	Summary    SummaryOutput    `json:"summary"`
}

// CategoryOutput represents a category of check results.
type CategoryOutput struct {
	Name    string               `json:"name"`
	Results []doctor.CheckResult `json:"results"`
}

// SummaryOutput summarizes the check results.
type SummaryOutput struct {
	Pass     int  `json:"pass"`
	Warn     int  `json:"warn"`
	Fail     int  `json:"fail"`
	Fixable  int  `json:"fixable"`
	AllClear bool `json:"all_clear"`
}

func doctorCommand(ctx context.Context, w io.Writer) error {
	cfgPath, _ := config.Find(Config()) // config checks report lookup errors
	cfg, _, _ := config.LoadResolved(Config())

	var client doctor.DiscordClient
	if cfg != nil && config.Validate(cfg) == nil {
		if d, err := chat.NewDiscord(cfg.Discord.Token, logger.Noop()); err == nil {
			client = d
		}
	}

	checks := collectChecks(cfgPath, cfg, client)
	results := doctor.RunAllParallel(ctx, checks)

	if doctorFix {
		results = doctor.AttemptFixes(ctx, checks, results)
	}

	if doctorJSON {
		return outputDoctorJSON(w, checks, results)
	}
	outputDoctorText(w, checks, results, doctorFix)
	return nil
}

// collectChecks gathers the checks the loaded config allows. Config checks always run;
// panel checks need a valid panel section and Discord checks a fully valid config.
func collectChecks(cfgPath string, cfg *config.Config, client doctor.DiscordClient) []doctor.Check {
	checks := doctor.NewConfigChecks(cfgPath)

	if cfg == nil || config.Validate(cfg, config.PanelOnly()) != nil {
		return checks
	}
	checks = append(checks, doctor.NewPanelChecks(newPanelClient(cfg), cfg.Panel.URL)...)

	if client == nil || config.Validate(cfg) != nil {
		return checks
	}
	return append(checks, doctor.NewDiscordChecks(client, cfg.Discord.ChannelID, cfg.Discord.AdminID)...)
}

func outputDoctorJSON(w io.Writer, checks []doctor.Check, results []doctor.CheckResult) error {
	grouped := make(map[string][]doctor.CheckResult)
	for i, check := range checks {
		grouped[check.Category()] = append(grouped[check.Category()], results[i])
	}

	output := DoctorOutput{Categories: []CategoryOutput{}}
	for _, cat := range doctor.CategoryOrder {
		if rs, ok := grouped[cat]; ok {
			output.Categories = append(output.Categories, CategoryOutput{Name: cat, Results: rs})
		}
	}

	counts := doctor.CountByStatus(results)
	output.Summary = SummaryOutput{
		Pass:     counts[doctor.StatusPass],
		Warn:     counts[doctor.StatusWarn],
		Fail:     counts[doctor.StatusFail],
		Fixable:  doctor.FixableCount(results),
		AllClear: !doctor.HasIssues(results),
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}

func outputDoctorText(w io.Writer, checks []doctor.Check, results []doctor.CheckResult, fixed bool) {
	successStyle := lipgloss.NewStyle().Foreground(ui.ColorSuccess)
	errorStyle := lipgloss.NewStyle().Foreground(ui.ColorError)
	mutedStyle := lipgloss.NewStyle().Foreground(ui.ColorMuted)
	headerStyle := lipgloss.NewStyle().Bold(true)

	fmt.Fprintln(w)
	fmt.Fprintln(w, headerStyle.Render("panelwatch diagnostic report"))
	fmt.Fprintln(w)

	grouped := make(map[string][]int) // category -> indices
	for i, check := range checks {
		grouped[check.Category()] = append(grouped[check.Category()], i)
	}

	for _, category := range doctor.CategoryOrder {
		indices := grouped[category]
		if len(indices) == 0 {
			continue
		}
		fmt.Fprintln(w, headerStyle.Render(category))
		for _, idx := range indices {
			renderCheckResult(w, results[idx])
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, ui.FormatDivider(ui.DividerWidth))
	fmt.Fprintln(w)

	if !doctor.HasIssues(results) {
		fmt.Fprintf(w, "%s %s\n", successStyle.Render(ui.SymbolSuccess), doctor.Summary(results))
	} else {
		fmt.Fprintf(w, "%s %s\n", errorStyle.Render(ui.SymbolFail), doctor.Summary(results))
		if doctor.FixableCount(results) > 0 && !fixed {
			fmt.Fprintln(w)
			fmt.Fprintf(w, "  Run with %s to attempt automatic fixes where possible.\n",
				mutedStyle.Render("--fix"))
		}
	}
	fmt.Fprintln(w)
}

func renderCheckResult(w io.Writer, result doctor.CheckResult) {
	var symbol string
	var color lipgloss.Color

	switch result.Status {
	case doctor.StatusPass:
		symbol, color = ui.SymbolComplete, ui.ColorSuccess
	case doctor.StatusWarn:
		symbol, color = ui.SymbolComplete, ui.ColorWarning
	default:
		symbol, color = ui.SymbolFail, ui.ColorError
	}

	fmt.Fprintf(w, "  %s %s\n", lipgloss.NewStyle().Foreground(color).Render(symbol), result.Message)

	if result.Suggestion != "" && result.Status != doctor.StatusPass {
		mutedStyle := lipgloss.NewStyle().Foreground(ui.ColorMuted)
		for _, line := range strings.Split(result.Suggestion, "\n") {
			fmt.Fprintf(w, "    %s\n", mutedStyle.Render(line))
		}
	}
}
