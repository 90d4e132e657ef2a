package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/barysiuk/skillmgr/internal/core"
)

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// truncate shortens s to n runes, adding an ellipsis when cut.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}

// agentNames formats agent kinds as a comma separated list.
func agentNames(kinds []core.AgentKind) string {
	if len(kinds) == 0 {
		return "none"
	}
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}

// stateLabel renders a skill state for tables.
func stateLabel(s core.SkillEntry) string {
	if s.Enabled() {
		return "enabled"
	}
	return "disabled"
}

// printIssues reports skipped scan items on stderr.
func printIssues(issues []core.ScanIssue) {
	for _, issue := range issues {
		fmt.Fprintf(os.Stderr, "warning: %v\n", issue)
	}
}
