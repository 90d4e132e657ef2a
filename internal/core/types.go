// Package core provides the business logic for skillmgr.
// It has zero UI dependencies and is independently testable.
package core

import (
	"fmt"
	"time"
)

const (
	skillFileName       = "SKILL.md"
	enabledDirName      = "skills"
	disabledDirName     = "disabled-skills"
	categoryFileName    = "skill-manager-config.json"
	commandsDirName     = "commands"
	defaultCategoryName = "Uncategorized"
)

// SkillState is the operability state of a skill bundle. On disk it is
// encoded by which root directory contains the bundle.
type SkillState int

const (
	StateEnabled SkillState = iota
	StateDisabled
)

// StateFor converts a boolean "enabled" flag into a SkillState.
func StateFor(enabled bool) SkillState {
	if enabled {
		return StateEnabled
	}
	return StateDisabled
}

// Enabled reports whether the state is StateEnabled.
func (s SkillState) Enabled() bool { return s == StateEnabled }

// Opposite returns the other state.
func (s SkillState) Opposite() SkillState {
	if s == StateEnabled {
		return StateDisabled
	}
	return StateEnabled
}

// DirName is the root directory name that persists this state.
func (s SkillState) DirName() string {
	if s == StateEnabled {
		return enabledDirName
	}
	return disabledDirName
}

func (s SkillState) String() string {
	if s == StateEnabled {
		return "enabled"
	}
	return "disabled"
}

// AgentKind identifies which agent owns an installation.
type AgentKind string

const (
	AgentClaude AgentKind = "claude"
	AgentCodex  AgentKind = "codex"
	AgentNone   AgentKind = "none"
)

// agentDirs maps agent kinds to their hidden root directory names.
var agentDirs = map[AgentKind]string{
	AgentClaude: ".claude",
	AgentCodex:  ".codex",
}

// KnownAgents lists the agent kinds that own a hidden root, in display order.
var KnownAgents = []AgentKind{AgentClaude, AgentCodex}

// ParseAgentKind parses a user-supplied agent name.
func ParseAgentKind(s string) (AgentKind, error) {
	switch AgentKind(s) {
	case AgentClaude, AgentCodex:
		return AgentKind(s), nil
	}
	return AgentNone, fmt.Errorf("unknown agent %q; available: claude, codex", s)
}

// AgentKindForDir infers the agent kind from a hidden root's basename.
func AgentKindForDir(base string) AgentKind {
	for kind, dir := range agentDirs {
		if base == dir {
			return kind
		}
	}
	return AgentNone
}

// DirName returns the hidden root directory name (".claude", ".codex"),
// or "" for AgentNone.
func (k AgentKind) DirName() string { return agentDirs[k] }

// Other returns the sibling agent kind used for propagation.
func (k AgentKind) Other() AgentKind {
	switch k {
	case AgentClaude:
		return AgentCodex
	case AgentCodex:
		return AgentClaude
	}
	return AgentNone
}

// DisplayName returns a human-readable agent name.
func (k AgentKind) DisplayName() string {
	switch k {
	case AgentClaude:
		return "Claude Code"
	case AgentCodex:
		return "Codex"
	}
	return "none"
}

// AgentContext describes where the active agent root lives. It is derived
// on every query and never persisted.
type AgentContext struct {
	Kind        AgentKind
	BaseDir     string // hidden root, e.g. /work/app/.claude
	ProjectRoot string // parent of BaseDir; empty when Kind is AgentNone
}

// InAgentTree reports whether the context belongs to a known agent.
func (c AgentContext) InAgentTree() bool { return c.Kind != AgentNone }

// SkillEntry is a skill bundle found on disk during a scan.
type SkillEntry struct {
	Name         string
	Description  string
	State        SkillState
	Content      string // full SKILL.md text
	ManifestPath string
	Dir          string
	Files        []AssetEntry
	Meta         SkillMeta
}

// Enabled reports whether the skill currently lives in the enabled root.
func (s SkillEntry) Enabled() bool { return s.State.Enabled() }

// AssetEntry is a file or directory inside a skill bundle.
type AssetEntry struct {
	Name        string `json:"name"`
	Path        string `json:"path"`
	IsDirectory bool   `json:"isDirectory"`
}

// SkillMeta holds optional fields parsed from SKILL.md YAML frontmatter.
type SkillMeta struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version,omitempty"`
	Author  string `yaml:"author,omitempty"`
	License string `yaml:"license,omitempty"`
}

// ScanIssue records a bundle or file that discovery skipped or degraded.
type ScanIssue struct {
	Path string
	Err  error
}

func (i ScanIssue) Error() string { return fmt.Sprintf("%s: %v", i.Path, i.Err) }

// ConflictInfo describes whether a skill already exists in the other agent's
// tree, used to warn before propagation.
type ConflictInfo struct {
	Exists         bool
	TargetAgent    AgentKind
	TargetState    SkillState
	SourceModified time.Time
	TargetModified time.Time // zero when Exists is false
}
