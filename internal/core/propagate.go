package core

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/barysiuk/skillmgr/internal/logger"
)

// Propagator copies skills from the active agent tree into its sibling.
type Propagator struct{}

// NewPropagator creates a Propagator.
func NewPropagator() *Propagator {
	return &Propagator{}
}

// otherRoot returns the sibling agent root for ctx.
func otherRoot(ctx AgentContext) (AgentKind, string, error) {
	if !ctx.InAgentTree() {
		return AgentNone, "", fmt.Errorf("copying between agents requires an agent tree: %w", ErrInvalidState)
	}
	other := ctx.Kind.Other()
	return other, filepath.Join(ctx.ProjectRoot, other.DirName()), nil
}

// CopyToOtherAgent copies skill name, found in the given state under ctx,
// into the enabled root of the other agent. An existing skill of the same
// name in either of the other agent's roots is a *ConflictError.
func (p *Propagator) CopyToOtherAgent(ctx AgentContext, name string, state SkillState) error {
	if err := validateName(name); err != nil {
		return err
	}
	other, root, err := otherRoot(ctx)
	if err != nil {
		return err
	}
	if !dirExists(root) {
		return fmt.Errorf("%s directory %s: %w", other.DisplayName(), root, ErrNotFound)
	}

	src := filepath.Join(ctx.BaseDir, state.DirName(), name)
	if !dirExists(src) {
		return fmt.Errorf("skill %q in %s: %w", name, filepath.Dir(src), ErrNotFound)
	}
	// Copy what a symlinked bundle points at, not the link.
	if resolved, err := filepath.EvalSymlinks(src); err == nil {
		src = resolved
	}

	enabledRoot := filepath.Join(root, enabledDirName)
	if err := os.MkdirAll(enabledRoot, 0o755); err != nil {
		return ioError("creating", enabledRoot, err)
	}

	for _, s := range []SkillState{StateEnabled, StateDisabled} {
		existing := filepath.Join(root, s.DirName(), name)
		if pathExists(existing) {
			return &ConflictError{Skill: name, Agent: other, State: s, Path: existing}
		}
	}

	dst := filepath.Join(enabledRoot, name)
	if err := copyTree(src, dst); err != nil {
		return ioError("copying skill to", dst, err)
	}

	logger.For("propagate").WithFields(map[string]interface{}{
		"skill": name,
		"from":  ctx.Kind,
		"to":    other,
	}).Info("skill copied to other agent")
	return nil
}

// Inspect reports whether skill name already exists in the other agent's
// tree, and when each side was last modified.
func (p *Propagator) Inspect(ctx AgentContext, name string, state SkillState) (ConflictInfo, error) {
	if err := validateName(name); err != nil {
		return ConflictInfo{}, err
	}
	other, root, err := otherRoot(ctx)
	if err != nil {
		return ConflictInfo{}, err
	}

	info := ConflictInfo{TargetAgent: other}

	src := filepath.Join(ctx.BaseDir, state.DirName(), name)
	modified, err := bundleModTime(src)
	if err != nil {
		return ConflictInfo{}, fmt.Errorf("skill %q: %w", name, ErrNotFound)
	}
	info.SourceModified = modified

	for _, s := range []SkillState{StateEnabled, StateDisabled} {
		existing := filepath.Join(root, s.DirName(), name)
		if !pathExists(existing) {
			continue
		}
		info.Exists = true
		info.TargetState = s
		if t, err := bundleModTime(existing); err == nil {
			info.TargetModified = t
		}
		break
	}
	return info, nil
}

// bundleModTime uses the manifest's modification time when present and the
// directory's otherwise.
func bundleModTime(dir string) (time.Time, error) {
	if fi, err := os.Stat(filepath.Join(dir, skillFileName)); err == nil {
		return fi.ModTime(), nil
	}
	fi, err := os.Stat(dir)
	if err != nil {
		return time.Time{}, err
	}
	return fi.ModTime(), nil
}
