package core

import (
	"fmt"
	"path/filepath"
	"slices"

	"github.com/hashicorp/go-multierror"

	"github.com/barysiuk/skillmgr/internal/logger"
)

// ManagerOptions configures a Manager. Zero fields get production defaults.
type ManagerOptions struct {
	// RootOverride, when set, is used as the agent root unconditionally.
	RootOverride string
	Locator      *Locator
	Settings     *SettingsManager
	Launcher     Launcher
	Shortcuts    *Shortcuts
}

// Manager is the operation surface used by the CLI and the TUI. Every call
// resolves the agent root afresh; nothing read from disk is cached.
type Manager struct {
	rootOverride string
	locator      *Locator
	settings     *SettingsManager
	registry     *Registry
	categories   *CategoryStore
	propagator   *Propagator
	relocator    *Relocator
	shortcuts    *Shortcuts
}

// NewManager creates a Manager.
func NewManager(opts ManagerOptions) (*Manager, error) {
	if opts.Locator == nil {
		opts.Locator = NewLocator(NewExeLocator())
	}
	if opts.Settings == nil {
		sm, err := NewSettingsManager()
		if err != nil {
			return nil, err
		}
		opts.Settings = sm
	}
	if opts.Launcher == nil {
		opts.Launcher = NewExecLauncher()
	}
	if opts.Shortcuts == nil {
		opts.Shortcuts = NewShortcuts()
	}

	root := opts.RootOverride
	if root != "" {
		abs, err := filepath.Abs(expandPath(root))
		if err != nil {
			return nil, fmt.Errorf("resolving root %s: %w", root, err)
		}
		root = abs
	}

	return &Manager{
		rootOverride: root,
		locator:      opts.Locator,
		settings:     opts.Settings,
		registry:     NewRegistry(),
		categories:   NewCategoryStore(),
		propagator:   NewPropagator(),
		relocator:    NewRelocator(opts.Locator, opts.Launcher),
		shortcuts:    opts.Shortcuts,
	}, nil
}

// Settings returns the settings manager.
func (m *Manager) Settings() *SettingsManager {
	return m.settings
}

// SetProjectPath saves the fallback project used when the binary runs
// outside an agent tree.
func (m *Manager) SetProjectPath(path string) (string, error) {
	return m.settings.SetProjectPath(path)
}

// Context resolves the active agent context: the root override, else the
// installed location, else the saved project's .claude directory.
func (m *Manager) Context() (AgentContext, error) {
	if m.rootOverride != "" {
		return ContextForRoot(m.rootOverride), nil
	}

	if ctx := m.locator.Resolve(); ctx.InAgentTree() {
		return ctx, nil
	}

	s, err := m.settings.Load()
	if err != nil {
		logger.For("manager").WithError(err).Warn("failed to load settings")
	}
	if s != nil && s.ProjectPath != "" {
		return ContextForRoot(filepath.Join(s.ProjectPath, AgentClaude.DirName())), nil
	}
	return AgentContext{Kind: AgentNone}, ErrConfiguration
}

// AgentRoot returns the active agent root directory.
func (m *Manager) AgentRoot() (string, error) {
	ctx, err := m.Context()
	if err != nil {
		return "", err
	}
	return ctx.BaseDir, nil
}

// AgentKind reports the active agent kind, AgentNone when unresolved.
func (m *Manager) AgentKind() AgentKind {
	ctx, err := m.Context()
	if err != nil {
		return AgentNone
	}
	return ctx.Kind
}

// AvailableAgents lists which agent roots exist in the active project.
func (m *Manager) AvailableAgents() []AgentKind {
	ctx, err := m.Context()
	if err != nil {
		return nil
	}
	return AvailableAgents(ctx.ProjectRoot)
}

// ListSkills scans the active agent root.
func (m *Manager) ListSkills() (*ScanResult, error) {
	root, err := m.AgentRoot()
	if err != nil {
		return nil, err
	}
	return m.registry.Scan(root)
}

// FindSkill returns the scanned skill with the given name, preferring the
// enabled copy when both roots hold one.
func (m *Manager) FindSkill(name string) (SkillEntry, error) {
	result, err := m.ListSkills()
	if err != nil {
		return SkillEntry{}, err
	}
	var found *SkillEntry
	for i := range result.Skills {
		if result.Skills[i].Name != name {
			continue
		}
		if found == nil || result.Skills[i].Enabled() {
			found = &result.Skills[i]
		}
	}
	if found == nil {
		return SkillEntry{}, fmt.Errorf("skill %q: %w", name, ErrNotFound)
	}
	return *found, nil
}

// SetSkillEnabled moves a skill into the enabled or disabled root.
func (m *Manager) SetSkillEnabled(name string, enabled bool) error {
	root, err := m.AgentRoot()
	if err != nil {
		return err
	}
	return m.registry.SetState(root, name, StateFor(enabled))
}

// SetCategoryEnabled toggles every skill of a category, including skills
// that only land there through normalization. It keeps
// going past individual failures and returns them together.
func (m *Manager) SetCategoryEnabled(category string, enabled bool) error {
	snap, err := m.Snapshot()
	if err != nil {
		return err
	}
	cfg := snap.Categories
	if !cfg.Has(category) {
		return fmt.Errorf("category %q: %w", category, ErrNotFound)
	}

	root := snap.Context.BaseDir
	var merr *multierror.Error
	for _, name := range cfg.Skills(category) {
		if err := m.registry.SetState(root, name, StateFor(enabled)); err != nil {
			merr = multierror.Append(merr, fmt.Errorf("%s: %w", name, err))
		}
	}
	return merr.ErrorOrNil()
}

// LoadCategories reads the category config of the active agent root.
func (m *Manager) LoadCategories() (*CategoryConfig, error) {
	root, err := m.AgentRoot()
	if err != nil {
		return nil, err
	}
	return m.categories.Load(root)
}

// SaveCategories overwrites the category config of the active agent root.
func (m *Manager) SaveCategories(cfg *CategoryConfig) error {
	root, err := m.AgentRoot()
	if err != nil {
		return err
	}
	return m.categories.Save(root, cfg)
}

// EditCategories loads and normalizes the category config, applies edit and
// saves the result. Nothing is written when edit fails.
func (m *Manager) EditCategories(edit func(cfg *CategoryConfig) error) (*CategoryConfig, error) {
	snap, err := m.Snapshot()
	if err != nil {
		return nil, err
	}
	cfg := snap.Categories
	if err := edit(cfg); err != nil {
		return nil, err
	}
	if err := m.categories.Save(snap.Context.BaseDir, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Snapshot is a consistent view of the active agent root.
type Snapshot struct {
	Context    AgentContext
	Skills     []SkillEntry
	Issues     []ScanIssue
	Categories *CategoryConfig // normalized against Skills
}

// Snapshot scans skills and loads categories, normalized but not saved.
func (m *Manager) Snapshot() (*Snapshot, error) {
	ctx, err := m.Context()
	if err != nil {
		return nil, err
	}
	result, err := m.registry.Scan(ctx.BaseDir)
	if err != nil {
		return nil, err
	}
	cfg, err := m.categories.Load(ctx.BaseDir)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(result.Skills))
	for _, s := range result.Skills {
		names = append(names, s.Name)
	}
	return &Snapshot{
		Context:    ctx,
		Skills:     result.Skills,
		Issues:     result.Issues,
		Categories: Normalize(cfg, names),
	}, nil
}

// SkillsIn returns the scanned skills listed under category, in scan order.
func (s *Snapshot) SkillsIn(category string) []SkillEntry {
	listed := s.Categories.Skills(category)
	var out []SkillEntry
	for _, skill := range s.Skills {
		if slices.Contains(listed, skill.Name) {
			out = append(out, skill)
		}
	}
	return out
}

// Counts returns how many existing skills a category lists and how many of
// them are enabled.
func (s *Snapshot) Counts(category string) (total, enabled int) {
	for _, skill := range s.SkillsIn(category) {
		total++
		if skill.Enabled() {
			enabled++
		}
	}
	return total, enabled
}

// InspectCopy reports whether copying a skill would conflict.
func (m *Manager) InspectCopy(name string, enabled bool) (ConflictInfo, error) {
	ctx, err := m.Context()
	if err != nil {
		return ConflictInfo{}, err
	}
	return m.propagator.Inspect(ctx, name, StateFor(enabled))
}

// CopySkillToOtherAgent copies a skill into the sibling agent's enabled root.
func (m *Manager) CopySkillToOtherAgent(name string, enabled bool) error {
	ctx, err := m.Context()
	if err != nil {
		return err
	}
	return m.propagator.CopyToOtherAgent(ctx, name, StateFor(enabled))
}

// SwitchAgentType installs the application into the other agent root of
// the current project and launches it there.
func (m *Manager) SwitchAgentType(kind AgentKind) (string, error) {
	return m.relocator.SwitchAgentType(kind)
}

// InstallInto installs the application into a project's .claude directory
// and launches it there.
func (m *Manager) InstallInto(targetProject string) (string, error) {
	return m.relocator.InstallInto(targetProject)
}

// CanOfferCommandShortcut reports whether the command shortcut can be installed.
func (m *Manager) CanOfferCommandShortcut() bool {
	ctx, err := m.Context()
	if err != nil {
		return false
	}
	return m.shortcuts.CanOffer(ctx)
}

// InstallCommandShortcut writes the command shortcut for the running package.
func (m *Manager) InstallCommandShortcut() (string, error) {
	ctx, err := m.Context()
	if err != nil {
		return "", err
	}
	pkg, err := m.locator.Package().OwnPackage()
	if err != nil {
		return "", fmt.Errorf("locating own package: %w", err)
	}
	return m.shortcuts.Install(ctx, pkg)
}

// ReadTextFile reads a text file.
func (m *Manager) ReadTextFile(path string) (string, error) {
	return ReadTextFile(path)
}

// WriteTextFile writes a text file.
func (m *Manager) WriteTextFile(path, content string) error {
	return WriteTextFile(path, content)
}

// ListDirectory lists a directory.
func (m *Manager) ListDirectory(path string) ([]AssetEntry, error) {
	return ListDirectory(path)
}
