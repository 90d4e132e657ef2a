package core

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/barysiuk/skillmgr/internal/logger"
)

// maxScanDepth bounds discovery to root → skill directory → SKILL.md.
const maxScanDepth = 2

// ScanResult is the outcome of a best-effort skill scan. Issues lists every
// bundle or file that was skipped or read as empty; it never makes the scan
// itself fail.
type ScanResult struct {
	Skills []SkillEntry
	Issues []ScanIssue
}

// Err folds the scan issues into a single error, or nil when there are none.
func (r *ScanResult) Err() error {
	var merr *multierror.Error
	for _, issue := range r.Issues {
		merr = multierror.Append(merr, issue)
	}
	return merr.ErrorOrNil()
}

// Registry discovers and toggles skill bundles under an agent root.
type Registry struct{}

// NewRegistry creates a Registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Scan lists every skill under baseDir's enabled and disabled roots,
// sorted by name. The enabled root is created when missing.
func (r *Registry) Scan(baseDir string) (*ScanResult, error) {
	if baseDir == "" {
		return nil, ErrConfiguration
	}

	enabledRoot := filepath.Join(baseDir, enabledDirName)
	disabledRoot := filepath.Join(baseDir, disabledDirName)

	result := &ScanResult{}
	if err := os.MkdirAll(enabledRoot, 0o755); err != nil {
		result.Issues = append(result.Issues, ScanIssue{Path: enabledRoot, Err: err})
	}

	r.scanRoot(enabledRoot, StateEnabled, result)
	r.scanRoot(disabledRoot, StateDisabled, result)

	sort.SliceStable(result.Skills, func(i, j int) bool {
		return result.Skills[i].Name < result.Skills[j].Name
	})
	flagDuplicates(result)

	if err := result.Err(); err != nil {
		logger.For("registry").WithField("baseDir", baseDir).WithError(err).Debug("scan completed with issues")
	}
	return result, nil
}

// scanRoot walks one root at most two levels deep looking for SKILL.md files.
func (r *Registry) scanRoot(root string, state SkillState, result *ScanResult) {
	if !dirExists(root) {
		return
	}

	// WalkDir does not descend into a root that is itself a symlink. Walk
	// the target and report paths under root.
	walkRoot, err := filepath.EvalSymlinks(root)
	if err != nil {
		result.Issues = append(result.Issues, ScanIssue{Path: root, Err: err})
		return
	}

	_ = filepath.WalkDir(walkRoot, func(walked string, d fs.DirEntry, err error) error {
		rel, _ := filepath.Rel(walkRoot, walked)
		path := filepath.Join(root, rel)
		if err != nil {
			if rel != "." {
				result.Issues = append(result.Issues, ScanIssue{Path: path, Err: err})
			}
			return nil // skip unreadable entries
		}

		depth := 0
		if rel != "." {
			depth = strings.Count(rel, string(filepath.Separator)) + 1
		}

		// Skill directories may be symlinks (as linkers install them);
		// WalkDir does not follow them, so resolve the manifest directly.
		if depth == 1 && d.Type()&fs.ModeSymlink != 0 {
			if manifest := filepath.Join(path, skillFileName); fileExists(manifest) {
				result.Skills = append(result.Skills, r.loadEntry(manifest, state, result))
			}
			return nil
		}

		if d.IsDir() {
			if depth >= maxScanDepth {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Name() != skillFileName || depth > maxScanDepth {
			return nil
		}

		result.Skills = append(result.Skills, r.loadEntry(path, state, result))
		return nil
	})
}

// loadEntry builds a SkillEntry for one manifest. Read failures degrade to
// empty content and are recorded as issues.
func (r *Registry) loadEntry(manifestPath string, state SkillState, result *ScanResult) SkillEntry {
	skillDir := filepath.Dir(manifestPath)

	var content string
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		result.Issues = append(result.Issues, ScanIssue{Path: manifestPath, Err: err})
	} else {
		content = string(data)
	}

	meta, err := ParseSkillMeta(content)
	if err != nil {
		result.Issues = append(result.Issues, ScanIssue{Path: manifestPath, Err: err})
	}

	files, err := listEntries(skillDir, func(name string) bool { return name == skillFileName })
	if err != nil {
		result.Issues = append(result.Issues, ScanIssue{Path: skillDir, Err: err})
		files = []AssetEntry{}
	}

	return SkillEntry{
		Name:         filepath.Base(skillDir),
		Description:  ExtractDescription(content),
		State:        state,
		Content:      content,
		ManifestPath: manifestPath,
		Dir:          skillDir,
		Files:        files,
		Meta:         meta,
	}
}

// flagDuplicates records an issue for every name present in both roots.
// Both entries are kept; which one an agent honours is undefined.
func flagDuplicates(result *ScanResult) {
	for i := 1; i < len(result.Skills); i++ {
		prev, cur := result.Skills[i-1], result.Skills[i]
		if prev.Name == cur.Name && prev.State != cur.State {
			result.Issues = append(result.Issues, ScanIssue{
				Path: cur.Dir,
				Err:  fmt.Errorf("skill %q is present in both %s and %s", cur.Name, enabledDirName, disabledDirName),
			})
		}
	}
}

// SetState moves a skill bundle into the root matching target. A bundle
// that is not in the opposite root is left alone and the call succeeds.
// The move is a single rename; on failure nothing has changed.
func (r *Registry) SetState(baseDir, name string, target SkillState) error {
	if baseDir == "" {
		return ErrConfiguration
	}
	if err := validateName(name); err != nil {
		return err
	}

	for _, state := range []SkillState{StateEnabled, StateDisabled} {
		root := filepath.Join(baseDir, state.DirName())
		if err := os.MkdirAll(root, 0o755); err != nil {
			return ioError("creating", root, err)
		}
	}

	src := filepath.Join(baseDir, target.Opposite().DirName(), name)
	dst := filepath.Join(baseDir, target.DirName(), name)

	if !pathExists(src) {
		return nil
	}
	if pathExists(dst) {
		// os.Rename would silently replace an empty directory on unix.
		return ioError("moving skill to", dst, fs.ErrExist)
	}
	if err := os.Rename(src, dst); err != nil {
		return ioError("moving skill", src, err)
	}

	logger.For("registry").WithFields(map[string]interface{}{
		"skill": name,
		"state": target.String(),
	}).Debug("skill state changed")
	return nil
}
