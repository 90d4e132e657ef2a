package core

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const (
	settingsDirName  = ".skillmgr"
	settingsFileName = "settings.json"
)

// Settings are the user's persisted preferences.
type Settings struct {
	// ProjectPath is used when the binary is not installed inside an agent
	// tree. Its .claude directory becomes the agent root.
	ProjectPath string `json:"projectPath,omitempty"`
}

// SettingsManager handles reading and writing skillmgr settings.
type SettingsManager struct {
	dir string
	mu  sync.RWMutex
}

// NewSettingsManager creates a SettingsManager using the default path (~/.skillmgr/).
func NewSettingsManager() (*SettingsManager, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("getting home directory: %w", err)
	}
	return &SettingsManager{dir: filepath.Join(home, settingsDirName)}, nil
}

// NewSettingsManagerWithDir creates a SettingsManager using a custom directory.
// Useful for testing.
func NewSettingsManagerWithDir(dir string) *SettingsManager {
	return &SettingsManager{dir: dir}
}

// Dir returns the settings directory path.
func (sm *SettingsManager) Dir() string {
	return sm.dir
}

// Path returns the full path to the settings file.
func (sm *SettingsManager) Path() string {
	return filepath.Join(sm.dir, settingsFileName)
}

// Load reads the settings from disk. Returns empty settings if the file doesn't exist.
func (sm *SettingsManager) Load() (*Settings, error) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	data, err := os.ReadFile(sm.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return &Settings{}, nil
		}
		return nil, fmt.Errorf("reading settings: %w", err)
	}

	var s Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing settings: %w", err)
	}
	return &s, nil
}

// Save writes the settings to disk, creating the directory if needed.
func (sm *SettingsManager) Save(s *Settings) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if err := os.MkdirAll(sm.dir, 0o755); err != nil {
		return fmt.Errorf("creating settings directory: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling settings: %w", err)
	}
	if err := writeFileAtomic(sm.Path(), data); err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}
	return nil
}

// SetProjectPath stores path as the fallback project. It must be an
// existing directory; the absolute form is saved.
func (sm *SettingsManager) SetProjectPath(path string) (string, error) {
	abs, err := filepath.Abs(expandPath(path))
	if err != nil {
		return "", fmt.Errorf("resolving project path: %w", err)
	}
	if !dirExists(abs) {
		return "", fmt.Errorf("project path %s: %w", abs, ErrNotFound)
	}

	s, err := sm.Load()
	if err != nil {
		return "", err
	}
	s.ProjectPath = abs
	if err := sm.Save(s); err != nil {
		return "", err
	}
	return abs, nil
}

// LogPath returns where the TUI writes its log file.
func (sm *SettingsManager) LogPath() string {
	return filepath.Join(sm.dir, "skillmgr.log")
}
