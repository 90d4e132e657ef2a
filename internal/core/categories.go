package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/tailscale/hujson"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/barysiuk/skillmgr/internal/logger"
)

// CategoryConfig groups skill names into named, ordered categories.
// Categories keeps its JSON key order; CategoryOrder is the display order.
// Skill names are not checked against the registry.
type CategoryConfig struct {
	Categories    *orderedmap.OrderedMap[string, []string] `json:"categories"`
	CategoryOrder []string                                  `json:"categoryOrder"`
}

// NewCategoryConfig returns an empty config.
func NewCategoryConfig() *CategoryConfig {
	return &CategoryConfig{
		Categories:    orderedmap.New[string, []string](),
		CategoryOrder: []string{},
	}
}

// DefaultCategoryConfig is the config used when none exists on disk.
func DefaultCategoryConfig() *CategoryConfig {
	cfg := NewCategoryConfig()
	cfg.Categories.Set(defaultCategoryName, []string{})
	cfg.CategoryOrder = []string{defaultCategoryName}
	return cfg
}

// Clone returns a deep copy.
func (c *CategoryConfig) Clone() *CategoryConfig {
	out := NewCategoryConfig()
	if c == nil {
		return out
	}
	for pair := c.categories().Oldest(); pair != nil; pair = pair.Next() {
		out.Categories.Set(pair.Key, append([]string{}, pair.Value...))
	}
	out.CategoryOrder = append(out.CategoryOrder, c.CategoryOrder...)
	return out
}

func (c *CategoryConfig) categories() *orderedmap.OrderedMap[string, []string] {
	if c.Categories == nil {
		c.Categories = orderedmap.New[string, []string]()
	}
	return c.Categories
}

// Keys returns category names in stored key order.
func (c *CategoryConfig) Keys() []string {
	keys := make([]string, 0, c.categories().Len())
	for pair := c.categories().Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Has reports whether the named category exists.
func (c *CategoryConfig) Has(name string) bool {
	_, ok := c.categories().Get(name)
	return ok
}

// Skills returns the skill names listed under a category.
func (c *CategoryConfig) Skills(name string) []string {
	skills, _ := c.categories().Get(name)
	return skills
}

// CategoryOf returns the first category in display order listing skill.
func (c *CategoryConfig) CategoryOf(skill string) (string, bool) {
	for _, name := range c.CategoryOrder {
		if slices.Contains(c.Skills(name), skill) {
			return name, true
		}
	}
	return "", false
}

// AddCategory appends an empty category to both the map and the order.
func (c *CategoryConfig) AddCategory(name string) error {
	if name == "" {
		return fmt.Errorf("%w: category name is empty", ErrInvalidName)
	}
	if c.Has(name) {
		return fmt.Errorf("category %q: %w", name, ErrConflict)
	}
	c.categories().Set(name, []string{})
	c.CategoryOrder = append(c.CategoryOrder, name)
	return nil
}

// RemoveCategory deletes a category and moves its skills to the first
// remaining category in display order. The last category cannot be removed.
func (c *CategoryConfig) RemoveCategory(name string) error {
	skills, ok := c.categories().Get(name)
	if !ok {
		return fmt.Errorf("category %q: %w", name, ErrNotFound)
	}
	if c.categories().Len() <= 1 {
		return fmt.Errorf("cannot remove the last category %q: %w", name, ErrInvalidState)
	}

	c.categories().Delete(name)
	c.CategoryOrder = slices.DeleteFunc(c.CategoryOrder, func(n string) bool { return n == name })

	target := ""
	for _, n := range c.CategoryOrder {
		if c.Has(n) {
			target = n
			break
		}
	}
	if target == "" {
		target = c.categories().Oldest().Key
	}
	c.categories().Set(target, appendMissing(c.Skills(target), skills...))
	return nil
}

// RenameCategory renames a category in place, keeping both its key
// position and its display position.
func (c *CategoryConfig) RenameCategory(oldName, newName string) error {
	if newName == "" {
		return fmt.Errorf("%w: category name is empty", ErrInvalidName)
	}
	if !c.Has(oldName) {
		return fmt.Errorf("category %q: %w", oldName, ErrNotFound)
	}
	if oldName == newName {
		return nil
	}
	if c.Has(newName) {
		return fmt.Errorf("category %q: %w", newName, ErrConflict)
	}

	renamed := orderedmap.New[string, []string]()
	for pair := c.categories().Oldest(); pair != nil; pair = pair.Next() {
		key := pair.Key
		if key == oldName {
			key = newName
		}
		renamed.Set(key, pair.Value)
	}
	c.Categories = renamed

	for i, n := range c.CategoryOrder {
		if n == oldName {
			c.CategoryOrder[i] = newName
		}
	}
	return nil
}

// Reorder replaces the display order. order must contain every category
// exactly once.
func (c *CategoryConfig) Reorder(order []string) error {
	if len(order) != c.categories().Len() {
		return fmt.Errorf("%w: order lists %d categories, config has %d",
			ErrInvalidState, len(order), c.categories().Len())
	}
	seen := make(map[string]bool, len(order))
	for _, name := range order {
		if !c.Has(name) {
			return fmt.Errorf("category %q: %w", name, ErrNotFound)
		}
		if seen[name] {
			return fmt.Errorf("%w: category %q listed twice", ErrInvalidState, name)
		}
		seen[name] = true
	}
	c.CategoryOrder = append([]string{}, order...)
	return nil
}

// MoveSkill removes skill from every category and appends it to category.
func (c *CategoryConfig) MoveSkill(skill, category string) error {
	if !c.Has(category) {
		return fmt.Errorf("category %q: %w", category, ErrNotFound)
	}
	for pair := c.categories().Oldest(); pair != nil; pair = pair.Next() {
		pair.Value = slices.DeleteFunc(pair.Value, func(s string) bool { return s == skill })
	}
	c.categories().Set(category, append(c.Skills(category), skill))
	return nil
}

// Normalize reconciles cfg with the skills currently on disk and returns a
// new config. Categories missing from the order are appended, order entries
// without a category are dropped, and skills listed nowhere are appended to
// the first category in display order.
func Normalize(cfg *CategoryConfig, skillNames []string) *CategoryConfig {
	out := cfg.Clone()

	order := make([]string, 0, out.categories().Len())
	for _, name := range out.CategoryOrder {
		if out.Has(name) && !slices.Contains(order, name) {
			order = append(order, name)
		}
	}
	for _, key := range out.Keys() {
		if !slices.Contains(order, key) {
			order = append(order, key)
		}
	}
	out.CategoryOrder = order

	if len(order) == 0 {
		return out
	}

	listed := make(map[string]bool)
	for pair := out.categories().Oldest(); pair != nil; pair = pair.Next() {
		for _, s := range pair.Value {
			listed[s] = true
		}
	}
	var uncategorized []string
	for _, name := range skillNames {
		if !listed[name] {
			uncategorized = append(uncategorized, name)
			listed[name] = true
		}
	}
	if len(uncategorized) > 0 {
		first := order[0]
		out.categories().Set(first, append(out.Skills(first), uncategorized...))
	}
	return out
}

func appendMissing(dst []string, items ...string) []string {
	for _, item := range items {
		if !slices.Contains(dst, item) {
			dst = append(dst, item)
		}
	}
	return dst
}

// CategoryStore reads and writes the category config inside an agent root.
type CategoryStore struct{}

// NewCategoryStore creates a CategoryStore.
func NewCategoryStore() *CategoryStore {
	return &CategoryStore{}
}

// Path returns the config file path for an agent root.
func (s *CategoryStore) Path(baseDir string) string {
	return filepath.Join(baseDir, categoryFileName)
}

// Load reads the category config. A missing or unparsable file yields the
// default config, which is written back best-effort. A config without a
// display order gets one derived from its key order, also written back.
func (s *CategoryStore) Load(baseDir string) (*CategoryConfig, error) {
	if baseDir == "" {
		return nil, ErrConfiguration
	}
	log := logger.For("categories").WithField("path", s.Path(baseDir))

	cfg, err := s.read(baseDir)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.WithError(err).Warn("category config unreadable, using defaults")
		}
		cfg = DefaultCategoryConfig()
		if err := s.Save(baseDir, cfg); err != nil {
			log.WithError(err).Warn("failed to write default category config")
		}
		return cfg, nil
	}

	if len(cfg.CategoryOrder) == 0 {
		cfg.CategoryOrder = cfg.Keys()
		if err := s.Save(baseDir, cfg); err != nil {
			log.WithError(err).Warn("failed to persist derived category order")
		}
	}
	return cfg, nil
}

func (s *CategoryStore) read(baseDir string) (*CategoryConfig, error) {
	data, err := os.ReadFile(s.Path(baseDir))
	if err != nil {
		return nil, err
	}

	// Tolerate comments and trailing commas in hand-edited files.
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("parsing category config: %w", err)
	}

	var cfg CategoryConfig
	if err := json.Unmarshal(standardized, &cfg); err != nil {
		return nil, fmt.Errorf("parsing category config: %w", err)
	}
	if cfg.Categories == nil {
		return nil, fmt.Errorf("parsing category config: missing categories")
	}
	if cfg.CategoryOrder == nil {
		cfg.CategoryOrder = []string{}
	}
	for pair := cfg.Categories.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Value == nil {
			pair.Value = []string{}
		}
	}
	return &cfg, nil
}

// Save overwrites the config file atomically.
func (s *CategoryStore) Save(baseDir string, cfg *CategoryConfig) error {
	if baseDir == "" {
		return ErrConfiguration
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return ioError("creating", baseDir, err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling category config: %w", err)
	}
	if err := writeFileAtomic(s.Path(baseDir), append(data, '\n')); err != nil {
		return ioError("writing", s.Path(baseDir), err)
	}
	return nil
}
