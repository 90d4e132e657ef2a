package core

import (
	"bufio"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// skillFrontmatter is the raw YAML structure at the top of a SKILL.md file.
type skillFrontmatter struct {
	Name     string `yaml:"name"`
	License  string `yaml:"license,omitempty"`
	Metadata struct {
		Author  string `yaml:"author,omitempty"`
		Version string `yaml:"version,omitempty"`
	} `yaml:"metadata,omitempty"`
}

// ParseSkillMeta extracts the optional metadata block from SKILL.md
// content. Manifests without frontmatter return a zero SkillMeta and a nil
// error; malformed YAML returns an error.
func ParseSkillMeta(content string) (SkillMeta, error) {
	scanner := bufio.NewScanner(strings.NewReader(content))

	// Look for opening ---
	if !scanner.Scan() || strings.TrimSpace(scanner.Text()) != "---" {
		return SkillMeta{}, nil
	}

	var frontmatter strings.Builder
	closed := false
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "---" {
			closed = true
			break
		}
		frontmatter.WriteString(line)
		frontmatter.WriteString("\n")
	}
	if err := scanner.Err(); err != nil {
		return SkillMeta{}, fmt.Errorf("reading frontmatter: %w", err)
	}
	if !closed {
		return SkillMeta{}, fmt.Errorf("unterminated frontmatter")
	}

	var fm skillFrontmatter
	if err := yaml.Unmarshal([]byte(frontmatter.String()), &fm); err != nil {
		return SkillMeta{}, fmt.Errorf("parsing frontmatter: %w", err)
	}

	return SkillMeta{
		Name:    fm.Name,
		Version: fm.Metadata.Version,
		Author:  fm.Metadata.Author,
		License: fm.License,
	}, nil
}
