package core

import (
	"strings"
	"testing"
)

func TestExtractDescription(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "quoted description line",
			text: "---\nname: demo\ndescription: \"Demo\"\n---\n# Title\nBody",
			want: "Demo",
		},
		{
			name: "description line wins over earlier prose",
			text: "Intro line\ndescription: Later one",
			want: "Later one",
		},
		{
			name: "first description line wins",
			text: "description: first\ndescription: second",
			want: "first",
		},
		{
			name: "surrounding whitespace trimmed",
			text: "   description:    \"  padded \"   ",
			want: "  padded ",
		},
		{
			name: "only one layer of quotes removed",
			text: `description: ""nested""`,
			want: `"nested"`,
		},
		{
			name: "fallback skips headings and fences",
			text: "---\n# Heading\n\n  ## Sub\nFirst real line\nSecond",
			want: "First real line",
		},
		{
			name: "empty text",
			text: "",
			want: "No description",
		},
		{
			name: "headings only",
			text: "# One\n## Two\n---\n",
			want: "No description",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractDescription(tt.text); got != tt.want {
				t.Errorf("ExtractDescription() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractDescription_TruncatesFallback(t *testing.T) {
	line := strings.Repeat("é", 150)
	got := ExtractDescription(line)
	if n := len([]rune(got)); n != 100 {
		t.Errorf("fallback length = %d runes, want 100", n)
	}
}

func TestExtractDescription_DescriptionNotTruncated(t *testing.T) {
	long := strings.Repeat("x", 150)
	if got := ExtractDescription("description: " + long); got != long {
		t.Errorf("description line was truncated to %d characters", len(got))
	}
}

func TestParseSkillMeta(t *testing.T) {
	content := "---\nname: pdf\nlicense: MIT\nmetadata:\n  author: jane\n  version: \"1.2\"\n---\n# PDF\n"
	meta, err := ParseSkillMeta(content)
	if err != nil {
		t.Fatalf("ParseSkillMeta() error: %v", err)
	}
	if meta.Name != "pdf" || meta.Author != "jane" || meta.Version != "1.2" || meta.License != "MIT" {
		t.Errorf("unexpected meta: %+v", meta)
	}
}

func TestParseSkillMeta_NoFrontmatter(t *testing.T) {
	meta, err := ParseSkillMeta("# Just a heading\n")
	if err != nil {
		t.Fatalf("ParseSkillMeta() error: %v", err)
	}
	if meta != (SkillMeta{}) {
		t.Errorf("expected zero meta, got %+v", meta)
	}
}

func TestParseSkillMeta_Unterminated(t *testing.T) {
	if _, err := ParseSkillMeta("---\nname: x\n"); err == nil {
		t.Error("expected error for unterminated frontmatter")
	}
}

func TestParseSkillMeta_InvalidYAML(t *testing.T) {
	if _, err := ParseSkillMeta("---\nname: [unclosed\n---\n"); err == nil {
		t.Error("expected error for invalid YAML")
	}
}
