package core

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// newAgentRoot creates <tmp>/project/<dirName> and returns it.
func newAgentRoot(t *testing.T, kind AgentKind) string {
	t.Helper()
	root := filepath.Join(t.TempDir(), "project", kind.DirName())
	if err := os.MkdirAll(root, 0o755); err != nil {
		t.Fatal(err)
	}
	return root
}

// writeSkill creates a skill bundle with the given manifest content.
func writeSkill(t *testing.T, baseDir string, state SkillState, name, content string) string {
	t.Helper()
	dir := filepath.Join(baseDir, state.DirName(), name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, skillFileName), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

// fakePackage is a PackageLocator rooted at a fixed path.
type fakePackage struct {
	path string
	err  error
}

func (f *fakePackage) OwnPackage() (string, error) {
	return f.path, f.err
}

func (f *fakePackage) PackageParent(levels int) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	dir := f.path
	for range levels {
		dir = filepath.Dir(dir)
	}
	return dir, nil
}

func TestCopyTree(t *testing.T) {
	src := filepath.Join(t.TempDir(), "src")
	if err := os.MkdirAll(filepath.Join(src, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(src, "run.sh"), []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(src, "sub", "a.txt"), []byte("a"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink("sub/a.txt", filepath.Join(src, "link")); err != nil {
		t.Fatal(err)
	}

	dst := filepath.Join(t.TempDir(), "dst")
	if err := copyTree(src, dst); err != nil {
		t.Fatalf("copyTree() error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dst, "sub", "a.txt"))
	if err != nil || string(data) != "a" {
		t.Errorf("nested file not copied: %q, %v", data, err)
	}
	info, err := os.Stat(filepath.Join(dst, "run.sh"))
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm()&0o100 == 0 {
		t.Errorf("executable bit lost: %v", info.Mode())
	}
	target, err := os.Readlink(filepath.Join(dst, "link"))
	if err != nil {
		t.Fatalf("symlink not recreated: %v", err)
	}
	if target != "sub/a.txt" {
		t.Errorf("symlink target = %q, want %q", target, "sub/a.txt")
	}
}

func TestListEntries_DirectoriesFirst(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.md", "a.md", skillFileName} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	for _, name := range []string{"zeta", "alpha"} {
		if err := os.Mkdir(filepath.Join(dir, name), 0o755); err != nil {
			t.Fatal(err)
		}
	}

	entries, err := listEntries(dir, func(n string) bool { return n == skillFileName })
	if err != nil {
		t.Fatal(err)
	}

	var got []string
	for _, e := range entries {
		got = append(got, e.Name)
	}
	want := "alpha,zeta,a.md,b.md"
	if strings.Join(got, ",") != want {
		t.Errorf("order = %v, want %s", got, want)
	}
	if !entries[0].IsDirectory || entries[2].IsDirectory {
		t.Errorf("IsDirectory flags wrong: %+v", entries)
	}
}

func TestValidateName(t *testing.T) {
	for _, name := range []string{"", ".", "..", "a/b", `a\b`, "../x"} {
		if err := validateName(name); !errors.Is(err, ErrInvalidName) {
			t.Errorf("validateName(%q) = %v, want ErrInvalidName", name, err)
		}
	}
	for _, name := range []string{"pdf", "my-skill", "skill.v2"} {
		if err := validateName(name); err != nil {
			t.Errorf("validateName(%q) = %v, want nil", name, err)
		}
	}
}

func TestOpError_Unwrap(t *testing.T) {
	err := ioError("writing", "/x", fs.ErrPermission)
	if !errors.Is(err, ErrIO) {
		t.Error("expected errors.Is(err, ErrIO)")
	}
	if !errors.Is(err, fs.ErrPermission) {
		t.Error("expected errors.Is(err, fs.ErrPermission)")
	}
	if errors.Is(err, ErrLaunch) {
		t.Error("did not expect ErrLaunch")
	}
	if !strings.Contains(err.Error(), "writing /x") {
		t.Errorf("message = %q", err.Error())
	}
}
