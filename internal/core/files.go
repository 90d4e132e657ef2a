package core

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// ReadTextFile returns the contents of a file as text.
func ReadTextFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fileError("reading", path, err)
	}
	return string(data), nil
}

// WriteTextFile replaces the contents of an existing or new file.
func WriteTextFile(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fileError("writing", path, err)
	}
	return nil
}

// ListDirectory lists a directory one level deep, directories first, then
// by name.
func ListDirectory(path string) ([]AssetEntry, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fileError("listing", path, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory: %w", path, ErrInvalidState)
	}
	entries, err := listEntries(path, nil)
	if err != nil {
		return nil, fileError("listing", path, err)
	}
	return entries, nil
}

// fileError classifies missing paths as ErrNotFound and everything else as ErrIO.
func fileError(op, path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return &OpError{Kind: ErrNotFound, Op: op, Path: path, Err: err}
	}
	return ioError(op, path, err)
}
