//go:build !darwin

package core

// Elsewhere the package is the bare executable.
const bundleLayout = false
