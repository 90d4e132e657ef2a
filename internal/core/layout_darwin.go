//go:build darwin

package core

// On macOS the application ships as a .app bundle and the executable lives
// three levels below the agent root.
const bundleLayout = true
