package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var shortcutCmd = &cobra.Command{
	Use:   "shortcut",
	Short: "Show whether the /skill-manager command can be installed",
	Long: `Claude Code reads slash commands from .claude/commands. The shortcut
adds a /skill-manager command that opens this installation.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDeps()
		if err != nil {
			return err
		}
		if d.manager.CanOfferCommandShortcut() {
			fmt.Println("Shortcut available: run 'skillmgr shortcut install'")
		} else {
			fmt.Println("Shortcut not available (already installed or not a Claude Code project)")
		}
		return nil
	},
}

var shortcutInstallCmd = &cobra.Command{
	Use:   "install",
	Short: "Install the /skill-manager command",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDeps()
		if err != nil {
			return err
		}
		path, err := d.manager.InstallCommandShortcut()
		if err != nil {
			return err
		}
		fmt.Printf("Installed %s\n", path)
		return nil
	},
}

func init() {
	shortcutCmd.AddCommand(shortcutInstallCmd)
	rootCmd.AddCommand(shortcutCmd)
}
