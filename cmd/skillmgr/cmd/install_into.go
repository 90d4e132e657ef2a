package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/barysiuk/skillmgr/internal/core"
)

var installIntoCmd = &cobra.Command{
	Use:   "install-into <project>",
	Short: "Install skillmgr into another project's .claude directory",
	Long: `Copy this installation into <project>/.claude and start the copy.
A previous installation there is replaced.

Example:
  skillmgr install-into ~/code/my-app`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var opts core.ManagerOptions
		noLaunch, _ := cmd.Flags().GetBool("no-launch")
		if noLaunch {
			opts.Launcher = stagingOnly()
		}
		d, err := newDepsWith(opts)
		if err != nil {
			return err
		}

		staged, err := d.manager.InstallInto(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Installed %s\n", staged)
		return nil
	},
}

func init() {
	installIntoCmd.Flags().Bool("no-launch", false, "Copy without starting the new installation")
	rootCmd.AddCommand(installIntoCmd)
}
