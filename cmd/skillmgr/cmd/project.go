package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Show the saved project",
	Long: `The saved project is used when skillmgr is not installed inside an
agent root and no --root is given. Its .claude directory is managed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDeps()
		if err != nil {
			return err
		}
		s, err := d.manager.Settings().Load()
		if err != nil {
			return err
		}
		if s.ProjectPath == "" {
			fmt.Println("No project saved. Use 'skillmgr project set <path>'.")
			return nil
		}
		fmt.Println(s.ProjectPath)
		return nil
	},
}

var projectSetCmd = &cobra.Command{
	Use:   "set <path>",
	Short: "Save the project to manage",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDeps()
		if err != nil {
			return err
		}
		path, err := d.manager.Settings().SetProjectPath(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Project set to %s\n", path)
		return nil
	},
}

func init() {
	projectCmd.AddCommand(projectSetCmd)
	rootCmd.AddCommand(projectCmd)
}
