package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/barysiuk/skillmgr/internal/core"
)

var agentCmd = &cobra.Command{
	Use:   "agent",
	Short: "Show the active agent",
	Long: `Show which agent (claude or codex) owns the active agent root.

The agent is derived from the root's directory name: .claude or .codex.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDeps()
		if err != nil {
			return err
		}

		ctx, err := d.manager.Context()
		if err != nil {
			return err
		}
		fmt.Printf("Agent: %s\n", ctx.Kind)
		fmt.Printf("Root: %s\n", ctx.BaseDir)
		if ctx.ProjectRoot != "" {
			fmt.Printf("Project: %s\n", ctx.ProjectRoot)
		}
		return nil
	},
}

var agentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List agent roots present in the project",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDeps()
		if err != nil {
			return err
		}
		if _, err := d.manager.Context(); err != nil {
			return err
		}
		fmt.Println(agentNames(d.manager.AvailableAgents()))
		return nil
	},
}

var agentSwitchCmd = &cobra.Command{
	Use:   "switch <claude|codex>",
	Short: "Install skillmgr into the other agent root and start it there",
	Long: `Copy this installation into the project's other agent root
(.claude <-> .codex) and start the copy. The current installation is
left in place.

Only works when skillmgr runs from inside an agent root.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := core.ParseAgentKind(args[0])
		if err != nil {
			return err
		}

		var opts core.ManagerOptions
		noLaunch, _ := cmd.Flags().GetBool("no-launch")
		if noLaunch {
			opts.Launcher = stagingOnly()
		}
		d, err := newDepsWith(opts)
		if err != nil {
			return err
		}

		staged, err := d.manager.SwitchAgentType(kind)
		if err != nil {
			return err
		}
		if staged == "" {
			fmt.Printf("Already running as %s\n", kind.DisplayName())
			return nil
		}
		fmt.Printf("Installed %s\n", staged)
		if !noLaunch {
			fmt.Printf("Started %s; this copy can be closed\n", kind.DisplayName())
		}
		return nil
	},
}

func init() {
	agentSwitchCmd.Flags().Bool("no-launch", false, "Copy without starting the new installation")

	agentCmd.AddCommand(agentListCmd)
	agentCmd.AddCommand(agentSwitchCmd)
	rootCmd.AddCommand(agentCmd)
}
