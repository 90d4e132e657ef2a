package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/barysiuk/skillmgr/internal/core"
)

var copyCmd = &cobra.Command{
	Use:   "copy <name>",
	Short: "Copy a skill to the other agent",
	Long: `Copy a skill from this agent root into the other agent's skills/
directory (.claude -> .codex or .codex -> .claude). The copy is enabled.

Nothing is overwritten: if the other agent already has a skill with the same
name, enabled or disabled, the command fails.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDeps()
		if err != nil {
			return err
		}

		skill, err := d.manager.FindSkill(args[0])
		if err != nil {
			return err
		}

		if err := d.manager.CopySkillToOtherAgent(skill.Name, skill.Enabled()); err != nil {
			var conflict *core.ConflictError
			if errors.As(err, &conflict) {
				return fmt.Errorf("%w\nremove or rename it there first", err)
			}
			return err
		}

		ctx, _ := d.manager.Context()
		fmt.Printf("Copied %s to %s\n", skill.Name, ctx.Kind.Other().DisplayName())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(copyCmd)
}
