package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var enableCmd = &cobra.Command{
	Use:   "enable [name...]",
	Short: "Enable skills",
	Long: `Move skills from disabled-skills/ to skills/.

Examples:
  skillmgr enable pdf
  skillmgr enable pdf docx
  skillmgr enable --category Writing`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runToggle(cmd, args, true)
	},
}

var disableCmd = &cobra.Command{
	Use:   "disable [name...]",
	Short: "Disable skills",
	Long: `Move skills from skills/ to disabled-skills/.

Examples:
  skillmgr disable pdf
  skillmgr disable --category Writing`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runToggle(cmd, args, false)
	},
}

func runToggle(cmd *cobra.Command, args []string, enabled bool) error {
	category, _ := cmd.Flags().GetString("category")
	if category == "" && len(args) == 0 {
		return fmt.Errorf("specify at least one skill name or --category")
	}
	if category != "" && len(args) > 0 {
		return fmt.Errorf("--category cannot be combined with skill names")
	}

	d, err := newDeps()
	if err != nil {
		return err
	}

	verb := "Disabled"
	if enabled {
		verb = "Enabled"
	}

	if category != "" {
		if err := d.manager.SetCategoryEnabled(category, enabled); err != nil {
			return err
		}
		fmt.Printf("%s all skills in %q\n", verb, category)
		return nil
	}

	for _, name := range args {
		if _, err := d.manager.FindSkill(name); err != nil {
			return err
		}
		if err := d.manager.SetSkillEnabled(name, enabled); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		fmt.Printf("%s %s\n", verb, name)
	}
	return nil
}

func init() {
	enableCmd.Flags().String("category", "", "Enable every skill in a category")
	disableCmd.Flags().String("category", "", "Disable every skill in a category")

	rootCmd.AddCommand(enableCmd)
	rootCmd.AddCommand(disableCmd)
}
