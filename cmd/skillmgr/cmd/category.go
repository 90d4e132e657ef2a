package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/barysiuk/skillmgr/internal/core"
)

var categoryCmd = &cobra.Command{
	Use:     "category",
	Aliases: []string{"categories"},
	Short:   "Manage skill categories",
	Long: `Categories group skills for display. They are stored in
skill-manager-config.json inside the agent root.`,
}

var categoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories in display order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDeps()
		if err != nil {
			return err
		}

		snap, err := d.manager.Snapshot()
		if err != nil {
			return err
		}

		asJSON, _ := cmd.Flags().GetBool("json")
		if asJSON {
			return printJSON(snap.Categories)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		_, _ = fmt.Fprintln(w, "CATEGORY\tSKILLS\tENABLED\tMEMBERS")
		for _, name := range snap.Categories.CategoryOrder {
			total, enabled := snap.Counts(name)
			members := strings.Join(snap.Categories.Skills(name), ", ")
			_, _ = fmt.Fprintf(w, "%s\t%d\t%d\t%s\n", name, total, enabled, truncate(members, 60))
		}
		return w.Flush()
	},
}

// editCategories runs edit against the normalized config and saves it.
func editCategories(edit func(cfg *core.CategoryConfig) error) error {
	d, err := newDeps()
	if err != nil {
		return err
	}
	_, err = d.manager.EditCategories(edit)
	return err
}

var categoryAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add an empty category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.TrimSpace(args[0])
		if err := editCategories(func(cfg *core.CategoryConfig) error {
			return cfg.AddCategory(name)
		}); err != nil {
			return err
		}
		fmt.Printf("Added category %q\n", name)
		return nil
	},
}

var categoryRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a category, moving its skills to the first remaining one",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := editCategories(func(cfg *core.CategoryConfig) error {
			return cfg.RemoveCategory(args[0])
		}); err != nil {
			return err
		}
		fmt.Printf("Removed category %q\n", args[0])
		return nil
	},
}

var categoryRenameCmd = &cobra.Command{
	Use:   "rename <old> <new>",
	Short: "Rename a category in place",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		newName := strings.TrimSpace(args[1])
		if err := editCategories(func(cfg *core.CategoryConfig) error {
			return cfg.RenameCategory(args[0], newName)
		}); err != nil {
			return err
		}
		fmt.Printf("Renamed category %q to %q\n", args[0], newName)
		return nil
	},
}

var categoryReorderCmd = &cobra.Command{
	Use:   "reorder <name>...",
	Short: "Set the display order of all categories",
	Long: `Set the display order. Every category must be listed exactly once.

Example:
  skillmgr category reorder Writing Code Uncategorized`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := editCategories(func(cfg *core.CategoryConfig) error {
			return cfg.Reorder(args)
		}); err != nil {
			return err
		}
		fmt.Printf("Category order: %s\n", strings.Join(args, ", "))
		return nil
	},
}

var categoryMoveCmd = &cobra.Command{
	Use:   "move <skill> <category>",
	Short: "Move a skill into a category",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := editCategories(func(cfg *core.CategoryConfig) error {
			return cfg.MoveSkill(args[0], args[1])
		}); err != nil {
			return err
		}
		fmt.Printf("Moved %s to %q\n", args[0], args[1])
		return nil
	},
}

func init() {
	categoryListCmd.Flags().Bool("json", false, "Output as JSON")

	categoryCmd.AddCommand(categoryListCmd)
	categoryCmd.AddCommand(categoryAddCmd)
	categoryCmd.AddCommand(categoryRemoveCmd)
	categoryCmd.AddCommand(categoryRenameCmd)
	categoryCmd.AddCommand(categoryReorderCmd)
	categoryCmd.AddCommand(categoryMoveCmd)
	rootCmd.AddCommand(categoryCmd)
}
