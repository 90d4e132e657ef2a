package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/barysiuk/skillmgr/internal/core"
)

// skillJSON is the machine-readable form of a listed skill.
type skillJSON struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Enabled     bool              `json:"enabled"`
	Category    string            `json:"category,omitempty"`
	Path        string            `json:"path"`
	Version     string            `json:"version,omitempty"`
	Author      string            `json:"author,omitempty"`
	Files       []core.AssetEntry `json:"files"`
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List skills in the agent root",
	Long: `List every skill in the enabled and disabled roots, sorted by name.

Examples:
  skillmgr list
  skillmgr list --category Writing
  skillmgr list --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDeps()
		if err != nil {
			return err
		}

		snap, err := d.manager.Snapshot()
		if err != nil {
			return err
		}
		printIssues(snap.Issues)

		category, _ := cmd.Flags().GetString("category")
		skills := snap.Skills
		if category != "" {
			if !snap.Categories.Has(category) {
				return fmt.Errorf("category %q: %w", category, core.ErrNotFound)
			}
			skills = snap.SkillsIn(category)
		}

		asJSON, _ := cmd.Flags().GetBool("json")
		if asJSON {
			out := make([]skillJSON, 0, len(skills))
			for _, s := range skills {
				cat, _ := snap.Categories.CategoryOf(s.Name)
				out = append(out, skillJSON{
					Name:        s.Name,
					Description: s.Description,
					Enabled:     s.Enabled(),
					Category:    cat,
					Path:        s.ManifestPath,
					Version:     s.Meta.Version,
					Author:      s.Meta.Author,
					Files:       s.Files,
				})
			}
			return printJSON(out)
		}

		if len(skills) == 0 {
			fmt.Println("No skills found.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		_, _ = fmt.Fprintln(w, "NAME\tSTATE\tCATEGORY\tDESCRIPTION")
		for _, s := range skills {
			cat, _ := snap.Categories.CategoryOf(s.Name)
			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", s.Name, stateLabel(s), cat, truncate(s.Description, 60))
		}
		return w.Flush()
	},
}

var showCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Print a skill's SKILL.md and its files",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDeps()
		if err != nil {
			return err
		}

		skill, err := d.manager.FindSkill(args[0])
		if err != nil {
			return err
		}

		fmt.Printf("%s (%s)\n", skill.Name, stateLabel(skill))
		fmt.Printf("Path: %s\n", skill.Dir)
		if skill.Meta.Version != "" {
			fmt.Printf("Version: %s\n", skill.Meta.Version)
		}
		if skill.Meta.Author != "" {
			fmt.Printf("Author: %s\n", skill.Meta.Author)
		}
		if len(skill.Files) > 0 {
			fmt.Println("Files:")
			for _, f := range skill.Files {
				suffix := ""
				if f.IsDirectory {
					suffix = "/"
				}
				fmt.Printf("  %s%s\n", f.Name, suffix)
			}
		}
		fmt.Println()
		fmt.Print(skill.Content)
		return nil
	},
}

func init() {
	listCmd.Flags().Bool("json", false, "Output as JSON")
	listCmd.Flags().String("category", "", "Only list skills in this category")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
}
