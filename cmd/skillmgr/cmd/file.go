package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var fileCmd = &cobra.Command{
	Use:   "file",
	Short: "Read, write and list files inside skills",
}

var fileCatCmd = &cobra.Command{
	Use:   "cat <path>",
	Short: "Print a text file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDeps()
		if err != nil {
			return err
		}
		content, err := d.manager.ReadTextFile(args[0])
		if err != nil {
			return err
		}
		fmt.Print(content)
		return nil
	},
}

var fileWriteCmd = &cobra.Command{
	Use:   "write <path> [content]",
	Short: "Replace a text file's contents",
	Long: `Replace a text file's contents with the given argument, or with
standard input when no content argument is given.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDeps()
		if err != nil {
			return err
		}

		var content string
		if len(args) == 2 {
			content = args[1]
		} else {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("reading stdin: %w", err)
			}
			content = string(data)
		}

		if err := d.manager.WriteTextFile(args[0], content); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", args[0])
		return nil
	},
}

var fileLsCmd = &cobra.Command{
	Use:   "ls <dir>",
	Short: "List a directory, directories first",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDeps()
		if err != nil {
			return err
		}
		entries, err := d.manager.ListDirectory(args[0])
		if err != nil {
			return err
		}

		asJSON, _ := cmd.Flags().GetBool("json")
		if asJSON {
			return printJSON(entries)
		}
		for _, e := range entries {
			if e.IsDirectory {
				fmt.Printf("%s/\n", e.Name)
			} else {
				fmt.Println(e.Name)
			}
		}
		return nil
	},
}

func init() {
	fileLsCmd.Flags().Bool("json", false, "Output as JSON")

	fileCmd.AddCommand(fileCatCmd)
	fileCmd.AddCommand(fileWriteCmd)
	fileCmd.AddCommand(fileLsCmd)
	rootCmd.AddCommand(fileCmd)
}
