package cmd

import (
	"fmt"
	"os"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

var importYes bool

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the full dataset from a JSON file",
	Long: `Validate the given file as a complete project dataset and replace
the current dataset with it.

This is destructive and all-or-nothing: the existing items are gone
after a successful import (except in backups), and an invalid file
changes nothing. A confirmation prompt is shown unless --yes is passed.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path := args[0]

		s, err := requireStore()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer func() { _ = s.Close() }()

		if !importYes {
			confirm := promptui.Prompt{
				Label:     fmt.Sprintf("Importing %s replaces ALL current data. Continue", path),
				IsConfirm: true,
			}
			if _, err := confirm.Run(); err != nil {
				fmt.Println("Import cancelled.")
				return
			}
		}

		if err := s.ImportData(path); err != nil {
			HandleError(fmt.Sprintf("Could not import %s.", path), err)
		}
		fmt.Printf("✓ Imported project data from %s\n", path)
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().BoolVarP(&importYes, "yes", "y", false, "skip the confirmation prompt")
}
