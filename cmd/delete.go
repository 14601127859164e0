package cmd

import (
	"fmt"
	"os"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/codetrail/devtrack/models"
)

var deleteYes bool

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:   "delete <feature|bug|task> <id>",
	Short: "Delete an item",
	Long:  `Delete an item by its ID. A confirmation prompt is shown unless --yes is passed. Deleting an unknown ID is not an error.`,
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		kind, err := models.ParseKind(args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		id := args[1]

		s, err := requireStore()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer func() { _ = s.Close() }()

		if !deleteYes {
			confirm := promptui.Prompt{
				Label:     fmt.Sprintf("Delete %s %s", kind, id),
				IsConfirm: true,
			}
			if _, err := confirm.Run(); err != nil {
				fmt.Println("Deletion cancelled.")
				return
			}
		}

		removed, err := s.DeleteItem(kind, id)
		if err != nil {
			HandleError(fmt.Sprintf("Could not delete %s %s.", kind, id), err)
		}
		if !removed {
			fmt.Printf("No %s with ID %s; nothing deleted.\n", kind, id)
			return
		}
		fmt.Printf("✓ Deleted %s %s\n", kind, id)
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "skip the confirmation prompt")
}
