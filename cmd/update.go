package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/codetrail/devtrack/models"
	"github.com/codetrail/devtrack/types"
)

var updateFlags itemFlags

// updateCmd represents the update command
var updateCmd = &cobra.Command{
	Use:   "update <feature|bug|task> <id>",
	Short: "Update fields of an existing item",
	Long: `Update an existing item. Only the flags you pass are changed;
everything else keeps its current value. The item's id, type and
creation time can never be changed.

Examples:
  devtrack update task 1755900000000000000-1a2b3c4d --status blocked
  devtrack update bug 1755900000000000000-9f8e7d6c --status resolved --resolution "fixed in 1.4.2"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := models.ParseKind(args[0])
		if err != nil {
			return err
		}
		id := args[1]

		updates := updateFlags.collect(cmd)
		if len(updates) == 0 {
			return fmt.Errorf("nothing to update: pass at least one field flag")
		}

		s, err := requireStore()
		if err != nil {
			return err
		}
		defer func() { _ = s.Close() }()

		item, err := s.UpdateItem(kind, id, updates)
		if err != nil {
			if errors.Is(err, types.ErrNotFound) {
				fmt.Printf("No %s with ID %s.\n", kind, id)
				return nil
			}
			HandleError(fmt.Sprintf("Could not update %s %s.", kind, id), err)
		}

		fmt.Printf("✓ Updated %s %q (ID: %s)\n", kind, item.ItemTitle(), item.ItemID())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(updateCmd)
	updateFlags.register(updateCmd)
}
