package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/codetrail/devtrack/models"
)

var addFlags itemFlags

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add <feature|bug|task>",
	Short: "Add a new item to the project",
	Long: `Add a feature, bug or task to the project dataset.

The new item is validated against its kind's schema before anything is
written; a validation failure leaves the dataset untouched.

Examples:
  devtrack add feature --title "User login" --epic auth --story-points 5
  devtrack add bug --title "Login fails" --severity high --environment "Chrome 120" --steps "open app,click login"
  devtrack add task --title "Write docs" --due 2026-09-15 --estimated-hours 4`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := models.ParseKind(args[0])
		if err != nil {
			return err
		}

		s, err := requireStore()
		if err != nil {
			return err
		}
		defer func() { _ = s.Close() }()

		fields := addFlags.collect(cmd)
		applyCreateDefaults(kind, fields)

		item, err := s.CreateItem(kind, fields)
		if err != nil {
			HandleError(fmt.Sprintf("Could not add %s.", kind), err)
		}

		fmt.Printf("✓ Added %s %q (ID: %s)\n", kind, item.ItemTitle(), item.ItemID())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
	addFlags.register(addCmd)
}
