package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/codetrail/devtrack/models"
	"github.com/codetrail/devtrack/types"
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show <feature|bug|task> <id>",
	Short: "Show one item as JSON",
	Args:  cobra.ExactArgs(2),
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

		item, err := s.GetItem(kind, args[1])
		if err != nil {
			if errors.Is(err, types.ErrNotFound) {
				fmt.Printf("No %s with ID %s.\n", kind, args[1])
				return nil
			}
			HandleError(fmt.Sprintf("Could not load %s %s.", kind, args[1]), err)
		}

		out, err := json.MarshalIndent(item, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
