package cmd

import (
	"fmt"
	"os"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/codetrail/devtrack/models"
)

var (
	listStatus   string
	listPriority string
	listAssignee string
	listTag      string
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list [feature|bug|task]",
	Short: "List items, optionally filtered",
	Long: `List the project's items. With no argument all three kinds are
listed; filters narrow the output.

Examples:
  devtrack list
  devtrack list bug --status open --priority high
  devtrack list task --assignee ada --tag backend`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kinds := models.Kinds()
		if len(args) == 1 {
			kind, err := models.ParseKind(args[0])
			if err != nil {
				return err
			}
			kinds = []models.ItemKind{kind}
		}

		s, err := requireStore()
		if err != nil {
			return err
		}
		defer func() { _ = s.Close() }()

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "KIND\tID\tTITLE\tSTATUS\tPRIORITY\tASSIGNEE\tTAGS")
		shown := 0
		for _, kind := range kinds {
			items, err := s.GetItems(kind)
			if err != nil {
				HandleError(fmt.Sprintf("Could not list %ss.", kind), err)
			}
			for _, it := range items {
				if !matchesFilters(it) {
					continue
				}
				base := it.Base()
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
					it.Kind(), base.ID, base.Title, it.StatusString(),
					base.Priority, base.Assignee, strings.Join(base.Tags, ","))
				shown++
			}
		}
		if err := w.Flush(); err != nil {
			return err
		}
		if shown == 0 {
			fmt.Println("No items match.")
		}
		return nil
	},
}

// matchesFilters applies the list flags to an item.
func matchesFilters(it models.Item) bool {
	base := it.Base()
	if listStatus != "" && it.StatusString() != listStatus {
		return false
	}
	if listPriority != "" && string(base.Priority) != listPriority {
		return false
	}
	if listAssignee != "" && base.Assignee != listAssignee {
		return false
	}
	if listTag != "" && !slices.Contains(base.Tags, listTag) {
		return false
	}
	return true
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVar(&listStatus, "status", "", "filter by status")
	listCmd.Flags().StringVar(&listPriority, "priority", "", "filter by priority")
	listCmd.Flags().StringVar(&listAssignee, "assignee", "", "filter by assignee")
	listCmd.Flags().StringVar(&listTag, "tag", "", "filter by tag")
}
