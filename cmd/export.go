package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the full dataset to a timestamped JSON file",
	Long: `Write the current dataset as pretty-printed JSON to a timestamped
export file inside the data directory. Exports are never pruned and the
canonical dataset is not touched.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := requireStore()
		if err != nil {
			return err
		}
		defer func() { _ = s.Close() }()

		path, err := s.ExportData()
		if err != nil {
			HandleError("Could not export project data.", err)
		}
		fmt.Printf("✓ Exported project data to %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
}
