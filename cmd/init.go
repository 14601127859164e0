package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/codetrail/devtrack/internal/project"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize devtrack in the current project",
	Long: `Initialize the devtrack data directory in the current project.

This creates the hidden .devtrack directory with:
  • project-data.json - the validated dataset (features, bugs, tasks)
  • .gitignore        - keeps backups, exports and lock files out of git

Run this in your project root before using other devtrack commands.
Running it again on an initialized project is a no-op.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		config := GetConfig()
		loc := project.NewDefaultLocator()

		initialized, err := loc.IsInitialized(config.Project.RootDir, config.Project.DataDir)
		if err != nil {
			return err
		}
		if initialized {
			fmt.Println("✓ devtrack already initialized in this project")
			return nil
		}

		if err := loc.Scaffold(config.Project.RootDir, config.Project.DataDir); err != nil {
			return fmt.Errorf("scaffold data directory: %w", err)
		}

		s, err := GetStore()
		if err != nil {
			return err
		}
		defer func() { _ = s.Close() }()

		dataDir := GetDataDirPath()
		fmt.Println("✓ devtrack initialized")
		fmt.Println("")
		fmt.Println("Created:")
		fmt.Printf("  • %s\n", filepath.Join(dataDir, config.Data.File))
		fmt.Printf("  • %s\n", filepath.Join(dataDir, ".gitignore"))
		fmt.Println("")
		fmt.Println("Next steps:")
		fmt.Println("  devtrack add feature --title \"User login\"")
		fmt.Println("  devtrack add bug --title \"Login fails\" --severity high --environment \"Chrome 120\"")
		fmt.Println("  devtrack list")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
