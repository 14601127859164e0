package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/codetrail/devtrack/internal/project"
	"github.com/codetrail/devtrack/store"
)

var (
	// cfgFile is the path to the configuration file.
	cfgFile string
	// verbose enables verbose output.
	verbose bool
	// version is the application version.
	version = "0.1.0"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "devtrack",
	Short: "devtrack tracks features, bugs and tasks in a local project file.",
	Long: `devtrack is a local, file-backed project tracker.

It stores features, bugs and tasks as validated JSON records under a
hidden .devtrack directory in your project, keeps rolling backups of
every save, and supports export and import of the full dataset.`,
	Version: version,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			_ = cmd.Help()
			os.Exit(0)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(InitConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./.devtrack.yaml or $HOME/.devtrack.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// GetDataDirPath returns the full path of the hidden data directory.
func GetDataDirPath() string {
	config := GetConfig()
	return filepath.Join(config.Project.RootDir, config.Project.DataDir)
}

// GetStore initializes and returns the project store. Initialize is
// idempotent, so calling this on an already-initialized project only
// opens the existing dataset.
func GetStore() (store.ProjectStore, error) {
	config := GetConfig()

	projectName := config.Project.Name
	if projectName == "" {
		projectName = project.NewDefaultLocator().Name(config.Project.RootDir)
	}

	s := store.NewFileProjectStore()
	err := s.Initialize(map[string]string{
		"dataDir":      GetDataDirPath(),
		"dataFile":     config.Data.File,
		"projectName":  projectName,
		"backupRetain": strconv.Itoa(config.Backup.Retain),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize store in %s: %w", GetDataDirPath(), err)
	}
	return s, nil
}

// requireStore returns the store but insists that the project has been
// initialized already; commands other than init use it so that a typo'd
// working directory doesn't silently spawn a fresh dataset.
func requireStore() (store.ProjectStore, error) {
	config := GetConfig()
	loc := project.NewDefaultLocator()
	initialized, err := loc.IsInitialized(config.Project.RootDir, config.Project.DataDir)
	if err != nil {
		return nil, err
	}
	if !initialized {
		return nil, fmt.Errorf("no devtrack data found in %s; run 'devtrack init' first", GetDataDirPath())
	}
	return GetStore()
}
