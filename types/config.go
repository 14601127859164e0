package types

// AppConfig is the unified application configuration, populated by viper
// from the config file, environment variables and flags.
type AppConfig struct {
	Verbose bool          `mapstructure:"verbose"`
	Config  string        `mapstructure:"config"`
	Project ProjectConfig `mapstructure:"project" validate:"required"`
	Data    DataConfig    `mapstructure:"data" validate:"required"`
	Backup  BackupConfig  `mapstructure:"backup" validate:"required"`
}

// ProjectConfig holds paths and identity of the tracked project.
type ProjectConfig struct {
	// RootDir is the project root; the hidden data directory lives under it.
	RootDir string `mapstructure:"rootDir" validate:"required"`
	// DataDir is the hidden directory name holding the dataset and backups.
	DataDir string `mapstructure:"dataDir" validate:"required"`
	// Name overrides the project name derived from the root folder.
	Name string `mapstructure:"name" validate:"omitempty,min=1"`
}

// DataConfig describes the canonical data file.
type DataConfig struct {
	File string `mapstructure:"file" validate:"required"`
}

// BackupConfig controls backup rotation.
type BackupConfig struct {
	// Retain is how many timestamped backups are kept after each save.
	Retain int `mapstructure:"retain" validate:"required,min=1,max=100"`
}
