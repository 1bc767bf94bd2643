// Package root contains the root command for the application
package root

import (
	"fmt"

	"fjacquet/grocelist/internal/config"
	"fjacquet/grocelist/internal/container"
	"fjacquet/grocelist/internal/logging"

	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to all commands
type CommonFlags struct {
	ConfigFile     string
	StorageBackend string
	StoragePath    string
	LogLevel       string
}

var (
	// Log is the shared logger instance for commands
	Log logging.Logger = logging.NewLogrusAdapter("info", "text")

	// AppContainer holds the dependencies of the running command. It is set
	// by PersistentPreRunE and closed by PersistentPostRun.
	AppContainer *container.Container

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "grocelist",
		Short: "A CLI tool to manage grocery categories and browse grocery items.",
		Long: `grocelist manages a persisted list of grocery categories and
browses a grocery item catalog filtered by category and by name.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to grocelist!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// a command that failed earlier in this process never reached PostRun
			Close()
			config.LoadEnv(Log)

			cfg, err := config.Load(SharedFlags.ConfigFile)
			if err != nil {
				return err
			}
			applyFlagOverrides(cmd, cfg)

			c, err := container.NewContainer(cfg)
			if err != nil {
				return fmt.Errorf("error initializing application: %w", err)
			}
			AppContainer = c
			Log = c.GetLogger()
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			Close()
		},
	}

	// SharedFlags holds the persistent flags of the root command
	SharedFlags = CommonFlags{}
)

// Init initializes the root command and all flags. Calling it again is a
// no-op.
func Init() {
	if Cmd.PersistentFlags().Lookup("config") != nil {
		return
	}
	Cmd.PersistentFlags().StringVarP(&SharedFlags.ConfigFile, "config", "c", "", "Config file (default: config.yaml in $HOME/.grocelist, .grocelist or .)")
	Cmd.PersistentFlags().StringVar(&SharedFlags.StorageBackend, "storage-backend", "", "Category storage backend: memory, file or sqlite")
	Cmd.PersistentFlags().StringVar(&SharedFlags.StoragePath, "storage-path", "", "Category storage file or database path")
	Cmd.PersistentFlags().StringVar(&SharedFlags.LogLevel, "log-level", "", "Log level: debug, info, warn or error")
}

// applyFlagOverrides lets explicitly set flags win over file and environment
// configuration.
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("storage-backend") {
		cfg.Storage.Backend = SharedFlags.StorageBackend
	}
	if flags.Changed("storage-path") {
		cfg.Storage.Path = SharedFlags.StoragePath
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = SharedFlags.LogLevel
	}
}

// Close releases the container of the last command, if any.
func Close() {
	if AppContainer == nil {
		return
	}
	if err := AppContainer.Close(); err != nil {
		Log.WithError(err).Warn("Failed to close storage")
	}
	AppContainer = nil
}

// GetContainer returns the container built for the running command.
func GetContainer() (*container.Container, error) {
	if AppContainer == nil {
		return nil, fmt.Errorf("application is not initialized")
	}
	return AppContainer, nil
}
