package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/jakoblorz/go-autoclaude/internal/config"
	"github.com/jakoblorz/go-autoclaude/internal/filesystem"
	"github.com/spf13/cobra"
)

// NewRootCommand creates the root command
func NewRootCommand(fs filesystem.FileSystem, cfg *config.Config, logger *slog.Logger) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "autoclaude",
		Short: "Install and update auto-claude data directories in projects",
		Long: `Sets up the .auto-claude/ data directory in a project and tracks which
version of the auto-claude source it was created from.

Run without a subcommand to show the status of the current project.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to `autoclaude status` when no subcommand is provided.
			return (&StatusCommand{fs: fs, cfg: cfg, logger: logger}).Run(cmd, args)
		},
	}

	addStatusFlags(rootCmd)

	rootCmd.AddCommand(NewStatusCommand(fs, cfg, logger))
	rootCmd.AddCommand(NewInitCommand(fs, cfg, logger))
	rootCmd.AddCommand(NewUpdateCommand(fs, cfg, logger))
	rootCmd.AddCommand(NewHashCommand(fs))
	rootCmd.AddCommand(NewProjectsCommand(fs, cfg, logger, nil))

	return rootCmd
}

// Execute runs the root command
func Execute() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := config.NewLogger(os.Stderr, cfg)
	fs := filesystem.NewOSFileSystem()

	rootCmd := NewRootCommand(fs, cfg, logger)

	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("command failed: %w", err)
	}

	return nil
}
