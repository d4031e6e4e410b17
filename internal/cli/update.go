package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/jakoblorz/go-autoclaude/internal/config"
	"github.com/jakoblorz/go-autoclaude/internal/filesystem"
	"github.com/jakoblorz/go-autoclaude/internal/tui"
	"github.com/spf13/cobra"
)

// UpdateCommand handles the update command
type UpdateCommand struct {
	fs     filesystem.FileSystem
	cfg    *config.Config
	logger *slog.Logger
}

// NewUpdateCommand creates a new update command
func NewUpdateCommand(fs filesystem.FileSystem, cfg *config.Config, logger *slog.Logger) *cobra.Command {
	cmd := &UpdateCommand{fs: fs, cfg: cfg, logger: logger}

	cobraCmd := &cobra.Command{
		Use:   "update [project]",
		Short: "Refresh the version record of an initialized project",
		Long: `Re-creates any missing data directories and rewrites .version.json from
the current source. Existing project data is left untouched and the
original initialization time is kept.`,
		Args: cobra.MaximumNArgs(1),
		RunE: cmd.Run,
	}

	cobraCmd.Flags().StringP(sourceFlag, "s", "", "Path to the auto-claude source tree")

	return cobraCmd
}

// Run executes the update command
func (c *UpdateCommand) Run(cmd *cobra.Command, args []string) error {
	resolved, err := resolveProject(c.fs, c.cfg, c.logger, cmd, args, true)
	if err != nil {
		return err
	}
	ws := resolved.Workspace
	out := cmd.OutOrStdout()

	// Inspect is read-only; the previous version is informational.
	inspection, err := resolved.Installer.Inspect(ws.ProjectPath, ws.SourcePath)
	if err != nil {
		return fmt.Errorf("failed to inspect project: %w", err)
	}
	previous := inspection.Result.CurrentVersion

	fmt.Fprintf(out, "%s\n\n", tui.TitleStyle.Render(fmt.Sprintf("🔄 Updating %s", ws.ProjectPath)))

	res := resolved.Installer.UpdateProject(ws.ProjectPath, ws.SourcePath)
	if !res.Success {
		fmt.Fprintln(out, tui.ErrorStyle.Render("✗ Update failed"))
		return errors.New(res.Error)
	}

	if previous != "" && previous != res.Version {
		fmt.Fprintf(out, "Version: %s → %s\n", previous, res.Version)
	} else {
		fmt.Fprintf(out, "Version: %s\n", res.Version)
	}
	fmt.Fprintf(out, "\n%s\n", tui.SuccessStyle.Render("✓ Updated .auto-claude/.version.json"))
	return nil
}
