package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/jakoblorz/go-autoclaude/internal/config"
	"github.com/jakoblorz/go-autoclaude/internal/filesystem"
	"github.com/jakoblorz/go-autoclaude/internal/initializer"
	"github.com/jakoblorz/go-autoclaude/internal/tui"
	"github.com/spf13/cobra"
)

// InitCommand handles the init command
type InitCommand struct {
	fs     filesystem.FileSystem
	cfg    *config.Config
	logger *slog.Logger
}

// NewInitCommand creates a new init command
func NewInitCommand(fs filesystem.FileSystem, cfg *config.Config, logger *slog.Logger) *cobra.Command {
	cmd := &InitCommand{fs: fs, cfg: cfg, logger: logger}

	cobraCmd := &cobra.Command{
		Use:   "init [project]",
		Short: "Create the .auto-claude data directory in a project",
		Long: `Creates .auto-claude/ with specs/, ideation/, insights/ and roadmap/ and
records the source version and fingerprint in .auto-claude/.version.json.

Fails if .auto-claude/ already exists.`,
		Args: cobra.MaximumNArgs(1),
		RunE: cmd.Run,
	}

	cobraCmd.Flags().StringP(sourceFlag, "s", "", "Path to the auto-claude source tree")

	return cobraCmd
}

// Run executes the init command
func (c *InitCommand) Run(cmd *cobra.Command, args []string) error {
	resolved, err := resolveProject(c.fs, c.cfg, c.logger, cmd, args, true)
	if err != nil {
		return err
	}
	ws := resolved.Workspace
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, tui.TitleStyle.Render(fmt.Sprintf("🚀 Initializing %s", ws.ProjectPath)))
	fmt.Fprintf(out, "   from %s\n\n", ws.SourcePath)

	res := resolved.Installer.InitializeProject(ws.ProjectPath, ws.SourcePath)
	if !res.Success {
		fmt.Fprintln(out, tui.ErrorStyle.Render("✗ Initialization failed"))
		return errors.New(res.Error)
	}

	for _, dir := range initializer.DataDirs {
		fmt.Fprintf(out, "  ✓ %s/%s/\n", initializer.DataDirName, dir)
	}
	fmt.Fprintf(out, "\n%s\n", tui.SuccessStyle.Render(fmt.Sprintf("🎉 Initialized at version %s", res.Version)))
	return nil
}
