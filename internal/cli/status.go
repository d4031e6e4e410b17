package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/jakoblorz/go-autoclaude/internal/config"
	"github.com/jakoblorz/go-autoclaude/internal/filesystem"
	"github.com/jakoblorz/go-autoclaude/internal/initializer"
	"github.com/jakoblorz/go-autoclaude/internal/models"
	"github.com/jakoblorz/go-autoclaude/internal/tui"
	"github.com/spf13/cobra"
)

// StatusCommand handles the status command
type StatusCommand struct {
	fs     filesystem.FileSystem
	cfg    *config.Config
	logger *slog.Logger
}

// StatusView is what status prints, and the data --format templates see.
type StatusView struct {
	Project   string                    `json:"project"`
	Source    string                    `json:"source,omitempty"`
	CustomEnv bool                      `json:"customEnv"`
	Direction models.VersionDirection   `json:"direction,omitempty"`
	Result    models.VersionCheckResult `json:"result"`
}

// NewStatusCommand creates a new status command
func NewStatusCommand(fs filesystem.FileSystem, cfg *config.Config, logger *slog.Logger) *cobra.Command {
	cmd := &StatusCommand{fs: fs, cfg: cfg, logger: logger}

	cobraCmd := &cobra.Command{
		Use:   "status [project]",
		Short: "Show whether a project is initialized and up to date",
		Long: `Compares the project's .auto-claude/.version.json with the source tree.

An update is reported only when both the source fingerprint and the source
VERSION changed since the last init or update. Installs made before version
tracking get their metadata recorded on the first status run.`,
		Example: `  # Status of the project containing the working directory
  autoclaude status

  # Explicit project and source
  autoclaude status ~/code/app --source ~/code/auto-claude

  # Script-friendly output
  autoclaude status --json
  autoclaude status --format '{{.Result.Status}} {{.Result.CurrentVersion | default "-"}}'`,
		Args: cobra.MaximumNArgs(1),
		RunE: cmd.Run,
	}

	addStatusFlags(cobraCmd)

	return cobraCmd
}

// addStatusFlags registers the flags StatusCommand.Run reads. The root
// command shares them because it runs status by default.
func addStatusFlags(cmd *cobra.Command) {
	cmd.Flags().StringP(sourceFlag, "s", "", "Path to the auto-claude source tree")
	cmd.Flags().Bool("json", false, "Output JSON")
	cmd.Flags().String("format", "", "Go template (with sprig functions) applied to the status")
}

// Run executes the status command
func (c *StatusCommand) Run(cmd *cobra.Command, args []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")
	format, _ := cmd.Flags().GetString("format")

	resolved, err := resolveProject(c.fs, c.cfg, c.logger, cmd, args, false)
	if err != nil {
		return err
	}
	ws := resolved.Workspace

	result, err := resolved.Installer.CheckVersion(ws.ProjectPath, ws.SourcePath)
	if err != nil {
		return fmt.Errorf("failed to check version: %w", err)
	}

	view := StatusView{
		Project: ws.ProjectPath,
		Source:  ws.SourcePath,
		Result:  *result,
	}
	if result.SourceVersion != "" && result.CurrentVersion != "" {
		view.Direction = models.CompareVersions(result.CurrentVersion, result.SourceVersion)
	}
	view.CustomEnv = resolved.Installer.HasCustomEnv(initializer.InstalledPath(ws.ProjectPath))

	out := cmd.OutOrStdout()
	switch {
	case asJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(view)
	case format != "":
		return renderTemplate(out, format, view)
	default:
		renderStatus(out, view)
		return nil
	}
}

func renderTemplate(w io.Writer, format string, view StatusView) error {
	tmpl, err := template.New("status").Funcs(sprig.TxtFuncMap()).Parse(format)
	if err != nil {
		return fmt.Errorf("invalid --format template: %w", err)
	}

	var b strings.Builder
	if err := tmpl.Execute(&b, view); err != nil {
		return fmt.Errorf("failed to render --format template: %w", err)
	}

	_, err = fmt.Fprintln(w, strings.TrimRight(b.String(), "\n"))
	return err
}

func renderStatus(w io.Writer, view StatusView) {
	res := view.Result

	fmt.Fprintf(w, "📁 Project: %s\n", view.Project)
	if view.Source != "" {
		fmt.Fprintf(w, "📦 Source:  %s\n", view.Source)
	} else {
		fmt.Fprintf(w, "📦 Source:  %s\n", tui.SubtleStyle.Render("(not configured)"))
	}
	fmt.Fprintln(w)

	switch res.Status {
	case initializer.StatusNotInitialized:
		fmt.Fprintln(w, tui.SubtleStyle.Render("○ Not initialized"))
		fmt.Fprintln(w, "  Run 'autoclaude init' to create .auto-claude/")
	case initializer.StatusUnknown:
		fmt.Fprintln(w, tui.WarningStyle.Render("? Installed, version unknown"))
		fmt.Fprintln(w, "  No version metadata and the source is not reachable")
	case initializer.StatusSourceUnreachable:
		fmt.Fprintln(w, tui.WarningStyle.Render(fmt.Sprintf("⚠️  Installed version %s", res.CurrentVersion)))
		fmt.Fprintln(w, "  Source not reachable, cannot check for updates")
	case initializer.StatusMigrated:
		fmt.Fprintln(w, tui.SuccessStyle.Render(fmt.Sprintf("✓ Recorded version metadata for existing install (%s)", res.CurrentVersion)))
	case initializer.StatusUpdateAvailable:
		fmt.Fprintln(w, tui.WarningStyle.Render(fmt.Sprintf("⬆ Update available: %s → %s (%s)", res.CurrentVersion, res.SourceVersion, view.Direction)))
		fmt.Fprintln(w, "  Run 'autoclaude update' to refresh")
	default:
		fmt.Fprintln(w, tui.SuccessStyle.Render(fmt.Sprintf("✓ Up to date (%s)", res.CurrentVersion)))
	}

	if res.InstalledHash != "" || res.SourceHash != "" {
		fmt.Fprintln(w, tui.SubtleStyle.Render(fmt.Sprintf("  installed %s  source %s", orDash(res.InstalledHash), orDash(res.SourceHash))))
	}

	if view.CustomEnv {
		fmt.Fprintln(w, "🔑 .auto-claude/.env differs from .env.example")
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
