package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/jakoblorz/go-autoclaude/internal/config"
	"github.com/jakoblorz/go-autoclaude/internal/filesystem"
	"github.com/jakoblorz/go-autoclaude/internal/initializer"
	"github.com/jakoblorz/go-autoclaude/internal/workspace"
	"github.com/spf13/cobra"
)

const sourceFlag = "source"

type resolvedProject struct {
	Installer *initializer.Initializer
	Workspace *workspace.Workspace
}

// resolveProject finds the project (first positional argument, else the
// working directory) and the source (--source, else config, else the
// project's own checkout). When requireSource is false a missing source is
// tolerated and SourcePath stays empty.
func resolveProject(fs filesystem.FileSystem, cfg *config.Config, logger *slog.Logger, cmd *cobra.Command, args []string, requireSource bool) (*resolvedProject, error) {
	var opts []workspace.Option
	if len(args) > 0 {
		opts = append(opts, workspace.WithProject(args[0]))
	}

	source := sourceFromCmd(cmd)
	if source == "" && cfg != nil {
		source = cfg.SourcePath
	}
	if source != "" {
		opts = append(opts, workspace.WithSource(source))
	}

	installer := initializer.New(fs, initializer.WithLogger(logger))
	ws := workspace.New(fs, installer, opts...)

	if err := ws.Detect(); err != nil {
		if requireSource || !errors.Is(err, workspace.ErrNoSource) {
			return nil, fmt.Errorf("failed to detect workspace: %w", err)
		}
	}

	return &resolvedProject{Installer: installer, Workspace: ws}, nil
}

func sourceFromCmd(cmd *cobra.Command) string {
	if cmd == nil {
		return ""
	}

	flag := cmd.Flag(sourceFlag)
	if flag == nil {
		return ""
	}

	return flag.Value.String()
}
