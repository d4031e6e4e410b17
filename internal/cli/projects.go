package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/jakoblorz/go-autoclaude/internal/config"
	"github.com/jakoblorz/go-autoclaude/internal/filesystem"
	"github.com/jakoblorz/go-autoclaude/internal/initializer"
	"github.com/jakoblorz/go-autoclaude/internal/kvstore"
	"github.com/jakoblorz/go-autoclaude/internal/models"
	"github.com/jakoblorz/go-autoclaude/internal/registry"
	"github.com/jakoblorz/go-autoclaude/internal/selection"
	"github.com/jakoblorz/go-autoclaude/internal/tui"
	"github.com/jakoblorz/go-autoclaude/internal/tui/picker"
	"github.com/spf13/cobra"
)

// projectsBackend is the registry plus the selection store on top of it.
type projectsBackend struct {
	repo  *registry.ProjectRepository
	store *selection.Store
	close func() error
}

// backendOpener opens the project registry and preferences store.
type backendOpener func() (*projectsBackend, error)

func openProjectsBackend(cfg *config.Config, logger *slog.Logger) backendOpener {
	return func() (*projectsBackend, error) {
		db, err := registry.Open(cfg.RegistryPath)
		if err != nil {
			return nil, err
		}

		kvCfg := kvstore.DefaultConfig(cfg.PreferencesPath)
		kvCfg.Logger = logger
		kv, err := kvstore.Open(kvCfg)
		if err != nil {
			db.Close()
			return nil, err
		}

		repo := registry.NewProjectRepository(db)
		return &projectsBackend{
			repo:  repo,
			store: selection.New(kv, repo, selection.WithLogger(logger)),
			close: func() error {
				return errors.Join(kv.Close(), db.Close())
			},
		}, nil
	}
}

// ProjectsCommand handles the projects command group
type ProjectsCommand struct {
	fs     filesystem.FileSystem
	logger *slog.Logger
	open   backendOpener
}

// NewProjectsCommand creates the projects command and its subcommands. A nil
// opener opens the registry and preferences configured in cfg.
func NewProjectsCommand(fs filesystem.FileSystem, cfg *config.Config, logger *slog.Logger, open backendOpener) *cobra.Command {
	if open == nil {
		open = openProjectsBackend(cfg, logger)
	}
	cmd := &ProjectsCommand{fs: fs, logger: logger, open: open}

	cobraCmd := &cobra.Command{
		Use:   "projects",
		Short: "Manage the list of known projects and the selected one",
		Long: `Keeps a registry of projects and remembers which one was selected last.

The selection survives restarts. If the remembered project is no longer
registered, the first project in the list is selected instead.`,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List registered projects",
		Args:  cobra.NoArgs,
		RunE:  cmd.runList,
	}
	listCmd.Flags().Bool("json", false, "Output JSON")

	addCmd := &cobra.Command{
		Use:   "add <path>",
		Short: "Register a project directory",
		Args:  cobra.ExactArgs(1),
		RunE:  cmd.runAdd,
	}
	addCmd.Flags().String("name", "", "Display name (defaults to the directory name)")

	selectCmd := &cobra.Command{
		Use:   "select [id]",
		Short: "Select a project, interactively when no id is given",
		Args:  cobra.MaximumNArgs(1),
		RunE:  cmd.runSelect,
	}
	selectCmd.Flags().Bool("clear", false, "Clear the selection")

	removeCmd := &cobra.Command{
		Use:   "remove <id>",
		Short: "Unregister a project",
		Args:  cobra.ExactArgs(1),
		RunE:  cmd.runRemove,
	}

	cobraCmd.AddCommand(listCmd, addCmd, selectCmd, removeCmd)
	return cobraCmd
}

// withBackend opens the backend, loads the project list into the store and
// runs fn. The backend is closed afterwards.
func (c *ProjectsCommand) withBackend(cmd *cobra.Command, fn func(b *projectsBackend) error) (err error) {
	b, err := c.open()
	if err != nil {
		return fmt.Errorf("failed to open project registry: %w", err)
	}
	defer func() {
		if closeErr := b.close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close project registry: %w", closeErr)
		}
	}()

	if err := b.store.LoadProjects(cmd.Context()); err != nil {
		return err
	}

	return fn(b)
}

func (c *ProjectsCommand) runList(cmd *cobra.Command, args []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")

	return c.withBackend(cmd, func(b *projectsBackend) error {
		out := cmd.OutOrStdout()
		projects := b.store.Projects()

		if asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(struct {
				Selected string            `json:"selected,omitempty"`
				Projects []*models.Project `json:"projects"`
			}{b.store.SelectedID(), nonNil(projects)})
		}

		if len(projects) == 0 {
			fmt.Fprintln(out, "No projects registered. Add one with 'autoclaude projects add <path>'")
			return nil
		}

		for _, p := range projects {
			marker, name := " ", p.Name
			if p.ID == b.store.SelectedID() {
				marker, name = "*", tui.SelectedStyle.Render(p.Name)
			}
			fmt.Fprintf(out, "%s %s  %s  %s\n", marker, name, p.Path, tui.SubtleStyle.Render(p.ID))
		}
		return nil
	})
}

func (c *ProjectsCommand) runAdd(cmd *cobra.Command, args []string) error {
	name, _ := cmd.Flags().GetString("name")

	path, err := c.fs.Abs(args[0])
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", args[0], err)
	}
	if !c.fs.IsDir(path) {
		return fmt.Errorf("%w: %s", initializer.ErrProjectNotFound, path)
	}

	return c.withBackend(cmd, func(b *projectsBackend) error {
		project, err := b.repo.Add(cmd.Context(), name, path)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, tui.SuccessStyle.Render(fmt.Sprintf("✓ Added %s (%s)", project.Name, project.ID)))

		if !initializer.New(c.fs, initializer.WithLogger(c.logger)).IsInitialized(path) {
			fmt.Fprintf(out, "  %s/ not found, run 'autoclaude init %s'\n", initializer.DataDirName, path)
		}
		return nil
	})
}

func (c *ProjectsCommand) runSelect(cmd *cobra.Command, args []string) error {
	clearSelection, _ := cmd.Flags().GetBool("clear")

	return c.withBackend(cmd, func(b *projectsBackend) error {
		out := cmd.OutOrStdout()

		if clearSelection {
			if err := b.store.SelectProject(""); err != nil {
				return err
			}
			fmt.Fprintln(out, "✓ Selection cleared")
			return nil
		}

		var id string
		if len(args) > 0 {
			id = args[0]
		} else {
			var opts []picker.Option
			opts = append(opts, picker.WithCurrent(b.store.SelectedID()))
			if in := cmd.InOrStdin(); !isTerminal(in) {
				opts = append(opts, picker.WithAccessible(in, out))
			}

			picked, err := picker.NewFlow(b.store.Projects(), opts...).Run()
			if err != nil {
				return err
			}
			if picked == "" {
				return nil
			}
			id = picked
		}

		project := models.FindProject(b.store.Projects(), id)
		if project == nil {
			return fmt.Errorf("project %s not found", id)
		}

		if err := b.store.SelectProject(project.ID); err != nil {
			return err
		}
		fmt.Fprintln(out, tui.SuccessStyle.Render(fmt.Sprintf("✓ Selected %s", project.Name)))
		return nil
	})
}

func (c *ProjectsCommand) runRemove(cmd *cobra.Command, args []string) error {
	id := args[0]

	return c.withBackend(cmd, func(b *projectsBackend) error {
		project := models.FindProject(b.store.Projects(), id)
		if project == nil {
			return fmt.Errorf("project %s not found", id)
		}

		wasSelected := b.store.SelectedID() == id
		if err := b.store.RemoveProject(cmd.Context(), b.repo, id); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "✓ Removed %s (%s)\n", project.Name, project.ID)
		if wasSelected {
			fmt.Fprintln(out, "  Selection cleared")
		}
		return nil
	})
}

func nonNil(projects []*models.Project) []*models.Project {
	if projects == nil {
		return []*models.Project{}
	}
	return projects
}

// isTerminal reports whether r is an interactive terminal.
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}

	stat, err := f.Stat()
	if err != nil {
		return false
	}

	return (stat.Mode() & os.ModeCharDevice) != 0
}
