// Package selection holds the project list shown by the app and which
// project is selected, mirroring the selected id into durable storage so it
// survives restarts.
package selection

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jakoblorz/go-autoclaude/internal/models"
)

// LastSelectedProjectKey is the durable key holding the selected project id.
const LastSelectedProjectKey = "lastSelectedProjectId"

// KV is the durable slot storage.
type KV interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}

// ProjectLoader supplies the project list.
type ProjectLoader interface {
	List(ctx context.Context) ([]*models.Project, error)
}

// ProjectRemover deletes a project from wherever the list is loaded from.
type ProjectRemover interface {
	Remove(ctx context.Context, id string) (bool, error)
}

// Store is the in-memory project list plus the current selection. It is not
// safe for concurrent use.
type Store struct {
	kv       KV
	loader   ProjectLoader
	logger   *slog.Logger
	projects []*models.Project
	selected string
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for debug traces.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a Store with nothing loaded and nothing selected.
func New(kv KV, loader ProjectLoader, options ...Option) *Store {
	s := &Store{
		kv:     kv,
		loader: loader,
		logger: slog.New(slog.DiscardHandler),
	}

	for _, option := range options {
		option(s)
	}

	return s
}

// SelectProject makes id the current selection and persists it. An empty id
// clears both the selection and the durable key.
func (s *Store) SelectProject(id string) error {
	if id == "" {
		if err := s.kv.Delete(LastSelectedProjectKey); err != nil {
			return fmt.Errorf("failed to clear selected project: %w", err)
		}
		s.selected = ""
		s.logger.Debug("selection: cleared")
		return nil
	}

	if err := s.kv.Set(LastSelectedProjectKey, id); err != nil {
		return fmt.Errorf("failed to persist selected project: %w", err)
	}
	s.selected = id
	s.logger.Debug("selection: selected", "id", id)
	return nil
}

// LoadProjects replaces the project list from the loader. When nothing is
// selected and the list is non-empty, the stored id is restored if it is in
// the list, otherwise the first project is selected.
func (s *Store) LoadProjects(ctx context.Context) error {
	projects, err := s.loader.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to load projects: %w", err)
	}
	s.projects = projects

	if s.selected != "" || len(projects) == 0 {
		return nil
	}

	stored, ok, err := s.kv.Get(LastSelectedProjectKey)
	if err != nil {
		return fmt.Errorf("failed to read selected project: %w", err)
	}

	if ok && models.FindProject(projects, stored) != nil {
		s.logger.Debug("selection: restored", "id", stored)
		return s.SelectProject(stored)
	}

	s.logger.Debug("selection: stored id not in list, selecting first", "stored", stored, "first", projects[0].ID)
	return s.SelectProject(projects[0].ID)
}

// RemoveProject deletes a project through remover and drops it from the
// list. Removing the selected project clears the selection and the durable
// key.
func (s *Store) RemoveProject(ctx context.Context, remover ProjectRemover, id string) error {
	if _, err := remover.Remove(ctx, id); err != nil {
		return err
	}

	kept := make([]*models.Project, 0, len(s.projects))
	for _, p := range s.projects {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	s.projects = kept

	if s.selected == id {
		return s.SelectProject("")
	}
	return nil
}

// Projects returns the loaded project list.
func (s *Store) Projects() []*models.Project {
	return s.projects
}

// SelectedID returns the selected project id, or "".
func (s *Store) SelectedID() string {
	return s.selected
}

// SelectedProject returns the selected project if it is in the loaded list.
func (s *Store) SelectedProject() *models.Project {
	if s.selected == "" {
		return nil
	}
	return models.FindProject(s.projects, s.selected)
}
