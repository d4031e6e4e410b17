package registry

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/jakoblorz/go-autoclaude/internal/models"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	idAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
	idLength   = 10
)

// ErrDuplicatePath is returned by Add when the path is already registered.
var ErrDuplicatePath = errors.New("project path already registered")

// ProjectRepository handles project database operations
type ProjectRepository struct {
	db  *DB
	now func() time.Time
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *DB) *ProjectRepository {
	return &ProjectRepository{db: db, now: time.Now}
}

// WithClock overrides the time source for CreatedAt.
func (r *ProjectRepository) WithClock(now func() time.Time) *ProjectRepository {
	r.now = now
	return r
}

// Add registers the project at path. An empty name defaults to the
// directory's base name.
func (r *ProjectRepository) Add(ctx context.Context, name, path string) (*models.Project, error) {
	path = filepath.Clean(path)
	if name == "" {
		name = filepath.Base(path)
	}

	existing, err := r.GetByPath(ctx, path)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: %s (%s)", ErrDuplicatePath, path, existing.ID)
	}

	id, err := gonanoid.Generate(idAlphabet, idLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate project id: %w", err)
	}

	project := models.NewProject(id, name, path, r.now().UTC())

	query := `INSERT INTO projects (id, name, path, created_at) VALUES (:id, :name, :path, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, project); err != nil {
		return nil, fmt.Errorf("failed to add project: %w", err)
	}

	return project, nil
}

// Get retrieves a project by ID. A missing project is (nil, nil).
func (r *ProjectRepository) Get(ctx context.Context, id string) (*models.Project, error) {
	var project models.Project
	err := r.db.GetContext(ctx, &project, `SELECT id, name, path, created_at FROM projects WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// GetByPath retrieves a project by its root path. A missing project is (nil, nil).
func (r *ProjectRepository) GetByPath(ctx context.Context, path string) (*models.Project, error) {
	var project models.Project
	err := r.db.GetContext(ctx, &project, `SELECT id, name, path, created_at FROM projects WHERE path = ?`, filepath.Clean(path))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// List returns every project, oldest first.
func (r *ProjectRepository) List(ctx context.Context) ([]*models.Project, error) {
	var projects []*models.Project
	query := `SELECT id, name, path, created_at FROM projects ORDER BY created_at ASC, rowid ASC`
	if err := r.db.SelectContext(ctx, &projects, query); err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// Remove deletes a project. It reports whether a row was removed.
func (r *ProjectRepository) Remove(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to remove project: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
