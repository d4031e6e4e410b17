package models

import "time"

// Project is an entry in the project list shown by the app.
type Project struct {
	// ID is the stable identifier used for selection (nanoid)
	ID string `db:"id" json:"id"`

	// Name is the display name; defaults to the directory name
	Name string `db:"name" json:"name"`

	// Path is the absolute path to the project root
	Path string `db:"path" json:"path"`

	// CreatedAt is when the project was added to the list
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// NewProject creates a new Project instance
func NewProject(id, name, path string, createdAt time.Time) *Project {
	return &Project{
		ID:        id,
		Name:      name,
		Path:      path,
		CreatedAt: createdAt,
	}
}

// FindProject returns the project with the given id, or nil.
func FindProject(projects []*Project, id string) *Project {
	for _, p := range projects {
		if p.ID == id {
			return p
		}
	}
	return nil
}
