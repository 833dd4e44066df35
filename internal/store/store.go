// Package store provides data persistence for users, projects and saved
// designs.
package store

import (
	"context"
	"errors"

	"github.com/threewin/bmc-mentor/backend/internal/model/project"
	"github.com/threewin/bmc-mentor/backend/internal/model/user"
)

// ErrDuplicateEmail is returned when a registration hits the unique email
// constraint.
var ErrDuplicateEmail = errors.New("store: duplicate email")

// Repository defines the persistence operations the services depend on.
type Repository interface {
	// CreateUser inserts a new account and returns its id.
	CreateUser(ctx context.Context, name, email, passwordHash string) (int64, error)

	// GetUserByEmail returns the user or nil when absent.
	GetUserByEmail(ctx context.Context, email string) (*user.User, error)

	// InsertProject stores a submission and returns its id.
	InsertProject(ctx context.Context, p *project.Project) (int64, error)

	// ListProjects returns all submissions, newest first.
	ListProjects(ctx context.Context) ([]project.Project, error)

	// InsertDesign stores a saved design artifact.
	InsertDesign(ctx context.Context, d *project.Design) (int64, error)

	// ListDesignsByStudent returns a student's designs, newest first.
	ListDesignsByStudent(ctx context.Context, studentID string) ([]project.Design, error)

	// Ping verifies database connectivity.
	Ping(ctx context.Context) error

	// Close closes the database connection.
	Close() error
}
