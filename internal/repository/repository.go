package repository

import (
	"github.com/taskflow/taskflow-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// Save inserts or updates a user
	Save(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by unique email
	FindByEmail(email string) (*models.User, error)

	// ExistsByEmail reports whether a user with the email exists
	ExistsByEmail(email string) (bool, error)

	// ListActive lists all active users
	ListActive() ([]models.User, error)
}

// TaskFilter holds filtering, sorting and pagination options for listing tasks
type TaskFilter struct {
	OwnerID    uint64
	Completed  *bool
	Status     *string
	Priority   *models.TaskPriority
	CategoryID *uint64

	// SortColumn must be validated against the service allow-list before it
	// reaches the repository.
	SortColumn string
	SortDesc   bool

	Page     int
	PageSize int
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// CreateAll creates multiple tasks in a single transaction
	CreateAll(tasks []*models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// FindByIDs finds all tasks matching the given IDs
	FindByIDs(ids []uint64) ([]models.Task, error)

	// ListByOwner retrieves tasks owned by a user with filtering and pagination
	ListByOwner(filter TaskFilter) ([]models.Task, int64, error)

	// Update updates a task
	Update(task *models.Task) error

	// UpdateAll updates multiple tasks in a single transaction
	UpdateAll(tasks []*models.Task) error

	// Delete hard deletes a task
	Delete(id uint64) error

	// DeleteByIDs hard deletes all tasks matching the given IDs
	DeleteByIDs(ids []uint64) error
}

// CategoryRepository defines the interface for category data access
type CategoryRepository interface {
	// Create creates a new category
	Create(category *models.Category) error

	// FindByID finds a category by ID
	FindByID(id uint64) (*models.Category, error)

	// FindAll lists all categories
	FindAll() ([]models.Category, error)
}
