package repository

import (
	"fmt"

	"github.com/taskflow/taskflow-api/internal/database"
	"github.com/taskflow/taskflow-api/internal/models"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// CreateAll creates multiple tasks in a single transaction
func (r *GormTaskRepository) CreateAll(tasks []*models.Task) error {
	if len(tasks) == 0 {
		return nil
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, task := range tasks {
			if err := tx.Create(task).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// FindByID finds a task by ID with optional preloading
func (r *GormTaskRepository) FindByID(id uint64, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&task, id).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// FindByIDs finds all tasks matching the given IDs
func (r *GormTaskRepository) FindByIDs(ids []uint64) ([]models.Task, error) {
	var tasks []models.Task
	if len(ids) == 0 {
		return tasks, nil
	}
	if err := r.db.Where("id IN ?", ids).Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListByOwner retrieves tasks owned by a user with filtering and pagination
func (r *GormTaskRepository) ListByOwner(filter TaskFilter) ([]models.Task, int64, error) {
	var tasks []models.Task

	query := r.db.Model(&models.Task{}).Where("tasks.user_id = ?", filter.OwnerID)

	if filter.Completed != nil {
		query = query.Where("tasks.completed = ?", *filter.Completed)
	}
	if filter.Status != nil {
		query = query.Where("tasks.status = ?", *filter.Status)
	}
	if filter.Priority != nil {
		query = query.Where("tasks.priority = ?", *filter.Priority)
	}
	if filter.CategoryID != nil {
		query = query.Where("tasks.category_id = ?", *filter.CategoryID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	column := filter.SortColumn
	if column == "" {
		column = "created_at"
	}
	direction := "ASC"
	if filter.SortDesc {
		direction = "DESC"
	}
	listQuery := query.
		Order(fmt.Sprintf("tasks.%s %s", column, direction)).
		Scopes(database.Paginate(filter.Page, filter.PageSize))

	if err := listQuery.Preload("Category").Preload("Assignee").Find(&tasks).Error; err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// Update updates a task
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

// UpdateAll updates multiple tasks in a single transaction
func (r *GormTaskRepository) UpdateAll(tasks []*models.Task) error {
	if len(tasks) == 0 {
		return nil
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, task := range tasks {
			if err := tx.Save(task).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete hard deletes a task
func (r *GormTaskRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Task{}, id).Error
}

// DeleteByIDs hard deletes all tasks matching the given IDs
func (r *GormTaskRepository) DeleteByIDs(ids []uint64) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.Where("id IN ?", ids).Delete(&models.Task{}).Error
}
