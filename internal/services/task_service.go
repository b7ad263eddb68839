package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/taskflow/taskflow-api/internal/models"
	"github.com/taskflow/taskflow-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound     = errors.New("task not found")
	ErrNotTaskOwner     = errors.New("user does not own this task")
	ErrCategoryNotFound = errors.New("category not found")
	ErrAssigneeNotFound = errors.New("assignee not found")
	ErrTitleRequired    = errors.New("title is required")
	ErrTitleEmpty       = errors.New("title cannot be empty")
	ErrInvalidSortField = errors.New("invalid sort field")
	ErrNoTasksProvided  = errors.New("at least one task is required")
)

// allowedSortColumns maps accepted sort keys to their column names.
var allowedSortColumns = map[string]string{
	"created_at": "created_at",
	"updated_at": "updated_at",
	"due_date":   "due_date",
	"priority":   "priority",
	"title":      "title",
	"status":     "status",
}

// TaskService handles ownership-scoped task business logic. Every operation
// takes the acting user's id explicitly; there is no ambient identity lookup.
type TaskService struct {
	taskRepo     repository.TaskRepository
	userRepo     repository.UserRepository
	categoryRepo repository.CategoryRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, userRepo repository.UserRepository, categoryRepo repository.CategoryRepository) *TaskService {
	return &TaskService{
		taskRepo:     taskRepo,
		userRepo:     userRepo,
		categoryRepo: categoryRepo,
	}
}

// ListTasksInput represents filters for listing tasks
type ListTasksInput struct {
	Completed  *bool
	Status     *string
	Priority   *models.TaskPriority
	CategoryID *uint64
	Sort       string
	Direction  string
	Page       int
	PageSize   int
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title        string
	Description  string
	Status       string
	Priority     models.TaskPriority
	Type         string
	StoryPoints  *int
	Labels       []string
	Dependencies []uint64
	DueDate      *time.Time
	Completed    bool
	CategoryID   *uint64
	AssigneeID   *uint64
}

// UpdateTaskInput represents input for updating a task. Nil fields are left
// untouched; CategoryID and AssigneeID are re-resolved on every update, and
// leaving them nil clears the association.
type UpdateTaskInput struct {
	Title        *string
	Description  *string
	Status       *string
	Priority     *models.TaskPriority
	Type         *string
	StoryPoints  *int
	Labels       []string
	Dependencies []uint64
	DueDate      *time.Time
	Completed    *bool
	CategoryID   *uint64
	AssigneeID   *uint64
}

// BulkUpdateItem pairs a task id with its update payload.
type BulkUpdateItem struct {
	ID    uint64
	Input UpdateTaskInput
}

// List returns tasks owned by the user, paginated and sorted. The sort field
// is validated against an allow-list; the default is descending creation time.
func (s *TaskService) List(userID uint64, input ListTasksInput) ([]models.Task, int64, error) {
	column := "created_at"
	desc := true

	if input.Sort != "" {
		mapped, ok := allowedSortColumns[strings.ToLower(input.Sort)]
		if !ok {
			return nil, 0, ErrInvalidSortField
		}
		column = mapped
		desc = false
	}
	switch strings.ToLower(input.Direction) {
	case "":
		// keep default
	case "asc":
		desc = false
	case "desc":
		desc = true
	default:
		return nil, 0, ErrInvalidSortField
	}

	filter := repository.TaskFilter{
		OwnerID:    userID,
		Completed:  input.Completed,
		Status:     input.Status,
		Priority:   input.Priority,
		CategoryID: input.CategoryID,
		SortColumn: column,
		SortDesc:   desc,
		Page:       input.Page,
		PageSize:   input.PageSize,
	}

	tasks, total, err := s.taskRepo.ListByOwner(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, total, nil
}

// Get returns a task with related data. Only the owner may read it.
func (s *TaskService) Get(userID, taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID, "Category", "Assignee")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if task.UserID != userID {
		return nil, ErrNotTaskOwner
	}

	return task, nil
}

// Create creates a new task owned by the user, resolving category and
// assignee references and normalizing the due date to start of day.
func (s *TaskService) Create(userID uint64, input CreateTaskInput) (*models.Task, error) {
	task, err := s.buildTask(userID, input)
	if err != nil {
		return nil, err
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return s.taskRepo.FindByID(task.ID, "Category", "Assignee")
}

// Update applies a partial update to a task. Only the owner may modify it.
func (s *TaskService) Update(userID, taskID uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if task.UserID != userID {
		return nil, ErrNotTaskOwner
	}

	if err := s.applyUpdate(task, input); err != nil {
		return nil, err
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return s.taskRepo.FindByID(task.ID, "Category", "Assignee")
}

// Delete hard deletes a task. Only the owner may delete it.
func (s *TaskService) Delete(userID, taskID uint64) error {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to find task: %w", err)
	}

	if task.UserID != userID {
		return ErrNotTaskOwner
	}

	if err := s.taskRepo.Delete(taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

// CreateBulk creates multiple tasks, all owned by the acting user.
func (s *TaskService) CreateBulk(userID uint64, inputs []CreateTaskInput) ([]models.Task, error) {
	if len(inputs) == 0 {
		return nil, ErrNoTasksProvided
	}

	tasks := make([]*models.Task, 0, len(inputs))
	for _, input := range inputs {
		task, err := s.buildTask(userID, input)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	if err := s.taskRepo.CreateAll(tasks); err != nil {
		return nil, fmt.Errorf("failed to create tasks: %w", err)
	}

	result := make([]models.Task, len(tasks))
	for i, task := range tasks {
		result[i] = *task
	}
	return result, nil
}

// UpdateBulk applies partial updates to multiple tasks. Every task must be
// owned by the acting user or the whole batch is rejected.
func (s *TaskService) UpdateBulk(userID uint64, items []BulkUpdateItem) ([]models.Task, error) {
	if len(items) == 0 {
		return nil, ErrNoTasksProvided
	}

	ids := make([]uint64, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}

	owned, err := s.loadOwnedTasks(userID, ids)
	if err != nil {
		return nil, err
	}

	updated := make([]*models.Task, 0, len(items))
	for _, item := range items {
		task := owned[item.ID]
		if err := s.applyUpdate(task, item.Input); err != nil {
			return nil, err
		}
		updated = append(updated, task)
	}

	if err := s.taskRepo.UpdateAll(updated); err != nil {
		return nil, fmt.Errorf("failed to update tasks: %w", err)
	}

	result := make([]models.Task, len(updated))
	for i, task := range updated {
		result[i] = *task
	}
	return result, nil
}

// DeleteBulk hard deletes multiple tasks, all of which must be owned by the
// acting user.
func (s *TaskService) DeleteBulk(userID uint64, ids []uint64) error {
	if len(ids) == 0 {
		return ErrNoTasksProvided
	}

	if _, err := s.loadOwnedTasks(userID, ids); err != nil {
		return err
	}

	if err := s.taskRepo.DeleteByIDs(ids); err != nil {
		return fmt.Errorf("failed to delete tasks: %w", err)
	}

	return nil
}

// loadOwnedTasks fetches the tasks by id and verifies each exists and belongs
// to the user.
func (s *TaskService) loadOwnedTasks(userID uint64, ids []uint64) (map[uint64]*models.Task, error) {
	tasks, err := s.taskRepo.FindByIDs(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to find tasks: %w", err)
	}

	byID := make(map[uint64]*models.Task, len(tasks))
	for i := range tasks {
		byID[tasks[i].ID] = &tasks[i]
	}

	for _, id := range ids {
		task, ok := byID[id]
		if !ok {
			return nil, ErrTaskNotFound
		}
		if task.UserID != userID {
			return nil, ErrNotTaskOwner
		}
	}

	return byID, nil
}

func (s *TaskService) buildTask(userID uint64, input CreateTaskInput) (*models.Task, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrTitleRequired
	}

	if input.Priority == "" {
		input.Priority = models.PriorityMedium
	}

	task := &models.Task{
		Title:        input.Title,
		Description:  input.Description,
		Status:       input.Status,
		Priority:     input.Priority,
		Type:         input.Type,
		StoryPoints:  input.StoryPoints,
		Labels:       input.Labels,
		Dependencies: input.Dependencies,
		Completed:    input.Completed,
		UserID:       userID,
	}

	if input.DueDate != nil {
		due := startOfDay(*input.DueDate)
		task.DueDate = &due
	}

	if err := s.resolveCategory(task, input.CategoryID); err != nil {
		return nil, err
	}
	if err := s.resolveAssignee(task, input.AssigneeID); err != nil {
		return nil, err
	}

	return task, nil
}

func (s *TaskService) applyUpdate(task *models.Task, input UpdateTaskInput) error {
	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return ErrTitleEmpty
		}
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Status != nil {
		task.Status = *input.Status
	}
	if input.Priority != nil {
		task.Priority = *input.Priority
	}
	if input.Type != nil {
		task.Type = *input.Type
	}
	if input.StoryPoints != nil {
		task.StoryPoints = input.StoryPoints
	}
	if input.Labels != nil {
		task.Labels = input.Labels
	}
	if input.Dependencies != nil {
		task.Dependencies = input.Dependencies
	}
	if input.Completed != nil {
		task.Completed = *input.Completed
	}
	if input.DueDate != nil {
		due := startOfDay(*input.DueDate)
		task.DueDate = &due
	}

	// Associations are re-resolved on every update; a nil id clears them.
	if err := s.resolveCategory(task, input.CategoryID); err != nil {
		return err
	}
	return s.resolveAssignee(task, input.AssigneeID)
}

func (s *TaskService) resolveCategory(task *models.Task, categoryID *uint64) error {
	if categoryID == nil {
		task.CategoryID = nil
		task.Category = nil
		return nil
	}

	if _, err := s.categoryRepo.FindByID(*categoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return fmt.Errorf("failed to find category: %w", err)
	}

	task.CategoryID = categoryID
	return nil
}

func (s *TaskService) resolveAssignee(task *models.Task, assigneeID *uint64) error {
	if assigneeID == nil {
		task.AssigneeID = nil
		task.Assignee = nil
		return nil
	}

	if _, err := s.userRepo.FindByID(*assigneeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAssigneeNotFound
		}
		return fmt.Errorf("failed to find assignee: %w", err)
	}

	task.AssigneeID = assigneeID
	return nil
}

// startOfDay truncates a time to midnight in its own location.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
