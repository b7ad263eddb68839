package dto

import (
	"time"

	"github.com/taskflow/taskflow-api/internal/models"
	"github.com/taskflow/taskflow-api/internal/utils"
)

// CategoryDTO represents a category in API responses
type CategoryDTO struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID           uint64              `json:"id"`
	Title        string              `json:"title"`
	Description  string              `json:"description"`
	Status       string              `json:"status,omitempty"`
	Priority     models.TaskPriority `json:"priority"`
	Type         string              `json:"type,omitempty"`
	StoryPoints  *int                `json:"story_points,omitempty"`
	Labels       []string            `json:"labels,omitempty"`
	Dependencies []uint64            `json:"dependencies,omitempty"`
	DueDate      *time.Time          `json:"due_date"`
	Completed    bool                `json:"completed"`
	UserID       uint64              `json:"user_id"`
	AssigneeID   *uint64             `json:"assignee_id,omitempty"`
	CategoryID   *uint64             `json:"category_id,omitempty"`
	Assignee     *UserSummaryDTO     `json:"assignee,omitempty"`
	Category     *CategoryDTO        `json:"category,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

// TaskListResponse represents a paginated list of tasks
type TaskListResponse struct {
	Tasks      []TaskDTO                `json:"tasks"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// ToCategoryDTO converts a Category model to CategoryDTO
func ToCategoryDTO(category models.Category) CategoryDTO {
	return CategoryDTO{
		ID:    category.ID,
		Name:  category.Name,
		Color: category.Color,
	}
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:           task.ID,
		Title:        task.Title,
		Description:  task.Description,
		Status:       task.Status,
		Priority:     task.Priority,
		Type:         task.Type,
		StoryPoints:  task.StoryPoints,
		Labels:       task.Labels,
		Dependencies: task.Dependencies,
		DueDate:      task.DueDate,
		Completed:    task.Completed,
		UserID:       task.UserID,
		AssigneeID:   task.AssigneeID,
		CategoryID:   task.CategoryID,
		CreatedAt:    task.CreatedAt,
		UpdatedAt:    task.UpdatedAt,
	}

	// Include relations if preloaded
	if task.Assignee != nil {
		assignee := ToUserSummaryDTO(*task.Assignee)
		dto.Assignee = &assignee
	}
	if task.Category != nil {
		category := ToCategoryDTO(*task.Category)
		dto.Category = &category
	}

	return dto
}

// ToTaskListResponse converts a slice of tasks to TaskListResponse
func ToTaskListResponse(tasks []models.Task, params utils.PaginationParams, total int64) TaskListResponse {
	items := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskDTO(task)
	}

	return TaskListResponse{
		Tasks: items,
		Pagination: utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	}
}
