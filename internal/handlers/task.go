package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/taskflow/taskflow-api/internal/dto"
	apierrors "github.com/taskflow/taskflow-api/internal/errors"
	"github.com/taskflow/taskflow-api/internal/middleware"
	"github.com/taskflow/taskflow-api/internal/models"
	"github.com/taskflow/taskflow-api/internal/services"
	"github.com/taskflow/taskflow-api/internal/utils"
)

// TaskHandler coordinates task-related HTTP handlers.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// taskPayload is the create/update request body. All fields are optional at
// the binding level; the service decides what is required per operation.
type taskPayload struct {
	Title        *string              `json:"title"`
	Description  *string              `json:"description"`
	Status       *string              `json:"status"`
	Priority     *models.TaskPriority `json:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH"`
	Type         *string              `json:"type"`
	StoryPoints  *int                 `json:"story_points"`
	Labels       []string             `json:"labels"`
	Dependencies []uint64             `json:"dependencies"`
	DueDate      *time.Time           `json:"due_date"`
	Completed    *bool                `json:"completed"`
	CategoryID   *uint64              `json:"category_id"`
	AssigneeID   *uint64              `json:"assignee_id"`
}

func (p taskPayload) toCreateInput() services.CreateTaskInput {
	input := services.CreateTaskInput{
		Labels:       p.Labels,
		Dependencies: p.Dependencies,
		StoryPoints:  p.StoryPoints,
		DueDate:      p.DueDate,
		CategoryID:   p.CategoryID,
		AssigneeID:   p.AssigneeID,
	}
	if p.Title != nil {
		input.Title = *p.Title
	}
	if p.Description != nil {
		input.Description = *p.Description
	}
	if p.Status != nil {
		input.Status = *p.Status
	}
	if p.Priority != nil {
		input.Priority = *p.Priority
	}
	if p.Type != nil {
		input.Type = *p.Type
	}
	if p.Completed != nil {
		input.Completed = *p.Completed
	}
	return input
}

func (p taskPayload) toUpdateInput() services.UpdateTaskInput {
	return services.UpdateTaskInput{
		Title:        p.Title,
		Description:  p.Description,
		Status:       p.Status,
		Priority:     p.Priority,
		Type:         p.Type,
		StoryPoints:  p.StoryPoints,
		Labels:       p.Labels,
		Dependencies: p.Dependencies,
		DueDate:      p.DueDate,
		Completed:    p.Completed,
		CategoryID:   p.CategoryID,
		AssigneeID:   p.AssigneeID,
	}
}

// ListTasks returns the caller's tasks, paginated and sorted.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	params := utils.GetPaginationParams(c)

	input := services.ListTasksInput{
		Sort:      c.Query("sort"),
		Direction: c.Query("direction"),
		Page:      params.Page,
		PageSize:  params.Limit,
	}

	if v := c.Query("completed"); v != "" {
		completed, err := strconv.ParseBool(v)
		if err != nil {
			apierrors.BadRequest(c, "Invalid completed filter")
			return
		}
		input.Completed = &completed
	}
	if v := c.Query("status"); v != "" {
		input.Status = &v
	}
	if v := c.Query("priority"); v != "" {
		priority := models.TaskPriority(v)
		input.Priority = &priority
	}
	if v := c.Query("category_id"); v != "" {
		categoryID, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid category_id")
			return
		}
		input.CategoryID = &categoryID
	}

	tasks, total, err := h.taskService.List(userID, input)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskListResponse(tasks, params, total))
}

// GetTask returns a specific task by ID.
func (h *TaskHandler) GetTask(c *gin.Context) {
	userID, taskID, ok := taskRequestIDs(c)
	if !ok {
		return
	}

	task, err := h.taskService.Get(userID, taskID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// CreateTask creates a new task owned by the caller.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var payload taskPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.Create(userID, payload.toCreateInput())
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// UpdateTask applies a partial update to a task.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	userID, taskID, ok := taskRequestIDs(c)
	if !ok {
		return
	}

	var payload taskPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.Update(userID, taskID, payload.toUpdateInput())
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// DeleteTask deletes a task.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID, taskID, ok := taskRequestIDs(c)
	if !ok {
		return
	}

	if err := h.taskService.Delete(userID, taskID); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task deleted",
	})
}

// CreateBulkTasks creates multiple tasks owned by the caller.
func (h *TaskHandler) CreateBulkTasks(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var payloads []taskPayload
	if err := c.ShouldBindJSON(&payloads); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	inputs := make([]services.CreateTaskInput, len(payloads))
	for i, payload := range payloads {
		inputs[i] = payload.toCreateInput()
	}

	tasks, err := h.taskService.CreateBulk(userID, inputs)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	items := make([]dto.TaskDTO, len(tasks))
	for i, task := range tasks {
		items[i] = dto.ToTaskDTO(task)
	}
	c.JSON(http.StatusCreated, gin.H{"tasks": items})
}

// UpdateBulkTasks applies partial updates to multiple tasks.
func (h *TaskHandler) UpdateBulkTasks(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type bulkUpdateItem struct {
		ID uint64 `json:"id" binding:"required"`
		taskPayload
	}

	var payloads []bulkUpdateItem
	if err := c.ShouldBindJSON(&payloads); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	items := make([]services.BulkUpdateItem, len(payloads))
	for i, payload := range payloads {
		items[i] = services.BulkUpdateItem{
			ID:    payload.ID,
			Input: payload.toUpdateInput(),
		}
	}

	tasks, err := h.taskService.UpdateBulk(userID, items)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	result := make([]dto.TaskDTO, len(tasks))
	for i, task := range tasks {
		result[i] = dto.ToTaskDTO(task)
	}
	c.JSON(http.StatusOK, gin.H{"tasks": result})
}

// DeleteBulkTasks deletes multiple tasks.
func (h *TaskHandler) DeleteBulkTasks(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type bulkDeleteRequest struct {
		IDs []uint64 `json:"ids" binding:"required"`
	}

	var req bulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.taskService.DeleteBulk(userID, req.IDs); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Tasks deleted",
	})
}

// taskRequestIDs extracts the caller id and the :id path parameter.
func taskRequestIDs(c *gin.Context) (userID, taskID uint64, ok bool) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return 0, 0, false
	}

	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return 0, 0, false
	}

	return userID, taskID, true
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrCategoryNotFound),
		errors.Is(err, services.ErrAssigneeNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNotTaskOwner):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrTitleEmpty),
		errors.Is(err, services.ErrInvalidSortField),
		errors.Is(err, services.ErrNoTasksProvided):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
