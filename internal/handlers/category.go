package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskflow/taskflow-api/internal/dto"
	apierrors "github.com/taskflow/taskflow-api/internal/errors"
	"github.com/taskflow/taskflow-api/internal/services"
)

// CategoryHandler coordinates category HTTP handlers.
type CategoryHandler struct {
	categoryService *services.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categoryService *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
	}
}

// ListCategories returns all categories.
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.categoryService.List()
	if err != nil {
		apierrors.InternalError(c, "Internal server error")
		return
	}

	items := make([]dto.CategoryDTO, len(categories))
	for i, category := range categories {
		items[i] = dto.ToCategoryDTO(category)
	}
	c.JSON(http.StatusOK, gin.H{"categories": items})
}

// CreateCategory creates a new category.
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	type CreateCategoryRequest struct {
		Name  string `json:"name" binding:"required,max=100"`
		Color string `json:"color" binding:"max=20"`
	}

	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	category, err := h.categoryService.Create(req.Name, req.Color)
	if err != nil {
		if errors.Is(err, services.ErrCategoryNameRequired) {
			apierrors.BadRequest(c, err.Error())
			return
		}
		apierrors.InternalError(c, "Internal server error")
		return
	}

	c.JSON(http.StatusCreated, dto.ToCategoryDTO(*category))
}
