package handlers

import (
	"net/http"

	"gofinances/internal/dto"
	"gofinances/internal/services"

	"github.com/labstack/echo/v4"
)

// CategoryHandler exposes the category catalog used by the registration form
type CategoryHandler struct {
	categories services.CategoryServiceInterface
}

func NewCategoryHandler(categories services.CategoryServiceInterface) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

// ListCategories handles GET /api/v1/categories
func (h *CategoryHandler) ListCategories(c echo.Context) error {
	return c.JSON(http.StatusOK, dto.CategoriesResponse{Categories: h.categories.List()})
}
