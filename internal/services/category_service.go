package services

import (
	"gofinances/internal/models"
)

type categoryService struct {
	catalog []models.Category
	byKey   map[string]models.Category
}

// NewCategoryService creates a resolver over the built-in catalog
func NewCategoryService() CategoryServiceInterface {
	catalog := models.AllCategories()
	byKey := make(map[string]models.Category, len(catalog))
	for _, category := range catalog {
		byKey[category.Key] = category
	}

	return &categoryService{
		catalog: catalog,
		byKey:   byKey,
	}
}

// List returns a copy of the catalog in display order
func (s *categoryService) List() []models.Category {
	categories := make([]models.Category, len(s.catalog))
	copy(categories, s.catalog)
	return categories
}

// Resolve returns the display entry for key. Unknown keys are shown as themselves.
func (s *categoryService) Resolve(key string) models.Category {
	if category, ok := s.byKey[key]; ok {
		return category
	}
	return models.Category{Key: key, Name: key}
}

func (s *categoryService) Exists(key string) bool {
	_, ok := s.byKey[key]
	return ok
}
