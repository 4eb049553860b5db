package services

import (
	"testing"

	"gofinances/internal/models"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/suite"
)

type CategoryServiceTestSuite struct {
	suite.Suite
	service *categoryService
}

func TestCategoryServiceSuite(t *testing.T) {
	suite.Run(t, new(CategoryServiceTestSuite))
}

func (s *CategoryServiceTestSuite) SetupTest() {
	s.service = NewCategoryService().(*categoryService)
}

func (s *CategoryServiceTestSuite) TestResolve_KnownKeys() {
	testCases := []struct {
		key  string
		name string
		icon string
	}{
		{models.CategoryPurchases, "Compras", "shopping-bag"},
		{models.CategoryFood, "Alimentação", "coffee"},
		{models.CategorySalary, "Salário", "dollar-sign"},
		{models.CategoryCar, "Carro", "crosshair"},
		{models.CategoryLeisure, "Lazer", "heart"},
		{models.CategoryStudies, "Estudos", "book"},
	}

	for _, tc := range testCases {
		s.Run(tc.key, func() {
			category := s.service.Resolve(tc.key)
			s.Equal(tc.key, category.Key)
			s.Equal(tc.name, category.Name)
			s.Equal(tc.icon, category.Icon)
			s.True(s.service.Exists(tc.key))
		})
	}
}

func (s *CategoryServiceTestSuite) TestResolve_UnknownKeyShownAsItself() {
	key := gofakeit.Word() + "-custom"

	category := s.service.Resolve(key)

	s.Equal(models.Category{Key: key, Name: key}, category)
	s.False(s.service.Exists(key))
}

func (s *CategoryServiceTestSuite) TestPlaceholderIsNotACategory() {
	s.False(s.service.Exists(models.CategoryPlaceholder))
}

func (s *CategoryServiceTestSuite) TestList_ReturnsCopyInDisplayOrder() {
	categories := s.service.List()
	s.Require().Len(categories, 6)
	s.Equal(models.CategoryPurchases, categories[0].Key)
	s.Equal(models.CategoryStudies, categories[5].Key)

	categories[0].Name = "changed"
	s.Equal("Compras", s.service.List()[0].Name)
}
