package models

// Category keys of the built-in catalog
const (
	CategoryPurchases = "purchases"
	CategoryFood      = "food"
	CategorySalary    = "salary"
	CategoryCar       = "car"
	CategoryLeisure   = "leisure"
	CategoryStudies   = "studies"

	// CategoryPlaceholder is the key the entry form holds before the user picks a category
	CategoryPlaceholder = "category"
)

// Category is a display entry of the category catalog
type Category struct {
	Key  string `json:"key"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// AllCategories returns the catalog in display order
func AllCategories() []Category {
	return []Category{
		{Key: CategoryPurchases, Name: "Compras", Icon: "shopping-bag"},
		{Key: CategoryFood, Name: "Alimentação", Icon: "coffee"},
		{Key: CategorySalary, Name: "Salário", Icon: "dollar-sign"},
		{Key: CategoryCar, Name: "Carro", Icon: "crosshair"},
		{Key: CategoryLeisure, Name: "Lazer", Icon: "heart"},
		{Key: CategoryStudies, Name: "Estudos", Icon: "book"},
	}
}

// IsSelectedCategory reports whether key is a real selection rather than empty or the form placeholder
func IsSelectedCategory(key string) bool {
	return key != "" && key != CategoryPlaceholder
}
