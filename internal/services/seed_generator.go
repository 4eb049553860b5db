package services

import (
	"sync"

	"gofinances/internal/models"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
)

const (
	// incomeShare is the fraction of generated rows that are salary entries
	incomeShare  = 0.25
	maxSeedCount = 500
)

type amountRange struct {
	min float64
	max float64
}

// expenseRanges keeps generated expenses plausible per category
var expenseRanges = map[string]amountRange{
	models.CategoryPurchases: {min: 30, max: 900},
	models.CategoryFood:      {min: 8, max: 180},
	models.CategoryCar:       {min: 60, max: 1500},
	models.CategoryLeisure:   {min: 20, max: 400},
	models.CategoryStudies:   {min: 40, max: 700},
}

var expenseCategories = []string{
	models.CategoryPurchases,
	models.CategoryFood,
	models.CategoryCar,
	models.CategoryLeisure,
	models.CategoryStudies,
}

var salaryRange = amountRange{min: 1500, max: 12000}

type seedGenerator struct {
	mu    sync.Mutex
	faker *gofakeit.Faker
}

// NewSeedGenerator creates a demo data generator. A zero seed picks a random one.
func NewSeedGenerator(seed uint64) SeedGeneratorInterface {
	return &seedGenerator{
		faker: gofakeit.New(seed),
	}
}

// Generate returns count new transactions ready for Append. count is clamped to [0, 500].
func (g *seedGenerator) Generate(count int) []models.NewTransaction {
	if count <= 0 {
		return []models.NewTransaction{}
	}
	if count > maxSeedCount {
		count = maxSeedCount
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	transactions := make([]models.NewTransaction, 0, count)
	for i := 0; i < count; i++ {
		if g.faker.Float64() < incomeShare {
			transactions = append(transactions, g.income())
			continue
		}
		transactions = append(transactions, g.expense())
	}

	return transactions
}

func (g *seedGenerator) income() models.NewTransaction {
	return models.NewTransaction{
		Name:     "Salário " + g.faker.Company(),
		Amount:   g.amount(salaryRange),
		Type:     models.TransactionTypePositive,
		Category: models.CategorySalary,
	}
}

func (g *seedGenerator) expense() models.NewTransaction {
	category := expenseCategories[g.faker.IntRange(0, len(expenseCategories)-1)]

	return models.NewTransaction{
		Name:     g.expenseName(category),
		Amount:   g.amount(expenseRanges[category]),
		Type:     models.TransactionTypeNegative,
		Category: category,
	}
}

func (g *seedGenerator) expenseName(category string) string {
	switch category {
	case models.CategoryFood:
		return g.faker.Dinner()
	case models.CategoryCar:
		return "Oficina " + g.faker.LastName()
	case models.CategoryLeisure:
		return g.faker.MovieName()
	case models.CategoryStudies:
		return "Curso de " + g.faker.ProgrammingLanguage()
	default:
		return g.faker.ProductName()
	}
}

// amount is never below 0.01 and always has two decimal places at most
func (g *seedGenerator) amount(r amountRange) decimal.Decimal {
	value := decimal.NewFromFloat(g.faker.Price(r.min, r.max)).Round(2)
	if !value.IsPositive() {
		return decimal.NewFromFloat(r.min).Round(2)
	}
	return value
}
