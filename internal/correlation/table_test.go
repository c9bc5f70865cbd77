package correlation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"macromatch-go-api/internal/models"
)

func TestImpactWeight(t *testing.T) {
	assert.Equal(t, 1.5, ImpactHigh.Weight())
	assert.Equal(t, 1.0, ImpactMedium.Weight())
	assert.Equal(t, 0.5, ImpactLow.Weight())
	assert.Equal(t, 0.0, Impact("unknown").Weight())
}

func TestForModeledCategories(t *testing.T) {
	counts := map[models.Category]int{
		models.CategoryInterestRate: 7,
		models.CategoryInflation:    6,
		models.CategoryEmployment:   6,
		models.CategoryGrowth:       7,
		models.CategoryEnergy:       3,
		models.CategoryCurrency:     5,
		models.CategoryMarket:       3,
	}
	for category, n := range counts {
		assert.Len(t, For(category), n, category)
	}
}

func TestForEmptyCategories(t *testing.T) {
	for _, c := range []models.Category{
		models.CategoryHousing,
		models.CategoryTrade,
		models.CategorySentiment,
		models.CategoryManufacturing,
		models.CategoryGovernment,
		models.Category("weather"),
	} {
		assert.Empty(t, For(c), c)
	}
}

func TestForReturnsCopy(t *testing.T) {
	got := For(models.CategoryInterestRate)
	got[0].Coefficient = 42

	e, ok := Find(models.CategoryInterestRate, "TLT")
	require.True(t, ok)
	assert.Equal(t, -0.8, e.Coefficient)
}

func TestFind(t *testing.T) {
	e, ok := Find(models.CategoryInflation, "GLD")
	require.True(t, ok)
	assert.Equal(t, 0.7, e.Coefficient)
	assert.Equal(t, ImpactHigh, e.Impact)
	assert.Equal(t, "인플레이션 헤지 수단으로 금 투자 유리", e.Rationale)

	_, ok = Find(models.CategoryEnergy, "GLD")
	assert.False(t, ok)
}

func TestCoefficientsInRange(t *testing.T) {
	for _, c := range models.Categories {
		for _, e := range For(c) {
			assert.GreaterOrEqual(t, e.Coefficient, -1.0)
			assert.LessOrEqual(t, e.Coefficient, 1.0)
			assert.NotZero(t, e.Impact.Weight(), "%s/%s", c, e.Symbol)
		}
	}
}

func TestSymbols(t *testing.T) {
	got := Symbols()
	assert.Equal(t, []string{
		"AGG", "BND", "GLD", "IVV", "IWM", "QQQ", "SLV", "SPY", "TLT",
		"USO", "UUP", "VB", "VEA", "VNQ", "VTI", "VUG", "XLE", "XLI",
	}, got)
}
