package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"macromatch-go-api/internal/models"
)

func f(v float64) *float64 { return &v }
func n(v int64) *int64     { return &v }

func TestLookupAndSymbols(t *testing.T) {
	assert.Equal(t, []string{"SPY", "QQQ", "TLT", "GLD", "VTI", "VEA", "VWO", "BND", "VNQ", "XLE"}, Symbols())

	info, ok := Lookup("TLT")
	require.True(t, ok)
	assert.Equal(t, "장기채권", info.Category)
	assert.Equal(t, models.RiskLow, info.Risk)

	_, ok = Lookup("ARKK")
	assert.False(t, ok)
	assert.Len(t, Categories(), 10)
}

func TestCompleteETFKnownSymbol(t *testing.T) {
	etf := CompleteETF("SPY", &models.TickerData{Symbol: "SPY", Price: 512.3, ChangePercent: 0.4, Volume: 1000})
	assert.Equal(t, "SPY", etf.ID)
	assert.Equal(t, "SPDR S&P 500 ETF Trust", etf.Name)
	assert.Equal(t, 0.0945, etf.Expense)
	require.NotNil(t, etf.Price)
	assert.Equal(t, 512.3, *etf.Price)
	require.NotNil(t, etf.Volume)
	assert.Equal(t, int64(1000), *etf.Volume)
	assert.Nil(t, etf.MarketCap)
	assert.Equal(t, []string{"금리", "성장률"}, etf.CorrelationFactors)
}

func TestCompleteETFUnknownSymbol(t *testing.T) {
	etf := CompleteETF("ARKK", nil)
	assert.Equal(t, "ARKK", etf.Name)
	assert.Equal(t, "기타", etf.Category)
	assert.Equal(t, 0.5, etf.Expense)
	assert.Equal(t, "ARKK ETF", etf.Description)
	assert.Equal(t, models.RiskMedium, etf.Risk)
	assert.Equal(t, []string{"시장전반"}, etf.CorrelationFactors)
	assert.Nil(t, etf.Price)
	assert.Nil(t, etf.ChangeRate)
}

func TestCompleteETFDoesNotShareTags(t *testing.T) {
	a := CompleteETF("GLD", nil)
	a.CorrelationFactors[0] = "changed"
	b := CompleteETF("GLD", nil)
	assert.Equal(t, "인플레이션", b.CorrelationFactors[0])
}

func TestFallbackIndicators(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	got := FallbackIndicators(now)
	require.Len(t, got, 5)
	for _, ind := range got {
		assert.True(t, ind.Category.Valid(), ind.Name)
		assert.Equal(t, now, ind.UpdatedAt)
	}
	assert.Equal(t, models.CategoryMarket, got[4].Category)
	assert.Equal(t, 5.67, got[4].ChangeRate)
}

func sample() []models.ETF {
	return []models.ETF{
		{Symbol: "SPY", Name: "SPDR S&P 500 ETF Trust", Category: "대형주", Risk: models.RiskMedium, ChangeRate: f(0.4), Volume: n(500), Expense: 0.0945},
		{Symbol: "QQQ", Name: "Invesco QQQ Trust", Category: "기술주", Risk: models.RiskHigh, ChangeRate: nil, Volume: n(900), Expense: 0.2},
		{Symbol: "TLT", Name: "iShares 20+ Year Treasury Bond ETF", Category: "장기채권", Risk: models.RiskLow, ChangeRate: f(-1.1), Volume: nil, Expense: 0.15},
		{Symbol: "VTI", Name: "Vanguard Total Stock Market ETF", Category: "전체주식시장", Risk: models.RiskMedium, ChangeRate: f(1.3), Volume: n(100), Expense: 0.03},
	}
}

func symbols(etfs []models.ETF) []string {
	out := make([]string, len(etfs))
	for i, e := range etfs {
		out[i] = e.Symbol
	}
	return out
}

func TestFilter(t *testing.T) {
	etfs := sample()
	assert.Equal(t, []string{"SPY", "QQQ", "TLT", "VTI"}, symbols(Filter(etfs, "", "all", "all")))
	assert.Equal(t, []string{"QQQ"}, symbols(Filter(etfs, "qq", "all", "all")))
	assert.Equal(t, []string{"VTI"}, symbols(Filter(etfs, "VANGUARD", "", "")))
	assert.Equal(t, []string{"SPY", "VTI"}, symbols(Filter(etfs, "", "all", "medium")))
	assert.Equal(t, []string{"TLT"}, symbols(Filter(etfs, "", "장기채권", "all")))
	assert.Empty(t, Filter(etfs, "zzz", "all", "all"))
}

func TestSort(t *testing.T) {
	etfs := sample()
	assert.Equal(t, []string{"VTI", "SPY", "TLT", "QQQ"}, symbols(Sort(etfs, SortPerformance)))
	assert.Equal(t, []string{"QQQ", "SPY", "VTI", "TLT"}, symbols(Sort(etfs, SortVolume)))
	assert.Equal(t, []string{"VTI", "SPY", "TLT", "QQQ"}, symbols(Sort(etfs, SortExpense)))
	assert.Equal(t, []string{"SPY", "QQQ", "TLT", "VTI"}, symbols(Sort(etfs, "recommended")))
	// input untouched
	assert.Equal(t, "SPY", etfs[0].Symbol)
}

func TestPageNumbers(t *testing.T) {
	assert.Equal(t, []int{1, 2, 3}, PageNumbers(1, 3))
	assert.Equal(t, []int{1, 2, 3, 4, 5}, PageNumbers(1, 8))
	assert.Equal(t, []int{2, 3, 4, 5, 6}, PageNumbers(4, 8))
	assert.Equal(t, []int{4, 5, 6, 7, 8}, PageNumbers(8, 8))
	assert.Equal(t, []int{}, PageNumbers(1, 0))
}

func TestPaginate(t *testing.T) {
	var etfs []models.ETF
	for _, s := range Symbols() {
		etfs = append(etfs, CompleteETF(s, nil))
	}
	assert.Len(t, Paginate(etfs, 1), 6)
	assert.Len(t, Paginate(etfs, 2), 4)
	assert.Empty(t, Paginate(etfs, 3))
	assert.Equal(t, 2, TotalPages(len(etfs)))
	assert.Equal(t, 1, TotalPages(0))

	page := Page(etfs, models.ETFQuery{Category: "all", Risk: "high", Page: 1})
	assert.Equal(t, 3, page.Total)
	assert.Equal(t, []string{"QQQ", "VWO", "XLE"}, symbols(page.Items))
	assert.Equal(t, []int{1}, page.Pages)
}
