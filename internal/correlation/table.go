// Package correlation holds the static indicator to ETF correlation table
// that drives recommendation scoring.
package correlation

import (
	"sort"

	"macromatch-go-api/internal/models"
)

// Impact is how strongly an indicator category moves an instrument.
type Impact string

const (
	ImpactHigh   Impact = "high"
	ImpactMedium Impact = "medium"
	ImpactLow    Impact = "low"
)

// Weight is the score multiplier for the impact level.
func (i Impact) Weight() float64 {
	switch i {
	case ImpactHigh:
		return 1.5
	case ImpactMedium:
		return 1.0
	case ImpactLow:
		return 0.5
	}
	return 0
}

// Entry links one instrument to an indicator category.
type Entry struct {
	Symbol      string  `json:"symbol"`
	Coefficient float64 `json:"correlation"`
	Impact      Impact  `json:"impact"`
	Rationale   string  `json:"description"`
}

var (
	interestRate = []Entry{
		{"TLT", -0.8, ImpactHigh, "금리 상승시 장기채권 가격 하락으로 TLT 투자 위험 증가"},
		{"BND", -0.6, ImpactMedium, "금리 상승시 채권 ETF 가격 하락"},
		{"AGG", -0.6, ImpactMedium, "금리 상승시 채권 ETF 가격 하락"},
		{"SPY", -0.3, ImpactMedium, "금리 상승시 주식시장 조정 가능성"},
		{"QQQ", -0.4, ImpactHigh, "금리 상승시 성장주 밸류에이션 부담"},
		{"VTI", -0.3, ImpactMedium, "금리 상승시 전체 주식시장 조정 가능성"},
		{"IVV", -0.3, ImpactMedium, "금리 상승시 주식시장 조정 가능성"},
	}
	inflation = []Entry{
		{"GLD", 0.7, ImpactHigh, "인플레이션 헤지 수단으로 금 투자 유리"},
		{"SLV", 0.6, ImpactMedium, "인플레이션시 실물자산 가치 상승"},
		{"VNQ", 0.5, ImpactMedium, "인플레이션시 부동산 가치 상승"},
		{"XLE", 0.4, ImpactMedium, "인플레이션시 에너지 가격 상승"},
		{"TLT", -0.6, ImpactHigh, "인플레이션 상승시 실질 수익률 하락"},
		{"BND", -0.5, ImpactMedium, "인플레이션 상승시 채권 실질 수익률 하락"},
	}
	employment = []Entry{
		{"SPY", -0.6, ImpactHigh, "고용 개선시 소비 증가로 주식시장 상승"},
		{"QQQ", -0.5, ImpactMedium, "고용 개선시 기술주 성장 기대"},
		{"VTI", -0.4, ImpactMedium, "고용 개선시 전체 시장 상승"},
		{"IWM", -0.3, ImpactMedium, "고용 개선시 소형주 성장 기대"},
		{"IVV", -0.6, ImpactHigh, "고용 개선시 S&P 500 상승"},
		{"VB", -0.3, ImpactMedium, "고용 개선시 소형주 성장 기대"},
	}
	growth = []Entry{
		{"SPY", 0.8, ImpactHigh, "경제성장시 기업 수익 증가로 주식시장 상승"},
		{"QQQ", 0.7, ImpactHigh, "경제성장시 기술주 성장 가속화"},
		{"IWM", 0.6, ImpactMedium, "경제성장시 소형주 성장 기대"},
		{"VEA", 0.5, ImpactMedium, "경제성장시 선진국 주식 상승"},
		{"VTI", 0.8, ImpactHigh, "경제성장시 전체 주식시장 상승"},
		{"IVV", 0.8, ImpactHigh, "경제성장시 S&P 500 상승"},
		{"VUG", 0.7, ImpactHigh, "경제성장시 성장주 상승"},
	}
	energy = []Entry{
		{"XLE", 0.9, ImpactHigh, "원유 가격 상승시 에너지 기업 수익 증가"},
		{"USO", 0.8, ImpactHigh, "원유 가격 직접 추적"},
		{"XLI", 0.3, ImpactLow, "에너지 비용 상승으로 산업재 부담"},
	}
	currency = []Entry{
		{"SPY", 0.4, ImpactMedium, "달러 강세시 미국 자산 선호"},
		{"UUP", 0.8, ImpactHigh, "달러 강세 직접 수익"},
		{"VEA", -0.3, ImpactLow, "달러 강세시 해외 자산 부담"},
		{"VTI", 0.4, ImpactMedium, "달러 강세시 미국 자산 선호"},
		{"IVV", 0.4, ImpactMedium, "달러 강세시 미국 자산 선호"},
	}
	market = []Entry{
		{"SPY", 0.99, ImpactHigh, "S&P 500 지수 직접 추적"},
		{"IVV", 0.99, ImpactHigh, "S&P 500 지수 직접 추적 (저비용)"},
		{"VTI", 0.95, ImpactHigh, "전체 주식시장 추적"},
	}
)

func entries(category models.Category) []Entry {
	switch category {
	case models.CategoryInterestRate:
		return interestRate
	case models.CategoryInflation:
		return inflation
	case models.CategoryEmployment:
		return employment
	case models.CategoryGrowth:
		return growth
	case models.CategoryEnergy:
		return energy
	case models.CategoryCurrency:
		return currency
	case models.CategoryMarket:
		return market
	case models.CategoryHousing,
		models.CategoryTrade,
		models.CategorySentiment,
		models.CategoryManufacturing,
		models.CategoryGovernment:
		return nil
	}
	return nil
}

// For returns a copy of the entries for a category. Categories without
// modeled instruments return an empty result.
func For(category models.Category) []Entry {
	src := entries(category)
	if len(src) == 0 {
		return nil
	}
	out := make([]Entry, len(src))
	copy(out, src)
	return out
}

// Find looks up the entry for one instrument under a category.
func Find(category models.Category, symbol string) (Entry, bool) {
	for _, e := range entries(category) {
		if e.Symbol == symbol {
			return e, true
		}
	}
	return Entry{}, false
}

// Symbols lists every instrument referenced by the table, sorted.
func Symbols() []string {
	seen := make(map[string]struct{})
	for _, c := range models.Categories {
		for _, e := range entries(c) {
			seen[e.Symbol] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
