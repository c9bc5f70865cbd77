// Package catalog holds the static ETF metadata the service recommends from,
// plus the listing helpers used by the browse endpoints.
package catalog

import (
	"macromatch-go-api/internal/models"
)

// Info is the static part of an ETF record.
type Info struct {
	Symbol      string
	Name        string
	Category    string
	Expense     float64
	Description string
	Risk        models.RiskLevel
	Tags        []string
}

var infos = []Info{
	{
		Symbol:      "SPY",
		Name:        "SPDR S&P 500 ETF Trust",
		Category:    "대형주",
		Expense:     0.0945,
		Description: "S&P 500 지수를 추적하는 대표적인 ETF로, 미국 대형주 500개에 분산투자할 수 있습니다.",
		Risk:        models.RiskMedium,
		Tags:        []string{"금리", "성장률"},
	},
	{
		Symbol:      "QQQ",
		Name:        "Invesco QQQ Trust",
		Category:    "기술주",
		Expense:     0.2,
		Description: "나스닥 100 지수를 추적하는 ETF로, 기술주 중심의 성장주에 투자합니다.",
		Risk:        models.RiskHigh,
		Tags:        []string{"성장률", "기술혁신"},
	},
	{
		Symbol:      "TLT",
		Name:        "iShares 20+ Year Treasury Bond ETF",
		Category:    "장기채권",
		Expense:     0.15,
		Description: "20년 이상 미국 국채에 투자하는 ETF로, 금리 하락시 수익률이 높습니다.",
		Risk:        models.RiskLow,
		Tags:        []string{"금리", "인플레이션"},
	},
	{
		Symbol:      "GLD",
		Name:        "SPDR Gold Shares",
		Category:    "원자재",
		Expense:     0.4,
		Description: "금 현물 가격을 추적하는 ETF로, 인플레이션 헤지 수단으로 활용됩니다.",
		Risk:        models.RiskMedium,
		Tags:        []string{"인플레이션", "달러"},
	},
	{
		Symbol:      "VTI",
		Name:        "Vanguard Total Stock Market ETF",
		Category:    "전체주식시장",
		Expense:     0.03,
		Description: "미국 전체 주식시장을 추적하는 ETF로, 대형주부터 소형주까지 포괄적으로 투자합니다.",
		Risk:        models.RiskMedium,
		Tags:        []string{"성장률", "경기순환"},
	},
	{
		Symbol:      "VEA",
		Name:        "Vanguard FTSE Developed Markets ETF",
		Category:    "선진국주식",
		Expense:     0.05,
		Description: "선진국 주식시장에 투자하는 ETF로, 미국 외 선진국 기업들에 분산투자합니다.",
		Risk:        models.RiskMedium,
		Tags:        []string{"글로벌경기", "환율"},
	},
	{
		Symbol:      "VWO",
		Name:        "Vanguard FTSE Emerging Markets ETF",
		Category:    "신흥국주식",
		Expense:     0.08,
		Description: "신흥국 주식시장에 투자하는 ETF로, 높은 성장 잠재력을 가진 시장에 투자합니다.",
		Risk:        models.RiskHigh,
		Tags:        []string{"신흥국성장", "원자재가격"},
	},
	{
		Symbol:      "BND",
		Name:        "Vanguard Total Bond Market ETF",
		Category:    "채권",
		Expense:     0.035,
		Description: "미국 전체 채권시장을 추적하는 ETF로, 안정적인 수익을 추구합니다.",
		Risk:        models.RiskLow,
		Tags:        []string{"금리", "인플레이션"},
	},
	{
		Symbol:      "VNQ",
		Name:        "Vanguard Real Estate ETF",
		Category:    "부동산",
		Expense:     0.12,
		Description: "부동산 투자신탁(REIT)에 투자하는 ETF로, 부동산 시장의 성과를 추적합니다.",
		Risk:        models.RiskMedium,
		Tags:        []string{"부동산시장", "금리"},
	},
	{
		Symbol:      "XLE",
		Name:        "Energy Select Sector SPDR Fund",
		Category:    "에너지",
		Expense:     0.13,
		Description: "에너지 섹터에 투자하는 ETF로, 원유 가격과 밀접한 관련이 있습니다.",
		Risk:        models.RiskHigh,
		Tags:        []string{"원유가격", "에너지수요"},
	},
}

var bySymbol = func() map[string]Info {
	m := make(map[string]Info, len(infos))
	for _, info := range infos {
		m[info.Symbol] = info
	}
	return m
}()

// Lookup returns the metadata for symbol.
func Lookup(symbol string) (Info, bool) {
	info, ok := bySymbol[symbol]
	return info, ok
}

// Symbols lists the catalog in its display order.
func Symbols() []string {
	out := make([]string, len(infos))
	for i, info := range infos {
		out[i] = info.Symbol
	}
	return out
}

// Categories lists the distinct catalog categories in display order.
func Categories() []string {
	var out []string
	seen := map[string]bool{}
	for _, info := range infos {
		if !seen[info.Category] {
			seen[info.Category] = true
			out = append(out, info.Category)
		}
	}
	return out
}

func defaultInfo(symbol string) Info {
	return Info{
		Symbol:      symbol,
		Name:        symbol,
		Category:    "기타",
		Expense:     0.5,
		Description: symbol + " ETF",
		Risk:        models.RiskMedium,
		Tags:        []string{"시장전반"},
	}
}

// CompleteETF merges static metadata with a quote. Unknown symbols get
// generic metadata; zero or missing market values are left nil.
func CompleteETF(symbol string, quote *models.TickerData) models.ETF {
	info, ok := Lookup(symbol)
	if !ok {
		info = defaultInfo(symbol)
	}

	etf := models.ETF{
		ID:                 symbol,
		Symbol:             symbol,
		Name:               info.Name,
		Category:           info.Category,
		Expense:            info.Expense,
		Description:        info.Description,
		Risk:               info.Risk,
		CorrelationFactors: append([]string(nil), info.Tags...),
	}
	if quote == nil {
		return etf
	}
	etf.Price = nonZero(quote.Price)
	etf.ChangeRate = nonZero(quote.ChangePercent)
	etf.MarketCap = nonZero(quote.MarketCap)
	if quote.Volume != 0 {
		v := quote.Volume
		etf.Volume = &v
	}
	return etf
}

func nonZero(v float64) *float64 {
	if v == 0 {
		return nil
	}
	return &v
}
