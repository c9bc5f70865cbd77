// Package recommend scores ETFs against macro indicator readings and turns
// the score into a buy/hold/sell call with human readable rationale.
package recommend

import (
	"fmt"
	"math"
	"strings"

	"macromatch-go-api/internal/correlation"
	"macromatch-go-api/internal/models"
)

const (
	trendThreshold = 0.5
	buyThreshold   = 5.0
	sellThreshold  = -5.0
	// fundamental wording switches at a smaller magnitude than the call itself
	fundamentalThreshold = 3.0
	outlookRatio         = 1.5

	markerPositive = "✅"
	markerNegative = "❌"
)

// ScoreResult is the raw outcome of scoring one symbol.
type ScoreResult struct {
	Score           float64
	Reasons         []string
	RiskLevel       models.RiskLevel
	PositiveFactors int
	NegativeFactors int
}

// ClassifyTrend buckets an indicator by its change rate. The bounds are
// exclusive so ±0.5 is neutral.
func ClassifyTrend(ind models.Indicator) models.Trend {
	switch {
	case ind.ChangeRate > trendThreshold:
		return models.TrendBullish
	case ind.ChangeRate < -trendThreshold:
		return models.TrendBearish
	default:
		return models.TrendNeutral
	}
}

// Score computes the weighted macro score of symbol. Reasons keep the order
// of the indicators that produced them.
func Score(symbol string, indicators []models.Indicator) ScoreResult {
	res := ScoreResult{Reasons: []string{}}
	var total float64

	for _, ind := range indicators {
		entry, ok := correlation.Find(ind.Category, symbol)
		if !ok {
			continue
		}

		var factor float64
		switch ClassifyTrend(ind) {
		case models.TrendBullish:
			if entry.Coefficient > 0 {
				factor = entry.Coefficient * 10
			} else {
				factor = -entry.Coefficient * 10
			}
			res.PositiveFactors++
			res.Reasons = append(res.Reasons, fmt.Sprintf("%s %s 상승으로 %s", markerPositive, ind.Name, entry.Rationale))
		case models.TrendBearish:
			if entry.Coefficient > 0 {
				factor = -entry.Coefficient * 10
			} else {
				factor = entry.Coefficient * 10
			}
			res.NegativeFactors++
			res.Reasons = append(res.Reasons, fmt.Sprintf("%s %s 하락으로 %s", markerNegative, ind.Name, entry.Rationale))
		}

		total += factor * entry.Impact.Weight()
	}

	res.Score = roundTenth(total)
	res.RiskLevel = riskLevel(res.PositiveFactors, res.NegativeFactors)
	return res
}

func riskLevel(positive, negative int) models.RiskLevel {
	switch {
	case positive > negative*2:
		return models.RiskLow
	case negative > positive*2:
		return models.RiskHigh
	default:
		return models.RiskMedium
	}
}

// roundTenth rounds to one decimal with halves going up, e.g. -2.25 -> -2.2.
func roundTenth(v float64) float64 {
	return math.Floor(v*10+0.5) / 10
}

// ForScore maps a score onto a call. Both thresholds are exclusive.
func ForScore(score float64) models.Recommendation {
	switch {
	case score > buyThreshold:
		return models.RecommendBuy
	case score < sellThreshold:
		return models.RecommendSell
	default:
		return models.RecommendHold
	}
}

// Outlook summarizes the whole indicator set, not just the indicators
// relevant to a given symbol.
func Outlook(indicators []models.Indicator) models.Outlook {
	var bullish, bearish int
	for _, ind := range indicators {
		switch ClassifyTrend(ind) {
		case models.TrendBullish:
			bullish++
		case models.TrendBearish:
			bearish++
		}
	}
	switch {
	case float64(bullish) > float64(bearish)*outlookRatio:
		return models.OutlookPositive
	case float64(bearish) > float64(bullish)*outlookRatio:
		return models.OutlookNegative
	default:
		return models.OutlookNeutral
	}
}

// Recommend scores etf and wraps the result with a call, summary and
// market outlook.
func Recommend(etf models.ETF, indicators []models.Indicator) models.RecommendationResult {
	scored := Score(etf.Symbol, indicators)
	rec := ForScore(scored.Score)

	return models.RecommendationResult{
		Symbol:         etf.Symbol,
		Recommendation: rec,
		Score:          scored.Score,
		Reasons:        scored.Reasons,
		RiskLevel:      scored.RiskLevel,
		Summary:        summary(rec, displayName(etf)),
		MarketOutlook:  Outlook(indicators),
	}
}

func summary(rec models.Recommendation, name string) string {
	switch rec {
	case models.RecommendBuy:
		return fmt.Sprintf("현재 거시경제 지표가 %s에 유리한 방향으로 움직이고 있습니다.", name)
	case models.RecommendSell:
		return fmt.Sprintf("현재 거시경제 지표가 %s에 불리한 방향으로 움직이고 있습니다.", name)
	default:
		return fmt.Sprintf("현재 거시경제 지표가 %s에 중립적인 영향을 미치고 있습니다.", name)
	}
}

func displayName(etf models.ETF) string {
	if etf.Name != "" {
		return etf.Name
	}
	return etf.Symbol
}

// Analyze builds the detail view for etf. It reuses the recommendation
// reasons and only partitions them by marker.
func Analyze(etf models.ETF, indicators []models.Indicator) (models.RecommendationResult, models.DetailAnalysis) {
	rec := Recommend(etf, indicators)
	name := displayName(etf)

	analysis := models.DetailAnalysis{
		TechnicalAnalysis:   technical(etf.ChangeRate, name),
		FundamentalAnalysis: fundamental(rec.Score, name),
		RiskFactors:         partition(rec.Reasons, markerNegative),
		Opportunities:       partition(rec.Reasons, markerPositive),
	}
	return rec, analysis
}

func technical(changeRate *float64, name string) string {
	switch {
	case changeRate != nil && *changeRate > 0:
		return fmt.Sprintf("%s은(는) 현재 상승 추세를 보이고 있으며, 거시경제 지표도 이를 뒷받침하고 있습니다.", name)
	case changeRate != nil && *changeRate < 0:
		return fmt.Sprintf("%s은(는) 현재 하락 추세를 보이고 있으나, 거시경제 지표 개선으로 반등 가능성이 있습니다.", name)
	default:
		return fmt.Sprintf("%s은(는) 현재 안정적인 움직임을 보이고 있습니다.", name)
	}
}

func fundamental(score float64, name string) string {
	switch {
	case score > fundamentalThreshold:
		return fmt.Sprintf("거시경제 환경이 %s의 성장에 유리한 조건을 제공하고 있습니다.", name)
	case score < -fundamentalThreshold:
		return fmt.Sprintf("현재 거시경제 환경이 %s의 성장에 불리한 영향을 미치고 있습니다.", name)
	default:
		return fmt.Sprintf("거시경제 환경이 %s에 중립적인 영향을 미치고 있습니다.", name)
	}
}

func partition(reasons []string, marker string) []string {
	out := []string{}
	for _, r := range reasons {
		if strings.Contains(r, marker) {
			out = append(out, strings.Replace(r, marker+" ", "", 1))
		}
	}
	return out
}
