package forecast

import (
	"time"

	"github.com/google/uuid"

	"macromatch-go-api/internal/models"
)

const (
	baseConfidence = 75
	minConfidence  = 45
	maxConfidence  = 95
	keyFactorCount = 5
)

var keyFactorPool = [...]string{
	"경제 성장률 둔화 예상",
	"인플레이션 안정화 신호",
	"중앙은행 금리 정책 변화",
	"지정학적 리스크 완화",
	"기업 실적 개선 기대",
	"원자재 가격 변동",
	"달러 강세/약세 전환",
	"신흥국 경제 불안정",
	"기술주 밸류에이션 조정",
	"ESG 투자 트렌드 확산",
}

var baseRecommendations = [...]string{
	"포트폴리오 다각화를 통한 리스크 분산 권장",
	"단기 변동성에 대비한 현금 비중 유지",
	"섹터별 로테이션 전략 검토",
}

// Confidence scores how much weight the forecast deserves, from 45 to 95.
func Confidence(rng Rand, etfCount, complexity int) int {
	c := float64(baseConfidence)
	switch {
	case etfCount >= 5:
		c += 10
	case etfCount >= 3:
		c += 5
	case etfCount == 1:
		c -= 15
	}
	c -= float64(complexity) * 2
	c -= rng.Float64() * 10

	out := int(round(c))
	return max(minConfidence, min(maxConfidence, out))
}

// KeyFactors samples five distinct drivers from the fixed pool.
func KeyFactors(rng Rand) []string {
	pool := keyFactorPool
	rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	out := make([]string, keyFactorCount)
	copy(out, pool[:keyFactorCount])
	return out
}

func Recommendations(etfCount int) []string {
	out := append([]string{}, baseRecommendations[:]...)
	if etfCount < 3 {
		out = append(out, "ETF 종목 수 확대를 통한 리스크 분산 필요")
	}
	if etfCount >= 5 {
		out = append(out, "성장주 비중 확대 고려", "국제 분산투자 비중 검토")
	} else {
		out = append(out, "헬스케어 및 기술주 비중 조정 고려")
	}
	return out
}

// TrendAnalysis is static; it does not look at any input.
func TrendAnalysis() models.TrendAnalysis {
	return models.TrendAnalysis{
		ShortTerm:  models.TrendNeutral,
		MediumTerm: models.TrendBullish,
		LongTerm:   models.TrendBullish,
	}
}

// PredictionInput carries what the generator needs from a portfolio.
type PredictionInput struct {
	StrategyID        string
	ETFCount          int
	Complexity        int
	InitialInvestment float64
}

// Generator assembles full prediction reports.
type Generator struct {
	now func() time.Time
}

// NewGenerator returns a generator reading dates from now. A nil clock
// uses time.Now.
func NewGenerator(now func() time.Time) *Generator {
	if now == nil {
		now = time.Now
	}
	return &Generator{now: now}
}

// Predict draws confidence, key factors and the three scenarios from rng
// in that order.
func (g *Generator) Predict(in PredictionInput, rng Rand) models.PredictionResult {
	today := g.now().UTC()
	complexity := in.Complexity
	if complexity < 1 {
		complexity = 1
	}

	confidence := Confidence(rng, in.ETFCount, complexity)
	factors := KeyFactors(rng)

	scenario := func(t models.ScenarioType) models.PredictionScenario {
		return GenerateScenario(rng, t, BaseReturn(t), in.InitialInvestment, today)
	}

	return models.PredictionResult{
		ID:             uuid.NewString(),
		StrategyID:     in.StrategyID + "-prediction",
		PredictionDate: today.Format(dateLayout),
		ForecastPeriod: models.Period{
			Start: today.Format(dateLayout),
			End:   today.AddDate(0, 0, horizonDays).Format(dateLayout),
		},
		Confidence:      confidence,
		KeyFactors:      factors,
		Recommendations: Recommendations(in.ETFCount),
		TrendAnalysis:   TrendAnalysis(),
		Scenarios: models.Scenarios{
			Optimistic:  scenario(models.ScenarioOptimistic),
			Realistic:   scenario(models.ScenarioRealistic),
			Pessimistic: scenario(models.ScenarioPessimistic),
		},
	}
}
