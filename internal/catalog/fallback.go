package catalog

import (
	"time"

	"macromatch-go-api/internal/models"
)

// FallbackIndicators is the static macro set served when live series are
// unavailable. Timestamps are set to now.
func FallbackIndicators(now time.Time) []models.Indicator {
	now = now.UTC()
	return []models.Indicator{
		{
			ID:            "1",
			Name:          "기준금리",
			Category:      models.CategoryInterestRate,
			Value:         3.5,
			PreviousValue: 3.25,
			ChangeRate:    0.25,
			Unit:          "%",
			Frequency:     models.FrequencyIrregular,
			Description:   "연방준비제도 이사회(Fed)에서 결정하는 정책금리 (FOMC 회의시마다 발표)",
			UpdatedAt:     now,
		},
		{
			ID:            "4",
			Name:          "소비자물가지수(CPI)",
			Category:      models.CategoryInflation,
			Value:         3.2,
			PreviousValue: 3.7,
			ChangeRate:    -0.5,
			Unit:          "%",
			Frequency:     models.FrequencyMonthly,
			Description:   "소비자가 구매하는 상품과 서비스의 가격 변동을 측정하는 지표",
			UpdatedAt:     now,
		},
		{
			ID:            "7",
			Name:          "실업률",
			Category:      models.CategoryEmployment,
			Value:         3.8,
			PreviousValue: 4.1,
			ChangeRate:    -0.3,
			Unit:          "%",
			Frequency:     models.FrequencyMonthly,
			Description:   "경제활동인구 중 실업자가 차지하는 비율",
			UpdatedAt:     now,
		},
		{
			ID:            "10",
			Name:          "GDP 성장률(연환산)",
			Category:      models.CategoryGrowth,
			Value:         2.1,
			PreviousValue: 1.8,
			ChangeRate:    0.3,
			Unit:          "%",
			Frequency:     models.FrequencyQuarterly,
			Description:   "국내총생산의 전년 동기 대비 성장률 (분기별 발표)",
			UpdatedAt:     now,
		},
		{
			ID:            "31",
			Name:          "S&P 500 지수",
			Category:      models.CategoryMarket,
			Value:         450.23,
			PreviousValue: 444.56,
			ChangeRate:    5.67,
			Unit:          "포인트",
			Frequency:     models.FrequencyDaily,
			Description:   "미국 대표 500개 기업의 주가를 반영한 주식시장 지수",
			UpdatedAt:     now,
		},
	}
}
