package models

import "time"

// Category is the macroeconomic family an indicator belongs to.
type Category string

const (
	CategoryInterestRate  Category = "interest-rate"
	CategoryInflation     Category = "inflation"
	CategoryEmployment    Category = "employment"
	CategoryEnergy        Category = "energy"
	CategoryCurrency      Category = "currency"
	CategoryGrowth        Category = "growth"
	CategoryHousing       Category = "housing"
	CategoryTrade         Category = "trade"
	CategorySentiment     Category = "sentiment"
	CategoryManufacturing Category = "manufacturing"
	CategoryGovernment    Category = "government"
	CategoryMarket        Category = "market"
)

// Categories lists every category in declaration order.
var Categories = []Category{
	CategoryInterestRate,
	CategoryInflation,
	CategoryEmployment,
	CategoryEnergy,
	CategoryCurrency,
	CategoryGrowth,
	CategoryHousing,
	CategoryTrade,
	CategorySentiment,
	CategoryManufacturing,
	CategoryGovernment,
	CategoryMarket,
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Frequency is how often an indicator is published.
type Frequency string

const (
	FrequencyDaily     Frequency = "daily"
	FrequencyWeekly    Frequency = "weekly"
	FrequencyMonthly   Frequency = "monthly"
	FrequencyQuarterly Frequency = "quarterly"
	FrequencyIrregular Frequency = "irregular"
)

// Indicator is one macro reading. ChangeRate is the raw signed delta; its
// unit depends on the category and is not normalized.
type Indicator struct {
	ID            string    `json:"id" validate:"required"`
	Name          string    `json:"name" validate:"required"`
	Category      Category  `json:"category" validate:"required,category"`
	Value         float64   `json:"value"`
	PreviousValue float64   `json:"previousValue"`
	ChangeRate    float64   `json:"changeRate"`
	Unit          string    `json:"unit"`
	Frequency     Frequency `json:"frequency,omitempty" validate:"omitempty,oneof=daily weekly monthly quarterly irregular"`
	Description   string    `json:"description,omitempty"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
