package models

import "time"

// Insight kinds recorded in history entries.
const (
	InsightTypeCity     = "city"
	InsightTypeLocality = "locality"
)

type CityInsight struct {
	ID            int64     `json:"id" gorm:"primaryKey"`
	City          string    `json:"city" gorm:"uniqueIndex"`
	AvgPriceSqFt  float64   `json:"avgPriceSqFt"`
	OneYearGrowth float64   `json:"oneYearGrowth"`
	DemandIndex   float64   `json:"demandIndex"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type LocalityInsight struct {
	ID            int64     `json:"id" gorm:"primaryKey"`
	City          string    `json:"city" gorm:"uniqueIndex:idx_locality_insights_city_locality"`
	Locality      string    `json:"locality" gorm:"uniqueIndex:idx_locality_insights_city_locality"`
	AvgPriceSqFt  float64   `json:"avgPriceSqFt"`
	OneYearGrowth float64   `json:"oneYearGrowth"`
	TrendComment  string    `json:"trendComment"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// YearPrice is one point of a society's historic price series, generated at
// seed time and never recomputed on edit.
type YearPrice struct {
	Year  int `json:"year"`
	Price int `json:"price"`
}

type SocietyInsight struct {
	ID            int64       `json:"id" gorm:"primaryKey"`
	City          string      `json:"city" gorm:"index"`
	Locality      string      `json:"locality"`
	Society       string      `json:"society"`
	AvgPriceSqFt  float64     `json:"avgPriceSqFt"`
	OneYearGrowth float64     `json:"oneYearGrowth"`
	HistoricData  []YearPrice `json:"historicData" gorm:"serializer:json"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}

// InsightHistory is an append-only record of one field-level change to a
// city or locality insight. The newest entry for an insight is consumed by
// a single-step undo.
type InsightHistory struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	InsightType string    `json:"insightType" gorm:"index:idx_insight_history_target"`
	InsightID   int64     `json:"insightId" gorm:"index:idx_insight_history_target"`
	FieldName   string    `json:"fieldName"`
	OldValue    string    `json:"oldValue"`
	NewValue    string    `json:"newValue"`
	ChangedBy   *int64    `json:"changedBy"`
	CreatedAt   time.Time `json:"createdAt"`

	// Filled on history reads, not persisted.
	ChangedByUser *UserSummary `json:"changedByUser,omitempty" gorm:"-"`
}
