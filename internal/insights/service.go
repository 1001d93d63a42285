// Package insights owns the market-statistics records and their field-level
// edit history. Every change to a mutable city/locality field is logged as
// one history entry; the newest entry can be consumed by a single-step undo.
package insights

import (
	"errors"
	"strconv"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"homequest/server/internal/apperr"
	"homequest/server/internal/models"
)

// Mutable field names as they appear in history entries and API payloads.
const (
	FieldAvgPriceSqFt  = "avgPriceSqFt"
	FieldOneYearGrowth = "oneYearGrowth"
	FieldDemandIndex   = "demandIndex"
	FieldTrendComment  = "trendComment"
)

// DefaultHistoryLimit caps history reads when the caller supplies none.
const DefaultHistoryLimit = 50

// numericFields get re-typed from their stringified history value when an
// undo applies them back.
var numericFields = map[string]bool{
	FieldAvgPriceSqFt:  true,
	FieldOneYearGrowth: true,
	FieldDemandIndex:   true,
}

var fieldColumns = map[string]string{
	FieldAvgPriceSqFt:  "avg_price_sq_ft",
	FieldOneYearGrowth: "one_year_growth",
	FieldDemandIndex:   "demand_index",
	FieldTrendComment:  "trend_comment",
}

type Service struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewService(db *gorm.DB, logger *logrus.Logger) *Service {
	return &Service{db: db, logger: logger}
}

// CityUpdate carries the optional new values for a city insight's mutable
// fields. Nil means "leave unchanged".
type CityUpdate struct {
	AvgPriceSqFt  *float64 `json:"avgPriceSqFt"`
	OneYearGrowth *float64 `json:"oneYearGrowth"`
	DemandIndex   *float64 `json:"demandIndex"`
}

// LocalityUpdate is the locality counterpart of CityUpdate.
type LocalityUpdate struct {
	AvgPriceSqFt  *float64 `json:"avgPriceSqFt"`
	OneYearGrowth *float64 `json:"oneYearGrowth"`
	TrendComment  *string  `json:"trendComment"`
}

// fieldChange is one staged history entry plus the column write that
// realizes it.
type fieldChange struct {
	field  string
	old    string
	new    string
	column string
	value  interface{}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func stageFloat(changes []fieldChange, field string, current float64, proposed *float64) []fieldChange {
	if proposed == nil || *proposed == current {
		return changes
	}
	return append(changes, fieldChange{
		field:  field,
		old:    formatFloat(current),
		new:    formatFloat(*proposed),
		column: fieldColumns[field],
		value:  *proposed,
	})
}

func stageString(changes []fieldChange, field string, current string, proposed *string) []fieldChange {
	if proposed == nil || *proposed == current {
		return changes
	}
	return append(changes, fieldChange{
		field:  field,
		old:    current,
		new:    *proposed,
		column: fieldColumns[field],
		value:  *proposed,
	})
}

// applyChanges writes the staged history entries and the insight row inside
// one transaction, so history never reflects a change that was not applied
// (or vice versa). No-op change sets write nothing.
func (s *Service) applyChanges(insightType string, insightID int64, changes []fieldChange, actorID *int64, target interface{}) error {
	if len(changes) == 0 {
		return nil
	}

	entries := make([]models.InsightHistory, 0, len(changes))
	updates := make(map[string]interface{}, len(changes))
	for _, ch := range changes {
		entries = append(entries, models.InsightHistory{
			InsightType: insightType,
			InsightID:   insightID,
			FieldName:   ch.field,
			OldValue:    ch.old,
			NewValue:    ch.new,
			ChangedBy:   actorID,
		})
		updates[ch.column] = ch.value
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&entries).Error; err != nil {
			return err
		}
		return tx.Model(target).Where("id = ?", insightID).Updates(updates).Error
	})
}

// UpdateCity applies the changed fields of upd to the city insight, logging
// one history entry per field that actually changed.
func (s *Service) UpdateCity(id int64, upd CityUpdate, actorID *int64) (*models.CityInsight, error) {
	var existing models.CityInsight
	if err := s.db.First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("City insight not found")
		}
		return nil, apperr.Internal("Failed to update city insight", err)
	}

	var changes []fieldChange
	changes = stageFloat(changes, FieldAvgPriceSqFt, existing.AvgPriceSqFt, upd.AvgPriceSqFt)
	changes = stageFloat(changes, FieldOneYearGrowth, existing.OneYearGrowth, upd.OneYearGrowth)
	changes = stageFloat(changes, FieldDemandIndex, existing.DemandIndex, upd.DemandIndex)

	if err := s.applyChanges(models.InsightTypeCity, existing.ID, changes, actorID, &models.CityInsight{}); err != nil {
		return nil, apperr.Internal("Failed to update city insight", err)
	}

	var updated models.CityInsight
	if err := s.db.First(&updated, id).Error; err != nil {
		return nil, apperr.Internal("Failed to update city insight", err)
	}
	return &updated, nil
}

// UpdateLocality is the locality counterpart of UpdateCity.
func (s *Service) UpdateLocality(id int64, upd LocalityUpdate, actorID *int64) (*models.LocalityInsight, error) {
	var existing models.LocalityInsight
	if err := s.db.First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Locality insight not found")
		}
		return nil, apperr.Internal("Failed to update locality insight", err)
	}

	var changes []fieldChange
	changes = stageFloat(changes, FieldAvgPriceSqFt, existing.AvgPriceSqFt, upd.AvgPriceSqFt)
	changes = stageFloat(changes, FieldOneYearGrowth, existing.OneYearGrowth, upd.OneYearGrowth)
	changes = stageString(changes, FieldTrendComment, existing.TrendComment, upd.TrendComment)

	if err := s.applyChanges(models.InsightTypeLocality, existing.ID, changes, actorID, &models.LocalityInsight{}); err != nil {
		return nil, apperr.Internal("Failed to update locality insight", err)
	}

	var updated models.LocalityInsight
	if err := s.db.First(&updated, id).Error; err != nil {
		return nil, apperr.Internal("Failed to update locality insight", err)
	}
	return &updated, nil
}

func validInsightType(insightType string) bool {
	return insightType == models.InsightTypeCity || insightType == models.InsightTypeLocality
}

// Undo reverts the single most recent history entry for the given insight
// and discards it. Strictly LIFO and one field per call: a multi-field
// update takes as many undo calls as it wrote entries. There is no redo.
func (s *Service) Undo(insightType string, id int64) (interface{}, error) {
	if !validInsightType(insightType) {
		return nil, apperr.Validation(`Invalid insight type. Must be "city" or "locality"`)
	}

	var lastChange models.InsightHistory
	err := s.db.
		Where("insight_type = ? AND insight_id = ?", insightType, id).
		Order("created_at DESC, id DESC").
		First(&lastChange).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("No history found to undo")
		}
		return nil, apperr.Internal("Failed to undo insight change", err)
	}

	column, ok := fieldColumns[lastChange.FieldName]
	if !ok {
		return nil, apperr.Internal("Failed to undo insight change", errors.New("unknown history field "+lastChange.FieldName))
	}

	var value interface{} = lastChange.OldValue
	if numericFields[lastChange.FieldName] {
		parsed, err := strconv.ParseFloat(lastChange.OldValue, 64)
		if err != nil {
			return nil, apperr.Internal("Failed to undo insight change", err)
		}
		value = parsed
	}

	var target interface{}
	if insightType == models.InsightTypeCity {
		target = &models.CityInsight{}
	} else {
		target = &models.LocalityInsight{}
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(target).Where("id = ?", id).Update(column, value).Error; err != nil {
			return err
		}
		return tx.Delete(&models.InsightHistory{}, lastChange.ID).Error
	})
	if err != nil {
		return nil, apperr.Internal("Failed to undo insight change", err)
	}

	if insightType == models.InsightTypeCity {
		var reverted models.CityInsight
		if err := s.db.First(&reverted, id).Error; err != nil {
			return nil, apperr.Internal("Failed to undo insight change", err)
		}
		return &reverted, nil
	}
	var reverted models.LocalityInsight
	if err := s.db.First(&reverted, id).Error; err != nil {
		return nil, apperr.Internal("Failed to undo insight change", err)
	}
	return &reverted, nil
}

// History lists entries for an insight newest-first, capped at limit
// (DefaultHistoryLimit when limit <= 0), with the acting user's identity
// denormalized onto each entry.
func (s *Service) History(insightType string, id int64, limit int) ([]models.InsightHistory, error) {
	if !validInsightType(insightType) {
		return nil, apperr.Validation(`Invalid insight type. Must be "city" or "locality"`)
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	var entries []models.InsightHistory
	err := s.db.
		Where("insight_type = ? AND insight_id = ?", insightType, id).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, apperr.Internal("Failed to fetch insight history", err)
	}

	var userIDs []int64
	seen := map[int64]bool{}
	for _, e := range entries {
		if e.ChangedBy != nil && !seen[*e.ChangedBy] {
			seen[*e.ChangedBy] = true
			userIDs = append(userIDs, *e.ChangedBy)
		}
	}

	if len(userIDs) > 0 {
		var users []models.User
		if err := s.db.Where("id IN ?", userIDs).Find(&users).Error; err != nil {
			return nil, apperr.Internal("Failed to fetch insight history", err)
		}
		byID := make(map[int64]*models.UserSummary, len(users))
		for i := range users {
			byID[users[i].ID] = users[i].Summary()
		}
		for i := range entries {
			if entries[i].ChangedBy != nil {
				entries[i].ChangedByUser = byID[*entries[i].ChangedBy]
			}
		}
	}

	return entries, nil
}
