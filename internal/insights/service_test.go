package insights

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homequest/server/internal/apperr"
	"homequest/server/internal/database"
	"homequest/server/internal/models"
)

func newTestService(t *testing.T) *Service {
	db, err := database.NewMemoryDatabase()
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())
	t.Cleanup(func() { db.Close() })

	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	return NewService(db.DB(), logger)
}

func floatPtr(v float64) *float64 { return &v }
func strPtr(v string) *string     { return &v }

func TestService_UpdateCity_RecordsHistory(t *testing.T) {
	svc := newTestService(t)

	city, err := svc.CreateCity("Testville", 10000, 5, 70)
	require.NoError(t, err)

	actor := int64(42)
	updated, err := svc.UpdateCity(city.ID, CityUpdate{AvgPriceSqFt: floatPtr(12000)}, &actor)
	require.NoError(t, err)
	assert.Equal(t, 12000.0, updated.AvgPriceSqFt)

	history, err := svc.History(models.InsightTypeCity, city.ID, 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, FieldAvgPriceSqFt, history[0].FieldName)
	assert.Equal(t, "10000", history[0].OldValue)
	assert.Equal(t, "12000", history[0].NewValue)
	require.NotNil(t, history[0].ChangedBy)
	assert.Equal(t, actor, *history[0].ChangedBy)
}

func TestService_UpdateCity_NoOpWritesNothing(t *testing.T) {
	svc := newTestService(t)

	city, err := svc.CreateCity("Testville", 10000, 5, 70)
	require.NoError(t, err)

	// Same value: no change, no history entry.
	_, err = svc.UpdateCity(city.ID, CityUpdate{AvgPriceSqFt: floatPtr(10000)}, nil)
	require.NoError(t, err)

	// All fields nil: also a no-op.
	_, err = svc.UpdateCity(city.ID, CityUpdate{}, nil)
	require.NoError(t, err)

	history, err := svc.History(models.InsightTypeCity, city.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestService_UpdateCity_OneEntryPerChangedField(t *testing.T) {
	svc := newTestService(t)

	city, err := svc.CreateCity("Testville", 10000, 5, 70)
	require.NoError(t, err)

	_, err = svc.UpdateCity(city.ID, CityUpdate{
		AvgPriceSqFt: floatPtr(11000),
		DemandIndex:  floatPtr(80),
	}, nil)
	require.NoError(t, err)

	history, err := svc.History(models.InsightTypeCity, city.ID, 0)
	require.NoError(t, err)
	assert.Len(t, history, 2)
}

func TestService_UpdateCity_NotFound(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.UpdateCity(999, CityUpdate{AvgPriceSqFt: floatPtr(1)}, nil)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestService_Undo_RevertsLastChange(t *testing.T) {
	svc := newTestService(t)

	city, err := svc.CreateCity("Testville", 10000, 5, 70)
	require.NoError(t, err)

	_, err = svc.UpdateCity(city.ID, CityUpdate{AvgPriceSqFt: floatPtr(12000)}, nil)
	require.NoError(t, err)

	reverted, err := svc.Undo(models.InsightTypeCity, city.ID)
	require.NoError(t, err)
	assert.Equal(t, 10000.0, reverted.(*models.CityInsight).AvgPriceSqFt)

	// The consumed entry is gone; a second undo has nothing left.
	_, err = svc.Undo(models.InsightTypeCity, city.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
	assert.Equal(t, "No history found to undo", err.Error())
}

func TestService_Undo_IsLIFOPerField(t *testing.T) {
	svc := newTestService(t)

	city, err := svc.CreateCity("Testville", 10000, 5, 70)
	require.NoError(t, err)

	// One update touching two fields writes two entries; each undo
	// consumes exactly one, newest first.
	_, err = svc.UpdateCity(city.ID, CityUpdate{
		AvgPriceSqFt: floatPtr(11000),
		DemandIndex:  floatPtr(80),
	}, nil)
	require.NoError(t, err)

	first, err := svc.Undo(models.InsightTypeCity, city.ID)
	require.NoError(t, err)
	assert.Equal(t, 70.0, first.(*models.CityInsight).DemandIndex)
	assert.Equal(t, 11000.0, first.(*models.CityInsight).AvgPriceSqFt)

	second, err := svc.Undo(models.InsightTypeCity, city.ID)
	require.NoError(t, err)
	assert.Equal(t, 10000.0, second.(*models.CityInsight).AvgPriceSqFt)

	_, err = svc.Undo(models.InsightTypeCity, city.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestService_Undo_InvalidType(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Undo("society", 1)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestService_Undo_RestoresLocalityComment(t *testing.T) {
	svc := newTestService(t)

	locality, err := svc.CreateLocality("Testville", "Old Town", 9000, 3, "Stable")
	require.NoError(t, err)

	_, err = svc.UpdateLocality(locality.ID, LocalityUpdate{TrendComment: strPtr("Rising fast")}, nil)
	require.NoError(t, err)

	reverted, err := svc.Undo(models.InsightTypeLocality, locality.ID)
	require.NoError(t, err)
	assert.Equal(t, "Stable", reverted.(*models.LocalityInsight).TrendComment)
}

func TestService_History_DenormalizesUser(t *testing.T) {
	svc := newTestService(t)

	user := models.User{Name: "Asha", Email: "asha@example.com", Role: models.RoleAdmin}
	require.NoError(t, svc.db.Create(&user).Error)

	city, err := svc.CreateCity("Testville", 10000, 5, 70)
	require.NoError(t, err)

	_, err = svc.UpdateCity(city.ID, CityUpdate{OneYearGrowth: floatPtr(6.5)}, &user.ID)
	require.NoError(t, err)

	history, err := svc.History(models.InsightTypeCity, city.ID, 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.NotNil(t, history[0].ChangedByUser)
	assert.Equal(t, "asha@example.com", history[0].ChangedByUser.Email)
}

func TestService_History_ScopedToInsight(t *testing.T) {
	svc := newTestService(t)

	cityA, err := svc.CreateCity("Aville", 10000, 5, 70)
	require.NoError(t, err)
	cityB, err := svc.CreateCity("Bville", 8000, 4, 60)
	require.NoError(t, err)

	_, err = svc.UpdateCity(cityA.ID, CityUpdate{AvgPriceSqFt: floatPtr(10500)}, nil)
	require.NoError(t, err)

	history, err := svc.History(models.InsightTypeCity, cityB.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestService_GetCityByName(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.CreateCity("Testville", 10000, 5, 70)
	require.NoError(t, err)

	city, err := svc.GetCityByName("Testville")
	require.NoError(t, err)
	assert.Equal(t, 10000.0, city.AvgPriceSqFt)

	_, err = svc.GetCityByName("Nowhere")
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	_, err = svc.GetCityByName("")
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestService_ListLocalities_Search(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.CreateLocality("Testville", "Green Park", 9000, 3, "")
	require.NoError(t, err)
	_, err = svc.CreateLocality("Testville", "Old Town", 8500, 2, "")
	require.NoError(t, err)

	all, err := svc.ListLocalities("Testville", "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	matched, err := svc.ListLocalities("Testville", "Green")
	require.NoError(t, err)
	require.Len(t, matched, 1)
	assert.Equal(t, "Green Park", matched[0].Locality)

	_, err = svc.ListLocalities("", "")
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}
