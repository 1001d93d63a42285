package database

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homequest/server/internal/models"
)

func newSeededDB(t *testing.T) *Database {
	db, err := NewMemoryDatabase()
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())
	t.Cleanup(func() { db.Close() })

	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	require.NoError(t, db.Seed(logger))
	return db
}

func TestSeed_PopulatesInsights(t *testing.T) {
	db := newSeededDB(t)

	var cities int64
	require.NoError(t, db.DB().Model(&models.CityInsight{}).Count(&cities).Error)
	assert.Equal(t, int64(len(seedCities)), cities)

	// Every city got localities, every locality got societies.
	var localities, societies int64
	require.NoError(t, db.DB().Model(&models.LocalityInsight{}).Count(&localities).Error)
	require.NoError(t, db.DB().Model(&models.SocietyInsight{}).Count(&societies).Error)
	assert.GreaterOrEqual(t, localities, int64(3*len(seedCities)))
	assert.GreaterOrEqual(t, societies, 2*localities)

	// Societies carry their four-year price series.
	var society models.SocietyInsight
	require.NoError(t, db.DB().First(&society).Error)
	require.Len(t, society.HistoricData, 4)
	assert.Equal(t, 2024, society.HistoricData[3].Year)
	assert.Equal(t, int(society.AvgPriceSqFt), society.HistoricData[3].Price)
}

func TestSeed_PopulatesDemoUsers(t *testing.T) {
	db := newSeededDB(t)

	var agent models.User
	require.NoError(t, db.DB().Where("role = ?", models.RoleAgent).First(&agent).Error)
	assert.NotEmpty(t, agent.Password)
	assert.NotEqual(t, demoPassword, agent.Password)
}

func TestSeed_IsIdempotent(t *testing.T) {
	db := newSeededDB(t)

	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	require.NoError(t, db.Seed(logger))

	var cities int64
	require.NoError(t, db.DB().Model(&models.CityInsight{}).Count(&cities).Error)
	assert.Equal(t, int64(len(seedCities)), cities)
}
