package properties

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

func createListing(t *testing.T, svc *Service, sellerID int64, city string) *models.Property {
	t.Helper()
	property, err := svc.Create(&sellerID, models.RoleAgent, CreateInput{
		City:     city,
		Locality: "Green Park",
		Type:     "Apartment",
		Price:    "85L",
	})
	require.NoError(t, err)
	return property
}

func TestService_Create(t *testing.T) {
	svc := newTestService(t)

	property := createListing(t, svc, 1, "Mumbai")
	assert.Equal(t, "MUM", property.ID[:3])
	assert.Equal(t, defaultDemand, property.Demand)
	assert.NotEmpty(t, property.Image)
	assert.NotNil(t, property.Images)
}

func TestService_Create_RoleAndValidation(t *testing.T) {
	svc := newTestService(t)
	sellerID := int64(1)

	_, err := svc.Create(&sellerID, models.RoleUser, CreateInput{
		City: "Mumbai", Locality: "Green Park", Type: "Apartment", Price: "85L",
	})
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden))

	_, err = svc.Create(&sellerID, models.RoleAgent, CreateInput{City: "Mumbai"})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestService_GetByID_GoneVsNotFound(t *testing.T) {
	svc := newTestService(t)

	property := createListing(t, svc, 1, "Mumbai")

	fetched, err := svc.GetByID(property.ID)
	require.NoError(t, err)
	assert.Equal(t, property.ID, fetched.ID)

	// Never existed: NotFound.
	_, err = svc.GetByID("MUM000000")
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	// Soft-deleted: Gone, not NotFound.
	require.NoError(t, svc.Delete(property.ID, 1, models.RoleAgent))
	_, err = svc.GetByID(property.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindGone))
	assert.Equal(t, "Property has been deleted by the admin", err.Error())
}

func TestService_Delete(t *testing.T) {
	svc := newTestService(t)

	property := createListing(t, svc, 1, "Mumbai")

	// A different non-admin seller may not delete.
	err := svc.Delete(property.ID, 2, models.RoleAgent)
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden))

	// An admin may.
	require.NoError(t, svc.Delete(property.ID, 99, models.RoleAdmin))

	// Deleting again reads as absent.
	err = svc.Delete(property.ID, 99, models.RoleAdmin)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
	assert.Equal(t, "Property already deleted", err.Error())
}

func TestService_DeleteStampsActor(t *testing.T) {
	svc := newTestService(t)

	property := createListing(t, svc, 1, "Mumbai")
	require.NoError(t, svc.Delete(property.ID, 99, models.RoleAdmin))

	deleted, _, err := svc.ListDeleted(1)
	require.NoError(t, err)
	require.Len(t, deleted, 1)
	require.NotNil(t, deleted[0].DeletedAt)
	require.NotNil(t, deleted[0].DeletedBy)
	assert.Equal(t, int64(99), *deleted[0].DeletedBy)
}

func TestService_Recover(t *testing.T) {
	svc := newTestService(t)

	property := createListing(t, svc, 1, "Mumbai")

	// Recovering a live property is an invalid transition.
	_, err := svc.Recover(property.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindInvalidState))

	require.NoError(t, svc.Delete(property.ID, 1, models.RoleAdmin))

	recovered, err := svc.Recover(property.ID)
	require.NoError(t, err)
	assert.Nil(t, recovered.DeletedAt)
	assert.Nil(t, recovered.DeletedBy)

	// Back in public reads.
	_, err = svc.GetByID(property.ID)
	assert.NoError(t, err)

	deleted, total, err := svc.ListDeleted(1)
	require.NoError(t, err)
	assert.Empty(t, deleted)
	assert.Zero(t, total)
}

func TestService_List_ExcludesDeleted(t *testing.T) {
	svc := newTestService(t)

	kept := createListing(t, svc, 1, "Mumbai")
	removed := createListing(t, svc, 1, "Delhi")
	require.NoError(t, svc.Delete(removed.ID, 1, models.RoleAgent))

	result, total, err := svc.List(ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, result, 1)
	assert.Equal(t, kept.ID, result[0].ID)
}

func TestService_List_Filters(t *testing.T) {
	svc := newTestService(t)

	createListing(t, svc, 1, "Mumbai")
	createListing(t, svc, 2, "Delhi")

	byCity, total, err := svc.List(ListFilter{City: "Delhi"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, byCity, 1)
	assert.Equal(t, "Delhi", byCity[0].City)

	seller := int64(2)
	bySeller, _, err := svc.List(ListFilter{SellerID: &seller})
	require.NoError(t, err)
	require.Len(t, bySeller, 1)
	assert.Equal(t, "Delhi", bySeller[0].City)
}

func TestService_Trending(t *testing.T) {
	svc := newTestService(t)
	sellerID := int64(1)

	low, err := svc.Create(&sellerID, models.RoleAgent, CreateInput{
		City: "Mumbai", Locality: "A", Type: "Apartment", Price: "50L", Demand: 40,
	})
	require.NoError(t, err)
	high, err := svc.Create(&sellerID, models.RoleAgent, CreateInput{
		City: "Delhi", Locality: "B", Type: "Apartment", Price: "90L", Demand: 95,
	})
	require.NoError(t, err)
	hidden, err := svc.Create(&sellerID, models.RoleAgent, CreateInput{
		City: "Pune", Locality: "C", Type: "Apartment", Price: "70L", Demand: 99,
	})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(hidden.ID, 1, models.RoleAgent))

	trending, err := svc.Trending(0)
	require.NoError(t, err)
	require.Len(t, trending, 2)
	assert.Equal(t, high.ID, trending[0].ID)
	assert.Equal(t, low.ID, trending[1].ID)
}

func TestService_Update(t *testing.T) {
	svc := newTestService(t)

	property := createListing(t, svc, 1, "Mumbai")

	price := "95L"
	updated, err := svc.Update(property.ID, 1, models.RoleAgent, UpdateInput{Price: &price})
	require.NoError(t, err)
	assert.Equal(t, "95L", updated.Price)
	assert.Equal(t, "Mumbai", updated.City)

	// Non-owner non-admin cannot touch it.
	_, err = svc.Update(property.ID, 2, models.RoleAgent, UpdateInput{Price: &price})
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden))

	// Admin can.
	images := []string{"https://example.com/a.jpg"}
	updated, err = svc.Update(property.ID, 2, models.RoleAdmin, UpdateInput{Images: &images})
	require.NoError(t, err)
	assert.Equal(t, images, updated.Images)
}
