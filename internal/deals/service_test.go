package deals

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

func TestService_CreateDeal(t *testing.T) {
	svc := newTestService(t)

	deal, err := svc.CreateDeal("7", models.RoleAgent, "MUM123456", "Ravi", "85L", "floor 3")
	require.NoError(t, err)
	assert.Contains(t, deal.ID, "DEAL")
	assert.Equal(t, "7", deal.AgentID)

	_, err = svc.CreateDeal("7", models.RoleUser, "MUM123456", "Ravi", "85L", "")
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden))

	_, err = svc.CreateDeal("7", models.RoleAgent, "MUM123456", "", "85L", "")
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestService_ListDeals_AgentScoped(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.CreateDeal("7", models.RoleAgent, "MUM123456", "Ravi", "85L", "")
	require.NoError(t, err)
	_, err = svc.CreateDeal("8", models.RoleAgent, "DEL654321", "Mira", "60L", "")
	require.NoError(t, err)

	// An agent sees only their own deals.
	mine, total, err := svc.ListDeals("7", models.RoleAgent, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, mine, 1)
	assert.Equal(t, "7", mine[0].AgentID)

	// An admin sees everything.
	all, total, err := svc.ListDeals("99", models.RoleAdmin, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, all, 2)
}

func TestService_Offers(t *testing.T) {
	svc := newTestService(t)

	offer, err := svc.CreateOffer("MUM123456", "Ravi", "80L", "open to negotiation")
	require.NoError(t, err)
	assert.Contains(t, offer.ID, "OFF")

	_, err = svc.CreateOffer("", "Ravi", "80L", "")
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	offers, total, err := svc.ListOffers(1, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, offers, 1)
}
