// Package deals persists finalized transactions and buyer offers. Deals are
// created either directly by an agent or as the side effect of closing a
// chat (see internal/chat).
package deals

import (
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"homequest/server/internal/apperr"
	"homequest/server/internal/ids"
	"homequest/server/internal/models"
)

const DefaultPageSize = 12

type Service struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewService(db *gorm.DB, logger *logrus.Logger) *Service {
	return &Service{db: db, logger: logger}
}

// AddDeal records a deal without any actor checks. It is the internal entry
// point used by chat closure and the payment stub; the HTTP path goes
// through CreateDeal.
func (s *Service) AddDeal(propertyID, agentID, buyerName, price, notes string) (*models.Deal, error) {
	deal := models.Deal{
		ID:         ids.Deal(),
		PropertyID: propertyID,
		AgentID:    agentID,
		BuyerName:  buyerName,
		Price:      price,
		Notes:      notes,
	}
	if err := s.db.Create(&deal).Error; err != nil {
		return nil, apperr.Internal("Failed to create deal", err)
	}
	return &deal, nil
}

// CreateDeal records a deal on behalf of an authenticated agent or admin.
func (s *Service) CreateDeal(actorID string, actorRole, propertyID, buyerName, price, notes string) (*models.Deal, error) {
	if actorRole != models.RoleAgent && actorRole != models.RoleAdmin {
		return nil, apperr.Forbidden("Only agents can create deals")
	}
	if propertyID == "" || buyerName == "" || price == "" {
		return nil, apperr.Validation("Missing fields")
	}
	return s.AddDeal(propertyID, actorID, buyerName, price, notes)
}

// ListDeals returns deals newest-first. Agents see only their own deals;
// admins see everything.
func (s *Service) ListDeals(actorID string, actorRole string, page, pageSize int) ([]models.Deal, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	query := s.db.Model(&models.Deal{})
	if actorRole == models.RoleAgent {
		query = query.Where("agent_id = ?", actorID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperr.Internal("Failed to fetch deals", err)
	}

	var result []models.Deal
	err := query.
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&result).Error
	if err != nil {
		return nil, 0, apperr.Internal("Failed to fetch deals", err)
	}
	return result, total, nil
}

// CreateOffer records a buyer's offer on a property.
func (s *Service) CreateOffer(propertyID, buyerName, offerPrice, message string) (*models.Offer, error) {
	if propertyID == "" || buyerName == "" || offerPrice == "" {
		return nil, apperr.Validation("Missing fields")
	}
	offer := models.Offer{
		ID:         ids.Offer(),
		PropertyID: propertyID,
		BuyerName:  buyerName,
		OfferPrice: offerPrice,
		Message:    message,
	}
	if err := s.db.Create(&offer).Error; err != nil {
		return nil, apperr.Internal("Failed to create offer", err)
	}
	return &offer, nil
}

// ListOffers returns offers newest-first, paginated.
func (s *Service) ListOffers(page, pageSize int) ([]models.Offer, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	var total int64
	if err := s.db.Model(&models.Offer{}).Count(&total).Error; err != nil {
		return nil, 0, apperr.Internal("Failed to fetch offers", err)
	}

	var result []models.Offer
	err := s.db.
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&result).Error
	if err != nil {
		return nil, 0, apperr.Internal("Failed to fetch offers", err)
	}
	return result, total, nil
}
