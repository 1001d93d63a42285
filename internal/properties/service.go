// Package properties owns listing CRUD and the soft-delete/recovery
// lifecycle. Soft-deleted rows stay in the store but are excluded from every
// public read; fetching one by id reports Gone, not NotFound, so callers can
// tell "never existed" from "was removed".
package properties

import (
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"homequest/server/internal/apperr"
	"homequest/server/internal/ids"
	"homequest/server/internal/models"
)

const (
	DefaultPageSize     = 12
	DefaultTrendingSize = 6
	defaultDemand       = 50
	defaultImage        = "https://images.unsplash.com/photo-1522708323590-d24dbb6b0267?w=400"
)

type Service struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewService(db *gorm.DB, logger *logrus.Logger) *Service {
	return &Service{db: db, logger: logger}
}

// ListFilter narrows the public property listing.
type ListFilter struct {
	City     string
	Type     string
	SellerID *int64
	Page     int
}

// List returns non-deleted properties newest-first, paginated.
func (s *Service) List(filter ListFilter) ([]models.Property, int64, error) {
	page := filter.Page
	if page < 1 {
		page = 1
	}

	query := s.db.Model(&models.Property{}).Where("deleted_at IS NULL")
	if filter.City != "" {
		query = query.Where("city = ?", filter.City)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.SellerID != nil {
		query = query.Where("seller_id = ?", *filter.SellerID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperr.Internal("Failed to fetch properties", err)
	}

	var result []models.Property
	err := query.
		Order("created_at DESC").
		Offset((page - 1) * DefaultPageSize).
		Limit(DefaultPageSize).
		Find(&result).Error
	if err != nil {
		return nil, 0, apperr.Internal("Failed to fetch properties", err)
	}
	return result, total, nil
}

// GetByID fetches one property. Soft-deleted rows yield Gone.
func (s *Service) GetByID(id string) (*models.Property, error) {
	if id == "" {
		return nil, apperr.Validation("Property ID is required")
	}

	var property models.Property
	if err := s.db.First(&property, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Property not found")
		}
		return nil, apperr.Internal("Failed to fetch property", err)
	}

	if property.IsDeleted() {
		return nil, apperr.Gone("Property has been deleted by the admin")
	}
	return &property, nil
}

// Trending returns the highest-demand properties.
func (s *Service) Trending(limit int) ([]models.Property, error) {
	if limit < 1 {
		limit = DefaultTrendingSize
	}
	var result []models.Property
	err := s.db.
		Where("deleted_at IS NULL").
		Order("demand DESC").
		Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, apperr.Internal("Failed to fetch trending properties", err)
	}
	return result, nil
}

// CreateInput holds the caller-supplied fields for a new property.
type CreateInput struct {
	ID           string   `json:"id"`
	City         string   `json:"city"`
	Locality     string   `json:"locality"`
	Type         string   `json:"type"`
	Price        string   `json:"price"`
	PricePerUnit int      `json:"pricePerUnit"`
	Area         string   `json:"area"`
	Demand       int      `json:"demand"`
	Views        int      `json:"views"`
	Image        string   `json:"image"`
	Images       []string `json:"images"`
	Description  string   `json:"description"`
}

// Create adds a listing for an agent or admin seller. A missing id is
// generated from the city prefix plus a timestamp suffix.
func (s *Service) Create(sellerID *int64, actorRole string, input CreateInput) (*models.Property, error) {
	if actorRole != models.RoleAgent && actorRole != models.RoleAdmin {
		return nil, apperr.Forbidden("Only agents or admins can create properties")
	}
	if input.City == "" || input.Locality == "" || input.Type == "" || input.Price == "" {
		return nil, apperr.Validation("Missing required fields: city, locality, type, price")
	}

	id := input.ID
	if id == "" {
		id = ids.Property(input.City)
	}
	demand := input.Demand
	if demand == 0 {
		demand = defaultDemand
	}
	image := input.Image
	if image == "" {
		image = defaultImage
	}
	images := input.Images
	if images == nil {
		images = []string{}
	}

	property := models.Property{
		ID:           id,
		SellerID:     sellerID,
		City:         input.City,
		Locality:     input.Locality,
		Type:         input.Type,
		Price:        input.Price,
		PricePerUnit: input.PricePerUnit,
		Area:         input.Area,
		Demand:       demand,
		Views:        input.Views,
		Image:        image,
		Images:       images,
		Description:  input.Description,
	}
	if err := s.db.Create(&property).Error; err != nil {
		return nil, apperr.Internal("Failed to create property", err)
	}
	return &property, nil
}

// UpdateInput carries optional new values for a property's mutable fields.
type UpdateInput struct {
	City         *string   `json:"city"`
	Locality     *string   `json:"locality"`
	Type         *string   `json:"type"`
	Price        *string   `json:"price"`
	PricePerUnit *int      `json:"pricePerUnit"`
	Area         *string   `json:"area"`
	Demand       *int      `json:"demand"`
	Views        *int      `json:"views"`
	Image        *string   `json:"image"`
	Images       *[]string `json:"images"`
	Description  *string   `json:"description"`
}

// Update patches a property. Only the owning seller or an admin may update.
func (s *Service) Update(id string, actorID int64, actorRole string, input UpdateInput) (*models.Property, error) {
	var existing models.Property
	if err := s.db.First(&existing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Property not found")
		}
		return nil, apperr.Internal("Failed to update property", err)
	}

	if existing.SellerID != nil && *existing.SellerID != actorID && actorRole != models.RoleAdmin {
		return nil, apperr.Forbidden("Not authorized to update this property")
	}

	updates := map[string]interface{}{}
	if input.City != nil {
		updates["city"] = *input.City
	}
	if input.Locality != nil {
		updates["locality"] = *input.Locality
	}
	if input.Type != nil {
		updates["type"] = *input.Type
	}
	if input.Price != nil {
		updates["price"] = *input.Price
	}
	if input.PricePerUnit != nil {
		updates["price_per_unit"] = *input.PricePerUnit
	}
	if input.Area != nil {
		updates["area"] = *input.Area
	}
	if input.Demand != nil {
		updates["demand"] = *input.Demand
	}
	if input.Views != nil {
		updates["views"] = *input.Views
	}
	if input.Image != nil {
		updates["image"] = *input.Image
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}

	if len(updates) > 0 {
		if err := s.db.Model(&existing).Updates(updates).Error; err != nil {
			return nil, apperr.Internal("Failed to update property", err)
		}
	}
	if input.Images != nil {
		existing.Images = *input.Images
		if err := s.db.Model(&existing).Update("images", existing.Images).Error; err != nil {
			return nil, apperr.Internal("Failed to update property", err)
		}
	}

	var updated models.Property
	if err := s.db.First(&updated, "id = ?", id).Error; err != nil {
		return nil, apperr.Internal("Failed to update property", err)
	}
	return &updated, nil
}

// Delete soft-deletes a property, stamping when and by whom.
func (s *Service) Delete(id string, actorID int64, actorRole string) error {
	var existing models.Property
	if err := s.db.First(&existing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Property not found")
		}
		return apperr.Internal("Failed to delete property", err)
	}
	if existing.IsDeleted() {
		return apperr.NotFound("Property already deleted")
	}
	if existing.SellerID != nil && *existing.SellerID != actorID && actorRole != models.RoleAdmin {
		return apperr.Forbidden("Not authorized to delete this property")
	}

	now := time.Now()
	updates := map[string]interface{}{
		"deleted_at": &now,
		"deleted_by": actorID,
	}
	if err := s.db.Model(&existing).Updates(updates).Error; err != nil {
		return apperr.Internal("Failed to delete property", err)
	}
	return nil
}

// Recover clears a property's soft-delete pair, restoring it to public
// reads.
func (s *Service) Recover(id string) (*models.Property, error) {
	var existing models.Property
	if err := s.db.First(&existing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Property not found")
		}
		return nil, apperr.Internal("Failed to recover property", err)
	}
	if !existing.IsDeleted() {
		return nil, apperr.InvalidState("Property is not deleted")
	}

	updates := map[string]interface{}{
		"deleted_at": nil,
		"deleted_by": nil,
	}
	if err := s.db.Model(&existing).Updates(updates).Error; err != nil {
		return nil, apperr.Internal("Failed to recover property", err)
	}

	var recovered models.Property
	if err := s.db.First(&recovered, "id = ?", id).Error; err != nil {
		return nil, apperr.Internal("Failed to recover property", err)
	}
	return &recovered, nil
}

// ListDeleted returns soft-deleted properties, newest deletion first. Admin
// surface only; role gating happens at the route.
func (s *Service) ListDeleted(page int) ([]models.Property, int64, error) {
	if page < 1 {
		page = 1
	}

	query := s.db.Model(&models.Property{}).Where("deleted_at IS NOT NULL")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperr.Internal("Failed to fetch deleted properties", err)
	}

	var result []models.Property
	err := query.
		Order("deleted_at DESC").
		Offset((page - 1) * DefaultPageSize).
		Limit(DefaultPageSize).
		Find(&result).Error
	if err != nil {
		return nil, 0, apperr.Internal("Failed to fetch deleted properties", err)
	}
	return result, total, nil
}
