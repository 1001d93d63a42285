// Package favorites tracks (user, property) shortlist pairs. The pair is
// unique: re-adding an existing favorite is rejected, never upserted.
package favorites

import (
	"errors"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"homequest/server/internal/apperr"
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

// Add favorites a property for a user.
func (s *Service) Add(userID int64, propertyID string) (*models.Favorite, error) {
	if propertyID == "" {
		return nil, apperr.Validation("Property ID is required")
	}

	var existing models.Favorite
	err := s.db.Where("user_id = ? AND property_id = ?", userID, propertyID).First(&existing).Error
	if err == nil {
		return nil, apperr.Validation("Property is already in favorites")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Internal("Failed to add property to favorites", err)
	}

	favorite := models.Favorite{UserID: userID, PropertyID: propertyID}
	if err := s.db.Create(&favorite).Error; err != nil {
		return nil, apperr.Internal("Failed to add property to favorites", err)
	}
	return &favorite, nil
}

// List returns a user's favorites newest-first, paginated.
func (s *Service) List(userID int64, page, pageSize int) ([]models.Favorite, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	query := s.db.Model(&models.Favorite{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperr.Internal("Failed to fetch favorites", err)
	}

	var result []models.Favorite
	err := query.
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&result).Error
	if err != nil {
		return nil, 0, apperr.Internal("Failed to fetch favorites", err)
	}
	return result, total, nil
}

// Remove deletes a favorite owned by the calling user.
func (s *Service) Remove(id int64, userID int64) error {
	var favorite models.Favorite
	if err := s.db.First(&favorite, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Favorite not found")
		}
		return apperr.Internal("Failed to remove favorite", err)
	}
	if favorite.UserID != userID {
		return apperr.Forbidden("Unauthorized to delete this favorite")
	}

	if err := s.db.Delete(&favorite).Error; err != nil {
		return apperr.Internal("Failed to remove favorite", err)
	}
	return nil
}
