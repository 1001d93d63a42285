package insights

import (
	"errors"

	"gorm.io/gorm"

	"homequest/server/internal/apperr"
	"homequest/server/internal/models"
)

// ListCities returns all city insights ordered by city name.
func (s *Service) ListCities() ([]models.CityInsight, error) {
	var cities []models.CityInsight
	if err := s.db.Order("city ASC").Find(&cities).Error; err != nil {
		return nil, apperr.Internal("Failed to list cities", err)
	}
	return cities, nil
}

// GetCityByName fetches the insight for one city.
func (s *Service) GetCityByName(name string) (*models.CityInsight, error) {
	if name == "" {
		return nil, apperr.Validation("City name is required")
	}
	var city models.CityInsight
	if err := s.db.Where("city = ?", name).First(&city).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("City insights not found")
		}
		return nil, apperr.Internal("Failed to fetch city insights", err)
	}
	return &city, nil
}

// ListLocalities returns locality insights for a city, optionally narrowed
// by a locality-name substring.
func (s *Service) ListLocalities(city, search string) ([]models.LocalityInsight, error) {
	if city == "" {
		return nil, apperr.Validation("City parameter is required")
	}
	query := s.db.Where("city = ?", city)
	if search != "" {
		query = query.Where("locality LIKE ?", "%"+search+"%")
	}
	var localities []models.LocalityInsight
	if err := query.Find(&localities).Error; err != nil {
		return nil, apperr.Internal("Failed to fetch locality insights", err)
	}
	return localities, nil
}

// ListSocieties returns society insights for a (city, locality) pair.
func (s *Service) ListSocieties(city, locality string) ([]models.SocietyInsight, error) {
	if city == "" || locality == "" {
		return nil, apperr.Validation("Both locality and city parameters are required")
	}
	var societies []models.SocietyInsight
	if err := s.db.Where("city = ? AND locality = ?", city, locality).Find(&societies).Error; err != nil {
		return nil, apperr.Internal("Failed to fetch society insights", err)
	}
	return societies, nil
}

// CreateCity adds a new city insight.
func (s *Service) CreateCity(city string, avgPriceSqFt, oneYearGrowth, demandIndex float64) (*models.CityInsight, error) {
	if city == "" || avgPriceSqFt == 0 {
		return nil, apperr.Validation("City and avgPriceSqFt are required")
	}
	insight := models.CityInsight{
		City:          city,
		AvgPriceSqFt:  avgPriceSqFt,
		OneYearGrowth: oneYearGrowth,
		DemandIndex:   demandIndex,
	}
	if err := s.db.Create(&insight).Error; err != nil {
		return nil, apperr.Internal("Failed to create city insight", err)
	}
	return &insight, nil
}

// CreateLocality adds a new locality insight.
func (s *Service) CreateLocality(city, locality string, avgPriceSqFt, oneYearGrowth float64, trendComment string) (*models.LocalityInsight, error) {
	if city == "" || locality == "" || avgPriceSqFt == 0 {
		return nil, apperr.Validation("City, locality, and avgPriceSqFt are required")
	}
	insight := models.LocalityInsight{
		City:          city,
		Locality:      locality,
		AvgPriceSqFt:  avgPriceSqFt,
		OneYearGrowth: oneYearGrowth,
		TrendComment:  trendComment,
	}
	if err := s.db.Create(&insight).Error; err != nil {
		return nil, apperr.Internal("Failed to create locality insight", err)
	}
	return &insight, nil
}

// DeleteCity removes a city insight.
func (s *Service) DeleteCity(id int64) error {
	if err := s.db.Delete(&models.CityInsight{}, id).Error; err != nil {
		return apperr.Internal("Failed to delete city insight", err)
	}
	return nil
}

// DeleteLocality removes a locality insight.
func (s *Service) DeleteLocality(id int64) error {
	if err := s.db.Delete(&models.LocalityInsight{}, id).Error; err != nil {
		return apperr.Internal("Failed to delete locality insight", err)
	}
	return nil
}
