package models

import "time"

type Property struct {
	ID           string     `json:"id" gorm:"primaryKey"`
	SellerID     *int64     `json:"sellerId"`
	City         string     `json:"city" gorm:"index"`
	Locality     string     `json:"locality"`
	Type         string     `json:"type"`
	Price        string     `json:"price"`
	PricePerUnit int        `json:"pricePerUnit"`
	Area         string     `json:"area"`
	Demand       int        `json:"demand"`
	Views        int        `json:"views"`
	Image        string     `json:"image"`
	Images       []string   `json:"images" gorm:"serializer:json"`
	Description  string     `json:"description"`
	DeletedAt    *time.Time `json:"deletedAt" gorm:"index"`
	DeletedBy    *int64     `json:"deletedBy"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// IsDeleted reports whether the property is soft-deleted. DeletedAt and
// DeletedBy are always both set or both cleared.
func (p *Property) IsDeleted() bool {
	return p.DeletedAt != nil
}

type Favorite struct {
	ID         int64     `json:"id" gorm:"primaryKey"`
	UserID     int64     `json:"userId" gorm:"uniqueIndex:idx_favorites_user_property"`
	PropertyID string    `json:"propertyId" gorm:"uniqueIndex:idx_favorites_user_property"`
	CreatedAt  time.Time `json:"createdAt"`
}
