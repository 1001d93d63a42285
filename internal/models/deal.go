package models

import "time"

// Deal is a persisted record of a finalized (simulated) transaction. AgentID
// is a string so non-user channels (e.g. bank transfers) can stamp a label
// instead of a user id.
type Deal struct {
	ID         string    `json:"id" gorm:"primaryKey"`
	PropertyID string    `json:"propertyId"`
	AgentID    string    `json:"agentId" gorm:"index"`
	BuyerName  string    `json:"buyerName"`
	Price      string    `json:"price"`
	Notes      string    `json:"notes"`
	CreatedAt  time.Time `json:"createdAt"`
}

type Offer struct {
	ID         string    `json:"id" gorm:"primaryKey"`
	PropertyID string    `json:"propertyId"`
	BuyerName  string    `json:"buyerName"`
	OfferPrice string    `json:"offerPrice"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"createdAt"`
}
