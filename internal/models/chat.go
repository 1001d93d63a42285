package models

import "time"

// Chat statuses. A closed chat never reopens.
const (
	ChatStatusOpen   = "open"
	ChatStatusClosed = "closed"
)

// Chat is an ephemeral buyer-agent conversation tied to one property. Chats
// live only in process memory and are lost on restart; running more than one
// server instance requires externalizing this state.
type Chat struct {
	ID         string     `json:"id"`
	PropertyID string     `json:"propertyId"`
	AgentID    *int64     `json:"agentId"`
	BuyerID    *int64     `json:"buyerId"`
	Messages   []Message  `json:"messages"`
	Status     string     `json:"status"`
	CreatedAt  time.Time  `json:"createdAt"`
	ClosedAt   *time.Time `json:"closedAt,omitempty"`
}

type Message struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	SenderID  *int64    `json:"senderId"`
	CreatedAt time.Time `json:"createdAt"`
}
