// Package chat implements the buyer-agent conversation flow: an ephemeral
// in-memory chat per property that converts into a persisted deal when it is
// closed. All state transitions broadcast best-effort events to the chat's
// room.
package chat

import (
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"homequest/server/internal/apperr"
	"homequest/server/internal/deals"
	"homequest/server/internal/models"
	"homequest/server/internal/realtime"
)

// Event names published to the chat's room.
const (
	EventChatCreated = "chatCreated"
	EventMessage     = "message"
	EventDealClosed  = "dealClosed"
)

// Defaults stamped on deals synthesized from a chat closure.
const (
	DefaultDealPrice = "Negotiated"
	DefaultDealNotes = "Closed via chat"
)

type Service struct {
	store       *Store
	db          *gorm.DB
	deals       *deals.Service
	broadcaster realtime.Broadcaster
	logger      *logrus.Logger
}

func NewService(store *Store, db *gorm.DB, dealService *deals.Service, broadcaster realtime.Broadcaster, logger *logrus.Logger) *Service {
	return &Service{
		store:       store,
		db:          db,
		deals:       dealService,
		broadcaster: broadcaster,
		logger:      logger,
	}
}

// Identity describes the caller of a chat operation. UserID is nil for
// anonymous buyers.
type Identity struct {
	UserID *int64
	Email  string
	Role   string
}

func room(chatID string) string {
	return "chat:" + chatID
}

// Create opens a chat for a property. A missing agentId falls back to any
// existing agent user; this is a placeholder assignment, not matching, so
// the tie-break is arbitrary.
func (s *Service) Create(propertyID string, agentID *int64, buyerID *int64) (*models.Chat, error) {
	if propertyID == "" {
		return nil, apperr.Validation("propertyId is required")
	}

	if agentID == nil {
		var agent models.User
		err := s.db.Where("role = ?", models.RoleAgent).First(&agent).Error
		if err == nil {
			agentID = &agent.ID
		} else {
			// A chat without an agent is still usable; keep going.
			s.logger.WithError(err).Debug("No agent available for chat assignment")
		}
	}

	chat := &models.Chat{
		ID:         uuid.NewString(),
		PropertyID: propertyID,
		AgentID:    agentID,
		BuyerID:    buyerID,
		Messages:   []models.Message{},
		Status:     models.ChatStatusOpen,
		CreatedAt:  time.Now(),
	}
	s.store.Put(chat)

	s.broadcaster.Publish(room(chat.ID), EventChatCreated, chat)
	return snapshot(chat), nil
}

// Get returns a snapshot of a chat.
func (s *Service) Get(id string) (*models.Chat, error) {
	chat, ok := s.store.Get(id)
	if !ok {
		return nil, apperr.NotFound("Chat not found")
	}
	return chat, nil
}

// PostMessage appends a message to an open chat.
func (s *Service) PostMessage(chatID, text string, senderID *int64) (*models.Message, error) {
	if text == "" {
		return nil, apperr.Validation("Message text is required")
	}

	message := models.Message{
		ID:        uuid.NewString(),
		Text:      text,
		SenderID:  senderID,
		CreatedAt: time.Now(),
	}

	err := s.store.WithChat(chatID, func(chat *models.Chat) error {
		if chat.Status == models.ChatStatusClosed {
			return apperr.InvalidState("Chat is closed")
		}
		chat.Messages = append(chat.Messages, message)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.broadcaster.Publish(room(chatID), EventMessage, map[string]interface{}{
		"chatId":  chatID,
		"message": message,
	})
	return &message, nil
}

// Close terminates a chat and synthesizes a deal from it. The deal is
// persisted first, then the chat is marked closed; the new deal is the
// operation's result. Closure is irreversible.
func (s *Service) Close(chatID, price, notes string, caller Identity) (*models.Deal, error) {
	if price == "" {
		price = DefaultDealPrice
	}
	if notes == "" {
		notes = DefaultDealNotes
	}

	var deal *models.Deal
	err := s.store.WithChat(chatID, func(chat *models.Chat) error {
		if chat.Status == models.ChatStatusClosed {
			return apperr.InvalidState("Chat already closed")
		}

		agentID := ""
		if chat.AgentID != nil {
			agentID = strconv.FormatInt(*chat.AgentID, 10)
		}

		created, err := s.deals.AddDeal(chat.PropertyID, agentID, buyerName(caller, chat), price, notes)
		if err != nil {
			return err
		}
		deal = created

		now := time.Now()
		chat.Status = models.ChatStatusClosed
		chat.ClosedAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.broadcaster.Publish(room(chatID), EventDealClosed, deal)
	return deal, nil
}

// buyerName derives the deal's buyer display name from the caller's
// identity, falling back to a guest label built from the buyer reference.
func buyerName(caller Identity, chat *models.Chat) string {
	if caller.Email != "" {
		return caller.Email
	}
	if chat.BuyerID != nil {
		return "Buyer-" + strconv.FormatInt(*chat.BuyerID, 10)
	}
	return "Buyer-guest"
}
