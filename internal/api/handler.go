package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"homequest/server/config"
	"homequest/server/internal/apperr"
	"homequest/server/internal/auth"
	"homequest/server/internal/chat"
	"homequest/server/internal/deals"
	"homequest/server/internal/favorites"
	"homequest/server/internal/insights"
	"homequest/server/internal/properties"
	"homequest/server/internal/realtime"
)

type Handler struct {
	cfg        *config.Config
	db         *gorm.DB
	logger     *logrus.Logger
	auth       *auth.Service
	insights   *insights.Service
	properties *properties.Service
	favorites  *favorites.Service
	deals      *deals.Service
	chats      *chat.Service
	hub        *realtime.Hub
}

func NewHandler(
	cfg *config.Config,
	db *gorm.DB,
	logger *logrus.Logger,
	authService *auth.Service,
	insightService *insights.Service,
	propertyService *properties.Service,
	favoriteService *favorites.Service,
	dealService *deals.Service,
	chatService *chat.Service,
	hub *realtime.Hub,
) *Handler {
	return &Handler{
		cfg:        cfg,
		db:         db,
		logger:     logger,
		auth:       authService,
		insights:   insightService,
		properties: propertyService,
		favorites:  favoriteService,
		deals:      dealService,
		chats:      chatService,
		hub:        hub,
	}
}

func statusFor(err error) int {
	switch apperr.KindOf(err) {
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindGone:
		return http.StatusGone
	case apperr.KindInvalidState, apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindForbidden:
		return http.StatusForbidden
	case apperr.KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// fail renders an error as the {success:false, error} envelope. Internal
// failures are logged here, once, at the operation boundary.
func (h *Handler) fail(c *gin.Context, err error) {
	if apperr.KindOf(err) == apperr.KindInternal {
		h.logger.WithError(err).WithField("path", c.FullPath()).Error("Request failed")
	}

	body := gin.H{"success": false, "error": err.Error()}
	if apperr.KindOf(err) == apperr.KindGone {
		body["deleted"] = true
	}
	c.JSON(statusFor(err), body)
}

func (h *Handler) ok(c *gin.Context, status int, body gin.H) {
	body["success"] = true
	c.JSON(status, body)
}

// callerID returns the authenticated user's id as a nullable reference.
func callerID(c *gin.Context) *int64 {
	if id, ok := auth.UserID(c); ok {
		return &id
	}
	return nil
}
