// Package auth issues bearer access tokens and rotating refresh tokens, and
// provides the gin middleware that authenticates requests.
package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"homequest/server/internal/apperr"
	"homequest/server/internal/models"
)

const bcryptCost = 10

type Service struct {
	db         *gorm.DB
	logger     *logrus.Logger
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewService(db *gorm.DB, logger *logrus.Logger, secret string, accessTTLHours, refreshTTLDays int) *Service {
	return &Service{
		db:         db,
		logger:     logger,
		secret:     []byte(secret),
		accessTTL:  time.Duration(accessTTLHours) * time.Hour,
		refreshTTL: time.Duration(refreshTTLDays) * 24 * time.Hour,
	}
}

// Session is the outcome of a successful signup, login or refresh.
type Session struct {
	Token         string
	RefreshToken  string
	RefreshExpiry time.Time
	User          *models.User
}

func validRole(role string) bool {
	return role == models.RoleUser || role == models.RoleAgent || role == models.RoleAdmin
}

// Signup registers a user and opens a session for them.
func (s *Service) Signup(name, email, password, role string) (*Session, error) {
	if name == "" || email == "" || password == "" {
		return nil, apperr.Validation("Please provide name, email, and password")
	}
	if role == "" {
		role = models.RoleUser
	}
	if !validRole(role) {
		return nil, apperr.Validation("Invalid role. Must be user, agent, or admin")
	}

	var existing models.User
	err := s.db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, apperr.Validation("User already exists with this email")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Internal("Internal server error", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, apperr.Internal("Internal server error", err)
	}

	user := models.User{Name: name, Email: email, Password: string(hashed), Role: role}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, apperr.Internal("Internal server error", err)
	}

	return s.openSession(&user)
}

// Login authenticates by email and password. Both unknown email and bad
// password come back as the same generic failure.
func (s *Service) Login(email, password string) (*Session, error) {
	if email == "" || password == "" {
		return nil, apperr.Validation("Please provide email and password")
	}

	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Unauthorized("Invalid email or password")
		}
		return nil, apperr.Internal("Internal server error", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apperr.Unauthorized("Invalid email or password")
	}

	return s.openSession(&user)
}

// Refresh rotates a refresh token: the presented token is revoked and a new
// one is issued together with a fresh access token. Revoked, unknown and
// expired tokens are all rejected.
func (s *Service) Refresh(refreshValue string) (*Session, error) {
	if refreshValue == "" {
		return nil, apperr.Unauthorized("No refresh token provided")
	}

	var rt models.RefreshToken
	if err := s.db.Where("token = ?", refreshValue).First(&rt).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Unauthorized("Invalid refresh token")
		}
		return nil, apperr.Internal("Internal server error", err)
	}
	if rt.Revoked {
		return nil, apperr.Unauthorized("Invalid refresh token")
	}
	if rt.ExpiresAt.Before(time.Now()) {
		return nil, apperr.Unauthorized("Refresh token expired")
	}

	var user models.User
	if err := s.db.First(&user, rt.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Unauthorized("User not found")
		}
		return nil, apperr.Internal("Internal server error", err)
	}

	newValue, err := newRefreshValue()
	if err != nil {
		return nil, apperr.Internal("Internal server error", err)
	}
	expiry := time.Now().Add(s.refreshTTL)

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.RefreshToken{}).Where("id = ?", rt.ID).Update("revoked", true).Error; err != nil {
			return err
		}
		return tx.Create(&models.RefreshToken{
			Token:     newValue,
			UserID:    user.ID,
			ExpiresAt: expiry,
		}).Error
	})
	if err != nil {
		return nil, apperr.Internal("Internal server error", err)
	}

	token, err := s.GenerateAccessToken(&user)
	if err != nil {
		return nil, apperr.Internal("Internal server error", err)
	}

	return &Session{Token: token, RefreshToken: newValue, RefreshExpiry: expiry, User: &user}, nil
}

// Logout revokes the presented refresh token. Unknown tokens are ignored.
func (s *Service) Logout(refreshValue string) error {
	if refreshValue == "" {
		return nil
	}
	err := s.db.Model(&models.RefreshToken{}).Where("token = ?", refreshValue).Update("revoked", true).Error
	if err != nil {
		return apperr.Internal("Internal server error", err)
	}
	return nil
}

// GenerateAccessToken signs a bearer token carrying the user's id, email
// and role.
func (s *Service) GenerateAccessToken(user *models.User) (string, error) {
	now := time.Now()
	claims := models.Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// ParseAccessToken verifies a bearer token and returns its claims.
func (s *Service) ParseAccessToken(tokenString string) (*models.Claims, error) {
	claims := &models.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}
	return claims, nil
}

// RefreshTTL exposes the refresh-token lifetime for cookie max-age.
func (s *Service) RefreshTTL() time.Duration {
	return s.refreshTTL
}

func (s *Service) openSession(user *models.User) (*Session, error) {
	token, err := s.GenerateAccessToken(user)
	if err != nil {
		return nil, apperr.Internal("Internal server error", err)
	}

	refreshValue, err := newRefreshValue()
	if err != nil {
		return nil, apperr.Internal("Internal server error", err)
	}
	expiry := time.Now().Add(s.refreshTTL)

	rt := models.RefreshToken{Token: refreshValue, UserID: user.ID, ExpiresAt: expiry}
	if err := s.db.Create(&rt).Error; err != nil {
		return nil, apperr.Internal("Internal server error", err)
	}

	return &Session{Token: token, RefreshToken: refreshValue, RefreshExpiry: expiry, User: user}, nil
}

// newRefreshValue draws an opaque 40-byte random token.
func newRefreshValue() (string, error) {
	buf := make([]byte, 40)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
