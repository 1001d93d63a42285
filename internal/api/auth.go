package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"homequest/server/internal/auth"
	"homequest/server/internal/models"
)

const refreshCookieName = "refreshToken"

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func publicUser(u *models.User) gin.H {
	return gin.H{"id": u.ID, "name": u.Name, "email": u.Email, "role": u.Role}
}

func (h *Handler) setRefreshCookie(c *gin.Context, value string) {
	maxAge := int(h.auth.RefreshTTL().Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(refreshCookieName, value, maxAge, "/", "", h.cfg.SecureCookies, true)
}

func (h *Handler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}

	session, err := h.auth.Signup(req.Name, req.Email, req.Password, req.Role)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.setRefreshCookie(c, session.RefreshToken)
	h.ok(c, http.StatusCreated, gin.H{
		"message": "User created successfully",
		"token":   session.Token,
		"user":    publicUser(session.User),
	})
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}

	session, err := h.auth.Login(req.Email, req.Password)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.setRefreshCookie(c, session.RefreshToken)
	h.ok(c, http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   session.Token,
		"user":    publicUser(session.User),
	})
}

func (h *Handler) Refresh(c *gin.Context) {
	refreshValue, _ := c.Cookie(refreshCookieName)

	session, err := h.auth.Refresh(refreshValue)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.setRefreshCookie(c, session.RefreshToken)
	h.ok(c, http.StatusOK, gin.H{"token": session.Token})
}

func (h *Handler) Logout(c *gin.Context) {
	refreshValue, _ := c.Cookie(refreshCookieName)
	if err := h.auth.Logout(refreshValue); err != nil {
		h.fail(c, err)
		return
	}

	c.SetCookie(refreshCookieName, "", -1, "/", "", h.cfg.SecureCookies, true)
	h.ok(c, http.StatusOK, gin.H{})
}

// Profile returns the authenticated user's own record.
func (h *Handler) Profile(c *gin.Context) {
	id, ok := auth.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized"})
		return
	}

	var user models.User
	if err := h.db.First(&user, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "User not found"})
		return
	}
	h.ok(c, http.StatusOK, gin.H{"data": publicUser(&user)})
}

type UpdateProfileRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UpdateProfile patches the caller's name and/or email, keeping email
// unique.
func (h *Handler) UpdateProfile(c *gin.Context) {
	id, ok := auth.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized"})
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Email != "" {
		updates["email"] = req.Email
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "No valid fields provided"})
		return
	}

	if req.Email != "" {
		var existing models.User
		if err := h.db.Where("email = ?", req.Email).First(&existing).Error; err == nil && existing.ID != id {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Email already in use"})
			return
		}
	}

	if err := h.db.Model(&models.User{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		h.logger.WithError(err).Error("Failed to update profile")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to update profile"})
		return
	}

	var user models.User
	if err := h.db.First(&user, id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to update profile"})
		return
	}
	h.ok(c, http.StatusOK, gin.H{"data": publicUser(&user)})
}
