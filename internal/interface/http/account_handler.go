package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/tuanhqv123/news-api/internal/application"
	"github.com/tuanhqv123/news-api/internal/domain/entity"
	"github.com/tuanhqv123/news-api/pkg/response"
	"github.com/tuanhqv123/news-api/pkg/validation"
)

type AccountHandler struct {
	Svc    *application.AccountService
	Logger *logrus.Logger
}

func NewAccountHandler(svc *application.AccountService, logger *logrus.Logger) *AccountHandler {
	return &AccountHandler{Svc: svc, Logger: logger}
}

type registerRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,pwd"`
	DisplayName string `json:"display_name"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type updateProfileRequest struct {
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url"`
}

// Register POST /api/auth/register
func (h *AccountHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidPayload(c, err)
		return
	}

	res, err := h.Svc.Register(c.Request.Context(), req.Email, req.Password, req.DisplayName)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "Registration failed", "REGISTRATION_FAILED")
		return
	}
	response.OK(c, http.StatusOK, res, "User registered successfully. Please check your email to confirm your account.")
}

// Login POST /api/auth/login
func (h *AccountHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidPayload(c, err)
		return
	}

	res, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.Fail(c, http.StatusUnauthorized, "Invalid credentials", "INVALID_CREDENTIALS")
		return
	}
	response.OK(c, http.StatusOK, res, "Login successful")
}

// Me GET /api/auth/me (Bearer)
func (h *AccountHandler) Me(c *gin.Context) {
	uid := c.GetString("userID")
	p, err := h.Svc.GetProfile(c.Request.Context(), uid)
	if err != nil {
		response.Fail(c, http.StatusNotFound, "User profile not found", "PROFILE_NOT_FOUND")
		return
	}
	response.OK(c, http.StatusOK, profileJSON(p), "User profile retrieved")
}

// UpdateMe PUT /api/auth/me (Bearer)
func (h *AccountHandler) UpdateMe(c *gin.Context) {
	uid := c.GetString("userID")
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidPayload(c, err)
		return
	}

	p, err := h.Svc.UpdateProfile(c.Request.Context(), uid, application.UpdateProfileInput{
		DisplayName: req.DisplayName,
		AvatarURL:   req.AvatarURL,
	})
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "Failed to update profile", "PROFILE_UPDATE_FAILED")
		return
	}
	response.OK(c, http.StatusOK, profileJSON(p), "Profile updated")
}

func profileJSON(p *entity.Profile) gin.H {
	return gin.H{
		"user_id":      p.UserID,
		"email":        p.Email,
		"display_name": p.DisplayName,
		"avatar_url":   p.AvatarURL,
		"role":         p.Role,
		"channel_id":   p.ChannelID,
		"created_at":   p.CreatedAt,
		"updated_at":   p.UpdatedAt,
	}
}

// respondInvalidPayload maps binding errors onto the shared failure shape
// with field details.
func respondInvalidPayload(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, response.Body{
		Success:   false,
		Error:     "Invalid payload",
		ErrorCode: "INVALID_PAYLOAD",
		Data:      validation.ToDetails(err),
	})
}
