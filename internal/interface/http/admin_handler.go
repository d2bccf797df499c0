package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/tuanhqv123/news-api/internal/application"
	"github.com/tuanhqv123/news-api/pkg/response"
)

// AdminHandler serves role-gated management endpoints. The service-role
// provider credential stays behind AdminService; nothing here ever returns
// it.
type AdminHandler struct {
	Svc    *application.AdminService
	Logger *logrus.Logger
}

func NewAdminHandler(svc *application.AdminService, logger *logrus.Logger) *AdminHandler {
	return &AdminHandler{Svc: svc, Logger: logger}
}

type inviteAuthorRequest struct {
	Email       string `json:"email" binding:"required,email"`
	DisplayName string `json:"display_name"`
	ChannelID   string `json:"channel_id"`
}

type setRoleRequest struct {
	UserID string `json:"user_id" binding:"required"`
	Role   string `json:"role" binding:"required,role"`
}

// InviteAuthor POST /api/auth/admin/invite-author
// The provider emails the invitation; the link lands on the callback route
// and from there the mobile redemption flow takes over.
func (h *AdminHandler) InviteAuthor(c *gin.Context) {
	var req inviteAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidPayload(c, err)
		return
	}

	res, err := h.Svc.InviteAuthor(c.Request.Context(), req.Email, req.DisplayName, req.ChannelID)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "Failed to send invitation", "INVITE_FAILED")
		return
	}
	response.OK(c, http.StatusOK, res, "Author invitation sent successfully")
}

// SetRole POST /api/auth/admin/set-role
func (h *AdminHandler) SetRole(c *gin.Context) {
	var req setRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidPayload(c, err)
		return
	}

	if err := h.Svc.SetRole(c.Request.Context(), req.UserID, req.Role); err != nil {
		if errors.Is(err, application.ErrInvalidRole) {
			response.Fail(c, http.StatusBadRequest, "Invalid role", "INVALID_ROLE")
			return
		}
		response.Fail(c, http.StatusBadRequest, "Failed to update user role", "ROLE_UPDATE_FAILED")
		return
	}
	response.OK(c, http.StatusOK, gin.H{"user_id": req.UserID, "role": req.Role}, "User role updated")
}

// SearchUsers GET /api/auth/admin/users/search?q=&size=
func (h *AdminHandler) SearchUsers(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Fail(c, http.StatusBadRequest, "Query parameter q is required", "MISSING_QUERY")
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))

	hits, err := h.Svc.SearchUsers(c.Request.Context(), q, size)
	if err != nil {
		h.Logger.WithError(err).Warn("user search failed")
		response.Fail(c, http.StatusInternalServerError, "Search unavailable", "SEARCH_FAILED")
		return
	}
	response.OK(c, http.StatusOK, gin.H{"results": hits, "count": len(hits)}, "Search results")
}
