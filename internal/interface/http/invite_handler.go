package handlers

import (
	"errors"
	"net/http"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/tuanhqv123/news-api/internal/application"
	"github.com/tuanhqv123/news-api/pkg/response"
)

// Error codes are a stable contract with the mobile client; never rename.
const (
	codeMissingToken          = "MISSING_TOKEN"
	codeInvalidInvite         = "INVALID_INVITE"
	codeUserRetrievalFailed   = "USER_RETRIEVAL_FAILED"
	codeMissingRequiredFields = "MISSING_REQUIRED_FIELDS"
	codePasswordTooShort      = "PASSWORD_TOO_SHORT"
	codeInvalidToken          = "INVALID_TOKEN"
	codePasswordUpdateFailed  = "PASSWORD_UPDATE_FAILED"
	codeInternalError         = "INTERNAL_ERROR"
)

const minPasswordLen = 6

// InviteHandler serves the three-step invitation-redemption surface used by
// the mobile app: the email-link callback, advisory token verification, and
// password setup.
type InviteHandler struct {
	Svc            *application.InviteService
	Logger         *logrus.Logger
	DeepLinkScheme string
}

func NewInviteHandler(svc *application.InviteService, logger *logrus.Logger, deepLinkScheme string) *InviteHandler {
	return &InviteHandler{Svc: svc, Logger: logger, DeepLinkScheme: deepLinkScheme}
}

func (h *InviteHandler) deepLink(tokenHash string) string {
	// Token forwarded verbatim; the scheme name and query key are fixed
	// contract with the mobile client.
	return h.DeepLinkScheme + "://auth/invite?token_hash=" + tokenHash
}

// Callback GET /api/auth/callback?token_hash=...&type=invite
// The provider already verified the email link before redirecting here, so
// no provider call is made: this only routes the token onto a device.
func (h *InviteHandler) Callback(c *gin.Context) {
	tokenHash := c.Query("token_hash")
	if c.Query("type") != "invite" || tokenHash == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid callback parameters"})
		return
	}

	link := h.deepLink(tokenHash)
	if isMobileUserAgent(c.GetHeader("User-Agent")) {
		c.Redirect(http.StatusFound, link)
		return
	}

	// Desktop browser: no app to open, show the link instead.
	c.JSON(http.StatusOK, gin.H{
		"message":   "Please open this link on your mobile device to continue setup",
		"deep_link": link,
	})
}

type verifyInviteRequest struct {
	TokenHash string `json:"token_hash"`
}

// VerifyInvite POST /api/auth/verify-invite {token_hash}
// Advisory check the app runs before showing the password form. Does not
// consume the token; SetupPassword re-verifies regardless.
func (h *InviteHandler) VerifyInvite(c *gin.Context) {
	var req verifyInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.TokenHash == "" {
		response.Fail(c, http.StatusBadRequest, "Token hash is required", codeMissingToken)
		return
	}

	invitee, err := h.Svc.VerifyInvite(c.Request.Context(), req.TokenHash)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrUserRetrieval):
			response.Fail(c, http.StatusInternalServerError, "Failed to retrieve user information", codeUserRetrievalFailed)
		case errors.Is(err, application.ErrInviteInvalid):
			response.Fail(c, http.StatusBadRequest, "Invalid or expired invitation", codeInvalidInvite)
		default:
			h.Logger.WithError(err).Error("verify-invite failed unexpectedly")
			response.Fail(c, http.StatusInternalServerError, "Internal server error", codeInternalError)
		}
		return
	}

	response.OK(c, http.StatusOK, invitee, "Invitation verified successfully")
}

type setupPasswordRequest struct {
	Password  string `json:"password"`
	TokenHash string `json:"token_hash"`
	UserID    string `json:"user_id"`
}

// SetupPassword POST /api/auth/setup-password {password, token_hash, user_id}
func (h *InviteHandler) SetupPassword(c *gin.Context) {
	var req setupPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Password == "" || req.TokenHash == "" || req.UserID == "" {
		response.Fail(c, http.StatusBadRequest, "Password, token hash, and user ID are required", codeMissingRequiredFields)
		return
	}
	// Characters, not bytes: multibyte passwords count per rune, matching
	// the register endpoint's min=6 rule.
	if utf8.RuneCountInString(req.Password) < minPasswordLen {
		response.Fail(c, http.StatusBadRequest, "Password must be at least 6 characters long", codePasswordTooShort)
		return
	}

	err := h.Svc.SetupPassword(c.Request.Context(), req.TokenHash, req.UserID, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrTokenInvalid):
			response.Fail(c, http.StatusBadRequest, "Invalid or expired invitation token", codeInvalidToken)
		case errors.Is(err, application.ErrPasswordUpdate):
			response.Fail(c, http.StatusInternalServerError, "Failed to update password", codePasswordUpdateFailed)
		default:
			h.Logger.WithError(err).Error("setup-password failed unexpectedly")
			response.Fail(c, http.StatusInternalServerError, "Internal server error", codeInternalError)
		}
		return
	}

	response.OK(c, http.StatusOK, nil, "Password set successfully. You can now login with your email and password.")
}
