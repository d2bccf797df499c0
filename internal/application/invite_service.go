package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/tuanhqv123/news-api/internal/domain/entity"
	"github.com/tuanhqv123/news-api/internal/domain/repository"
	"github.com/tuanhqv123/news-api/internal/infrastructure/supabase"
	"github.com/tuanhqv123/news-api/pkg/helpers"
	"github.com/tuanhqv123/news-api/pkg/mailer"
)

// OTPVerifier is the anonymous-credential slice of the provider API.
type OTPVerifier interface {
	VerifyOTP(ctx context.Context, otpType, tokenHash string) (*supabase.Session, error)
}

// UserAdmin is the service-role slice of the provider API. Handlers never
// hold this directly; it stays behind the services.
type UserAdmin interface {
	UpdateUserByID(ctx context.Context, userID string, attrs supabase.UserAttributes) (*supabase.User, error)
	InviteUserByEmail(ctx context.Context, email string, metadata map[string]any, redirectTo string) (*supabase.User, error)
}

var (
	ErrInviteInvalid  = errors.New("invalid or expired invitation")
	ErrUserRetrieval  = errors.New("provider returned no user record")
	ErrTokenInvalid   = errors.New("invalid or expired invitation token")
	ErrPasswordUpdate = errors.New("password update failed")
)

// InviteService orchestrates the invitation-redemption protocol: advisory
// verification, then re-verification plus the privileged password update.
// It holds no state between calls; token validity and consumption are the
// provider's.
type InviteService struct {
	Verifier    OTPVerifier
	Admin       UserAdmin
	Profiles    repository.ProfileRepository
	Pub         *helpers.RabbitPublisher
	Indexer     *ProfileIndexer
	Logger      *logrus.Logger
	AppName     string
	MailEnabled bool
}

// Invitee is the read-only identity projection returned after a successful
// token verification. Never cached; re-fetched per call.
type Invitee struct {
	UserID       string         `json:"user_id"`
	Email        string         `json:"email"`
	UserMetadata map[string]any `json:"user_metadata"`
}

const otpTypeInvite = "invite"

// VerifyInvite asks the provider to validate the token and returns the
// invited user. Side-effect free from the caller's point of view: a
// still-valid token can be verified again by SetupPassword.
func (s *InviteService) VerifyInvite(ctx context.Context, tokenHash string) (*Invitee, error) {
	sess, err := s.Verifier.VerifyOTP(ctx, otpTypeInvite, tokenHash)
	if err != nil {
		s.Logger.WithError(err).Warn("invite verification rejected by provider")
		return nil, ErrInviteInvalid
	}
	if sess == nil || sess.User == nil {
		s.Logger.Error("provider verified invite but returned no user")
		return nil, ErrUserRetrieval
	}
	md := sess.User.UserMetadata
	if md == nil {
		md = map[string]any{}
	}
	return &Invitee{UserID: sess.User.ID, Email: sess.User.Email, UserMetadata: md}, nil
}

// SetupPassword re-verifies the token and then sets the password through the
// admin API. Verification is repeated here on purpose: the client may have
// skipped the advisory VerifyInvite call, and a prior verification is never
// trusted across requests.
func (s *InviteService) SetupPassword(ctx context.Context, tokenHash, userID, password string) error {
	if _, err := s.Verifier.VerifyOTP(ctx, otpTypeInvite, tokenHash); err != nil {
		s.Logger.WithError(err).WithField("user_id", userID).Warn("setup-password token re-verification failed")
		return ErrTokenInvalid
	}

	u, err := s.Admin.UpdateUserByID(ctx, userID, supabase.UserAttributes{Password: password})
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", userID).Error("provider password update failed")
		return ErrPasswordUpdate
	}

	s.finishRedemption(ctx, u)
	return nil
}

// finishRedemption runs the best-effort follow-ups once the invitation is
// redeemed: profile row, search index, welcome mail. Failures are logged and
// never surfaced; the password is already set.
func (s *InviteService) finishRedemption(ctx context.Context, u *supabase.User) {
	if u == nil || u.ID == "" {
		return
	}

	p := &entity.Profile{
		UserID:      u.ID,
		Email:       u.Email,
		DisplayName: metaString(u.UserMetadata, "display_name"),
		Role:        metaString(u.UserMetadata, "role"),
		ChannelID:   metaString(u.UserMetadata, "channel_id"),
	}
	if !entity.ValidRole(p.Role) {
		p.Role = entity.RoleReader
	}
	if s.Profiles != nil {
		if err := s.Profiles.Upsert(ctx, p); err != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Warn("profile upsert after redemption failed")
		}
	}

	if s.Indexer != nil {
		s.Indexer.Index(ctx, p)
	}

	if s.Pub != nil && s.MailEnabled && u.Email != "" {
		job := mailer.EmailJob{
			To:       u.Email,
			Template: "welcome",
			Data: map[string]any{
				"AppName":     s.AppName,
				"DisplayName": p.DisplayName,
				"Email":       u.Email,
			},
		}
		if err := s.Pub.PublishJSON(ctx, job); err != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Warn("welcome email enqueue failed")
		}
	}
}

func metaString(md map[string]any, key string) string {
	if md == nil {
		return ""
	}
	if v, ok := md[key].(string); ok {
		return v
	}
	return ""
}
