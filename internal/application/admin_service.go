package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/tuanhqv123/news-api/internal/domain/entity"
	"github.com/tuanhqv123/news-api/internal/domain/repository"
	"github.com/tuanhqv123/news-api/internal/infrastructure/supabase"
)

var ErrInvalidRole = errors.New("invalid role")

// AdminService wraps the privileged provider operations behind role-checked
// endpoints: issuing author invitations and changing roles.
type AdminService struct {
	Admin    UserAdmin
	Profiles repository.ProfileRepository
	Indexer  *ProfileIndexer
	Logger   *logrus.Logger
}

type InviteAuthorResult struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// InviteAuthor asks the provider to create the user and email the invite
// link. The metadata rides along until the invitee redeems the token on
// setup-password.
func (s *AdminService) InviteAuthor(ctx context.Context, email, displayName, channelID string) (*InviteAuthorResult, error) {
	metadata := map[string]any{"role": entity.RoleAuthor}
	if displayName != "" {
		metadata["display_name"] = displayName
	}
	if channelID != "" {
		metadata["channel_id"] = channelID
	}

	u, err := s.Admin.InviteUserByEmail(ctx, email, metadata, "")
	if err != nil {
		s.Logger.WithError(err).WithField("email", email).Error("provider invite failed")
		return nil, err
	}
	if u == nil || u.ID == "" {
		return nil, errors.New("invitation failed")
	}
	s.Logger.WithFields(logrus.Fields{"user_id": u.ID, "channel_id": channelID}).Info("author invited")
	return &InviteAuthorResult{UserID: u.ID, Email: u.Email}, nil
}

// SetRole updates the role both in the provider's user metadata and the
// local profile row.
func (s *AdminService) SetRole(ctx context.Context, userID, role string) error {
	if !entity.ValidRole(role) {
		return ErrInvalidRole
	}

	_, err := s.Admin.UpdateUserByID(ctx, userID, supabase.UserAttributes{
		UserMetadata: map[string]any{"role": role},
	})
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", userID).Error("provider role update failed")
		return err
	}

	if err := s.Profiles.SetRole(ctx, userID, role); err != nil {
		s.Logger.WithError(err).WithField("user_id", userID).Warn("profile role update failed")
	}

	if s.Indexer != nil {
		if p, pErr := s.Profiles.GetByUserID(ctx, userID); pErr == nil {
			s.Indexer.Index(ctx, p)
		}
	}
	return nil
}

// SearchUsers exposes the profile index to admins.
func (s *AdminService) SearchUsers(ctx context.Context, q string, size int) ([]map[string]any, error) {
	return s.Indexer.Search(ctx, q, size)
}
