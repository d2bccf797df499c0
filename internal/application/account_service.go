package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/tuanhqv123/news-api/internal/domain/entity"
	"github.com/tuanhqv123/news-api/internal/domain/repository"
	"github.com/tuanhqv123/news-api/internal/infrastructure/supabase"
)

// PasswordAuth is the self-service slice of the provider API (anon key).
type PasswordAuth interface {
	SignUp(ctx context.Context, email, password string, metadata map[string]any) (*supabase.User, error)
	SignInWithPassword(ctx context.Context, email, password string) (*supabase.Session, error)
}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrProfileNotFound    = errors.New("profile not found")
)

// AccountService covers self-service account operations: registration,
// login, and profile reads/updates. Authentication itself is the provider's;
// the profile row adds the app-side role and display data.
type AccountService struct {
	Auth     PasswordAuth
	Profiles repository.ProfileRepository
	Indexer  *ProfileIndexer
	Logger   *logrus.Logger
}

type RegisterResult struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// Register signs the user up with the provider (role defaults to reader) and
// creates the local profile row.
func (s *AccountService) Register(ctx context.Context, email, password, displayName string) (*RegisterResult, error) {
	metadata := map[string]any{"role": entity.RoleReader}
	if displayName != "" {
		metadata["display_name"] = displayName
	}

	u, err := s.Auth.SignUp(ctx, email, password, metadata)
	if err != nil {
		s.Logger.WithError(err).Warn("provider signup rejected")
		return nil, err
	}
	if u == nil || u.ID == "" {
		return nil, errors.New("registration failed")
	}

	p := &entity.Profile{
		UserID:      u.ID,
		Email:       u.Email,
		DisplayName: displayName,
		Role:        entity.RoleReader,
		// Invited users carry a channel assignment in their metadata.
		ChannelID: metaString(u.UserMetadata, "channel_id"),
	}
	if err := s.Profiles.Upsert(ctx, p); err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("profile insert after signup failed")
	}
	s.Indexer.Index(ctx, p)

	return &RegisterResult{UserID: u.ID, Email: u.Email, Role: entity.RoleReader}, nil
}

type LoginUser struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	DisplayName string `json:"display_name,omitempty"`
}

type LoginResult struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	ExpiresIn    int       `json:"expires_in,omitempty"`
	User         LoginUser `json:"user"`
}

// Login runs the provider password grant and decorates the session with the
// app-side role. A missing profile row degrades to the reader role rather
// than failing the login.
func (s *AccountService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	sess, err := s.Auth.SignInWithPassword(ctx, email, password)
	if err != nil {
		s.Logger.WithError(err).Warn("provider login rejected")
		return nil, ErrInvalidCredentials
	}
	if sess == nil || sess.User == nil || sess.AccessToken == "" {
		return nil, ErrInvalidCredentials
	}

	res := &LoginResult{
		AccessToken:  sess.AccessToken,
		RefreshToken: sess.RefreshToken,
		ExpiresIn:    sess.ExpiresIn,
		User:         LoginUser{ID: sess.User.ID, Email: sess.User.Email, Role: entity.RoleReader},
	}
	if p, pErr := s.Profiles.GetByUserID(ctx, sess.User.ID); pErr == nil {
		res.User.Role = p.Role
		res.User.DisplayName = p.DisplayName
	}
	return res, nil
}

func (s *AccountService) GetProfile(ctx context.Context, userID string) (*entity.Profile, error) {
	p, err := s.Profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, ErrProfileNotFound
	}
	return p, nil
}

type UpdateProfileInput struct {
	DisplayName string
	AvatarURL   string
}

// UpdateProfile patches the profile row and reindexes it. Empty fields are
// left untouched.
func (s *AccountService) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*entity.Profile, error) {
	p, err := s.Profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, ErrProfileNotFound
	}
	if in.DisplayName != "" {
		p.DisplayName = in.DisplayName
	}
	if in.AvatarURL != "" {
		p.AvatarURL = in.AvatarURL
	}
	if err := s.Profiles.Update(ctx, p); err != nil {
		return nil, err
	}
	s.Indexer.Index(ctx, p)
	return p, nil
}
