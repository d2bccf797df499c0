package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanhqv123/news-api/internal/domain/entity"
	"github.com/tuanhqv123/news-api/internal/infrastructure/supabase"
)

type stubAuth struct {
	signUpUser   *supabase.User
	signUpErr    error
	signInSess   *supabase.Session
	signInErr    error
	lastMetadata map[string]any
}

func (s *stubAuth) SignUp(_ context.Context, _, _ string, metadata map[string]any) (*supabase.User, error) {
	s.lastMetadata = metadata
	return s.signUpUser, s.signUpErr
}

func (s *stubAuth) SignInWithPassword(_ context.Context, _, _ string) (*supabase.Session, error) {
	return s.signInSess, s.signInErr
}

func TestRegisterCreatesReaderProfile(t *testing.T) {
	profiles := newMemProfiles()
	auth := &stubAuth{signUpUser: &supabase.User{ID: "u1", Email: "new@example.com"}}
	svc := &AccountService{Auth: auth, Profiles: profiles, Logger: quietLogger()}

	res, err := svc.Register(context.Background(), "new@example.com", "secret123", "New User")
	require.NoError(t, err)
	assert.Equal(t, "u1", res.UserID)
	assert.Equal(t, entity.RoleReader, res.Role)
	assert.Equal(t, entity.RoleReader, auth.lastMetadata["role"])
	assert.Equal(t, "New User", auth.lastMetadata["display_name"])

	p, err := profiles.GetByUserID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleReader, p.Role)
	assert.Equal(t, "New User", p.DisplayName)
}

func TestRegisterPropagatesProviderError(t *testing.T) {
	auth := &stubAuth{signUpErr: errors.New("email already registered")}
	svc := &AccountService{Auth: auth, Profiles: newMemProfiles(), Logger: quietLogger()}

	_, err := svc.Register(context.Background(), "dup@example.com", "secret123", "")
	assert.Error(t, err)
}

func TestLoginDecoratesSessionWithProfileRole(t *testing.T) {
	profiles := newMemProfiles()
	require.NoError(t, profiles.Upsert(context.Background(), &entity.Profile{
		UserID: "u1", Email: "a@example.com", Role: entity.RoleAuthor, DisplayName: "Jess",
	}))
	auth := &stubAuth{signInSess: &supabase.Session{
		AccessToken:  "at",
		RefreshToken: "rt",
		ExpiresIn:    3600,
		User:         &supabase.User{ID: "u1", Email: "a@example.com"},
	}}
	svc := &AccountService{Auth: auth, Profiles: profiles, Logger: quietLogger()}

	res, err := svc.Login(context.Background(), "a@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "at", res.AccessToken)
	assert.Equal(t, entity.RoleAuthor, res.User.Role)
	assert.Equal(t, "Jess", res.User.DisplayName)
}

func TestLoginDegradesToReaderWithoutProfile(t *testing.T) {
	auth := &stubAuth{signInSess: &supabase.Session{
		AccessToken: "at",
		User:        &supabase.User{ID: "ghost", Email: "g@example.com"},
	}}
	svc := &AccountService{Auth: auth, Profiles: newMemProfiles(), Logger: quietLogger()}

	res, err := svc.Login(context.Background(), "g@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleReader, res.User.Role)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	auth := &stubAuth{signInErr: errors.New("invalid grant")}
	svc := &AccountService{Auth: auth, Profiles: newMemProfiles(), Logger: quietLogger()}

	_, err := svc.Login(context.Background(), "a@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUpdateProfilePatchesOnlyProvidedFields(t *testing.T) {
	profiles := newMemProfiles()
	require.NoError(t, profiles.Upsert(context.Background(), &entity.Profile{
		UserID: "u1", Email: "a@example.com", Role: entity.RoleReader,
		DisplayName: "Old Name", AvatarURL: "http://img/old.png",
	}))
	svc := &AccountService{Profiles: profiles, Logger: quietLogger()}

	p, err := svc.UpdateProfile(context.Background(), "u1", UpdateProfileInput{DisplayName: "New Name"})
	require.NoError(t, err)
	assert.Equal(t, "New Name", p.DisplayName)
	assert.Equal(t, "http://img/old.png", p.AvatarURL)
}

func TestUpdateProfileMissingRow(t *testing.T) {
	svc := &AccountService{Profiles: newMemProfiles(), Logger: quietLogger()}
	_, err := svc.UpdateProfile(context.Background(), "nope", UpdateProfileInput{DisplayName: "X"})
	assert.ErrorIs(t, err, ErrProfileNotFound)
}
