package application

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanhqv123/news-api/internal/domain/entity"
	"github.com/tuanhqv123/news-api/internal/infrastructure/supabase"
)

type stubVerifier struct {
	calls int
	sess  *supabase.Session
	err   error
}

func (s *stubVerifier) VerifyOTP(_ context.Context, _, _ string) (*supabase.Session, error) {
	s.calls++
	return s.sess, s.err
}

type stubAdmin struct {
	updateCalls int
	lastAttrs   supabase.UserAttributes
	user        *supabase.User
	err         error
}

func (s *stubAdmin) UpdateUserByID(_ context.Context, _ string, attrs supabase.UserAttributes) (*supabase.User, error) {
	s.updateCalls++
	s.lastAttrs = attrs
	return s.user, s.err
}

func (s *stubAdmin) InviteUserByEmail(_ context.Context, email string, _ map[string]any, _ string) (*supabase.User, error) {
	return &supabase.User{ID: "new-user", Email: email}, nil
}

type memProfiles struct {
	rows    map[string]*entity.Profile
	upserts int
}

func newMemProfiles() *memProfiles {
	return &memProfiles{rows: map[string]*entity.Profile{}}
}

func (m *memProfiles) Upsert(_ context.Context, p *entity.Profile) error {
	m.upserts++
	cp := *p
	m.rows[p.UserID] = &cp
	return nil
}

func (m *memProfiles) GetByUserID(_ context.Context, userID string) (*entity.Profile, error) {
	p, ok := m.rows[userID]
	if !ok {
		return nil, errors.New("not found")
	}
	cp := *p
	return &cp, nil
}

func (m *memProfiles) Update(_ context.Context, p *entity.Profile) error {
	cp := *p
	m.rows[p.UserID] = &cp
	return nil
}

func (m *memProfiles) SetRole(_ context.Context, userID, role string) error {
	if p, ok := m.rows[userID]; ok {
		p.Role = role
	}
	return nil
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestVerifyInviteMapsProviderRejection(t *testing.T) {
	svc := &InviteService{
		Verifier: &stubVerifier{err: errors.New("otp expired")},
		Logger:   quietLogger(),
	}
	_, err := svc.VerifyInvite(context.Background(), "tok")
	assert.ErrorIs(t, err, ErrInviteInvalid)
}

func TestVerifyInviteMissingUserRecord(t *testing.T) {
	svc := &InviteService{
		Verifier: &stubVerifier{sess: &supabase.Session{AccessToken: "x"}},
		Logger:   quietLogger(),
	}
	_, err := svc.VerifyInvite(context.Background(), "tok")
	assert.ErrorIs(t, err, ErrUserRetrieval)
}

func TestVerifyInviteNormalizesNilMetadata(t *testing.T) {
	svc := &InviteService{
		Verifier: &stubVerifier{sess: &supabase.Session{User: &supabase.User{ID: "u1", Email: "a@b.c"}}},
		Logger:   quietLogger(),
	}
	inv, err := svc.VerifyInvite(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "u1", inv.UserID)
	assert.NotNil(t, inv.UserMetadata)
	assert.Empty(t, inv.UserMetadata)
}

func TestSetupPasswordVerifiesBeforeUpdating(t *testing.T) {
	verifier := &stubVerifier{err: errors.New("token expired")}
	admin := &stubAdmin{}
	svc := &InviteService{Verifier: verifier, Admin: admin, Logger: quietLogger()}

	err := svc.SetupPassword(context.Background(), "tok", "u1", "secret123")
	assert.ErrorIs(t, err, ErrTokenInvalid)
	assert.Equal(t, 1, verifier.calls)
	assert.Zero(t, admin.updateCalls)
}

func TestSetupPasswordMapsUpdateFailure(t *testing.T) {
	verifier := &stubVerifier{sess: &supabase.Session{User: &supabase.User{ID: "u1"}}}
	admin := &stubAdmin{err: errors.New("boom")}
	svc := &InviteService{Verifier: verifier, Admin: admin, Logger: quietLogger()}

	err := svc.SetupPassword(context.Background(), "tok", "u1", "secret123")
	assert.ErrorIs(t, err, ErrPasswordUpdate)
}

func TestSetupPasswordCreatesProfileFromMetadata(t *testing.T) {
	profiles := newMemProfiles()
	verifier := &stubVerifier{sess: &supabase.Session{User: &supabase.User{ID: "u1"}}}
	admin := &stubAdmin{user: &supabase.User{
		ID:    "u1",
		Email: "author@example.com",
		UserMetadata: map[string]any{
			"role":         "author",
			"display_name": "Jess Doe",
			"channel_id":   "chan-9",
		},
	}}
	svc := &InviteService{Verifier: verifier, Admin: admin, Profiles: profiles, Logger: quietLogger()}

	require.NoError(t, svc.SetupPassword(context.Background(), "tok", "u1", "secret123"))
	assert.Equal(t, "secret123", admin.lastAttrs.Password)

	p, err := profiles.GetByUserID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "author@example.com", p.Email)
	assert.Equal(t, entity.RoleAuthor, p.Role)
	assert.Equal(t, "Jess Doe", p.DisplayName)
	assert.Equal(t, "chan-9", p.ChannelID)
}

func TestSetupPasswordDefaultsUnknownRoleToReader(t *testing.T) {
	profiles := newMemProfiles()
	verifier := &stubVerifier{sess: &supabase.Session{User: &supabase.User{ID: "u1"}}}
	admin := &stubAdmin{user: &supabase.User{
		ID:           "u1",
		Email:        "x@example.com",
		UserMetadata: map[string]any{"role": "superuser"},
	}}
	svc := &InviteService{Verifier: verifier, Admin: admin, Profiles: profiles, Logger: quietLogger()}

	require.NoError(t, svc.SetupPassword(context.Background(), "tok", "u1", "secret123"))
	p, err := profiles.GetByUserID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleReader, p.Role)
}

func TestSetupPasswordSucceedsWithoutSideEffectDeps(t *testing.T) {
	// Profiles, indexer, and publisher are all optional follow-ups; the
	// password update alone decides the outcome.
	verifier := &stubVerifier{sess: &supabase.Session{User: &supabase.User{ID: "u1"}}}
	admin := &stubAdmin{user: &supabase.User{ID: "u1", Email: "x@example.com"}}
	svc := &InviteService{Verifier: verifier, Admin: admin, Logger: quietLogger()}

	assert.NoError(t, svc.SetupPassword(context.Background(), "tok", "u1", "secret123"))
}
