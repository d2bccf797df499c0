package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanhqv123/news-api/internal/domain/entity"
	"github.com/tuanhqv123/news-api/internal/infrastructure/supabase"
)

type recordingAdmin struct {
	stubAdmin
	invitedEmail string
	invitedMeta  map[string]any
}

func (r *recordingAdmin) InviteUserByEmail(_ context.Context, email string, metadata map[string]any, _ string) (*supabase.User, error) {
	r.invitedEmail = email
	r.invitedMeta = metadata
	return &supabase.User{ID: "new-author", Email: email}, nil
}

func TestInviteAuthorCarriesMetadata(t *testing.T) {
	admin := &recordingAdmin{}
	svc := &AdminService{Admin: admin, Profiles: newMemProfiles(), Logger: quietLogger()}

	res, err := svc.InviteAuthor(context.Background(), "author@example.com", "Jess Doe", "chan-9")
	require.NoError(t, err)
	assert.Equal(t, "new-author", res.UserID)
	assert.Equal(t, "author@example.com", admin.invitedEmail)
	assert.Equal(t, entity.RoleAuthor, admin.invitedMeta["role"])
	assert.Equal(t, "Jess Doe", admin.invitedMeta["display_name"])
	assert.Equal(t, "chan-9", admin.invitedMeta["channel_id"])
}

func TestSetRoleRejectsUnknownRole(t *testing.T) {
	svc := &AdminService{Admin: &stubAdmin{}, Profiles: newMemProfiles(), Logger: quietLogger()}
	err := svc.SetRole(context.Background(), "u1", "superuser")
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestSetRoleUpdatesProviderAndProfile(t *testing.T) {
	profiles := newMemProfiles()
	require.NoError(t, profiles.Upsert(context.Background(), &entity.Profile{
		UserID: "u1", Email: "a@example.com", Role: entity.RoleReader,
	}))
	admin := &stubAdmin{user: &supabase.User{ID: "u1"}}
	svc := &AdminService{Admin: admin, Profiles: profiles, Logger: quietLogger()}

	require.NoError(t, svc.SetRole(context.Background(), "u1", entity.RoleAuthor))
	assert.Equal(t, 1, admin.updateCalls)
	assert.Equal(t, entity.RoleAuthor, admin.lastAttrs.UserMetadata["role"])

	p, err := profiles.GetByUserID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAuthor, p.Role)
}
