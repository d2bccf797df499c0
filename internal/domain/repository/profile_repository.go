package repository

import (
	"context"

	"github.com/tuanhqv123/news-api/internal/domain/entity"
)

// ProfileRepository defines the interface for profile-related database operations.
type ProfileRepository interface {
	Upsert(ctx context.Context, p *entity.Profile) error
	GetByUserID(ctx context.Context, userID string) (*entity.Profile, error)
	Update(ctx context.Context, p *entity.Profile) error
	SetRole(ctx context.Context, userID, role string) error
}
