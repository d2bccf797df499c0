package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tuanhqv123/news-api/internal/domain/entity"
	"github.com/tuanhqv123/news-api/internal/domain/repository"
)

var ErrNotFound = errors.New("not found")

type ProfileRepository struct {
	pool *pgxpool.Pool
}

func NewProfileRepository(pool *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{pool: pool}
}

// Upsert inserts the profile or refreshes it if the user already has one.
// Invitation metadata (role, channel) wins only on first insert; later
// role changes go through SetRole.
func (r *ProfileRepository) Upsert(ctx context.Context, p *entity.Profile) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO profiles (user_id, email, display_name, avatar_url, role, channel_id)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''))
		ON CONFLICT (user_id) DO UPDATE
		SET email = EXCLUDED.email, updated_at = now()
		RETURNING created_at, updated_at
	`, p.UserID, p.Email, p.DisplayName, p.AvatarURL, p.Role, p.ChannelID)

	return row.Scan(&p.CreatedAt, &p.UpdatedAt)
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID string) (*entity.Profile, error) {
	p := &entity.Profile{}
	var channelID *string

	row := r.pool.QueryRow(ctx, `
		SELECT user_id, email, display_name, avatar_url, role, channel_id, created_at, updated_at
		FROM profiles
		WHERE user_id = $1
	`, userID)

	if err := row.Scan(&p.UserID, &p.Email, &p.DisplayName, &p.AvatarURL, &p.Role,
		&channelID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if channelID != nil {
		p.ChannelID = *channelID
	}

	return p, nil
}

func (r *ProfileRepository) Update(ctx context.Context, p *entity.Profile) error {
	p.UpdatedAt = time.Now()

	res, err := r.pool.Exec(ctx, `
		UPDATE profiles
		SET display_name = $1, avatar_url = $2, updated_at = $3
		WHERE user_id = $4
	`, p.DisplayName, p.AvatarURL, p.UpdatedAt, p.UserID)
	if err != nil {
		return err
	}

	if res.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *ProfileRepository) SetRole(ctx context.Context, userID, role string) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE profiles
		SET role = $1, updated_at = now()
		WHERE user_id = $2
	`, role, userID)
	if err != nil {
		return err
	}

	if res.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

var _ repository.ProfileRepository = (*ProfileRepository)(nil)
