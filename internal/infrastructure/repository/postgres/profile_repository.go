package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/ewenguilhot8-netizen/chess-tracker/internal/domain/profile"
	qb "github.com/ewenguilhot8-netizen/chess-tracker/internal/platform/querybuilder"
)

type ProfileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) Upsert(ctx context.Context, p profile.Profile) error {
	insertModel := profileInsertModel{
		UserID:        p.UserID,
		ChessUsername: p.ChessUsername,
		AvatarURL:     p.AvatarURL,
	}
	suffix := "ON CONFLICT (user_id) DO UPDATE SET chess_username = EXCLUDED.chess_username, avatar_url = EXCLUDED.avatar_url, updated_at = NOW()"
	query, args, err := qb.InsertModel("profiles", insertModel, suffix)
	if err != nil {
		return fmt.Errorf("build upsert profile query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}

	return nil
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID string) (profile.Profile, bool, error) {
	query, args, err := qb.Select("*").From("profiles").
		Where(qb.Eq("user_id", userID)).
		ToSQL()
	if err != nil {
		return profile.Profile{}, false, fmt.Errorf("build get profile query: %w", err)
	}

	var row profileTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return profile.Profile{}, false, nil
		}
		return profile.Profile{}, false, fmt.Errorf("get profile: %w", err)
	}

	return profileFromRow(row), true, nil
}
