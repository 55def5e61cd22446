package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/ewenguilhot8-netizen/chess-tracker/internal/domain/board"
	qb "github.com/ewenguilhot8-netizen/chess-tracker/internal/platform/querybuilder"
)

type BoardMessageRepository struct {
	db *sqlx.DB
}

func NewBoardMessageRepository(db *sqlx.DB) *BoardMessageRepository {
	return &BoardMessageRepository{db: db}
}

func (r *BoardMessageRepository) Append(ctx context.Context, m board.Message) error {
	insertModel := boardMessageInsertModel{
		PublicID: m.ID,
		BoardID:  m.BoardID,
		UserID:   m.UserID,
		Username: m.Username,
		Content:  m.Content,
	}
	query, args, err := qb.InsertModel("board_messages", insertModel, "")
	if err != nil {
		return fmt.Errorf("build append board message query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("append board message: %w", err)
	}

	return nil
}

// ListRecent returns the newest messages in ascending creation order,
// so the wall reads top to bottom.
func (r *BoardMessageRepository) ListRecent(ctx context.Context, boardID string, limit int) ([]board.Message, error) {
	query, args, err := qb.Select("*").From("board_messages").
		Where(qb.Eq("board_public_id", boardID)).
		OrderBy("created_at DESC", "id DESC").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list board messages query: %w", err)
	}

	var rows []boardMessageTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list board messages: %w", err)
	}

	out := make([]board.Message, 0, len(rows))
	for i := len(rows) - 1; i >= 0; i-- {
		out = append(out, boardMessageFromRow(rows[i]))
	}
	return out, nil
}
