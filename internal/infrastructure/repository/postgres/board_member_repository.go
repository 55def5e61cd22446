package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/ewenguilhot8-netizen/chess-tracker/internal/domain/board"
	qb "github.com/ewenguilhot8-netizen/chess-tracker/internal/platform/querybuilder"
)

type BoardMemberRepository struct {
	db *sqlx.DB
}

func NewBoardMemberRepository(db *sqlx.DB) *BoardMemberRepository {
	return &BoardMemberRepository{db: db}
}

func (r *BoardMemberRepository) Add(ctx context.Context, m board.Member) error {
	insertModel := boardMemberInsertModel{
		PublicID:       m.ID,
		BoardID:        m.BoardID,
		Username:       m.Username,
		AvatarURL:      m.AvatarURL,
		PrimaryScore:   m.Primary,
		SecondaryScore: m.Secondary,
	}
	query, args, err := qb.InsertModel("board_members", insertModel, "")
	if err != nil {
		return fmt.Errorf("build add board member query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("add board member: %w", err)
	}

	return nil
}

func (r *BoardMemberRepository) ListByBoard(ctx context.Context, boardID string) ([]board.Member, error) {
	query, args, err := qb.Select("*").From("board_members").
		Where(
			qb.Eq("board_public_id", boardID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("primary_score DESC", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list board members query: %w", err)
	}

	var rows []boardMemberTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list board members: %w", err)
	}

	out := make([]board.Member, 0, len(rows))
	for _, row := range rows {
		out = append(out, boardMemberFromRow(row))
	}
	return out, nil
}

func (r *BoardMemberRepository) Remove(ctx context.Context, boardID, memberID string) error {
	query, args, err := qb.Update("board_members").
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("board_public_id", boardID),
			qb.Eq("public_id", memberID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build remove board member query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("remove board member: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected remove board member: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("remove board member: not found")
	}

	return nil
}
