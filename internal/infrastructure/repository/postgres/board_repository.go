package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/ewenguilhot8-netizen/chess-tracker/internal/domain/board"
	qb "github.com/ewenguilhot8-netizen/chess-tracker/internal/platform/querybuilder"
)

type BoardRepository struct {
	db *sqlx.DB
}

func NewBoardRepository(db *sqlx.DB) *BoardRepository {
	return &BoardRepository{db: db}
}

func (r *BoardRepository) Create(ctx context.Context, b board.Board) error {
	insertModel := boardInsertModel{
		PublicID: b.ID,
		Name:     b.Name,
		OwnerID:  b.OwnerID,
		IsPublic: b.IsPublic,
	}
	query, args, err := qb.InsertModel("leaderboards", insertModel, "")
	if err != nil {
		return fmt.Errorf("build create board query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("create board: %w", err)
	}

	return nil
}

func (r *BoardRepository) GetByID(ctx context.Context, boardID string) (board.Board, bool, error) {
	query, args, err := qb.Select("*").From("leaderboards").
		Where(
			qb.Eq("public_id", boardID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return board.Board{}, false, fmt.Errorf("build get board by id query: %w", err)
	}

	var row boardTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return board.Board{}, false, nil
		}
		return board.Board{}, false, fmt.Errorf("get board by id: %w", err)
	}

	return boardFromRow(row), true, nil
}

func (r *BoardRepository) ListByOwner(ctx context.Context, ownerID string) ([]board.Board, error) {
	query, args, err := qb.Select("*").From("leaderboards").
		Where(
			qb.Eq("owner_user_id", ownerID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("created_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list boards by owner query: %w", err)
	}

	var rows []boardTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list boards by owner: %w", err)
	}

	out := make([]board.Board, 0, len(rows))
	for _, row := range rows {
		out = append(out, boardFromRow(row))
	}
	return out, nil
}

func (r *BoardRepository) Update(ctx context.Context, b board.Board) error {
	query, args, err := qb.Update("leaderboards").
		Set("name", b.Name).
		Set("is_public", b.IsPublic).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("public_id", b.ID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update board query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update board: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected update board: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update board: not found")
	}

	return nil
}

// Delete soft-deletes the board and its members in one transaction.
// Messages stay behind the deleted board, no view reaches them.
func (r *BoardRepository) Delete(ctx context.Context, boardID string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx delete board: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	deleteBoardQuery, deleteBoardArgs, err := qb.Update("leaderboards").
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("public_id", boardID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete board query: %w", err)
	}
	deleteBoardResult, err := tx.ExecContext(ctx, deleteBoardQuery, deleteBoardArgs...)
	if err != nil {
		return fmt.Errorf("delete board: %w", err)
	}
	affected, err := deleteBoardResult.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected delete board: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("delete board: not found")
	}

	deleteMembersQuery, deleteMembersArgs, err := qb.Update("board_members").
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("board_public_id", boardID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete board members query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, deleteMembersQuery, deleteMembersArgs...); err != nil {
		return fmt.Errorf("delete board members: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete board tx: %w", err)
	}

	return nil
}
