package repository

import (
	"context"
	"database/sql"
)

// TurnRepo handles the local transcript archive.
type TurnRepo struct {
	db *sql.DB
}

func NewTurnRepo(db *sql.DB) *TurnRepo { return &TurnRepo{db: db} }

func (r *TurnRepo) Insert(ctx context.Context, t Turn) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO turns(id, chat_id, question, answer, mode, created_at)
	VALUES(?, ?, ?, ?, ?, ?);
	`, t.ID, t.ChatID, t.Question, t.Answer, t.Mode, t.CreatedAt)
	return err
}

// ListByChat returns a chat's turns oldest first.
func (r *TurnRepo) ListByChat(ctx context.Context, chatID string) ([]Turn, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, chat_id, question, answer, mode, created_at
	FROM turns WHERE chat_id = ? ORDER BY created_at ASC, id ASC`, chatID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTurns(rows)
}

// Recent returns the newest turns across all chats, newest first.
func (r *TurnRepo) Recent(ctx context.Context, limit int) ([]Turn, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, chat_id, question, answer, mode, created_at
	FROM turns ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTurns(rows)
}

func scanTurns(rows *sql.Rows) ([]Turn, error) {
	var out []Turn
	for rows.Next() {
		var t Turn
		if err := rows.Scan(&t.ID, &t.ChatID, &t.Question, &t.Answer, &t.Mode, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
