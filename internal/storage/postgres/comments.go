package postgres

import (
	"context"

	"github.com/google/uuid"

	"github.com/promptboard/promptboard/internal/models"
	"github.com/promptboard/promptboard/internal/storage"
)

const commentColumns = `id, prompt_id, content, username, modification_code, created_at, updated_at`

// CreateComment inserts in a single statement; a concurrently deleted parent
// surfaces as a foreign-key violation, which mapErr turns into ErrNotFound.
// No separate existence check is needed, so there is no check-then-insert gap.
func (s *Storage) CreateComment(ctx context.Context, c *models.Comment) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO comments (id, prompt_id, content, username, modification_code, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		c.ID, c.PromptID, c.Content, c.Username, c.ModificationCode, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return mapErr("insert comment", err)
	}
	return nil
}

func (s *Storage) CommentByID(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	var c models.Comment
	err := s.pool.QueryRow(ctx,
		`SELECT `+commentColumns+` FROM comments WHERE id = $1`, id,
	).Scan(&c.ID, &c.PromptID, &c.Content, &c.Username, &c.ModificationCode, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, mapErr("get comment", err)
	}
	return &c, nil
}

// MutateComment mirrors MutatePrompt: row-locked load, fn, write, commit.
func (s *Storage) MutateComment(ctx context.Context, id uuid.UUID, fn func(*models.Comment) error) (*models.Comment, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, mapErr("begin comment mutation", err)
	}
	defer tx.Rollback(ctx)

	var c models.Comment
	err = tx.QueryRow(ctx,
		`SELECT `+commentColumns+` FROM comments WHERE id = $1 FOR UPDATE`, id,
	).Scan(&c.ID, &c.PromptID, &c.Content, &c.Username, &c.ModificationCode, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, mapErr("get comment for update", err)
	}

	if err := fn(&c); err != nil {
		return nil, err
	}

	_, err = tx.Exec(ctx,
		`UPDATE comments SET content = $2, updated_at = $3 WHERE id = $1`,
		c.ID, c.Content, c.UpdatedAt,
	)
	if err != nil {
		return nil, mapErr("update comment", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, mapErr("commit comment mutation", err)
	}
	return &c, nil
}

func (s *Storage) DeleteComment(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return mapErr("delete comment", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Storage) ListComments(ctx context.Context, promptID uuid.UUID, offset, limit int) ([]models.Comment, int, error) {
	var total int
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM comments WHERE prompt_id = $1`, promptID,
	).Scan(&total)
	if err != nil {
		return nil, 0, mapErr("count comments", err)
	}

	rows, err := s.pool.Query(ctx,
		`SELECT `+commentColumns+` FROM comments WHERE prompt_id = $1
		 ORDER BY created_at DESC, id LIMIT $2 OFFSET $3`,
		promptID, limit, offset,
	)
	if err != nil {
		return nil, 0, mapErr("list comments", err)
	}
	defer rows.Close()

	comments := []models.Comment{}
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.PromptID, &c.Content, &c.Username, &c.ModificationCode,
			&c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, 0, mapErr("scan comment", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, mapErr("iterate comments", err)
	}
	return comments, total, nil
}

func (s *Storage) CountComments(ctx context.Context) (int, error) {
	var n int
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM comments`).Scan(&n); err != nil {
		return 0, mapErr("count comments", err)
	}
	return n, nil
}
