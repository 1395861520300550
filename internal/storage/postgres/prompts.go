package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/promptboard/promptboard/internal/models"
	"github.com/promptboard/promptboard/internal/storage"
)

const promptColumns = `id, title, content, username, tags, modification_code, created_at, updated_at`

const summaryColumns = `p.id, p.title, p.content, p.username, p.tags,
	(SELECT COUNT(*) FROM comments c WHERE c.prompt_id = p.id) AS comment_count,
	p.created_at, p.updated_at`

func (s *Storage) CreatePrompt(ctx context.Context, p *models.Prompt) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO prompts (id, title, content, username, tags, modification_code, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		p.ID, p.Title, p.Content, p.Username, p.Tags, p.ModificationCode, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return mapErr("insert prompt", err)
	}
	return nil
}

func (s *Storage) PromptByID(ctx context.Context, id uuid.UUID) (*models.Prompt, error) {
	var p models.Prompt
	err := s.pool.QueryRow(ctx,
		`SELECT `+promptColumns+` FROM prompts WHERE id = $1`, id,
	).Scan(&p.ID, &p.Title, &p.Content, &p.Username, &p.Tags, &p.ModificationCode, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, mapErr("get prompt", err)
	}
	return &p, nil
}

// MutatePrompt runs the load-check-write sequence inside one transaction with
// the row locked, so concurrent writers to the same prompt serialize instead
// of clobbering each other's fields. Errors from fn pass through unwrapped.
func (s *Storage) MutatePrompt(ctx context.Context, id uuid.UUID, fn func(*models.Prompt) error) (*models.Prompt, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, mapErr("begin prompt mutation", err)
	}
	defer tx.Rollback(ctx)

	var p models.Prompt
	err = tx.QueryRow(ctx,
		`SELECT `+promptColumns+` FROM prompts WHERE id = $1 FOR UPDATE`, id,
	).Scan(&p.ID, &p.Title, &p.Content, &p.Username, &p.Tags, &p.ModificationCode, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, mapErr("get prompt for update", err)
	}

	if err := fn(&p); err != nil {
		return nil, err
	}

	_, err = tx.Exec(ctx,
		`UPDATE prompts SET title = $2, content = $3, tags = $4, updated_at = $5 WHERE id = $1`,
		p.ID, p.Title, p.Content, p.Tags, p.UpdatedAt,
	)
	if err != nil {
		return nil, mapErr("update prompt", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, mapErr("commit prompt mutation", err)
	}
	return &p, nil
}

// DeletePrompt relies on the ON DELETE CASCADE constraint to take the
// prompt's comments down with it in the same statement.
func (s *Storage) DeletePrompt(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM prompts WHERE id = $1`, id)
	if err != nil {
		return mapErr("delete prompt", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Storage) ListPrompts(ctx context.Context, opts models.ListOptions) ([]models.PromptSummary, int, error) {
	where, args := buildPromptFilter(opts)

	var total int
	countSQL := `SELECT COUNT(*) FROM prompts p` + where
	if err := s.pool.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, mapErr("count prompts", err)
	}

	limitArg := len(args) + 1
	offsetArg := len(args) + 2
	args = append(args, opts.Limit, (opts.Page-1)*opts.Limit)

	pageSQL := fmt.Sprintf(`SELECT %s FROM prompts p%s ORDER BY %s LIMIT $%d OFFSET $%d`,
		summaryColumns, where, orderClause(opts.Sort), limitArg, offsetArg)

	rows, err := s.pool.Query(ctx, pageSQL, args...)
	if err != nil {
		return nil, 0, mapErr("list prompts", err)
	}
	defer rows.Close()

	summaries := []models.PromptSummary{}
	for rows.Next() {
		var ps models.PromptSummary
		if err := rows.Scan(&ps.ID, &ps.Title, &ps.Content, &ps.Username, &ps.Tags,
			&ps.CommentCount, &ps.CreatedAt, &ps.UpdatedAt); err != nil {
			return nil, 0, mapErr("scan prompt summary", err)
		}
		summaries = append(summaries, ps)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, mapErr("iterate prompts", err)
	}
	return summaries, total, nil
}

func buildPromptFilter(opts models.ListOptions) (string, []any) {
	var conds []string
	var args []any

	if opts.Search != "" {
		args = append(args, "%"+escapeLike(opts.Search)+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf("(p.title ILIKE $%d OR p.content ILIKE $%d)", n, n))
	}
	if len(opts.Tags) > 0 {
		args = append(args, opts.Tags)
		conds = append(conds, fmt.Sprintf("p.tags && $%d", len(args)))
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// likeEscaper quotes the LIKE metacharacters so a search term matches
// literally; backslash is postgres's default escape character.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// orderClause maps a sort key to SQL. Title ordering is case-insensitive,
// with id as a tiebreaker so pagination stays stable.
func orderClause(sort models.SortKey) string {
	switch sort {
	case models.SortTitleAsc:
		return "LOWER(p.title) ASC, p.id"
	case models.SortTitleDesc:
		return "LOWER(p.title) DESC, p.id"
	case models.SortUpdatedAtAsc:
		return "p.updated_at ASC, p.id"
	default:
		return "p.updated_at DESC, p.id"
	}
}

func (s *Storage) PromptSummariesByIDs(ctx context.Context, ids []uuid.UUID) ([]models.PromptSummary, error) {
	if len(ids) == 0 {
		return []models.PromptSummary{}, nil
	}
	rows, err := s.pool.Query(ctx,
		`SELECT `+summaryColumns+` FROM prompts p WHERE p.id = ANY($1)`, ids,
	)
	if err != nil {
		return nil, mapErr("batch get prompts", err)
	}
	defer rows.Close()

	summaries := []models.PromptSummary{}
	for rows.Next() {
		var ps models.PromptSummary
		if err := rows.Scan(&ps.ID, &ps.Title, &ps.Content, &ps.Username, &ps.Tags,
			&ps.CommentCount, &ps.CreatedAt, &ps.UpdatedAt); err != nil {
			return nil, mapErr("scan prompt summary", err)
		}
		summaries = append(summaries, ps)
	}
	if err := rows.Err(); err != nil {
		return nil, mapErr("iterate prompts", err)
	}
	return summaries, nil
}

func (s *Storage) RandomPrompt(ctx context.Context) (*models.Prompt, error) {
	var p models.Prompt
	err := s.pool.QueryRow(ctx,
		`SELECT `+promptColumns+` FROM prompts ORDER BY random() LIMIT 1`,
	).Scan(&p.ID, &p.Title, &p.Content, &p.Username, &p.Tags, &p.ModificationCode, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, mapErr("random prompt", err)
	}
	return &p, nil
}

func (s *Storage) DistinctTags(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT DISTINCT t FROM prompts p, unnest(p.tags) AS t ORDER BY t COLLATE "C"`,
	)
	if err != nil {
		return nil, mapErr("distinct tags", err)
	}
	defer rows.Close()

	tags := []string{}
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, mapErr("scan tag", err)
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, mapErr("iterate tags", err)
	}
	return tags, nil
}

func (s *Storage) CountPrompts(ctx context.Context) (int, error) {
	var n int
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM prompts`).Scan(&n); err != nil {
		return 0, mapErr("count prompts", err)
	}
	return n, nil
}
