// Package postgres is implementation of storage interface.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"github.com/Decentr-net/argus/internal/entities"
	"github.com/Decentr-net/argus/internal/storage"
)

var log = logrus.WithField("layer", "storage").WithField("package", "postgres")

const (
	postPublishedAt    = `COALESCE(fecha, created_at)`
	mentionPublishedAt = `COALESCE(published_at, collected_at)`
)

type pg struct {
	ext sqlx.ExtContext
}

type postMetricDTO struct {
	ID             int64           `db:"id"`
	PostID         int64           `db:"post_id"`
	Likes          int64           `db:"likes"`
	Comments       int64           `db:"comments"`
	Shares         int64           `db:"shares"`
	Views          sql.NullInt64   `db:"views"`
	Interactions   sql.NullInt64   `db:"total_interacciones"`
	EngagementRate sql.NullFloat64 `db:"engagement_rate"`
	CollectedAt    time.Time       `db:"collected_at"`
}

type keywordDTO struct {
	ID        int64     `db:"id"`
	Word      string    `db:"palabra"`
	Active    bool      `db:"activa"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// New creates new instance of pg.
func New(db *sql.DB) storage.Storage {
	return pg{
		ext: sqlx.NewDb(db, "postgres"),
	}
}

func (s pg) Ping(ctx context.Context) error {
	if _, err := s.ext.ExecContext(ctx, `SELECT 1`); err != nil {
		return fmt.Errorf("failed to exec: %w", err)
	}

	return nil
}

func (s pg) ListPosts(ctx context.Context, p *storage.ListPostsParams) ([]entities.RawRecord, error) {
	where, args := rangeClause(postPublishedAt, p.From, p.To)

	query := fmt.Sprintf(`SELECT * FROM post %s ORDER BY %s DESC, id DESC`, where, postPublishedAt)
	if p.Limit > 0 {
		args = append(args, p.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	out, err := s.selectRaw(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select posts: %w", err)
	}

	return out, nil
}

func (s pg) GetPost(ctx context.Context, id int64) (entities.RawRecord, error) {
	out, err := s.selectRaw(ctx, `SELECT * FROM post WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to select post: %w", err)
	}

	if len(out) == 0 {
		return nil, storage.ErrNotFound
	}

	return out[0], nil
}

func (s pg) ListPostMetrics(ctx context.Context, postID int64) ([]*entities.PostMetric, error) {
	var m []*postMetricDTO

	if err := sqlx.SelectContext(ctx, s.ext, &m, `
			SELECT id, post_id, likes, comments, shares, views, total_interacciones, engagement_rate, collected_at
			FROM post_metric
			WHERE post_id = $1
			ORDER BY collected_at ASC, id ASC
		`, postID,
	); err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}

	out := make([]*entities.PostMetric, len(m))
	for i, v := range m {
		out[i] = &entities.PostMetric{
			ID:             v.ID,
			PostID:         v.PostID,
			Likes:          v.Likes,
			Comments:       v.Comments,
			Shares:         v.Shares,
			Views:          v.Views.Int64,
			Interactions:   v.Interactions.Int64,
			EngagementRate: v.EngagementRate.Float64,
			CollectedAt:    v.CollectedAt,
		}
	}

	return out, nil
}

func (s pg) SetTracked(ctx context.Context, id int64, tracked bool) error {
	res, err := s.ext.ExecContext(ctx,
		`UPDATE post SET seguimiento=$2, updated_at=now() WHERE id=$1`,
		id, tracked,
	)
	if err != nil {
		return fmt.Errorf("failed to exec: %w", err)
	}

	if c, _ := res.RowsAffected(); c == 0 {
		return storage.ErrNotFound
	}

	return nil
}

func (s pg) ListMentions(ctx context.Context, p *storage.ListMentionsParams) ([]entities.RawRecord, error) {
	where, args := rangeClause(mentionPublishedAt, p.From, p.To)

	query := fmt.Sprintf(`SELECT * FROM mention %s ORDER BY %s DESC, id DESC`, where, mentionPublishedAt)
	if p.Limit > 0 {
		args = append(args, p.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	out, err := s.selectRaw(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select mentions: %w", err)
	}

	return out, nil
}

func (s pg) ListKeywords(ctx context.Context, p *storage.ListKeywordsParams) ([]*entities.Keyword, error) {
	var (
		where []string
		args  []interface{}
	)

	if !p.IncludeInactive {
		where = append(where, "activa")
	}

	if p.Search != "" {
		args = append(args, "%"+escapeLike(p.Search)+"%")
		where = append(where, fmt.Sprintf("palabra ILIKE $%d", len(args)))
	}

	query := `SELECT id, palabra, activa, created_at, updated_at FROM keyword`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC"

	var k []*keywordDTO
	if err := sqlx.SelectContext(ctx, s.ext, &k, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}

	out := make([]*entities.Keyword, len(k))
	for i, v := range k {
		out[i] = v.toEntity()
	}

	return out, nil
}

func (s pg) GetKeyword(ctx context.Context, id int64) (*entities.Keyword, error) {
	var k keywordDTO

	if err := sqlx.GetContext(ctx, s.ext, &k,
		`SELECT id, palabra, activa, created_at, updated_at FROM keyword WHERE id = $1`, id,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}

		return nil, fmt.Errorf("failed to query: %w", err)
	}

	return k.toEntity(), nil
}

func (s pg) CreateKeyword(ctx context.Context, word string, active bool) (*entities.Keyword, error) {
	var k keywordDTO

	if err := sqlx.GetContext(ctx, s.ext, &k, `
			INSERT INTO keyword(palabra, activa) VALUES($1, $2)
			RETURNING id, palabra, activa, created_at, updated_at
		`, word, active,
	); err != nil {
		return nil, fmt.Errorf("failed to exec: %w", err)
	}

	return k.toEntity(), nil
}

func (s pg) UpdateKeyword(ctx context.Context, id int64, p *storage.UpdateKeywordParams) (*entities.Keyword, error) {
	var k keywordDTO

	if err := sqlx.GetContext(ctx, s.ext, &k, `
			UPDATE keyword SET
				palabra=COALESCE($2, palabra), activa=COALESCE($3, activa), updated_at=now()
			WHERE id=$1
			RETURNING id, palabra, activa, created_at, updated_at
		`, id, p.Word, p.Active,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}

		return nil, fmt.Errorf("failed to exec: %w", err)
	}

	return k.toEntity(), nil
}

func (s pg) ToggleKeyword(ctx context.Context, id int64) (*entities.Keyword, error) {
	var k keywordDTO

	if err := sqlx.GetContext(ctx, s.ext, &k, `
			UPDATE keyword SET activa=NOT activa, updated_at=now()
			WHERE id=$1
			RETURNING id, palabra, activa, created_at, updated_at
		`, id,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}

		return nil, fmt.Errorf("failed to exec: %w", err)
	}

	return k.toEntity(), nil
}

func (s pg) selectRaw(ctx context.Context, query string, args ...interface{}) ([]entities.RawRecord, error) {
	rows, err := s.ext.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.WithError(err).Error("failed to close rows")
		}
	}()

	var out []entities.RawRecord
	for rows.Next() {
		m := make(map[string]interface{})
		if err := rows.MapScan(m); err != nil {
			return nil, fmt.Errorf("failed to scan: %w", err)
		}
		out = append(out, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate: %w", err)
	}

	return out, nil
}

func (k keywordDTO) toEntity() *entities.Keyword {
	return &entities.Keyword{
		ID:        k.ID,
		Word:      k.Word,
		Active:    k.Active,
		CreatedAt: k.CreatedAt,
		UpdatedAt: k.UpdatedAt,
	}
}

func rangeClause(column string, from, to *time.Time) (string, []interface{}) {
	var (
		where []string
		args  []interface{}
	)

	if from != nil {
		args = append(args, from.UTC())
		where = append(where, fmt.Sprintf("%s >= $%d", column, len(args)))
	}

	if to != nil {
		args = append(args, to.UTC())
		where = append(where, fmt.Sprintf("%s <= $%d", column, len(args)))
	}

	if len(where) == 0 {
		return "", nil
	}

	return "WHERE " + strings.Join(where, " AND "), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
