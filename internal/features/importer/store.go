package importer

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go-yacht-cms/internal/config"

	_ "github.com/lib/pq"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// ErrStoreDisabled is returned when no Postgres DSN is configured. The
// importer routes answer 503 in that case.
var ErrStoreDisabled = errors.New("importer store is not configured")

type ImportStore interface {
	EnsureSchema(ctx context.Context) error
	RegisterField(ctx context.Context, field RegisteredField) error
	// FindPost resolves an incoming item by the documented fallback chain:
	// external_id, then legacy_external_id, then slug. Nil means no match.
	FindPost(ctx context.Context, externalID, slug string) (*ImportedPost, error)
	UpsertPost(ctx context.Context, post *ImportedPost) (int64, error)
	// UpdatePost rewrites a row matched through the legacy key or slug,
	// adopting the modern external id in the process.
	UpdatePost(ctx context.Context, post *ImportedPost) error
	MarkPostDeleted(ctx context.Context, postID int64) error
	SetMeta(ctx context.Context, postID int64, key, value string) error
	// FindOrCreateAttachment dedups by exact source URL so repeated
	// full-catalog pushes reuse existing attachment rows.
	FindOrCreateAttachment(ctx context.Context, sourceURL string) (int64, error)
	FindOrCreateTerm(ctx context.Context, taxonomy, name, slug string) (int64, error)
	ReplaceTermAssignments(ctx context.Context, postID int64, taxonomy string, termIDs []int64) error
	Enabled() bool
}

type PostgresStore struct {
	db *sql.DB
}

func NewImportStore(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger) (ImportStore, error) {
	if cfg.ImportDBDSN == "" {
		logger.Info("no importer DSN configured, import endpoints disabled")
		return &disabledStore{}, nil
	}

	db, err := sql.Open("postgres", cfg.ImportDBDSN)
	if err != nil {
		return nil, err
	}

	store := &PostgresStore{db: db}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := db.PingContext(ctx); err != nil {
				return err
			}
			logger.Info("connected to importer database")
			return store.EnsureSchema(ctx)
		},
		OnStop: func(ctx context.Context) error {
			return db.Close()
		},
	})

	return store, nil
}

func (s *PostgresStore) Enabled() bool { return true }

func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS posts (
			id BIGSERIAL PRIMARY KEY,
			external_id TEXT NOT NULL UNIQUE,
			legacy_external_id TEXT,
			kind TEXT NOT NULL,
			slug TEXT NOT NULL DEFAULT '',
			deleted BOOLEAN NOT NULL DEFAULT FALSE,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_posts_legacy ON posts (legacy_external_id)`,
		`CREATE INDEX IF NOT EXISTS idx_posts_slug ON posts (slug)`,
		`CREATE TABLE IF NOT EXISTS post_meta (
			post_id BIGINT NOT NULL REFERENCES posts (id) ON DELETE CASCADE,
			meta_key TEXT NOT NULL,
			meta_value TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (post_id, meta_key)
		)`,
		`CREATE TABLE IF NOT EXISTS attachments (
			id BIGSERIAL PRIMARY KEY,
			source_url TEXT NOT NULL UNIQUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS terms (
			id BIGSERIAL PRIMARY KEY,
			taxonomy TEXT NOT NULL,
			name TEXT NOT NULL,
			slug TEXT NOT NULL DEFAULT '',
			UNIQUE (taxonomy, name)
		)`,
		`CREATE TABLE IF NOT EXISTS term_assignments (
			post_id BIGINT NOT NULL REFERENCES posts (id) ON DELETE CASCADE,
			term_id BIGINT NOT NULL REFERENCES terms (id) ON DELETE CASCADE,
			taxonomy TEXT NOT NULL,
			PRIMARY KEY (post_id, term_id)
		)`,
		`CREATE TABLE IF NOT EXISTS field_registry (
			field_key TEXT PRIMARY KEY,
			field_type TEXT NOT NULL,
			label TEXT NOT NULL DEFAULT '',
			field_group TEXT NOT NULL DEFAULT '',
			is_multilingual BOOLEAN NOT NULL DEFAULT FALSE,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func (s *PostgresStore) RegisterField(ctx context.Context, field RegisteredField) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO field_registry (field_key, field_type, label, field_group, is_multilingual, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (field_key) DO UPDATE SET
			field_type = EXCLUDED.field_type,
			label = EXCLUDED.label,
			field_group = EXCLUDED.field_group,
			is_multilingual = EXCLUDED.is_multilingual,
			updated_at = NOW()`,
		field.FieldKey, field.FieldType, field.Label, field.Group, field.IsMultilingual,
	)
	return err
}

func (s *PostgresStore) FindPost(ctx context.Context, externalID, slug string) (*ImportedPost, error) {
	queries := []struct {
		where string
		arg   string
	}{
		{"external_id = $1", externalID},
		{"legacy_external_id = $1", externalID},
		{"slug = $1", slug},
	}

	for _, q := range queries {
		if q.arg == "" {
			continue
		}
		post, err := s.scanPost(ctx, q.where, q.arg)
		if err != nil {
			return nil, err
		}
		if post != nil {
			return post, nil
		}
	}
	return nil, nil
}

func (s *PostgresStore) scanPost(ctx context.Context, where, arg string) (*ImportedPost, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, external_id, COALESCE(legacy_external_id, ''), kind, slug, deleted, updated_at
		FROM posts WHERE `+where+` ORDER BY id LIMIT 1`, arg)

	var post ImportedPost
	err := row.Scan(&post.ID, &post.ExternalID, &post.LegacyExternalID, &post.Kind, &post.Slug, &post.Deleted, &post.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (s *PostgresStore) UpsertPost(ctx context.Context, post *ImportedPost) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO posts (external_id, kind, slug, deleted, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (external_id) DO UPDATE SET
			kind = EXCLUDED.kind,
			slug = EXCLUDED.slug,
			deleted = EXCLUDED.deleted,
			updated_at = EXCLUDED.updated_at
		RETURNING id`,
		post.ExternalID, post.Kind, post.Slug, post.Deleted, time.Now().UTC(),
	).Scan(&id)
	return id, err
}

func (s *PostgresStore) UpdatePost(ctx context.Context, post *ImportedPost) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE posts SET external_id = $1, kind = $2, slug = $3, deleted = $4, updated_at = NOW()
		WHERE id = $5`,
		post.ExternalID, post.Kind, post.Slug, post.Deleted, post.ID,
	)
	return err
}

func (s *PostgresStore) MarkPostDeleted(ctx context.Context, postID int64) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE posts SET deleted = TRUE, updated_at = NOW() WHERE id = $1`, postID)
	return err
}

func (s *PostgresStore) SetMeta(ctx context.Context, postID int64, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO post_meta (post_id, meta_key, meta_value)
		VALUES ($1, $2, $3)
		ON CONFLICT (post_id, meta_key) DO UPDATE SET meta_value = EXCLUDED.meta_value`,
		postID, key, value,
	)
	return err
}

func (s *PostgresStore) FindOrCreateAttachment(ctx context.Context, sourceURL string) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM attachments WHERE source_url = $1`, sourceURL).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, err
	}

	err = s.db.QueryRowContext(ctx, `
		INSERT INTO attachments (source_url) VALUES ($1)
		ON CONFLICT (source_url) DO UPDATE SET source_url = EXCLUDED.source_url
		RETURNING id`, sourceURL,
	).Scan(&id)
	return id, err
}

func (s *PostgresStore) FindOrCreateTerm(ctx context.Context, taxonomy, name, slug string) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM terms WHERE taxonomy = $1 AND name = $2`, taxonomy, name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, err
	}

	err = s.db.QueryRowContext(ctx, `
		INSERT INTO terms (taxonomy, name, slug) VALUES ($1, $2, $3)
		ON CONFLICT (taxonomy, name) DO UPDATE SET slug = EXCLUDED.slug
		RETURNING id`, taxonomy, name, slug,
	).Scan(&id)
	return id, err
}

func (s *PostgresStore) ReplaceTermAssignments(ctx context.Context, postID int64, taxonomy string, termIDs []int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM term_assignments WHERE post_id = $1 AND taxonomy = $2`, postID, taxonomy); err != nil {
		return err
	}
	for _, termID := range termIDs {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO term_assignments (post_id, term_id, taxonomy)
			VALUES ($1, $2, $3)
			ON CONFLICT (post_id, term_id) DO NOTHING`,
			postID, termID, taxonomy); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// disabledStore stands in when IMPORT_DB_DSN is unset.
type disabledStore struct{}

func (disabledStore) Enabled() bool                         { return false }
func (disabledStore) EnsureSchema(context.Context) error    { return ErrStoreDisabled }
func (disabledStore) RegisterField(context.Context, RegisteredField) error {
	return ErrStoreDisabled
}
func (disabledStore) FindPost(context.Context, string, string) (*ImportedPost, error) {
	return nil, ErrStoreDisabled
}
func (disabledStore) UpsertPost(context.Context, *ImportedPost) (int64, error) {
	return 0, ErrStoreDisabled
}
func (disabledStore) UpdatePost(context.Context, *ImportedPost) error { return ErrStoreDisabled }
func (disabledStore) MarkPostDeleted(context.Context, int64) error { return ErrStoreDisabled }
func (disabledStore) SetMeta(context.Context, int64, string, string) error {
	return ErrStoreDisabled
}
func (disabledStore) FindOrCreateAttachment(context.Context, string) (int64, error) {
	return 0, ErrStoreDisabled
}
func (disabledStore) FindOrCreateTerm(context.Context, string, string, string) (int64, error) {
	return 0, ErrStoreDisabled
}
func (disabledStore) ReplaceTermAssignments(context.Context, int64, string, []int64) error {
	return ErrStoreDisabled
}
