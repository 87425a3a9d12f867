package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"linkshort/internal/config"
	"linkshort/internal/domain"
)

var (
	// ErrNotFound is returned when no link matches the given id or slug.
	ErrNotFound = errors.New("link not found")
	// ErrDuplicateSlug is returned when an insert trips the unique slug
	// index. Callers retry slug generation on it.
	ErrDuplicateSlug = errors.New("slug already taken")
)

const uniqueViolationCode = "23505"

const schema = `
CREATE TABLE IF NOT EXISTS links (
	id uuid PRIMARY KEY,
	slug varchar(10) NOT NULL,
	original_url text NOT NULL,
	clicks bigint NOT NULL DEFAULT 0,
	created_at timestamptz NOT NULL,
	expires_at timestamptz
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_links_slug ON links (slug);
`

// LinkRepository is the Postgres-backed link store.
type LinkRepository struct {
	pool *pgxpool.Pool
}

func NewLinkRepository(ctx context.Context, cfg *config.DatabaseConfig) (*LinkRepository, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ensure schema: %w", err)
	}

	return &LinkRepository{pool: pool}, nil
}

func (r *LinkRepository) Close() {
	r.pool.Close()
}

// Save inserts the link, or replaces the mutable part of an existing record
// with the same id. It returns the persisted form.
func (r *LinkRepository) Save(ctx context.Context, link domain.Link) (domain.Link, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO links (id, slug, original_url, clicks, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET clicks = EXCLUDED.clicks
		RETURNING id, slug, original_url, clicks, created_at, expires_at`,
		link.ID, link.Slug, link.OriginalURL, link.Clicks, link.CreatedAt, link.ExpiresAt,
	)

	saved, err := scanLink(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return domain.Link{}, ErrDuplicateSlug
		}
		return domain.Link{}, fmt.Errorf("failed to save link: %w", err)
	}
	return saved, nil
}

func (r *LinkRepository) FindByID(ctx context.Context, id string) (domain.Link, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, slug, original_url, clicks, created_at, expires_at
		FROM links
		WHERE id = $1`, id)
	return findOne(row)
}

func (r *LinkRepository) FindBySlug(ctx context.Context, slug string) (domain.Link, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, slug, original_url, clicks, created_at, expires_at
		FROM links
		WHERE slug = $1`, slug)
	return findOne(row)
}

func findOne(row pgx.Row) (domain.Link, error) {
	link, err := scanLink(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Link{}, ErrNotFound
		}
		return domain.Link{}, fmt.Errorf("failed to find link: %w", err)
	}
	return link, nil
}

func (r *LinkRepository) FindAll(ctx context.Context, limit, offset int) ([]domain.Link, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, slug, original_url, clicks, created_at, expires_at
		FROM links
		ORDER BY created_at DESC, id
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list links: %w", err)
	}
	defer rows.Close()

	var links []domain.Link
	for rows.Next() {
		link, err := scanLink(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan link: %w", err)
		}
		links = append(links, link)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list links: %w", err)
	}
	return links, nil
}

func (r *LinkRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM links WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete link: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *LinkRepository) IsSlugUnique(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM links WHERE slug = $1)`, slug,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check slug uniqueness: %w", err)
	}
	return !exists, nil
}

// IncrementClicks advances the click counter in a single statement, so
// concurrent resolutions of the same link never lose an update.
func (r *LinkRepository) IncrementClicks(ctx context.Context, id string) (domain.Link, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE links
		SET clicks = clicks + 1
		WHERE id = $1
		RETURNING id, slug, original_url, clicks, created_at, expires_at`, id)
	return findOne(row)
}

func scanLink(row pgx.Row) (domain.Link, error) {
	var link domain.Link
	err := row.Scan(
		&link.ID,
		&link.Slug,
		&link.OriginalURL,
		&link.Clicks,
		&link.CreatedAt,
		&link.ExpiresAt,
	)
	return link, err
}
