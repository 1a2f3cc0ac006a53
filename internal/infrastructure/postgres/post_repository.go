package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nihongonext/api/internal/domain/entity"
	"github.com/nihongonext/api/internal/domain/repository"
)

type PostRepository struct {
	pool *pgxpool.Pool
}

func NewPostRepository(pool *pgxpool.Pool) *PostRepository {
	return &PostRepository{pool: pool}
}

const postColumns = `p.id, p.slug, p.title, p.excerpt, p.content, p.category,
	p.author, p.author_id, p.date, p.read_time, p.tags, p.featured,
	COALESCE(p.image, ''), p.created_at`

func scanPost(row pgx.Row, withCount bool) (*entity.Post, error) {
	p := &entity.Post{}
	dest := []any{&p.ID, &p.Slug, &p.Title, &p.Excerpt, &p.Content, &p.Category,
		&p.Author, &p.AuthorID, &p.Date, &p.ReadTime, &p.Tags, &p.Featured,
		&p.Image, &p.CreatedAt}
	if withCount {
		dest = append(dest, &p.CommentCount)
	}
	if err := row.Scan(dest...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

// List returns posts newest first. category filters by exact match ("" and
// "all" mean unfiltered); search matches title or excerpt case-insensitively.
// Comment counts ride along in the same query.
func (r *PostRepository) List(ctx context.Context, category, search string) ([]*entity.Post, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+postColumns+`,
			(SELECT COUNT(*) FROM comments c WHERE c.post_id = p.id) AS comment_count
		FROM posts p
		WHERE ($1 = '' OR $1 = 'all' OR p.category = $1)
		  AND ($2 = '' OR p.title ILIKE '%' || $2 || '%' OR p.excerpt ILIKE '%' || $2 || '%')
		ORDER BY p.created_at DESC
	`, category, search)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := make([]*entity.Post, 0)
	for rows.Next() {
		p, err := scanPost(rows, true)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func (r *PostRepository) GetBySlug(ctx context.Context, slug string) (*entity.Post, error) {
	return scanPost(r.pool.QueryRow(ctx, `
		SELECT `+postColumns+` FROM posts p WHERE p.slug = $1
	`, slug), false)
}

func (r *PostRepository) Create(ctx context.Context, p *entity.Post) error {
	if p.Tags == nil {
		p.Tags = []string{}
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO posts (slug, title, excerpt, content, category, author, author_id,
			date, read_time, tags, featured, image)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NULLIF($12, ''))
		RETURNING id, created_at
	`, p.Slug, p.Title, p.Excerpt, p.Content, p.Category, p.Author, p.AuthorID,
		p.Date, p.ReadTime, p.Tags, p.Featured, p.Image)

	if err := row.Scan(&p.ID, &p.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return repository.ErrSlugTaken
		}
		return err
	}
	return nil
}

// Update writes every mutable column; the service applies partial-update
// semantics before calling. The slug is the key and is never modified.
func (r *PostRepository) Update(ctx context.Context, p *entity.Post) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE posts
		SET title = $1, excerpt = $2, content = $3, category = $4, tags = $5,
			featured = $6, image = NULLIF($7, ''), read_time = $8
		WHERE slug = $9
	`, p.Title, p.Excerpt, p.Content, p.Category, p.Tags, p.Featured, p.Image,
		p.ReadTime, p.Slug)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes the post; comments go with it via ON DELETE CASCADE.
func (r *PostRepository) Delete(ctx context.Context, slug string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE slug = $1`, slug)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.PostRepository = (*PostRepository)(nil)
