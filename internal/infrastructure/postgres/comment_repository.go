package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nihongonext/api/internal/domain/entity"
	"github.com/nihongonext/api/internal/domain/repository"
)

type CommentRepository struct {
	pool *pgxpool.Pool
}

func NewCommentRepository(pool *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{pool: pool}
}

// ListByPost returns comments oldest first (chronological discussion order).
func (r *CommentRepository) ListByPost(ctx context.Context, postID string) ([]*entity.Comment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, post_id, COALESCE(user_id::text, ''), name, text, time, likes
		FROM comments
		WHERE post_id = $1
		ORDER BY time ASC, id ASC
	`, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := make([]*entity.Comment, 0)
	for rows.Next() {
		c := &entity.Comment{}
		if err := rows.Scan(&c.ID, &c.PostID, &c.UserID, &c.Name, &c.Text, &c.Time, &c.Likes); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

func (r *CommentRepository) Create(ctx context.Context, c *entity.Comment) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO comments (post_id, user_id, name, text, likes)
		VALUES ($1, NULLIF($2, '')::uuid, $3, $4, 0)
		RETURNING id, time
	`, c.PostID, c.UserID, c.Name, c.Text)
	return row.Scan(&c.ID, &c.Time)
}

// Like bumps the counter in a single UPDATE so concurrent likes on the same
// comment never lose an increment. The post_id predicate keeps a comment id
// from being likeable through another post's URL.
func (r *CommentRepository) Like(ctx context.Context, postID string, commentID int64) (int, error) {
	var likes int
	err := r.pool.QueryRow(ctx, `
		UPDATE comments SET likes = likes + 1
		WHERE id = $1 AND post_id = $2
		RETURNING likes
	`, commentID, postID).Scan(&likes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, repository.ErrNotFound
		}
		return 0, err
	}
	return likes, nil
}

var _ repository.CommentRepository = (*CommentRepository)(nil)
