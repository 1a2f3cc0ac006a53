package repository

import (
	"context"

	"github.com/nihongonext/api/internal/domain/entity"
)

// PostRepository defines post persistence. List annotates each post with its
// comment count. Create surfaces a slug collision as ErrSlugTaken so the
// caller can retry with a fresh suffix.
type PostRepository interface {
	List(ctx context.Context, category, search string) ([]*entity.Post, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Post, error)
	Create(ctx context.Context, p *entity.Post) error
	Update(ctx context.Context, p *entity.Post) error
	Delete(ctx context.Context, slug string) error
}

// CommentRepository defines comment persistence. Like increments the counter
// atomically at the store and returns the new value.
type CommentRepository interface {
	ListByPost(ctx context.Context, postID string) ([]*entity.Comment, error)
	Create(ctx context.Context, c *entity.Comment) error
	Like(ctx context.Context, postID string, commentID int64) (int, error)
}
