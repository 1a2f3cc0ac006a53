package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/nihongonext/api/internal/domain/entity"
	repo "github.com/nihongonext/api/internal/domain/repository"
	"github.com/nihongonext/api/pkg/helpers"
)

var (
	ErrPostNotFound    = errors.New("post not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrEmptyComment    = errors.New("comment text is required")
	ErrBadCategory     = errors.New("invalid category")
)

// slugRetries bounds the retry-with-suffix loop on slug collisions.
const slugRetries = 3

// displayDate is the format posts show on the site, e.g. "Mar 14, 2025".
const displayDate = "Jan 2, 2006"

// PostService implements the content endpoints: post CRUD, comments, likes.
type PostService struct {
	Posts    repo.PostRepository
	Comments repo.CommentRepository
	Logger   *logrus.Logger
}

func NewPostService(posts repo.PostRepository, comments repo.CommentRepository, logger *logrus.Logger) *PostService {
	return &PostService{Posts: posts, Comments: comments, Logger: logger}
}

// List returns posts newest first, filtered by category and search term.
func (s *PostService) List(ctx context.Context, category, search string) ([]*entity.Post, error) {
	return s.Posts.List(ctx, category, search)
}

// Get returns a post with its comments in chronological order.
func (s *PostService) Get(ctx context.Context, slug string) (*entity.Post, []*entity.Comment, error) {
	p, err := s.Posts.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, nil, ErrPostNotFound
		}
		return nil, nil, err
	}
	comments, err := s.Comments.ListByPost(ctx, p.ID)
	if err != nil {
		return nil, nil, err
	}
	return p, comments, nil
}

// CreatePostInput carries the client-controlled fields of a new post.
// Author identity always comes from the authenticated admin, never the body.
type CreatePostInput struct {
	Title    string
	Excerpt  string
	Content  string
	Category string
	Tags     []string
	Featured bool
	Image    string
}

// Create derives the slug, date and read time, then inserts. The DB unique
// index is the real guard on slug collisions: on a conflict the slug gets a
// random suffix and the insert is retried a bounded number of times.
func (s *PostService) Create(ctx context.Context, in CreatePostInput, authorID, authorName string) (*entity.Post, error) {
	if !entity.ValidCategory(in.Category) {
		return nil, ErrBadCategory
	}
	base := helpers.Slugify(in.Title)
	if base == "" {
		base = "post"
	}

	p := &entity.Post{
		Slug:     base,
		Title:    in.Title,
		Excerpt:  in.Excerpt,
		Content:  in.Content,
		Category: in.Category,
		Author:   authorName,
		AuthorID: authorID,
		Date:     time.Now().Format(displayDate),
		ReadTime: helpers.ReadTime(in.Content),
		Tags:     in.Tags,
		Featured: in.Featured,
		Image:    in.Image,
	}

	for attempt := 0; ; attempt++ {
		err := s.Posts.Create(ctx, p)
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, repo.ErrSlugTaken) || attempt >= slugRetries {
			return nil, err
		}
		p.Slug = base + "-" + helpers.SlugSuffix()
		if s.Logger != nil {
			s.Logger.WithFields(logrus.Fields{"slug": p.Slug, "attempt": attempt + 1}).
				Debug("slug collision, retrying with suffix")
		}
	}
}

// UpdatePostInput: nil pointer means "leave unchanged".
type UpdatePostInput struct {
	Title    *string
	Excerpt  *string
	Content  *string
	Category *string
	Tags     *[]string
	Featured *bool
	Image    *string
}

// Update applies a partial update by slug. Changing the content recomputes
// the read time; the slug itself never changes.
func (s *PostService) Update(ctx context.Context, slug string, in UpdatePostInput) (*entity.Post, error) {
	p, err := s.Posts.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	if in.Title != nil {
		p.Title = *in.Title
	}
	if in.Excerpt != nil {
		p.Excerpt = *in.Excerpt
	}
	if in.Content != nil {
		p.Content = *in.Content
		p.ReadTime = helpers.ReadTime(p.Content)
	}
	if in.Category != nil {
		if !entity.ValidCategory(*in.Category) {
			return nil, ErrBadCategory
		}
		p.Category = *in.Category
	}
	if in.Tags != nil {
		p.Tags = *in.Tags
	}
	if in.Featured != nil {
		p.Featured = *in.Featured
	}
	if in.Image != nil {
		p.Image = *in.Image
	}

	if err := s.Posts.Update(ctx, p); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return p, nil
}

// Delete removes a post and, through the store cascade, all its comments.
func (s *PostService) Delete(ctx context.Context, slug string) error {
	if err := s.Posts.Delete(ctx, slug); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrPostNotFound
		}
		return err
	}
	return nil
}

// AddComment appends a comment to the post. Display name precedence:
// authenticated user's name, then the client-supplied name, then Anonymous.
// userID and userName are empty for unauthenticated callers.
func (s *PostService) AddComment(ctx context.Context, slug, text, bodyName, userID, userName string) (*entity.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyComment
	}

	p, err := s.Posts.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	name := userName
	if name == "" {
		name = strings.TrimSpace(bodyName)
	}
	if name == "" {
		name = "Anonymous"
	}

	c := &entity.Comment{
		PostID: p.ID,
		UserID: userID,
		Name:   name,
		Text:   text,
	}
	if err := s.Comments.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// LikeComment increments the like counter by exactly one and returns the new
// count. The increment happens at the store so concurrent likes all land.
func (s *PostService) LikeComment(ctx context.Context, slug string, commentID int64) (int, error) {
	p, err := s.Posts.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return 0, ErrPostNotFound
		}
		return 0, err
	}
	likes, err := s.Comments.Like(ctx, p.ID, commentID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return 0, ErrCommentNotFound
		}
		return 0, err
	}
	return likes, nil
}
