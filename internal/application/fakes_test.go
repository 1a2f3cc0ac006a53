package application

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/nihongonext/api/internal/domain/entity"
	"github.com/nihongonext/api/internal/domain/repository"
	"github.com/nihongonext/api/pkg/helpers"
)

// In-memory repository fakes implementing the store contracts, including
// the unique-constraint behavior the services rely on.

type fakeUserRepo struct {
	mu    sync.Mutex
	seq   int
	users []*entity.User
}

func newFakeUserRepo() *fakeUserRepo { return &fakeUserRepo{} }

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.users {
		if e.Email == u.Email {
			return repository.ErrEmailTaken
		}
	}
	r.seq++
	u.ID = "user-" + strconv.Itoa(r.seq)
	u.CreatedAt = time.Now()
	cp := *u
	r.users = append(r.users, &cp)
	return nil
}

func (r *fakeUserRepo) find(match func(*entity.User) bool) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.ID == id })
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.Email == email })
}

func (r *fakeUserRepo) GetByGoogleID(_ context.Context, gid string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.GoogleID != "" && u.GoogleID == gid })
}

func (r *fakeUserRepo) LinkGoogleID(_ context.Context, id, gid string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			u.GoogleID = gid
			return nil
		}
	}
	return repository.ErrNotFound
}

type fakePostRepo struct {
	mu    sync.Mutex
	seq   int
	posts []*entity.Post

	comments *fakeCommentRepo // set when cascade behavior matters
}

func newFakePostRepo() *fakePostRepo { return &fakePostRepo{} }

func (r *fakePostRepo) List(_ context.Context, category, search string) ([]*entity.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q := strings.ToLower(search)
	out := make([]*entity.Post, 0)
	// newest first
	for i := len(r.posts) - 1; i >= 0; i-- {
		p := r.posts[i]
		if category != "" && category != "all" && p.Category != category {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(p.Title), q) &&
			!strings.Contains(strings.ToLower(p.Excerpt), q) {
			continue
		}
		cp := *p
		if r.comments != nil {
			cp.CommentCount = r.comments.count(p.ID)
		}
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakePostRepo) GetBySlug(_ context.Context, slug string) (*entity.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.posts {
		if p.Slug == slug {
			cp := *p
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakePostRepo) Create(_ context.Context, p *entity.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.posts {
		if e.Slug == p.Slug {
			return repository.ErrSlugTaken
		}
	}
	r.seq++
	p.ID = "post-" + strconv.Itoa(r.seq)
	p.CreatedAt = time.Now()
	cp := *p
	r.posts = append(r.posts, &cp)
	return nil
}

func (r *fakePostRepo) Update(_ context.Context, p *entity.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, e := range r.posts {
		if e.Slug == p.Slug {
			cp := *p
			cp.CreatedAt = e.CreatedAt
			r.posts[i] = &cp
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *fakePostRepo) Delete(_ context.Context, slug string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, e := range r.posts {
		if e.Slug == slug {
			r.posts = append(r.posts[:i], r.posts[i+1:]...)
			if r.comments != nil {
				r.comments.deleteByPost(e.ID)
			}
			return nil
		}
	}
	return repository.ErrNotFound
}

type fakeCommentRepo struct {
	mu       sync.Mutex
	seq      int64
	comments []*entity.Comment
}

func newFakeCommentRepo() *fakeCommentRepo { return &fakeCommentRepo{} }

func (r *fakeCommentRepo) count(postID string) int {
	n := 0
	for _, c := range r.comments {
		if c.PostID == postID {
			n++
		}
	}
	return n
}

func (r *fakeCommentRepo) deleteByPost(postID string) {
	kept := r.comments[:0]
	for _, c := range r.comments {
		if c.PostID != postID {
			kept = append(kept, c)
		}
	}
	r.comments = kept
}

func (r *fakeCommentRepo) ListByPost(_ context.Context, postID string) ([]*entity.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Comment, 0)
	for _, c := range r.comments {
		if c.PostID == postID {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeCommentRepo) Create(_ context.Context, c *entity.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	c.ID = r.seq
	c.Time = time.Now()
	cp := *c
	r.comments = append(r.comments, &cp)
	return nil
}

func (r *fakeCommentRepo) Like(_ context.Context, postID string, commentID int64) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.comments {
		if c.ID == commentID && c.PostID == postID {
			c.Likes++
			return c.Likes, nil
		}
	}
	return 0, repository.ErrNotFound
}

// fakeGoogle returns a fixed identity, or an error when broken.
type fakeGoogle struct {
	identity *helpers.GoogleIdentity
	err      error
}

func (g *fakeGoogle) Verify(_ context.Context, _ string) (*helpers.GoogleIdentity, error) {
	if g.err != nil {
		return nil, g.err
	}
	return g.identity, nil
}

var _ repository.UserRepository = (*fakeUserRepo)(nil)
var _ repository.PostRepository = (*fakePostRepo)(nil)
var _ repository.CommentRepository = (*fakeCommentRepo)(nil)
