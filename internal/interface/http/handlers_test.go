package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/nihongonext/api/internal/application"
	"github.com/nihongonext/api/internal/domain/entity"
	"github.com/nihongonext/api/internal/domain/repository"
	"github.com/nihongonext/api/internal/interface/middleware"
	"github.com/nihongonext/api/pkg/helpers"
	"github.com/nihongonext/api/pkg/validation"
)

func init() {
	gin.SetMode(gin.TestMode)
	validation.Init()
}

// Handler tests run the real router wiring against in-memory stores, so the
// middleware chain, binding rules and response shapes are all exercised.

type memUserRepo struct {
	mu    sync.Mutex
	seq   int
	users []*entity.User
}

func (r *memUserRepo) Create(_ context.Context, u *entity.User) error {
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

func (r *memUserRepo) find(match func(*entity.User) bool) (*entity.User, error) {
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

func (r *memUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.ID == id })
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.Email == email })
}

func (r *memUserRepo) GetByGoogleID(_ context.Context, gid string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.GoogleID != "" && u.GoogleID == gid })
}

func (r *memUserRepo) LinkGoogleID(_ context.Context, id, gid string) error {
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

type memPostRepo struct {
	mu       sync.Mutex
	seq      int
	posts    []*entity.Post
	comments *memCommentRepo
}

func (r *memPostRepo) List(_ context.Context, category, search string) ([]*entity.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q := strings.ToLower(search)
	out := make([]*entity.Post, 0)
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
		cp.CommentCount = r.comments.count(p.ID)
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memPostRepo) GetBySlug(_ context.Context, slug string) (*entity.Post, error) {
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

func (r *memPostRepo) Create(_ context.Context, p *entity.Post) error {
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

func (r *memPostRepo) Update(_ context.Context, p *entity.Post) error {
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

func (r *memPostRepo) Delete(_ context.Context, slug string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, e := range r.posts {
		if e.Slug == slug {
			r.posts = append(r.posts[:i], r.posts[i+1:]...)
			r.comments.deleteByPost(e.ID)
			return nil
		}
	}
	return repository.ErrNotFound
}

type memCommentRepo struct {
	mu       sync.Mutex
	seq      int64
	comments []*entity.Comment
}

func (r *memCommentRepo) count(postID string) int {
	n := 0
	for _, c := range r.comments {
		if c.PostID == postID {
			n++
		}
	}
	return n
}

func (r *memCommentRepo) deleteByPost(postID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.comments[:0]
	for _, c := range r.comments {
		if c.PostID != postID {
			kept = append(kept, c)
		}
	}
	r.comments = kept
}

func (r *memCommentRepo) ListByPost(_ context.Context, postID string) ([]*entity.Comment, error) {
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

func (r *memCommentRepo) Create(_ context.Context, c *entity.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	c.ID = r.seq
	c.Time = time.Now()
	cp := *c
	r.comments = append(r.comments, &cp)
	return nil
}

func (r *memCommentRepo) Like(_ context.Context, postID string, commentID int64) (int, error) {
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

type testEnv struct {
	router *gin.Engine
	jwt    *helpers.JWTManager
	auth   *application.AuthService
	posts  *application.PostService
}

func newTestEnv() *testEnv {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	users := &memUserRepo{}
	comments := &memCommentRepo{}
	posts := &memPostRepo{comments: comments}

	jwt := helpers.NewJWTManager("handler-test-secret", 7*24*time.Hour)
	authSvc := application.NewAuthService(users, jwt, nil, logger)
	postSvc := application.NewPostService(posts, comments, logger)

	r := gin.New()
	api := r.Group("/api")

	ah := NewAuthHandler(authSvc, logger)
	api.POST("/auth/register", ah.Register)
	api.POST("/auth/login", ah.Login)
	api.POST("/auth/google", ah.GoogleLogin)

	ph := NewPostHandler(postSvc, logger)
	api.GET("/posts", ph.List)
	api.GET("/posts/:slug", ph.Get)
	admin := middleware.RequireAdmin(jwt)
	api.POST("/posts", admin, ph.Create)
	api.PUT("/posts/:slug", admin, ph.Update)
	api.DELETE("/posts/:slug", admin, ph.Delete)
	api.POST("/posts/:slug/comments", middleware.OptionalAuth(jwt), ph.AddComment)
	api.POST("/posts/:slug/comments/:commentId/like", ph.LikeComment)

	return &testEnv{router: r, jwt: jwt, auth: authSvc, posts: postSvc}
}

func (e *testEnv) token(t *testing.T, id, email, name, role string) string {
	t.Helper()
	tok, _, err := e.jwt.Generate(id, email, name, role)
	require.NoError(t, err)
	return tok
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), "body: %s", w.Body.String())
	return out
}

func decodeList(t *testing.T, w *httptest.ResponseRecorder) []map[string]any {
	t.Helper()
	var out []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), "body: %s", w.Body.String())
	return out
}

func seedPost(t *testing.T, e *testEnv, title, category string) *entity.Post {
	t.Helper()
	p, err := e.posts.Create(context.Background(), application.CreatePostInput{
		Title:    title,
		Excerpt:  "excerpt for " + title,
		Content:  "body of " + title,
		Category: category,
	}, "admin-1", "Sensei")
	require.NoError(t, err)
	return p
}
