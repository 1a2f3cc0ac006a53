package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/nihongonext/api/internal/application"
	"github.com/nihongonext/api/internal/domain/entity"
	"github.com/nihongonext/api/internal/interface/middleware"
	"github.com/nihongonext/api/pkg/response"
	"github.com/nihongonext/api/pkg/validation"
)

type PostHandler struct {
	Svc    *application.PostService
	Logger *logrus.Logger
}

func NewPostHandler(svc *application.PostService, logger *logrus.Logger) *PostHandler {
	return &PostHandler{Svc: svc, Logger: logger}
}

func postJSON(p *entity.Post) gin.H {
	return gin.H{
		"id":        p.ID,
		"slug":      p.Slug,
		"title":     p.Title,
		"excerpt":   p.Excerpt,
		"content":   p.Content,
		"category":  p.Category,
		"author":    p.Author,
		"authorId":  p.AuthorID,
		"date":      p.Date,
		"readTime":  p.ReadTime,
		"tags":      p.Tags,
		"featured":  p.Featured,
		"image":     p.Image,
		"createdAt": p.CreatedAt,
	}
}

func commentJSON(cm *entity.Comment) gin.H {
	return gin.H{
		"id":    cm.ID,
		"name":  cm.Name,
		"text":  cm.Text,
		"time":  cm.Time,
		"likes": cm.Likes,
	}
}

func (h *PostHandler) serverError(c *gin.Context, err error, msg string) {
	h.Logger.WithError(err).WithField("request_id", c.GetString("request_id")).Error(msg)
	response.Error(c, http.StatusInternalServerError, "Something went wrong.")
}

// List GET /api/posts?category=&search=
func (h *PostHandler) List(c *gin.Context) {
	posts, err := h.Svc.List(c.Request.Context(), c.Query("category"), c.Query("search"))
	if err != nil {
		h.serverError(c, err, "list posts failed")
		return
	}
	out := make([]gin.H, 0, len(posts))
	for _, p := range posts {
		item := postJSON(p)
		item["commentCount"] = p.CommentCount
		out = append(out, item)
	}
	c.JSON(http.StatusOK, out)
}

// Get GET /api/posts/:slug
func (h *PostHandler) Get(c *gin.Context) {
	p, comments, err := h.Svc.Get(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, application.ErrPostNotFound) {
			response.Error(c, http.StatusNotFound, "Post not found.")
			return
		}
		h.serverError(c, err, "get post failed")
		return
	}
	body := postJSON(p)
	cs := make([]gin.H, 0, len(comments))
	for _, cm := range comments {
		cs = append(cs, commentJSON(cm))
	}
	body["comments"] = cs
	c.JSON(http.StatusOK, body)
}

type createPostRequest struct {
	Title    string   `json:"title" binding:"required"`
	Excerpt  string   `json:"excerpt" binding:"required"`
	Content  string   `json:"content"`
	Category string   `json:"category" binding:"required,category"`
	Tags     []string `json:"tags"`
	Featured bool     `json:"featured"`
	Image    string   `json:"image"`
}

// Create POST /api/posts (admin only). Author fields come from the verified
// admin claims; anything author-like in the body is ignored.
func (h *PostHandler) Create(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorDetails(c, http.StatusBadRequest, "Title, excerpt and category are required.", validation.ToDetails(err))
		return
	}
	claims := middleware.ClaimsFrom(c)
	p, err := h.Svc.Create(c.Request.Context(), application.CreatePostInput{
		Title:    req.Title,
		Excerpt:  req.Excerpt,
		Content:  req.Content,
		Category: req.Category,
		Tags:     req.Tags,
		Featured: req.Featured,
		Image:    req.Image,
	}, claims.UserID, claims.Name)
	if err != nil {
		if errors.Is(err, application.ErrBadCategory) {
			response.Error(c, http.StatusBadRequest, "Category must be one of: grammar, culture, vocabulary, kanji.")
			return
		}
		h.serverError(c, err, "create post failed")
		return
	}
	c.JSON(http.StatusCreated, postJSON(p))
}

type updatePostRequest struct {
	Title    *string   `json:"title"`
	Excerpt  *string   `json:"excerpt"`
	Content  *string   `json:"content"`
	Category *string   `json:"category"`
	Tags     *[]string `json:"tags"`
	Featured *bool     `json:"featured"`
	Image    *string   `json:"image"`
}

// Update PUT /api/posts/:slug (admin only). Partial: absent fields stay as
// they are; the slug never changes.
func (h *PostHandler) Update(c *gin.Context) {
	var req updatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorDetails(c, http.StatusBadRequest, "Invalid payload.", validation.ToDetails(err))
		return
	}
	p, err := h.Svc.Update(c.Request.Context(), c.Param("slug"), application.UpdatePostInput{
		Title:    req.Title,
		Excerpt:  req.Excerpt,
		Content:  req.Content,
		Category: req.Category,
		Tags:     req.Tags,
		Featured: req.Featured,
		Image:    req.Image,
	})
	if err != nil {
		switch {
		case errors.Is(err, application.ErrPostNotFound):
			response.Error(c, http.StatusNotFound, "Post not found.")
		case errors.Is(err, application.ErrBadCategory):
			response.Error(c, http.StatusBadRequest, "Category must be one of: grammar, culture, vocabulary, kanji.")
		default:
			h.serverError(c, err, "update post failed")
		}
		return
	}
	c.JSON(http.StatusOK, postJSON(p))
}

// Delete DELETE /api/posts/:slug (admin only). Comments cascade with the post.
func (h *PostHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("slug")); err != nil {
		if errors.Is(err, application.ErrPostNotFound) {
			response.Error(c, http.StatusNotFound, "Post not found.")
			return
		}
		h.serverError(c, err, "delete post failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Post deleted."})
}

type addCommentRequest struct {
	Text string `json:"text"`
	Name string `json:"name"`
}

// AddComment POST /api/posts/:slug/comments (optional auth). An
// authenticated user's name wins over the body name, which wins over
// "Anonymous".
func (h *PostHandler) AddComment(c *gin.Context) {
	var req addCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Comment text is required.")
		return
	}
	var userID, userName string
	if claims := middleware.ClaimsFrom(c); claims != nil {
		userID = claims.UserID
		userName = claims.Name
	}
	cm, err := h.Svc.AddComment(c.Request.Context(), c.Param("slug"), req.Text, req.Name, userID, userName)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrEmptyComment):
			response.Error(c, http.StatusBadRequest, "Comment text is required.")
		case errors.Is(err, application.ErrPostNotFound):
			response.Error(c, http.StatusNotFound, "Post not found.")
		default:
			h.serverError(c, err, "add comment failed")
		}
		return
	}
	c.JSON(http.StatusCreated, commentJSON(cm))
}

// LikeComment POST /api/posts/:slug/comments/:commentId/like. No auth, no
// dedup: every request advances the counter by exactly one.
func (h *PostHandler) LikeComment(c *gin.Context) {
	commentID, err := strconv.ParseInt(c.Param("commentId"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusNotFound, "Comment not found.")
		return
	}
	likes, err := h.Svc.LikeComment(c.Request.Context(), c.Param("slug"), commentID)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrPostNotFound):
			response.Error(c, http.StatusNotFound, "Post not found.")
		case errors.Is(err, application.ErrCommentNotFound):
			response.Error(c, http.StatusNotFound, "Comment not found.")
		default:
			h.serverError(c, err, "like comment failed")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"likes": likes})
}
