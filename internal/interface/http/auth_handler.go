package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/nihongonext/api/internal/application"
	"github.com/nihongonext/api/internal/domain/entity"
	"github.com/nihongonext/api/pkg/response"
	"github.com/nihongonext/api/pkg/validation"
)

type AuthHandler struct {
	Svc    *application.AuthService
	Logger *logrus.Logger
}

func NewAuthHandler(svc *application.AuthService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type googleRequest struct {
	Credential string `json:"credential" binding:"required"`
}

func userJSON(u *entity.User) gin.H {
	return gin.H{
		"id":    u.ID,
		"name":  u.Name,
		"email": u.Email,
		"role":  u.Role,
	}
}

func (h *AuthHandler) serverError(c *gin.Context, err error, msg string) {
	h.Logger.WithError(err).WithField("request_id", c.GetString("request_id")).Error(msg)
	response.Error(c, http.StatusInternalServerError, "Something went wrong.")
}

// Register POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorDetails(c, http.StatusBadRequest, "Name, email and password are required.", validation.ToDetails(err))
		return
	}
	res, err := h.Svc.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, application.ErrEmailTaken) {
			response.Error(c, http.StatusConflict, "An account with this email already exists.")
			return
		}
		h.serverError(c, err, "register failed")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"token": res.Token, "user": userJSON(res.User)})
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorDetails(c, http.StatusBadRequest, "Email and password are required.", validation.ToDetails(err))
		return
	}
	res, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		// One message for unknown email, wrong password, and Google-only
		// accounts; nothing here may reveal which one it was.
		if errors.Is(err, application.ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, "Invalid email or password.")
			return
		}
		h.serverError(c, err, "login failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": res.Token, "user": userJSON(res.User)})
}

// GoogleLogin POST /api/auth/google
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	var req googleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Google credential is required.")
		return
	}
	res, err := h.Svc.GoogleLogin(c.Request.Context(), req.Credential)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrGoogleNotEnabled):
			response.Error(c, http.StatusNotImplemented, "Google sign-in is not configured.")
		case errors.Is(err, application.ErrGoogleToken):
			response.Error(c, http.StatusUnauthorized, "Google sign-in failed.")
		default:
			h.serverError(c, err, "google login failed")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": res.Token, "user": userJSON(res.User)})
}
