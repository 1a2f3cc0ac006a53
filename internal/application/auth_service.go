package application

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/nihongonext/api/internal/domain/entity"
	repo "github.com/nihongonext/api/internal/domain/repository"
	"github.com/nihongonext/api/pkg/helpers"
)

var (
	// ErrInvalidCredentials covers unknown email, wrong password, and
	// password login against a Google-only account. Callers must report all
	// three identically so account existence is never revealed.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrGoogleNotEnabled   = errors.New("google sign-in not configured")
	ErrGoogleToken        = errors.New("google token verification failed")
)

// GoogleVerifier validates a Google-issued ID token and extracts verified
// identity claims.
type GoogleVerifier interface {
	Verify(ctx context.Context, credential string) (*helpers.GoogleIdentity, error)
}

// AuthService orchestrates the credential store, password hasher, token
// service and Google verifier behind the auth endpoints.
type AuthService struct {
	Users  repo.UserRepository
	JWT    *helpers.JWTManager
	Google GoogleVerifier // nil when the capability is unconfigured
	Logger *logrus.Logger
}

func NewAuthService(users repo.UserRepository, jwt *helpers.JWTManager, google GoogleVerifier, logger *logrus.Logger) *AuthService {
	return &AuthService{Users: users, JWT: jwt, Google: google, Logger: logger}
}

// AuthResult is the outcome of any successful authentication path.
type AuthResult struct {
	Token string
	User  *entity.User
}

func (s *AuthService) issue(u *entity.User) (*AuthResult, error) {
	token, _, err := s.JWT.Generate(u.ID, u.Email, u.Name, u.Role)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: u}, nil
}

// Register creates a password account with the STANDARD role and issues a
// session token. A duplicate email surfaces as ErrEmailTaken.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, err
	}
	u := &entity.User{
		Name:     name,
		Email:    email,
		Password: hash,
		Role:     entity.RoleStandard,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrEmailTaken) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return s.issue(u)
}

// Login authenticates an email/password pair.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	// Google-only accounts have no password hash to check against.
	if u.Password == "" || !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return s.issue(u)
}

// GoogleLogin verifies the provider credential and resolves it to a user:
// by Google subject id first, then by verified email (linking the subject id
// to the existing account), finally by creating a fresh account.
func (s *AuthService) GoogleLogin(ctx context.Context, credential string) (*AuthResult, error) {
	if s.Google == nil {
		return nil, ErrGoogleNotEnabled
	}
	id, err := s.Google.Verify(ctx, credential)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).Warn("google credential rejected")
		}
		return nil, ErrGoogleToken
	}

	if u, err := s.Users.GetByGoogleID(ctx, id.Subject); err == nil {
		return s.issue(u)
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}

	if u, err := s.Users.GetByEmail(ctx, id.Email); err == nil {
		if err := s.Users.LinkGoogleID(ctx, u.ID, id.Subject); err != nil {
			return nil, err
		}
		u.GoogleID = id.Subject
		return s.issue(u)
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}

	name := id.Name
	if name == "" {
		name = emailLocalPart(id.Email)
	}
	u := &entity.User{
		Name:     name,
		Email:    id.Email,
		GoogleID: id.Subject,
		Role:     entity.RoleStandard,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		return nil, err
	}
	return s.issue(u)
}

func emailLocalPart(email string) string {
	if i := strings.IndexByte(email, '@'); i > 0 {
		return email[:i]
	}
	return email
}
