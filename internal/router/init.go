package router

import (
	"github.com/nihongonext/api/internal/application"
	"github.com/nihongonext/api/internal/container"
	pginfra "github.com/nihongonext/api/internal/infrastructure/postgres"
	handlers "github.com/nihongonext/api/internal/interface/http"
	"github.com/nihongonext/api/internal/router/modules"
)

// InitModules builds every feature module from the container singletons and
// adds them to the registry. Called once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()
	jwt := container.GetJWT()

	users := pginfra.NewUserRepository(pool)
	posts := pginfra.NewPostRepository(pool)
	comments := pginfra.NewCommentRepository(pool)

	// A nil *GoogleVerifier must stay a nil interface so the service can
	// tell "unconfigured" apart from "verification failed".
	var google application.GoogleVerifier
	if v := container.GetGoogle(); v != nil {
		google = v
	}

	authSvc := application.NewAuthService(users, jwt, google, logger)
	postSvc := application.NewPostService(posts, comments, logger)

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(authSvc, logger), cfg))
	r.Add(modules.NewPostModule(handlers.NewPostHandler(postSvc, logger), jwt))
	r.Add(modules.NewHealthModule(handlers.NewHealthHandler(pool, cfg)))
}
