package router

import (
	"github.com/devconnector/devconnector/internal/application"
	"github.com/devconnector/devconnector/internal/container"
	"github.com/devconnector/devconnector/internal/infrastructure/mongodb"
	handlers "github.com/devconnector/devconnector/internal/interface/http"
	"github.com/devconnector/devconnector/internal/router/modules"
)

// InitModules builds repositories, services and handlers from the container
// and registers every feature module with the router registry. Called once
// during startup.
func InitModules(r *Registry, c *container.Container) {
	users := mongodb.NewUserRepository(c.Mongo)
	profiles := mongodb.NewProfileRepository(c.Mongo)
	posts := mongodb.NewPostRepository(c.Mongo)

	userSvc := application.NewUserService(
		users,
		c.JWT,
		c.Logger,
		c.RabbitPub,
		c.Cfg.MailSendEnabled,
		c.GCS,
		c.Cfg.GCSBucket,
	)
	profileSvc := application.NewProfileService(
		profiles,
		users,
		posts,
		c.Logger,
		c.Github,
		c.RabbitPub,
		c.Cfg.MailSendEnabled,
		c.ES,
		c.Cfg.ESProfilesIndex,
	)
	postSvc := application.NewPostService(posts, users, c.Logger)

	r.Add(modules.NewUsersModule(handlers.NewUserHandler(userSvc, c.Logger), c.JWT, c.Redis))
	r.Add(modules.NewProfileModule(handlers.NewProfileHandler(profileSvc, c.Logger), c.JWT, c.Redis))
	r.Add(modules.NewPostsModule(handlers.NewPostHandler(postSvc, c.Logger), c.JWT, c.Redis))
	r.Add(modules.NewHealthModule(c.Mongo, c.Logger))
	if c.Cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(c.Redis))
	}
}
