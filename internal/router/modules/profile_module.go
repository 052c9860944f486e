package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/devconnector/devconnector/internal/interface/http"
	"github.com/devconnector/devconnector/internal/interface/middleware"
	"github.com/devconnector/devconnector/pkg/helpers"
)

// ProfileModule wires profile routes.
// Public: GET /api/profile, GET /api/profile/user/:user_id,
// GET /api/profile/github/:username, GET /api/profile/search
// Everything else requires a token.
type ProfileModule struct {
	Handler *handlers.ProfileHandler
	JWT     *helpers.JWTManager
	Redis   *redis.Client
}

func NewProfileModule(h *handlers.ProfileHandler, jwt *helpers.JWTManager, rdb *redis.Client) *ProfileModule {
	return &ProfileModule{Handler: h, JWT: jwt, Redis: rdb}
}

func (m *ProfileModule) Register(rg *gin.RouterGroup) {
	publicLimiter := middleware.RateLimit(m.Redis, 120, time.Minute, middleware.KeyByIP())
	// github proxy hits an upstream API, keep it tighter
	githubLimiter := middleware.RateLimit(m.Redis, 30, time.Minute, middleware.KeyByIPAndPath())

	rg.GET("/profile", publicLimiter, m.Handler.List)
	rg.GET("/profile/user/:user_id", publicLimiter, m.Handler.GetByUser)
	rg.GET("/profile/github/:username", githubLimiter, m.Handler.GithubRepos)
	rg.GET("/profile/search", publicLimiter, m.Handler.Search)

	auth := rg.Group("/profile")
	auth.Use(middleware.Auth(m.JWT))
	auth.Use(middleware.RateLimit(m.Redis, 120, time.Minute, middleware.KeyByUserID()))
	{
		auth.GET("/me", m.Handler.Me)
		auth.POST("", m.Handler.Upsert)
		auth.DELETE("", m.Handler.DeleteAccount)
		auth.PUT("/experience", m.Handler.AddExperience)
		auth.DELETE("/experience/:exp_id", m.Handler.RemoveExperience)
		auth.PUT("/education", m.Handler.AddEducation)
		auth.DELETE("/education/:edu_id", m.Handler.RemoveEducation)
	}
}
