package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/devconnector/devconnector/internal/interface/http"
	"github.com/devconnector/devconnector/internal/interface/middleware"
	"github.com/devconnector/devconnector/pkg/helpers"
)

// UsersModule wires registration and authentication routes.
// Public: POST /api/users, POST /api/auth
// Protected: GET /api/auth, POST /api/users/avatar
type UsersModule struct {
	Handler *handlers.UserHandler
	JWT     *helpers.JWTManager
	Redis   *redis.Client
}

func NewUsersModule(h *handlers.UserHandler, jwt *helpers.JWTManager, rdb *redis.Client) *UsersModule {
	return &UsersModule{Handler: h, JWT: jwt, Redis: rdb}
}

func (m *UsersModule) Register(rg *gin.RouterGroup) {
	registerLimiter := middleware.RateLimit(m.Redis, 10, time.Minute, middleware.KeyByIP())
	loginLimiter := middleware.RateLimit(m.Redis, 10, time.Minute, middleware.KeyByIP())

	rg.POST("/users", registerLimiter, m.Handler.Register)
	rg.POST("/auth", loginLimiter, m.Handler.Login)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	auth.Use(middleware.RateLimit(m.Redis, 120, time.Minute, middleware.KeyByUserID()))
	{
		auth.GET("/auth", m.Handler.Current)
		auth.POST("/users/avatar", m.Handler.UploadAvatar)
	}
}
