package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/devconnector/devconnector/internal/interface/http"
	"github.com/devconnector/devconnector/internal/interface/middleware"
	"github.com/devconnector/devconnector/pkg/helpers"
)

// PostsModule wires post routes, all behind the token middleware.
type PostsModule struct {
	Handler *handlers.PostHandler
	JWT     *helpers.JWTManager
	Redis   *redis.Client
}

func NewPostsModule(h *handlers.PostHandler, jwt *helpers.JWTManager, rdb *redis.Client) *PostsModule {
	return &PostsModule{Handler: h, JWT: jwt, Redis: rdb}
}

func (m *PostsModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/posts")
	auth.Use(middleware.Auth(m.JWT))
	auth.Use(middleware.RateLimit(m.Redis, 300, time.Minute, middleware.KeyByUserID()))
	{
		auth.POST("", m.Handler.Create)
		auth.GET("", m.Handler.List)
		auth.GET("/:post_id", m.Handler.Get)
		auth.DELETE("/:post_id", m.Handler.Delete)
		auth.PUT("/like/:post_id", m.Handler.Like)
		auth.PUT("/unlike/:post_id", m.Handler.Unlike)
		auth.PUT("/comment/:post_id", m.Handler.AddComment)
		auth.DELETE("/comment/:post_id/:comment_id", m.Handler.DeleteComment)
	}
}
