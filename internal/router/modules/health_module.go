package modules

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/devconnector/devconnector/pkg/response"
)

// HealthModule exposes a liveness probe that also pings the database.
type HealthModule struct {
	Mongo  *mongo.Database
	Logger *logrus.Logger
}

func NewHealthModule(db *mongo.Database, logger *logrus.Logger) *HealthModule {
	return &HealthModule{Mongo: db, Logger: logger}
}

func (m *HealthModule) Register(rg *gin.RouterGroup) {
	rg.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := "ok"
		code := http.StatusOK
		if m.Mongo != nil {
			if err := m.Mongo.Client().Ping(ctx, readpref.Primary()); err != nil {
				m.Logger.WithError(err).Warn("health: mongodb ping failed")
				status = "degraded"
				code = http.StatusServiceUnavailable
			}
		}
		response.JSON(c, code, gin.H{"status": status})
	})
}
