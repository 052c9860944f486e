package container

import (
	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/devconnector/devconnector/config"
	"github.com/devconnector/devconnector/pkg/github"
	"github.com/devconnector/devconnector/pkg/helpers"
)

// Container holds the app-level singletons built at startup. Modules
// receive it explicitly instead of reaching for package globals, which
// keeps tests free to construct partial containers with fakes.
type Container struct {
	Cfg    *config.Config
	Logger *logrus.Logger

	Mongo *mongo.Database
	Redis *redis.Client
	GCS   *storage.Client
	ES    *elasticsearch.Client

	JWT       *helpers.JWTManager
	RabbitPub *helpers.RabbitPublisher
	Github    *github.Client
}
