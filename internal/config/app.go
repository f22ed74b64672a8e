package config

import (
	http "github.com/ferdian3456/virdanfeed/internal/delivery/http"
	"github.com/ferdian3456/virdanfeed/internal/delivery/http/middleware"
	"github.com/ferdian3456/virdanfeed/internal/delivery/http/route"
	"github.com/ferdian3456/virdanfeed/internal/repository"
	"github.com/ferdian3456/virdanfeed/internal/usecase"
	"github.com/minio/minio-go/v7"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/knadh/koanf/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type ServerConfig struct {
	Router  *fiber.App
	DB      *pgxpool.Pool
	DBCache *redis.Client
	Log     *zap.Logger
	Config  *koanf.Koanf
	MinIO   *minio.Client
	Metrics *middleware.Metrics
}

func Server(config *ServerConfig) {
	userRepository := repository.NewUserRepository(config.Log, config.DB, config.DBCache)
	userUsecase := usecase.NewUserUsecase(userRepository, config.DB, config.Log, config.Config)
	userController := http.NewUserController(userUsecase, config.Log, config.Config)

	postRepository := repository.NewPostRepository(config.Log, config.DB, config.MinIO)
	postUsecase := usecase.NewPostUsecase(postRepository, userRepository, config.DB, config.Log, config.Config)
	postController := http.NewPostController(postUsecase, config.Log, config.Config)

	authMiddleware := middleware.NewAuthMiddleware(config.Router, config.Log, config.Config, userUsecase)

	routeConfig := route.RouteConfig{
		App:            config.Router,
		Log:            config.Log,
		AuthMiddleware: authMiddleware,
		Metrics:        config.Metrics,
		UserController: userController,
		PostController: postController,
	}

	routeConfig.SetupRoute()
}
