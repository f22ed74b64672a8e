package setup

import (
	"context"
	"testing"

	"github.com/ferdian3456/virdanfeed/internal/config"
	"github.com/ferdian3456/virdanfeed/internal/delivery/http/middleware"
	"github.com/ferdian3456/virdanfeed/internal/exception"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/knadh/koanf/v2"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	TestBucket    = "virdanfeed-test"
	TestJWTSecret = "test-secret-key-for-jwt-token-generation"
)

type TestApp struct {
	App   *fiber.App
	DB    *pgxpool.Pool
	Redis *redis.Client
	MinIO *minio.Client
}

func SetupTestApp(t *testing.T, infra *TestInfra) *TestApp {
	t.Log("Setting up test application...")

	ctx := context.Background()

	// 1. Config with the test infrastructure values
	testConfig := koanf.New(".")
	_ = testConfig.Set("JWT_SECRET_KEY", TestJWTSecret)
	_ = testConfig.Set("MINIO_BUCKET_NAME", TestBucket)
	_ = testConfig.Set("MINIO_PRESIGN_TTL", "15m")
	config.ApplyDefaults(testConfig)

	// 2. PostgreSQL
	t.Log("Connecting to test PostgreSQL...")
	dbPool, err := pgxpool.New(ctx, infra.PgURL)
	if err != nil {
		t.Fatalf("failed to connect to test db: %v", err)
	}
	t.Cleanup(dbPool.Close)

	// 3. Redis
	t.Log("Connecting to test Redis...")
	redisClient := redis.NewClient(&redis.Options{
		Addr: infra.RedisURL,
		DB:   0,
	})
	t.Cleanup(func() { _ = redisClient.Close() })

	if err := redisClient.Ping(ctx).Err(); err != nil {
		t.Fatalf("failed to connect to test redis: %v", err)
	}

	// 4. MinIO
	t.Log("Connecting to test MinIO...")
	minioClient, err := minio.New(infra.MinioURL, &minio.Options{
		Creds:  credentials.NewStaticV4("minioadmin", "minioadmin", ""),
		Secure: false,
	})
	if err != nil {
		t.Fatalf("failed to connect to minio: %v", err)
	}

	exists, err := minioClient.BucketExists(ctx, TestBucket)
	if err != nil {
		t.Fatalf("failed to check minio bucket: %v", err)
	}

	if !exists {
		t.Logf("Creating MinIO bucket: %s", TestBucket)
		err = minioClient.MakeBucket(ctx, TestBucket, minio.MakeBucketOptions{})
		if err != nil {
			t.Fatalf("failed to create minio bucket: %v", err)
		}
	}

	// 5. Logger
	zapLogger := zap.NewExample()

	// 6. Fiber app with the production error handler
	fiberApp := fiber.New(fiber.Config{
		AppName:               "Virdanfeed Test",
		DisableStartupMessage: true,
		DisableKeepalive:      true,
		ErrorHandler:          config.ErrorHandler,
	})
	fiberApp.Use(exception.Recovery(zapLogger))

	// 7. Repositories, usecases, controllers and routes
	config.Server(&config.ServerConfig{
		Router:  fiberApp,
		DB:      dbPool,
		DBCache: redisClient,
		Log:     zapLogger,
		Config:  testConfig,
		MinIO:   minioClient,
		Metrics: middleware.NewMetrics(),
	})

	t.Log("Test application setup completed successfully")

	return &TestApp{
		App:   fiberApp,
		DB:    dbPool,
		Redis: redisClient,
		MinIO: minioClient,
	}
}
