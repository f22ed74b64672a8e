package route

import (
	"github.com/ferdian3456/virdanfeed/internal/delivery/http"
	"github.com/ferdian3456/virdanfeed/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type RouteConfig struct {
	App            *fiber.App
	Log            *zap.Logger
	AuthMiddleware *middleware.AuthMiddleware
	Metrics        *middleware.Metrics
	UserController *http.UserController
	PostController *http.PostController
}

func (c *RouteConfig) SetupRoute() {
	if c.Metrics != nil {
		c.App.Get("/metrics", c.Metrics.Handler())
	}

	api := c.App.Group("/api")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	authGroup := api.Group("/auth")
	if c.Log != nil {
		authGroup.Use(middleware.SetupAuthRateLimiter(c.Log))
	}
	authGroup.Post("/login", c.UserController.Login)

	userGroup := api.Group("/users", c.AuthMiddleware.ProtectedRoute())
	userGroup.Get("/me", c.UserController.GetUserInfo)
	userGroup.Post("/logout", c.UserController.Logout)

	postGroup := api.Group("/posts", c.AuthMiddleware.ProtectedRoute())
	postGroup.Get("/", c.PostController.GetFeed)
	postGroup.Get("/search", c.PostController.SearchPosts)
	postGroup.Post("/:postId/like", c.PostController.ToggleLike)
	postGroup.Post("/:postId/comments", c.PostController.CreateComment)
	postGroup.Delete("/:postId", c.PostController.DeletePost)
}
