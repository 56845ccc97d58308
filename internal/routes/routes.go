package routes

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/herring-blog/internal/config"
	"github.com/ahmetcoskunkizilkaya/herring-blog/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/herring-blog/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	postHandler *handlers.PostHandler,
	likeHandler *handlers.LikeHandler,
	favoriteHandler *handlers.FavoriteHandler,
	userHandler *handlers.UserHandler,
	healthHandler *handlers.HealthHandler,
	webHandler *handlers.WebHandler,
) {
	jwt := middleware.JWTProtected(cfg)
	admin := middleware.AdminRequired(db)

	// Auth — stricter rate limit: 10 req/min per IP
	auth := app.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	app.Get("/auth/me", jwt, authHandler.Me)

	// JSON API: 60 req/min per IP
	api := app.Group("/api")
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Posts — reads are public, mutations need a token
	posts := api.Group("/posts")
	posts.Get("/", postHandler.List)
	posts.Get("/search/", postHandler.Search)
	posts.Get("/:id<int>", postHandler.Get)
	posts.Post("/", jwt, postHandler.Create)
	posts.Put("/:id<int>", jwt, postHandler.Update)
	posts.Delete("/:id<int>", jwt, postHandler.Delete)

	// Likes
	likes := api.Group("/likes")
	likes.Post("/", jwt, likeHandler.Like)
	likes.Delete("/:post_id<int>", jwt, likeHandler.Unlike)
	likes.Get("/post/:post_id<int>/count", likeHandler.Count)
	likes.Get("/post/:post_id<int>/check", jwt, likeHandler.Check)

	// Favorites — all token-scoped
	favorites := api.Group("/favorites", jwt)
	favorites.Get("/", favoriteHandler.List)
	favorites.Get("/check/:post_id<int>", favoriteHandler.Check)
	favorites.Post("/:post_id<int>", favoriteHandler.Favorite)
	favorites.Delete("/:post_id<int>", favoriteHandler.Unfavorite)

	// Users — listing and deletion are admin-only, profile update is
	// owner-or-admin (the handler decides)
	users := api.Group("/users", jwt)
	users.Get("/", admin, userHandler.List)
	users.Get("/:id<int>", admin, userHandler.Get)
	users.Put("/:id<int>", userHandler.Update)
	users.Delete("/:id<int>", userHandler.Delete)

	// HTML pages
	app.Get("/", webHandler.Home)
	app.Get("/search", webHandler.Search)
	app.Get("/create", webHandler.CreatePage)
	app.Get("/edit/:id<int>", webHandler.EditPage)
	app.Get("/posts/:id<int>", webHandler.Post)
}
