package routes

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/mrhabibie/go-socmed-api/internal/handlers"
	"github.com/mrhabibie/go-socmed-api/internal/middleware"
	"github.com/mrhabibie/go-socmed-api/internal/repository"
	"github.com/mrhabibie/go-socmed-api/internal/storage"
	"github.com/mrhabibie/go-socmed-api/services"
)

// Deps holds shared dependencies to inject into handlers.
type Deps struct {
	Client *mongo.Client
	DBName string
	Secret string
	Store  *storage.Disk
}

// Register wires repositories, services and handlers, and mounts all routes
// in one place.
func Register(app *fiber.App, d Deps) {
	db := d.Client.Database(d.DBName)

	users := repository.NewMongoUserRepo(db)
	posts := repository.NewMongoPostRepo(db)

	auth := &handlers.AuthHandler{Auth: services.NewAuthService(users, d.Secret)}
	post := &handlers.PostHandler{Posts: posts, Svc: services.NewPostService(posts, d.Store)}
	like := &handlers.LikeHandler{Posts: posts}
	comment := &handlers.CommentHandler{Posts: posts}

	app.Post("/register", auth.Register)
	app.Post("/login", auth.Login)

	protected := app.Group("/posts", middleware.RequireAuth(d.Secret))
	protected.Get("/", post.List)
	protected.Post("/", post.Create)
	protected.Get("/:id", post.GetByID)
	protected.Put("/:id", post.Update)
	protected.Delete("/:id", post.Delete)
	protected.Post("/:id/like", like.Toggle)
	protected.Post("/:id/comments", comment.Create)

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
}
