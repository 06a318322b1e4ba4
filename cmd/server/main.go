package main

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"

	"github.com/mrhabibie/go-socmed-api/bootstrap"
	"github.com/mrhabibie/go-socmed-api/database"
	_ "github.com/mrhabibie/go-socmed-api/docs"
	"github.com/mrhabibie/go-socmed-api/internal/routes"
	"github.com/mrhabibie/go-socmed-api/internal/storage"
)

// @title           go-socmed-api
// @version         1.0
// @description     Minimal social-feed backend: registration, login, posts, likes, comments.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
func main() {
	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	cfg, err := database.LoadConfig()
	if err != nil {
		log.Fatal("config load failed", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := database.Connect(ctx, cfg)
	if err != nil {
		log.Fatal("mongo connect failed", zap.Error(err))
	}
	defer database.Disconnect(context.Background(), client)
	log.Info("connected to MongoDB", zap.String("db", cfg.DBName))

	db := client.Database(cfg.DBName)
	if err := bootstrap.EnsureUserIndexes(ctx, db); err != nil {
		log.Fatal("ensure indexes failed", zap.Error(err))
	}

	store := storage.NewDisk(cfg.UploadDir)
	if err := store.EnsureDir(); err != nil {
		log.Fatal("upload dir unavailable", zap.Error(err))
	}

	app := fiber.New()
	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(logger.New())

	app.Static("/uploads", cfg.UploadDir)
	app.Get("/docs/*", swagger.HandlerDefault)

	routes.Register(app, routes.Deps{
		Client: client,
		DBName: cfg.DBName,
		Secret: cfg.JWTSecret,
		Store:  store,
	})

	log.Info("listening", zap.String("port", cfg.Port))
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
