package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/jaitlinson/pottery-shop-backend/internal/cart"
	"github.com/jaitlinson/pottery-shop-backend/internal/catalog"
	"github.com/jaitlinson/pottery-shop-backend/internal/checkout"
	"github.com/jaitlinson/pottery-shop-backend/internal/config"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	db, err := catalog.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		logger.Fatal("catalog store connect failed", zap.Error(err))
	}
	catalogService := catalog.NewService(catalog.NewMongoRepository(db, cfg.CatalogCollection, logger), logger)

	var store cart.Store
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Fatal("cart store connect failed", zap.Error(err))
		}
		store = cart.NewRedisStore(rdb, logger)
	} else {
		logger.Warn("REDIS_ADDR not set, carts will not survive a restart")
		store = cart.NewInMemoryStore(logger)
	}
	cartService := cart.NewService(store, logger)

	gateway := checkout.NewStripeGateway(cfg.StripeSecretKey)
	initiator := checkout.NewInitiator(cfg.CheckoutEndpoint, gateway, logger)

	app := fiber.New()
	setupCORS(app)
	app.Use(requestLogger(logger))

	app.Get("/api/v1/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "healthy"})
	})

	catalog.NewHandler(catalogService).RegisterRoutes(app)
	cart.NewHandler(cartService).RegisterRoutes(app)
	checkout.NewHandler(gateway, initiator, cartService, cfg.DefaultOrigin, cfg.StripePublishableKey, logger).RegisterRoutes(app)

	logger.Info("starting storefront",
		zap.String("addr", cfg.Addr),
		zap.String("catalog_collection", cfg.CatalogCollection),
		zap.Bool("redis", cfg.RedisAddr != ""))
	if err := app.Listen(cfg.Addr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func setupCORS(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))
}

func requestLogger(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		logger.Info("request",
			zap.String("method", c.Method()),
			zap.String("path", c.OriginalURL()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("took", time.Since(start)))
		return err
	}
}
