// main.go
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"platyo/config"
	"platyo/controllers"
	"platyo/database"
	"platyo/routes"
	"platyo/services"
	"platyo/storage"
	"platyo/utils"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func newLogger(mode string) (*zap.Logger, error) {
	if mode == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func newStore(cfg *config.Config, logger *zap.Logger) (storage.Store, error) {
	switch cfg.Storage.Driver {
	case "file":
		return storage.NewFileStore(cfg.Storage.DataDir, logger)
	case "mongo":
		return storage.NewMongoStore(context.Background(), cfg.Storage.MongoURI, cfg.Storage.MongoDB, logger)
	case "redis":
		return storage.NewRedisStore(context.Background(), cfg.Storage.RedisAddr,
			cfg.Storage.RedisPassword, cfg.Storage.RedisDB, logger)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Proceeding with environment variables.")
	}
	cfg := config.Load()

	logger, err := newLogger(cfg.Logger.Mode)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	if cfg.JWT.Secret == "" {
		logger.Fatal("JWT_SECRET is not set")
	}
	utils.JwtKey = []byte(cfg.JWT.Secret)

	store, err := newStore(cfg, logger)
	if err != nil {
		logger.Fatal("storage init failed", zap.String("driver", cfg.Storage.Driver), zap.Error(err))
	}
	db := database.New(store)

	emailService := utils.NewEmailService(cfg.Email.SendgridAPIKey, cfg.Email.Sender, cfg.Server.BaseURL)
	sessions := services.NewCartSessions()
	orderService := services.NewOrderService(db, logger)
	customerService := services.NewCustomerService(db)
	csvService := services.NewCSVService(db, customerService)

	router := mux.NewRouter()
	routes.RegisterRoutes(router, routes.Controllers{
		User:         controllers.NewUserController(db, emailService, logger),
		Menu:         controllers.NewMenuController(db, logger),
		Cart:         controllers.NewCartController(db, sessions, logger),
		Order:        controllers.NewOrderController(db, orderService, sessions, logger),
		Catalog:      controllers.NewCatalogController(db, logger),
		Restaurant:   controllers.NewRestaurantController(db, logger),
		Customer:     controllers.NewCustomerController(db, customerService, csvService, logger),
		Subscription: controllers.NewSubscriptionController(db, logger),
		Ticket:       controllers.NewTicketController(db, emailService, logger),
	})

	logger.Info("server starting",
		zap.String("port", cfg.Server.Port),
		zap.String("storage_driver", cfg.Storage.Driver))
	if err := http.ListenAndServe(":"+cfg.Server.Port, router); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
