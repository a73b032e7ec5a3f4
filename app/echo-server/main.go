package main

import (
	"context"
	"fmt"
	"log"
	"myTourGuide/app/echo-server/router"
	"myTourGuide/business/accommodation"
	"myTourGuide/business/assistant"
	"myTourGuide/business/category"
	"myTourGuide/business/collection"
	"myTourGuide/business/comment"
	"myTourGuide/business/order"
	"myTourGuide/business/recommend"
	"myTourGuide/business/scenic"
	"myTourGuide/business/ticket"
	userService "myTourGuide/business/user"
	"myTourGuide/internal/middleware"
	genaiRepo "myTourGuide/internal/repository/genai"
	"myTourGuide/internal/repository/notification"
	psqlRepo "myTourGuide/internal/repository/postgres"
	redisRepo "myTourGuide/internal/repository/redis"
	"myTourGuide/internal/rest"
	"myTourGuide/pkg/config"
	"myTourGuide/pkg/database"
	redisdb "myTourGuide/pkg/database/redis"
	"myTourGuide/pkg/logger"
	"myTourGuide/pkg/metrics"
	"myTourGuide/pkg/utils"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting Tour Guide API", "version", cfg.App.Version)

	utils.InitJWT(cfg.JWT.SecretKey)
	metrics.Init()

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	redisClient, err := redisdb.NewRedisClient(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", "error", err)
	}
	defer redisdb.CloseRedisClient(redisClient)

	logger.Info("Redis connected successfully")

	// Init notification from mailjet
	mailjetEmail := notification.NewMailjetRepository(
		notification.MailjetConfig{
			MailjetBaseURL:           cfg.Mailjet.MailjetBaseUrl,
			MailjetBasicAuthUsername: cfg.Mailjet.MailjetBasicAuthUsername,
			MailjetBasicAuthPassword: cfg.Mailjet.MailjetBasicAuthPassword,
			MailjetSenderEmail:       cfg.Mailjet.MailjetSenderEmail,
			MailjetSenderName:        cfg.Mailjet.MailjetSenderName,
		},
	)

	// Init validate
	validate := validator.New()

	// Init repo
	userRepo := psqlRepo.NewUserRepository(db)
	scenicRepo := psqlRepo.NewScenicRepository(db)
	accommodationRepo := psqlRepo.NewAccommodationRepository(db)
	categoryRepo := psqlRepo.NewCategoryRepository(db)
	commentRepo := psqlRepo.NewCommentRepository(db)
	collectionRepo := psqlRepo.NewCollectionRepository(db)
	ticketRepo := psqlRepo.NewTicketRepository(db)
	orderRepo := psqlRepo.NewTicketOrderRepository(db)
	sessionRepo := psqlRepo.NewChatSessionRepository(db)
	messageRepo := psqlRepo.NewChatMessageRepository(db)

	tokenRepo := redisRepo.NewTokenRepository(redisClient)
	recommendCache := redisRepo.NewRecommendCache(redisClient, 5*time.Minute)

	// Init service
	userSvc := userService.NewUserService(userRepo, validate, mailjetEmail, tokenRepo, cfg.App.AppEmailVerificationKey, cfg.App.AppDeploymentUrl)
	scenicSvc := scenic.NewScenicService(scenicRepo, categoryRepo, commentRepo)
	accommodationSvc := accommodation.NewAccommodationService(accommodationRepo, scenicRepo)
	categorySvc := category.NewCategoryService(categoryRepo)
	commentSvc := comment.NewCommentService(commentRepo, scenicRepo)
	collectionSvc := collection.NewCollectionService(collectionRepo, scenicRepo)
	ticketSvc := ticket.NewTicketService(ticketRepo, scenicRepo, orderRepo)
	orderSvc := order.NewOrderService(orderRepo, ticketRepo)

	recommendSvc := recommend.NewRecommendService(
		commentRepo, collectionRepo, orderRepo, ticketRepo, recommendConfig(cfg))

	// Init handler
	userHandler := rest.NewUserHandler(userSvc)
	scenicHandler := rest.NewScenicHandler(scenicSvc)
	accommodationHandler := rest.NewAccommodationHandler(accommodationSvc)
	categoryHandler := rest.NewCategoryHandler(categorySvc)
	commentHandler := rest.NewCommentHandler(commentSvc)
	collectionHandler := rest.NewCollectionHandler(collectionSvc)
	ticketHandler := rest.NewTicketHandler(ticketSvc)
	orderHandler := rest.NewOrderHandler(orderSvc)
	recommendHandler := rest.NewRecommendHandler(recommendSvc, scenicSvc, recommendCache)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Auth middleware
	authRequired := middleware.AuthMiddlewareWithRedis(tokenRepo)
	adminOnly := middleware.AdminOnly()

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupUserRoutes(api, userHandler, authRequired, adminOnly)
	router.SetupScenicRoutes(api, scenicHandler, authRequired, adminOnly)
	router.SetupAccommodationRoutes(api, accommodationHandler, authRequired, adminOnly)
	router.SetupCategoryRoutes(api, categoryHandler, authRequired, adminOnly)
	router.SetupCommentRoutes(api, commentHandler, authRequired)
	router.SetupCollectionRoutes(api, collectionHandler, authRequired)
	router.SetupTicketRoutes(api, ticketHandler, authRequired, adminOnly)
	router.SetupOrderRoutes(api, orderHandler, authRequired)
	router.SetupRecommendRoutes(api, recommendHandler, authRequired)

	// The assistant only comes up when a Gemini key is configured.
	if cfg.Assistant.GeminiAPIKey != "" {
		chatClient, err := genaiRepo.NewGeminiClient(context.Background(), cfg.Assistant.GeminiAPIKey, cfg.Assistant.Model)
		if err != nil {
			logger.Fatal("Failed to init Gemini client", "error", err)
		}

		assistantSvc := assistant.NewAssistantService(
			sessionRepo, messageRepo, chatClient, scenicRepo, categoryRepo, scenicSvc)
		assistantHandler := rest.NewAssistantHandler(assistantSvc)
		router.SetupAssistantRoutes(api, assistantHandler, authRequired)

		logger.Info("Assistant enabled", "model", cfg.Assistant.Model)
	} else {
		logger.Warn("Assistant disabled, no Gemini API key configured")
	}

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown server
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}

// recommendConfig applies env overrides on top of the shipped ranking
// policy; unset values keep the defaults.
func recommendConfig(cfg *config.Config) recommend.Config {
	rc := recommend.DefaultConfig()
	if cfg.Recommend.UserBasedWeight > 0 {
		rc.UserBasedWeight = cfg.Recommend.UserBasedWeight
	}
	if cfg.Recommend.ItemBasedWeight > 0 {
		rc.ItemBasedWeight = cfg.Recommend.ItemBasedWeight
	}
	if cfg.Recommend.BookmarkWeight > 0 {
		rc.BookmarkWeight = cfg.Recommend.BookmarkWeight
	}
	if cfg.Recommend.OrderWeight > 0 {
		rc.OrderWeight = cfg.Recommend.OrderWeight
	}
	return rc
}
