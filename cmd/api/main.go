// @title MedFinder API
// @version 1.0
// @description Find in-stock medicines at nearby stores.
// @host localhost:8080
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"net/http"
	"os"
	"time"

	_ "medfinder-api/docs"
	"medfinder-api/internal/auth"
	"medfinder-api/internal/config"
	"medfinder-api/internal/handler"
	"medfinder-api/internal/metrics"
	"medfinder-api/internal/repository"
	"medfinder-api/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func main() {
	config, err := config.LoadConfig("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	setupLogger(config.LogLevel, config.IsProduction())

	// Database connection
	conn, err := pgxpool.New(context.Background(), config.DBSource)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot connect to db")
	}
	defer conn.Close()

	if err := repository.EnsureSchema(context.Background(), conn); err != nil {
		log.Fatal().Err(err).Msg("cannot prepare schema")
	}

	tokens, err := auth.NewTokenManager(config.JWTSecret, config.TokenTTL)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot create token manager")
	}

	// Initialize layers
	repo := repository.NewRepository(conn)

	searchService := service.NewSearchService(repo, config.DefaultRadiusKm)
	accountService := service.NewAccountService(repo, tokens)
	storeService := service.NewStoreService(repo)

	errs := handler.ErrorWriter{Debug: !config.IsProduction()}
	searchHandler := handler.NewSearchHandler(searchService, errs)
	authHandler := handler.NewAuthHandler(accountService, errs)
	storeHandler := handler.NewStoreHandler(storeService, errs)

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(corsConfig(config.Origins())))
	r.Use(handler.RequestLogger())
	r.Use(metrics.Middleware())

	r.GET("/health", func(c *gin.Context) {
		if err := repo.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unavailable",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	r.GET("/search", searchHandler.Search)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	api.GET("/medicines/search", searchHandler.Search)
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	owner := api.Group("", handler.RequireAuth(tokens))
	owner.POST("/stores", storeHandler.CreateStore)
	owner.GET("/stores", storeHandler.ListStores)
	owner.POST("/medicines", storeHandler.CreateMedicine)
	owner.GET("/medicines", storeHandler.ListMedicines)

	log.Info().Str("address", config.ServerAddress).Str("environment", config.Environment).Msg("starting server")
	if err := r.Run(config.ServerAddress); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders: []string{"X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}

// setupLogger configures the global logger: console output in development,
// JSON in production.
func setupLogger(level string, production bool) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	zerolog.TimeFieldFormat = time.RFC3339

	if production {
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
	zerolog.DefaultContextLogger = &log.Logger
}
