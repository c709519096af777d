package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/gatherly/eventhub/internal/config"
	"github.com/gatherly/eventhub/internal/database"
	"github.com/gatherly/eventhub/internal/handler"
	"github.com/gatherly/eventhub/internal/middleware"
	"github.com/gatherly/eventhub/internal/queue"
	"github.com/gatherly/eventhub/internal/repository"
	"github.com/gatherly/eventhub/internal/router"
	"github.com/gatherly/eventhub/internal/stats"
)

func main() {
	_ = godotenv.Load() // optional .env; real env vars win

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	cats := repository.NewCategoryRepo(db)
	events := repository.NewEventRepo(db)
	regs := repository.NewRegistrationRepo(db)
	reviews := repository.NewReviewRepo(db)
	statsRepo := repository.NewStatsRepo(db)

	assembler := stats.NewAssembler(statsRepo)

	authH := handler.NewAuthHandler(cfg, users, tokens)
	orgH := handler.NewOrganizerHandler(events, regs, cats, reviews)
	attH := handler.NewAttendeeHandler(events, regs, reviews)
	admH := handler.NewAdminHandler(cats)
	dashH := handler.NewDashboardHandler(assembler)
	pubH := &handler.PublicHandler{EventRepo: events, CategoryRepo: cats, ReviewRepo: reviews}

	e := echo.New()
	e.HideBanner = true

	// Redis backs the response cache and rate limiter on public routes.
	// Both degrade to pass-through when the client is unavailable, so a
	// missing Redis never takes the API down.
	rdb := config.NewRedisClient()
	var publicMW []echo.MiddlewareFunc
	if rlCfg := config.LoadRateLimitConfig(); rlCfg.Enabled && rdb != nil {
		publicMW = append(publicMW, middleware.NewTokenBucket(rlCfg, rdb))
	}
	if cCfg := config.LoadCacheConfig(); cCfg.Enabled && rdb != nil {
		publicMW = append(publicMW, middleware.NewRedisCache(cCfg, rdb))
	}

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterPublic(e, pubH, publicMW...)
	router.RegisterOrganizer(e, orgH, dashH, cfg.JWTSecret)
	router.RegisterAttendee(e, attH, cfg.JWTSecret)
	router.RegisterAdmin(e, admH, dashH, cfg.JWTSecret)

	go func() {
		if err := queue.StartRegistrationConsumer(); err != nil {
			log.Printf("registration consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
