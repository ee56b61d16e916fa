package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"basketball-league/config"
	"basketball-league/database"
	"basketball-league/events"
	"basketball-league/handlers"
	"basketball-league/middleware"
	"basketball-league/services"
	"basketball-league/utils"
	"basketball-league/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		utils.SetupLogger("info", "console")
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	utils.SetupLogger(cfg.LogLevel, cfg.LogFormat)

	db, err := database.Open(cfg.DBDriver, cfg.DatabaseURL, cfg.DBLogLevel)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	clock := clockwork.NewRealClock()

	var publisher events.Publisher = events.Nop{}
	if cfg.NATS.URL != "" {
		nats, err := events.NewNATSPublisher(cfg.NATS.URL, cfg.NATS.SubjectPrefix)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to NATS")
		}
		defer nats.Close()
		publisher = nats
	}

	users := services.NewUserService(db)
	users.HashCost = cfg.Auth.BcryptCost
	sessions := services.NewSessionService(db, clock)
	tokens := services.NewTokenService(db, users, sessions)
	teams := services.NewTeamService(db, publisher)
	players := services.NewPlayerService(db, publisher)
	games := services.NewGameService(db, publisher, clock)

	if len(os.Args) > 1 && os.Args[1] == "seed" {
		seed(services.NewSeeder(db, users, teams, clock), cfg)
		return
	}

	if cfg.Admin.Password != "" {
		if _, err := users.EnsureAdmin(cfg.Admin.Email, cfg.Admin.Username, cfg.Admin.Password); err != nil {
			log.Fatal().Err(err).Msg("failed to bootstrap admin")
		}
	}

	var auth services.Authenticator = tokens
	if cfg.Auth.ServiceURL != "" {
		client := services.NewAuthServiceClient(cfg.Auth.ServiceURL, cfg.Auth.ServiceToken)
		auth = services.NewRemoteAuthenticator(client, users, tokens)
		log.Info().Str("url", cfg.Auth.ServiceURL).Msg("🔐 delegating token validation to auth service")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.StatsExportInterval > 0 {
		store, err := utils.NewR2Store(ctx, cfg.R2)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize R2 client")
		}
		worker := workers.NewStatsExportWorker(sessions, store, cfg.StatsExportInterval, clock)
		if err := worker.Start(ctx); err != nil {
			log.Fatal().Err(err).Msg("failed to start statistics export")
		}
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler,
	})
	app.Use(middleware.RequestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(cfg.AllowedOrigins, ","),
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		MaxAge:       86400, // 24 hours
	}))

	handlers.SetupRoutes(app, handlers.Deps{
		DB:       db,
		Auth:     auth,
		Tokens:   tokens,
		Users:    users,
		Sessions: sessions,
		Teams:    teams,
		Players:  players,
		Games:    games,
	})

	go func() {
		if err := app.Listen(fmt.Sprintf(":%d", cfg.Port)); err != nil {
			log.Error().Err(err).Msg("server error")
			stop()
		}
	}()

	log.Info().Msgf("✅ Server running on http://localhost:%d", cfg.Port)
	log.Info().Strs("origins", cfg.AllowedOrigins).Msg("✅ CORS configured")

	<-ctx.Done()
	log.Info().Msg("Shutting down server...")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
}

func seed(seeder *services.Seeder, cfg *config.Config) {
	opts := services.DefaultSeedOptions()
	if cfg.Admin.Password != "" {
		opts.AdminEmail = cfg.Admin.Email
		opts.AdminUsername = cfg.Admin.Username
		opts.AdminPassword = cfg.Admin.Password
	}
	result, err := seeder.Seed(opts)
	if err != nil {
		log.Fatal().Err(err).Msg("seeding failed")
	}
	log.Info().Int("teams", result.Teams).Int("players", result.Players).Int("games", result.Games).
		Msg("Fake data generated successfully")
}
