package app

import (
	gameAPI "roulette_client/internal/api/game"
	"roulette_client/internal/config"
	"roulette_client/internal/config/env"
	"roulette_client/internal/feed"
	"roulette_client/internal/middleware"
	"roulette_client/internal/repository"
	"roulette_client/internal/repository/engine_repo"
	"roulette_client/internal/repository/ledger_repo"
	"roulette_client/internal/repository/reel_repo"
	"roulette_client/internal/service"
	betService "roulette_client/internal/service/bet"
	roundService "roulette_client/internal/service/round"
	"roulette_client/internal/wheel"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const gameConfigPath = "config.yaml"

type ServiceProvider struct {
	// Логгер
	logger *zap.Logger

	// Конфигурация
	httpCfg      config.HTTPConfig
	engineCfg    config.EngineConfig
	redisCfg     config.RedisConfig
	feedCfg      config.FeedConfig
	jwtCfg       config.JWTConfig
	wheelCfg     config.WheelConfig
	limitsCfg    config.LimitsConfig
	lifecycleCfg config.LifecycleConfig

	// Redis
	redisClient redis.UniversalClient

	// Геометрия колеса
	geometry *wheel.Geometry

	// Репозитории
	engineRepo repository.EngineRepository
	reelRepo   repository.ReelStateRepository
	ledgerRepo repository.LedgerRepository

	// Сервисы
	roundServ service.RoundService
	betServ   service.BetService

	// Лента изменений
	feedConsumer *feed.Consumer

	// Обработчики и роутер
	gameHand *gameAPI.Handler
	router   chi.Router
}

func newServiceProvider() *ServiceProvider {
	return &ServiceProvider{}
}

func (sp *ServiceProvider) Logger() *zap.Logger {
	if sp.logger == nil {
		logger, err := zap.NewProduction()
		if err != nil {
			panic("failed to create logger: " + err.Error())
		}
		sp.logger = logger
	}
	return sp.logger
}

func (sp *ServiceProvider) HTTPCfg() config.HTTPConfig {
	if sp.httpCfg == nil {
		cfg, err := env.NewHTTPConfig()
		if err != nil {
			panic("failed to get http config: " + err.Error())
		}
		sp.httpCfg = cfg
	}
	return sp.httpCfg
}

func (sp *ServiceProvider) EngineCfg() config.EngineConfig {
	if sp.engineCfg == nil {
		cfg, err := env.NewEngineConfig()
		if err != nil {
			panic("failed to get engine config: " + err.Error())
		}
		sp.engineCfg = cfg
	}
	return sp.engineCfg
}

func (sp *ServiceProvider) RedisCfg() config.RedisConfig {
	if sp.redisCfg == nil {
		cfg, err := env.NewRedisConfig()
		if err != nil {
			panic("failed to get redis config: " + err.Error())
		}
		sp.redisCfg = cfg
	}
	return sp.redisCfg
}

func (sp *ServiceProvider) FeedCfg() config.FeedConfig {
	if sp.feedCfg == nil {
		cfg, err := env.NewFeedConfig()
		if err != nil {
			panic("failed to get feed config: " + err.Error())
		}
		sp.feedCfg = cfg
	}
	return sp.feedCfg
}

func (sp *ServiceProvider) JWTCfg() config.JWTConfig {
	if sp.jwtCfg == nil {
		cfg, err := env.NewJWTConfig()
		if err != nil {
			panic("failed to get jwt config: " + err.Error())
		}
		sp.jwtCfg = cfg
	}
	return sp.jwtCfg
}

func (sp *ServiceProvider) WheelCfg() config.WheelConfig {
	if sp.wheelCfg == nil {
		cfg, err := env.NewWheelConfigFromYAML(gameConfigPath)
		if err != nil {
			panic("failed to get wheel config: " + err.Error())
		}
		sp.wheelCfg = cfg
	}
	return sp.wheelCfg
}

func (sp *ServiceProvider) LimitsCfg() config.LimitsConfig {
	if sp.limitsCfg == nil {
		cfg, err := env.NewLimitsConfigFromYAML(gameConfigPath)
		if err != nil {
			panic("failed to get limits config: " + err.Error())
		}
		sp.limitsCfg = cfg
	}
	return sp.limitsCfg
}

func (sp *ServiceProvider) LifecycleCfg() config.LifecycleConfig {
	if sp.lifecycleCfg == nil {
		cfg, err := env.NewLifecycleConfigFromYAML(gameConfigPath)
		if err != nil {
			panic("failed to get lifecycle config: " + err.Error())
		}
		sp.lifecycleCfg = cfg
	}
	return sp.lifecycleCfg
}

func (sp *ServiceProvider) RedisClient() redis.UniversalClient {
	if sp.redisClient == nil {
		cfg := sp.RedisCfg()
		sp.redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Addr(),
			Password: cfg.Password(),
			DB:       cfg.DB(),
		})
	}
	return sp.redisClient
}

func (sp *ServiceProvider) Geometry() *wheel.Geometry {
	if sp.geometry == nil {
		geo, err := wheel.NewGeometry(sp.WheelCfg())
		if err != nil {
			panic("failed to build wheel geometry: " + err.Error())
		}
		sp.geometry = geo
	}
	return sp.geometry
}

func (sp *ServiceProvider) EngineRepository() repository.EngineRepository {
	if sp.engineRepo == nil {
		sp.engineRepo = engine_repo.NewEngineRepository(sp.EngineCfg())
	}
	return sp.engineRepo
}

func (sp *ServiceProvider) ReelStateRepository() repository.ReelStateRepository {
	if sp.reelRepo == nil {
		sp.reelRepo = reel_repo.NewReelStateRepository(sp.RedisClient(), sp.RedisCfg())
	}
	return sp.reelRepo
}

func (sp *ServiceProvider) LedgerRepository() repository.LedgerRepository {
	if sp.ledgerRepo == nil {
		sp.ledgerRepo = ledger_repo.NewLedgerRepository()
	}
	return sp.ledgerRepo
}

func (sp *ServiceProvider) RoundService() service.RoundService {
	if sp.roundServ == nil {
		sp.roundServ = roundService.NewRoundService(
			sp.EngineRepository(),
			sp.ReelStateRepository(),
			sp.LedgerRepository(),
			sp.Geometry(),
			sp.LifecycleCfg(),
			sp.Logger(),
		)
	}
	return sp.roundServ
}

func (sp *ServiceProvider) BetService() service.BetService {
	if sp.betServ == nil {
		sp.betServ = betService.NewBetService(
			sp.EngineRepository(),
			sp.LedgerRepository(),
			sp.RoundService(),
			sp.LimitsCfg(),
			sp.Logger(),
		)
	}
	return sp.betServ
}

func (sp *ServiceProvider) FeedConsumer() *feed.Consumer {
	if sp.feedConsumer == nil {
		sp.feedConsumer = feed.NewConsumer(sp.FeedCfg(), sp.RoundService(), sp.Logger())
	}
	return sp.feedConsumer
}

func (sp *ServiceProvider) GameHandler() *gameAPI.Handler {
	if sp.gameHand == nil {
		sp.gameHand = gameAPI.NewHandler(gameAPI.HandlerDeps{
			Rounds: sp.RoundService(),
			Bets:   sp.BetService(),
		})
	}
	return sp.gameHand
}

func (sp *ServiceProvider) Router() chi.Router {
	if sp.router == nil {
		r := chi.NewRouter()

		// CORS middleware
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			ExposedHeaders:   []string{"Link"},
			AllowCredentials: false,
			MaxAge:           60 * 15,
		}))

		gameHandler := sp.GameHandler()
		r.Route("/game", func(rr chi.Router) {
			rr.Get("/state", gameHandler.State)
			rr.Get("/reel", gameHandler.Reel)
			rr.Get("/results", gameHandler.Results)

			// Ставки только с access-токеном
			rr.Group(func(pr chi.Router) {
				pr.Use(middleware.Auth(sp.JWTCfg()))
				pr.Post("/bet", gameHandler.PlaceBet)
				pr.Get("/bets", gameHandler.UserBets)
			})
		})

		sp.router = r
	}

	return sp.router
}
