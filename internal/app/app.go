// Package app wires configuration, storage and services into a runnable process.
package app

import (
	"context"
	"fmt"
	"strings"

	"orangecat-wallets/config"
	apidocs "orangecat-wallets/docs/api"
	"orangecat-wallets/internal/adapter/blockchain"
	httpHandler "orangecat-wallets/internal/adapter/http/handler"
	"orangecat-wallets/internal/adapter/http/middleware"
	"orangecat-wallets/internal/adapter/rates"
	"orangecat-wallets/internal/adapter/storage/memory"
	pgStorage "orangecat-wallets/internal/adapter/storage/postgres"
	redisStorage "orangecat-wallets/internal/adapter/storage/redis"
	"orangecat-wallets/internal/core/ports"
	"orangecat-wallets/internal/service"
	"orangecat-wallets/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// App holds the wired services of one process.
type App struct {
	cfg *config.Config
	log zerolog.Logger

	walletRepo ports.WalletRepository
	wallets    *service.WalletServiceImpl
	refresher  *service.BalanceRefreshServiceImpl
	goals      *service.GoalEvaluator
	ledger     *service.CurrencyLedger
	rates      *service.ExchangeRateProvider
	audit      ports.AuditService

	rateLimitStore middleware.RateLimitStore
	healthCheckers []ports.HealthChecker

	closers []func()
}

type storage struct {
	walletRepo  ports.WalletRepository
	addressRepo ports.WalletAddressRepository
	owners      ports.OwnerDirectory
	transactor  ports.DBTransactor
	auditRepo   ports.AuditRepository
	health      ports.HealthChecker
}

// New connects every configured backend and builds the services.
// Call Close when done, also after a partial failure.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*App, error) {
	a := &App{cfg: cfg, log: log}

	store, err := a.openStorage(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.walletRepo = store.walletRepo
	a.healthCheckers = append(a.healthCheckers, store.health)

	var (
		snapshots ports.RateSnapshotStore
		publisher ports.EventPublisher
	)
	if cfg.Redis.Enabled {
		rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("connecting to redis: %w", err)
		}
		a.closers = append(a.closers, func() { _ = rdb.Close() })

		snapshots = redisStorage.NewRateSnapshotStore(rdb)
		publisher = redisStorage.NewEventPublisher(rdb)
		a.rateLimitStore = redisStorage.NewRateLimitStore(rdb)
		a.healthCheckers = append(a.healthCheckers, redisStorage.NewHealthCheck(rdb))
	} else {
		log.Warn().Msg("Redis disabled: API rate limiting and cross-instance rate sharing are off")
	}

	source, err := rateSource(cfg.Rates)
	if err != nil {
		a.Close()
		return nil, err
	}
	quotes := cfg.Rates.Currencies
	if len(quotes) == 0 {
		quotes = service.FiatCodes()
	}
	a.rates = service.NewExchangeRateProvider(source, snapshots, quotes, cfg.Rates.TTL, cfg.Rates.RequestTimeout,
		logger.Component(log, "rates"))
	a.ledger = service.NewCurrencyLedger(a.rates)

	validator, err := service.NewAddressValidator(cfg.Bitcoin.Network)
	if err != nil {
		a.Close()
		return nil, err
	}

	fetcher, err := blockchain.NewFromConfig(cfg.Blockchain, log)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.wallets = service.NewWalletService(store.walletRepo, store.addressRepo, store.owners, store.transactor,
		validator, a.ledger, cfg.Wallets.MaxPerOwner, logger.Component(log, "wallets"))
	a.refresher = service.NewBalanceRefreshService(a.wallets, store.addressRepo, fetcher,
		service.NewRefreshRateLimiter(cfg.Refresh.Cooldown), publisher, logger.Component(log, "refresh"))
	a.goals = service.NewGoalEvaluator(a.ledger, a.wallets)
	a.audit = service.NewAuditService(store.auditRepo, logger.Component(log, "audit"))

	return a, nil
}

func (a *App) openStorage(ctx context.Context) (*storage, error) {
	cfg := a.cfg
	switch cfg.Storage.Driver {
	case "memory":
		a.log.Warn().Msg("Using in-memory storage: wallets are lost on restart")
		store := memory.NewStore()
		return &storage{
			walletRepo:  memory.NewWalletRepo(store, cfg.Wallets.MaxPerOwner),
			addressRepo: memory.NewWalletAddressRepo(store),
			owners:      memory.NewOwnerDirectory(store),
			transactor:  memory.NewTransactor(store),
			auditRepo:   memory.NewAuditRepository(store),
			health:      store,
		}, nil

	case "postgres":
		if cfg.Database.MigrateOnStart {
			if err := pgStorage.Migrate(cfg.Database, a.log); err != nil {
				return nil, err
			}
		}
		pool, err := pgStorage.NewPool(ctx, cfg.Database, a.log)
		if err != nil {
			return nil, fmt.Errorf("connecting to postgres: %w", err)
		}
		a.closers = append(a.closers, pool.Close)
		return &storage{
			walletRepo:  pgStorage.NewWalletRepo(pool),
			addressRepo: pgStorage.NewWalletAddressRepo(pool),
			owners:      pgStorage.NewOwnerRepo(pool, cfg.Wallets.VisibilityTTL),
			transactor:  pgStorage.NewTransactor(pool),
			auditRepo:   pgStorage.NewAuditRepository(pool),
			health:      pgStorage.NewHealthCheck(pool),
		}, nil
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
}

func rateSource(cfg config.RatesConfig) (ports.ExchangeRateSource, error) {
	switch strings.ToLower(cfg.Source) {
	case "coingecko":
		return rates.NewCoinGecko(cfg.BaseURL, cfg.APIKey, cfg.RequestTimeout), nil
	case "static":
		if len(cfg.Static) == 0 {
			return nil, fmt.Errorf("rates.static must list at least one rate")
		}
		return rates.NewStatic(cfg.Static), nil
	}
	return nil, fmt.Errorf("rates.source: unknown source %q", cfg.Source)
}

// Rates returns the exchange rate provider, which the caller runs.
func (a *App) Rates() *service.ExchangeRateProvider {
	return a.rates
}

// Router builds the HTTP API.
func (a *App) Router(tokens ports.TokenService) *gin.Engine {
	rl := a.cfg.RateLimit
	return httpHandler.SetupRouter(httpHandler.RouterDeps{
		WalletSvc:      a.wallets,
		RefreshSvc:     a.refresher,
		GoalSvc:        a.goals,
		Ledger:         a.ledger,
		Rates:          a.rates,
		TokenSvc:       tokens,
		RateLimitStore: a.rateLimitStore,
		RateLimitRules: map[string]middleware.RateLimitRule{
			middleware.GroupRead:    {Limit: rl.Read.Limit, Window: rl.Read.Window},
			middleware.GroupWrite:   {Limit: rl.Write.Limit, Window: rl.Write.Window},
			middleware.GroupRefresh: {Limit: rl.Refresh.Limit, Window: rl.Refresh.Window},
		},
		HealthCheckers: a.healthCheckers,
		AuditSvc:       a.audit,
		OpenAPISpec:    apidocs.OpenAPI,
		Mode:           a.cfg.Server.Mode,
		Logger:         a.log,
	})
}

// Poller builds the background balance poller from the poller config.
func (a *App) Poller() *service.BalancePoller {
	pc := a.cfg.Poller
	return service.NewBalancePoller(a.walletRepo, a.refresher, pc.Interval, pc.StaleAfter, pc.BatchSize, pc.Concurrency,
		logger.Component(a.log, "poller"))
}

// Close releases connections in reverse order of opening.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
