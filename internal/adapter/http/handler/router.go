package handler

import (
	"orangecat-wallets/internal/adapter/http/middleware"
	"orangecat-wallets/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const maxBodyBytes = 1 << 20

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	WalletSvc      ports.WalletService
	RefreshSvc     ports.BalanceRefreshService
	GoalSvc        ports.GoalService
	Ledger         ports.CurrencyLedger
	Rates          ports.ExchangeRateProvider
	TokenSvc       ports.TokenService
	RateLimitStore middleware.RateLimitStore           // nil = rate limiting disabled
	RateLimitRules map[string]middleware.RateLimitRule // nil = DefaultRateLimitRules
	HealthCheckers []ports.HealthChecker
	AuditSvc       ports.AuditService // nil = audit logging disabled
	OpenAPISpec    []byte             // nil = /swagger disabled
	Mode           string             // gin mode; empty keeps the current mode
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	if deps.Mode != "" {
		gin.SetMode(deps.Mode)
	}
	r := gin.New()

	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(maxBodyBytes))

	if deps.AuditSvc != nil {
		r.Use(middleware.AuditLog(deps.AuditSvc))
	}

	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	if deps.OpenAPISpec != nil {
		r.GET("/swagger", SwaggerUI)
		r.GET("/swagger/spec", SwaggerSpec(deps.OpenAPISpec))
	}

	rules := deps.RateLimitRules
	if rules == nil {
		rules = middleware.DefaultRateLimitRules()
	}
	rl := func(group string) gin.HandlerFunc {
		rule, ok := rules[group]
		if deps.RateLimitStore == nil || !ok || rule.Limit <= 0 {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	jwtAuth := middleware.JWTAuth(deps.TokenSvc, deps.Logger)
	optionalAuth := middleware.OptionalJWTAuth(deps.TokenSvc, deps.Logger)

	v1 := r.Group("/api/v1")

	// --- Public reference data ---
	currencyHandler := NewCurrencyHandler(deps.Ledger, deps.Rates)
	v1.GET("/currencies", currencyHandler.Currencies)
	v1.GET("/rates", currencyHandler.Rates)
	v1.GET("/convert", rl(middleware.GroupRead), currencyHandler.Convert)

	// --- Wallets: reads follow visibility rules, writes need a token ---
	walletHandler := NewWalletHandler(deps.WalletSvc, deps.RefreshSvc, deps.GoalSvc, deps.Logger)
	progressHandler := NewProgressHandler(deps.WalletSvc, deps.GoalSvc, deps.Ledger)

	wallets := v1.Group("/wallets")
	{
		wallets.GET("", optionalAuth, rl(middleware.GroupRead), walletHandler.List)
		wallets.POST("", jwtAuth, rl(middleware.GroupWrite), walletHandler.Create)
		wallets.GET("/:id", optionalAuth, rl(middleware.GroupRead), walletHandler.Get)
		wallets.PATCH("/:id", jwtAuth, rl(middleware.GroupWrite), walletHandler.Update)
		wallets.DELETE("/:id", jwtAuth, rl(middleware.GroupWrite), walletHandler.Delete)
		wallets.POST("/:id/refresh", jwtAuth, rl(middleware.GroupRefresh), walletHandler.Refresh)
		wallets.GET("/:id/addresses", optionalAuth, rl(middleware.GroupRead), walletHandler.Addresses)
		wallets.GET("/:id/progress", optionalAuth, rl(middleware.GroupRead), progressHandler.WalletProgress)
	}

	v1.GET("/owners/:type/:id/progress", optionalAuth, rl(middleware.GroupRead), progressHandler.OwnerProgress)

	return r
}
