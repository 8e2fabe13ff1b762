package handler

import (
	"banking-ledger/internal/adapter/http/middleware"
	redisStore "banking-ledger/internal/adapter/storage/redis"
	"banking-ledger/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	AuthSvc        ports.AuthService
	LedgerSvc      ports.LedgerService
	TokenSvc       ports.TokenService
	RateLimitStore *redisStore.RateLimitStore // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	// Health check (deep — verifies PostgreSQL + Redis)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	// Rate limit rules
	rules := middleware.DefaultRateLimitRules()

	// Helper: return rate limiter middleware if store is available, else noop.
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	jwtAuth := middleware.JWTAuth(deps.TokenSvc, deps.Logger)
	optionalJWT := middleware.OptionalJWTAuth(deps.TokenSvc, deps.Logger)

	// API v1 routes
	v1 := r.Group("/api/v1")

	// --- Authentication routes ---
	authHandler := NewAuthHandler(deps.AuthSvc, deps.LedgerSvc)
	auth := v1.Group("/auth")
	{
		auth.POST("/register", rl("auth_register"), authHandler.Register)
		// Tokenless only while the user table is empty (first-admin bootstrap).
		auth.POST("/register-admin", optionalJWT, rl("auth_register"), authHandler.RegisterAdmin)
		auth.POST("/login", rl("auth_login"), authHandler.Login)
		auth.POST("/refresh", rl("auth_login"), authHandler.Refresh)
		auth.POST("/logout", rl("auth_login"), authHandler.Logout)
	}

	// --- Account routes (JWT-authenticated) ---
	accountHandler := NewAccountHandler(deps.LedgerSvc)
	account := v1.Group("/account", jwtAuth)
	{
		account.GET("", rl("account"), accountHandler.GetAccount)
		account.POST("/deposit", rl("account"), accountHandler.Deposit)
		account.POST("/withdraw", rl("account"), accountHandler.Withdraw)
		account.POST("/transfer", rl("account"), accountHandler.Transfer)
	}

	return r
}
