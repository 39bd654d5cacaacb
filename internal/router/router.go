package router

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/thiagofdruzian/ERP/internal/config"
	"github.com/thiagofdruzian/ERP/internal/handler"
	"github.com/thiagofdruzian/ERP/internal/infra"
	"github.com/thiagofdruzian/ERP/internal/middleware"
	"github.com/thiagofdruzian/ERP/internal/model"
	"github.com/thiagofdruzian/ERP/internal/repository"
	"github.com/thiagofdruzian/ERP/internal/service"
	"github.com/thiagofdruzian/ERP/internal/worker"
)

const rateLimiterPurgeInterval = 5 * time.Minute

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
// ctx bounds the background goroutines owned by the HTTP layer.
func New(ctx context.Context, cfg *config.Config, db *gorm.DB, rdb *redis.Client, auditCB *infra.CircuitBreaker) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	apiLimiter := middleware.NewRateLimiter(cfg.APIRateLimitPerMin, time.Minute,
		"Muitas requisicoes. Tente novamente em instantes.")
	loginLimiter := middleware.LoginRateLimiter()
	apiLimiter.StartPurge(ctx, rateLimiterPurgeInterval)
	loginLimiter.StartPurge(ctx, rateLimiterPurgeInterval)

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.AllowedOrigins()))
	r.Use(middleware.ErrorHandler())
	r.Use(apiLimiter.Handler())

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	quoteRepo := repository.NewQuoteRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	ruleRepo := repository.NewMinPriceRuleRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	// Worker dispatcher, injected into every service that emits audit events
	dispatcher := worker.NewDispatcher(rdb, auditCB)

	// ── Services ─────────────────────────────────────────────────────────────
	cacheTTL := time.Duration(cfg.SettingsCacheTTLMinutes) * time.Minute
	authSvc := service.NewAuthService(usuarioRepo, cfg, dispatcher)
	settingsSvc := service.NewSettingsService(settingsRepo, ruleRepo, rdb, cacheTTL, dispatcher)
	pricingSvc := service.NewPricingService(settingsSvc)
	var mail service.EmailDispatcher
	if infra.NewMailer(cfg).Enabled() {
		mail = dispatcher
	}
	quoteSvc := service.NewQuoteService(quoteRepo, pricingSvc, dispatcher, mail, cfg.QuoteListDefaultLimit)
	auditSvc := service.NewAuditService(auditRepo, cfg.AuditListDefaultLimit)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usuariosH := handler.NewUsuariosHandler(authSvc)
	pricingH := handler.NewPricingHandler(pricingSvc)
	quotesH := handler.NewQuotesHandler(quoteSvc)
	settingsH := handler.NewSettingsHandler(settingsSvc)
	auditH := handler.NewAuditHandler(auditSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb, auditCB))

	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", loginLimiter.Handler(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes; any authenticated role unless stated
	v1 := r.Group("/v1", middleware.JWTAuth(cfg.JWTSecret))
	gerencia := middleware.RequireRole(model.RoleGerencia)
	{
		v1.POST("/precos/calcular", pricingH.Calcular)

		cot := v1.Group("/cotacoes")
		{
			cot.POST("", quotesH.Criar)
			cot.GET("", quotesH.Listar)
			cot.GET("/exportar", quotesH.Exportar)
			cot.GET("/:id", quotesH.ObterPorID)
			cot.PUT("/:id", quotesH.Atualizar)
			cot.GET("/:id/versoes", quotesH.ListarVersoes)
			cot.GET("/:id/versoes/:versao", quotesH.ObterVersao)
			cot.POST("/:id/duplicar", quotesH.Duplicar)
			cot.GET("/:id/pdf", quotesH.BaixarPDF)
			cot.POST("/:id/enviar", quotesH.Enviar)
		}

		cfgGroup := v1.Group("/configuracoes")
		{
			cfgGroup.GET("/arredondamento", settingsH.ObterArredondamento)
			cfgGroup.PUT("/arredondamento", gerencia, settingsH.DefinirArredondamento)
			cfgGroup.GET("/precos-minimos", settingsH.ListarPrecosMinimos)
			cfgGroup.PUT("/precos-minimos", gerencia, settingsH.DefinirPrecoMinimo)
		}

		v1.GET("/auditoria", gerencia, auditH.Listar)

		usuarios := v1.Group("/usuarios", gerencia)
		{
			usuarios.POST("", usuariosH.Criar)
			usuarios.GET("", usuariosH.Listar)
		}
	}

	// Swagger UI only outside production
	if !cfg.IsProduction() {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
