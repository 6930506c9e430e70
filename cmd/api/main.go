package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/ewenunessn/gestaoescolar-sub007/internal/application/auth"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/application/entregas"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/application/estoque"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/application/faturamento"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/application/ports"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/application/sincronizacao"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/application/usecase"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/infrastructure/cache"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/infrastructure/export"
	infrapdf "github.com/ewenunessn/gestaoescolar-sub007/internal/infrastructure/pdf"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/infrastructure/postgres"
	httpRouter "github.com/ewenunessn/gestaoescolar-sub007/internal/interfaces/http"
	"github.com/ewenunessn/gestaoescolar-sub007/pkg/config"
	"github.com/ewenunessn/gestaoescolar-sub007/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicação")

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DB, postgres.PoolOptions{MaxConns: int32(cfg.DB.MaxConns)})
	if err != nil {
		log.Fatal().Err(err).Msg("conexão com PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		n, err := postgres.Migrate(ctx, pool, log.Component("migrate"))
		if err != nil {
			log.Fatal().Err(err).Msg("aplicar migrations")
		}
		log.Info().Int("aplicadas", n).Msg("migrations verificadas")
	}

	var appCache ports.Cache
	if cfg.Redis.Enabled() {
		rdb, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("conexão com Redis")
		}
		defer rdb.Close()
		appCache = cache.NewRedisCache(rdb, cache.WithKeyPrefix(cfg.App.Name+":"))
		log.Info().Str("addr", cfg.Redis.Addr).Msg("cache Redis habilitado")
	} else {
		mem := cache.NewMemoryCache()
		mem.StartJanitor(ctx, time.Minute)
		appCache = mem
		log.Warn().Msg("REDIS_ADDR vazio, usando cache em memória")
	}

	tenantRepo := postgres.NewTenantRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	escolaRepo := postgres.NewEscolaRepository(pool)
	produtoRepo := postgres.NewProdutoRepository(pool)
	loteRepo := postgres.NewLoteRepository(pool)
	movRepo := postgres.NewMovimentacaoRepository(pool)
	itensEstoqueRepo := postgres.NewEstoqueEscolaRepository(pool)
	rotaRepo := postgres.NewRotaRepository(pool)
	itemEntregaRepo := postgres.NewItemEntregaRepository(pool)
	demandaRepo := postgres.NewDemandaRepository(pool)
	contratoRepo := postgres.NewContratoRepository(pool)
	modalidadeRepo := postgres.NewModalidadeRepository(pool)
	pedidoRepo := postgres.NewPedidoRepository(pool)
	faturamentoRepo := postgres.NewFaturamentoRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	pdfGenerator := infrapdf.NewMarotoPDFGenerator()

	tenantUC := usecase.NewTenantUseCase(tenantRepo)
	moduleSvc := usecase.NewModuleService(tenantRepo)
	userUC := usecase.NewUserUseCase(userRepo)
	escolaUC := usecase.NewEscolaUseCase(escolaRepo)
	produtoUC := usecase.NewProdutoUseCase(produtoRepo)
	contratoUC := usecase.NewContratoUseCase(contratoRepo, produtoRepo)
	modalidadeUC := usecase.NewModalidadeUseCase(modalidadeRepo)
	pedidoUC := usecase.NewPedidoUseCase(pedidoRepo, contratoRepo)
	demandaUC := usecase.NewDemandaUseCase(demandaRepo, escolaRepo)

	estoqueUC := estoque.NewUseCase(estoque.Deps{
		TxRunner:    txRunner,
		EscolaRepo:  escolaRepo,
		ProdutoRepo: produtoRepo,
		LoteRepo:    loteRepo,
		MovRepo:     movRepo,
		ItensRepo:   itensEstoqueRepo,
		Cache:       appCache,
		CSV:         export.NewGotaCSVExporter(),
		Logger:      log.Component("estoque"),
	}, estoque.Config{
		DiasAlertaValidade: cfg.Estoque.DiasAlertaValidade,
		CacheTTL:           cfg.Cache.TTL(),
	})

	entregasUC := entregas.NewUseCase(entregas.Deps{
		TenantRepo:  tenantRepo,
		RotaRepo:    rotaRepo,
		ItemRepo:    itemEntregaRepo,
		EscolaRepo:  escolaRepo,
		ProdutoRepo: produtoRepo,
		Cache:       appCache,
		PDF:         pdfGenerator,
		Logger:      log.Component("entregas"),
		CacheTTL:    cfg.Cache.TTL(),
	})

	faturamentoUC := faturamento.NewUseCase(faturamento.Deps{
		TxRunner:        txRunner,
		TenantRepo:      tenantRepo,
		PedidoRepo:      pedidoRepo,
		FaturamentoRepo: faturamentoRepo,
		ContratoRepo:    contratoRepo,
		ProdutoRepo:     produtoRepo,
		ModalidadeRepo:  modalidadeRepo,
		PDF:             pdfGenerator,
		Logger:          log.Component("faturamento"),
	})

	syncUC := sincronizacao.NewUseCase(entregasUC, estoqueUC, moduleSvc, appCache, log.Component("sync"))

	authUC := auth.NewAuthUseCase(userRepo, tenantRepo, escolaRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	limiter := httpRouter.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	limiter.StartJanitor(ctx, time.Minute)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    8 * 1024 * 1024,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI: http://localhost:<port>/docs (só quando docs/swagger.json foi gerado)
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Gestão Escolar API",
		}))
	} else {
		log.Debug().Str("arquivo", swaggerFile).Msg("swagger desabilitado")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		pingCtx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(pingCtx); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		UserUC:        userUC,
		TenantUC:      tenantUC,
		ModuleService: moduleSvc,
		EscolaUC:      escolaUC,
		ProdutoUC:     produtoUC,
		ContratoUC:    contratoUC,
		ModalidadeUC:  modalidadeUC,
		PedidoUC:      pedidoUC,
		DemandaUC:     demandaUC,
		EstoqueUC:     estoqueUC,
		EntregasUC:    entregasUC,
		FaturamentoUC: faturamentoUC,
		SyncUC:        syncUC,
		RateLimiter:   limiter,
		Logger:        log.Component("http"),
		JWTSecret:     cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de desligamento recebido, encerrando servidor...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("desligamento do servidor")
	}

	log.Info().Msg("aplicação encerrada")
}
