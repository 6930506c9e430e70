package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/ewenunessn/gestaoescolar-sub007/internal/application/auth"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/application/entregas"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/application/estoque"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/application/faturamento"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/application/sincronizacao"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/application/usecase"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain/entity"
)

// RouterDeps dependências do router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	UserUC        *usecase.UserUseCase
	TenantUC      *usecase.TenantUseCase
	ModuleService *usecase.ModuleService
	EscolaUC      *usecase.EscolaUseCase
	ProdutoUC     *usecase.ProdutoUseCase
	ContratoUC    *usecase.ContratoUseCase
	ModalidadeUC  *usecase.ModalidadeUseCase
	PedidoUC      *usecase.PedidoUseCase
	DemandaUC     *usecase.DemandaUseCase
	EstoqueUC     *estoque.UseCase
	EntregasUC    *entregas.UseCase
	FaturamentoUC *faturamento.UseCase
	SyncUC        *sincronizacao.UseCase
	RateLimiter   *RateLimiter
	Logger        zerolog.Logger
	JWTSecret     string
}

// Router registra as rotas da API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	limit := func(c *fiber.Ctx) error { return c.Next() }
	if deps.RateLimiter != nil {
		limit = deps.RateLimiter.Handler()
	}

	admin := RequireRole(entity.RoleAdmin)
	gestao := RequireRole(entity.RoleAdmin, entity.RoleGestor)
	module := func(name string) fiber.Handler {
		return RequireModule(name, deps.ModuleService, deps.Logger)
	}

	authHandler := NewAuthHandler(deps.AuthUC, deps.UserUC)
	tenantHandler := NewTenantHandler(deps.TenantUC, deps.ModuleService)

	// Públicas (limite por IP)
	api.Post("/auth/login", limit, authHandler.Login)
	api.Get("/tenants/branding/:slug", limit, tenantHandler.Branding)

	// Protegidas (Bearer Token, limite por tenant)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret), limit)

	protected.Get("/auth/me", authHandler.Me)
	protected.Post("/auth/register", admin, authHandler.Register)
	protected.Get("/users", admin, authHandler.ListUsers)

	tenants := protected.Group("/tenants")
	tenants.Get("/me", tenantHandler.Current)
	tenants.Put("/me/branding", admin, tenantHandler.UpdateBranding)
	tenants.Post("/", admin, tenantHandler.Create)
	tenants.Get("/", admin, tenantHandler.List)
	tenants.Put("/:id/modules", admin, tenantHandler.SetModule)

	escolaHandler := NewEscolaHandler(deps.EscolaUC)
	escolas := protected.Group("/escolas")
	escolas.Get("/", escolaHandler.List)
	escolas.Post("/", gestao, escolaHandler.Create)
	escolas.Get("/:id", escolaHandler.GetByID)
	escolas.Put("/:id", gestao, escolaHandler.Update)

	produtoHandler := NewProdutoHandler(deps.ProdutoUC)
	produtos := protected.Group("/produtos")
	produtos.Get("/", produtoHandler.List)
	produtos.Post("/", gestao, produtoHandler.Create)
	produtos.Get("/:id", produtoHandler.GetByID)
	produtos.Put("/:id", gestao, produtoHandler.Update)

	// Estoque escolar (app da escola e console)
	estoqueHandler := NewEstoqueHandler(deps.EstoqueUC)
	est := escolas.Group("/:escolaId/estoque",
		module(entity.ModuleEstoque),
		RequireRole(entity.RoleAdmin, entity.RoleGestor, entity.RoleEscola),
	)
	est.Get("/", estoqueHandler.ListarItens)
	est.Get("/export", estoqueHandler.ExportarCSV)
	est.Get("/movimentacoes", estoqueHandler.Historico)
	est.Post("/entradas", estoqueHandler.RegistrarEntrada)
	est.Post("/saidas/simular", estoqueHandler.SimularSaida)
	est.Post("/saidas", estoqueHandler.ConfirmarSaida)
	est.Get("/:produtoId/lotes", estoqueHandler.ListarLotes)

	// Entregas (app do entregador e console)
	entregaHandler := NewEntregaHandler(deps.EntregasUC)
	ent := protected.Group("/entregas", module(entity.ModuleEntregas))
	campo := RequireRole(entity.RoleAdmin, entity.RoleGestor, entity.RoleEntregador)
	ent.Get("/rotas", campo, entregaHandler.ListarRotas)
	ent.Post("/rotas", gestao, entregaHandler.CriarRota)
	ent.Put("/rotas/:id", gestao, entregaHandler.AtualizarRota)
	ent.Get("/rotas/:id/escolas", campo, entregaHandler.EscolasDaRota)
	ent.Put("/rotas/:id/escolas", gestao, entregaHandler.DefinirEscolas)
	ent.Get("/rotas/:id/romaneio", campo, entregaHandler.Romaneio)
	ent.Get("/escolas/:escolaId/itens", entregaHandler.ItensDaEscola)
	ent.Post("/itens", gestao, entregaHandler.ProgramarItens)
	ent.Post("/itens/:id/confirmar", campo, entregaHandler.ConfirmarEntrega)
	ent.Post("/itens/:id/cancelar", gestao, entregaHandler.CancelarEntrega)

	// Fila offline; a autorização por tipo de operação fica no caso de uso.
	syncHandler := NewSyncHandler(deps.SyncUC)
	protected.Post("/sync", syncHandler.Replay)

	// Demandas
	demandaHandler := NewDemandaHandler(deps.DemandaUC)
	dem := protected.Group("/demandas", module(entity.ModuleDemandas))
	dem.Get("/", demandaHandler.List)
	dem.Post("/", demandaHandler.Create)
	dem.Get("/:id", demandaHandler.GetByID)
	dem.Put("/:id/status", gestao, demandaHandler.UpdateStatus)
	dem.Delete("/:id", gestao, demandaHandler.Delete)

	// Contratos, modalidades, pedidos e faturamento (console)
	fat := func(prefix string) fiber.Router {
		return protected.Group(prefix, module(entity.ModuleFaturamento), gestao)
	}
	contratoHandler := NewContratoHandler(deps.ContratoUC, deps.ModalidadeUC)
	contratos := fat("/contratos")
	contratos.Get("/", contratoHandler.List)
	contratos.Post("/", contratoHandler.Create)
	contratos.Get("/:id", contratoHandler.GetByID)

	modalidades := fat("/modalidades")
	modalidades.Get("/", contratoHandler.ListModalidades)
	modalidades.Post("/", contratoHandler.CreateModalidade)
	modalidades.Put("/:id", contratoHandler.UpdateModalidade)

	pedidoHandler := NewPedidoHandler(deps.PedidoUC, deps.FaturamentoUC)
	pedidos := fat("/pedidos")
	pedidos.Get("/", pedidoHandler.List)
	pedidos.Post("/", pedidoHandler.Create)
	pedidos.Get("/:id", pedidoHandler.GetByID)
	pedidos.Post("/:id/aprovar", pedidoHandler.Aprovar)
	pedidos.Post("/:id/cancelar", pedidoHandler.Cancelar)
	pedidos.Get("/:id/faturamento/calculo", pedidoHandler.CalcularFaturamento)
	pedidos.Get("/:id/faturamento", pedidoHandler.ListarFaturamentos)
	pedidos.Post("/:id/faturamento", pedidoHandler.GerarFaturamento)

	faturamentos := fat("/faturamentos")
	faturamentos.Get("/:id", pedidoHandler.BuscarFaturamento)
	faturamentos.Post("/:id/cancelar", pedidoHandler.CancelarFaturamento)
	faturamentos.Get("/:id/pdf", pedidoHandler.RelatorioFaturamento)
}
