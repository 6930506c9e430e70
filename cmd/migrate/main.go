// migrate aplica as migrations embutidas e, opcionalmente, prepara um tenant novo:
// cria o tenant, o primeiro admin, ativa os módulos e importa as escolas de uma planilha.
//
// Uso:
//
//	go run ./cmd/migrate
//	go run ./cmd/migrate -tenant-slug semed-belem -tenant-nome "SEMED Belém" \
//	    -admin-email admin@semed.gov.br -admin-senha trocar123 -escolas escolas.csv
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ewenunessn/gestaoescolar-sub007/internal/application/auth"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/application/dto"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/application/usecase"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain/entity"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/infrastructure/postgres"
	"github.com/ewenunessn/gestaoescolar-sub007/pkg/config"
	"github.com/ewenunessn/gestaoescolar-sub007/pkg/logger"
)

var modulos = []string{
	entity.ModuleEstoque,
	entity.ModuleEntregas,
	entity.ModuleFaturamento,
	entity.ModuleDemandas,
}

func main() {
	slug := flag.String("tenant-slug", "", "slug do tenant a criar (vazio = só migrations)")
	nome := flag.String("tenant-nome", "", "nome do tenant")
	email := flag.String("admin-email", "", "email do primeiro administrador")
	senha := flag.String("admin-senha", "", "senha do primeiro administrador")
	escolasCSV := flag.String("escolas", "", "planilha ;-separada com as escolas do tenant")
	utf8 := flag.Bool("utf8", false, "planilha em UTF-8 (padrão ISO-8859-1)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Carregar configuração: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB, postgres.PoolOptions{MaxConns: 2, MinConns: 1})
	if err != nil {
		log.Fatal().Err(err).Msg("conexão com PostgreSQL")
	}
	defer pool.Close()

	n, err := postgres.Migrate(ctx, pool, log.Component("migrate"))
	if err != nil {
		log.Fatal().Err(err).Msg("aplicar migrations")
	}
	log.Info().Int("aplicadas", n).Msg("migrations concluídas")

	if *slug == "" {
		return
	}

	tenantRepo := postgres.NewTenantRepository(pool)
	escolaRepo := postgres.NewEscolaRepository(pool)
	tenantUC := usecase.NewTenantUseCase(tenantRepo)
	moduleSvc := usecase.NewModuleService(tenantRepo)
	escolaUC := usecase.NewEscolaUseCase(escolaRepo)
	authUC := auth.NewAuthUseCase(postgres.NewUserRepository(pool), tenantRepo, escolaRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	tenantID, err := garantirTenant(ctx, tenantUC, tenantRepo, *slug, *nome)
	if err != nil {
		log.Fatal().Err(err).Str("slug", *slug).Msg("criar tenant")
	}
	log.Info().Str("tenant_id", tenantID).Str("slug", *slug).Msg("tenant pronto")

	for _, m := range modulos {
		if err := moduleSvc.SetModule(ctx, tenantID, dto.SetModuleRequest{Module: m, Active: true}); err != nil {
			log.Fatal().Err(err).Str("module", m).Msg("ativar módulo")
		}
	}

	if *email != "" {
		_, err := authUC.RegisterUser(ctx, tenantID, dto.RegisterRequest{
			Email:    *email,
			Password: *senha,
			Nome:     "Administrador",
			Role:     entity.RoleAdmin,
		})
		switch {
		case errors.Is(err, domain.ErrEmailAlreadyExists):
			log.Warn().Str("email", *email).Msg("admin já cadastrado")
		case err != nil:
			log.Fatal().Err(err).Msg("criar admin")
		default:
			log.Info().Str("email", *email).Msg("admin criado")
		}
	}

	if *escolasCSV != "" {
		f, err := os.Open(*escolasCSV)
		if err != nil {
			log.Fatal().Err(err).Msg("abrir planilha de escolas")
		}
		defer f.Close()
		escolas, err := lerEscolasCSV(f, !*utf8)
		if err != nil {
			log.Fatal().Err(err).Msg("ler planilha de escolas")
		}
		for _, e := range escolas {
			if _, err := escolaUC.Create(ctx, tenantID, e); err != nil {
				log.Fatal().Err(err).Str("escola", e.Nome).Msg("importar escola")
			}
		}
		log.Info().Int("escolas", len(escolas)).Msg("escolas importadas")
	}
}

type tenantPorSlug interface {
	GetBySlug(ctx context.Context, slug string) (*entity.Tenant, error)
}

// garantirTenant cria o tenant ou reaproveita o existente com o mesmo slug.
func garantirTenant(ctx context.Context, uc *usecase.TenantUseCase, repo tenantPorSlug, slug, nome string) (string, error) {
	if nome == "" {
		nome = slug
	}
	t, err := uc.Create(ctx, dto.CreateTenantRequest{Nome: nome, Slug: slug})
	if err == nil {
		return t.ID, nil
	}
	if !errors.Is(err, domain.ErrDuplicate) {
		return "", err
	}
	existente, err := repo.GetBySlug(ctx, strings.ToLower(strings.TrimSpace(slug)))
	if err != nil {
		return "", err
	}
	if existente == nil {
		return "", domain.ErrNotFound
	}
	return existente.ID, nil
}
