package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ewenunessn/gestaoescolar-sub007/internal/application/dto"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain/entity"
	"github.com/ewenunessn/gestaoescolar-sub007/internal/domain/repository"
	"github.com/ewenunessn/gestaoescolar-sub007/pkg/jwt"
)

// JWTConfig configuração para geração de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticação: cadastro de usuário e login.
type AuthUseCase struct {
	userRepo   repository.UserRepository
	tenantRepo repository.TenantRepository
	escolaRepo repository.EscolaRepository
	jwtCfg     JWTConfig
	hashCost   int
}

// NewAuthUseCase constrói o caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, tenantRepo repository.TenantRepository, escolaRepo repository.EscolaRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{
		userRepo:   userRepo,
		tenantRepo: tenantRepo,
		escolaRepo: escolaRepo,
		jwtCfg:     jwtCfg,
		hashCost:   bcrypt.DefaultCost,
	}
}

// RegisterUser cria um usuário no tenant com senha em bcrypt.
// Devolve ErrEmailAlreadyExists se o email já existe no tenant.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, tenantID string, in dto.RegisterRequest) (*dto.UserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || len(in.Password) < 8 {
		return nil, fmt.Errorf("%w: email e senha (mínimo 8 caracteres) obrigatórios", domain.ErrInvalidInput)
	}
	role := in.Role
	if role == "" {
		role = entity.RoleGestor
	}
	if !entity.ValidRole(role) {
		return nil, fmt.Errorf("%w: perfil %q", domain.ErrInvalidInput, role)
	}
	if role == entity.RoleEscola {
		if in.EscolaID == "" {
			return nil, fmt.Errorf("%w: perfil escola exige escola_id", domain.ErrInvalidInput)
		}
		e, err := uc.escolaRepo.GetByID(ctx, tenantID, in.EscolaID)
		if err != nil {
			return nil, err
		}
		if e == nil {
			return nil, fmt.Errorf("%w: escola %s", domain.ErrNotFound, in.EscolaID)
		}
	}
	existing, err := uc.userRepo.GetByEmail(ctx, tenantID, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), uc.hashCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	nome := strings.TrimSpace(in.Nome)
	if nome == "" {
		nome = email
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		TenantID:     tenantID,
		Email:        email,
		PasswordHash: string(hash),
		Nome:         nome,
		Role:         role,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if role == entity.RoleEscola {
		user.EscolaID = in.EscolaID
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Login resolve o tenant pelo slug, confere email e senha e devolve o token com o branding.
// Tenant inexistente, usuário inexistente e senha errada dão o mesmo ErrUnauthorized.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	tenant, err := uc.tenantRepo.GetBySlug(ctx, strings.ToLower(strings.TrimSpace(in.Tenant)))
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, domain.ErrUnauthorized
	}
	if tenant.Status != entity.TenantStatusActive {
		return nil, fmt.Errorf("%w: tenant %s", domain.ErrForbidden, tenant.Status)
	}
	user, err := uc.userRepo.GetByEmail(ctx, tenant.ID, strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != "active" {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, jwt.Identity{
		UserID:   user.ID,
		TenantID: user.TenantID,
		Role:     user.Role,
		EscolaID: user.EscolaID,
	}, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(user),
		Branding: dto.BrandingResponse{
			TenantNome:    tenant.Nome,
			Slug:          tenant.Slug,
			CorPrimaria:   tenant.Branding.CorPrimaria,
			CorSecundaria: tenant.Branding.CorSecundaria,
			LogoURL:       tenant.Branding.LogoURL,
		},
	}, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		TenantID:  u.TenantID,
		EscolaID:  u.EscolaID,
		Email:     u.Email,
		Nome:      u.Nome,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
