package ports

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrCacheMiss indica que a chave não existe (ou expirou).
var ErrCacheMiss = errors.New("cache: chave não encontrada")

// Cache porto de saída para cache de leituras e chaves de idempotência.
// Implementações: Redis (produção) e memória (desenvolvimento e testes).
type Cache interface {
	// Get devolve ErrCacheMiss quando a chave não existe.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	// DeletePrefix remove todas as chaves que começam com prefix.
	DeletePrefix(ctx context.Context, prefix string) error
	// SetNX grava apenas se a chave não existir; devolve true quando gravou.
	SetNX(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error)
}

// GetJSON lê e decodifica um valor. found=false em cache miss.
func GetJSON(ctx context.Context, c Cache, key string, dst any) (found bool, err error) {
	raw, err := c.Get(ctx, key)
	if errors.Is(err, ErrCacheMiss) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("cache: decodificar %s: %w", key, err)
	}
	return true, nil
}

// SetJSON codifica e grava um valor.
func SetJSON(ctx context.Context, c Cache, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache: codificar %s: %w", key, err)
	}
	return c.Set(ctx, key, raw, ttl)
}

// TenantKey monta chaves no formato t:{tenant}:{partes...}; todas as chaves de um tenant
// compartilham o prefixo TenantPrefix(tenant).
func TenantKey(tenantID string, parts ...string) string {
	k := TenantPrefix(tenantID)
	for i, p := range parts {
		if i > 0 {
			k += ":"
		}
		k += p
	}
	return k
}

// TenantPrefix prefixo das chaves de um tenant.
func TenantPrefix(tenantID string) string {
	return "t:" + tenantID + ":"
}
