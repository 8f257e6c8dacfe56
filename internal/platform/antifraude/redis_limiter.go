// Pacote antifraude controla a cadência de votos por votante (rate limit Redis e modo noop).
package antifraude

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/marcelojr/eleicoes-diretoria/internal/domain"
)

var ErrRateLimitExceeded = fmt.Errorf("limite de votos atingido")

// RedisRateLimiter limita votos por votante em janelas fixas usando Redis.
type RedisRateLimiter struct {
	client    *redis.Client
	limit     int
	window    time.Duration
	keyPrefix string
}

func NewRedisRateLimiter(client *redis.Client, limit int, window time.Duration, prefix string) *RedisRateLimiter {
	if prefix == "" {
		prefix = "ratelimit:voto"
	}
	return &RedisRateLimiter{
		client:    client,
		limit:     limit,
		window:    window,
		keyPrefix: prefix,
	}
}

func (r *RedisRateLimiter) Validar(ctx context.Context, votanteID domain.MembroID) error {
	if r.client == nil || r.limit <= 0 || r.window <= 0 {
		// Configurações inválidas caem automaticamente no modo permissivo.
		return nil
	}

	key := fmt.Sprintf("%s:%s", r.keyPrefix, votanteID)
	count, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("antifraude: falha ao incrementar chave: %w", err)
	}

	if count == 1 {
		if err := r.client.Expire(ctx, key, r.window).Err(); err != nil {
			return fmt.Errorf("antifraude: falha ao definir expiracao: %w", err)
		}
	}

	if int(count) > r.limit {
		return ErrRateLimitExceeded
	}

	return nil
}

var _ domain.Antifraude = (*RedisRateLimiter)(nil)
