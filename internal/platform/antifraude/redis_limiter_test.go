package antifraude

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/marcelojr/eleicoes-diretoria/internal/domain"
)

func TestRedisRateLimiterRespectsLimit(t *testing.T) {
	mr := miniredis.RunT(t)
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	limiter := NewRedisRateLimiter(client, 2, time.Minute, "rl")

	votante := domain.MembroID("membro-1")

	ctx := context.Background()
	if err := limiter.Validar(ctx, votante); err != nil {
		t.Fatalf("primeiro voto deveria ser aceito, erro: %v", err)
	}
	if err := limiter.Validar(ctx, votante); err != nil {
		t.Fatalf("segundo voto deveria ser aceito, erro: %v", err)
	}

	if err := limiter.Validar(ctx, votante); !errors.Is(err, ErrRateLimitExceeded) {
		t.Fatalf("terceiro voto deveria ser bloqueado, recebeu: %v", err)
	}

	if ttl := mr.TTL("rl:membro-1"); ttl <= 0 {
		t.Fatalf("esperava TTL positivo para a chave do votante, veio %v", ttl)
	}
}

func TestRedisRateLimiterResetsAfterWindow(t *testing.T) {
	mr := miniredis.RunT(t)
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	window := 30 * time.Second
	limiter := NewRedisRateLimiter(client, 1, window, "rl")

	votante := domain.MembroID("membro-2")

	ctx := context.Background()
	if err := limiter.Validar(ctx, votante); err != nil {
		t.Fatalf("voto inicial deveria ser aceito: %v", err)
	}
	if err := limiter.Validar(ctx, votante); !errors.Is(err, ErrRateLimitExceeded) {
		t.Fatalf("segundo voto antes da janela deveria falhar: %v", err)
	}

	mr.FastForward(window + time.Second)

	if err := limiter.Validar(ctx, votante); err != nil {
		t.Fatalf("apos expirar janela, voto deveria ser aceito: %v", err)
	}
}

func TestNoopSempreAceita(t *testing.T) {
	limiter := NewNoop()
	for i := 0; i < 10; i++ {
		if err := limiter.Validar(context.Background(), "membro-1"); err != nil {
			t.Fatalf("noop nunca deveria bloquear, erro: %v", err)
		}
	}
}
