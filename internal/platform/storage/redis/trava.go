package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/marcelojr/eleicoes-diretoria/internal/domain"
	"github.com/marcelojr/eleicoes-diretoria/internal/platform/ids"
)

var ErrTravaOcupada = fmt.Errorf("eleicao em uso por outra operacao")

// Lua garante que só o dono da trava consegue liberá-la.
const scriptLiberar = `
if redis.call("get", KEYS[1]) == ARGV[1] then
    return redis.call("del", KEYS[1])
end
return 0
`

// Trava serializa mutações concorrentes da mesma eleição via SETNX com TTL.
// O TTL evita deadlock se o processo morrer segurando a trava.
type Trava struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	ids    *ids.Generator
}

func NewTrava(client *redis.Client, prefix string, ttl time.Duration) *Trava {
	if prefix == "" {
		prefix = "trava:eleicao"
	}
	if ttl <= 0 {
		ttl = 10 * time.Second
	}
	return &Trava{
		client: client,
		prefix: prefix,
		ttl:    ttl,
		ids:    ids.NewGenerator(),
	}
}

func (t *Trava) ComTrava(ctx context.Context, chave string, fn func(ctx context.Context) error) error {
	key := fmt.Sprintf("%s:%s", t.prefix, chave)
	token := t.ids.New()

	ok, err := t.client.SetNX(ctx, key, token, t.ttl).Result()
	if err != nil {
		return fmt.Errorf("trava: falha ao adquirir %s: %w", chave, err)
	}
	if !ok {
		return ErrTravaOcupada
	}

	defer func() {
		// Liberação em contexto próprio: a trava deve cair mesmo com o request cancelado.
		ctxLiberar, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = t.client.Eval(ctxLiberar, scriptLiberar, []string{key}, token).Err()
	}()

	return fn(ctx)
}

var _ domain.Trava = (*Trava)(nil)

// TravaNoop executa a função sem serialização; usada em testes e quando não há Redis.
type TravaNoop struct{}

func (TravaNoop) ComTrava(ctx context.Context, chave string, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

var _ domain.Trava = TravaNoop{}
