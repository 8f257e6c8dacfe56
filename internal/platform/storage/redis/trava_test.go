package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTrava(t *testing.T) (*Trava, *goredis.Client) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewTrava(client, "trava:eleicao", 5*time.Second), client
}

func TestTrava_ComTrava_DeveExecutarELiberar(t *testing.T) {
	trava, client := setupTrava(t)
	ctx := context.Background()

	executou := false
	err := trava.ComTrava(ctx, "eleicao-1", func(ctx context.Context) error {
		executou = true

		// Dentro da seção crítica a chave existe no Redis
		existe, err := client.Exists(ctx, "trava:eleicao:eleicao-1").Result()
		require.NoError(t, err)
		assert.Equal(t, int64(1), existe)
		return nil
	})
	require.NoError(t, err)
	assert.True(t, executou)

	// Após o retorno a trava foi liberada
	existe, err := client.Exists(ctx, "trava:eleicao:eleicao-1").Result()
	require.NoError(t, err)
	assert.Equal(t, int64(0), existe)
}

func TestTrava_ComTrava_QuandoOcupada_DeveRecusar(t *testing.T) {
	trava, _ := setupTrava(t)
	ctx := context.Background()

	err := trava.ComTrava(ctx, "eleicao-1", func(ctx context.Context) error {
		// Segunda aquisição da mesma eleição enquanto a primeira roda
		return trava.ComTrava(ctx, "eleicao-1", func(ctx context.Context) error {
			t.Fatal("secao critica aninhada nao deveria executar")
			return nil
		})
	})
	assert.ErrorIs(t, err, ErrTravaOcupada)
}

func TestTrava_ComTrava_EleicoesDiferentesNaoConcorrem(t *testing.T) {
	trava, _ := setupTrava(t)
	ctx := context.Background()

	err := trava.ComTrava(ctx, "eleicao-1", func(ctx context.Context) error {
		return trava.ComTrava(ctx, "eleicao-2", func(ctx context.Context) error {
			return nil
		})
	})
	assert.NoError(t, err)
}

func TestTrava_ComTrava_DevePropagarErroDaFuncao(t *testing.T) {
	trava, client := setupTrava(t)
	ctx := context.Background()

	sentinela := errors.New("falhou")
	err := trava.ComTrava(ctx, "eleicao-1", func(ctx context.Context) error {
		return sentinela
	})
	assert.ErrorIs(t, err, sentinela)

	// Mesmo com erro a trava cai
	existe, err := client.Exists(ctx, "trava:eleicao:eleicao-1").Result()
	require.NoError(t, err)
	assert.Equal(t, int64(0), existe)
}
