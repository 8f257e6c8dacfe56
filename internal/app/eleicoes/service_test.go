package eleicoes

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/marcelojr/eleicoes-diretoria/internal/domain"
	"github.com/marcelojr/eleicoes-diretoria/internal/platform/ids"
	"github.com/marcelojr/eleicoes-diretoria/internal/platform/storage/postgres"
	redisstorage "github.com/marcelojr/eleicoes-diretoria/internal/platform/storage/redis"
)

type staticClock struct{ now time.Time }

func (c staticClock) Agora() time.Time { return c.now }

type ambiente struct {
	db            *gorm.DB
	svc           *Service
	eleicoes      *postgres.EleicaoRepository
	cargosEleicao *postgres.CargoEleicaoRepository
	presencas     *postgres.PresencaRepository
	base          time.Time
}

func novoAmbiente(t *testing.T) *ambiente {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.Eleicao{}, &domain.Cargo{}, &domain.CargoEleicao{},
		&domain.Membro{}, &domain.Candidato{}, &domain.Presenca{},
		&domain.Voto{}, &domain.Vencedor{}, &domain.VerificacaoRelatorio{},
	))
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})

	base := time.Date(2026, 3, 14, 19, 0, 0, 0, time.UTC)
	eleicoesRepo := postgres.NewEleicaoRepository(db)
	cargosEleicaoRepo := postgres.NewCargoEleicaoRepository(db)
	presencasRepo := postgres.NewPresencaRepository(db)

	svc := NewService(
		eleicoesRepo,
		postgres.NewCargoRepository(db),
		cargosEleicaoRepo,
		postgres.NewMembroRepository(db),
		presencasRepo,
		postgres.NewVencedorRepository(db),
		redisstorage.TravaNoop{},
		staticClock{now: base},
		ids.NewGenerator(),
	)

	return &ambiente{
		db:            db,
		svc:           svc,
		eleicoes:      eleicoesRepo,
		cargosEleicao: cargosEleicaoRepo,
		presencas:     presencasRepo,
		base:          base,
	}
}

func (a *ambiente) seedCatalogo(t *testing.T, nomes ...string) []domain.Cargo {
	gen := ids.NewGenerator()
	cargos := make([]domain.Cargo, len(nomes))
	for i, nome := range nomes {
		cargos[i] = domain.Cargo{
			ID:    domain.CargoID(gen.New()),
			Nome:  nome,
			Ordem: i + 1,
		}
	}
	require.NoError(t, a.db.Create(&cargos).Error)
	return cargos
}

func (a *ambiente) seedMembro(t *testing.T, nome string, ativo bool) domain.Membro {
	gen := ids.NewGenerator()
	m := domain.Membro{
		ID:           domain.MembroID(gen.New()),
		NomeCompleto: nome,
		Email:        nome + "@diretoria.org",
		Membro:       true,
		MembroAtivo:  ativo,
	}
	require.NoError(t, a.db.Create(&m).Error)
	return m
}

func TestServiceCriar_SemNome_DeveFalhar(t *testing.T) {
	amb := novoAmbiente(t)

	_, err := amb.svc.Criar(context.Background(), "")
	assert.ErrorIs(t, err, ErrNomeObrigatorio)
}

func TestServiceCriar_SemCatalogoDeCargos_DeveFalharSemDeixarRastro(t *testing.T) {
	amb := novoAmbiente(t)

	_, err := amb.svc.Criar(context.Background(), "Eleição 2026")
	assert.ErrorIs(t, err, ErrSemCargosCatalogo)

	var eleicoes int64
	require.NoError(t, amb.db.Model(&domain.Eleicao{}).Count(&eleicoes).Error)
	assert.Zero(t, eleicoes)
	var cargos int64
	require.NoError(t, amb.db.Model(&domain.CargoEleicao{}).Count(&cargos).Error)
	assert.Zero(t, cargos)
}

func TestServiceCriar_DeveAtivarEleicaoESemearCargos(t *testing.T) {
	amb := novoAmbiente(t)
	catalogo := amb.seedCatalogo(t, "Presidente", "Vice-Presidente", "Secretário")
	ctx := context.Background()

	eleicao, err := amb.svc.Criar(ctx, "Eleição 2026")
	require.NoError(t, err)
	assert.NotEmpty(t, eleicao.ID)
	assert.True(t, eleicao.Ativa)

	cargos, err := amb.cargosEleicao.ListarPorEleicao(ctx, eleicao.ID)
	require.NoError(t, err)
	require.Len(t, cargos, len(catalogo))
	for i, cargo := range cargos {
		assert.Equal(t, domain.CargoPendente, cargo.Status)
		assert.Equal(t, 1, cargo.EscrutinioAtual)
		assert.Equal(t, i+1, cargo.Ordem)
		assert.Equal(t, catalogo[i].Nome, cargo.NomeCargo)
	}
}

func TestServiceCriar_DeveDesativarEleicaoAnterior(t *testing.T) {
	amb := novoAmbiente(t)
	amb.seedCatalogo(t, "Presidente")
	ctx := context.Background()

	primeira, err := amb.svc.Criar(ctx, "Eleição 2025")
	require.NoError(t, err)
	segunda, err := amb.svc.Criar(ctx, "Eleição 2026")
	require.NoError(t, err)

	ativa, err := amb.svc.Ativa(ctx)
	require.NoError(t, err)
	assert.Equal(t, segunda.ID, ativa.ID)

	anterior, err := amb.svc.PorID(ctx, primeira.ID)
	require.NoError(t, err)
	assert.False(t, anterior.Ativa)
}

func TestServiceFinalizar_ComCargosPendentes_DeveFalhar(t *testing.T) {
	amb := novoAmbiente(t)
	amb.seedCatalogo(t, "Presidente", "Secretário")
	ctx := context.Background()

	eleicao, err := amb.svc.Criar(ctx, "Eleição 2026")
	require.NoError(t, err)

	err = amb.svc.Finalizar(ctx, eleicao.ID)
	assert.ErrorIs(t, err, ErrCargosPendentes)

	atual, err := amb.svc.PorID(ctx, eleicao.ID)
	require.NoError(t, err)
	assert.True(t, atual.Ativa)
	assert.Nil(t, atual.EncerradaEm)
}

func TestServiceFinalizar_ComTodosConcluidos_DeveEncerrar(t *testing.T) {
	amb := novoAmbiente(t)
	amb.seedCatalogo(t, "Presidente")
	ctx := context.Background()

	eleicao, err := amb.svc.Criar(ctx, "Eleição 2026")
	require.NoError(t, err)

	cargos, err := amb.cargosEleicao.ListarPorEleicao(ctx, eleicao.ID)
	require.NoError(t, err)
	for _, cargo := range cargos {
		require.NoError(t, amb.cargosEleicao.Concluir(ctx, cargo.ID, amb.base))
	}

	require.NoError(t, amb.svc.Finalizar(ctx, eleicao.ID))

	encerrada, err := amb.svc.PorID(ctx, eleicao.ID)
	require.NoError(t, err)
	assert.False(t, encerrada.Ativa)
	require.NotNil(t, encerrada.EncerradaEm)
}

func TestServiceIniciarPresenca_DeveListarSomenteMembrosAtivos(t *testing.T) {
	amb := novoAmbiente(t)
	amb.seedCatalogo(t, "Presidente")
	ctx := context.Background()

	ana := amb.seedMembro(t, "ana", true)
	amb.seedMembro(t, "bruno", false)

	eleicao, err := amb.svc.Criar(ctx, "Eleição 2026")
	require.NoError(t, err)
	require.NoError(t, amb.svc.IniciarPresenca(ctx, eleicao.ID))

	lista, err := amb.svc.ListarPresenca(ctx, eleicao.ID)
	require.NoError(t, err)
	require.Len(t, lista, 1)
	assert.Equal(t, ana.ID, lista[0].MembroID)
	assert.False(t, lista[0].Presente)

	total, err := amb.svc.ContarPresentes(ctx, eleicao.ID)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestServiceMarcarPresenca_DeveContarPresentes(t *testing.T) {
	amb := novoAmbiente(t)
	amb.seedCatalogo(t, "Presidente")
	ctx := context.Background()

	ana := amb.seedMembro(t, "ana", true)
	eleicao, err := amb.svc.Criar(ctx, "Eleição 2026")
	require.NoError(t, err)
	require.NoError(t, amb.svc.IniciarPresenca(ctx, eleicao.ID))

	require.NoError(t, amb.svc.MarcarPresenca(ctx, eleicao.ID, ana.ID, true))

	total, err := amb.svc.ContarPresentes(ctx, eleicao.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	err = amb.svc.MarcarPresenca(ctx, eleicao.ID, "desconhecido", true)
	assert.ErrorIs(t, err, ErrPresencaNaoEncontrada)
}

func TestServiceListarPresenca_DeveOcultarMembrosJaEleitos(t *testing.T) {
	amb := novoAmbiente(t)
	catalogo := amb.seedCatalogo(t, "Presidente")
	ctx := context.Background()
	gen := ids.NewGenerator()

	ana := amb.seedMembro(t, "ana", true)
	bruno := amb.seedMembro(t, "bruno", true)

	eleicao, err := amb.svc.Criar(ctx, "Eleição 2026")
	require.NoError(t, err)
	require.NoError(t, amb.svc.IniciarPresenca(ctx, eleicao.ID))

	// Ana venceu o cargo de Presidente
	candidata := domain.Candidato{
		ID: domain.CandidatoID(gen.New()), MembroID: ana.ID, Nome: ana.NomeCompleto,
		Email: ana.Email, CargoID: catalogo[0].ID, EleicaoID: eleicao.ID,
	}
	require.NoError(t, amb.db.Create(&candidata).Error)
	vencedora := domain.Vencedor{
		ID: domain.VencedorID(gen.New()), EleicaoID: eleicao.ID,
		CargoID: catalogo[0].ID, CandidatoID: candidata.ID, Escrutinio: 1,
	}
	require.NoError(t, amb.db.Create(&vencedora).Error)

	lista, err := amb.svc.ListarPresenca(ctx, eleicao.ID)
	require.NoError(t, err)
	require.Len(t, lista, 1)
	assert.Equal(t, bruno.ID, lista[0].MembroID)
}
