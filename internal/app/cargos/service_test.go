package cargos

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
	db      *gorm.DB
	svc     *Service
	eleicao domain.Eleicao
	cargos  []domain.CargoEleicao
	base    time.Time
	gen     *ids.Generator
}

// novoAmbiente sobe o banco com uma eleição ativa e os cargos pendentes informados.
func novoAmbiente(t *testing.T, nomesCargos ...string) *ambiente {
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
	gen := ids.NewGenerator()

	catalogo := make([]domain.Cargo, len(nomesCargos))
	for i, nome := range nomesCargos {
		catalogo[i] = domain.Cargo{ID: domain.CargoID(gen.New()), Nome: nome, Ordem: i + 1}
	}
	require.NoError(t, db.Create(&catalogo).Error)

	eleicao := domain.Eleicao{
		ID: domain.EleicaoID(gen.New()), Nome: "Eleição 2026", Ativa: true, CriadaEm: base,
	}
	require.NoError(t, db.Create(&eleicao).Error)

	cargos := make([]domain.CargoEleicao, len(catalogo))
	for i, c := range catalogo {
		cargos[i] = domain.CargoEleicao{
			ID: domain.CargoEleicaoID(gen.New()), EleicaoID: eleicao.ID, CargoID: c.ID,
			Ordem: i + 1, Status: domain.CargoPendente, EscrutinioAtual: 1, CriadoEm: base,
		}
	}
	require.NoError(t, db.Create(&cargos).Error)

	svc := NewService(
		postgres.NewEleicaoRepository(db),
		postgres.NewCargoEleicaoRepository(db),
		postgres.NewCandidatoRepository(db),
		postgres.NewVencedorRepository(db),
		redisstorage.TravaNoop{},
		staticClock{now: base},
		gen,
	)

	return &ambiente{db: db, svc: svc, eleicao: eleicao, cargos: cargos, base: base, gen: gen}
}

func TestServiceAbrirProximo_DeveSeguirOrdemESinalizarFim(t *testing.T) {
	amb := novoAmbiente(t, "Presidente", "Vice-Presidente", "Secretário")
	ctx := context.Background()

	for i := range amb.cargos {
		aberto, err := amb.svc.AbrirProximo(ctx, amb.eleicao.ID)
		require.NoError(t, err)
		assert.Equal(t, amb.cargos[i].ID, aberto.ID)
		assert.Equal(t, domain.CargoAtivo, aberto.Status)
	}

	// Com todos abertos uma vez, não restam pendentes
	_, err := amb.svc.AbrirProximo(ctx, amb.eleicao.ID)
	assert.ErrorIs(t, err, ErrSemCargosPendentes)

	var pendentes int64
	require.NoError(t, amb.db.Model(&domain.CargoEleicao{}).
		Where("eleicao_id = ? AND status = ?", amb.eleicao.ID, domain.CargoPendente).
		Count(&pendentes).Error)
	assert.Zero(t, pendentes)
}

func TestServiceAbrirProximo_DeveConcluirOAtivoAnterior(t *testing.T) {
	amb := novoAmbiente(t, "Presidente", "Secretário")
	ctx := context.Background()

	_, err := amb.svc.AbrirProximo(ctx, amb.eleicao.ID)
	require.NoError(t, err)
	_, err = amb.svc.AbrirProximo(ctx, amb.eleicao.ID)
	require.NoError(t, err)

	var ativos int64
	require.NoError(t, amb.db.Model(&domain.CargoEleicao{}).
		Where("eleicao_id = ? AND status = ?", amb.eleicao.ID, domain.CargoAtivo).
		Count(&ativos).Error)
	assert.Equal(t, int64(1), ativos)
}

func TestServiceAbrir_QuandoCargoNaoPendente_DeveRecusar(t *testing.T) {
	amb := novoAmbiente(t, "Presidente", "Secretário")
	ctx := context.Background()

	aberto, err := amb.svc.Abrir(ctx, amb.eleicao.ID, amb.cargos[0].ID)
	require.NoError(t, err)
	assert.Equal(t, amb.cargos[0].ID, aberto.ID)

	// Reabrir o mesmo cargo (agora ativo) não é permitido
	_, err = amb.svc.Abrir(ctx, amb.eleicao.ID, amb.cargos[0].ID)
	assert.ErrorIs(t, err, ErrCargoNaoPendente)
}

func TestServiceAbrir_QuandoCargoInexistente_DeveRetornarNotFound(t *testing.T) {
	amb := novoAmbiente(t, "Presidente")

	_, err := amb.svc.Abrir(context.Background(), amb.eleicao.ID, "inexistente")
	assert.ErrorIs(t, err, ErrCargoNaoEncontrado)
}

func TestServiceAvancarEscrutinio_DeveRespeitarLimite(t *testing.T) {
	amb := novoAmbiente(t, "Presidente")
	ctx := context.Background()

	_, err := amb.svc.Abrir(ctx, amb.eleicao.ID, amb.cargos[0].ID)
	require.NoError(t, err)

	escrutinio, err := amb.svc.AvancarEscrutinio(ctx, amb.eleicao.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, escrutinio)

	escrutinio, err = amb.svc.AvancarEscrutinio(ctx, amb.eleicao.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, escrutinio)

	_, err = amb.svc.AvancarEscrutinio(ctx, amb.eleicao.ID)
	assert.ErrorIs(t, err, ErrLimiteEscrutinio)

	// O escrutínio permanece no máximo após a recusa
	ativo, err := amb.svc.Ativo(ctx, amb.eleicao.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.EscrutinioMaximo, ativo.EscrutinioAtual)
}

func TestServiceAvancarEscrutinio_SemCargoAtivo_DeveFalhar(t *testing.T) {
	amb := novoAmbiente(t, "Presidente")

	_, err := amb.svc.AvancarEscrutinio(context.Background(), amb.eleicao.ID)
	assert.ErrorIs(t, err, ErrSemCargoAtivo)
}

func TestServiceForcarEncerramento_QuandoJaConcluido_DeveRecusar(t *testing.T) {
	amb := novoAmbiente(t, "Presidente")
	ctx := context.Background()

	_, err := amb.svc.Abrir(ctx, amb.eleicao.ID, amb.cargos[0].ID)
	require.NoError(t, err)

	require.NoError(t, amb.svc.ForcarEncerramento(ctx, amb.eleicao.ID, amb.cargos[0].ID))

	err = amb.svc.ForcarEncerramento(ctx, amb.eleicao.ID, amb.cargos[0].ID)
	assert.ErrorIs(t, err, ErrCargoJaConcluido)
}

func TestServiceResolverEmpate_DeveGravarVencedorEConcluir(t *testing.T) {
	amb := novoAmbiente(t, "Presidente")
	ctx := context.Background()

	_, err := amb.svc.Abrir(ctx, amb.eleicao.ID, amb.cargos[0].ID)
	require.NoError(t, err)

	candidata := domain.Candidato{
		ID: domain.CandidatoID(amb.gen.New()), MembroID: domain.MembroID(amb.gen.New()),
		Nome: "Ana", Email: "ana@diretoria.org",
		CargoID: amb.cargos[0].CargoID, EleicaoID: amb.eleicao.ID,
	}
	require.NoError(t, amb.db.Create(&candidata).Error)

	require.NoError(t, amb.svc.ResolverEmpate(ctx, amb.eleicao.ID, candidata.ID))

	var vencedores []domain.Vencedor
	require.NoError(t, amb.db.Where("eleicao_id = ?", amb.eleicao.ID).Find(&vencedores).Error)
	require.Len(t, vencedores, 1)
	assert.Equal(t, candidata.ID, vencedores[0].CandidatoID)
	assert.Equal(t, 1, vencedores[0].Escrutinio)

	var cargo domain.CargoEleicao
	require.NoError(t, amb.db.First(&cargo, "id = ?", amb.cargos[0].ID).Error)
	assert.Equal(t, domain.CargoConcluido, cargo.Status)
}

func TestServiceResolverEmpate_SegundaChamada_DeveRecusar(t *testing.T) {
	amb := novoAmbiente(t, "Presidente", "Secretário")
	ctx := context.Background()

	_, err := amb.svc.Abrir(ctx, amb.eleicao.ID, amb.cargos[0].ID)
	require.NoError(t, err)

	candidata := domain.Candidato{
		ID: domain.CandidatoID(amb.gen.New()), MembroID: domain.MembroID(amb.gen.New()),
		Nome: "Ana", Email: "ana@diretoria.org",
		CargoID: amb.cargos[0].CargoID, EleicaoID: amb.eleicao.ID,
	}
	require.NoError(t, amb.db.Create(&candidata).Error)

	require.NoError(t, amb.svc.ResolverEmpate(ctx, amb.eleicao.ID, candidata.ID))

	// O cargo foi concluído, não há mais cargo ativo para resolver
	err = amb.svc.ResolverEmpate(ctx, amb.eleicao.ID, candidata.ID)
	assert.ErrorIs(t, err, ErrSemCargoAtivo)

	var vencedores int64
	require.NoError(t, amb.db.Model(&domain.Vencedor{}).
		Where("eleicao_id = ?", amb.eleicao.ID).Count(&vencedores).Error)
	assert.Equal(t, int64(1), vencedores)
}

func TestServiceResolverEmpate_CandidatoDeOutroCargo_DeveRecusar(t *testing.T) {
	amb := novoAmbiente(t, "Presidente", "Secretário")
	ctx := context.Background()

	_, err := amb.svc.Abrir(ctx, amb.eleicao.ID, amb.cargos[0].ID)
	require.NoError(t, err)

	// Candidata inscrita para o segundo cargo, não para o ativo
	candidata := domain.Candidato{
		ID: domain.CandidatoID(amb.gen.New()), MembroID: domain.MembroID(amb.gen.New()),
		Nome: "Ana", Email: "ana@diretoria.org",
		CargoID: amb.cargos[1].CargoID, EleicaoID: amb.eleicao.ID,
	}
	require.NoError(t, amb.db.Create(&candidata).Error)

	err = amb.svc.ResolverEmpate(ctx, amb.eleicao.ID, candidata.ID)
	assert.ErrorIs(t, err, ErrCandidatoNaoEncontrado)
}

func TestServiceMutacoes_ComEleicaoEncerrada_DevemRecusar(t *testing.T) {
	amb := novoAmbiente(t, "Presidente")
	ctx := context.Background()

	require.NoError(t, amb.db.Model(&domain.Eleicao{}).
		Where("id = ?", amb.eleicao.ID).
		Updates(map[string]any{"ativa": false, "encerrada_em": amb.base}).Error)

	_, err := amb.svc.AbrirProximo(ctx, amb.eleicao.ID)
	assert.ErrorIs(t, err, ErrEleicaoEncerrada)

	_, err = amb.svc.Abrir(ctx, amb.eleicao.ID, amb.cargos[0].ID)
	assert.ErrorIs(t, err, ErrEleicaoEncerrada)

	_, err = amb.svc.AvancarEscrutinio(ctx, amb.eleicao.ID)
	assert.ErrorIs(t, err, ErrEleicaoEncerrada)
}
