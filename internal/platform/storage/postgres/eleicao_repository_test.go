package postgres

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
)

func setupBanco(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// Aplicar o schema completo no banco de teste
	err = db.AutoMigrate(
		&domain.Eleicao{},
		&domain.Cargo{},
		&domain.CargoEleicao{},
		&domain.Membro{},
		&domain.Candidato{},
		&domain.Presenca{},
		&domain.Voto{},
		&domain.Vencedor{},
		&domain.VerificacaoRelatorio{},
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})

	return db
}

func seedCatalogo(t *testing.T, db *gorm.DB, nomes ...string) []domain.Cargo {
	gen := ids.NewGenerator()
	cargos := make([]domain.Cargo, len(nomes))
	for i, nome := range nomes {
		cargos[i] = domain.Cargo{
			ID:            domain.CargoID(gen.New()),
			Nome:          nome,
			Ordem:         i + 1,
			MaxCandidatos: 1,
		}
	}
	require.NoError(t, db.Create(&cargos).Error)
	return cargos
}

func novaEleicaoComCargos(t *testing.T, db *gorm.DB, nome string, catalogo []domain.Cargo) (domain.Eleicao, []domain.CargoEleicao) {
	gen := ids.NewGenerator()
	repo := NewEleicaoRepository(db)

	eleicao := domain.Eleicao{
		ID:       domain.EleicaoID(gen.New()),
		Nome:     nome,
		Ativa:    true,
		CriadaEm: time.Now().UTC(),
	}
	cargos := make([]domain.CargoEleicao, len(catalogo))
	for i, c := range catalogo {
		cargos[i] = domain.CargoEleicao{
			ID:              domain.CargoEleicaoID(gen.New()),
			EleicaoID:       eleicao.ID,
			CargoID:         c.ID,
			Ordem:           i + 1,
			Status:          domain.CargoPendente,
			EscrutinioAtual: 1,
			CriadoEm:        eleicao.CriadaEm,
		}
	}
	require.NoError(t, repo.CriarComCargos(context.Background(), eleicao, cargos))
	return eleicao, cargos
}

func TestEleicaoRepository_CriarComCargos_DeveDesativarEleicaoAnterior(t *testing.T) {
	db := setupBanco(t)
	repo := NewEleicaoRepository(db)
	catalogo := seedCatalogo(t, db, "Presidente", "Secretário")

	primeira, _ := novaEleicaoComCargos(t, db, "Eleição 2025", catalogo)
	segunda, _ := novaEleicaoComCargos(t, db, "Eleição 2026", catalogo)

	ativa, err := repo.Ativa(context.Background())
	require.NoError(t, err)
	assert.Equal(t, segunda.ID, ativa.ID)

	anterior, err := repo.PorID(context.Background(), primeira.ID)
	require.NoError(t, err)
	assert.False(t, anterior.Ativa)

	// Só pode existir uma eleição ativa
	var ativas int64
	require.NoError(t, db.Model(&domain.Eleicao{}).Where("ativa = ?", true).Count(&ativas).Error)
	assert.Equal(t, int64(1), ativas)
}

func TestEleicaoRepository_CriarComCargos_DeveSemearCargosPendentes(t *testing.T) {
	db := setupBanco(t)
	catalogo := seedCatalogo(t, db, "Presidente", "Vice-Presidente", "Tesoureiro")

	eleicao, _ := novaEleicaoComCargos(t, db, "Eleição 2025", catalogo)

	var cargos []domain.CargoEleicao
	require.NoError(t, db.Where("eleicao_id = ?", eleicao.ID).Order("ordem ASC").Find(&cargos).Error)
	require.Len(t, cargos, 3)
	for i, cargo := range cargos {
		assert.Equal(t, domain.CargoPendente, cargo.Status)
		assert.Equal(t, 1, cargo.EscrutinioAtual)
		assert.Equal(t, i+1, cargo.Ordem)
	}
}

func TestEleicaoRepository_Encerrar_QuandoNaoExiste_DeveRetornarNotFound(t *testing.T) {
	db := setupBanco(t)
	repo := NewEleicaoRepository(db)

	err := repo.Encerrar(context.Background(), "inexistente", time.Now().UTC())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEleicaoRepository_UltimaEncerrada_DeveRetornarMaisRecente(t *testing.T) {
	db := setupBanco(t)
	repo := NewEleicaoRepository(db)
	catalogo := seedCatalogo(t, db, "Presidente")

	primeira, _ := novaEleicaoComCargos(t, db, "Eleição 2024", catalogo)
	segunda, _ := novaEleicaoComCargos(t, db, "Eleição 2025", catalogo)

	base := time.Now().UTC()
	require.NoError(t, repo.Encerrar(context.Background(), primeira.ID, base.Add(-time.Hour)))
	require.NoError(t, repo.Encerrar(context.Background(), segunda.ID, base))

	ultima, err := repo.UltimaEncerrada(context.Background())
	require.NoError(t, err)
	assert.Equal(t, segunda.ID, ultima.ID)
	assert.False(t, ultima.Ativa)
	require.NotNil(t, ultima.EncerradaEm)
}

func TestEleicaoRepository_UltimaEncerrada_SemEncerradas_DeveRetornarNotFound(t *testing.T) {
	db := setupBanco(t)
	repo := NewEleicaoRepository(db)

	_, err := repo.UltimaEncerrada(context.Background())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
