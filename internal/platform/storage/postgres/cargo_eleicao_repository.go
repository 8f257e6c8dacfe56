package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/marcelojr/eleicoes-diretoria/internal/domain"
)

// CargoEleicaoRepository controla o estado de votação dos cargos de cada eleição.
// Toda transição multi-linha roda dentro de uma transação.
type CargoEleicaoRepository struct {
	db *gorm.DB
}

func NewCargoEleicaoRepository(db *gorm.DB) *CargoEleicaoRepository {
	return &CargoEleicaoRepository{db: db}
}

func (r *CargoEleicaoRepository) ListarPorEleicao(ctx context.Context, eleicaoID domain.EleicaoID) ([]domain.CargoEleicaoDetalhado, error) {
	var cargos []domain.CargoEleicao
	if err := r.db.WithContext(ctx).
		Where("eleicao_id = ?", eleicaoID).
		Order("ordem ASC").
		Find(&cargos).Error; err != nil {
		return nil, fmt.Errorf("gorm cargo eleicao: listar: %w", err)
	}

	nomes, err := r.nomesDosCargos(ctx)
	if err != nil {
		return nil, err
	}

	detalhados := make([]domain.CargoEleicaoDetalhado, len(cargos))
	for i, cargo := range cargos {
		detalhados[i] = domain.CargoEleicaoDetalhado{
			CargoEleicao: cargo,
			NomeCargo:    nomes[cargo.CargoID],
		}
	}
	return detalhados, nil
}

func (r *CargoEleicaoRepository) Ativo(ctx context.Context, eleicaoID domain.EleicaoID) (domain.CargoEleicaoDetalhado, error) {
	var cargo domain.CargoEleicao
	if err := r.db.WithContext(ctx).
		Where("eleicao_id = ? AND status = ?", eleicaoID, domain.CargoAtivo).
		First(&cargo).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.CargoEleicaoDetalhado{}, domain.ErrNotFound
		}
		return domain.CargoEleicaoDetalhado{}, fmt.Errorf("gorm cargo eleicao: buscar ativo: %w", err)
	}

	nomes, err := r.nomesDosCargos(ctx)
	if err != nil {
		return domain.CargoEleicaoDetalhado{}, err
	}

	return domain.CargoEleicaoDetalhado{CargoEleicao: cargo, NomeCargo: nomes[cargo.CargoID]}, nil
}

func (r *CargoEleicaoRepository) PorID(ctx context.Context, id domain.CargoEleicaoID) (domain.CargoEleicao, error) {
	var cargo domain.CargoEleicao
	if err := r.db.WithContext(ctx).First(&cargo, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.CargoEleicao{}, domain.ErrNotFound
		}
		return domain.CargoEleicao{}, fmt.Errorf("gorm cargo eleicao: buscar id: %w", err)
	}
	return cargo, nil
}

func (r *CargoEleicaoRepository) ProximoPendente(ctx context.Context, eleicaoID domain.EleicaoID) (domain.CargoEleicao, error) {
	var cargo domain.CargoEleicao
	if err := r.db.WithContext(ctx).
		Where("eleicao_id = ? AND status = ?", eleicaoID, domain.CargoPendente).
		Order("ordem ASC").
		First(&cargo).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.CargoEleicao{}, domain.ErrNotFound
		}
		return domain.CargoEleicao{}, fmt.Errorf("gorm cargo eleicao: proximo pendente: %w", err)
	}
	return cargo, nil
}

func (r *CargoEleicaoRepository) Abrir(ctx context.Context, eleicaoID domain.EleicaoID, id domain.CargoEleicaoID, em time.Time) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var alvo domain.CargoEleicao
		if err := tx.First(&alvo, "id = ? AND eleicao_id = ?", id, eleicaoID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}

		// Concluir o cargo ativo atual e ativar o alvo na mesma transação
		// sustenta o invariante de no máximo um cargo ativo por eleição.
		if err := tx.Model(&domain.CargoEleicao{}).
			Where("eleicao_id = ? AND status = ?", eleicaoID, domain.CargoAtivo).
			Updates(map[string]any{
				"status":       domain.CargoConcluido,
				"encerrado_em": em,
			}).Error; err != nil {
			return err
		}

		return tx.Model(&domain.CargoEleicao{}).
			Where("id = ?", id).
			Updates(map[string]any{
				"status":    domain.CargoAtivo,
				"aberto_em": em,
			}).Error
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return fmt.Errorf("gorm cargo eleicao: abrir: %w", err)
	}
	return nil
}

func (r *CargoEleicaoRepository) AtualizarEscrutinio(ctx context.Context, id domain.CargoEleicaoID, escrutinio int) error {
	res := r.db.WithContext(ctx).Model(&domain.CargoEleicao{}).
		Where("id = ?", id).
		Update("escrutinio_atual", escrutinio)
	if res.Error != nil {
		return fmt.Errorf("gorm cargo eleicao: atualizar escrutinio: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *CargoEleicaoRepository) Concluir(ctx context.Context, id domain.CargoEleicaoID, em time.Time) error {
	res := r.db.WithContext(ctx).Model(&domain.CargoEleicao{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":       domain.CargoConcluido,
			"encerrado_em": em,
		})
	if res.Error != nil {
		return fmt.Errorf("gorm cargo eleicao: concluir: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *CargoEleicaoRepository) ConcluirComVencedor(ctx context.Context, id domain.CargoEleicaoID, v domain.Vencedor, em time.Time) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&v).Error; err != nil {
			return err
		}
		return tx.Model(&domain.CargoEleicao{}).
			Where("id = ?", id).
			Updates(map[string]any{
				"status":       domain.CargoConcluido,
				"encerrado_em": em,
			}).Error
	})
	if err != nil {
		return fmt.Errorf("gorm cargo eleicao: concluir com vencedor: %w", err)
	}
	return nil
}

func (r *CargoEleicaoRepository) TodosConcluidos(ctx context.Context, eleicaoID domain.EleicaoID) (bool, error) {
	var pendentes int64
	if err := r.db.WithContext(ctx).Model(&domain.CargoEleicao{}).
		Where("eleicao_id = ? AND status <> ?", eleicaoID, domain.CargoConcluido).
		Count(&pendentes).Error; err != nil {
		return false, fmt.Errorf("gorm cargo eleicao: contar pendentes: %w", err)
	}
	return pendentes == 0, nil
}

func (r *CargoEleicaoRepository) nomesDosCargos(ctx context.Context) (map[domain.CargoID]string, error) {
	var cargos []domain.Cargo
	if err := r.db.WithContext(ctx).Find(&cargos).Error; err != nil {
		return nil, fmt.Errorf("gorm cargo eleicao: carregar catalogo: %w", err)
	}
	nomes := make(map[domain.CargoID]string, len(cargos))
	for _, c := range cargos {
		nomes[c.ID] = c.Nome
	}
	return nomes, nil
}

var _ domain.CargoEleicaoRepository = (*CargoEleicaoRepository)(nil)
