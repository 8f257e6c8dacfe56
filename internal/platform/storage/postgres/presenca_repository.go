package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/marcelojr/eleicoes-diretoria/internal/domain"
)

// PresencaRepository mantém a lista de presença de cada eleição.
type PresencaRepository struct {
	db *gorm.DB
}

func NewPresencaRepository(db *gorm.DB) *PresencaRepository {
	return &PresencaRepository{db: db}
}

func (r *PresencaRepository) Inicializar(ctx context.Context, eleicaoID domain.EleicaoID, presencas []domain.Presenca) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Reinicializar descarta a lista anterior; um único insert em lote
		// evita a janela de lista pela metade.
		if err := tx.Where("eleicao_id = ?", eleicaoID).Delete(&domain.Presenca{}).Error; err != nil {
			return err
		}
		if len(presencas) == 0 {
			return nil
		}
		return tx.Create(&presencas).Error
	})
	if err != nil {
		return fmt.Errorf("gorm presenca: inicializar: %w", err)
	}
	return nil
}

func (r *PresencaRepository) Marcar(ctx context.Context, eleicaoID domain.EleicaoID, membroID domain.MembroID, presente bool, em time.Time) error {
	res := r.db.WithContext(ctx).Model(&domain.Presenca{}).
		Where("eleicao_id = ? AND membro_id = ?", eleicaoID, membroID).
		Updates(map[string]any{
			"presente":   presente,
			"marcada_em": em,
		})
	if res.Error != nil {
		return fmt.Errorf("gorm presenca: marcar: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PresencaRepository) ListarPorEleicao(ctx context.Context, eleicaoID domain.EleicaoID) ([]domain.PresencaDetalhada, error) {
	var presencas []domain.Presenca
	if err := r.db.WithContext(ctx).
		Where("eleicao_id = ?", eleicaoID).
		Find(&presencas).Error; err != nil {
		return nil, fmt.Errorf("gorm presenca: listar: %w", err)
	}

	var membros []domain.Membro
	if err := r.db.WithContext(ctx).Find(&membros).Error; err != nil {
		return nil, fmt.Errorf("gorm presenca: carregar membros: %w", err)
	}
	porID := make(map[domain.MembroID]domain.Membro, len(membros))
	for _, m := range membros {
		porID[m.ID] = m
	}

	detalhadas := make([]domain.PresencaDetalhada, len(presencas))
	for i, p := range presencas {
		membro := porID[p.MembroID]
		detalhadas[i] = domain.PresencaDetalhada{
			Presenca:    p,
			NomeMembro:  membro.NomeCompleto,
			EmailMembro: membro.Email,
		}
	}
	return detalhadas, nil
}

func (r *PresencaRepository) PorMembro(ctx context.Context, eleicaoID domain.EleicaoID, membroID domain.MembroID) (domain.Presenca, error) {
	var p domain.Presenca
	if err := r.db.WithContext(ctx).
		First(&p, "eleicao_id = ? AND membro_id = ?", eleicaoID, membroID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Presenca{}, domain.ErrNotFound
		}
		return domain.Presenca{}, fmt.Errorf("gorm presenca: buscar membro: %w", err)
	}
	return p, nil
}

func (r *PresencaRepository) ContarPresentes(ctx context.Context, eleicaoID domain.EleicaoID) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&domain.Presenca{}).
		Where("eleicao_id = ? AND presente = ?", eleicaoID, true).
		Count(&total).Error; err != nil {
		return 0, fmt.Errorf("gorm presenca: contar presentes: %w", err)
	}
	return total, nil
}

var _ domain.PresencaRepository = (*PresencaRepository)(nil)
