package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/marcelojr/eleicoes-diretoria/internal/domain"
)

// MembroRepository mantém o quadro de associados e a remoção administrativa com cascata.
type MembroRepository struct {
	db *gorm.DB
}

func NewMembroRepository(db *gorm.DB) *MembroRepository {
	return &MembroRepository{db: db}
}

func (r *MembroRepository) Listar(ctx context.Context) ([]domain.Membro, error) {
	var membros []domain.Membro
	if err := r.db.WithContext(ctx).
		Order("nome_completo ASC").
		Find(&membros).Error; err != nil {
		return nil, fmt.Errorf("gorm membro: listar: %w", err)
	}
	return membros, nil
}

func (r *MembroRepository) ListarAtivos(ctx context.Context) ([]domain.Membro, error) {
	var membros []domain.Membro
	if err := r.db.WithContext(ctx).
		Where("membro = ? AND membro_ativo = ?", true, true).
		Order("nome_completo ASC").
		Find(&membros).Error; err != nil {
		return nil, fmt.Errorf("gorm membro: listar ativos: %w", err)
	}
	return membros, nil
}

func (r *MembroRepository) PorID(ctx context.Context, id domain.MembroID) (domain.Membro, error) {
	var m domain.Membro
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Membro{}, domain.ErrNotFound
		}
		return domain.Membro{}, fmt.Errorf("gorm membro: buscar id: %w", err)
	}
	return m, nil
}

func (r *MembroRepository) RemoverComCascata(ctx context.Context, id domain.MembroID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Votos emitidos pelo membro.
		if err := tx.Where("votante_id = ?", id).Delete(&domain.Voto{}).Error; err != nil {
			return err
		}

		// Votos recebidos e vitórias ligadas às candidaturas do membro.
		sub := tx.Model(&domain.Candidato{}).Select("id").Where("membro_id = ?", id)
		if err := tx.Where("candidato_id IN (?)", sub).Delete(&domain.Voto{}).Error; err != nil {
			return err
		}
		if err := tx.Where("candidato_id IN (?)", sub).Delete(&domain.Vencedor{}).Error; err != nil {
			return err
		}

		if err := tx.Where("membro_id = ?", id).Delete(&domain.Candidato{}).Error; err != nil {
			return err
		}
		if err := tx.Where("membro_id = ?", id).Delete(&domain.Presenca{}).Error; err != nil {
			return err
		}

		// Administradores nunca são removidos por esta rota.
		res := tx.Where("id = ? AND admin = ?", id, false).Delete(&domain.Membro{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return fmt.Errorf("gorm membro: remover com cascata: %w", err)
	}
	return nil
}

var _ domain.MembroRepository = (*MembroRepository)(nil)
