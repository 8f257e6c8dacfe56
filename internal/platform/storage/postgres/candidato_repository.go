package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/marcelojr/eleicoes-diretoria/internal/domain"
)

// CandidatoRepository persiste candidaturas, únicas por (membro, cargo, eleição).
type CandidatoRepository struct {
	db *gorm.DB
}

func NewCandidatoRepository(db *gorm.DB) *CandidatoRepository {
	return &CandidatoRepository{db: db}
}

func (r *CandidatoRepository) Criar(ctx context.Context, c domain.Candidato) error {
	if err := r.db.WithContext(ctx).Create(&c).Error; err != nil {
		return fmt.Errorf("gorm candidato: inserir: %w", err)
	}
	return nil
}

func (r *CandidatoRepository) Listar(ctx context.Context, eleicaoID domain.EleicaoID) ([]domain.Candidato, error) {
	var candidatos []domain.Candidato
	err := r.db.WithContext(ctx).
		Where("eleicao_id = ?", eleicaoID).
		Order("nome ASC").
		Find(&candidatos).Error
	if err != nil {
		return nil, fmt.Errorf("gorm candidato: listar: %w", err)
	}
	return candidatos, nil
}

func (r *CandidatoRepository) ListarPorCargo(ctx context.Context, eleicaoID domain.EleicaoID, cargoID domain.CargoID) ([]domain.Candidato, error) {
	var candidatos []domain.Candidato
	if err := r.db.WithContext(ctx).
		Where("eleicao_id = ? AND cargo_id = ?", eleicaoID, cargoID).
		Order("nome ASC").
		Find(&candidatos).Error; err != nil {
		return nil, fmt.Errorf("gorm candidato: listar por cargo: %w", err)
	}
	return candidatos, nil
}

func (r *CandidatoRepository) PorChave(ctx context.Context, id domain.CandidatoID, cargoID domain.CargoID, eleicaoID domain.EleicaoID) (domain.Candidato, error) {
	var c domain.Candidato
	if err := r.db.WithContext(ctx).
		First(&c, "id = ? AND cargo_id = ? AND eleicao_id = ?", id, cargoID, eleicaoID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Candidato{}, domain.ErrNotFound
		}
		return domain.Candidato{}, fmt.Errorf("gorm candidato: buscar chave: %w", err)
	}
	return c, nil
}

func (r *CandidatoRepository) Existe(ctx context.Context, membroID domain.MembroID, cargoID domain.CargoID, eleicaoID domain.EleicaoID) (bool, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&domain.Candidato{}).
		Where("membro_id = ? AND cargo_id = ? AND eleicao_id = ?", membroID, cargoID, eleicaoID).
		Count(&total).Error; err != nil {
		return false, fmt.Errorf("gorm candidato: verificar existencia: %w", err)
	}
	return total > 0, nil
}

var _ domain.CandidatoRepository = (*CandidatoRepository)(nil)
