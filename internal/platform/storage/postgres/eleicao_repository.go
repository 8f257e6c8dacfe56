package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/marcelojr/eleicoes-diretoria/internal/domain"
)

// EleicaoRepository persiste o agregado de eleição e mantém o invariante de eleição única ativa.
type EleicaoRepository struct {
	db *gorm.DB
}

func NewEleicaoRepository(db *gorm.DB) *EleicaoRepository {
	return &EleicaoRepository{db: db}
}

func (r *EleicaoRepository) CriarComCargos(ctx context.Context, e domain.Eleicao, cargos []domain.CargoEleicao) error {
	// Uma transação cobre desativação, inserção e semeadura: nenhum leitor
	// enxerga eleição ativa sem o conjunto completo de cargos.
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&domain.Eleicao{}).
			Where("ativa = ?", true).
			Update("ativa", false).Error; err != nil {
			return err
		}

		if err := tx.Create(&e).Error; err != nil {
			return err
		}

		if len(cargos) > 0 {
			if err := tx.Create(&cargos).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("gorm eleicao: criar com cargos: %w", err)
	}
	return nil
}

func (r *EleicaoRepository) PorID(ctx context.Context, id domain.EleicaoID) (domain.Eleicao, error) {
	var e domain.Eleicao
	if err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Eleicao{}, domain.ErrNotFound
		}
		return domain.Eleicao{}, fmt.Errorf("gorm eleicao: buscar id: %w", err)
	}
	return e, nil
}

func (r *EleicaoRepository) Ativa(ctx context.Context) (domain.Eleicao, error) {
	var e domain.Eleicao
	if err := r.db.WithContext(ctx).First(&e, "ativa = ?", true).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Eleicao{}, domain.ErrNotFound
		}
		return domain.Eleicao{}, fmt.Errorf("gorm eleicao: buscar ativa: %w", err)
	}
	return e, nil
}

func (r *EleicaoRepository) Historico(ctx context.Context) ([]domain.Eleicao, error) {
	var eleicoes []domain.Eleicao
	if err := r.db.WithContext(ctx).
		Order("criada_em DESC").
		Find(&eleicoes).Error; err != nil {
		return nil, fmt.Errorf("gorm eleicao: historico: %w", err)
	}
	return eleicoes, nil
}

func (r *EleicaoRepository) Encerrar(ctx context.Context, id domain.EleicaoID, em time.Time) error {
	res := r.db.WithContext(ctx).Model(&domain.Eleicao{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"ativa":        false,
			"encerrada_em": em,
		})
	if res.Error != nil {
		return fmt.Errorf("gorm eleicao: encerrar: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *EleicaoRepository) UltimaEncerrada(ctx context.Context) (domain.Eleicao, error) {
	var e domain.Eleicao
	if err := r.db.WithContext(ctx).
		Where("encerrada_em IS NOT NULL").
		Order("encerrada_em DESC").
		First(&e).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Eleicao{}, domain.ErrNotFound
		}
		return domain.Eleicao{}, fmt.Errorf("gorm eleicao: ultima encerrada: %w", err)
	}
	return e, nil
}

var _ domain.EleicaoRepository = (*EleicaoRepository)(nil)
