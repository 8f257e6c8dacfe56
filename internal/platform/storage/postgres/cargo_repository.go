package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/marcelojr/eleicoes-diretoria/internal/domain"
)

// CargoRepository lê o catálogo estático de cargos.
type CargoRepository struct {
	db *gorm.DB
}

func NewCargoRepository(db *gorm.DB) *CargoRepository {
	return &CargoRepository{db: db}
}

func (r *CargoRepository) Listar(ctx context.Context) ([]domain.Cargo, error) {
	var cargos []domain.Cargo
	if err := r.db.WithContext(ctx).
		// A ordem de exibição define a sequência de votação de toda eleição.
		Order("ordem ASC").
		Find(&cargos).Error; err != nil {
		return nil, fmt.Errorf("gorm cargo: listar: %w", err)
	}
	return cargos, nil
}

func (r *CargoRepository) PorID(ctx context.Context, id domain.CargoID) (domain.Cargo, error) {
	var c domain.Cargo
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Cargo{}, domain.ErrNotFound
		}
		return domain.Cargo{}, fmt.Errorf("gorm cargo: buscar id: %w", err)
	}
	return c, nil
}

var _ domain.CargoRepository = (*CargoRepository)(nil)
