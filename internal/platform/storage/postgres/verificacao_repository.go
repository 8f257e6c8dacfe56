package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/marcelojr/eleicoes-diretoria/internal/domain"
)

// VerificacaoRepository guarda hashes de verificação de relatórios e resolve hash -> eleição.
type VerificacaoRepository struct {
	db *gorm.DB
}

func NewVerificacaoRepository(db *gorm.DB) *VerificacaoRepository {
	return &VerificacaoRepository{db: db}
}

func (r *VerificacaoRepository) Salvar(ctx context.Context, v domain.VerificacaoRelatorio) error {
	if err := r.db.WithContext(ctx).Create(&v).Error; err != nil {
		return fmt.Errorf("gorm verificacao: inserir: %w", err)
	}
	return nil
}

func (r *VerificacaoRepository) PorHash(ctx context.Context, hash string) (domain.VerificacaoDetalhada, error) {
	var v domain.VerificacaoRelatorio
	if err := r.db.WithContext(ctx).First(&v, "hash = ?", hash).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.VerificacaoDetalhada{}, domain.ErrNotFound
		}
		return domain.VerificacaoDetalhada{}, fmt.Errorf("gorm verificacao: buscar hash: %w", err)
	}

	var e domain.Eleicao
	if err := r.db.WithContext(ctx).First(&e, "id = ?", v.EleicaoID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.VerificacaoDetalhada{}, domain.ErrNotFound
		}
		return domain.VerificacaoDetalhada{}, fmt.Errorf("gorm verificacao: carregar eleicao: %w", err)
	}

	return domain.VerificacaoDetalhada{VerificacaoRelatorio: v, Eleicao: e}, nil
}

var _ domain.VerificacaoRepository = (*VerificacaoRepository)(nil)
