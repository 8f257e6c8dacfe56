package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/marcelojr/eleicoes-diretoria/internal/domain"
)

// VotoRepository grava votos e expõe as consultas agregadas de apuração.
// Votos nunca são alterados por aqui; a única remoção é a cascata administrativa de membro.
type VotoRepository struct {
	db *gorm.DB
}

func NewVotoRepository(db *gorm.DB) *VotoRepository {
	return &VotoRepository{db: db}
}

func (r *VotoRepository) Registrar(ctx context.Context, v domain.Voto) error {
	if err := r.db.WithContext(ctx).Create(&v).Error; err != nil {
		return fmt.Errorf("gorm votos: inserir: %w", err)
	}
	return nil
}

func (r *VotoRepository) JaVotou(ctx context.Context, votanteID domain.MembroID, cargoID domain.CargoID, eleicaoID domain.EleicaoID, escrutinio int) (bool, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&domain.Voto{}).
		Where("votante_id = ? AND cargo_id = ? AND eleicao_id = ? AND escrutinio = ?",
			votanteID, cargoID, eleicaoID, escrutinio).
		Count(&total).Error; err != nil {
		return false, fmt.Errorf("gorm votos: verificar duplicado: %w", err)
	}
	return total > 0, nil
}

func (r *VotoRepository) ContagemPorCandidato(ctx context.Context, eleicaoID domain.EleicaoID, cargoID domain.CargoID, escrutinio int) ([]domain.ContagemVoto, error) {
	var contagens []domain.ContagemVoto
	if err := r.db.WithContext(ctx).Model(&domain.Voto{}).
		Select("candidato_id, COUNT(*) as total").
		Where("eleicao_id = ? AND cargo_id = ? AND escrutinio = ?", eleicaoID, cargoID, escrutinio).
		Group("candidato_id").
		Order("total DESC").
		Scan(&contagens).Error; err != nil {
		return nil, fmt.Errorf("gorm votos: contagem por candidato: %w", err)
	}
	return contagens, nil
}

func (r *VotoRepository) LinhaDoTempo(ctx context.Context, eleicaoID domain.EleicaoID) ([]domain.LinhaVoto, error) {
	var linhas []domain.LinhaVoto
	if err := r.db.WithContext(ctx).
		Raw(`
            SELECT v.id, v.votado_em, v.escrutinio,
                   c.nome AS nome_cargo,
                   ca.nome AS nome_candidato
            FROM votos v
            JOIN cargos c ON c.id = v.cargo_id
            JOIN candidatos ca ON ca.id = v.candidato_id
            WHERE v.eleicao_id = ?
            ORDER BY v.votado_em ASC
        `, eleicaoID).
		Scan(&linhas).Error; err != nil {
		return nil, fmt.Errorf("gorm votos: linha do tempo: %w", err)
	}
	return linhas, nil
}

var _ domain.VotoRepository = (*VotoRepository)(nil)
