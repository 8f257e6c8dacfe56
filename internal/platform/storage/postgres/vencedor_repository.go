package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/marcelojr/eleicoes-diretoria/internal/domain"
)

// VencedorRepository lê os vencedores decididos; a gravação acontece junto da
// conclusão do cargo em CargoEleicaoRepository.
type VencedorRepository struct {
	db *gorm.DB
}

func NewVencedorRepository(db *gorm.DB) *VencedorRepository {
	return &VencedorRepository{db: db}
}

func (r *VencedorRepository) ListarPorEleicao(ctx context.Context, eleicaoID domain.EleicaoID) ([]domain.VencedorDetalhado, error) {
	var vencedores []domain.Vencedor
	if err := r.db.WithContext(ctx).
		Where("eleicao_id = ?", eleicaoID).
		Find(&vencedores).Error; err != nil {
		return nil, fmt.Errorf("gorm vencedor: listar: %w", err)
	}
	if len(vencedores) == 0 {
		return []domain.VencedorDetalhado{}, nil
	}

	var candidatos []domain.Candidato
	if err := r.db.WithContext(ctx).Where("eleicao_id = ?", eleicaoID).Find(&candidatos).Error; err != nil {
		return nil, fmt.Errorf("gorm vencedor: carregar candidatos: %w", err)
	}
	candidatoPorID := make(map[domain.CandidatoID]domain.Candidato, len(candidatos))
	for _, c := range candidatos {
		candidatoPorID[c.ID] = c
	}

	var cargos []domain.Cargo
	if err := r.db.WithContext(ctx).Find(&cargos).Error; err != nil {
		return nil, fmt.Errorf("gorm vencedor: carregar cargos: %w", err)
	}
	cargoPorID := make(map[domain.CargoID]domain.Cargo, len(cargos))
	for _, c := range cargos {
		cargoPorID[c.ID] = c
	}

	var membros []domain.Membro
	if err := r.db.WithContext(ctx).Find(&membros).Error; err != nil {
		return nil, fmt.Errorf("gorm vencedor: carregar membros: %w", err)
	}
	membroPorID := make(map[domain.MembroID]domain.Membro, len(membros))
	for _, m := range membros {
		membroPorID[m.ID] = m
	}

	detalhados := make([]domain.VencedorDetalhado, len(vencedores))
	for i, v := range vencedores {
		candidato := candidatoPorID[v.CandidatoID]
		membro := membroPorID[candidato.MembroID]
		detalhados[i] = domain.VencedorDetalhado{
			Vencedor:       v,
			NomeCargo:      cargoPorID[v.CargoID].Nome,
			NomeCandidato:  candidato.Nome,
			EmailCandidato: candidato.Email,
			MembroID:       candidato.MembroID,
			FotoURL:        membro.FotoURL,
			Nascimento:     membro.Nascimento,
		}
	}
	return detalhados, nil
}

func (r *VencedorRepository) ExistePorCargo(ctx context.Context, eleicaoID domain.EleicaoID, cargoID domain.CargoID) (bool, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&domain.Vencedor{}).
		Where("eleicao_id = ? AND cargo_id = ?", eleicaoID, cargoID).
		Count(&total).Error; err != nil {
		return false, fmt.Errorf("gorm vencedor: verificar cargo: %w", err)
	}
	return total > 0, nil
}

func (r *VencedorRepository) MembrosVencedores(ctx context.Context, eleicaoID domain.EleicaoID) ([]domain.MembroID, error) {
	var ids []domain.MembroID
	if err := r.db.WithContext(ctx).
		Raw(`
            SELECT ca.membro_id
            FROM vencedores v
            JOIN candidatos ca ON ca.id = v.candidato_id
            WHERE v.eleicao_id = ?
        `, eleicaoID).
		Scan(&ids).Error; err != nil {
		return nil, fmt.Errorf("gorm vencedor: membros vencedores: %w", err)
	}
	return ids, nil
}

var _ domain.VencedorRepository = (*VencedorRepository)(nil)
