// Pacote migrations centraliza as versões gormigrate aplicadas na inicialização.
package migrations

import (
	"fmt"

	gormigrate "github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"

	"github.com/marcelojr/eleicoes-diretoria/internal/domain"
	"github.com/marcelojr/eleicoes-diretoria/internal/platform/ids"
)

func Run(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("migrations: db nulo")
	}

	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "202509010001_init_schema",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(
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
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable(
					"verificacoes_relatorio",
					"vencedores",
					"votos",
					"presencas",
					"candidatos",
					"membros",
					"cargos_eleicao",
					"cargos",
					"eleicoes",
				)
			},
		},
		{
			// O catálogo de cargos é dado de referência: sem pelo menos um cargo
			// nenhuma eleição pode ser criada.
			ID: "202509010002_seed_cargos",
			Migrate: func(tx *gorm.DB) error {
				var total int64
				if err := tx.Model(&domain.Cargo{}).Count(&total).Error; err != nil {
					return err
				}
				if total > 0 {
					return nil
				}

				gen := ids.NewGenerator()
				cargos := []domain.Cargo{
					{ID: domain.CargoID(gen.New()), Nome: "Presidente", Ordem: 1, MaxCandidatos: 5},
					{ID: domain.CargoID(gen.New()), Nome: "Vice-Presidente", Ordem: 2, MaxCandidatos: 5},
					{ID: domain.CargoID(gen.New()), Nome: "1º Secretário", Ordem: 3, MaxCandidatos: 5},
					{ID: domain.CargoID(gen.New()), Nome: "2º Secretário", Ordem: 4, MaxCandidatos: 5},
					{ID: domain.CargoID(gen.New()), Nome: "1º Tesoureiro", Ordem: 5, MaxCandidatos: 5},
					{ID: domain.CargoID(gen.New()), Nome: "2º Tesoureiro", Ordem: 6, MaxCandidatos: 5},
				}
				return tx.Create(&cargos).Error
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Where("1 = 1").Delete(&domain.Cargo{}).Error
			},
		},
	})

	if err := m.Migrate(); err != nil {
		return fmt.Errorf("migrations: falha ao aplicar: %w", err)
	}

	return nil
}
