// Pacote apuracao implementa a leitura dos resultados: verificação de empate,
// vencedores, auditoria e o registro de hashes de relatório.
package apuracao

import (
	"context"
	"errors"
	"fmt"

	"github.com/marcelojr/eleicoes-diretoria/internal/domain"
	"github.com/marcelojr/eleicoes-diretoria/internal/platform/ids"
)

var (
	ErrSemCargoAtivo        = errors.New("nenhum cargo em votacao no momento")
	ErrEleicaoNaoEncontrada = errors.New("eleicao nao encontrada")
	ErrHashObrigatorio      = errors.New("hash do relatorio e obrigatorio")
	ErrHashNaoEncontrado    = errors.New("hash nao consta no registro de relatorios")
)

type Service struct {
	eleicoes      domain.EleicaoRepository
	cargosEleicao domain.CargoEleicaoRepository
	presencas     domain.PresencaRepository
	votos         domain.VotoRepository
	vencedores    domain.VencedorRepository
	verificacoes  domain.VerificacaoRepository
	clock         domain.Clock
	ids           *ids.Generator
}

func NewService(
	eleicoes domain.EleicaoRepository,
	cargosEleicao domain.CargoEleicaoRepository,
	presencas domain.PresencaRepository,
	votos domain.VotoRepository,
	vencedores domain.VencedorRepository,
	verificacoes domain.VerificacaoRepository,
	clock domain.Clock,
	idsGen *ids.Generator,
) *Service {
	if idsGen == nil {
		idsGen = ids.DefaultGenerator()
	}
	return &Service{
		eleicoes:      eleicoes,
		cargosEleicao: cargosEleicao,
		presencas:     presencas,
		votos:         votos,
		vencedores:    vencedores,
		verificacoes:  verificacoes,
		clock:         clock,
		ids:           idsGen,
	}
}

// VerificarEmpate compara os dois candidatos mais votados do cargo ativo no
// escrutínio corrente. Com menos de dois candidatos votados não há empate
// possível; quando os dois primeiros empatam, o relatório lista todos os
// candidatos com a contagem máxima.
func (s *Service) VerificarEmpate(ctx context.Context, eleicaoID domain.EleicaoID) (domain.RelatorioEmpate, error) {
	ativo, err := s.cargosEleicao.Ativo(ctx, eleicaoID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.RelatorioEmpate{}, ErrSemCargoAtivo
		}
		return domain.RelatorioEmpate{}, err
	}

	contagens, err := s.votos.ContagemPorCandidato(ctx, eleicaoID, ativo.CargoID, ativo.EscrutinioAtual)
	if err != nil {
		return domain.RelatorioEmpate{}, err
	}

	if len(contagens) < 2 {
		return domain.RelatorioEmpate{HaEmpate: false}, nil
	}

	// Contagens vêm ordenadas do banco; basta comparar as duas primeiras.
	if contagens[0].Total != contagens[1].Total {
		return domain.RelatorioEmpate{HaEmpate: false}, nil
	}

	maximo := contagens[0].Total
	empatados := make([]domain.CandidatoID, 0, 2)
	for _, c := range contagens {
		if c.Total != maximo {
			break
		}
		empatados = append(empatados, c.CandidatoID)
	}

	return domain.RelatorioEmpate{
		HaEmpate:  true,
		Empatados: empatados,
		Votos:     maximo,
	}, nil
}

func (s *Service) Vencedores(ctx context.Context, eleicaoID domain.EleicaoID) ([]domain.VencedorDetalhado, error) {
	return s.vencedores.ListarPorEleicao(ctx, eleicaoID)
}

// UltimosResultados devolve os vencedores da eleição encerrada mais recente.
func (s *Service) UltimosResultados(ctx context.Context) (domain.Resultados, error) {
	eleicao, err := s.eleicoes.UltimaEncerrada(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Resultados{}, ErrEleicaoNaoEncontrada
		}
		return domain.Resultados{}, err
	}

	vencedores, err := s.vencedores.ListarPorEleicao(ctx, eleicao.ID)
	if err != nil {
		return domain.Resultados{}, err
	}

	return domain.Resultados{Eleicao: eleicao, Vencedores: vencedores}, nil
}

// Auditoria compõe o retrato completo da eleição: metadados, presença, linha
// do tempo de votos e vencedores.
func (s *Service) Auditoria(ctx context.Context, eleicaoID domain.EleicaoID) (domain.Auditoria, error) {
	eleicao, err := s.eleicoes.PorID(ctx, eleicaoID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Auditoria{}, ErrEleicaoNaoEncontrada
		}
		return domain.Auditoria{}, err
	}

	presencas, err := s.presencas.ListarPorEleicao(ctx, eleicaoID)
	if err != nil {
		return domain.Auditoria{}, err
	}

	linhaDoTempo, err := s.votos.LinhaDoTempo(ctx, eleicaoID)
	if err != nil {
		return domain.Auditoria{}, err
	}

	vencedores, err := s.vencedores.ListarPorEleicao(ctx, eleicaoID)
	if err != nil {
		return domain.Auditoria{}, err
	}

	return domain.Auditoria{
		Eleicao:    eleicao,
		Presencas:  presencas,
		Votos:      linhaDoTempo,
		Vencedores: vencedores,
	}, nil
}

// SalvarHash registra o hash de um relatório emitido para posterior conferência.
func (s *Service) SalvarHash(ctx context.Context, eleicaoID domain.EleicaoID, hash, nomePresidente string) error {
	if hash == "" {
		return ErrHashObrigatorio
	}
	if _, err := s.eleicoes.PorID(ctx, eleicaoID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrEleicaoNaoEncontrada
		}
		return err
	}

	verificacao := domain.VerificacaoRelatorio{
		ID:             s.ids.New(),
		EleicaoID:      eleicaoID,
		Hash:           hash,
		NomePresidente: nomePresidente,
		CriadaEm:       s.clock.Agora(),
	}
	if err := s.verificacoes.Salvar(ctx, verificacao); err != nil {
		return fmt.Errorf("salvar hash: %w", err)
	}
	return nil
}

// VerificarHash confere se um hash foi emitido por este sistema.
func (s *Service) VerificarHash(ctx context.Context, hash string) (domain.VerificacaoDetalhada, error) {
	detalhe, err := s.verificacoes.PorHash(ctx, hash)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.VerificacaoDetalhada{}, ErrHashNaoEncontrado
		}
		return domain.VerificacaoDetalhada{}, err
	}
	return detalhe, nil
}
