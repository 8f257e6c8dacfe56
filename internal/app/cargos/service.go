// Pacote cargos implementa o sequenciador: a máquina de estados que conduz os
// cargos de uma eleição por pendente -> ativo -> concluído, um ativo por vez.
package cargos

import (
	"context"
	"errors"
	"fmt"

	"github.com/marcelojr/eleicoes-diretoria/internal/domain"
	"github.com/marcelojr/eleicoes-diretoria/internal/platform/ids"
	"github.com/marcelojr/eleicoes-diretoria/internal/platform/metrics"
)

var (
	ErrCargoNaoEncontrado     = errors.New("cargo nao encontrado nesta eleicao")
	ErrCargoNaoPendente       = errors.New("apenas cargos pendentes podem ser abertos")
	ErrCargoJaConcluido       = errors.New("cargo ja foi concluido")
	ErrSemCargoAtivo          = errors.New("nenhum cargo em votacao no momento")
	ErrSemCargosPendentes     = errors.New("nao ha cargos pendentes nesta eleicao")
	ErrLimiteEscrutinio       = errors.New("limite de escrutinios atingido")
	ErrCargoJaDecidido        = errors.New("este cargo ja possui vencedor registrado")
	ErrEleicaoEncerrada       = errors.New("eleicao ja foi encerrada")
	ErrCandidatoNaoEncontrado = errors.New("candidato nao encontrado para o cargo ativo")
)

// Service serializa toda mutação de estado por eleição através da trava: dois
// administradores disparando transições ao mesmo tempo não quebram o
// invariante de cargo único ativo.
type Service struct {
	eleicoes      domain.EleicaoRepository
	cargosEleicao domain.CargoEleicaoRepository
	candidatos    domain.CandidatoRepository
	vencedores    domain.VencedorRepository
	trava         domain.Trava
	clock         domain.Clock
	ids           *ids.Generator
}

func NewService(
	eleicoes domain.EleicaoRepository,
	cargosEleicao domain.CargoEleicaoRepository,
	candidatos domain.CandidatoRepository,
	vencedores domain.VencedorRepository,
	trava domain.Trava,
	clock domain.Clock,
	idsGen *ids.Generator,
) *Service {
	if idsGen == nil {
		idsGen = ids.DefaultGenerator()
	}
	return &Service{
		eleicoes:      eleicoes,
		cargosEleicao: cargosEleicao,
		candidatos:    candidatos,
		vencedores:    vencedores,
		trava:         trava,
		clock:         clock,
		ids:           idsGen,
	}
}

func (s *Service) Listar(ctx context.Context, eleicaoID domain.EleicaoID) ([]domain.CargoEleicaoDetalhado, error) {
	return s.cargosEleicao.ListarPorEleicao(ctx, eleicaoID)
}

func (s *Service) Ativo(ctx context.Context, eleicaoID domain.EleicaoID) (domain.CargoEleicaoDetalhado, error) {
	ativo, err := s.cargosEleicao.Ativo(ctx, eleicaoID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.CargoEleicaoDetalhado{}, ErrSemCargoAtivo
		}
		return domain.CargoEleicaoDetalhado{}, err
	}
	return ativo, nil
}

// Abrir ativa o cargo indicado; qualquer cargo que estivesse ativo é concluído
// na mesma transação.
func (s *Service) Abrir(ctx context.Context, eleicaoID domain.EleicaoID, id domain.CargoEleicaoID) (domain.CargoEleicaoDetalhado, error) {
	var aberto domain.CargoEleicaoDetalhado
	err := s.trava.ComTrava(ctx, string(eleicaoID), func(ctx context.Context) error {
		if err := s.exigirEleicaoAberta(ctx, eleicaoID); err != nil {
			return err
		}

		cargo, err := s.cargosEleicao.PorID(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return ErrCargoNaoEncontrado
			}
			return err
		}
		if cargo.EleicaoID != eleicaoID {
			return ErrCargoNaoEncontrado
		}
		if cargo.Status != domain.CargoPendente {
			return ErrCargoNaoPendente
		}

		if err := s.cargosEleicao.Abrir(ctx, eleicaoID, id, s.clock.Agora()); err != nil {
			return err
		}
		metrics.IncTransicaoCargo("abrir")

		aberto, err = s.Ativo(ctx, eleicaoID)
		return err
	})
	if err != nil {
		return domain.CargoEleicaoDetalhado{}, err
	}
	return aberto, nil
}

// AbrirProximo ativa o cargo pendente de menor ordem.
func (s *Service) AbrirProximo(ctx context.Context, eleicaoID domain.EleicaoID) (domain.CargoEleicaoDetalhado, error) {
	var aberto domain.CargoEleicaoDetalhado
	err := s.trava.ComTrava(ctx, string(eleicaoID), func(ctx context.Context) error {
		if err := s.exigirEleicaoAberta(ctx, eleicaoID); err != nil {
			return err
		}

		proximo, err := s.cargosEleicao.ProximoPendente(ctx, eleicaoID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return ErrSemCargosPendentes
			}
			return err
		}

		if err := s.cargosEleicao.Abrir(ctx, eleicaoID, proximo.ID, s.clock.Agora()); err != nil {
			return err
		}
		metrics.IncTransicaoCargo("abrir")

		aberto, err = s.Ativo(ctx, eleicaoID)
		return err
	})
	if err != nil {
		return domain.CargoEleicaoDetalhado{}, err
	}
	return aberto, nil
}

// AvancarEscrutinio incrementa o escrutínio do cargo ativo, até o máximo.
// Votos anteriores permanecem registrados sob o número de escrutínio em que
// foram dados.
func (s *Service) AvancarEscrutinio(ctx context.Context, eleicaoID domain.EleicaoID) (int, error) {
	var escrutinio int
	err := s.trava.ComTrava(ctx, string(eleicaoID), func(ctx context.Context) error {
		if err := s.exigirEleicaoAberta(ctx, eleicaoID); err != nil {
			return err
		}

		ativo, err := s.Ativo(ctx, eleicaoID)
		if err != nil {
			return err
		}

		proximo := ativo.EscrutinioAtual + 1
		if proximo > domain.EscrutinioMaximo {
			return ErrLimiteEscrutinio
		}

		if err := s.cargosEleicao.AtualizarEscrutinio(ctx, ativo.ID, proximo); err != nil {
			return err
		}
		metrics.IncTransicaoCargo("avancar_escrutinio")
		escrutinio = proximo
		return nil
	})
	if err != nil {
		return 0, err
	}
	return escrutinio, nil
}

// ForcarEncerramento conclui o cargo sem registrar vencedor. Usado quando a
// mesa decide encerrar a votação de um cargo sem decisão pelo sistema.
func (s *Service) ForcarEncerramento(ctx context.Context, eleicaoID domain.EleicaoID, id domain.CargoEleicaoID) error {
	return s.trava.ComTrava(ctx, string(eleicaoID), func(ctx context.Context) error {
		if err := s.exigirEleicaoAberta(ctx, eleicaoID); err != nil {
			return err
		}

		cargo, err := s.cargosEleicao.PorID(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return ErrCargoNaoEncontrado
			}
			return err
		}
		if cargo.EleicaoID != eleicaoID {
			return ErrCargoNaoEncontrado
		}
		if cargo.Status == domain.CargoConcluido {
			return ErrCargoJaConcluido
		}

		if err := s.cargosEleicao.Concluir(ctx, id, s.clock.Agora()); err != nil {
			return err
		}
		metrics.IncTransicaoCargo("forcar_encerramento")
		return nil
	})
}

// ResolverEmpate registra o candidato escolhido como vencedor do cargo ativo e
// o conclui na mesma transação. A operação exige cargo ativo e recusa cargos
// que já tenham vencedor, o que a torna segura contra reenvio.
func (s *Service) ResolverEmpate(ctx context.Context, eleicaoID domain.EleicaoID, candidatoID domain.CandidatoID) error {
	return s.trava.ComTrava(ctx, string(eleicaoID), func(ctx context.Context) error {
		if err := s.exigirEleicaoAberta(ctx, eleicaoID); err != nil {
			return err
		}

		ativo, err := s.Ativo(ctx, eleicaoID)
		if err != nil {
			return err
		}

		candidato, err := s.candidatos.PorChave(ctx, candidatoID, ativo.CargoID, eleicaoID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return ErrCandidatoNaoEncontrado
			}
			return err
		}

		jaDecidido, err := s.vencedores.ExistePorCargo(ctx, eleicaoID, ativo.CargoID)
		if err != nil {
			return err
		}
		if jaDecidido {
			return ErrCargoJaDecidido
		}

		agora := s.clock.Agora()
		vencedor := domain.Vencedor{
			ID:          domain.VencedorID(s.ids.New()),
			EleicaoID:   eleicaoID,
			CargoID:     ativo.CargoID,
			CandidatoID: candidato.ID,
			Escrutinio:  ativo.EscrutinioAtual,
			CriadoEm:    agora,
		}

		if err := s.cargosEleicao.ConcluirComVencedor(ctx, ativo.ID, vencedor, agora); err != nil {
			return fmt.Errorf("resolver empate: %w", err)
		}
		metrics.IncTransicaoCargo("resolver_empate")
		return nil
	})
}

func (s *Service) exigirEleicaoAberta(ctx context.Context, eleicaoID domain.EleicaoID) error {
	eleicao, err := s.eleicoes.PorID(ctx, eleicaoID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return err
	}
	if eleicao.EncerradaEm != nil {
		return ErrEleicaoEncerrada
	}
	return nil
}
