// Pacote votacao implementa o registro de votos e de candidaturas.
package votacao

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/marcelojr/eleicoes-diretoria/internal/domain"
	"github.com/marcelojr/eleicoes-diretoria/internal/platform/ids"
)

var (
	ErrVotacaoFechada         = errors.New("este cargo nao esta em votacao no momento")
	ErrVotoDuplicado          = errors.New("voce ja votou neste cargo neste escrutinio")
	ErrSemPresenca            = errors.New("membro nao consta na lista de presenca desta eleicao")
	ErrNaoPresente            = errors.New("apenas membros presentes podem votar")
	ErrCandidatoNaoEncontrado = errors.New("candidato nao encontrado para este cargo")
	ErrCandidaturaDuplicada   = errors.New("este membro ja e candidato a este cargo")
	ErrCandidaturaInvalida    = errors.New("nome e email do candidato sao obrigatorios")
	ErrAntifraude             = errors.New("voto bloqueado pelo controle de frequencia")
)

// Service valida e registra votos. A validação roda em ordem fixa: cargo em
// votação, duplicidade, presença, candidato e antifraude; o primeiro erro
// interrompe a cadeia e nada é gravado.
type Service struct {
	cargosEleicao domain.CargoEleicaoRepository
	candidatos    domain.CandidatoRepository
	presencas     domain.PresencaRepository
	votos         domain.VotoRepository
	antifraude    domain.Antifraude
	clock         domain.Clock
	ids           *ids.Generator
	logger        *slog.Logger
}

func NewService(
	cargosEleicao domain.CargoEleicaoRepository,
	candidatos domain.CandidatoRepository,
	presencas domain.PresencaRepository,
	votos domain.VotoRepository,
	antifraude domain.Antifraude,
	clock domain.Clock,
	idsGen *ids.Generator,
	logger *slog.Logger,
) *Service {
	if idsGen == nil {
		idsGen = ids.DefaultGenerator()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		cargosEleicao: cargosEleicao,
		candidatos:    candidatos,
		presencas:     presencas,
		votos:         votos,
		antifraude:    antifraude,
		clock:         clock,
		ids:           idsGen,
		logger:        logger,
	}
}

// RegistrarVoto grava um voto do membro autenticado no escrutínio corrente do
// cargo ativo. O escrutínio jamais vem do cliente: é lido do cargo no momento
// do registro.
func (s *Service) RegistrarVoto(ctx context.Context, votanteID domain.MembroID, candidatoID domain.CandidatoID, cargoID domain.CargoID, eleicaoID domain.EleicaoID) (domain.Voto, error) {
	ativo, err := s.cargosEleicao.Ativo(ctx, eleicaoID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Voto{}, ErrVotacaoFechada
		}
		return domain.Voto{}, err
	}
	if ativo.CargoID != cargoID {
		return domain.Voto{}, ErrVotacaoFechada
	}
	escrutinio := ativo.EscrutinioAtual

	jaVotou, err := s.votos.JaVotou(ctx, votanteID, cargoID, eleicaoID, escrutinio)
	if err != nil {
		return domain.Voto{}, err
	}
	if jaVotou {
		return domain.Voto{}, ErrVotoDuplicado
	}

	presenca, err := s.presencas.PorMembro(ctx, eleicaoID, votanteID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Voto{}, ErrSemPresenca
		}
		return domain.Voto{}, err
	}
	if !presenca.Presente {
		return domain.Voto{}, ErrNaoPresente
	}

	if _, err := s.candidatos.PorChave(ctx, candidatoID, cargoID, eleicaoID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Voto{}, ErrCandidatoNaoEncontrado
		}
		return domain.Voto{}, err
	}

	if err := s.antifraude.Validar(ctx, votanteID); err != nil {
		s.logger.Warn("voto bloqueado pelo antifraude", "votante_id", votanteID, "erro", err)
		return domain.Voto{}, ErrAntifraude
	}

	voto := domain.Voto{
		ID:          domain.VotoID(s.ids.New()),
		VotanteID:   votanteID,
		CandidatoID: candidatoID,
		CargoID:     cargoID,
		EleicaoID:   eleicaoID,
		Escrutinio:  escrutinio,
		VotadoEm:    s.clock.Agora(),
	}
	if err := s.votos.Registrar(ctx, voto); err != nil {
		return domain.Voto{}, fmt.Errorf("registrar voto: %w", err)
	}

	s.logger.Info("voto registrado",
		"eleicao_id", eleicaoID,
		"cargo_id", cargoID,
		"escrutinio", escrutinio,
	)
	return voto, nil
}

// CriarCandidato registra uma candidatura, recusando duplicatas do mesmo
// membro para o mesmo cargo na mesma eleição.
func (s *Service) CriarCandidato(ctx context.Context, membroID domain.MembroID, nome, email string, cargoID domain.CargoID, eleicaoID domain.EleicaoID) (domain.Candidato, error) {
	if nome == "" || email == "" {
		return domain.Candidato{}, ErrCandidaturaInvalida
	}

	existe, err := s.candidatos.Existe(ctx, membroID, cargoID, eleicaoID)
	if err != nil {
		return domain.Candidato{}, err
	}
	if existe {
		return domain.Candidato{}, ErrCandidaturaDuplicada
	}

	candidato := domain.Candidato{
		ID:        domain.CandidatoID(s.ids.New()),
		MembroID:  membroID,
		Nome:      nome,
		Email:     email,
		CargoID:   cargoID,
		EleicaoID: eleicaoID,
		CriadoEm:  s.clock.Agora(),
	}
	if err := s.candidatos.Criar(ctx, candidato); err != nil {
		return domain.Candidato{}, fmt.Errorf("criar candidato: %w", err)
	}
	return candidato, nil
}

func (s *Service) ListarCandidatos(ctx context.Context, eleicaoID domain.EleicaoID) ([]domain.Candidato, error) {
	return s.candidatos.Listar(ctx, eleicaoID)
}

func (s *Service) CandidatosPorCargo(ctx context.Context, eleicaoID domain.EleicaoID, cargoID domain.CargoID) ([]domain.Candidato, error) {
	return s.candidatos.ListarPorCargo(ctx, eleicaoID, cargoID)
}
