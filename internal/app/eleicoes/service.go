// Pacote eleicoes implementa o registro de eleições: criação, ciclo de vida e lista de presença.
package eleicoes

import (
	"context"
	"errors"
	"fmt"

	"github.com/marcelojr/eleicoes-diretoria/internal/domain"
	"github.com/marcelojr/eleicoes-diretoria/internal/platform/ids"
)

var (
	ErrNomeObrigatorio      = errors.New("nome da eleicao e obrigatorio")
	ErrSemCargosCatalogo    = errors.New("nao ha cargos cadastrados no catalogo")
	ErrEleicaoNaoEncontrada = errors.New("eleicao nao encontrada")
	ErrCargosPendentes      = errors.New("todos os cargos devem estar decididos antes de finalizar a eleicao")
	ErrPresencaNaoEncontrada = errors.New("membro nao esta na lista de presenca")
)

// chaveTravaRegistro serializa criações de eleição: o invariante de eleição
// única ativa depende de uma criação por vez.
const chaveTravaRegistro = "registro"

// Service concentra as regras do registro de eleições.
type Service struct {
	eleicoes      domain.EleicaoRepository
	catalogo      domain.CargoRepository
	cargosEleicao domain.CargoEleicaoRepository
	membros       domain.MembroRepository
	presencas     domain.PresencaRepository
	vencedores    domain.VencedorRepository
	trava         domain.Trava
	clock         domain.Clock
	ids           *ids.Generator
}

func NewService(
	eleicoes domain.EleicaoRepository,
	catalogo domain.CargoRepository,
	cargosEleicao domain.CargoEleicaoRepository,
	membros domain.MembroRepository,
	presencas domain.PresencaRepository,
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
		catalogo:      catalogo,
		cargosEleicao: cargosEleicao,
		membros:       membros,
		presencas:     presencas,
		vencedores:    vencedores,
		trava:         trava,
		clock:         clock,
		ids:           idsGen,
	}
}

// Criar valida o nome, exige catálogo não vazio e cria a eleição já ativa com
// um cargo pendente por entrada do catálogo, tudo em uma transação.
func (s *Service) Criar(ctx context.Context, nome string) (domain.Eleicao, error) {
	if nome == "" {
		return domain.Eleicao{}, ErrNomeObrigatorio
	}

	catalogo, err := s.catalogo.Listar(ctx)
	if err != nil {
		return domain.Eleicao{}, err
	}
	if len(catalogo) == 0 {
		// Sem cargos a sequência de votação seria insatisfatível.
		return domain.Eleicao{}, ErrSemCargosCatalogo
	}

	agora := s.clock.Agora()
	eleicao := domain.Eleicao{
		ID:       domain.EleicaoID(s.ids.New()),
		Nome:     nome,
		Ativa:    true,
		CriadaEm: agora,
	}

	cargos := make([]domain.CargoEleicao, len(catalogo))
	for i, cargo := range catalogo {
		cargos[i] = domain.CargoEleicao{
			ID:              domain.CargoEleicaoID(s.ids.New()),
			EleicaoID:       eleicao.ID,
			CargoID:         cargo.ID,
			Ordem:           i + 1,
			Status:          domain.CargoPendente,
			EscrutinioAtual: 1,
			CriadoEm:        agora,
		}
	}

	err = s.trava.ComTrava(ctx, chaveTravaRegistro, func(ctx context.Context) error {
		return s.eleicoes.CriarComCargos(ctx, eleicao, cargos)
	})
	if err != nil {
		return domain.Eleicao{}, fmt.Errorf("criar eleicao: %w", err)
	}

	return eleicao, nil
}

func (s *Service) Historico(ctx context.Context) ([]domain.Eleicao, error) {
	return s.eleicoes.Historico(ctx)
}

func (s *Service) Ativa(ctx context.Context) (domain.Eleicao, error) {
	eleicao, err := s.eleicoes.Ativa(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Eleicao{}, ErrEleicaoNaoEncontrada
		}
		return domain.Eleicao{}, err
	}
	return eleicao, nil
}

func (s *Service) PorID(ctx context.Context, id domain.EleicaoID) (domain.Eleicao, error) {
	eleicao, err := s.eleicoes.PorID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Eleicao{}, ErrEleicaoNaoEncontrada
		}
		return domain.Eleicao{}, err
	}
	return eleicao, nil
}

// Encerrar desativa a eleição e carimba o fechamento; os cargos ficam congelados.
func (s *Service) Encerrar(ctx context.Context, id domain.EleicaoID) error {
	if _, err := s.PorID(ctx, id); err != nil {
		return err
	}
	return s.eleicoes.Encerrar(ctx, id, s.clock.Agora())
}

// Finalizar encerra a eleição somente quando todos os cargos já foram decididos.
func (s *Service) Finalizar(ctx context.Context, id domain.EleicaoID) error {
	if _, err := s.PorID(ctx, id); err != nil {
		return err
	}

	concluidos, err := s.cargosEleicao.TodosConcluidos(ctx, id)
	if err != nil {
		return err
	}
	if !concluidos {
		return ErrCargosPendentes
	}

	return s.eleicoes.Encerrar(ctx, id, s.clock.Agora())
}

// IniciarPresenca recria a lista de presença com todos os membros ativos, ausentes.
func (s *Service) IniciarPresenca(ctx context.Context, eleicaoID domain.EleicaoID) error {
	if _, err := s.PorID(ctx, eleicaoID); err != nil {
		return err
	}

	membros, err := s.membros.ListarAtivos(ctx)
	if err != nil {
		return err
	}

	agora := s.clock.Agora()
	presencas := make([]domain.Presenca, len(membros))
	for i, membro := range membros {
		presencas[i] = domain.Presenca{
			ID:        s.ids.New(),
			EleicaoID: eleicaoID,
			MembroID:  membro.ID,
			Presente:  false,
			CriadaEm:  agora,
		}
	}

	return s.presencas.Inicializar(ctx, eleicaoID, presencas)
}

func (s *Service) MarcarPresenca(ctx context.Context, eleicaoID domain.EleicaoID, membroID domain.MembroID, presente bool) error {
	err := s.presencas.Marcar(ctx, eleicaoID, membroID, presente, s.clock.Agora())
	if errors.Is(err, domain.ErrNotFound) {
		return ErrPresencaNaoEncontrada
	}
	return err
}

// ListarPresenca devolve a lista de presença sem os membros já eleitos.
func (s *Service) ListarPresenca(ctx context.Context, eleicaoID domain.EleicaoID) ([]domain.PresencaDetalhada, error) {
	presencas, err := s.presencas.ListarPorEleicao(ctx, eleicaoID)
	if err != nil {
		return nil, err
	}

	eleitos, err := s.vencedores.MembrosVencedores(ctx, eleicaoID)
	if err != nil {
		return nil, err
	}
	eleito := make(map[domain.MembroID]bool, len(eleitos))
	for _, id := range eleitos {
		eleito[id] = true
	}

	resultado := make([]domain.PresencaDetalhada, 0, len(presencas))
	for _, p := range presencas {
		if eleito[p.MembroID] {
			continue
		}
		resultado = append(resultado, p)
	}
	return resultado, nil
}

func (s *Service) ContarPresentes(ctx context.Context, eleicaoID domain.EleicaoID) (int64, error) {
	return s.presencas.ContarPresentes(ctx, eleicaoID)
}
