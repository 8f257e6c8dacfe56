// Pacote membros implementa a administração do quadro de membros.
package membros

import (
	"context"
	"errors"
	"log/slog"

	"github.com/marcelojr/eleicoes-diretoria/internal/domain"
)

// ErrMembroNaoRemovivel cobre tanto o membro inexistente quanto a tentativa de
// remover um administrador: a distinção não é exposta ao cliente.
var (
	ErrMembroNaoEncontrado = errors.New("membro nao encontrado")
	ErrMembroNaoRemovivel  = errors.New("nao e possivel remover um administrador ou o membro nao foi encontrado")
)

type Service struct {
	membros domain.MembroRepository
	logger  *slog.Logger
}

func NewService(membros domain.MembroRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{membros: membros, logger: logger}
}

func (s *Service) Listar(ctx context.Context) ([]domain.Membro, error) {
	return s.membros.Listar(ctx)
}

func (s *Service) ListarAtivos(ctx context.Context) ([]domain.Membro, error) {
	return s.membros.ListarAtivos(ctx)
}

func (s *Service) PorID(ctx context.Context, id domain.MembroID) (domain.Membro, error) {
	membro, err := s.membros.PorID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Membro{}, ErrMembroNaoEncontrado
		}
		return domain.Membro{}, err
	}
	return membro, nil
}

// Remover apaga o membro e todo o seu rastro eleitoral (votos dados, votos
// recebidos, candidaturas, presenças e vitórias) em uma única transação.
// Administradores não podem ser removidos.
func (s *Service) Remover(ctx context.Context, id domain.MembroID) error {
	err := s.membros.RemoverComCascata(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrMembroNaoRemovivel
		}
		return err
	}
	s.logger.Info("membro removido com cascata", "membro_id", id)
	return nil
}
