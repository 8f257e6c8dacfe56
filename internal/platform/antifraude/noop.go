package antifraude

import (
	"context"

	"github.com/marcelojr/eleicoes-diretoria/internal/domain"
)

// Noop aceita qualquer cadência de votos; usado quando o rate limit está desabilitado.
type Noop struct{}

func NewNoop() Noop {
	return Noop{}
}

func (Noop) Validar(ctx context.Context, votanteID domain.MembroID) error {
	return nil
}

var _ domain.Antifraude = Noop{}
