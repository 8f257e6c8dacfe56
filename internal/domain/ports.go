package domain

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound é devolvido pelos repositórios quando a entidade consultada não existe.
var ErrNotFound = errors.New("registro nao encontrado")

type EleicaoRepository interface {
	// CriarComCargos desativa a eleição ativa, insere a nova eleição e semeia
	// um CargoEleicao pendente por cargo do catálogo em uma única transação.
	CriarComCargos(ctx context.Context, e Eleicao, cargos []CargoEleicao) error
	PorID(ctx context.Context, id EleicaoID) (Eleicao, error)
	Ativa(ctx context.Context) (Eleicao, error)
	Historico(ctx context.Context) ([]Eleicao, error)
	Encerrar(ctx context.Context, id EleicaoID, em time.Time) error
	UltimaEncerrada(ctx context.Context) (Eleicao, error)
}

type CargoRepository interface {
	Listar(ctx context.Context) ([]Cargo, error)
	PorID(ctx context.Context, id CargoID) (Cargo, error)
}

type CargoEleicaoRepository interface {
	ListarPorEleicao(ctx context.Context, eleicaoID EleicaoID) ([]CargoEleicaoDetalhado, error)
	Ativo(ctx context.Context, eleicaoID EleicaoID) (CargoEleicaoDetalhado, error)
	PorID(ctx context.Context, id CargoEleicaoID) (CargoEleicao, error)
	ProximoPendente(ctx context.Context, eleicaoID EleicaoID) (CargoEleicao, error)
	// Abrir conclui qualquer cargo ativo da eleição e ativa o cargo alvo na mesma transação.
	Abrir(ctx context.Context, eleicaoID EleicaoID, id CargoEleicaoID, em time.Time) error
	AtualizarEscrutinio(ctx context.Context, id CargoEleicaoID, escrutinio int) error
	Concluir(ctx context.Context, id CargoEleicaoID, em time.Time) error
	// ConcluirComVencedor grava o vencedor e conclui o cargo na mesma transação.
	ConcluirComVencedor(ctx context.Context, id CargoEleicaoID, v Vencedor, em time.Time) error
	TodosConcluidos(ctx context.Context, eleicaoID EleicaoID) (bool, error)
}

type MembroRepository interface {
	Listar(ctx context.Context) ([]Membro, error)
	ListarAtivos(ctx context.Context) ([]Membro, error)
	PorID(ctx context.Context, id MembroID) (Membro, error)
	// RemoverComCascata apaga o membro junto com votos, presenças e candidaturas.
	RemoverComCascata(ctx context.Context, id MembroID) error
}

type CandidatoRepository interface {
	Criar(ctx context.Context, c Candidato) error
	Listar(ctx context.Context, eleicaoID EleicaoID) ([]Candidato, error)
	ListarPorCargo(ctx context.Context, eleicaoID EleicaoID, cargoID CargoID) ([]Candidato, error)
	PorChave(ctx context.Context, id CandidatoID, cargoID CargoID, eleicaoID EleicaoID) (Candidato, error)
	Existe(ctx context.Context, membroID MembroID, cargoID CargoID, eleicaoID EleicaoID) (bool, error)
}

type PresencaRepository interface {
	// Inicializar remove a lista anterior e insere uma linha ausente por membro, em transação.
	Inicializar(ctx context.Context, eleicaoID EleicaoID, presencas []Presenca) error
	Marcar(ctx context.Context, eleicaoID EleicaoID, membroID MembroID, presente bool, em time.Time) error
	ListarPorEleicao(ctx context.Context, eleicaoID EleicaoID) ([]PresencaDetalhada, error)
	PorMembro(ctx context.Context, eleicaoID EleicaoID, membroID MembroID) (Presenca, error)
	ContarPresentes(ctx context.Context, eleicaoID EleicaoID) (int64, error)
}

type VotoRepository interface {
	Registrar(ctx context.Context, v Voto) error
	JaVotou(ctx context.Context, votanteID MembroID, cargoID CargoID, eleicaoID EleicaoID, escrutinio int) (bool, error)
	ContagemPorCandidato(ctx context.Context, eleicaoID EleicaoID, cargoID CargoID, escrutinio int) ([]ContagemVoto, error)
	LinhaDoTempo(ctx context.Context, eleicaoID EleicaoID) ([]LinhaVoto, error)
}

type VencedorRepository interface {
	ListarPorEleicao(ctx context.Context, eleicaoID EleicaoID) ([]VencedorDetalhado, error)
	ExistePorCargo(ctx context.Context, eleicaoID EleicaoID, cargoID CargoID) (bool, error)
	MembrosVencedores(ctx context.Context, eleicaoID EleicaoID) ([]MembroID, error)
}

type VerificacaoRepository interface {
	Salvar(ctx context.Context, v VerificacaoRelatorio) error
	PorHash(ctx context.Context, hash string) (VerificacaoDetalhada, error)
}

type Clock interface {
	Agora() time.Time
}

// Trava serializa mutações concorrentes sobre a mesma eleição (lock consultivo).
type Trava interface {
	ComTrava(ctx context.Context, chave string, fn func(ctx context.Context) error) error
}

// Antifraude valida a cadência de votos de um mesmo votante.
type Antifraude interface {
	Validar(ctx context.Context, votanteID MembroID) error
}
