// Pacote domain define as entidades da eleição de diretoria e os contratos de persistência.
package domain

import (
	"time"
)

type (
	EleicaoID      string
	CargoID        string
	CargoEleicaoID string
	MembroID       string
	CandidatoID    string
	VotoID         string
	VencedorID     string
)

// StatusCargo acompanha o ciclo pending -> active -> completed de um cargo dentro de uma eleição.
type StatusCargo string

const (
	CargoPendente  StatusCargo = "pending"
	CargoAtivo     StatusCargo = "active"
	CargoConcluido StatusCargo = "completed"
)

// EscrutinioMaximo limita quantas rodadas de votação um cargo aceita antes da resolução manual.
const EscrutinioMaximo = 3

// Eleicao representa um evento de votação; no máximo uma eleição está ativa por vez.
type Eleicao struct {
	ID          EleicaoID  `gorm:"column:id;type:char(26);primaryKey" json:"id"`
	Nome        string     `gorm:"column:nome;type:text;not null" json:"name"`
	Ativa       bool       `gorm:"column:ativa;not null;default:false" json:"isActive"`
	CriadaEm    time.Time  `gorm:"column:criada_em;autoCreateTime" json:"createdAt"`
	EncerradaEm *time.Time `gorm:"column:encerrada_em" json:"closedAt"`
}

// Cargo é o catálogo estático de cargos; a ordem de exibição define a sequência de votação.
type Cargo struct {
	ID            CargoID `gorm:"column:id;type:char(26);primaryKey" json:"id"`
	Nome          string  `gorm:"column:nome;type:text;not null" json:"name"`
	Descricao     string  `gorm:"column:descricao;type:text" json:"description"`
	Ordem         int     `gorm:"column:ordem;not null" json:"displayOrder"`
	MaxCandidatos int     `gorm:"column:max_candidatos;not null;default:1" json:"maxCandidates"`
}

// CargoEleicao é o estado de votação de um cargo dentro de uma eleição específica.
type CargoEleicao struct {
	ID              CargoEleicaoID `gorm:"column:id;type:char(26);primaryKey" json:"id"`
	EleicaoID       EleicaoID      `gorm:"column:eleicao_id;type:char(26);not null;index" json:"electionId"`
	CargoID         CargoID        `gorm:"column:cargo_id;type:char(26);not null;index" json:"positionId"`
	Ordem           int            `gorm:"column:ordem;not null" json:"orderIndex"`
	Status          StatusCargo    `gorm:"column:status;type:text;not null;default:pending" json:"status"`
	EscrutinioAtual int            `gorm:"column:escrutinio_atual;not null;default:1" json:"currentScrutiny"`
	AbertoEm        *time.Time     `gorm:"column:aberto_em" json:"openedAt"`
	EncerradoEm     *time.Time     `gorm:"column:encerrado_em" json:"closedAt"`
	CriadoEm        time.Time      `gorm:"column:criado_em;autoCreateTime" json:"createdAt"`
}

// CargoEleicaoDetalhado agrega o nome do cargo do catálogo para as respostas da API.
type CargoEleicaoDetalhado struct {
	CargoEleicao
	NomeCargo string `gorm:"column:nome_cargo" json:"positionName"`
}

// Membro é um associado da diretoria; as flags ficam espelhadas nas claims do token.
type Membro struct {
	ID           MembroID `gorm:"column:id;type:char(26);primaryKey" json:"id"`
	NomeCompleto string   `gorm:"column:nome_completo;type:text;not null" json:"fullName"`
	Email        string   `gorm:"column:email;type:text;not null;uniqueIndex" json:"email"`
	Admin        bool     `gorm:"column:admin;not null;default:false" json:"isAdmin"`
	Membro       bool     `gorm:"column:membro;not null;default:true" json:"isMember"`
	MembroAtivo  bool     `gorm:"column:membro_ativo;not null;default:true" json:"activeMember"`
	FotoURL      string   `gorm:"column:foto_url;type:text" json:"photoUrl"`
	Nascimento   string   `gorm:"column:nascimento;type:text" json:"birthdate"`
}

// Candidato registra a candidatura de um membro a um cargo em uma eleição.
type Candidato struct {
	ID        CandidatoID `gorm:"column:id;type:char(26);primaryKey" json:"id"`
	Nome      string      `gorm:"column:nome;type:text;not null" json:"name"`
	Email     string      `gorm:"column:email;type:text;not null" json:"email"`
	MembroID  MembroID    `gorm:"column:membro_id;type:char(26);not null;index" json:"userId"`
	CargoID   CargoID     `gorm:"column:cargo_id;type:char(26);not null;index" json:"positionId"`
	EleicaoID EleicaoID   `gorm:"column:eleicao_id;type:char(26);not null;index" json:"electionId"`
	CriadoEm  time.Time   `gorm:"column:criado_em;autoCreateTime" json:"createdAt"`
}

// Presenca marca se um membro está habilitado a votar em uma eleição.
type Presenca struct {
	ID        string     `gorm:"column:id;type:char(26);primaryKey" json:"id"`
	EleicaoID EleicaoID  `gorm:"column:eleicao_id;type:char(26);not null;index:idx_presencas_eleicao_membro,priority:1" json:"electionId"`
	MembroID  MembroID   `gorm:"column:membro_id;type:char(26);not null;index:idx_presencas_eleicao_membro,priority:2" json:"memberId"`
	Presente  bool       `gorm:"column:presente;not null;default:false" json:"isPresent"`
	MarcadaEm *time.Time `gorm:"column:marcada_em" json:"markedAt"`
	CriadaEm  time.Time  `gorm:"column:criada_em;autoCreateTime" json:"createdAt"`
}

// PresencaDetalhada junta os dados do membro para a lista de presença da API.
type PresencaDetalhada struct {
	Presenca
	NomeMembro  string `gorm:"column:nome_membro" json:"memberName"`
	EmailMembro string `gorm:"column:email_membro" json:"memberEmail"`
}

// Voto é um fato imutável: um por votante, por cargo, por eleição, por escrutínio.
type Voto struct {
	ID          VotoID      `gorm:"column:id;type:char(26);primaryKey" json:"id"`
	VotanteID   MembroID    `gorm:"column:votante_id;type:char(26);not null;index:idx_votos_chave,priority:1" json:"voterId"`
	CandidatoID CandidatoID `gorm:"column:candidato_id;type:char(26);not null;index" json:"candidateId"`
	CargoID     CargoID     `gorm:"column:cargo_id;type:char(26);not null;index:idx_votos_chave,priority:2" json:"positionId"`
	EleicaoID   EleicaoID   `gorm:"column:eleicao_id;type:char(26);not null;index:idx_votos_chave,priority:3" json:"electionId"`
	Escrutinio  int         `gorm:"column:escrutinio;not null;index:idx_votos_chave,priority:4" json:"scrutinyRound"`
	VotadoEm    time.Time   `gorm:"column:votado_em;not null" json:"votedAt"`
}

// Vencedor é o resultado decidido de um cargo, gravado uma única vez por cargo.
type Vencedor struct {
	ID          VencedorID  `gorm:"column:id;type:char(26);primaryKey" json:"id"`
	EleicaoID   EleicaoID   `gorm:"column:eleicao_id;type:char(26);not null;index" json:"electionId"`
	CargoID     CargoID     `gorm:"column:cargo_id;type:char(26);not null" json:"positionId"`
	CandidatoID CandidatoID `gorm:"column:candidato_id;type:char(26);not null" json:"candidateId"`
	Escrutinio  int         `gorm:"column:escrutinio;not null" json:"wonAtScrutiny"`
	CriadoEm    time.Time   `gorm:"column:criado_em;autoCreateTime" json:"createdAt"`
}

// VencedorDetalhado agrega candidato, cargo e membro para relatórios e resultados.
type VencedorDetalhado struct {
	Vencedor
	NomeCargo      string   `gorm:"column:nome_cargo" json:"positionName"`
	NomeCandidato  string   `gorm:"column:nome_candidato" json:"candidateName"`
	EmailCandidato string   `gorm:"column:email_candidato" json:"candidateEmail"`
	MembroID       MembroID `gorm:"column:membro_id" json:"userId"`
	FotoURL        string   `gorm:"column:foto_url" json:"photoUrl"`
	Nascimento     string   `gorm:"column:nascimento" json:"birthdate"`
}

// VerificacaoRelatorio guarda o hash de verificação de um relatório emitido para uma eleição.
type VerificacaoRelatorio struct {
	ID             string    `gorm:"column:id;type:char(26);primaryKey" json:"id"`
	EleicaoID      EleicaoID `gorm:"column:eleicao_id;type:char(26);not null;index" json:"electionId"`
	Hash           string    `gorm:"column:hash;type:text;not null;uniqueIndex" json:"verificationHash"`
	NomePresidente string    `gorm:"column:nome_presidente;type:text" json:"presidentName"`
	CriadaEm       time.Time `gorm:"column:criada_em;autoCreateTime" json:"createdAt"`
}

// ContagemVoto é o total de votos de um candidato em um escrutínio.
type ContagemVoto struct {
	CandidatoID CandidatoID `gorm:"column:candidato_id" json:"candidateId"`
	Total       int64       `gorm:"column:total" json:"voteCount"`
}

// RelatorioEmpate descreve o resultado da checagem de empate do cargo ativo.
type RelatorioEmpate struct {
	HaEmpate  bool          `json:"hasTie"`
	Empatados []CandidatoID `json:"tiedCandidates,omitempty"`
	Votos     int64         `json:"voteCount,omitempty"`
}

// LinhaVoto é uma entrada da linha do tempo de votos da auditoria.
type LinhaVoto struct {
	ID            VotoID    `gorm:"column:id" json:"id"`
	VotadoEm      time.Time `gorm:"column:votado_em" json:"votedAt"`
	Escrutinio    int       `gorm:"column:escrutinio" json:"scrutinyRound"`
	NomeCargo     string    `gorm:"column:nome_cargo" json:"positionName"`
	NomeCandidato string    `gorm:"column:nome_candidato" json:"candidateName"`
}

// Auditoria é a visão consolidada somente-leitura de uma eleição.
type Auditoria struct {
	Eleicao    Eleicao             `json:"election"`
	Presencas  []PresencaDetalhada `json:"voterAttendance"`
	Votos      []LinhaVoto         `json:"voteTimeline"`
	Vencedores []VencedorDetalhado `json:"winners"`
}

// Resultados é o resumo público da eleição encerrada mais recente.
type Resultados struct {
	Eleicao    Eleicao             `json:"election"`
	Vencedores []VencedorDetalhado `json:"winners"`
}

// VerificacaoDetalhada resolve um hash de relatório de volta ao resumo da eleição.
type VerificacaoDetalhada struct {
	VerificacaoRelatorio
	Eleicao Eleicao `json:"election"`
}

func (Eleicao) TableName() string { return "eleicoes" }

func (Cargo) TableName() string { return "cargos" }

func (CargoEleicao) TableName() string { return "cargos_eleicao" }

func (Membro) TableName() string { return "membros" }

func (Candidato) TableName() string { return "candidatos" }

func (Presenca) TableName() string { return "presencas" }

func (Voto) TableName() string { return "votos" }

func (Vencedor) TableName() string { return "vencedores" }

func (VerificacaoRelatorio) TableName() string { return "verificacoes_relatorio" }
