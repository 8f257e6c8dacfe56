// Pacote httpapi expõe os handlers REST e traduz requisições HTTP para os serviços da eleição.
package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/marcelojr/eleicoes-diretoria/internal/app/apuracao"
	"github.com/marcelojr/eleicoes-diretoria/internal/app/cargos"
	"github.com/marcelojr/eleicoes-diretoria/internal/app/eleicoes"
	"github.com/marcelojr/eleicoes-diretoria/internal/app/membros"
	"github.com/marcelojr/eleicoes-diretoria/internal/app/votacao"
	"github.com/marcelojr/eleicoes-diretoria/internal/domain"
	"github.com/marcelojr/eleicoes-diretoria/internal/platform/antifraude"
	"github.com/marcelojr/eleicoes-diretoria/internal/platform/auth"
	"github.com/marcelojr/eleicoes-diretoria/internal/platform/metrics"
	"github.com/marcelojr/eleicoes-diretoria/internal/platform/storage/redis"
)

// API empacota os handlers HTTP ligados aos serviços da eleição, ao middleware
// de autenticação e ao logger.
type API struct {
	eleicoes *eleicoes.Service
	cargos   *cargos.Service
	votacao  *votacao.Service
	apuracao *apuracao.Service
	membros  *membros.Service
	catalogo domain.CargoRepository
	auth     *auth.Middleware
	logger   *slog.Logger
}

func New(
	eleicoesSvc *eleicoes.Service,
	cargosSvc *cargos.Service,
	votacaoSvc *votacao.Service,
	apuracaoSvc *apuracao.Service,
	membrosSvc *membros.Service,
	catalogo domain.CargoRepository,
	authMw *auth.Middleware,
	logger *slog.Logger,
) *API {
	return &API{
		eleicoes: eleicoesSvc,
		cargos:   cargosSvc,
		votacao:  votacaoSvc,
		apuracao: apuracaoSvc,
		membros:  membrosSvc,
		catalogo: catalogo,
		auth:     authMw,
		logger:   logger,
	}
}

// Register centraliza as rotas para facilitar testes e reuso em servidores diferentes.
func (a *API) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", a.handleHealthz)

	// Eleições.
	mux.HandleFunc("POST /elections", a.auth.ExigirAdmin(a.criarEleicao))
	mux.HandleFunc("GET /elections/active", a.eleicaoAtiva)
	mux.HandleFunc("GET /elections/history", a.auth.ExigirAdmin(a.historico))
	mux.HandleFunc("PATCH /elections/{id}/close", a.auth.ExigirAdmin(a.encerrarEleicao))
	mux.HandleFunc("POST /elections/{id}/finalize", a.auth.ExigirAdmin(a.finalizarEleicao))

	// Sequência de cargos.
	mux.HandleFunc("GET /elections/{id}/positions", a.auth.Exigir(a.listarCargos))
	mux.HandleFunc("GET /elections/{id}/positions/active", a.auth.Exigir(a.cargoAtivo))
	mux.HandleFunc("POST /elections/{id}/positions/open-next", a.auth.ExigirAdmin(a.abrirProximoCargo))
	mux.HandleFunc("POST /elections/{id}/positions/{posId}/open", a.auth.ExigirAdmin(a.abrirCargo))
	mux.HandleFunc("POST /elections/{id}/positions/{posId}/force-close", a.auth.ExigirAdmin(a.forcarEncerramentoCargo))
	mux.HandleFunc("POST /elections/{id}/positions/advance-scrutiny", a.auth.ExigirAdmin(a.avancarEscrutinio))
	mux.HandleFunc("GET /elections/{id}/positions/check-tie", a.auth.ExigirAdmin(a.verificarEmpate))
	mux.HandleFunc("POST /elections/{id}/positions/resolve-tie", a.auth.ExigirAdmin(a.resolverEmpate))

	// Votos e candidaturas.
	mux.HandleFunc("POST /vote", a.auth.ExigirMembro(a.registrarVoto))
	mux.HandleFunc("GET /positions", a.listarCatalogo)
	mux.HandleFunc("GET /candidates", a.auth.Exigir(a.listarCandidatos))
	mux.HandleFunc("POST /candidates", a.auth.ExigirAdmin(a.criarCandidato))
	mux.HandleFunc("GET /elections/{id}/positions/{posId}/candidates", a.auth.Exigir(a.candidatosPorCargo))

	// Presença.
	mux.HandleFunc("POST /elections/{id}/attendance/initialize", a.auth.ExigirAdmin(a.iniciarPresenca))
	mux.HandleFunc("GET /elections/{id}/attendance", a.auth.ExigirAdmin(a.listarPresenca))
	mux.HandleFunc("PATCH /elections/{id}/attendance/{memberId}", a.auth.ExigirAdmin(a.marcarPresenca))
	mux.HandleFunc("GET /elections/{id}/attendance/count", a.auth.Exigir(a.contarPresentes))

	// Resultados e auditoria.
	mux.HandleFunc("GET /elections/{id}/winners", a.vencedores)
	mux.HandleFunc("GET /results/latest", a.ultimosResultados)
	mux.HandleFunc("GET /elections/{id}/audit", a.auth.ExigirAdmin(a.auditoria))
	mux.HandleFunc("POST /elections/{id}/audit/save-hash", a.auth.ExigirAdmin(a.salvarHash))
	mux.HandleFunc("GET /verify/{hash}", a.verificarHash)

	// Membros.
	mux.HandleFunc("GET /members", a.auth.ExigirAdmin(a.listarMembros))
	mux.HandleFunc("DELETE /members/{id}", a.auth.ExigirAdmin(a.removerMembro))
}

func (a *API) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

type criarEleicaoRequest struct {
	Nome string `json:"name"`
}

func (a *API) criarEleicao(w http.ResponseWriter, r *http.Request) {
	var req criarEleicaoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		responderMensagem(w, http.StatusBadRequest, "payload invalido")
		return
	}

	eleicao, err := a.eleicoes.Criar(r.Context(), req.Nome)
	if err != nil {
		a.logger.Warn("falha ao criar eleicao", "err", err)
		responderErro(w, err)
		return
	}

	a.logger.Info("eleicao criada", "eleicao_id", eleicao.ID, "nome", eleicao.Nome)
	responderJSON(w, http.StatusCreated, eleicao)
}

func (a *API) eleicaoAtiva(w http.ResponseWriter, r *http.Request) {
	eleicao, err := a.eleicoes.Ativa(r.Context())
	if err != nil {
		if errors.Is(err, eleicoes.ErrEleicaoNaoEncontrada) {
			// Sem eleição ativa não é erro para o cliente público.
			responderJSON(w, http.StatusOK, nil)
			return
		}
		a.logger.Error("erro ao buscar eleicao ativa", "err", err)
		responderErro(w, err)
		return
	}
	responderJSON(w, http.StatusOK, eleicao)
}

func (a *API) historico(w http.ResponseWriter, r *http.Request) {
	historico, err := a.eleicoes.Historico(r.Context())
	if err != nil {
		a.logger.Error("erro ao listar historico", "err", err)
		responderErro(w, err)
		return
	}
	responderJSON(w, http.StatusOK, historico)
}

func (a *API) encerrarEleicao(w http.ResponseWriter, r *http.Request) {
	id := domain.EleicaoID(r.PathValue("id"))
	if err := a.eleicoes.Encerrar(r.Context(), id); err != nil {
		a.logger.Warn("falha ao encerrar eleicao", "err", err, "eleicao_id", id)
		responderErro(w, err)
		return
	}
	responderJSON(w, http.StatusOK, map[string]string{"status": "closed"})
}

func (a *API) finalizarEleicao(w http.ResponseWriter, r *http.Request) {
	id := domain.EleicaoID(r.PathValue("id"))
	if err := a.eleicoes.Finalizar(r.Context(), id); err != nil {
		a.logger.Warn("falha ao finalizar eleicao", "err", err, "eleicao_id", id)
		responderErro(w, err)
		return
	}
	responderJSON(w, http.StatusOK, map[string]string{"status": "finalized"})
}

func (a *API) listarCargos(w http.ResponseWriter, r *http.Request) {
	id := domain.EleicaoID(r.PathValue("id"))
	lista, err := a.cargos.Listar(r.Context(), id)
	if err != nil {
		a.logger.Error("erro ao listar cargos", "err", err, "eleicao_id", id)
		responderErro(w, err)
		return
	}
	responderJSON(w, http.StatusOK, lista)
}

func (a *API) cargoAtivo(w http.ResponseWriter, r *http.Request) {
	id := domain.EleicaoID(r.PathValue("id"))
	ativo, err := a.cargos.Ativo(r.Context(), id)
	if err != nil {
		if errors.Is(err, cargos.ErrSemCargoAtivo) {
			responderJSON(w, http.StatusOK, nil)
			return
		}
		a.logger.Error("erro ao buscar cargo ativo", "err", err, "eleicao_id", id)
		responderErro(w, err)
		return
	}
	responderJSON(w, http.StatusOK, ativo)
}

func (a *API) abrirProximoCargo(w http.ResponseWriter, r *http.Request) {
	id := domain.EleicaoID(r.PathValue("id"))
	aberto, err := a.cargos.AbrirProximo(r.Context(), id)
	if err != nil {
		a.logger.Warn("falha ao abrir proximo cargo", "err", err, "eleicao_id", id)
		responderErro(w, err)
		return
	}
	responderJSON(w, http.StatusOK, aberto)
}

func (a *API) abrirCargo(w http.ResponseWriter, r *http.Request) {
	id := domain.EleicaoID(r.PathValue("id"))
	posID := domain.CargoEleicaoID(r.PathValue("posId"))
	aberto, err := a.cargos.Abrir(r.Context(), id, posID)
	if err != nil {
		a.logger.Warn("falha ao abrir cargo", "err", err, "eleicao_id", id, "cargo_eleicao_id", posID)
		responderErro(w, err)
		return
	}
	responderJSON(w, http.StatusOK, aberto)
}

func (a *API) forcarEncerramentoCargo(w http.ResponseWriter, r *http.Request) {
	id := domain.EleicaoID(r.PathValue("id"))
	posID := domain.CargoEleicaoID(r.PathValue("posId"))
	if err := a.cargos.ForcarEncerramento(r.Context(), id, posID); err != nil {
		a.logger.Warn("falha ao forcar encerramento", "err", err, "eleicao_id", id, "cargo_eleicao_id", posID)
		responderErro(w, err)
		return
	}
	responderJSON(w, http.StatusOK, map[string]string{"status": "completed"})
}

func (a *API) avancarEscrutinio(w http.ResponseWriter, r *http.Request) {
	id := domain.EleicaoID(r.PathValue("id"))
	escrutinio, err := a.cargos.AvancarEscrutinio(r.Context(), id)
	if err != nil {
		a.logger.Warn("falha ao avancar escrutinio", "err", err, "eleicao_id", id)
		responderErro(w, err)
		return
	}
	responderJSON(w, http.StatusOK, map[string]int{"currentScrutiny": escrutinio})
}

func (a *API) verificarEmpate(w http.ResponseWriter, r *http.Request) {
	id := domain.EleicaoID(r.PathValue("id"))
	relatorio, err := a.apuracao.VerificarEmpate(r.Context(), id)
	if err != nil {
		a.logger.Warn("falha ao verificar empate", "err", err, "eleicao_id", id)
		responderErro(w, err)
		return
	}
	responderJSON(w, http.StatusOK, relatorio)
}

type resolverEmpateRequest struct {
	CandidatoID string `json:"candidateId"`
}

func (a *API) resolverEmpate(w http.ResponseWriter, r *http.Request) {
	id := domain.EleicaoID(r.PathValue("id"))
	var req resolverEmpateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.CandidatoID == "" {
		responderMensagem(w, http.StatusBadRequest, "payload invalido")
		return
	}

	if err := a.cargos.ResolverEmpate(r.Context(), id, domain.CandidatoID(req.CandidatoID)); err != nil {
		a.logger.Warn("falha ao resolver empate", "err", err, "eleicao_id", id, "candidato_id", req.CandidatoID)
		responderErro(w, err)
		return
	}
	responderJSON(w, http.StatusOK, map[string]string{"status": "resolved"})
}

type votoRequest struct {
	CandidatoID string `json:"candidateId"`
	CargoID     string `json:"positionId"`
	EleicaoID   string `json:"electionId"`
}

func (a *API) registrarVoto(w http.ResponseWriter, r *http.Request) {
	inicio := time.Now()

	usuario, ok := auth.Do(r.Context())
	if !ok {
		responderMensagem(w, http.StatusUnauthorized, "Token não fornecido ou inválido")
		return
	}

	var req votoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.CandidatoID == "" || req.CargoID == "" || req.EleicaoID == "" {
		metrics.ObserveVotoRequest("invalid_payload")
		a.logger.Warn("payload invalido ao registrar voto", "err", err)
		responderMensagem(w, http.StatusBadRequest, "payload invalido")
		return
	}

	voto, err := a.votacao.RegistrarVoto(
		r.Context(),
		domain.MembroID(usuario.ID),
		domain.CandidatoID(req.CandidatoID),
		domain.CargoID(req.CargoID),
		domain.EleicaoID(req.EleicaoID),
	)
	if err != nil {
		status := statusDoVoto(err)
		metrics.ObserveVotoRequest(status)
		a.logger.Warn("falha ao registrar voto", "err", err, "eleicao_id", req.EleicaoID, "cargo_id", req.CargoID, "status", status)
		responderErro(w, err)
		return
	}

	metrics.ObserveVotoRequest("accepted")
	metrics.ObserveVotoDuration(time.Since(inicio).Seconds())
	responderJSON(w, http.StatusCreated, voto)
}

func (a *API) listarCatalogo(w http.ResponseWriter, r *http.Request) {
	catalogo, err := a.catalogo.Listar(r.Context())
	if err != nil {
		a.logger.Error("erro ao listar catalogo de cargos", "err", err)
		responderErro(w, err)
		return
	}
	responderJSON(w, http.StatusOK, catalogo)
}

func (a *API) listarCandidatos(w http.ResponseWriter, r *http.Request) {
	eleicao, err := a.eleicoes.Ativa(r.Context())
	if err != nil {
		a.logger.Warn("falha ao listar candidatos", "err", err)
		responderErro(w, err)
		return
	}

	candidatos, err := a.votacao.ListarCandidatos(r.Context(), eleicao.ID)
	if err != nil {
		a.logger.Error("erro ao listar candidatos", "err", err, "eleicao_id", eleicao.ID)
		responderErro(w, err)
		return
	}
	responderJSON(w, http.StatusOK, candidatos)
}

type candidatoRequest struct {
	MembroID  string `json:"userId"`
	Nome      string `json:"name"`
	Email     string `json:"email"`
	CargoID   string `json:"positionId"`
	EleicaoID string `json:"electionId"`
}

func (a *API) criarCandidato(w http.ResponseWriter, r *http.Request) {
	var req candidatoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		responderMensagem(w, http.StatusBadRequest, "payload invalido")
		return
	}

	candidato, err := a.votacao.CriarCandidato(
		r.Context(),
		domain.MembroID(req.MembroID),
		req.Nome,
		req.Email,
		domain.CargoID(req.CargoID),
		domain.EleicaoID(req.EleicaoID),
	)
	if err != nil {
		a.logger.Warn("falha ao criar candidato", "err", err)
		responderErro(w, err)
		return
	}
	responderJSON(w, http.StatusCreated, candidato)
}

func (a *API) candidatosPorCargo(w http.ResponseWriter, r *http.Request) {
	id := domain.EleicaoID(r.PathValue("id"))
	cargoID := domain.CargoID(r.PathValue("posId"))
	candidatos, err := a.votacao.CandidatosPorCargo(r.Context(), id, cargoID)
	if err != nil {
		a.logger.Error("erro ao listar candidatos do cargo", "err", err, "eleicao_id", id, "cargo_id", cargoID)
		responderErro(w, err)
		return
	}
	responderJSON(w, http.StatusOK, candidatos)
}

func (a *API) iniciarPresenca(w http.ResponseWriter, r *http.Request) {
	id := domain.EleicaoID(r.PathValue("id"))
	if err := a.eleicoes.IniciarPresenca(r.Context(), id); err != nil {
		a.logger.Warn("falha ao iniciar presenca", "err", err, "eleicao_id", id)
		responderErro(w, err)
		return
	}
	responderJSON(w, http.StatusCreated, map[string]string{"status": "initialized"})
}

func (a *API) listarPresenca(w http.ResponseWriter, r *http.Request) {
	id := domain.EleicaoID(r.PathValue("id"))
	lista, err := a.eleicoes.ListarPresenca(r.Context(), id)
	if err != nil {
		a.logger.Error("erro ao listar presenca", "err", err, "eleicao_id", id)
		responderErro(w, err)
		return
	}
	responderJSON(w, http.StatusOK, lista)
}

type presencaRequest struct {
	Presente bool `json:"isPresent"`
}

func (a *API) marcarPresenca(w http.ResponseWriter, r *http.Request) {
	id := domain.EleicaoID(r.PathValue("id"))
	membroID := domain.MembroID(r.PathValue("memberId"))

	var req presencaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		responderMensagem(w, http.StatusBadRequest, "payload invalido")
		return
	}

	if err := a.eleicoes.MarcarPresenca(r.Context(), id, membroID, req.Presente); err != nil {
		a.logger.Warn("falha ao marcar presenca", "err", err, "eleicao_id", id, "membro_id", membroID)
		responderErro(w, err)
		return
	}
	responderJSON(w, http.StatusOK, map[string]bool{"isPresent": req.Presente})
}

func (a *API) contarPresentes(w http.ResponseWriter, r *http.Request) {
	id := domain.EleicaoID(r.PathValue("id"))
	total, err := a.eleicoes.ContarPresentes(r.Context(), id)
	if err != nil {
		a.logger.Error("erro ao contar presentes", "err", err, "eleicao_id", id)
		responderErro(w, err)
		return
	}
	responderJSON(w, http.StatusOK, map[string]int64{"presentCount": total})
}

func (a *API) vencedores(w http.ResponseWriter, r *http.Request) {
	id := domain.EleicaoID(r.PathValue("id"))
	lista, err := a.apuracao.Vencedores(r.Context(), id)
	if err != nil {
		a.logger.Error("erro ao listar vencedores", "err", err, "eleicao_id", id)
		responderErro(w, err)
		return
	}
	responderJSON(w, http.StatusOK, lista)
}

func (a *API) ultimosResultados(w http.ResponseWriter, r *http.Request) {
	resultados, err := a.apuracao.UltimosResultados(r.Context())
	if err != nil {
		if errors.Is(err, apuracao.ErrEleicaoNaoEncontrada) {
			responderJSON(w, http.StatusOK, nil)
			return
		}
		a.logger.Error("erro ao buscar ultimos resultados", "err", err)
		responderErro(w, err)
		return
	}
	responderJSON(w, http.StatusOK, resultados)
}

func (a *API) auditoria(w http.ResponseWriter, r *http.Request) {
	id := domain.EleicaoID(r.PathValue("id"))
	auditoria, err := a.apuracao.Auditoria(r.Context(), id)
	if err != nil {
		a.logger.Warn("falha ao compor auditoria", "err", err, "eleicao_id", id)
		responderErro(w, err)
		return
	}
	responderJSON(w, http.StatusOK, auditoria)
}

type salvarHashRequest struct {
	Hash           string `json:"hash"`
	NomePresidente string `json:"presidentName"`
}

func (a *API) salvarHash(w http.ResponseWriter, r *http.Request) {
	id := domain.EleicaoID(r.PathValue("id"))
	var req salvarHashRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		responderMensagem(w, http.StatusBadRequest, "payload invalido")
		return
	}

	if err := a.apuracao.SalvarHash(r.Context(), id, req.Hash, req.NomePresidente); err != nil {
		a.logger.Warn("falha ao salvar hash", "err", err, "eleicao_id", id)
		responderErro(w, err)
		return
	}
	responderJSON(w, http.StatusCreated, map[string]string{"status": "saved"})
}

func (a *API) verificarHash(w http.ResponseWriter, r *http.Request) {
	hash := r.PathValue("hash")
	detalhe, err := a.apuracao.VerificarHash(r.Context(), hash)
	if err != nil {
		if errors.Is(err, apuracao.ErrHashNaoEncontrado) {
			responderJSON(w, http.StatusNotFound, map[string]bool{"valid": false})
			return
		}
		a.logger.Error("erro ao verificar hash", "err", err)
		responderErro(w, err)
		return
	}
	responderJSON(w, http.StatusOK, map[string]any{"valid": true, "verification": detalhe})
}

func (a *API) listarMembros(w http.ResponseWriter, r *http.Request) {
	lista, err := a.membros.Listar(r.Context())
	if err != nil {
		a.logger.Error("erro ao listar membros", "err", err)
		responderErro(w, err)
		return
	}
	responderJSON(w, http.StatusOK, lista)
}

func (a *API) removerMembro(w http.ResponseWriter, r *http.Request) {
	id := domain.MembroID(r.PathValue("id"))
	if err := a.membros.Remover(r.Context(), id); err != nil {
		a.logger.Warn("falha ao remover membro", "err", err, "membro_id", id)
		responderErro(w, err)
		return
	}
	responderJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

func responderJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func responderMensagem(w http.ResponseWriter, status int, mensagem string) {
	responderJSON(w, status, map[string]string{"message": mensagem})
}

// responderErro traduz os erros sentinela dos serviços para o status HTTP da
// taxonomia da API; o que não for reconhecido vira 500 com mensagem genérica.
func responderErro(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, eleicoes.ErrNomeObrigatorio),
		errors.Is(err, eleicoes.ErrSemCargosCatalogo),
		errors.Is(err, eleicoes.ErrCargosPendentes),
		errors.Is(err, cargos.ErrCargoNaoPendente),
		errors.Is(err, cargos.ErrCargoJaConcluido),
		errors.Is(err, cargos.ErrLimiteEscrutinio),
		errors.Is(err, cargos.ErrCargoJaDecidido),
		errors.Is(err, cargos.ErrEleicaoEncerrada),
		errors.Is(err, votacao.ErrVotacaoFechada),
		errors.Is(err, votacao.ErrVotoDuplicado),
		errors.Is(err, votacao.ErrCandidaturaDuplicada),
		errors.Is(err, votacao.ErrCandidaturaInvalida),
		errors.Is(err, apuracao.ErrHashObrigatorio),
		errors.Is(err, membros.ErrMembroNaoRemovivel):
		status = http.StatusBadRequest
	case errors.Is(err, votacao.ErrSemPresenca),
		errors.Is(err, votacao.ErrNaoPresente):
		status = http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, eleicoes.ErrEleicaoNaoEncontrada),
		errors.Is(err, eleicoes.ErrPresencaNaoEncontrada),
		errors.Is(err, cargos.ErrCargoNaoEncontrado),
		errors.Is(err, cargos.ErrSemCargoAtivo),
		errors.Is(err, cargos.ErrSemCargosPendentes),
		errors.Is(err, cargos.ErrCandidatoNaoEncontrado),
		errors.Is(err, votacao.ErrCandidatoNaoEncontrado),
		errors.Is(err, apuracao.ErrSemCargoAtivo),
		errors.Is(err, apuracao.ErrEleicaoNaoEncontrada),
		errors.Is(err, apuracao.ErrHashNaoEncontrado),
		errors.Is(err, membros.ErrMembroNaoEncontrado):
		status = http.StatusNotFound
	case errors.Is(err, votacao.ErrAntifraude),
		errors.Is(err, antifraude.ErrRateLimitExceeded):
		status = http.StatusTooManyRequests
	case errors.Is(err, redis.ErrTravaOcupada):
		status = http.StatusConflict
	}

	mensagem := err.Error()
	if status == http.StatusInternalServerError {
		mensagem = "erro interno"
	}
	responderJSON(w, status, map[string]string{"message": mensagem})
}

func statusDoVoto(err error) string {
	switch {
	case errors.Is(err, votacao.ErrVotoDuplicado):
		return "duplicate"
	case errors.Is(err, votacao.ErrVotacaoFechada):
		return "closed"
	case errors.Is(err, votacao.ErrSemPresenca), errors.Is(err, votacao.ErrNaoPresente):
		return "not_present"
	case errors.Is(err, votacao.ErrCandidatoNaoEncontrado):
		return "invalid_candidate"
	case errors.Is(err, votacao.ErrAntifraude):
		return "rate_limited"
	default:
		return "error"
	}
}
