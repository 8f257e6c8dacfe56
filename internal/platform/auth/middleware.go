// Pacote auth verifica o token bearer e entrega a identidade tipada com as flags de papel.
// Emissão de credenciais (login, senha) é responsabilidade de outro sistema.
package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v4"

	"github.com/marcelojr/eleicoes-diretoria/internal/domain"
)

// Usuario é a identidade extraída das claims do token; não há consulta ao banco.
type Usuario struct {
	ID           domain.MembroID
	NomeCompleto string
	Email        string
	Admin        bool
	Membro       bool
	MembroAtivo  bool
	TemSenha     bool
}

type ctxKey struct{}

// Middleware valida tokens HMAC assinados com o segredo compartilhado.
type Middleware struct {
	secret []byte
}

func New(secret string) *Middleware {
	return &Middleware{secret: []byte(secret)}
}

// Exigir exige um token válido e injeta o Usuario no contexto da requisição.
func (m *Middleware) Exigir(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		usuario, ok := m.autenticar(r)
		if !ok {
			responderMensagem(w, http.StatusUnauthorized, "Token não fornecido ou inválido")
			return
		}
		next(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, usuario)))
	}
}

// ExigirAdmin exige token válido com a flag de administrador.
func (m *Middleware) ExigirAdmin(next http.HandlerFunc) http.HandlerFunc {
	return m.Exigir(func(w http.ResponseWriter, r *http.Request) {
		usuario, _ := Do(r.Context())
		if !usuario.Admin {
			responderMensagem(w, http.StatusForbidden, "Acesso negado: apenas administradores")
			return
		}
		next(w, r)
	})
}

// ExigirMembro exige token válido de um membro (administradores também passam).
func (m *Middleware) ExigirMembro(next http.HandlerFunc) http.HandlerFunc {
	return m.Exigir(func(w http.ResponseWriter, r *http.Request) {
		usuario, _ := Do(r.Context())
		if !usuario.Membro && !usuario.Admin {
			responderMensagem(w, http.StatusForbidden, "Acesso negado: apenas membros")
			return
		}
		next(w, r)
	})
}

// Do devolve o usuário autenticado do contexto, quando presente.
func Do(ctx context.Context) (Usuario, bool) {
	usuario, ok := ctx.Value(ctxKey{}).(Usuario)
	return usuario, ok
}

func (m *Middleware) autenticar(r *http.Request) (Usuario, bool) {
	header := r.Header.Get("Authorization")
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		return Usuario{}, false
	}

	tokenString := strings.TrimPrefix(header, "Bearer ")
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return Usuario{}, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Usuario{}, false
	}

	id, ok := claims["sub"].(string)
	if !ok || id == "" {
		return Usuario{}, false
	}

	return Usuario{
		ID:           domain.MembroID(id),
		NomeCompleto: stringClaim(claims, "fullName"),
		Email:        stringClaim(claims, "email"),
		Admin:        boolClaim(claims, "isAdmin"),
		Membro:       boolClaim(claims, "isMember"),
		MembroAtivo:  boolClaim(claims, "activeMember"),
		TemSenha:     boolClaim(claims, "hasPassword"),
	}, true
}

func stringClaim(claims jwt.MapClaims, nome string) string {
	v, _ := claims[nome].(string)
	return v
}

func boolClaim(claims jwt.MapClaims, nome string) bool {
	v, _ := claims[nome].(bool)
	return v
}

func responderMensagem(w http.ResponseWriter, status int, mensagem string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": mensagem})
}
