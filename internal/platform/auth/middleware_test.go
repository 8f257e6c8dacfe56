package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const segredoTeste = "segredo-de-teste"

func tokenAssinado(t *testing.T, claims jwt.MapClaims) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	assinado, err := token.SignedString([]byte(segredoTeste))
	require.NoError(t, err)
	return assinado
}

func TestExigir_SemToken_DeveNegar(t *testing.T) {
	mw := New(segredoTeste)
	handler := mw.Exigir(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler nao deveria executar sem token")
	})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestExigir_ComAssinaturaErrada_DeveNegar(t *testing.T) {
	mw := New(segredoTeste)
	handler := mw.Exigir(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler nao deveria executar com assinatura invalida")
	})

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "m1"})
	assinado, err := token.SignedString([]byte("outro-segredo"))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+assinado)
	rec := httptest.NewRecorder()
	handler(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestExigir_ComTokenValido_DeveInjetarUsuario(t *testing.T) {
	mw := New(segredoTeste)

	var usuario Usuario
	handler := mw.Exigir(func(w http.ResponseWriter, r *http.Request) {
		usuario, _ = Do(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	assinado := tokenAssinado(t, jwt.MapClaims{
		"sub":          "membro-1",
		"fullName":     "Ana Souza",
		"email":        "ana@diretoria.org",
		"isAdmin":      false,
		"isMember":     true,
		"activeMember": true,
		"hasPassword":  true,
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+assinado)
	rec := httptest.NewRecorder()
	handler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Ana Souza", usuario.NomeCompleto)
	assert.True(t, usuario.Membro)
	assert.False(t, usuario.Admin)
}

func TestExigirAdmin_ComMembroComum_DeveNegar(t *testing.T) {
	mw := New(segredoTeste)
	handler := mw.ExigirAdmin(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler admin nao deveria executar para membro comum")
	})

	assinado := tokenAssinado(t, jwt.MapClaims{"sub": "membro-1", "isMember": true})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+assinado)
	rec := httptest.NewRecorder()
	handler(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestExigirMembro_AdminTambemPassa(t *testing.T) {
	mw := New(segredoTeste)
	executou := false
	handler := mw.ExigirMembro(func(w http.ResponseWriter, r *http.Request) {
		executou = true
		w.WriteHeader(http.StatusOK)
	})

	assinado := tokenAssinado(t, jwt.MapClaims{"sub": "admin-1", "isAdmin": true})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+assinado)
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, executou)
}

func TestExigir_SemClaimSub_DeveNegar(t *testing.T) {
	mw := New(segredoTeste)
	handler := mw.Exigir(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler nao deveria executar sem sub")
	})

	assinado := tokenAssinado(t, jwt.MapClaims{"isAdmin": true})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+assinado)
	rec := httptest.NewRecorder()
	handler(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
