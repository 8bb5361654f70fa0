package ai_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/overdrive-app/overdrive-api/internal/application/ports"
	"github.com/overdrive-app/overdrive-api/internal/infrastructure/ai"
)

// capturedRequest body tal como lo recibe el servidor falso.
type capturedRequest struct {
	Model  string `json:"model"`
	System []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"system"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
	Tools []struct {
		Type string `json:"type"`
		Name string `json:"name"`
	} `json:"tools"`
}

// newFakeAnthropic levanta un servidor que responde con un bloque de texto
// fijo y captura la petición.
func newFakeAnthropic(t *testing.T, answer string) (*httptest.Server, *capturedRequest, *http.Header) {
	t.Helper()
	captured := &capturedRequest{}
	headers := &http.Header{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*headers = r.Header.Clone()
		require.NoError(t, json.NewDecoder(r.Body).Decode(captured))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]string{{"type": "text", "text": answer}},
		})
	}))
	t.Cleanup(server.Close)
	return server, captured, headers
}

// TestSendMessage_ProtocoloCompleto verifica el payload completo: modelo,
// system block, headers de versión y api key, y el texto devuelto.
func TestSendMessage_ProtocoloCompleto(t *testing.T) {
	server, captured, headers := newFakeAnthropic(t, "la respuesta")
	svc := ai.NewAnthropicServiceWithURL("sk-test", "claude-opus-4-20250514", server.URL)

	out, err := svc.SendMessage(context.Background(), "sé breve", []ports.ChatMessage{
		{Role: ports.ChatRoleUser, Content: "hola"},
	}, false)
	require.NoError(t, err)
	assert.Equal(t, "la respuesta", out)

	assert.Equal(t, "claude-opus-4-20250514", captured.Model)
	require.Len(t, captured.System, 1)
	assert.Equal(t, "sé breve", captured.System[0].Text)
	require.Len(t, captured.Messages, 1)
	assert.Equal(t, "user", captured.Messages[0].Role)
	assert.Empty(t, captured.Tools, "sin webSearch no se mandan tools")

	assert.Equal(t, "sk-test", headers.Get("x-api-key"))
	assert.Equal(t, "2023-06-01", headers.Get("anthropic-version"))
}

// TestSendMessage_RolSystemReescrito verifica que el rol system dentro del
// historial se reescribe como assistant (la API solo acepta user/assistant
// en messages).
func TestSendMessage_RolSystemReescrito(t *testing.T) {
	server, captured, _ := newFakeAnthropic(t, "ok")
	svc := ai.NewAnthropicServiceWithURL("sk-test", "", server.URL)

	_, err := svc.SendMessage(context.Background(), "", []ports.ChatMessage{
		{Role: ports.ChatRoleSystem, Content: "contexto colado en el historial"},
		{Role: ports.ChatRoleUser, Content: "hola"},
	}, false)
	require.NoError(t, err)

	require.Len(t, captured.Messages, 2)
	assert.Equal(t, "assistant", captured.Messages[0].Role)
	assert.Equal(t, "user", captured.Messages[1].Role)
}

// TestSendMessage_WebSearch verifica que con webSearch se declara la tool
// de búsqueda.
func TestSendMessage_WebSearch(t *testing.T) {
	server, captured, _ := newFakeAnthropic(t, "ok")
	svc := ai.NewAnthropicServiceWithURL("sk-test", "", server.URL)

	_, err := svc.SendMessage(context.Background(), "", []ports.ChatMessage{
		{Role: ports.ChatRoleUser, Content: "busca esto"},
	}, true)
	require.NoError(t, err)

	require.Len(t, captured.Tools, 1)
	assert.Equal(t, "web_search_20250305", captured.Tools[0].Type)
	assert.Equal(t, "web_search", captured.Tools[0].Name)
}

// TestSendMessage_SinAPIKey verifica el error descriptivo sin llegar a la red.
func TestSendMessage_SinAPIKey(t *testing.T) {
	svc := ai.NewAnthropicService("", "")
	_, err := svc.SendMessage(context.Background(), "", []ports.ChatMessage{
		{Role: ports.ChatRoleUser, Content: "hola"},
	}, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ANTHROPIC_API_KEY")
}

// TestSendMessage_ErrorDeAPI verifica que el mensaje de error de Anthropic
// se propaga.
func TestSendMessage_ErrorDeAPI(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{"type": "rate_limit_error", "message": "Too many requests"},
		})
	}))
	t.Cleanup(server.Close)
	svc := ai.NewAnthropicServiceWithURL("sk-test", "", server.URL)

	_, err := svc.SendMessage(context.Background(), "", []ports.ChatMessage{
		{Role: ports.ChatRoleUser, Content: "hola"},
	}, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate_limit_error")
}

// TestSendMessage_SaltaBloquesSinTexto verifica que se devuelve el primer
// bloque de tipo text aunque venga precedido por otros tipos.
func TestSendMessage_SaltaBloquesSinTexto(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]string{
				{"type": "thinking", "text": ""},
				{"type": "text", "text": "respuesta real"},
			},
		})
	}))
	t.Cleanup(server.Close)
	svc := ai.NewAnthropicServiceWithURL("sk-test", "", server.URL)

	out, err := svc.SendMessage(context.Background(), "", []ports.ChatMessage{
		{Role: ports.ChatRoleUser, Content: "hola"},
	}, false)
	require.NoError(t, err)
	assert.Equal(t, "respuesta real", out)
}
