package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/overdrive-app/overdrive-api/internal/application/ports"
)

// Verificar en tiempo de compilación que AnthropicService implementa LLMService.
var _ ports.LLMService = (*AnthropicService)(nil)

const (
	anthropicMessagesURL = "https://api.anthropic.com/v1/messages"
	anthropicVersion     = "2023-06-01"

	defaultModel     = "claude-opus-4-20250514"
	defaultMaxTokens = 4096

	defaultSystemContext = "You are a helpful assistant. If you do not know the answer, just say so. And try to give a confidence score with your answer."
)

var defaultTemperature = 0.7

// AnthropicService adaptador que implementa LLMService usando la API REST
// de Anthropic (Claude). Usa net/http de la librería estándar; no
// requiere el SDK oficial.
type AnthropicService struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewAnthropicService construye el adaptador. Si model está vacío se usa
// el default. Si apiKey está vacío las llamadas devuelven error
// descriptivo en lugar de panic.
func NewAnthropicService(apiKey, model string) *AnthropicService {
	if model == "" {
		model = defaultModel
	}
	return &AnthropicService{
		apiKey:  apiKey,
		model:   model,
		baseURL: anthropicMessagesURL,
		// Timeout de red amplio; el use case impone además su propio
		// context.WithTimeout.
		httpClient: &http.Client{Timeout: 90 * time.Second},
	}
}

// NewAnthropicServiceWithURL igual que NewAnthropicService pero apuntando
// a otro endpoint (tests con httptest).
func NewAnthropicServiceWithURL(apiKey, model, baseURL string) *AnthropicService {
	s := NewAnthropicService(apiKey, model)
	s.baseURL = baseURL
	return s
}

// ── Estructuras del protocolo Anthropic Messages API ──────────────────────────

type anthropicSystemBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicTool struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

type anthropicRequest struct {
	Model       string                 `json:"model"`
	MaxTokens   int                    `json:"max_tokens"`
	Temperature float64                `json:"temperature"`
	System      []anthropicSystemBlock `json:"system"`
	Messages    []anthropicMessage     `json:"messages"`
	Tools       []anthropicTool        `json:"tools,omitempty"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// ── Implementación del puerto ─────────────────────────────────────────────────

// SendMessage envía la conversación a Claude y devuelve el texto del
// primer bloque de respuesta. El rol "system" dentro del historial se
// reescribe como "assistant": la API solo acepta user/assistant en
// messages, el contexto de sistema va aparte.
func (s *AnthropicService) SendMessage(ctx context.Context, systemContext string, messages []ports.ChatMessage, webSearch bool) (string, error) {
	if s.apiKey == "" {
		return "", fmt.Errorf("AI: ANTHROPIC_API_KEY no configurado")
	}

	if systemContext == "" {
		systemContext = defaultSystemContext
	}

	msgs := make([]anthropicMessage, 0, len(messages))
	for _, m := range messages {
		role := m.Role
		if role == ports.ChatRoleSystem {
			role = ports.ChatRoleAssistant
		}
		msgs = append(msgs, anthropicMessage{Role: role, Content: m.Content})
	}

	payload := anthropicRequest{
		Model:       s.model,
		MaxTokens:   defaultMaxTokens,
		Temperature: defaultTemperature,
		System:      []anthropicSystemBlock{{Type: "text", Text: systemContext}},
		Messages:    msgs,
	}
	if webSearch {
		payload.Tools = []anthropicTool{{Type: "web_search_20250305", Name: "web_search"}}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("AI: serializar request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("AI: crear HTTP request: %w", err)
	}
	req.Header.Set("x-api-key", s.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)
	req.Header.Set("content-type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("AI: timeout o cancelación: %w", ctx.Err())
		}
		return "", fmt.Errorf("AI: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 1024*1024))
	if err != nil {
		return "", fmt.Errorf("AI: leer respuesta: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp anthropicResponse
		if jsonErr := json.Unmarshal(rawBody, &errResp); jsonErr == nil && errResp.Error != nil {
			return "", fmt.Errorf("AI: Anthropic error (%s): %s", errResp.Error.Type, errResp.Error.Message)
		}
		return "", fmt.Errorf("AI: Anthropic HTTP %d: %s", resp.StatusCode, string(rawBody))
	}

	var anthResp anthropicResponse
	if err := json.Unmarshal(rawBody, &anthResp); err != nil {
		return "", fmt.Errorf("AI: deserializar respuesta Anthropic: %w", err)
	}

	// El primer bloque puede ser thinking u otro tipo sin texto.
	for _, block := range anthResp.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", fmt.Errorf("AI: Claude devolvió respuesta sin texto")
}
