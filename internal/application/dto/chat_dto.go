package dto

import "github.com/overdrive-app/overdrive-api/internal/application/ports"

// AskRequest entrada del proxy de chat.
type AskRequest struct {
	Query         string              `json:"query"`
	History       []ports.ChatMessage `json:"history"`
	SystemContext string              `json:"systemContext"`
	WebSearch     bool                `json:"webSearch"`
}

// AskResponse salida del proxy de chat: la respuesta del modelo y el
// historial completo (query + historial previo + respuesta).
type AskResponse struct {
	Response    string              `json:"response"`
	ChatHistory []ports.ChatMessage `json:"chatHistory"`
	Cached      bool                `json:"cached,omitempty"`
}

// CacheStatsResponse estadísticas del caché de respuestas.
type CacheStatsResponse struct {
	Size int `json:"size"`
}
