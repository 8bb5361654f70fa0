package ports

import "context"

// Roles de los mensajes de una conversación con el LLM.
const (
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
	ChatRoleSystem    = "system"
)

// ChatMessage un turno de la conversación.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// LLMService define el puerto de salida hacia el backend de chat (Claude).
// Cualquier adaptador (Anthropic, mock) debe implementar esta interfaz;
// la aplicación solo conoce este contrato, no la implementación concreta.
type LLMService interface {
	// SendMessage envía la conversación al modelo y devuelve el texto de
	// respuesta. systemContext vacío usa el prompt por defecto del
	// adaptador; webSearch habilita la herramienta de búsqueda web.
	// El contexto debe llevar timeout para no bloquear el servidor.
	SendMessage(ctx context.Context, systemContext string, messages []ChatMessage, webSearch bool) (string, error)
}
