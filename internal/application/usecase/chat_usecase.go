package usecase

import (
	"context"
	"crypto/md5"
	"fmt"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"

	"github.com/overdrive-app/overdrive-api/internal/application/dto"
	"github.com/overdrive-app/overdrive-api/internal/application/ports"
	"github.com/overdrive-app/overdrive-api/internal/domain"
)

const (
	// TTL del caché de respuestas. Una misma pregunta con el mismo
	// contexto no vuelve a pagar una llamada al modelo en 24 horas.
	chatCacheTTL = 24 * time.Hour

	// Timeout por llamada al LLM; las respuestas largas tardan.
	chatLLMTimeout = 60 * time.Second
)

// ChatUseCase orquesta el proxy de chat hacia Claude: valida la entrada,
// arma el historial, consulta el caché y delega en el puerto LLMService.
type ChatUseCase struct {
	llm   ports.LLMService
	cache *gocache.Cache
}

// NewChatUseCase construye el caso de uso inyectando el puerto LLMService.
func NewChatUseCase(llm ports.LLMService) *ChatUseCase {
	return &ChatUseCase{
		llm:   llm,
		cache: gocache.New(chatCacheTTL, time.Hour),
	}
}

// cacheKey deriva la clave del caché de los parámetros que determinan la
// respuesta: query, contexto de sistema y si hay búsqueda web.
func cacheKey(query, systemContext string, webSearch bool) string {
	combined := fmt.Sprintf("%s_%s_%t", query, systemContext, webSearch)
	return fmt.Sprintf("%x", md5.Sum([]byte(combined)))
}

// Ask envía la pregunta al modelo y devuelve la respuesta junto con el
// historial completo. El historial enviado lleva primero la query nueva y
// después los turnos previos que mandó el cliente.
func (uc *ChatUseCase) Ask(ctx context.Context, in dto.AskRequest) (*dto.AskResponse, error) {
	query := strings.TrimSpace(in.Query)
	if query == "" {
		return nil, domain.NewValidationError("query is required")
	}

	history := make([]ports.ChatMessage, 0, len(in.History)+2)
	history = append(history, ports.ChatMessage{Role: ports.ChatRoleUser, Content: query})
	for _, msg := range in.History {
		history = append(history, ports.ChatMessage{Role: msg.Role, Content: msg.Content})
	}

	key := cacheKey(query, in.SystemContext, in.WebSearch)
	if cached, ok := uc.cache.Get(key); ok {
		log.Debug().Str("key", key).Msg("chat cache hit")
		answer := cached.(string)
		return &dto.AskResponse{
			Response:    answer,
			ChatHistory: append(history, ports.ChatMessage{Role: ports.ChatRoleAssistant, Content: answer}),
			Cached:      true,
		}, nil
	}
	log.Debug().Str("key", key).Msg("chat cache miss")

	ctx, cancel := context.WithTimeout(ctx, chatLLMTimeout)
	defer cancel()

	answer, err := uc.llm.SendMessage(ctx, in.SystemContext, history, in.WebSearch)
	if err != nil {
		return nil, fmt.Errorf("chat: %w", err)
	}

	uc.cache.Set(key, answer, gocache.DefaultExpiration)

	return &dto.AskResponse{
		Response:    answer,
		ChatHistory: append(history, ports.ChatMessage{Role: ports.ChatRoleAssistant, Content: answer}),
	}, nil
}

// CacheStats devuelve el tamaño actual del caché de respuestas.
func (uc *ChatUseCase) CacheStats() dto.CacheStatsResponse {
	return dto.CacheStatsResponse{Size: uc.cache.ItemCount()}
}

// ClearCache vacía el caché de respuestas.
func (uc *ChatUseCase) ClearCache() {
	n := uc.cache.ItemCount()
	uc.cache.Flush()
	log.Info().Int("entries", n).Msg("chat cache cleared")
}
