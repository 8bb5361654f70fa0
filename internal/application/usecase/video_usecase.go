package usecase

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/overdrive-app/overdrive-api/internal/application/dto"
	"github.com/overdrive-app/overdrive-api/internal/application/ports"
	"github.com/overdrive-app/overdrive-api/internal/domain"
)

// VideoUseCase analiza fotogramas enviados por el frontend: detección de
// caras y reducción a la emoción dominante.
type VideoUseCase struct {
	analyzer ports.FaceAnalyzer
}

// NewVideoUseCase construye el caso de uso inyectando el analizador.
func NewVideoUseCase(analyzer ports.FaceAnalyzer) *VideoUseCase {
	return &VideoUseCase{analyzer: analyzer}
}

// decodeImage decodifica un data-URI base64 ("data:image/...;base64,xxx").
// También acepta base64 pelado, sin prefijo.
func decodeImage(image string) ([]byte, error) {
	if image == "" {
		return nil, domain.NewValidationError("No image data provided")
	}
	payload := image
	if idx := strings.Index(image, ","); idx != -1 {
		payload = image[idx+1:]
	}
	buf, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, domain.NewValidationError("invalid base64 image data")
	}
	return buf, nil
}

// DetectFaces devuelve todas las caras detectadas en la imagen.
func (uc *VideoUseCase) DetectFaces(ctx context.Context, in dto.ImageRequest) (*dto.FacesResponse, error) {
	buf, err := decodeImage(in.Image)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	faces, err := uc.analyzer.DetectFaces(ctx, buf)
	if err != nil {
		return nil, fmt.Errorf("detect faces: %w", err)
	}
	if faces == nil {
		faces = []ports.Face{}
	}
	return &dto.FacesResponse{Success: true, Faces: faces}, nil
}

// DetectEmotion reduce la detección a la emoción con más confianza de la
// primera cara. Sin caras: "unknown". Sin emociones: "neutral".
func (uc *VideoUseCase) DetectEmotion(ctx context.Context, in dto.ImageRequest) (*dto.EmotionResponse, error) {
	buf, err := decodeImage(in.Image)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	faces, err := uc.analyzer.DetectFaces(ctx, buf)
	if err != nil {
		return nil, fmt.Errorf("detect emotion: %w", err)
	}

	if len(faces) == 0 {
		return &dto.EmotionResponse{Success: true, Emotions: "unknown"}, nil
	}

	dominant := "neutral"
	highest := 0.0
	for _, emotion := range faces[0].Emotions {
		if emotion.Confidence > highest && emotion.Type != "" {
			highest = emotion.Confidence
			dominant = strings.ToLower(emotion.Type)
		}
	}
	return &dto.EmotionResponse{Success: true, Emotions: dominant}, nil
}
