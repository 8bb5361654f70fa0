package dto

import "github.com/overdrive-app/overdrive-api/internal/application/ports"

// ImageRequest entrada de los endpoints de video: imagen como data-URI
// base64 ("data:image/jpeg;base64,....").
type ImageRequest struct {
	Image string `json:"image"`
}

// EmotionResponse salida de /video/emotion: la emoción dominante de la
// primera cara detectada ("unknown" si no hay caras).
type EmotionResponse struct {
	Success  bool   `json:"success"`
	Emotions string `json:"emotions"`
}

// FacesResponse salida de /video/faces: todas las caras detectadas.
type FacesResponse struct {
	Success bool         `json:"success"`
	Faces   []ports.Face `json:"faces"`
}
