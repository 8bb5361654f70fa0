package ports

import "context"

// FaceEmotion una emoción detectada en una cara, con su confianza (0-100).
type FaceEmotion struct {
	Type       string  `json:"type"`
	Confidence float64 `json:"confidence"`
}

// Face resultado de detección para una cara.
type Face struct {
	Emotions   []FaceEmotion `json:"emotions"`
	Confidence float64       `json:"confidence"`
	Smile      bool          `json:"smile"`
	AgeLow     int32         `json:"age_low"`
	AgeHigh    int32         `json:"age_high"`
}

// FaceAnalyzer define el puerto de salida hacia el servicio de análisis
// facial (AWS Rekognition en producción, fake en tests).
type FaceAnalyzer interface {
	DetectFaces(ctx context.Context, image []byte) ([]Face, error)
}
