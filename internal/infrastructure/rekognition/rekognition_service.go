package rekognition

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"

	"github.com/overdrive-app/overdrive-api/internal/application/ports"
)

var _ ports.FaceAnalyzer = (*Service)(nil)

// detectFacesAPI contrato mínimo del cliente Rekognition, para poder
// inyectar un fake en tests.
type detectFacesAPI interface {
	DetectFaces(ctx context.Context, params *rekognition.DetectFacesInput, optFns ...func(*rekognition.Options)) (*rekognition.DetectFacesOutput, error)
}

// Service adaptador que implementa FaceAnalyzer sobre AWS Rekognition.
type Service struct {
	client detectFacesAPI
}

// New construye el adaptador resolviendo credenciales con la cadena por
// defecto del SDK (env, perfil, rol de instancia).
func New(ctx context.Context, region string) (*Service, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("cargar configuración AWS: %w", err)
	}
	return &Service{client: rekognition.NewFromConfig(cfg)}, nil
}

// NewWithClient construye el adaptador con un cliente ya creado (tests).
func NewWithClient(client detectFacesAPI) *Service {
	return &Service{client: client}
}

// DetectFaces envía la imagen a Rekognition con todos los atributos y
// traduce el resultado al modelo del puerto.
func (s *Service) DetectFaces(ctx context.Context, image []byte) ([]ports.Face, error) {
	out, err := s.client.DetectFaces(ctx, &rekognition.DetectFacesInput{
		Image:      &types.Image{Bytes: image},
		Attributes: []types.Attribute{types.AttributeAll},
	})
	if err != nil {
		return nil, fmt.Errorf("rekognition DetectFaces: %w", err)
	}

	faces := make([]ports.Face, 0, len(out.FaceDetails))
	for _, detail := range out.FaceDetails {
		face := ports.Face{}
		if detail.Confidence != nil {
			face.Confidence = float64(*detail.Confidence)
		}
		if detail.Smile != nil && detail.Smile.Value {
			face.Smile = true
		}
		if detail.AgeRange != nil {
			if detail.AgeRange.Low != nil {
				face.AgeLow = *detail.AgeRange.Low
			}
			if detail.AgeRange.High != nil {
				face.AgeHigh = *detail.AgeRange.High
			}
		}
		for _, emotion := range detail.Emotions {
			e := ports.FaceEmotion{Type: string(emotion.Type)}
			if emotion.Confidence != nil {
				e.Confidence = float64(*emotion.Confidence)
			}
			face.Emotions = append(face.Emotions, e)
		}
		faces = append(faces, face)
	}
	return faces, nil
}
