package identity

import (
	"context"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/overdrive-app/overdrive-api/internal/application/ports"
)

// Certificados públicos con los que Google firma los id tokens de
// Firebase. Rotan; se cachean y se refrescan periódicamente.
const defaultCertsURL = "https://www.googleapis.com/robot/v1/metadata/x509/securetoken@system.gserviceaccount.com"

const certsRefreshInterval = time.Hour

var _ ports.TokenVerifier = (*FirebaseVerifier)(nil)

// firebaseClaims claims del id token de Firebase que nos interesan además
// de los registrados.
type firebaseClaims struct {
	jwt.RegisteredClaims
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// FirebaseVerifier adaptador que implementa TokenVerifier verificando id
// tokens de Firebase (RS256) contra los certificados públicos de Google.
// No usa el SDK de firebase-admin: la verificación es JWT estándar con
// los checks de issuer y audience que documenta Firebase.
type FirebaseVerifier struct {
	projectID  string
	certsURL   string
	httpClient *http.Client

	mu          sync.RWMutex
	keys        map[string]*rsa.PublicKey
	lastRefresh time.Time
}

// NewFirebaseVerifier construye el verificador para un proyecto Firebase.
func NewFirebaseVerifier(projectID string) *FirebaseVerifier {
	return &FirebaseVerifier{
		projectID:  projectID,
		certsURL:   defaultCertsURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// NewFirebaseVerifierWithCertsURL igual que NewFirebaseVerifier pero con
// un endpoint de certificados propio (tests).
func NewFirebaseVerifierWithCertsURL(projectID, certsURL string) *FirebaseVerifier {
	v := NewFirebaseVerifier(projectID)
	v.certsURL = certsURL
	return v
}

// Verify valida el id token y devuelve el perfil decodificado. Cualquier
// problema (firma, expiración, issuer, audience) devuelve error; el
// llamador lo convierte en un 401 genérico.
func (v *FirebaseVerifier) Verify(ctx context.Context, token string) (*ports.Profile, error) {
	if v.projectID == "" {
		return nil, fmt.Errorf("identity: FIREBASE_PROJECT_ID no configurado")
	}

	claims := &firebaseClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		kid, _ := t.Header["kid"].(string)
		if kid == "" {
			return nil, fmt.Errorf("token sin kid")
		}
		return v.publicKey(ctx, kid)
	},
		jwt.WithIssuer("https://securetoken.google.com/"+v.projectID),
		jwt.WithAudience(v.projectID),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("verify id token: %w", err)
	}
	if !parsed.Valid {
		return nil, fmt.Errorf("verify id token: claims inválidos")
	}

	return &ports.Profile{
		Email:   claims.Email,
		Name:    claims.Name,
		Picture: claims.Picture,
	}, nil
}

// publicKey devuelve la clave pública para el kid, refrescando el caché de
// certificados si el kid no está o el caché venció.
func (v *FirebaseVerifier) publicKey(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	v.mu.RLock()
	key, ok := v.keys[kid]
	fresh := time.Since(v.lastRefresh) < certsRefreshInterval
	v.mu.RUnlock()
	if ok && fresh {
		return key, nil
	}

	if err := v.refreshCerts(ctx); err != nil {
		return nil, err
	}

	v.mu.RLock()
	defer v.mu.RUnlock()
	key, ok = v.keys[kid]
	if !ok {
		return nil, fmt.Errorf("kid %q desconocido", kid)
	}
	return key, nil
}

// refreshCerts descarga y parsea el mapa kid -> certificado PEM de Google.
func (v *FirebaseVerifier) refreshCerts(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.certsURL, nil)
	if err != nil {
		return fmt.Errorf("crear request de certificados: %w", err)
	}
	resp, err := v.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("descargar certificados: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("descargar certificados: HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 256*1024))
	if err != nil {
		return fmt.Errorf("leer certificados: %w", err)
	}

	var raw map[string]string
	if err := json.Unmarshal(body, &raw); err != nil {
		return fmt.Errorf("parsear certificados: %w", err)
	}

	keys := make(map[string]*rsa.PublicKey, len(raw))
	for kid, certPEM := range raw {
		block, _ := pem.Decode([]byte(certPEM))
		if block == nil {
			return fmt.Errorf("certificado PEM inválido para kid %q", kid)
		}
		cert, err := x509.ParseCertificate(block.Bytes)
		if err != nil {
			return fmt.Errorf("parsear certificado %q: %w", kid, err)
		}
		pub, ok := cert.PublicKey.(*rsa.PublicKey)
		if !ok {
			return fmt.Errorf("certificado %q no es RSA", kid)
		}
		keys[kid] = pub
	}

	v.mu.Lock()
	v.keys = keys
	v.lastRefresh = time.Now()
	v.mu.Unlock()
	return nil
}
