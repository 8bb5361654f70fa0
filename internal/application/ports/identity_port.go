package ports

import "context"

// Profile perfil decodificado que devuelve el proveedor de identidad al
// verificar un token. Email es la clave de correlación con el directorio.
type Profile struct {
	Email   string
	Name    string
	Picture string
}

// TokenVerifier define el puerto de salida hacia el proveedor de identidad
// externo. El adaptador real verifica id tokens de Firebase; en tests se
// sustituye por un fake. Verify falla con el error del proveedor ante un
// token inválido o expirado; el llamador lo equipara a un 401 genérico.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*Profile, error)
}
