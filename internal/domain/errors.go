package domain

import (
	"fmt"
	"net/http"
)

// ErrorKind variante cerrada de error de API. La capa HTTP hace un switch
// exhaustivo sobre este tipo para mapear a status; no hay códigos ad hoc
// colgados de errores sueltos.
type ErrorKind int

const (
	// KindAuthentication fallo de autenticación o autorización (401).
	// Todas las rutas de fallo del resolver de sesión levantan esta
	// variante; la causa concreta se registra en el log, no en el body.
	KindAuthentication ErrorKind = iota
	// KindNotFound un Account/User referenciado no existe (404).
	KindNotFound
	// KindValidation payload de entrada malformado o incompleto (422).
	KindValidation
)

// APIError error de API con variante y mensaje seguro para el cliente.
type APIError struct {
	Kind    ErrorKind
	Message string
}

// Error implementa error. El body HTTP de un fallo es esta representación.
func (e *APIError) Error() string {
	return e.Message
}

// Status devuelve el status HTTP asociado a la variante.
func (e *APIError) Status() int {
	switch e.Kind {
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation:
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

// Code devuelve el código corto de la variante para el body de error.
func (e *APIError) Code() string {
	switch e.Kind {
	case KindAuthentication:
		return "UNAUTHORIZED"
	case KindNotFound:
		return "NOT_FOUND"
	case KindValidation:
		return "UNPROCESSABLE"
	}
	return "INTERNAL"
}

// NewAuthError fallo de autenticación/autorización genérico (401).
func NewAuthError(message string) *APIError {
	return &APIError{Kind: KindAuthentication, Message: message}
}

// NewNotFoundError objeto referenciado inexistente (404). El mensaje sigue
// el formato "The object of type X with id Y could not be found.".
func NewNotFoundError(objectType, objectID string) *APIError {
	withID := ""
	if objectID != "" {
		withID = fmt.Sprintf(" with id %s", objectID)
	}
	return &APIError{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("The object of type %s%s could not be found.", objectType, withID),
	}
}

// NewValidationError entrada inválida (422).
func NewValidationError(message string) *APIError {
	return &APIError{Kind: KindValidation, Message: message}
}
