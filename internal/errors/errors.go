package errors

import (
	"fmt"
	"net/http"
)

// AppError es la interfaz central para todos los errores tipados del
// sistema. Permite que el código externo (Handler) acceda a la Categoría y
// al estatus HTTP sugerido sin inspeccionar el tipo concreto.
type AppError interface {
	Error() string    // Implementa la interfaz error estándar de Go
	Category() string // Categoría del error (e.g., "VALIDATION_ERROR", "NOT_FOUND")
	HTTPStatus() int  // Código HTTP sugerido para el Handler
	Unwrap() error    // Permite encapsular el error subyacente
}

// --- Errores de Dominio ---

// ValidationError representa fallas de validación de los datos de entrada
// (payload vacío, sin tokens, grupo ausente). Falla rápido, antes de tocar
// el almacén, y nunca se reintenta.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string    { return fmt.Sprintf("Error de validación: %s", e.Msg) }
func (e *ValidationError) Category() string { return "VALIDATION_ERROR" }
func (e *ValidationError) HTTPStatus() int  { return http.StatusBadRequest } // 400
func (e *ValidationError) Unwrap() error    { return nil }

// NewValidationError crea un nuevo error de validación.
func NewValidationError(msg string) AppError {
	return &ValidationError{Msg: msg}
}

// NotFoundError representa la ausencia de un recurso solicitado.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string    { return fmt.Sprintf("Recurso no encontrado: %s", e.Msg) }
func (e *NotFoundError) Category() string { return "NOT_FOUND" }
func (e *NotFoundError) HTTPStatus() int  { return http.StatusNotFound } // 404
func (e *NotFoundError) Unwrap() error    { return nil }

// NewNotFoundError crea un nuevo error de recurso no encontrado.
func NewNotFoundError(msg string) AppError {
	return &NotFoundError{Msg: msg}
}

// ConflictError representa un conflicto con el estado existente (e.g.,
// números de inventario ya registrados en un alta masiva).
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string    { return fmt.Sprintf("Conflicto de estado: %s", e.Msg) }
func (e *ConflictError) Category() string { return "CONFLICT" }
func (e *ConflictError) HTTPStatus() int  { return http.StatusConflict } // 409
func (e *ConflictError) Unwrap() error    { return nil }

// NewConflictError crea un nuevo error de conflicto.
func NewConflictError(msg string) AppError {
	return &ConflictError{Msg: msg}
}

// UnauthorizedError representa una falla de autenticación o autorización
// (token ausente, inválido, o rol insuficiente).
type UnauthorizedError struct {
	Msg string
}

func (e *UnauthorizedError) Error() string    { return fmt.Sprintf("No autorizado: %s", e.Msg) }
func (e *UnauthorizedError) Category() string { return "UNAUTHORIZED" }
func (e *UnauthorizedError) HTTPStatus() int  { return http.StatusUnauthorized } // 401
func (e *UnauthorizedError) Unwrap() error    { return nil }

// NewUnauthorizedError crea un nuevo error de autorización.
func NewUnauthorizedError(msg string) AppError {
	return &UnauthorizedError{Msg: msg}
}

// --- Errores de Infraestructura ---

// InternalError representa fallas inesperadas en el servidor, servicio o
// repositorio. Encapsula el error original (e.g., el error del driver SQL).
type InternalError struct {
	Msg string
	Err error
}

func (e *InternalError) Error() string    { return fmt.Sprintf("Error interno: %s", e.Msg) }
func (e *InternalError) Category() string { return "INTERNAL_ERROR" }
func (e *InternalError) HTTPStatus() int  { return http.StatusInternalServerError } // 500
func (e *InternalError) Unwrap() error    { return e.Err }

// NewInternalError crea un error de servidor.
func NewInternalError(msg string, err error) AppError {
	return &InternalError{Msg: msg, Err: err}
}

// NewDBError es un atajo para crear un InternalError específico de fallas
// del almacén. Las mutaciones masivas NO se reintentan automáticamente: una
// falla a mitad de lote puede haber aplicado ya parte de la mutación.
func NewDBError(msg string, err error) AppError {
	return NewInternalError(fmt.Sprintf("%s (DB): %s", msg, err.Error()), err)
}

// --- Helper para el Handler (Traducción Final) ---

// MapToHTTPStatus recibe cualquier error y lo traduce al código HTTP,
// la categoría y el mensaje del cuerpo de respuesta.
func MapToHTTPStatus(err error) (int, string, string) {
	if appErr, ok := err.(AppError); ok {
		return appErr.HTTPStatus(), appErr.Category(), appErr.Error()
	}

	// Error no tipado: lo tratamos como error interno genérico.
	return http.StatusInternalServerError, "UNKNOWN_ERROR", "Ocurrió un error inesperado."
}
