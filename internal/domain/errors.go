package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound                = errors.New("recurso no encontrado")
	ErrValidation              = errors.New("entrada inválida")
	ErrInvalidTransition       = errors.New("transición de estado inválida")
	ErrInsufficientStock       = errors.New("stock insuficiente")
	ErrDuplicateIdempotencyKey = errors.New("clave de idempotencia ya utilizada")
	ErrUserNotFound            = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists      = errors.New("el email ya está registrado")
	ErrUnauthorized            = errors.New("no autorizado")
	ErrForbidden               = errors.New("acceso denegado")
)
