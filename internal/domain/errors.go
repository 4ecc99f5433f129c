package domain

import "errors"

// Errores de dominio (sin dependencias externas). Los handlers HTTP los
// mapean a códigos de estado; los adaptadores los envuelven con %w.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthenticated    = errors.New("token ausente, inválido o expirado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrNoData             = errors.New("no hay datos en el ledger")
	ErrUpstream           = errors.New("fallo del sistema externo")
)
