package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	// ErrLinkExpired el enlace existe pero su expires_at ya pasó. Distinto de ErrNotFound
	// para que el cliente muestre "este enlace expiró" y no "este enlace no existe".
	ErrLinkExpired = errors.New("el enlace ha expirado")
	// ErrStorageDisabled no hay bucket configurado para las imágenes.
	ErrStorageDisabled = errors.New("almacenamiento de imágenes no configurado")
)
