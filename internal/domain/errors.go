package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound         = errors.New("recurso no encontrado")
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrInvalidQuantity  = errors.New("cantidad inválida: debe ser mayor que cero")
	ErrDuplicate        = errors.New("recurso duplicado")
	ErrConflict         = errors.New("conflicto con el estado actual")
	ErrLocked           = errors.New("costo bloqueado: no admite edición ni borrado")
	ErrAlreadyFinalized = errors.New("venta ya liquidada")
)
