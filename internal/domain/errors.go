package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound         = errors.New("recurso no encontrado")
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrUpstream         = errors.New("falla en la API de analítica")
	ErrAlreadyCompleted = errors.New("el widget ya señalizó su finalización")
	ErrInvalidState     = errors.New("transición de estado inválida")
)
