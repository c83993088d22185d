package dto

import "github.com/jhoicas/painel-vendas/internal/domain/entity"

// BrandDTO respuesta de GET /api/brand (nombre mostrado en el cabeçalho).
type BrandDTO struct {
	Name string `json:"name"`
}

// ReferenceListDTO respuesta de GET /api/reference/:kind.
type ReferenceListDTO struct {
	Kind string                   `json:"kind"`
	Data []entity.ReferenceEntity `json:"data"`
}
