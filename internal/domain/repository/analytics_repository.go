package repository

import (
	"context"

	"github.com/jhoicas/painel-vendas/internal/domain/entity"
)

// AnalyticsRepository consultas de lectura contra la API de analítica.
// Las implementaciones son read-only y no interpretan las filas: la traducción
// de IDs y buckets la hace el paquete translate.
type AnalyticsRepository interface {
	// Query ejecuta POST /api/v1/analytics/query y devuelve data tal cual.
	Query(ctx context.Context, q entity.AnalyticsQuery) ([]entity.ResultRow, error)

	// TopProducts ejecuta GET /api/v1/analytics/top_products.
	TopProducts(ctx context.Context) ([]entity.TopProduct, error)
}

// ReferenceRepository catálogos de referencia (lojas, canais, produtos, clientes, marcas).
type ReferenceRepository interface {
	// List devuelve el catálogo completo del tipo indicado.
	List(ctx context.Context, kind entity.ReferenceKind) ([]entity.ReferenceEntity, error)
}
