package entity

import "github.com/shopspring/decimal"

// ResultRow fila devuelta por la API de analítica. Contiene al menos metric_result
// y la clave de agrupación (store_id, date_group_field, ...). Los números llegan
// como json.Number porque el cliente decodifica con UseNumber.
type ResultRow map[string]interface{}

// Clone copia superficial de la fila.
func (r ResultRow) Clone() ResultRow {
	out := make(ResultRow, len(r)+1)
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Name etiqueta legible añadida por el traductor ("" si aún no fue traducida).
func (r ResultRow) Name() string {
	s, _ := r["name"].(string)
	return s
}

// TopProduct fila de GET /api/v1/analytics/top_products.
type TopProduct struct {
	ProductName       string          `json:"product_name"`
	TotalQuantitySold decimal.Decimal `json:"total_quantity_sold"`
}
