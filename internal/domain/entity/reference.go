package entity

// ReferenceKind catálogo de referencia expuesto en /api/v1/reference/{kind}.
type ReferenceKind string

const (
	ReferenceStores    ReferenceKind = "stores"
	ReferenceChannels  ReferenceKind = "channels"
	ReferenceProducts  ReferenceKind = "products"
	ReferenceCustomers ReferenceKind = "customers"
	ReferenceBrands    ReferenceKind = "brands"
)

// ReferenceKinds todos los catálogos conocidos.
var ReferenceKinds = []ReferenceKind{
	ReferenceStores, ReferenceChannels, ReferenceProducts, ReferenceCustomers, ReferenceBrands,
}

// Valid indica si el catálogo es conocido.
func (k ReferenceKind) Valid() bool {
	for _, known := range ReferenceKinds {
		if k == known {
			return true
		}
	}
	return false
}

// ReferenceEntity registro de consulta (loja, canal, produto, cliente, marca).
// Sólo se usa para traducir IDs a nombres; nunca se modifica.
type ReferenceEntity struct {
	ID           int64  `json:"id"`
	Name         string `json:"name,omitempty"`
	CustomerName string `json:"customer_name,omitempty"`
}

// Label nombre visible: name o, para clientes, customer_name.
func (e ReferenceEntity) Label() string {
	if e.Name != "" {
		return e.Name
	}
	return e.CustomerName
}
