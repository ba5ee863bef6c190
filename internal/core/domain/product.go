package domain

// LowStockThreshold marks the stock level at or below which a tracked
// product shows up in low-stock listings and dashboard warnings.
const LowStockThreshold = 5

// Product is a catalog entry. Stock is nil for products the shop does not
// inventory-track; that is different from a tracked product at zero.
type Product struct {
	ID    int64   `json:"id" bson:"id"`
	Name  string  `json:"name" bson:"name"`
	Price float64 `json:"price" bson:"price"`
	Type  string  `json:"type,omitempty" bson:"type,omitempty"`
	Stock *int    `json:"stock,omitempty" bson:"stock,omitempty"`
}

// Tracked reports whether the product carries inventory tracking.
func (p *Product) Tracked() bool { return p.Stock != nil }

// LowStock reports whether the product is tracked and at or below the
// low-stock threshold.
func (p *Product) LowStock() bool {
	return p.Stock != nil && *p.Stock <= LowStockThreshold
}
