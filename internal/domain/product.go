package domain

import "time"

// Product is an item a supplier offers.
type Product struct {
	ID          string
	SupplierID  string
	Name        string
	Description *string
	PriceCents  int64
	Params      map[string]any
	CreatedBy   *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProductPatch carries the fields of a partial product update; nil means unchanged.
type ProductPatch struct {
	Name        *string
	Description *string
	PriceCents  *int64
	Params      map[string]any
}

// Empty reports whether the patch changes nothing.
func (p ProductPatch) Empty() bool {
	return p.Name == nil && p.Description == nil && p.PriceCents == nil && p.Params == nil
}
