package domain

import "time"

// Supplier is a legal entity offering equipment.
type Supplier struct {
	ID              string
	LegalName       string
	Phone           *string
	TelegramID      *string
	EquipmentName   string
	EquipmentParams map[string]any
	CreatedBy       *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// SupplierView is a row of the suppliers overview.
type SupplierView struct {
	Supplier
	ProductCount int
}

// SupplierPatch carries the fields of a partial supplier update; nil means unchanged.
type SupplierPatch struct {
	LegalName       *string
	Phone           *string
	TelegramID      *string
	EquipmentName   *string
	EquipmentParams map[string]any
}

// Empty reports whether the patch changes nothing.
func (p SupplierPatch) Empty() bool {
	return p.LegalName == nil && p.Phone == nil && p.TelegramID == nil &&
		p.EquipmentName == nil && p.EquipmentParams == nil
}
