package entity

import "time"

// Warehouse representa una bodega física donde se almacenan materiales (multi-bodega).
type Warehouse struct {
	ID        string
	BranchID  string
	Name      string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
