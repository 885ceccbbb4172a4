package entity

import "time"

// Branch representa una sucursal a la que pertenecen una o más bodegas.
type Branch struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
