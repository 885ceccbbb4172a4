package entity

import "time"

// Material representa un material de inventario trasladable entre bodegas.
type Material struct {
	ID        string
	Name      string
	Category  string
	Unit      string // unidad de medida: kg, m, unidad, etc.
	CreatedAt time.Time
	UpdatedAt time.Time
}
