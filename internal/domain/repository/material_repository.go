package repository

import "github.com/jhoicas/Traslados-api/internal/domain/entity"

// MaterialRepository define el puerto de persistencia para Material (DIP).
type MaterialRepository interface {
	Create(material *entity.Material) error
	GetByID(id string) (*entity.Material, error)
	// List busca por nombre (q "" = sin filtro), orden por fecha de creación.
	List(q string, limit, offset int) ([]*entity.Material, error)
}
