package repository

import "github.com/jhoicas/Traslados-api/internal/domain/entity"

// TransferRepository define el puerto de persistencia para traslados (DIP).
type TransferRepository interface {
	Create(t *entity.Transfer) error
	GetByID(id string) (*entity.Transfer, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE): evita que dos
	// operaciones concurrentes avancen el mismo traslado.
	GetForUpdate(id string) (*entity.Transfer, error)
	Update(t *entity.Transfer) error
	List(limit, offset int) ([]*entity.Transfer, error)
}
