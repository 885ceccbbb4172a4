package usecase

import (
	"github.com/jhoicas/Traslados-api/internal/application/dto"
	"github.com/jhoicas/Traslados-api/internal/domain/entity"
	"github.com/jhoicas/Traslados-api/internal/domain/repository"
)

// StockUseCase consultas de existencias. Solo lectura: las mutaciones de stock
// pasan exclusivamente por el workflow de traslados.
type StockUseCase struct {
	repo repository.StockBalanceRepository
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(repo repository.StockBalanceRepository) *StockUseCase {
	return &StockUseCase{repo: repo}
}

// Get obtiene la existencia de un material en una bodega (cero si no existe la fila).
func (uc *StockUseCase) Get(warehouseID, materialID string) (*dto.StockBalanceResponse, error) {
	balance, err := uc.repo.Get(warehouseID, materialID)
	if err != nil {
		return nil, err
	}
	return toStockResponse(balance), nil
}

// List lista existencias filtrando por bodega y/o material ("" = sin filtro).
func (uc *StockUseCase) List(warehouseID, materialID string, limit, offset int) (*dto.StockListResponse, error) {
	list, err := uc.repo.List(warehouseID, materialID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockBalanceResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toStockResponse(s))
	}
	return &dto.StockListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func toStockResponse(s *entity.StockBalance) *dto.StockBalanceResponse {
	if s == nil {
		return nil
	}
	return &dto.StockBalanceResponse{
		WarehouseID: s.WarehouseID,
		MaterialID:  s.MaterialID,
		OnHandQty:   s.OnHandQty,
		UpdatedAt:   s.UpdatedAt,
	}
}
