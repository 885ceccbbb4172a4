package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockBalanceResponse existencia actual de un material en una bodega.
type StockBalanceResponse struct {
	WarehouseID string          `json:"warehouse_id"`
	MaterialID  string          `json:"material_id"`
	OnHandQty   decimal.Decimal `json:"on_hand_qty"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// StockListResponse listado de existencias, orden (bodega, material).
type StockListResponse struct {
	Items []StockBalanceResponse `json:"items"`
	Page  PageResponse           `json:"page"`
}
