package waybill

import (
	"context"
	"fmt"

	"github.com/jhoicas/Traslados-api/internal/domain"
	"github.com/jhoicas/Traslados-api/internal/domain/entity"
	"github.com/jhoicas/Traslados-api/internal/domain/repository"
)

// Generator genera el acta de traslado (PDF) a partir de los datos ya cargados.
type Generator interface {
	GenerateWaybillPDF(ctx context.Context,
		transfer *entity.Transfer,
		from, to *entity.Warehouse,
		material *entity.Material,
	) ([]byte, error)
}

// WaybillUseCase genera el acta de traslado imprimible para entregar al conductor.
type WaybillUseCase struct {
	transferRepo  repository.TransferRepository
	warehouseRepo repository.WarehouseRepository
	materialRepo  repository.MaterialRepository
	generator     Generator
}

// NewWaybillUseCase construye el caso de uso.
func NewWaybillUseCase(
	transferRepo repository.TransferRepository,
	warehouseRepo repository.WarehouseRepository,
	materialRepo repository.MaterialRepository,
	generator Generator,
) *WaybillUseCase {
	return &WaybillUseCase{
		transferRepo:  transferRepo,
		warehouseRepo: warehouseRepo,
		materialRepo:  materialRepo,
		generator:     generator,
	}
}

// DownloadWaybill carga el traslado y sus referencias y genera el PDF.
// Un borrador no tiene acta: todavía no hay responsables ni carga confirmada.
func (uc *WaybillUseCase) DownloadWaybill(ctx context.Context, transferID string) ([]byte, string, error) {
	t, err := uc.transferRepo.GetByID(transferID)
	if err != nil {
		return nil, "", err
	}
	if t == nil {
		return nil, "", fmt.Errorf("traslado %s: %w", transferID, domain.ErrNotFound)
	}
	if t.Status == entity.StatusDraft {
		return nil, "", fmt.Errorf("el traslado en borrador no tiene acta: %w", domain.ErrValidation)
	}

	from, err := uc.warehouseRepo.GetByID(t.FromWarehouseID)
	if err != nil {
		return nil, "", err
	}
	to, err := uc.warehouseRepo.GetByID(t.ToWarehouseID)
	if err != nil {
		return nil, "", err
	}
	material, err := uc.materialRepo.GetByID(t.MaterialID)
	if err != nil {
		return nil, "", err
	}
	if from == nil || to == nil || material == nil {
		return nil, "", fmt.Errorf("referencias del traslado %s: %w", transferID, domain.ErrNotFound)
	}

	pdfBytes, err := uc.generator.GenerateWaybillPDF(ctx, t, from, to, material)
	if err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("acta_traslado_%s.pdf", t.ID)
	return pdfBytes, filename, nil
}
