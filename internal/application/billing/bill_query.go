package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/kirana-pos/internal/application/dto"
	"github.com/jhoicas/kirana-pos/internal/domain"
	"github.com/jhoicas/kirana-pos/internal/domain/entity"
	"github.com/jhoicas/kirana-pos/internal/domain/repository"
)

// exportLimit máximo de cuentas incluidas en la exportación.
const exportLimit = 5000

// BillQueryUseCase consultas de solo lectura sobre el historial de cuentas.
type BillQueryUseCase struct {
	billRepo repository.BillRepository
	userRepo repository.UserRepository
	exporter BillExporter
}

// NewBillQueryUseCase construye el caso de uso.
func NewBillQueryUseCase(billRepo repository.BillRepository, userRepo repository.UserRepository, exporter BillExporter) *BillQueryUseCase {
	return &BillQueryUseCase{billRepo: billRepo, userRepo: userRepo, exporter: exporter}
}

// List historial paginado, más recientes primero.
func (uc *BillQueryUseCase) List(ctx context.Context, ownerID string, page dto.PageRequest) (*dto.BillListResponse, error) {
	page.DefaultPage()
	if page.Limit > 100 {
		page.Limit = 100
	}
	bills, err := uc.billRepo.ListByOwner(ctx, ownerID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := &dto.BillListResponse{
		Items: make([]dto.BillSummary, 0, len(bills)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, b := range bills {
		out.Items = append(out.Items, ToBillSummary(b))
	}
	return out, nil
}

// Get cuenta con sus líneas.
func (uc *BillQueryUseCase) Get(ctx context.Context, ownerID, billID string) (*dto.BillReceipt, error) {
	bill, err := uc.billRepo.GetByID(ctx, ownerID, billID)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.billRepo.GetItems(ctx, bill.ID)
	if err != nil {
		return nil, err
	}
	return ToBillReceipt(bill, items), nil
}

// Export genera el libro .xlsx con el historial y los artículos más vendidos.
func (uc *BillQueryUseCase) Export(ctx context.Context, ownerID string) (content []byte, filename string, err error) {
	shop, err := uc.userRepo.GetByID(ctx, ownerID)
	if err != nil {
		return nil, "", fmt.Errorf("exportar: obtener tienda: %w", err)
	}
	if shop == nil {
		return nil, "", domain.ErrUserNotFound
	}
	bills, err := uc.billRepo.ListByOwner(ctx, ownerID, exportLimit, 0)
	if err != nil {
		return nil, "", fmt.Errorf("exportar: listar cuentas: %w", err)
	}
	top, err := uc.billRepo.TopSellers(ctx, ownerID, 10)
	if err != nil {
		return nil, "", fmt.Errorf("exportar: más vendidos: %w", err)
	}
	content, err = uc.exporter.ExportBills(ctx, ExportData{ShopName: shop.ShopName, Bills: bills, TopSellers: top})
	if err != nil {
		return nil, "", fmt.Errorf("exportar: %w", err)
	}
	filename = fmt.Sprintf("cuentas_%s.xlsx", time.Now().Format("20060102"))
	return content, filename, nil
}

// ToBillSummary fila del historial a partir de la cabecera.
func ToBillSummary(b *entity.Bill) dto.BillSummary {
	return dto.BillSummary{
		BillID:      b.ID,
		BillNumber:  b.BillNumber,
		TotalAmount: b.TotalAmount,
		TotalCost:   b.TotalCost,
		Profit:      b.Profit(),
		CreatedAt:   b.CreatedAt,
	}
}
