package billing

import (
	"context"
	"fmt"

	"github.com/jhoicas/kirana-pos/internal/domain"
	"github.com/jhoicas/kirana-pos/internal/domain/repository"
)

// ReceiptUseCase genera el comprobante imprimible (PDF) de una cuenta confirmada.
type ReceiptUseCase struct {
	billRepo repository.BillRepository
	userRepo repository.UserRepository
	renderer ReceiptRenderer
}

// NewReceiptUseCase construye el caso de uso inyectando todas sus dependencias.
func NewReceiptUseCase(
	billRepo repository.BillRepository,
	userRepo repository.UserRepository,
	renderer ReceiptRenderer,
) *ReceiptUseCase {
	return &ReceiptUseCase{
		billRepo: billRepo,
		userRepo: userRepo,
		renderer: renderer,
	}
}

// DownloadReceipt recupera la cuenta, sus líneas y los datos de la tienda, y genera el PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si la cuenta no existe o es de otro dueño.
func (uc *ReceiptUseCase) DownloadReceipt(
	ctx context.Context,
	ownerID, billID string,
) (pdfBytes []byte, filename string, err error) {
	// ── 1. Cargar cuenta ──────────────────────────────────────────────────────
	bill, err := uc.billRepo.GetByID(ctx, ownerID, billID)
	if err != nil {
		return nil, "", fmt.Errorf("comprobante: obtener cuenta: %w", err)
	}
	if bill == nil {
		return nil, "", domain.ErrNotFound
	}

	// ── 2. Cargar tienda (cabecera) ───────────────────────────────────────────
	shop, err := uc.userRepo.GetByID(ctx, ownerID)
	if err != nil {
		return nil, "", fmt.Errorf("comprobante: obtener tienda: %w", err)
	}
	if shop == nil {
		return nil, "", domain.ErrUserNotFound
	}

	// ── 3. Cargar líneas ──────────────────────────────────────────────────────
	items, err := uc.billRepo.GetItems(ctx, bill.ID)
	if err != nil {
		return nil, "", fmt.Errorf("comprobante: obtener líneas: %w", err)
	}

	// ── 4. Generar PDF ────────────────────────────────────────────────────────
	pdfBytes, err = uc.renderer.RenderReceipt(ctx, ReceiptData{Shop: shop, Bill: bill, Items: items})
	if err != nil {
		return nil, "", fmt.Errorf("comprobante: generación fallida: %w", err)
	}

	filename = fmt.Sprintf("cuenta_%06d.pdf", bill.BillNumber)
	return pdfBytes, filename, nil
}
