// seed_catalog carga el catálogo inicial de una tienda desde un CSV
// (nombre,unidad,cantidad,costo,precio).
//
// Uso: go run ./cmd/seed_catalog -shop tendero@ejemplo.com [-latin1] catalogo.csv
// Los artículos cuyo nombre ya existe se omiten.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/jhoicas/kirana-pos/internal/application/dto"
	"github.com/jhoicas/kirana-pos/internal/application/inventory"
	"github.com/jhoicas/kirana-pos/internal/domain"
	"github.com/jhoicas/kirana-pos/internal/infrastructure/store"
	"github.com/jhoicas/kirana-pos/pkg/config"
)

func main() {
	shopEmail := flag.String("shop", "", "email de la tienda registrada")
	latin1 := flag.Bool("latin1", false, "el archivo está en ISO-8859-1")
	flag.Parse()
	if *shopEmail == "" || flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "uso: seed_catalog -shop <email> [-latin1] <catalogo.csv>")
		os.Exit(2)
	}

	f, err := os.Open(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	items, badRows, err := readRows(f, *latin1)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	for _, r := range badRows {
		fmt.Fprintf(os.Stderr, "omitida %v\n", r)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	ctx := context.Background()
	st, err := store.Open(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "abrir almacenamiento: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	shop, err := st.Users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(*shopEmail)))
	if err != nil || shop == nil {
		fmt.Fprintf(os.Stderr, "tienda %s no encontrada (%v)\n", *shopEmail, err)
		os.Exit(1)
	}

	created, skipped := seed(ctx, inventory.NewCatalogUseCase(st.Inventory, st.TxRunner), shop.ID, items)
	fmt.Printf("Catálogo de %s: %d creados, %d existentes, %d filas inválidas\n",
		shop.ShopName, created, skipped, len(badRows))
}

// seed crea cada artículo; los duplicados se cuentan y los demás errores se informan.
func seed(ctx context.Context, uc *inventory.CatalogUseCase, ownerID string, items []dto.CreateInventoryItemRequest) (created, skipped int) {
	for _, in := range items {
		_, err := uc.Create(ctx, ownerID, in)
		switch {
		case err == nil:
			created++
		case errors.Is(err, domain.ErrDuplicate):
			skipped++
		default:
			fmt.Fprintf(os.Stderr, "%s: %v\n", in.Name, err)
		}
	}
	return created, skipped
}
