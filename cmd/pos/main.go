// pos es una caja de terminal: cada línea de entrada estándar se trata como una transcripción
// (teclado o el texto de un reconocedor de voz conectado por pipe) y se agrega al carrito.
//
// Uso: go run ./cmd/pos -shop tendero@ejemplo.com
// El almacenamiento sale de la configuración (STORE_DRIVER=sqlite para operar sin red).
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/jhoicas/kirana-pos/internal/application/billing"
	"github.com/jhoicas/kirana-pos/internal/application/ordering"
	"github.com/jhoicas/kirana-pos/internal/application/voice"
	infraai "github.com/jhoicas/kirana-pos/internal/infrastructure/ai"
	"github.com/jhoicas/kirana-pos/internal/infrastructure/store"
	"github.com/jhoicas/kirana-pos/pkg/config"
	"github.com/jhoicas/kirana-pos/pkg/logger"
)

func main() {
	shopEmail := flag.String("shop", "", "email de la tienda registrada")
	minLength := flag.Int("min-length", 2, "largo mínimo de una transcripción (0 desactiva el filtro)")
	flag.Parse()
	if *shopEmail == "" {
		fmt.Fprintln(os.Stderr, "uso: pos -shop <email>")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	// stdout es la pantalla de la caja; los logs van a stderr.
	log := logger.NewWithWriter(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Store.Driver).Msg("abrir almacenamiento")
	}
	defer st.Close()

	shop, err := st.Users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(*shopEmail)))
	if err != nil {
		log.Fatal().Err(err).Msg("buscar tienda")
	}
	if shop == nil {
		log.Fatal().Str("email", *shopEmail).Msg("tienda no registrada")
	}

	committer := billing.NewCommitBillUseCase(st.TxRunner, nil, log)
	uc := ordering.NewOrderEntryUseCase(
		st.Inventory, nil, committer,
		infraai.NewFromConfig(cfg.AI),
		nil, log,
		ordering.Config{IdleTimeout: cfg.Cart.IdleTimeout()},
	)

	term, err := newTerminal(ctx, uc, shop.ID, os.Stdout, stop)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir carrito")
	}
	fmt.Fprintf(os.Stdout, "%s: caja lista (':' para ver comandos)\n", shop.ShopName)

	source := voice.NewLineTranscriber(os.Stdin)
	defer source.Close()
	listener := voice.NewListener(
		source,
		term.handle,
		voice.WithMinLength(*minLength),
		voice.WithLogger(log),
	)
	done := listener.Start(ctx)
	select {
	case <-done:
	case <-ctx.Done():
		listener.Stop()
	}
	log.Info().Msg("caja cerrada")
}
