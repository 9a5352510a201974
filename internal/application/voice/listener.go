// Package voice conecta una fuente de transcripción (micrófono, stdin, archivo) con la toma de
// pedidos. Un Listener mantiene como máximo una sesión activa; los resultados de sesiones
// canceladas o reemplazadas se descartan.
package voice

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"unicode/utf8"

	"github.com/jhoicas/kirana-pos/pkg/logger"
)

// DefaultMinLength transcripciones más cortas se tratan como ruido.
const DefaultMinLength = 4

// Transcriber fuente de transcripciones. Transcribe bloquea hasta tener un texto, hasta que ctx
// se cancele o hasta que la fuente se agote (io.EOF).
type Transcriber interface {
	Transcribe(ctx context.Context) (string, error)
}

// DeliverFunc recibe cada transcripción aceptada. No debe llamar a Start ni a Stop.
type DeliverFunc func(ctx context.Context, transcript string)

// Option configura el Listener.
type Option func(*Listener)

// WithMinLength fija la longitud mínima (en runas) de una transcripción aceptada; 0 desactiva el filtro.
func WithMinLength(n int) Option {
	return func(l *Listener) { l.minLength = n }
}

// WithLogger usa log en lugar del logger nulo.
func WithLogger(log *logger.Logger) Option {
	return func(l *Listener) {
		if log != nil {
			l.log = log.Component("voice")
		}
	}
}

// Listener coordina sesiones de escucha.
type Listener struct {
	source    Transcriber
	deliver   DeliverFunc
	minLength int
	log       *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	gen    atomic.Uint64

	// deliverMu se sostiene durante cada entrega; cancelActive lo toma para esperar la que esté en curso.
	deliverMu sync.Mutex
}

// NewListener construye el listener.
func NewListener(source Transcriber, deliver DeliverFunc, opts ...Option) *Listener {
	l := &Listener{
		source:    source,
		deliver:   deliver,
		minLength: DefaultMinLength,
		log:       logger.Nop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Start cancela la sesión activa (si hay) y abre otra. Como Stop, espera la entrega en curso
// de la sesión reemplazada: al volver, ningún resultado viejo se aplica.
// El canal devuelto se cierra cuando la sesión termina: fuente agotada, error, Stop, otro
// Start o cancelación de ctx.
func (l *Listener) Start(ctx context.Context) <-chan struct{} {
	l.mu.Lock()
	l.cancelActive()
	sessionCtx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	gen := l.gen.Load()
	l.mu.Unlock()

	done := make(chan struct{})
	go func() {
		defer close(done)
		defer cancel()
		l.run(sessionCtx, gen)
	}()
	return done
}

// Stop termina la sesión activa. Al volver, ninguna transcripción de esa sesión se entregará
// y cualquier entrega en curso ya terminó.
func (l *Listener) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cancelActive()
}

// cancelActive invalida la sesión vigente y espera la entrega en curso. Requiere l.mu.
func (l *Listener) cancelActive() {
	l.gen.Add(1)
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	// espera la entrega en curso
	l.deliverMu.Lock()
	l.deliverMu.Unlock()
}

func (l *Listener) run(ctx context.Context, gen uint64) {
	for {
		text, err := l.source.Transcribe(ctx)
		if err != nil {
			switch {
			case errors.Is(err, io.EOF):
				l.log.Debug().Uint64("session", gen).Msg("fuente de transcripción agotada")
			case ctx.Err() != nil:
				l.log.Debug().Uint64("session", gen).Msg("sesión de escucha cancelada")
			default:
				l.log.Warn().Err(err).Uint64("session", gen).Msg("error de transcripción")
			}
			return
		}
		text = strings.TrimSpace(text)
		if utf8.RuneCountInString(text) < l.minLength {
			l.log.Debug().Str("transcript", text).Msg("transcripción descartada por ruido")
			continue
		}
		if !l.emit(ctx, gen, text) {
			return
		}
	}
}

// emit entrega text si la sesión gen sigue vigente; false indica que fue reemplazada.
func (l *Listener) emit(ctx context.Context, gen uint64, text string) bool {
	l.deliverMu.Lock()
	defer l.deliverMu.Unlock()
	if l.gen.Load() != gen || ctx.Err() != nil {
		l.log.Debug().Uint64("session", gen).Str("transcript", text).Msg("transcripción obsoleta descartada")
		return false
	}
	l.deliver(ctx, text)
	return true
}
