package voice

import (
	"bufio"
	"context"
	"io"
	"sync"
)

// LineTranscriber trata cada línea de un io.Reader como una transcripción (stdin, archivo,
// salida de un motor de reconocimiento externo).
type LineTranscriber struct {
	r         io.Reader
	once      sync.Once
	lines     chan string
	done      chan struct{}
	closeOnce sync.Once
	err       error // válido después de que lines se cierra
}

// NewLineTranscriber construye la fuente; la lectura empieza con la primera llamada a Transcribe.
func NewLineTranscriber(r io.Reader) *LineTranscriber {
	return &LineTranscriber{r: r, lines: make(chan string), done: make(chan struct{})}
}

func (t *LineTranscriber) start() {
	go func() {
		defer close(t.lines)
		sc := bufio.NewScanner(t.r)
		for sc.Scan() {
			select {
			case t.lines <- sc.Text():
			case <-t.done:
				return
			}
			if t.closed() {
				return
			}
		}
		t.err = sc.Err()
	}()
}

// Close libera la goroutine lectora aunque nadie vuelva a llamar a Transcribe. El reader no se
// cierra: si la goroutine está bloqueada en un Read, termina con la próxima línea o con EOF.
func (t *LineTranscriber) Close() error {
	t.closeOnce.Do(func() { close(t.done) })
	return nil
}

func (t *LineTranscriber) closed() bool {
	select {
	case <-t.done:
		return true
	default:
		return false
	}
}

// Transcribe devuelve la siguiente línea; io.EOF cuando el reader se agota o tras Close.
// Una línea leída mientras nadie espera queda retenida para la siguiente llamada.
func (t *LineTranscriber) Transcribe(ctx context.Context) (string, error) {
	t.once.Do(t.start)
	if t.closed() {
		return "", t.drain(ctx)
	}
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-t.lines:
		if !ok {
			if t.err != nil {
				return "", t.err
			}
			return "", io.EOF
		}
		return line, nil
	}
}

// drain descarta lo pendiente hasta que la goroutine lectora termine.
func (t *LineTranscriber) drain(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case _, ok := <-t.lines:
			if !ok {
				return io.EOF
			}
		}
	}
}
