package voice_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/kirana-pos/internal/application/voice"
)

// scripted responde cada llamada con la función correspondiente; sin guion bloquea hasta ctx.
type scripted struct {
	mu    sync.Mutex
	calls int
	steps []func(ctx context.Context) (string, error)
}

func (s *scripted) Transcribe(ctx context.Context) (string, error) {
	s.mu.Lock()
	i := s.calls
	s.calls++
	s.mu.Unlock()
	if i < len(s.steps) {
		return s.steps[i](ctx)
	}
	<-ctx.Done()
	return "", ctx.Err()
}

func text(t string) func(context.Context) (string, error) {
	return func(context.Context) (string, error) { return t, nil }
}

// late ignora la cancelación: devuelve t cuando release se cierra.
func late(entered chan<- struct{}, release <-chan struct{}, t string) func(context.Context) (string, error) {
	return func(context.Context) (string, error) {
		close(entered)
		<-release
		return t, nil
	}
}

type collector struct {
	mu  sync.Mutex
	got []string
}

func (c *collector) deliver(_ context.Context, t string) {
	c.mu.Lock()
	c.got = append(c.got, t)
	c.mu.Unlock()
}

func (c *collector) all() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.got...)
}

func waitDone(t *testing.T, done <-chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("la sesión no terminó")
	}
}

func TestListener_EntregaYFiltraRuido(t *testing.T) {
	src := &scripted{steps: []func(context.Context) (string, error){
		text("2kg rice"),
		text("eh"),
		text("  okati doodh  "),
		func(context.Context) (string, error) { return "", io.EOF },
	}}
	c := &collector{}
	l := voice.NewListener(src, c.deliver)

	waitDone(t, l.Start(context.Background()))
	assert.Equal(t, []string{"2kg rice", "okati doodh"}, c.all())
}

func TestListener_SinFiltroAceptaCortas(t *testing.T) {
	src := &scripted{steps: []func(context.Context) (string, error){
		text("dal"),
		func(context.Context) (string, error) { return "", io.EOF },
	}}
	c := &collector{}
	l := voice.NewListener(src, c.deliver, voice.WithMinLength(0))

	waitDone(t, l.Start(context.Background()))
	assert.Equal(t, []string{"dal"}, c.all())
}

func TestListener_StopDescartaResultadoTardio(t *testing.T) {
	entered, release := make(chan struct{}), make(chan struct{})
	src := &scripted{steps: []func(context.Context) (string, error){late(entered, release, "3 sugar")}}
	c := &collector{}
	l := voice.NewListener(src, c.deliver)

	done := l.Start(context.Background())
	<-entered
	l.Stop()
	close(release)
	waitDone(t, done)

	assert.Empty(t, c.all())
}

func TestListener_StartReemplazaSesionAnterior(t *testing.T) {
	entered, release := make(chan struct{}), make(chan struct{})
	src := &scripted{steps: []func(context.Context) (string, error){
		late(entered, release, "sesion vieja"),
		text("sesion nueva"),
	}}
	c := &collector{}
	l := voice.NewListener(src, c.deliver)

	first := l.Start(context.Background())
	<-entered
	second := l.Start(context.Background())
	close(release)
	waitDone(t, first)

	require.Eventually(t, func() bool { return len(c.all()) == 1 }, time.Second, 5*time.Millisecond)
	l.Stop()
	waitDone(t, second)
	assert.Equal(t, []string{"sesion nueva"}, c.all())
}

func TestListener_StopEsperaEntregaEnCurso(t *testing.T) {
	src := &scripted{steps: []func(context.Context) (string, error){text("2kg rice")}}
	inDeliver, finish := make(chan struct{}), make(chan struct{})
	var finished bool
	l := voice.NewListener(src, func(context.Context, string) {
		close(inDeliver)
		<-finish
		finished = true
	})

	done := l.Start(context.Background())
	<-inDeliver
	go func() {
		time.Sleep(20 * time.Millisecond)
		close(finish)
	}()
	l.Stop()
	assert.True(t, finished)
	waitDone(t, done)
}

// Un Start con una entrega de la sesión anterior en curso vuelve recién cuando esa entrega
// terminó; después de Start no se aplica nada de la sesión vieja.
func TestListener_StartEsperaEntregaDeSesionAnterior(t *testing.T) {
	src := &scripted{steps: []func(context.Context) (string, error){text("texto viejo")}}
	inDeliver, finish := make(chan struct{}), make(chan struct{})

	var (
		mu     sync.Mutex
		events []string
	)
	record := func(e string) {
		mu.Lock()
		events = append(events, e)
		mu.Unlock()
	}
	l := voice.NewListener(src, func(_ context.Context, t string) {
		close(inDeliver)
		<-finish
		record("entrega:" + t)
	})

	first := l.Start(context.Background())
	<-inDeliver

	started := make(chan (<-chan struct{}))
	go func() {
		second := l.Start(context.Background())
		record("start")
		started <- second
	}()

	select {
	case <-started:
		t.Fatal("Start volvió con una entrega de la sesión anterior en curso")
	case <-time.After(30 * time.Millisecond):
	}
	close(finish)

	var second <-chan struct{}
	select {
	case second = <-started:
	case <-time.After(2 * time.Second):
		t.Fatal("Start no volvió")
	}
	waitDone(t, first)
	l.Stop()
	waitDone(t, second)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"entrega:texto viejo", "start"}, events)
}

func TestListener_ErrorTerminaSesion(t *testing.T) {
	src := &scripted{steps: []func(context.Context) (string, error){
		func(context.Context) (string, error) { return "", errors.New("micrófono desconectado") },
		text("no se lee"),
	}}
	c := &collector{}
	l := voice.NewListener(src, c.deliver)

	waitDone(t, l.Start(context.Background()))
	assert.Empty(t, c.all())
}

// ──────────────────────────────────────────────────────────────────────────────
// LineTranscriber
// ──────────────────────────────────────────────────────────────────────────────

func TestLineTranscriber_LineasYEOF(t *testing.T) {
	tr := voice.NewLineTranscriber(strings.NewReader("2kg rice\nrendu doodh\n"))
	ctx := context.Background()

	got, err := tr.Transcribe(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2kg rice", got)
	got, err = tr.Transcribe(ctx)
	require.NoError(t, err)
	assert.Equal(t, "rendu doodh", got)
	_, err = tr.Transcribe(ctx)
	assert.ErrorIs(t, err, io.EOF)
}

func TestLineTranscriber_CancelacionNoPierdeLinea(t *testing.T) {
	pr, pw := io.Pipe()
	tr := voice.NewLineTranscriber(pr)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := tr.Transcribe(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	go func() {
		_, _ = pw.Write([]byte("1 salt\n"))
		_ = pw.Close()
	}()
	got, err := tr.Transcribe(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "1 salt", got)
}

func TestLineTranscriber_CloseLiberaLector(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	tr := voice.NewLineTranscriber(pr)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := tr.Transcribe(ctx)
	require.ErrorIs(t, err, context.Canceled)

	// la goroutine lectora queda con una línea que nadie pide
	_, err = pw.Write([]byte("2kg rice\n"))
	require.NoError(t, err)

	require.NoError(t, tr.Close())
	require.NoError(t, tr.Close(), "Close es idempotente")

	waitCtx, waitCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer waitCancel()
	_, err = tr.Transcribe(waitCtx)
	assert.ErrorIs(t, err, io.EOF, "la goroutine lectora terminó")
}
