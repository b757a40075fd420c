package console

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync/atomic"
	"time"
)

// Secuencia ANSI: cursor a home + clear. Redibujamos el frame completo
// en cada iteración del live view.
const clearScreen = "\033[H\033[2J"

// Display implementa ports.Display sobre un terminal.
type Display struct {
	out   io.Writer
	clear bool
	live  atomic.Bool
}

// NewDisplay crea la superficie de display sobre stdout.
func NewDisplay() *Display {
	return &Display{out: os.Stdout, clear: true}
}

// NewDisplayWriter crea una superficie para tests, sin clear de pantalla.
func NewDisplayWriter(w io.Writer) *Display {
	return &Display{out: w}
}

// StopLiveUpdate apaga cualquier live view pendiente sobre la superficie.
func (d *Display) StopLiveUpdate(_ context.Context) error {
	d.live.Store(false)
	return nil
}

// LiveUpdates lee el flag compartido de live updates.
func (d *Display) LiveUpdates() bool {
	return d.live.Load()
}

// SetLiveUpdates escribe el flag compartido de live updates.
func (d *Display) SetLiveUpdates(on bool) {
	d.live.Store(on)
}

// PacedDisplay renderiza el texto y duerme el intervalo. La cancelación
// del contexto corta el sleep y se propaga al caller.
func (d *Display) PacedDisplay(ctx context.Context, text string, interval time.Duration) error {
	if d.clear {
		fmt.Fprint(d.out, clearScreen)
	}
	if _, err := fmt.Fprintln(d.out, text); err != nil {
		return fmt.Errorf("console: write frame: %w", err)
	}

	timer := time.NewTimer(interval)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
