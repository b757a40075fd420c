package ports

import (
	"context"
	"time"
)

// Display es la superficie de salida del host. Es compartida entre
// estrategias y comandos: la estrategia enciende/apaga y lee el flag de
// live updates, nunca asume propiedad exclusiva.
type Display interface {
	// StopLiveUpdate apaga cualquier otro live view pendiente sobre la
	// superficie y espera a que termine de dibujar.
	StopLiveUpdate(ctx context.Context) error

	// LiveUpdates lee el flag compartido de live updates.
	LiveUpdates() bool

	// SetLiveUpdates escribe el flag compartido de live updates.
	SetLiveUpdates(on bool)

	// PacedDisplay renderiza el texto y duerme el intervalo dado. Es el
	// único punto de suspensión del refresh loop: la cancelación del
	// contexto debe cortar el sleep.
	PacedDisplay(ctx context.Context, text string, interval time.Duration) error
}
