package clock

import (
	"context"
	"log/slog"
	"time"
)

// Strategy es lo único que el reloj necesita de una estrategia.
type Strategy interface {
	Tick(ctx context.Context, ts time.Time)
}

// Clock invoca Tick en serie a intervalo fijo. Cada Tick termina antes
// de que se lea el siguiente: nunca hay dos ticks solapados.
type Clock struct {
	interval time.Duration
	strategy Strategy
	log      *slog.Logger
}

// New crea el reloj. log nil usa slog.Default.
func New(interval time.Duration, s Strategy, log *slog.Logger) *Clock {
	if log == nil {
		log = slog.Default()
	}
	return &Clock{interval: interval, strategy: s, log: log}
}

// Run ejecuta el loop de ticks hasta que el contexto se cancele.
// El primer tick se dispara inmediatamente, sin esperar el intervalo.
func (c *Clock) Run(ctx context.Context) error {
	c.strategy.Tick(ctx, time.Now())

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.log.Info("clock stopped")
			return nil
		case now := <-ticker.C:
			c.strategy.Tick(ctx, now)
		}
	}
}
