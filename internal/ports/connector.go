package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/alejandrodnm/bookwatch/internal/domain"
)

// Connector representa una integración de exchange/mercado.
// La estrategia solo lee: readiness, orderbooks y balances.
type Connector interface {
	// Name devuelve el identificador del connector (p.ej. "binance").
	Name() string

	// Ready devuelve true cuando el connector está operativo y sus
	// orderbooks tienen datos.
	Ready() bool

	// OrderBook devuelve el snapshot actual del libro para el par dado.
	// ok es false si el par no existe en este connector.
	OrderBook(pair string) (book domain.OrderBook, ok bool)

	// Balance devuelve el balance disponible del asset dado.
	Balance(ctx context.Context, asset string) (decimal.Decimal, error)
}
