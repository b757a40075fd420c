package fixture

// Connector en memoria para el modo dry-run: sirve un libro fijo sin red.
// Simula el arranque real quedando not-ready durante un rato.

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/alejandrodnm/bookwatch/internal/domain"
)

// Connector implementa ports.Connector con datos enlatados.
type Connector struct {
	pair       string
	createdAt  time.Time
	readyAfter time.Duration
}

// New crea el connector fixture para un par. Se declara ready pasados
// readyAfter desde la construcción.
func New(pair string, readyAfter time.Duration) *Connector {
	return &Connector{pair: pair, createdAt: time.Now(), readyAfter: readyAfter}
}

// Name devuelve el identificador del connector.
func (c *Connector) Name() string { return "fixture" }

// Ready simula el warm-up del connector real.
func (c *Connector) Ready() bool {
	return time.Since(c.createdAt) >= c.readyAfter
}

// OrderBook devuelve un libro fijo con cinco niveles por lado.
func (c *Connector) OrderBook(pair string) (domain.OrderBook, bool) {
	if pair != c.pair {
		return domain.OrderBook{}, false
	}

	book := domain.OrderBook{Pair: pair}
	base := decimal.NewFromInt(100)
	step := decimal.NewFromFloat(0.5)
	for i := int64(0); i < 5; i++ {
		offset := step.Mul(decimal.NewFromInt(i + 1))
		amount := decimal.NewFromInt(i + 1)
		book.Bids = append(book.Bids, domain.BookLevel{Price: base.Sub(offset), Amount: amount})
		book.Asks = append(book.Asks, domain.BookLevel{Price: base.Add(offset), Amount: amount})
	}
	return book, true
}

// Balance devuelve un balance fijo por asset.
func (c *Connector) Balance(_ context.Context, asset string) (decimal.Decimal, error) {
	if asset == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromInt(1000), nil
}
