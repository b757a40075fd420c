package domain

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidMarket indica que el par configurado no existe en el connector.
// No se reintenta: requiere reconfiguración del operador.
var ErrInvalidMarket = errors.New("invalid market for this connector")

// BookLevel es un nivel de precio en el orderbook.
type BookLevel struct {
	Price  decimal.Decimal
	Amount decimal.Decimal
}

// OrderBook representa el snapshot del libro de órdenes de un par.
// Es de solo lectura para la estrategia: se pide fresco en cada refresh.
type OrderBook struct {
	Pair string
	Bids []BookLevel // ordenados mayor a menor precio
	Asks []BookLevel // ordenados menor a mayor precio
}

// BestBid devuelve el mejor precio de compra (mayor bid).
// Devuelve cero si el lado está vacío.
func (ob OrderBook) BestBid() decimal.Decimal {
	if len(ob.Bids) == 0 {
		return decimal.Zero
	}
	return ob.Bids[0].Price
}

// BestAsk devuelve el mejor precio de venta (menor ask).
// Devuelve cero si el lado está vacío.
func (ob OrderBook) BestAsk() decimal.Decimal {
	if len(ob.Asks) == 0 {
		return decimal.Zero
	}
	return ob.Asks[0].Price
}

// Mid devuelve el punto medio entre best bid y best ask.
func (ob OrderBook) Mid() decimal.Decimal {
	bid := ob.BestBid()
	ask := ob.BestAsk()
	if bid.IsZero() || ask.IsZero() {
		return decimal.Zero
	}
	return bid.Add(ask).Div(decimal.NewFromInt(2))
}

// DisplayRow combina un nivel bid y un nivel ask para el render lado a lado.
type DisplayRow struct {
	BidPrice  decimal.Decimal
	BidVolume decimal.Decimal
	AskPrice  decimal.Decimal
	AskVolume decimal.Decimal
}

// TopRows proyecta los primeros n niveles de cada lado como filas de display.
// Si un lado tiene menos de n niveles, trunca al lado más corto: las columnas
// nunca se desalinean con blancos.
func (ob OrderBook) TopRows(n int) []DisplayRow {
	if n > len(ob.Bids) {
		n = len(ob.Bids)
	}
	if n > len(ob.Asks) {
		n = len(ob.Asks)
	}
	if n <= 0 {
		return nil
	}

	rows := make([]DisplayRow, 0, n)
	for i := 0; i < n; i++ {
		rows = append(rows, DisplayRow{
			BidPrice:  ob.Bids[i].Price,
			BidVolume: ob.Bids[i].Amount,
			AskPrice:  ob.Asks[i].Price,
			AskVolume: ob.Asks[i].Amount,
		})
	}
	return rows
}

// PairAssets descompone un trading pair "BASE-QUOTE" en sus assets.
// Un par sin separador se devuelve como un único asset.
func PairAssets(pair string) []string {
	parts := strings.Split(pair, "-")
	assets := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			assets = append(assets, p)
		}
	}
	return assets
}
