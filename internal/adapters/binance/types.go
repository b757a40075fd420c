package binance

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/alejandrodnm/bookwatch/internal/domain"
)

// depthPayload es el shape común del snapshot REST /api/v3/depth y del
// partial book depth stream (<symbol>@depth<N>@100ms). Los niveles vienen
// como pares de strings [price, qty] ya ordenados por el exchange.
type depthPayload struct {
	LastUpdateID int64      `json:"lastUpdateId"`
	Bids         [][]string `json:"bids"`
	Asks         [][]string `json:"asks"`
}

// combinedMessage envuelve los mensajes del combined stream.
type combinedMessage struct {
	Stream string       `json:"stream"`
	Data   depthPayload `json:"data"`
}

// accountResponse es la respuesta firmada de /api/v3/account.
type accountResponse struct {
	Balances []struct {
		Asset  string `json:"asset"`
		Free   string `json:"free"`
		Locked string `json:"locked"`
	} `json:"balances"`
}

// bookFromDepth mapea el payload de wire a domain.OrderBook.
func bookFromDepth(pair string, d depthPayload) (domain.OrderBook, error) {
	bids, err := levelsFromWire(d.Bids)
	if err != nil {
		return domain.OrderBook{}, fmt.Errorf("binance: bids for %s: %w", pair, err)
	}
	asks, err := levelsFromWire(d.Asks)
	if err != nil {
		return domain.OrderBook{}, fmt.Errorf("binance: asks for %s: %w", pair, err)
	}
	return domain.OrderBook{Pair: pair, Bids: bids, Asks: asks}, nil
}

// levelsFromWire convierte los pares [price, qty] en niveles del book.
func levelsFromWire(raw [][]string) ([]domain.BookLevel, error) {
	levels := make([]domain.BookLevel, 0, len(raw))
	for _, entry := range raw {
		if len(entry) < 2 {
			return nil, fmt.Errorf("malformed level %v", entry)
		}
		price, err := decimal.NewFromString(entry[0])
		if err != nil {
			return nil, fmt.Errorf("parse price %q: %w", entry[0], err)
		}
		amount, err := decimal.NewFromString(entry[1])
		if err != nil {
			return nil, fmt.Errorf("parse amount %q: %w", entry[1], err)
		}
		levels = append(levels, domain.BookLevel{Price: price, Amount: amount})
	}
	return levels, nil
}

// symbolFor convierte el trading pair "BTC-USDT" al symbol "BTCUSDT".
func symbolFor(pair string) string {
	return strings.ToUpper(strings.ReplaceAll(pair, "-", ""))
}

// streamFor devuelve el nombre de stream del partial depth para un par.
func streamFor(pair string, depth int) string {
	return fmt.Sprintf("%s@depth%d@100ms", strings.ToLower(symbolFor(pair)), depth)
}
