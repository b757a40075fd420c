package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BookSample es una muestra top-of-book tomada en una iteración del live view.
// Se persiste solo con fines de diagnóstico; el core funciona igual sin recorder.
type BookSample struct {
	SessionID string
	Pair      string
	BestBid   decimal.Decimal
	BestAsk   decimal.Decimal
	Mid       decimal.Decimal
	SampledAt time.Time
}

// SampleFromBook construye la muestra de un snapshot.
func SampleFromBook(sessionID string, book OrderBook, at time.Time) BookSample {
	return BookSample{
		SessionID: sessionID,
		Pair:      book.Pair,
		BestBid:   book.BestBid(),
		BestAsk:   book.BestAsk(),
		Mid:       book.Mid(),
		SampledAt: at,
	}
}
