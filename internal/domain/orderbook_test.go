package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func level(price, amount float64) BookLevel {
	return BookLevel{
		Price:  decimal.NewFromFloat(price),
		Amount: decimal.NewFromFloat(amount),
	}
}

func makeBook() OrderBook {
	return OrderBook{
		Pair: "BTC-USDT",
		Bids: []BookLevel{level(100, 1), level(99, 2), level(98, 3)},
		Asks: []BookLevel{level(101, 1), level(102, 2), level(103, 3)},
	}
}

func TestBestBidAsk(t *testing.T) {
	ob := makeBook()
	assert.True(t, ob.BestBid().Equal(decimal.NewFromInt(100)))
	assert.True(t, ob.BestAsk().Equal(decimal.NewFromInt(101)))
}

func TestBestBidAsk_EmptySides(t *testing.T) {
	ob := OrderBook{}
	assert.True(t, ob.BestBid().IsZero())
	assert.True(t, ob.BestAsk().IsZero())
	assert.True(t, ob.Mid().IsZero())
}

func TestMid(t *testing.T) {
	ob := makeBook()
	assert.True(t, ob.Mid().Equal(decimal.NewFromFloat(100.5)))
}

func TestTopRows_Projection(t *testing.T) {
	rows := makeBook().TopRows(2)
	assert.Len(t, rows, 2)

	assert.True(t, rows[0].BidPrice.Equal(decimal.NewFromInt(100)))
	assert.True(t, rows[0].BidVolume.Equal(decimal.NewFromInt(1)))
	assert.True(t, rows[0].AskPrice.Equal(decimal.NewFromInt(101)))
	assert.True(t, rows[0].AskVolume.Equal(decimal.NewFromInt(1)))

	assert.True(t, rows[1].BidPrice.Equal(decimal.NewFromInt(99)))
	assert.True(t, rows[1].BidVolume.Equal(decimal.NewFromInt(2)))
	assert.True(t, rows[1].AskPrice.Equal(decimal.NewFromInt(102)))
	assert.True(t, rows[1].AskVolume.Equal(decimal.NewFromInt(2)))
}

func TestTopRows_TruncatesToShorterSide(t *testing.T) {
	ob := makeBook()
	ob.Asks = ob.Asks[:1]

	rows := ob.TopRows(3)
	assert.Len(t, rows, 1, "asks has one level, so only one row")
}

func TestTopRows_RequestMoreThanAvailable(t *testing.T) {
	rows := makeBook().TopRows(10)
	assert.Len(t, rows, 3)
}

func TestTopRows_Empty(t *testing.T) {
	assert.Nil(t, OrderBook{}.TopRows(5))
	assert.Nil(t, makeBook().TopRows(0))
}

func TestPairAssets(t *testing.T) {
	assert.Equal(t, []string{"BTC", "USDT"}, PairAssets("BTC-USDT"))
	assert.Equal(t, []string{"BTCUSDT"}, PairAssets("BTCUSDT"))
	assert.Empty(t, PairAssets(""))
}
