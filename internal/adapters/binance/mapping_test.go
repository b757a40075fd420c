package binance

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookFromDepth(t *testing.T) {
	payload := depthPayload{
		LastUpdateID: 42,
		Bids:         [][]string{{"100.10", "1.5"}, {"99.90", "2"}},
		Asks:         [][]string{{"100.20", "0.7"}},
	}

	book, err := bookFromDepth("BTC-USDT", payload)
	require.NoError(t, err)

	assert.Equal(t, "BTC-USDT", book.Pair)
	require.Len(t, book.Bids, 2)
	require.Len(t, book.Asks, 1)
	assert.True(t, book.Bids[0].Price.Equal(decimal.NewFromFloat(100.10)))
	assert.True(t, book.Bids[0].Amount.Equal(decimal.NewFromFloat(1.5)))
	assert.True(t, book.BestAsk().Equal(decimal.NewFromFloat(100.20)))
}

func TestBookFromDepth_MalformedLevel(t *testing.T) {
	_, err := bookFromDepth("BTC-USDT", depthPayload{Bids: [][]string{{"100.10"}}})
	assert.Error(t, err)

	_, err = bookFromDepth("BTC-USDT", depthPayload{Asks: [][]string{{"not-a-price", "1"}}})
	assert.Error(t, err)
}

func TestDecodeDepth_CombinedStream(t *testing.T) {
	raw := []byte(`{"stream":"btcusdt@depth20@100ms","data":{"lastUpdateId":7,"bids":[["100","1"]],"asks":[["101","2"]]}}`)

	msg, err := decodeDepth(raw)
	require.NoError(t, err)
	assert.Equal(t, "btcusdt@depth20@100ms", msg.Stream)
	assert.Equal(t, int64(7), msg.Data.LastUpdateID)
	assert.Equal(t, [][]string{{"100", "1"}}, msg.Data.Bids)
}

func TestSymbolAndStreamNames(t *testing.T) {
	assert.Equal(t, "BTCUSDT", symbolFor("BTC-USDT"))
	assert.Equal(t, "ETHBTC", symbolFor("eth-btc"))
	assert.Equal(t, "btcusdt@depth20@100ms", streamFor("BTC-USDT", 20))
}

func TestSign(t *testing.T) {
	// Vector del ejemplo de la documentación de la API spot.
	sig := sign("NhqPtmdSJYdKjVHjA7PZj4Mge3R5YNiP1e3UZjInClVN65XAbvqqM6A7H5fATj0j",
		"symbol=LTCBTC&side=BUY&type=LIMIT&timeInForce=GTC&quantity=1&price=0.1&recvWindow=5000&timestamp=1499827319559")
	assert.Equal(t, "c8db56825ae71d6d79447849e617115f4a920fa2acdcab2b053c4b2838bd6b71", sig)
}
