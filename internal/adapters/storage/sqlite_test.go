package storage_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alejandrodnm/bookwatch/internal/adapters/storage"
	"github.com/alejandrodnm/bookwatch/internal/domain"
)

func makeSample(session string, bid, ask float64, at time.Time) domain.BookSample {
	b := decimal.NewFromFloat(bid)
	a := decimal.NewFromFloat(ask)
	return domain.BookSample{
		SessionID: session,
		Pair:      "BTC-USDT",
		BestBid:   b,
		BestAsk:   a,
		Mid:       b.Add(a).Div(decimal.NewFromInt(2)),
		SampledAt: at,
	}
}

func TestSQLiteRecorder_SaveAndReadBack(t *testing.T) {
	rec, err := storage.NewSQLiteRecorder(":memory:")
	require.NoError(t, err)
	defer rec.Close()

	now := time.Now().UTC().Truncate(time.Second)
	ctx := context.Background()

	require.NoError(t, rec.SaveSample(ctx, makeSample("s1", 100, 101, now)))
	require.NoError(t, rec.SaveSample(ctx, makeSample("s1", 100.5, 101.5, now.Add(time.Second))))
	require.NoError(t, rec.SaveSample(ctx, makeSample("other", 50, 51, now)))

	samples, err := rec.SessionSamples(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, samples, 2)

	// Orden cronológico y decimales exactos.
	assert.True(t, samples[0].BestBid.Equal(decimal.NewFromInt(100)))
	assert.True(t, samples[0].Mid.Equal(decimal.NewFromFloat(100.5)))
	assert.True(t, samples[1].BestBid.Equal(decimal.NewFromFloat(100.5)))
	assert.Equal(t, "BTC-USDT", samples[0].Pair)
}

func TestSQLiteRecorder_UnknownSessionIsEmpty(t *testing.T) {
	rec, err := storage.NewSQLiteRecorder(":memory:")
	require.NoError(t, err)
	defer rec.Close()

	samples, err := rec.SessionSamples(context.Background(), "nope")
	require.NoError(t, err)
	assert.Empty(t, samples)
}
