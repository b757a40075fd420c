package console_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alejandrodnm/bookwatch/internal/adapters/console"
)

func TestDisplay_PacedDisplayWritesAndSleeps(t *testing.T) {
	var buf bytes.Buffer
	d := console.NewDisplayWriter(&buf)

	start := time.Now()
	err := d.PacedDisplay(context.Background(), "frame-1", 30*time.Millisecond)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "frame-1")
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}

func TestDisplay_PacedDisplayHonorsCancellation(t *testing.T) {
	var buf bytes.Buffer
	d := console.NewDisplayWriter(&buf)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	err := d.PacedDisplay(ctx, "frame-2", 5*time.Second)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Contains(t, buf.String(), "frame-2", "the frame renders before the sleep")
}

func TestDisplay_LiveUpdatesFlag(t *testing.T) {
	d := console.NewDisplayWriter(&bytes.Buffer{})

	assert.False(t, d.LiveUpdates())
	d.SetLiveUpdates(true)
	assert.True(t, d.LiveUpdates())

	require.NoError(t, d.StopLiveUpdate(context.Background()))
	assert.False(t, d.LiveUpdates(), "StopLiveUpdate clears the shared flag")
}

func TestNotifier_WritesTimestampedMessage(t *testing.T) {
	var buf bytes.Buffer
	n := console.NewNotifierWriter(&buf)

	require.NoError(t, n.Notify(context.Background(), "BINANCE Connector is ready!"))
	assert.Contains(t, buf.String(), "BINANCE Connector is ready!")
	assert.Regexp(t, `^\[\d{2}:\d{2}:\d{2}\] `, buf.String())
}
