package binance

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

// dial abre el combined stream con un partial depth stream por par.
func (c *Connector) dial(ctx context.Context) (*websocket.Conn, error) {
	streams := make([]string, 0, len(c.cfg.Pairs))
	for _, pair := range c.cfg.Pairs {
		streams = append(streams, streamFor(pair, c.cfg.Depth))
	}
	url := fmt.Sprintf("%s/stream?streams=%s", c.cfg.WSBase, strings.Join(streams, "/"))

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("binance: dial %s: %w", url, err)
	}
	return conn, nil
}

// readLoop consume mensajes del stream y actualiza los libros.
// Cada mensaje del partial depth stream es un snapshot completo de los
// primeros N niveles, no un diff: se reemplaza el libro entero.
func (c *Connector) readLoop(ctx context.Context) error {
	byStream := make(map[string]string, len(c.cfg.Pairs))
	for _, pair := range c.cfg.Pairs {
		byStream[streamFor(pair, c.cfg.Depth)] = pair
	}

	c.conn.SetReadDeadline(time.Now().Add(readTimeout))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(readTimeout))
	})

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		var msg combinedMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("binance: read stream: %w", err)
		}
		c.conn.SetReadDeadline(time.Now().Add(readTimeout))

		pair, ok := byStream[msg.Stream]
		if !ok {
			c.log.Debug("unexpected stream message", "stream", msg.Stream)
			continue
		}

		book, err := bookFromDepth(pair, msg.Data)
		if err != nil {
			// Un mensaje corrupto no tumba el stream; se conserva el
			// último libro bueno.
			c.log.Warn("dropping malformed depth message", "pair", pair, "err", err)
			continue
		}
		c.setBook(pair, book)
	}
}

// pingLoop mantiene viva la conexión. Binance cierra conexiones mudas.
func (c *Connector) pingLoop(ctx context.Context) error {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			// Cerrar la conexión desbloquea readLoop.
			c.conn.Close()
			return ctx.Err()
		case <-ticker.C:
			c.writeMu.Lock()
			err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(10*time.Second))
			c.writeMu.Unlock()
			if err != nil {
				return fmt.Errorf("binance: ping: %w", err)
			}
		}
	}
}

// decodeDepth parsea un payload de depth en crudo. Existe separado de
// readLoop para poder testearlo sin conexión.
func decodeDepth(raw []byte) (combinedMessage, error) {
	var msg combinedMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		return combinedMessage{}, fmt.Errorf("binance: decode depth message: %w", err)
	}
	return msg, nil
}
