package binance

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/alejandrodnm/bookwatch/internal/domain"
)

// fetchSnapshot pide el snapshot REST del libro para sembrar el estado
// antes de que lleguen mensajes del stream.
func (c *Connector) fetchSnapshot(ctx context.Context, pair string) (domain.OrderBook, error) {
	url := fmt.Sprintf("%s/api/v3/depth?symbol=%s&limit=%d", c.cfg.RESTBase, symbolFor(pair), c.cfg.Depth)

	var payload depthPayload
	if err := c.get(ctx, url, nil, &payload); err != nil {
		return domain.OrderBook{}, err
	}
	return bookFromDepth(pair, payload)
}

// fetchAccount pide la cuenta firmada. Requiere API key y secret.
func (c *Connector) fetchAccount(ctx context.Context) (accountResponse, error) {
	query := fmt.Sprintf("timestamp=%d&recvWindow=5000", time.Now().UnixMilli())
	url := fmt.Sprintf("%s/api/v3/account?%s&signature=%s",
		c.cfg.RESTBase, query, sign(c.cfg.APISecret, query))

	headers := map[string]string{"X-MBX-APIKEY": c.cfg.APIKey}

	var account accountResponse
	if err := c.get(ctx, url, headers, &account); err != nil {
		return accountResponse{}, err
	}
	return account, nil
}

// get hace un GET con rate limiting y decodifica el JSON en out.
func (c *Connector) get(ctx context.Context, url string, headers map[string]string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("binance: GET %s: status %d: %s", url, resp.StatusCode, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("binance: decode response: %w", err)
	}
	return nil
}

// sign firma el query string con HMAC-SHA256 como exige la API spot.
func sign(secret, query string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(query))
	return hex.EncodeToString(mac.Sum(nil))
}
