package binance

// connector.go — ports.Connector sobre Binance spot. El libro de cada par
// se siembra con un snapshot REST y se mantiene con el partial book depth
// stream; Ready() se enciende cuando todos los pares tienen libro.

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/alejandrodnm/bookwatch/internal/domain"
)

const (
	defaultRESTBase = "https://api.binance.com"
	defaultWSBase   = "wss://stream.binance.com:9443"
	defaultDepth    = 20

	// REST spot: 6000 weight/min documentado; nos quedamos muy por debajo.
	restRatePerSec = 10

	pingInterval = 3 * time.Minute
	readTimeout  = 5 * time.Minute
)

// Config es la configuración del connector.
type Config struct {
	RESTBase  string
	WSBase    string
	Pairs     []string
	Depth     int
	APIKey    string
	APISecret string
}

// Connector implementa ports.Connector sobre Binance.
type Connector struct {
	cfg     Config
	http    *http.Client
	limiter *rate.Limiter
	log     *slog.Logger

	mu    sync.RWMutex
	books map[string]domain.OrderBook

	writeMu sync.Mutex
	conn    *websocket.Conn
}

// New crea el Connector. log nil usa slog.Default.
func New(cfg Config, log *slog.Logger) *Connector {
	if cfg.RESTBase == "" {
		cfg.RESTBase = defaultRESTBase
	}
	if cfg.WSBase == "" {
		cfg.WSBase = defaultWSBase
	}
	if cfg.Depth <= 0 {
		cfg.Depth = defaultDepth
	}
	if log == nil {
		log = slog.Default()
	}
	return &Connector{
		cfg:     cfg,
		http:    &http.Client{Timeout: 10 * time.Second},
		limiter: rate.NewLimiter(restRatePerSec, 5),
		log:     log,
		books:   make(map[string]domain.OrderBook),
	}
}

// Name devuelve el identificador del connector.
func (c *Connector) Name() string { return "binance" }

// Ready devuelve true cuando todos los pares configurados tienen libro.
func (c *Connector) Ready() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.cfg.Pairs) == 0 {
		return false
	}
	for _, pair := range c.cfg.Pairs {
		if _, ok := c.books[pair]; !ok {
			return false
		}
	}
	return true
}

// OrderBook devuelve el snapshot actual del libro para el par.
func (c *Connector) OrderBook(pair string) (domain.OrderBook, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	book, ok := c.books[pair]
	return book, ok
}

// Balance devuelve el balance libre del asset. Sin API keys configuradas
// devuelve cero sin error: el viewer funciona sobre datos públicos.
func (c *Connector) Balance(ctx context.Context, asset string) (decimal.Decimal, error) {
	if c.cfg.APIKey == "" || c.cfg.APISecret == "" {
		return decimal.Zero, nil
	}

	account, err := c.fetchAccount(ctx)
	if err != nil {
		return decimal.Zero, fmt.Errorf("binance: account: %w", err)
	}
	for _, b := range account.Balances {
		if b.Asset == asset {
			free, err := decimal.NewFromString(b.Free)
			if err != nil {
				return decimal.Zero, fmt.Errorf("binance: parse balance %q: %w", b.Free, err)
			}
			return free, nil
		}
	}
	return decimal.Zero, nil
}

// Start siembra los libros vía REST, conecta el stream y bloquea hasta
// que el contexto se cancele o el stream falle.
func (c *Connector) Start(ctx context.Context) error {
	for _, pair := range c.cfg.Pairs {
		book, err := c.fetchSnapshot(ctx, pair)
		if err != nil {
			return fmt.Errorf("binance: seed snapshot %s: %w", pair, err)
		}
		c.setBook(pair, book)
	}

	conn, err := c.dial(ctx)
	if err != nil {
		return err
	}
	c.conn = conn
	defer conn.Close()

	c.log.Info("binance stream connected", "pairs", c.cfg.Pairs, "depth", c.cfg.Depth)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return c.readLoop(ctx) })
	g.Go(func() error { return c.pingLoop(ctx) })
	return g.Wait()
}

func (c *Connector) setBook(pair string, book domain.OrderBook) {
	c.mu.Lock()
	c.books[pair] = book
	c.mu.Unlock()
}
