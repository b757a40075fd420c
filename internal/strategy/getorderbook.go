package strategy

// getorderbook.go — estrategia de referencia: espera a que el connector
// esté operativo y muestra el libro de órdenes en vivo sobre la superficie
// de display del host, hasta que el usuario lo corta.
//
// Máquina de estados: Idle → Active (única transición, en el primer tick
// que observa el connector listo) y {Idle,Active} → Stopped vía Stop().
// Stopped es terminal: la estrategia no relanza el live view.

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/olekukonko/tablewriter"

	"github.com/alejandrodnm/bookwatch/internal/domain"
	"github.com/alejandrodnm/bookwatch/internal/ports"
)

const (
	// refreshInterval marca la cadencia del live view. El sleep vive en
	// Display.PacedDisplay, no aquí.
	refreshInterval = 500 * time.Millisecond

	stopHint = "\n\n Press escape key to stop update."
)

// State es el estado del ciclo de vida de la estrategia.
type State int

const (
	StateIdle State = iota
	StateActive
	StateStopped
)

// String devuelve el nombre del estado para logs.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateActive:
		return "active"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Config es la configuración inmutable de la estrategia.
type Config struct {
	Exchange    ports.Connector
	TradingPair string
	Lines       int
}

// GetOrderBook implementa la estrategia de display del orderbook.
type GetOrderBook struct {
	cfg      Config
	display  ports.Display
	notifier ports.Notifier
	recorder ports.Recorder // puede ser nil
	log      *slog.Logger

	mu     sync.Mutex
	state  State
	cancel context.CancelFunc
	done   chan struct{}
}

// New crea la estrategia con todas las dependencias inyectadas.
// recorder puede ser nil; log nil usa slog.Default.
func New(cfg Config, display ports.Display, notifier ports.Notifier, recorder ports.Recorder, log *slog.Logger) *GetOrderBook {
	if log == nil {
		log = slog.Default()
	}
	return &GetOrderBook{
		cfg:      cfg,
		display:  display,
		notifier: notifier,
		recorder: recorder,
		log:      log,
	}
}

// State devuelve el estado actual de la máquina.
func (s *GetOrderBook) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Tick es el punto de entrada del reloj del host. El host lo invoca en
// serie: dos ticks nunca corren a la vez para la misma instancia.
func (s *GetOrderBook) Tick(ctx context.Context, _ time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateIdle {
		return
	}

	ex := s.cfg.Exchange
	if !ex.Ready() {
		// Esta rama puede repetirse indefinidamente; no acumula nada.
		s.log.Warn("connector is not ready, please wait", "connector", ex.Name())
		return
	}

	if err := s.notifier.Notify(ctx, fmt.Sprintf("%s Connector is ready!", strings.ToUpper(ex.Name()))); err != nil {
		s.log.Warn("notifier error", "err", err)
	}

	if s.cancel != nil {
		return
	}
	if err := s.launch(); err != nil {
		// Rollback completo: el siguiente tick puede reintentar.
		s.log.Error("error starting live order book", "err", err)
		return
	}
	s.state = StateActive
}

// launch valida la configuración y arranca el refresh loop en background.
// Si devuelve error no queda estado parcial: ni handle ni goroutine.
func (s *GetOrderBook) launch() error {
	if s.cfg.Lines <= 0 {
		return fmt.Errorf("launch: lines must be positive, got %d", s.cfg.Lines)
	}
	if s.cfg.TradingPair == "" {
		return errors.New("launch: empty trading pair")
	}

	// Contexto propio: el task sobrevive al tick que lo lanzó y se corta
	// solo vía Stop o por el flag de live updates.
	taskCtx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	s.cancel = cancel
	s.done = done

	go func() {
		defer close(done)
		if err := s.showOrderBook(taskCtx); err != nil && !errors.Is(err, context.Canceled) {
			// El guard de lanzamiento es one-shot: se loguea como
			// terminación, nunca se relanza.
			s.log.Error("live order book task terminated", "err", err)
		}
	}()
	return nil
}

// showOrderBook es el refresh loop. Corre como task independiente hasta
// que el flag de live updates se apague o el contexto se cancele.
func (s *GetOrderBook) showOrderBook(ctx context.Context) error {
	ex := s.cfg.Exchange
	pair := s.cfg.TradingPair

	if _, ok := ex.OrderBook(pair); !ok {
		s.log.Error("invalid market", "pair", pair, "connector", ex.Name())
		return fmt.Errorf("market %s on %s: %w", pair, ex.Name(), domain.ErrInvalidMarket)
	}

	if err := s.display.StopLiveUpdate(ctx); err != nil {
		return fmt.Errorf("stop previous live update: %w", err)
	}
	s.display.SetLiveUpdates(true)

	session := uuid.NewString()
	s.log.Info("live order book started", "pair", pair, "session", session)

	for s.display.LiveUpdates() {
		book, ok := ex.OrderBook(pair)
		if !ok {
			return fmt.Errorf("market %s on %s: %w", pair, ex.Name(), domain.ErrInvalidMarket)
		}

		s.record(ctx, session, book)

		text := s.renderBook(book)
		if err := s.display.PacedDisplay(ctx, text+stopHint, refreshInterval); err != nil {
			return err
		}
	}

	// Salida por flag: es el camino normal, no un error.
	if err := s.notifier.Notify(ctx, "Stopped live order book display update."); err != nil {
		s.log.Warn("notifier error", "err", err)
	}
	return nil
}

// record guarda la muestra top-of-book si hay recorder configurado.
func (s *GetOrderBook) record(ctx context.Context, session string, book domain.OrderBook) {
	if s.recorder == nil {
		return
	}
	sample := domain.SampleFromBook(session, book, time.Now().UTC())
	if err := s.recorder.SaveSample(ctx, sample); err != nil {
		s.log.Warn("recorder error", "err", err)
	}
}

// renderBook proyecta los primeros niveles de cada lado y los formatea
// como tabla de ancho fijo, indentada, con header de mercado.
func (s *GetOrderBook) renderBook(book domain.OrderBook) string {
	var tbl strings.Builder
	table := tablewriter.NewWriter(&tbl)
	table.Header("bid_price", "bid_volume", "ask_price", "ask_volume")
	for _, row := range book.TopRows(s.cfg.Lines) {
		table.Append(
			row.BidPrice.String(),
			row.BidVolume.String(),
			row.AskPrice.String(),
			row.AskVolume.String(),
		)
	}
	table.Render()

	var out strings.Builder
	fmt.Fprintf(&out, "  market: %s %s\n", s.cfg.Exchange.Name(), s.cfg.TradingPair)
	for _, line := range strings.Split(strings.TrimRight(tbl.String(), "\n"), "\n") {
		out.WriteString("    ")
		out.WriteString(line)
		out.WriteString("\n")
	}
	return strings.TrimRight(out.String(), "\n")
}

// Stop cancela el refresh task si existe y espera a que termine.
// Idempotente: sin task activo es un no-op. Nunca lanza pánico hacia el
// host aunque el loop esté en mitad de un sleep o un fetch.
func (s *GetOrderBook) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	done := s.done
	s.cancel = nil
	s.done = nil
	if cancel != nil {
		s.state = StateStopped
	}
	s.mu.Unlock()

	if cancel == nil {
		return
	}

	// Apagar el flag compartido antes de cancelar: un flag colgado
	// dejaría bloqueado cualquier otro live view sobre la superficie.
	s.display.SetLiveUpdates(false)
	cancel()
	<-done
}

// FormatStatus genera el reporte del comando `status`. Solo lectura,
// sin efectos sobre la máquina de estados.
func (s *GetOrderBook) FormatStatus(ctx context.Context) string {
	if s.State() == StateIdle {
		return "Exchange connector(s) are not ready."
	}

	var sb strings.Builder
	sb.WriteString("\n  Assets:\n")
	for _, asset := range domain.PairAssets(s.cfg.TradingPair) {
		bal, err := s.cfg.Exchange.Balance(ctx, asset)
		if err != nil {
			s.log.Warn("balance fetch failed", "asset", asset, "err", err)
			continue
		}
		fmt.Fprintf(&sb, "    %s    %s\n", asset, bal.String())
	}
	return strings.TrimRight(sb.String(), "\n")
}
