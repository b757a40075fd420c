package storage

// sqlite.go — recorder de muestras top-of-book del live view.
//
// Estrategia:
//   - `book_samples`: una fila por iteración del refresh loop.
//   - Los decimales se guardan como TEXT: exactos, sin redondeo binario.
//   - Prune automático al abrir: muestras de más de 7 días fuera.

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"github.com/alejandrodnm/bookwatch/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS book_samples (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    session_id TEXT     NOT NULL,
    pair       TEXT     NOT NULL,
    best_bid   TEXT     NOT NULL,
    best_ask   TEXT     NOT NULL,
    mid        TEXT     NOT NULL,
    sampled_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_samples_session ON book_samples(session_id);
CREATE INDEX IF NOT EXISTS idx_samples_at      ON book_samples(sampled_at DESC);
`

const retentionSamples = 7 * 24 * time.Hour

// SQLiteRecorder implementa ports.Recorder usando SQLite (pure Go, sin CGo).
type SQLiteRecorder struct {
	mu sync.Mutex
	db *sql.DB
}

// NewSQLiteRecorder abre (o crea) la base y aplica schema y prune.
// dsn ":memory:" crea una base efímera para tests.
func NewSQLiteRecorder(dsn string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("storage: open %q: %w", dsn, err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: apply schema: %w", err)
	}

	cutoff := time.Now().UTC().Add(-retentionSamples)
	if _, err := db.Exec(`DELETE FROM book_samples WHERE sampled_at < ?`, cutoff); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: prune: %w", err)
	}

	return &SQLiteRecorder{db: db}, nil
}

// SaveSample inserta una muestra top-of-book.
func (r *SQLiteRecorder) SaveSample(ctx context.Context, s domain.BookSample) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO book_samples (session_id, pair, best_bid, best_ask, mid, sampled_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		s.SessionID, s.Pair,
		s.BestBid.String(), s.BestAsk.String(), s.Mid.String(),
		s.SampledAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("storage: save sample: %w", err)
	}
	return nil
}

// SessionSamples devuelve las muestras de una sesión en orden cronológico.
func (r *SQLiteRecorder) SessionSamples(ctx context.Context, sessionID string) ([]domain.BookSample, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.db.QueryContext(ctx, `
		SELECT session_id, pair, best_bid, best_ask, mid, sampled_at
		FROM book_samples WHERE session_id = ? ORDER BY sampled_at ASC`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("storage: query session: %w", err)
	}
	defer rows.Close()

	var samples []domain.BookSample
	for rows.Next() {
		var s domain.BookSample
		var bid, ask, mid string
		if err := rows.Scan(&s.SessionID, &s.Pair, &bid, &ask, &mid, &s.SampledAt); err != nil {
			return nil, fmt.Errorf("storage: scan sample: %w", err)
		}
		if s.BestBid, err = decimal.NewFromString(bid); err != nil {
			return nil, fmt.Errorf("storage: parse best_bid %q: %w", bid, err)
		}
		if s.BestAsk, err = decimal.NewFromString(ask); err != nil {
			return nil, fmt.Errorf("storage: parse best_ask %q: %w", ask, err)
		}
		if s.Mid, err = decimal.NewFromString(mid); err != nil {
			return nil, fmt.Errorf("storage: parse mid %q: %w", mid, err)
		}
		samples = append(samples, s)
	}
	return samples, rows.Err()
}

// Close cierra la base.
func (r *SQLiteRecorder) Close() error {
	return r.db.Close()
}
