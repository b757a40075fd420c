package ports

import (
	"context"

	"github.com/alejandrodnm/bookwatch/internal/domain"
)

// Recorder persiste muestras top-of-book del live view. Opcional: la
// estrategia funciona sin recorder y un error de escritura nunca
// interrumpe el loop.
type Recorder interface {
	SaveSample(ctx context.Context, sample domain.BookSample) error
}
