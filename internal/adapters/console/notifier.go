package console

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Notifier escribe mensajes en el panel de salida del usuario. Va
// separado del logger a propósito: esto es estado transitorio para el
// usuario, no diagnóstico persistente.
type Notifier struct {
	mu  sync.Mutex
	out io.Writer
}

// NewNotifier crea un notificador que escribe a stdout.
func NewNotifier() *Notifier {
	return &Notifier{out: os.Stdout}
}

// NewNotifierWriter crea un notificador para tests.
func NewNotifierWriter(w io.Writer) *Notifier {
	return &Notifier{out: w}
}

// Notify imprime el mensaje con timestamp corto.
func (n *Notifier) Notify(_ context.Context, msg string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	_, err := fmt.Fprintf(n.out, "[%s] %s\n", time.Now().Format("15:04:05"), msg)
	return err
}
