package ports

import "context"

// Notifier entrega mensajes transitorios al panel del usuario.
// Es deliberadamente distinto del logger: lo que pasa por aquí no
// acaba en el log persistente.
type Notifier interface {
	Notify(ctx context.Context, msg string) error
}
