package ports

// Notifier is a fire-and-forget observability sink invoked at lifecycle
// transitions. Implementations must never block or fail the caller.
type Notifier interface {
	Notify(message string)
}

// NopNotifier discards every message.
type NopNotifier struct{}

func (NopNotifier) Notify(string) {}
