package engine

// EventWithArg is a multi-cast callback list. Listeners run in the order they
// were added, on the goroutine that calls Invoke.
type EventWithArg[T any] struct {
	listeners []func(T)
}

func (e *EventWithArg[T]) AddListener(callback func(T)) {
	if callback == nil {
		return
	}
	e.listeners = append(e.listeners, callback)
}

func (e *EventWithArg[T]) RemoveAllListeners() {
	e.listeners = nil
}

func (e *EventWithArg[T]) Invoke(arg T) {
	for _, listener := range e.listeners {
		listener(arg)
	}
}

// GetListenerCount returns the number of registered listeners (for debugging)
func (e *EventWithArg[T]) GetListenerCount() int {
	return len(e.listeners)
}
