package dom

import "fmt"

type listenerKey struct {
	id    string
	event string
}

// On registers handler for the named event on the element with id. Handlers
// run in registration order when the event is dispatched.
func (d *Document) On(id, event string, handler func()) error {
	if handler == nil {
		return fmt.Errorf("dom: handler is required")
	}
	if event == "" {
		return fmt.Errorf("dom: event name is required")
	}
	if d.findByID(id) == nil {
		return fmt.Errorf("dom: element %q not found", id)
	}

	key := listenerKey{id: id, event: event}
	d.listeners[key] = append(d.listeners[key], handler)
	return nil
}

// Dispatch fires the named event on the element with id. Each handler runs to
// completion before the next starts; handlers may dispatch further events,
// which nest depth-first. Dispatching an event nobody listens to is a no-op.
func (d *Document) Dispatch(id, event string) {
	key := listenerKey{id: id, event: event}
	// Snapshot so handlers registering more listeners do not grow the pass.
	handlers := append([]func(){}, d.listeners[key]...)
	for _, handler := range handlers {
		handler()
	}
}
