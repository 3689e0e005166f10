package jsdata

// Event names emitted by a collection.
const (
	// EventAdd fires after records enter the collection. The payload mirrors
	// the call shape: a single record for Add, a slice for AddAll.
	EventAdd = "add"
	// EventRemove fires once per removed record, from Remove and from
	// RemoveAll alike. The payload is the removed record.
	EventRemove = "remove"
)

// Broadcaster receives collection events and events forwarded from
// observable records. Delivery is synchronous on the mutating goroutine.
type Broadcaster interface {
	Emit(event string, args ...any)
}

// NoopBroadcaster discards all events.
type NoopBroadcaster struct{}

// Emit implements Broadcaster.
func (NoopBroadcaster) Emit(string, ...any) {}

// BroadcasterFunc adapts a plain function to the Broadcaster interface.
type BroadcasterFunc func(event string, args ...any)

// Emit implements Broadcaster.
func (f BroadcasterFunc) Emit(event string, args ...any) {
	f(event, args...)
}
