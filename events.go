package authcache

import "time"

// Observer receives cache lifecycle events. Implementations must be safe
// for concurrent use; events for different keys arrive from different
// goroutines at once.
type Observer interface {
	On(eventData EventData)
}

// Event represents a cache event type.
type Event int

const (
	// EventHit is emitted when Get returns a fresh value from the store.
	EventHit Event = iota
	// EventMiss is emitted when a fetch is actually invoked for a key.
	EventMiss
	// EventCoalesced is emitted to each caller whose result was shared with
	// at least one other concurrent caller for the same key.
	EventCoalesced
	// EventSlowFetch is emitted once a still-running fetch exceeds the
	// configured warning threshold. Diagnostic only; the fetch is not
	// interrupted.
	EventSlowFetch
	// EventFetchError is emitted when a fetch returns an error or panics.
	EventFetchError
	// EventInvalidate is emitted when an entry is explicitly removed.
	EventInvalidate
)

// EventData carries the details of a cache event.
type EventData struct {
	Event   Event
	Key     string
	Elapsed time.Duration // set on EventSlowFetch
	Err     error         // set on EventFetchError
}
