// Package progress delivers compile progress to an observer.
//
// Delivery is fire-and-forget: a [Sink] must return promptly and never
// apply backpressure to the compiler. Use [Chan] to bridge events into a
// goroutine that may fall behind; events it cannot accept are dropped.
package progress

// Event reports that Current of Total units of work are done.
type Event struct {
	Current int    `json:"current"`
	Total   int    `json:"total"`
	Message string `json:"message,omitempty"`
}

// Fraction returns Current/Total in [0,1].
func (e Event) Fraction() float64 {
	if e.Total <= 0 {
		return 0
	}
	f := float64(e.Current) / float64(e.Total)
	if f > 1 {
		return 1
	}
	return f
}

// Sink receives progress events.
type Sink interface {
	Report(Event)
}

// Func adapts a plain function to a [Sink].
type Func func(Event)

// Report calls f(e).
func (f Func) Report(e Event) { f(e) }

// Discard is a Sink that ignores every event.
var Discard Sink = Func(func(Event) {})

// OrDiscard returns s, or [Discard] when s is nil.
func OrDiscard(s Sink) Sink {
	if s == nil {
		return Discard
	}
	return s
}

// Chan is a Sink that forwards events to a buffered channel without
// blocking. Events that do not fit are dropped.
type Chan chan Event

// NewChan returns a Chan with the given buffer size.
func NewChan(size int) Chan {
	return make(Chan, size)
}

// Report sends e if the channel has room.
func (c Chan) Report(e Event) {
	select {
	case c <- e:
	default:
	}
}

// Multi fans each event out to several sinks in order.
func Multi(sinks ...Sink) Sink {
	return Func(func(e Event) {
		for _, s := range sinks {
			if s != nil {
				s.Report(e)
			}
		}
	})
}
