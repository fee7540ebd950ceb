package driver

// EventKind tags a progress event emitted while a batch runs.
type EventKind uint8

const (
	EventStart EventKind = iota
	EventDone
	EventChanged
	EventFailed
)

// Event reports per-file progress for consumers such as the interactive
// progress UI. Events are emitted in completion order, not path order.
type Event struct {
	Kind EventKind
	Path string
	Err  error
}

func emit(events chan<- Event, ev Event) {
	if events == nil {
		return
	}
	events <- ev
}
