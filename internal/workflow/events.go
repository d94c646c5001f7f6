package workflow

// EventKind classifies a notification.
type EventKind string

const (
	// EventTransition is emitted after every change of workflow state.
	EventTransition EventKind = "transition"
	// EventSuccess reports a user-visible success.
	EventSuccess EventKind = "success"
	// EventFailure reports a user-visible InputInvalid or CollaboratorFailure.
	EventFailure EventKind = "failure"
)

// Event is delivered to the Sink after the coordinator has released its lock.
type Event struct {
	SessionID    string       `json:"session_id"`
	Kind         EventKind    `json:"kind"`
	Stage        Stage        `json:"stage"`
	State        State        `json:"state"`
	ProfileState ProfileState `json:"profile_state"`
	Message      string       `json:"message,omitempty"`
	Err          error        `json:"-"`
}

// Sink receives workflow notifications. Notify may be called from several
// goroutines when stages run concurrently.
type Sink interface {
	Notify(Event)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(Event)

// Notify calls f(e).
func (f SinkFunc) Notify(e Event) { f(e) }

type discardSink struct{}

func (discardSink) Notify(Event) {}
