package agent

// EventType discriminates the incremental events of one turn.
type EventType string

const (
	EventText     EventType = "text"
	EventToolCall EventType = "tool_call"
	EventError    EventType = "error"
)

// Event is one incremental update emitted while a turn runs. A turn ends
// when its channel closes; text fragments arrive in emission order and
// concatenate into the full reply.
type Event struct {
	Type EventType
	Text string
	Tool string
	Note string
	Err  error
}
