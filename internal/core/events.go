package core

// EventKind identifies an outbound simulation event.
type EventKind int

const (
	EventCrash EventKind = iota
	EventGameOver
	EventCheckpoint
	EventCollect
	EventBonusLife
	EventCartFlipped
	EventCartRecovered
	EventRespawnTeleport
	EventRespawnComplete
	EventInvincibilityEnd
	EventAreaChange
	EventBounce
	EventCourseComplete
)

// String returns a stable identifier for the event kind, used by the
// platform for logging and by tests.
func (k EventKind) String() string {
	switch k {
	case EventCrash:
		return "crash"
	case EventGameOver:
		return "game_over"
	case EventCheckpoint:
		return "checkpoint"
	case EventCollect:
		return "collect"
	case EventBonusLife:
		return "bonus_life"
	case EventCartFlipped:
		return "cart_flipped"
	case EventCartRecovered:
		return "cart_recovered"
	case EventRespawnTeleport:
		return "respawn_teleport"
	case EventRespawnComplete:
		return "respawn_complete"
	case EventInvincibilityEnd:
		return "invincibility_end"
	case EventAreaChange:
		return "area_change"
	case EventBounce:
		return "bounce"
	case EventCourseComplete:
		return "course_complete"
	default:
		return "unknown"
	}
}

// Event is a single outbound notification from the simulation to the
// presentation/audio/scoring layers. Fields beyond Kind are populated
// per kind; unused fields are zero.
type Event struct {
	Kind   EventKind
	Tick   uint64
	Pos    Vec2   // Crash/bounce/collect/teleport position
	Reason string // Crash reason for EventCrash
	Lives  int    // Lives remaining for EventCrash/EventBonusLife
	Index  int    // Checkpoint or area index
	Item   string // Collectible kind for EventCollect
	ID     string // Collectible or mechanism identity
}

// EventQueue collects events during a tick. The surrounding application
// drains it exactly once per tick, which keeps event ordering within a
// tick deterministic.
type EventQueue struct {
	events []Event
}

// Emit appends an event to the queue.
func (q *EventQueue) Emit(e Event) {
	q.events = append(q.events, e)
}

// Drain returns all queued events and clears the queue.
func (q *EventQueue) Drain() []Event {
	out := q.events
	q.events = nil
	return out
}

// Len returns the number of queued events.
func (q *EventQueue) Len() int {
	return len(q.events)
}
