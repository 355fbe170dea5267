package bet

// EventType tags a game event.
type EventType string

const (
	EventBetPlaced  EventType = "bet_placed"
	EventBetSettled EventType = "bet_settled"
)

// Event is an applied game event. Exactly one of Placement and Settlement is
// set, matching Type.
type Event struct {
	Type       EventType
	Placement  *Placement
	Settlement *Settlement
}

// NewPlacedEvent wraps an applied placement.
func NewPlacedEvent(p *Placement) Event {
	return Event{Type: EventBetPlaced, Placement: p}
}

// NewSettledEvent wraps an applied settlement.
func NewSettledEvent(s *Settlement) Event {
	return Event{Type: EventBetSettled, Settlement: s}
}

// Player returns the lowercased player address the event concerns, or "" for
// an event carrying no payload.
func (e Event) Player() string {
	switch e.Type {
	case EventBetPlaced:
		if e.Placement != nil {
			return e.Placement.Player
		}
	case EventBetSettled:
		if e.Settlement != nil {
			return e.Settlement.Player
		}
	}
	return ""
}

// RequestID returns the bet request id the event concerns.
func (e Event) RequestID() string {
	switch e.Type {
	case EventBetPlaced:
		if e.Placement != nil {
			return e.Placement.RequestID
		}
	case EventBetSettled:
		if e.Settlement != nil {
			return e.Settlement.RequestID
		}
	}
	return ""
}
