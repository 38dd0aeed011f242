package state

// EventCategory is the closed set of dynamic event types.
type EventCategory string

const (
	EventFestival  EventCategory = "festival"
	EventDiscovery EventCategory = "discovery"
	EventChallenge EventCategory = "challenge"
)

// DynamicEvent is a time-boxed happening players can join. TimeRemaining
// counts down against the session clock for display; an event at zero is
// shown as ended but never removed. Participants only increases, and the
// store itself does not enforce capacity — callers check Full before joining.
type DynamicEvent struct {
	ID              string        `json:"id"`
	Title           string        `json:"title"`
	Description     string        `json:"description"`
	TimeRemaining   Duration      `json:"time_remaining"`
	Reward          string        `json:"reward"`
	Participants    int           `json:"participants"`
	MaxParticipants int           `json:"max_participants"`
	Category        EventCategory `json:"category"`
}

// Full reports whether the event has reached its participant cap.
func (e *DynamicEvent) Full() bool {
	return e.Participants >= e.MaxParticipants
}
