package validation

import "fmt"

// EventKind identifies a notification coming from the host.
type EventKind string

const (
	EventInput  EventKind = "input"
	EventBlur   EventKind = "blur"
	EventSubmit EventKind = "submit"
)

// EventsMode selects which value-change events trigger evaluation.
// Submission always triggers a full pass regardless of the mode.
type EventsMode string

const (
	EventsInput  EventsMode = "input"
	EventsBlur   EventsMode = "blur"
	EventsSubmit EventsMode = "submit"
	EventsAll    EventsMode = "all"
)

// ParseEventsMode validates s. The empty string selects EventsAll.
func ParseEventsMode(s string) (EventsMode, error) {
	switch m := EventsMode(s); m {
	case "":
		return EventsAll, nil
	case EventsInput, EventsBlur, EventsSubmit, EventsAll:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidEventsMode, s)
	}
}

// Subscribes reports whether events of kind trigger evaluation in mode m.
func (m EventsMode) Subscribes(kind EventKind) bool {
	switch kind {
	case EventSubmit:
		return true
	case EventInput:
		return m == EventsInput || m == EventsAll
	case EventBlur:
		return m == EventsBlur || m == EventsAll
	}
	return false
}
