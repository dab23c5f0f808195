package pet

// EventKind is a discrete mouse event.
type EventKind int

const (
	LeftPress EventKind = iota
	LeftRelease
	RightPress
)

func (k EventKind) String() string {
	switch k {
	case LeftPress:
		return "left-press"
	case LeftRelease:
		return "left-release"
	case RightPress:
		return "right-press"
	default:
		return "unknown"
	}
}

// Event is one input event. When HasPos is false the snapshot cursor is used.
type Event struct {
	Kind   EventKind
	Pos    Point
	HasPos bool
}

// Snapshot is the input captured once per tick by the input collaborator.
// All coordinates are in screen space.
type Snapshot struct {
	Events   []Event
	Cursor   Point
	LeftDown bool
}

func (s Snapshot) eventPos(e Event) Point {
	if e.HasPos {
		return e.Pos
	}
	return s.Cursor
}
