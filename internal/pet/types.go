// Package pet implements the per-tick state machine of the desktop parrot:
// physics, wandering, drag and drop, flight, blinking and the speech bubble.
//
// The machine is a pure function of its state and an input Snapshot. It never
// polls the OS, reads the clock or touches pixels; callers supply input and
// turn the resulting View into a window position and sprite frame.
package pet

import "fmt"

// Facing is the horizontal direction the sprite looks at.
type Facing int

const (
	FacingLeft Facing = iota
	FacingRight
)

func (f Facing) String() string {
	if f == FacingRight {
		return "right"
	}
	return "left"
}

// Behavior is the high-level locomotion state.
type Behavior int

const (
	BehaviorIdle Behavior = iota
	BehaviorMoving
)

func (b Behavior) String() string {
	if b == BehaviorMoving {
		return "moving"
	}
	return "idle"
}

// Pose identifies one of the five sprite drawings.
type Pose int

const (
	PoseNormal Pose = iota
	PoseLow
	PoseFly0
	PoseFly1
	PoseFly2

	PoseCount
)

var poseNames = [PoseCount]string{"normal", "low", "fly0", "fly1", "fly2"}

func (p Pose) String() string {
	if p < 0 || p >= PoseCount {
		return fmt.Sprintf("pose(%d)", int(p))
	}
	return poseNames[p]
}

// PoseNames returns the names of all poses in Pose order.
func PoseNames() []string {
	names := make([]string, PoseCount)
	copy(names, poseNames[:])
	return names
}

// flightPoses maps the flight frame index 0..3 onto the wing cycle.
var flightPoses = [4]Pose{PoseFly0, PoseFly1, PoseFly2, PoseFly1}

// Frame is the sprite-frame identifier handed to the presentation layer.
type Frame struct {
	Pose   Pose
	Facing Facing
}

func (f Frame) String() string {
	return f.Pose.String() + "/" + f.Facing.String()
}

// Vec2 is a float position or velocity in screen pixels.
type Vec2 struct {
	X, Y float64
}

// Point is an integer screen coordinate.
type Point struct {
	X, Y int
}

// Flight is the post-drop animation override.
type Flight struct {
	Active    bool
	Frame     int // 0..3
	Elapsed   int
	AnimTimer int
}

// Drag tracks an in-progress mouse drag.
type Drag struct {
	Active bool
	Offset Point // cursor minus anchor at press time
}

// Bubble is the speech bubble above the sprite.
type Bubble struct {
	Visible bool
	Text    string
	Elapsed int
}

// State is the complete mutable state of the pet.
type State struct {
	Position       Vec2
	Velocity       Vec2
	TargetVelocity float64

	Facing   Facing
	Behavior Behavior

	IdleTimer     int
	MovementTimer int
	// Duration rolled when the current behavior was entered.
	behaviorLimit int

	UseLowFrame         bool
	AnimationTimer      int
	IsAnimating         bool
	AnimationCheckTimer int

	Flight Flight
	Drag   Drag
	Bubble Bubble
}

// Frame resolves the sprite frame for the current state.
func (s State) Frame() Frame {
	pose := PoseNormal
	switch {
	case s.Flight.Active:
		pose = flightPoses[s.Flight.Frame%len(flightPoses)]
	case s.UseLowFrame:
		pose = PoseLow
	}
	return Frame{Pose: pose, Facing: s.Facing}
}

// View is what the presentation layer needs to paint one frame.
type View struct {
	Position      Point
	Frame         Frame
	BubbleVisible bool
	BubbleText    string
}
