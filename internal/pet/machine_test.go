package pet

import (
	"math"
	"testing"

	"chosenoffset.com/parrotpet/internal/rng"
)

// constSource always returns the same value.
type constSource float32

func (c constSource) Float32() float32 { return float32(c) }

// fakeReminders is a single-slot reminder queue.
type fakeReminders struct {
	pending  string
	has      bool
	consumed int
}

func (f *fakeReminders) HasMessageReady() bool { return f.has }

func (f *fakeReminders) Message() (string, bool) {
	if !f.has {
		return "", false
	}
	f.has = false
	f.consumed++
	return f.pending, true
}

var testBounds = Bounds{ScreenWidth: 800, ScreenHeight: 600, SpriteWidth: 100, SpriteHeight: 80}

func newTestMachine(src Source, rem Reminders, messages []string) *Machine {
	return NewMachine(DefaultConfig(), testBounds, src, rem, messages)
}

// settle places the pet at rest on the floor.
func settle(m *Machine, x float64) {
	m.state.Position = Vec2{X: x, Y: m.bounds.Floor()}
	m.state.Velocity = Vec2{}
	m.state.TargetVelocity = 0
}

func inside(m *Machine) Point {
	a := m.anchor()
	return Point{X: a.X + 10, Y: a.Y + 10}
}

func TestNewMachineDefaults(t *testing.T) {
	m := newTestMachine(constSource(0.5), nil, nil)
	s := m.State()

	if s.Position != (Vec2{X: 300, Y: 300}) {
		t.Errorf("Expected start position (300, 300), got %+v", s.Position)
	}
	if s.Velocity != (Vec2{}) {
		t.Errorf("Expected zero velocity, got %+v", s.Velocity)
	}
	if s.Behavior != BehaviorIdle {
		t.Errorf("Expected idle, got %v", s.Behavior)
	}
	if s.Facing != FacingLeft {
		t.Errorf("Expected facing left, got %v", s.Facing)
	}
}

func TestNewMachineClampsStart(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StartX, cfg.StartY = 5000, -40
	m := NewMachine(cfg, testBounds, constSource(0.5), nil, nil)

	if p := m.State().Position; p.X != testBounds.MaxX() || p.Y != 0 {
		t.Errorf("Expected clamped start (%v, 0), got %+v", testBounds.MaxX(), p)
	}
}

func TestBoundsClamping(t *testing.T) {
	seeds := []uint64{1, 2, 3, 99, 12345}
	for _, seed := range seeds {
		m := NewMachine(DefaultConfig(), testBounds, rng.NewSeeded(seed), &fakeReminders{}, []string{"hi"})
		input := rng.NewSeeded(seed * 31)

		for tick := 0; tick < 5000; tick++ {
			snap := Snapshot{
				Cursor:   Point{X: int(input.Float32()*1200) - 200, Y: int(input.Float32()*900) - 150},
				LeftDown: input.Float32() < 0.5,
			}
			switch r := input.Float32(); {
			case r < 0.02:
				snap.Events = []Event{{Kind: LeftPress, Pos: inside(m), HasPos: true}}
				snap.LeftDown = true
			case r < 0.04:
				snap.Events = []Event{{Kind: LeftRelease}}
			case r < 0.05:
				snap.Events = []Event{{Kind: RightPress, Pos: inside(m), HasPos: true}}
			}

			m.Update(snap)

			p := m.State().Position
			if p.X < 0 || p.X > testBounds.MaxX() || p.Y < 0 || p.Y > testBounds.Floor() {
				t.Fatalf("Seed %d tick %d: position %+v escaped bounds", seed, tick, p)
			}
		}
	}
}

func TestFloorBounceDamping(t *testing.T) {
	m := newTestMachine(constSource(0.99), nil, nil)
	m.state.Position = Vec2{X: 300, Y: m.bounds.Floor() - 1}
	m.state.Velocity = Vec2{Y: 10}

	m.Update(Snapshot{})

	s := m.State()
	if s.Position.Y != m.bounds.Floor() {
		t.Errorf("Expected position clamped to floor %v, got %v", m.bounds.Floor(), s.Position.Y)
	}
	pre := 10 + DefaultConfig().Gravity
	if want := -pre * 0.7; math.Abs(s.Velocity.Y-want) > 1e-9 {
		t.Errorf("Expected velocity.y %v, got %v", want, s.Velocity.Y)
	}
	if math.Abs(s.Velocity.Y) >= pre {
		t.Errorf("Expected |velocity.y| to shrink below %v, got %v", pre, s.Velocity.Y)
	}
}

func TestWallBounceDamping(t *testing.T) {
	tests := []struct {
		name   string
		x      float64
		vx     float64
		target float64
		wantX  float64
	}{
		{name: "left wall", x: 1, vx: -3, target: -3, wantX: 0},
		{name: "right wall", x: testBounds.MaxX() - 1, vx: 3, target: 3, wantX: testBounds.MaxX()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMachine(constSource(0.99), nil, nil)
			settle(m, tt.x)
			m.state.Velocity.X = tt.vx
			m.state.TargetVelocity = tt.target

			m.Update(Snapshot{})
			s := m.State()

			if s.Position.X != tt.wantX {
				t.Errorf("Expected x %v, got %v", tt.wantX, s.Position.X)
			}
			// Smoothing leaves vx unchanged when it equals the target.
			if want := -tt.vx * 0.8; math.Abs(s.Velocity.X-want) > 1e-9 {
				t.Errorf("Expected velocity.x %v, got %v", want, s.Velocity.X)
			}
			if want := -tt.target * 0.8; math.Abs(s.TargetVelocity-want) > 1e-9 {
				t.Errorf("Expected target velocity %v, got %v", want, s.TargetVelocity)
			}
		})
	}
}

func TestIdleToMovingTransition(t *testing.T) {
	// 0.0 rolls the shortest idle time and a leftward target.
	m := newTestMachine(constSource(0), nil, nil)
	settle(m, 400)

	cfg := DefaultConfig()
	for i := 1; i < cfg.IdleMinTicks; i++ {
		m.Update(Snapshot{})
		if m.State().Behavior != BehaviorIdle {
			t.Fatalf("Tick %d: expected idle until %d ticks", i, cfg.IdleMinTicks)
		}
	}

	m.Update(Snapshot{})
	s := m.State()
	if s.Behavior != BehaviorMoving {
		t.Fatalf("Expected moving after %d ticks, got %v", cfg.IdleMinTicks, s.Behavior)
	}
	if s.TargetVelocity != -cfg.SpeedMin {
		t.Errorf("Expected target velocity %v, got %v", -cfg.SpeedMin, s.TargetVelocity)
	}

	for i := 1; i < cfg.MoveMinTicks; i++ {
		m.Update(Snapshot{})
	}
	if m.State().Behavior != BehaviorMoving {
		t.Fatal("Expected to still be moving one tick before the limit")
	}
	m.Update(Snapshot{})
	s = m.State()
	if s.Behavior != BehaviorIdle {
		t.Errorf("Expected idle after %d moving ticks, got %v", cfg.MoveMinTicks, s.Behavior)
	}
	if s.TargetVelocity != 0 {
		t.Errorf("Expected target velocity reset, got %v", s.TargetVelocity)
	}
}

func TestMovingRightCoinFlip(t *testing.T) {
	m := newTestMachine(constSource(0.9), nil, nil)
	settle(m, 100)
	m.enterMoving()

	want := 0.5 + float64(float32(0.9))*2.5
	if math.Abs(m.State().TargetVelocity-want) > 1e-6 {
		t.Errorf("Expected target velocity %v, got %v", want, m.State().TargetVelocity)
	}
}

func TestSmoothingApproachesTarget(t *testing.T) {
	m := newTestMachine(constSource(0.99), nil, nil)
	settle(m, 400)
	m.state.TargetVelocity = 2

	m.Update(Snapshot{})
	if got := m.State().Velocity.X; math.Abs(got-0.2) > 1e-9 {
		t.Errorf("Expected velocity.x 0.2 after one tick, got %v", got)
	}
}

func TestDragScenario(t *testing.T) {
	m := newTestMachine(constSource(0.99), nil, nil)
	start := m.View().Position
	press := Point{X: start.X + 20, Y: start.Y + 30}

	m.Update(Snapshot{
		Events:   []Event{{Kind: LeftPress, Pos: press, HasPos: true}},
		Cursor:   press,
		LeftDown: true,
	})
	s := m.State()
	if !s.Drag.Active {
		t.Fatal("Expected drag to start on an in-bounds press")
	}
	if s.Drag.Offset != (Point{X: 20, Y: 30}) {
		t.Errorf("Expected offset (20, 30), got %+v", s.Drag.Offset)
	}

	path := []Point{{X: 400, Y: 200}, {X: 450, Y: 120}, {X: 500, Y: 250}}
	for _, cursor := range path {
		m.Update(Snapshot{Cursor: cursor, LeftDown: true})
		s = m.State()
		if s.Velocity != (Vec2{}) {
			t.Fatalf("Expected zero velocity while dragging, got %+v", s.Velocity)
		}
		want := Vec2{X: float64(cursor.X - 20), Y: float64(cursor.Y - 30)}
		if s.Position != want {
			t.Fatalf("Expected position %+v, got %+v", want, s.Position)
		}
	}

	last := path[len(path)-1]
	m.Update(Snapshot{
		Events: []Event{{Kind: LeftRelease, Pos: last, HasPos: true}},
		Cursor: last,
	})
	s = m.State()
	if s.Drag.Active {
		t.Fatal("Expected drag to end on release")
	}
	if !s.Flight.Active || s.Flight.Frame != 0 {
		t.Errorf("Expected flying at frame 0, got %+v", s.Flight)
	}
	if s.Position.X != float64(last.X-20) {
		t.Errorf("Expected x %d after release, got %v", last.X-20, s.Position.X)
	}
	// One tick of gravity is applied after the drop.
	if dy := s.Position.Y - float64(last.Y-30); dy < 0 || dy > DefaultConfig().Gravity {
		t.Errorf("Expected y to drop by at most one gravity step, moved %v", dy)
	}
	if m.View().Frame.Pose != PoseFly0 {
		t.Errorf("Expected fly0 pose, got %v", m.View().Frame.Pose)
	}
}

func TestDragClampsToScreen(t *testing.T) {
	m := newTestMachine(constSource(0.99), nil, nil)
	press := inside(m)
	m.Update(Snapshot{Events: []Event{{Kind: LeftPress, Pos: press, HasPos: true}}, Cursor: press, LeftDown: true})

	m.Update(Snapshot{Cursor: Point{X: -500, Y: 5000}, LeftDown: true})
	if p := m.State().Position; p.X != 0 || p.Y != testBounds.Floor() {
		t.Errorf("Expected clamped position (0, %v), got %+v", testBounds.Floor(), p)
	}
}

func TestDragSuspendsPhysics(t *testing.T) {
	m := newTestMachine(constSource(0), nil, nil)
	press := inside(m)
	m.Update(Snapshot{Events: []Event{{Kind: LeftPress, Pos: press, HasPos: true}}, Cursor: press, LeftDown: true})

	for i := 0; i < 1000; i++ {
		m.Update(Snapshot{Cursor: press, LeftDown: true})
		s := m.State()
		if s.Velocity != (Vec2{}) || s.TargetVelocity != 0 {
			t.Fatalf("Tick %d: expected motion frozen, got v=%+v target=%v", i, s.Velocity, s.TargetVelocity)
		}
		if s.Behavior != BehaviorIdle {
			t.Fatalf("Tick %d: expected idle while dragging", i)
		}
	}
}

func TestDragEndsWhenButtonPolledUp(t *testing.T) {
	m := newTestMachine(constSource(0.99), nil, nil)
	press := inside(m)
	m.Update(Snapshot{Events: []Event{{Kind: LeftPress, Pos: press, HasPos: true}}, Cursor: press, LeftDown: true})

	// Release happened outside the window; only the polled state shows it.
	m.Update(Snapshot{Cursor: Point{X: 600, Y: 300}, LeftDown: false})
	s := m.State()
	if s.Drag.Active {
		t.Fatal("Expected drag to end when the polled button is up")
	}
	if !s.Flight.Active {
		t.Error("Expected flight after the polled release")
	}
	if s.Position.X != float64(600-10) {
		t.Errorf("Expected final drag position to follow the cursor, got %+v", s.Position)
	}
}

func TestPressOutsideSpriteIgnored(t *testing.T) {
	m := newTestMachine(constSource(0.99), nil, []string{"hi"})
	a := m.View().Position
	outside := Point{X: a.X + testBounds.SpriteWidth, Y: a.Y}

	m.Update(Snapshot{
		Events:   []Event{{Kind: LeftPress, Pos: outside, HasPos: true}, {Kind: RightPress, Pos: outside, HasPos: true}},
		Cursor:   outside,
		LeftDown: true,
	})
	s := m.State()
	if s.Drag.Active {
		t.Error("Expected no drag for a press outside the sprite box")
	}
	if s.Bubble.Visible {
		t.Error("Expected no bubble for a right-click outside the sprite box")
	}
}

func TestFlightSelfTerminates(t *testing.T) {
	m := newTestMachine(constSource(0.99), nil, nil)
	press := inside(m)
	m.Update(Snapshot{Events: []Event{{Kind: LeftPress, Pos: press, HasPos: true}}, Cursor: press, LeftDown: true})

	// Tick 1 of the flight is the release tick.
	m.Update(Snapshot{Events: []Event{{Kind: LeftRelease}}, Cursor: press})

	cfg := DefaultConfig()
	want := []Pose{PoseFly0, PoseFly1, PoseFly2, PoseFly1}
	for elapsed := 1; elapsed < cfg.FlightTicks; elapsed++ {
		s := m.State()
		if !s.Flight.Active {
			t.Fatalf("Elapsed %d: flight ended early", elapsed)
		}
		pose := want[(elapsed/cfg.FlightFrameTicks)%len(want)]
		if got := m.View().Frame.Pose; got != pose {
			t.Fatalf("Elapsed %d: expected %v, got %v", elapsed, pose, got)
		}
		if !m.Update(Snapshot{Cursor: press}) && elapsed+1 < cfg.FlightTicks {
			t.Fatalf("Elapsed %d: expected continuous redraw while flying", elapsed)
		}
	}

	s := m.State()
	if s.Flight.Active {
		t.Fatalf("Expected flight to end after %d ticks", cfg.FlightTicks)
	}
	if s.UseLowFrame || s.IsAnimating {
		t.Error("Expected still animation after landing")
	}
	if m.View().Frame.Pose != PoseNormal {
		t.Errorf("Expected normal pose after flight, got %v", m.View().Frame.Pose)
	}
}

func TestBubbleScenario(t *testing.T) {
	m := newTestMachine(constSource(0.99), &fakeReminders{}, []string{"hi"})
	settle(m, 300)
	click := inside(m)

	changed := m.Update(Snapshot{Events: []Event{{Kind: RightPress, Pos: click, HasPos: true}}, Cursor: click})
	if !changed {
		t.Error("Expected redraw when the bubble appears")
	}
	v := m.View()
	if !v.BubbleVisible || v.BubbleText != "hi" {
		t.Fatalf("Expected bubble 'hi', got visible=%v text=%q", v.BubbleVisible, v.BubbleText)
	}

	for n := 1; n < 299; n++ {
		m.Update(Snapshot{Cursor: click})
		if !m.View().BubbleVisible {
			t.Fatalf("Bubble hid early after %d ticks", n+1)
		}
	}
	if !m.Update(Snapshot{Cursor: click}) {
		t.Error("Expected redraw when the bubble hides")
	}
	if m.View().BubbleVisible {
		t.Error("Expected bubble hidden after 300 ticks")
	}
}

func TestBubbleSuspendsPhysics(t *testing.T) {
	m := newTestMachine(constSource(0.99), nil, []string{"hi"})
	m.state.Position = Vec2{X: 300, Y: 100}
	m.state.Velocity = Vec2{X: 2, Y: 3}
	m.state.Flight = Flight{Active: true}
	click := inside(m)

	m.Update(Snapshot{Events: []Event{{Kind: RightPress, Pos: click, HasPos: true}}, Cursor: click})
	s := m.State()
	if s.Velocity != (Vec2{}) || s.TargetVelocity != 0 {
		t.Errorf("Expected motion zeroed, got v=%+v target=%v", s.Velocity, s.TargetVelocity)
	}
	if s.Flight.Active {
		t.Error("Expected right-click to cancel flight")
	}

	for i := 0; i < 50; i++ {
		m.Update(Snapshot{})
	}
	if p := m.State().Position; p != (Vec2{X: 300, Y: 100}) {
		t.Errorf("Expected pet to hang still while the bubble shows, got %+v", p)
	}
}

func TestBubbleToggle(t *testing.T) {
	m := newTestMachine(constSource(0.99), &fakeReminders{}, []string{"hi", "hello"})
	settle(m, 300)
	click := inside(m)
	rightClick := Snapshot{Events: []Event{{Kind: RightPress, Pos: click, HasPos: true}}, Cursor: click}

	m.Update(rightClick)
	if v := m.View(); !v.BubbleVisible || v.BubbleText != "hello" {
		t.Fatalf("Expected last message for a 0.99 roll, got visible=%v text=%q", v.BubbleVisible, v.BubbleText)
	}

	m.Update(rightClick)
	if m.View().BubbleVisible {
		t.Error("Expected second right-click to hide the bubble")
	}
}

func TestBubbleWithoutMessages(t *testing.T) {
	m := newTestMachine(constSource(0.5), nil, nil)
	click := inside(m)
	m.Update(Snapshot{Events: []Event{{Kind: RightPress, Pos: click, HasPos: true}}, Cursor: click})
	if m.View().BubbleVisible {
		t.Error("Expected no bubble when there is nothing to say")
	}
}

func TestReminderCueJumps(t *testing.T) {
	rem := &fakeReminders{pending: "drink water", has: true}
	m := newTestMachine(constSource(0.99), rem, nil)
	settle(m, 300)

	m.Update(Snapshot{})
	s := m.State()
	want := DefaultConfig().JumpVelocity + DefaultConfig().Gravity
	if s.Velocity.Y != want {
		t.Errorf("Expected jump velocity %v, got %v", want, s.Velocity.Y)
	}
	if s.Position.Y >= m.bounds.Floor() {
		t.Error("Expected the pet to leave the floor")
	}
	if !rem.has || rem.consumed != 0 {
		t.Error("Expected the jump to leave the reminder pending")
	}
}

func TestReminderCueWaitsForRest(t *testing.T) {
	rem := &fakeReminders{pending: "stretch", has: true}
	m := newTestMachine(constSource(0.99), rem, nil)
	m.state.Position = Vec2{X: 300, Y: 100}

	m.Update(Snapshot{})
	if v := m.State().Velocity.Y; v != DefaultConfig().Gravity {
		t.Errorf("Expected a falling pet not to jump, got velocity.y %v", v)
	}
}

func TestRightClickShowsReminder(t *testing.T) {
	rem := &fakeReminders{pending: "drink water", has: true}
	m := newTestMachine(constSource(0.99), rem, []string{"hi"})
	settle(m, 300)
	click := inside(m)

	m.Update(Snapshot{Events: []Event{{Kind: RightPress, Pos: click, HasPos: true}}, Cursor: click})
	v := m.View()
	if !v.BubbleVisible || v.BubbleText != "drink water" {
		t.Fatalf("Expected reminder in bubble, got visible=%v text=%q", v.BubbleVisible, v.BubbleText)
	}
	if rem.has || rem.consumed != 1 {
		t.Error("Expected the reminder to be consumed exactly once")
	}

	// A reminder replaces a bubble that is already open.
	rem.pending, rem.has = "stretch", true
	m.Update(Snapshot{Events: []Event{{Kind: RightPress, Pos: click, HasPos: true}}, Cursor: click})
	if v := m.View(); !v.BubbleVisible || v.BubbleText != "stretch" || m.State().Bubble.Elapsed != 1 {
		t.Errorf("Expected fresh 'stretch' bubble, got %+v", m.State().Bubble)
	}
}

func TestBlinkAnimation(t *testing.T) {
	// 0.05 starts the blink (< 0.1) and keeps it going (< 0.7).
	m := newTestMachine(constSource(0.05), nil, nil)
	settle(m, 300)
	m.state.behaviorLimit = 1 << 30

	cfg := DefaultConfig()
	for i := 0; i < cfg.BlinkCheckTicks; i++ {
		m.Update(Snapshot{})
	}
	s := m.State()
	if !s.IsAnimating {
		t.Fatal("Expected blink animation to start at the first check")
	}
	if s.UseLowFrame {
		t.Fatal("Expected normal frame right after the start")
	}

	for i := 0; i < cfg.BlinkFlipTicks; i++ {
		m.Update(Snapshot{})
	}
	if !m.State().UseLowFrame {
		t.Fatal("Expected low frame after one flip period")
	}
	if m.View().Frame.Pose != PoseLow {
		t.Errorf("Expected low pose, got %v", m.View().Frame.Pose)
	}

	for i := 0; i < cfg.BlinkFlipTicks; i++ {
		m.Update(Snapshot{})
	}
	if m.State().UseLowFrame {
		t.Error("Expected normal frame after the second flip period")
	}
}

func TestBlinkStopsWhileMoving(t *testing.T) {
	m := newTestMachine(constSource(0.05), nil, nil)
	settle(m, 300)
	m.state.IsAnimating = true
	m.state.UseLowFrame = true
	m.state.AnimationTimer = 12
	m.state.Behavior = BehaviorMoving
	m.state.behaviorLimit = 1 << 30

	m.Update(Snapshot{})
	s := m.State()
	if s.UseLowFrame || s.IsAnimating || s.AnimationTimer != 0 || s.AnimationCheckTimer != 0 {
		t.Errorf("Expected blink reset while moving, got %+v", s)
	}
}

func TestBlinkNeverStartsOnHighRoll(t *testing.T) {
	m := newTestMachine(constSource(0.99), nil, nil)
	settle(m, 300)
	m.state.behaviorLimit = 1 << 30

	for i := 0; i < 600; i++ {
		m.Update(Snapshot{})
		if m.State().IsAnimating {
			t.Fatalf("Tick %d: blink started on a 0.99 roll", i)
		}
	}
}

func TestFacingFollowsVelocity(t *testing.T) {
	tests := []struct {
		name string
		vx   float64
		want Facing
	}{
		{name: "moving right", vx: 3, want: FacingRight},
		{name: "moving left", vx: -3, want: FacingLeft},
		{name: "at threshold", vx: 0.1, want: FacingLeft},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMachine(constSource(0.99), nil, nil)
			settle(m, 400)
			m.state.Velocity.X = tt.vx
			m.state.TargetVelocity = tt.vx

			m.Update(Snapshot{})
			if got := m.State().Facing; got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestRestingPetNeedsNoRedraw(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Features.Blink = false
	m := NewMachine(cfg, testBounds, constSource(0.99), nil, nil)
	settle(m, 300)

	for i := 0; i < 50; i++ {
		if m.Update(Snapshot{}) {
			t.Fatalf("Tick %d: expected no redraw for a pet at rest", i)
		}
	}
}

func TestBasicModeIgnoresInteraction(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Features = Features{}
	m := NewMachine(cfg, testBounds, constSource(0.05), &fakeReminders{}, []string{"hi"})
	settle(m, 300)
	m.state.behaviorLimit = 1 << 30
	click := inside(m)

	m.Update(Snapshot{
		Events:   []Event{{Kind: LeftPress, Pos: click, HasPos: true}, {Kind: RightPress, Pos: click, HasPos: true}},
		Cursor:   click,
		LeftDown: true,
	})
	s := m.State()
	if s.Drag.Active || s.Bubble.Visible {
		t.Errorf("Expected drag and bubble disabled, got %+v", s)
	}

	for i := 0; i < 300; i++ {
		m.Update(Snapshot{})
	}
	if m.State().IsAnimating {
		t.Error("Expected blink disabled in basic mode")
	}
}

func TestBasicModeIgnoresReminders(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Features = Features{}
	rem := &fakeReminders{pending: "drink water", has: true}
	m := NewMachine(cfg, testBounds, constSource(0.05), rem, nil)
	settle(m, 300)
	click := inside(m)

	m.Update(Snapshot{Events: []Event{{Kind: RightPress, Pos: click, HasPos: true}}, Cursor: click})

	jumps := 0
	for i := 0; i < 6000; i++ {
		m.Update(Snapshot{})
		if m.State().Velocity.Y < -1 {
			jumps++
		}
	}
	if jumps != 0 {
		t.Errorf("Expected no reminder hops with the bubble off, got %d ticks moving up", jumps)
	}
	if rem.consumed != 0 {
		t.Errorf("Expected the reminder left alone, got %d consumed", rem.consumed)
	}
}

func TestReminderCueNeedsBubble(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Features.Bubble = false
	rem := &fakeReminders{pending: "stretch", has: true}
	m := NewMachine(cfg, testBounds, constSource(0.99), rem, nil)
	settle(m, 300)

	m.Update(Snapshot{})
	if v := m.State().Velocity.Y; v < -1 {
		t.Errorf("Expected no jump without the bubble, got velocity %v", v)
	}
}

func TestFlightDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Features.Flight = false
	m := NewMachine(cfg, testBounds, constSource(0.99), nil, nil)
	press := inside(m)

	m.Update(Snapshot{Events: []Event{{Kind: LeftPress, Pos: press, HasPos: true}}, Cursor: press, LeftDown: true})
	m.Update(Snapshot{Events: []Event{{Kind: LeftRelease}}, Cursor: press})
	if m.State().Flight.Active {
		t.Error("Expected no flight when the feature is off")
	}
}

func TestFrameString(t *testing.T) {
	f := Frame{Pose: PoseFly2, Facing: FacingRight}
	if f.String() != "fly2/right" {
		t.Errorf("Expected 'fly2/right', got %q", f.String())
	}
	if names := PoseNames(); len(names) != int(PoseCount) || names[1] != "low" {
		t.Errorf("Unexpected pose names %q", names)
	}
}
