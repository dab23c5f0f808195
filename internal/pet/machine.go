package pet

import "math"

// Source supplies uniform floats in [0, 1).
type Source interface {
	Float32() float32
}

// Reminders is the consumer side of the reminder scheduler.
type Reminders interface {
	HasMessageReady() bool
	Message() (string, bool)
}

// Machine owns the pet state and advances it one tick at a time. It is not
// safe for concurrent use; the update loop is its only caller.
type Machine struct {
	cfg       Config
	bounds    Bounds
	rng       Source
	reminders Reminders
	messages  []string

	state State
}

// NewMachine creates a pet at the configured start position, idle and facing
// left. reminders may be nil. messages are the filler texts shown on a
// right-click when no reminder is waiting.
func NewMachine(cfg Config, bounds Bounds, rng Source, reminders Reminders, messages []string) *Machine {
	m := &Machine{
		cfg:       cfg,
		bounds:    bounds,
		rng:       rng,
		reminders: reminders,
		messages:  append([]string(nil), messages...),
	}
	m.state.Position = Vec2{X: cfg.StartX, Y: cfg.StartY}
	m.clampPosition()
	m.enterIdle()
	return m
}

// State returns a copy of the current state.
func (m *Machine) State() State {
	return m.state
}

// View returns the render parameters for the current state.
func (m *Machine) View() View {
	return View{
		Position:      m.anchor(),
		Frame:         m.state.Frame(),
		BubbleVisible: m.state.Bubble.Visible,
		BubbleText:    m.state.Bubble.Text,
	}
}

// Update advances the pet by one tick and reports whether the presentation
// needs to be refreshed.
func (m *Machine) Update(snap Snapshot) bool {
	before := m.View()
	lowBefore := m.state.UseLowFrame

	m.reminderCue()
	m.handleEvents(snap)
	m.pollDrag(snap)
	m.updateBubble()
	if !m.state.Drag.Active && !m.state.Bubble.Visible {
		m.updateBehavior()
		m.updatePhysics()
	}
	m.updateFlight()
	m.updateBlink()
	m.updateFacing()

	after := m.View()
	return after.Frame != before.Frame ||
		m.state.UseLowFrame != lowBefore ||
		m.state.Flight.Active ||
		after.BubbleVisible != before.BubbleVisible ||
		after.BubbleText != before.BubbleText ||
		after.Position != before.Position
}

// reminderCue makes a resting pet hop when a reminder is waiting. The
// reminder itself stays pending until the user right-clicks, so without the
// bubble there is no cue.
func (m *Machine) reminderCue() {
	if !m.cfg.Features.Bubble || m.reminders == nil || !m.reminders.HasMessageReady() {
		return
	}
	if m.state.Drag.Active || m.state.Bubble.Visible || !m.atRest() {
		return
	}
	m.state.Velocity.Y = m.cfg.JumpVelocity
}

func (m *Machine) atRest() bool {
	eps := m.cfg.RestEpsilon
	return m.state.Position.Y >= m.bounds.Floor()-eps && math.Abs(m.state.Velocity.Y) < eps
}

func (m *Machine) handleEvents(snap Snapshot) {
	for _, e := range snap.Events {
		pos := snap.eventPos(e)
		switch e.Kind {
		case LeftPress:
			if m.cfg.Features.Drag && !m.state.Drag.Active && m.bounds.Contains(m.anchor(), pos) {
				m.startDrag(pos)
			}
		case LeftRelease:
			if m.state.Drag.Active {
				if e.HasPos {
					m.dragTo(e.Pos)
				}
				m.endDrag()
			}
		case RightPress:
			if m.cfg.Features.Bubble && m.bounds.Contains(m.anchor(), pos) {
				m.clickBubble()
			}
		}
	}
}

func (m *Machine) startDrag(cursor Point) {
	a := m.anchor()
	m.state.Drag = Drag{
		Active: true,
		Offset: Point{X: cursor.X - a.X, Y: cursor.Y - a.Y},
	}
	m.stop()
}

func (m *Machine) endDrag() {
	m.state.Drag = Drag{}
	m.state.IdleTimer = 0
	m.state.MovementTimer = 0
	if m.cfg.Features.Flight {
		m.state.Flight = Flight{Active: true}
	}
}

// clickBubble shows a waiting reminder, or toggles a random filler message.
func (m *Machine) clickBubble() {
	if m.reminders != nil && m.reminders.HasMessageReady() {
		if msg, ok := m.reminders.Message(); ok {
			m.showBubble(msg)
		}
	} else if m.state.Bubble.Visible {
		m.state.Bubble = Bubble{}
	} else if len(m.messages) > 0 {
		idx := int(float64(m.rng.Float32()) * float64(len(m.messages)))
		if idx >= len(m.messages) {
			idx = len(m.messages) - 1
		}
		m.showBubble(m.messages[idx])
	}

	m.stop()
	m.state.Flight = Flight{}
}

func (m *Machine) showBubble(text string) {
	m.state.Bubble = Bubble{Visible: true, Text: text}
}

// stop zeroes all motion and forces the idle behavior.
func (m *Machine) stop() {
	m.state.Velocity = Vec2{}
	m.state.TargetVelocity = 0
	m.enterIdle()
}

func (m *Machine) pollDrag(snap Snapshot) {
	if !m.state.Drag.Active {
		return
	}
	m.dragTo(snap.Cursor)
	if !snap.LeftDown {
		m.endDrag()
	}
}

// dragTo moves the anchor so the grab point stays under the cursor.
func (m *Machine) dragTo(cursor Point) {
	off := m.state.Drag.Offset
	m.state.Position = Vec2{
		X: float64(cursor.X - off.X),
		Y: float64(cursor.Y - off.Y),
	}
	m.state.Velocity = Vec2{}
	m.clampPosition()
}

func (m *Machine) updateBubble() {
	if !m.state.Bubble.Visible {
		return
	}
	m.state.Bubble.Elapsed++
	if m.state.Bubble.Elapsed >= m.cfg.BubbleTicks {
		m.state.Bubble = Bubble{}
	}
}

func (m *Machine) enterIdle() {
	m.state.Behavior = BehaviorIdle
	m.state.IdleTimer = 0
	m.state.MovementTimer = 0
	m.state.behaviorLimit = m.cfg.IdleMinTicks + m.roll(m.cfg.IdleSpreadTicks)
}

func (m *Machine) enterMoving() {
	m.state.Behavior = BehaviorMoving
	m.state.IdleTimer = 0
	m.state.MovementTimer = 0
	m.state.behaviorLimit = m.cfg.MoveMinTicks + m.roll(m.cfg.MoveSpreadTicks)

	speed := m.cfg.SpeedMin + float64(m.rng.Float32())*m.cfg.SpeedSpread
	if m.rng.Float32() > 0.5 {
		m.state.TargetVelocity = speed
	} else {
		m.state.TargetVelocity = -speed
	}
}

func (m *Machine) roll(spread int) int {
	return int(m.rng.Float32() * float32(spread))
}

func (m *Machine) updateBehavior() {
	switch m.state.Behavior {
	case BehaviorIdle:
		m.state.IdleTimer++
		if m.state.IdleTimer >= m.state.behaviorLimit {
			m.enterMoving()
		}
	case BehaviorMoving:
		m.state.MovementTimer++
		if m.state.MovementTimer >= m.state.behaviorLimit {
			m.state.TargetVelocity = 0
			m.enterIdle()
		}
	}
}

func (m *Machine) updatePhysics() {
	s := &m.state
	s.Velocity.X += (s.TargetVelocity - s.Velocity.X) * m.cfg.Smoothing
	s.Velocity.Y += m.cfg.Gravity
	s.Position.X += s.Velocity.X
	s.Position.Y += s.Velocity.Y

	if floor := m.bounds.Floor(); s.Position.Y >= floor {
		s.Position.Y = floor
		s.Velocity.Y *= -m.cfg.BounceDamping
	} else if s.Position.Y < 0 {
		s.Position.Y = 0
		s.Velocity.Y = 0
	}

	if s.Position.X <= 0 {
		s.Position.X = 0
		m.bounceWall()
	} else if right := m.bounds.MaxX(); s.Position.X >= right {
		s.Position.X = right
		m.bounceWall()
	}
}

func (m *Machine) bounceWall() {
	m.state.Velocity.X *= -m.cfg.WallDamping
	m.state.TargetVelocity *= -m.cfg.WallDamping
}

func (m *Machine) updateFlight() {
	f := &m.state.Flight
	if !f.Active {
		return
	}
	f.Elapsed++
	f.AnimTimer++
	if f.AnimTimer >= m.cfg.FlightFrameTicks {
		f.AnimTimer = 0
		f.Frame = (f.Frame + 1) % len(flightPoses)
	}
	if f.Elapsed >= m.cfg.FlightTicks {
		m.state.Flight = Flight{}
		m.resetBlink()
	}
}

func (m *Machine) updateBlink() {
	if !m.cfg.Features.Blink {
		return
	}
	if m.state.Behavior == BehaviorMoving {
		m.resetBlink()
		return
	}
	if m.state.Flight.Active {
		return
	}

	s := &m.state
	s.AnimationCheckTimer++
	if s.AnimationCheckTimer >= m.cfg.BlinkCheckTicks {
		s.AnimationCheckTimer = 0
		r := float64(m.rng.Float32())
		if !s.IsAnimating {
			if r < m.cfg.BlinkStartChance {
				s.IsAnimating = true
				s.AnimationTimer = 0
			}
		} else if r >= m.cfg.BlinkContinueChance {
			s.IsAnimating = false
			s.UseLowFrame = false
		}
	}

	if s.IsAnimating {
		s.AnimationTimer++
		if s.AnimationTimer >= m.cfg.BlinkFlipTicks {
			s.AnimationTimer = 0
			s.UseLowFrame = !s.UseLowFrame
		}
	}
}

func (m *Machine) resetBlink() {
	m.state.UseLowFrame = false
	m.state.IsAnimating = false
	m.state.AnimationTimer = 0
	m.state.AnimationCheckTimer = 0
}

// updateFacing has no hysteresis: a velocity hovering around the threshold
// flips the sprite every tick.
func (m *Machine) updateFacing() {
	if m.state.Velocity.X > m.cfg.FacingThreshold {
		m.state.Facing = FacingRight
	} else {
		m.state.Facing = FacingLeft
	}
}

func (m *Machine) clampPosition() {
	p := &m.state.Position
	p.X = math.Max(0, math.Min(p.X, m.bounds.MaxX()))
	p.Y = math.Max(0, math.Min(p.Y, m.bounds.Floor()))
}

func (m *Machine) anchor() Point {
	return Point{
		X: int(math.Round(m.state.Position.X)),
		Y: int(math.Round(m.state.Position.Y)),
	}
}
