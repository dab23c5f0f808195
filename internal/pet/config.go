package pet

// Features switches optional behavior on and off. With every flag false the
// pet only wanders, falls, bounces and turns around.
type Features struct {
	Drag   bool
	Bubble bool
	Flight bool
	Blink  bool
}

// AllFeatures enables everything.
func AllFeatures() Features {
	return Features{Drag: true, Bubble: true, Flight: true, Blink: true}
}

// Config holds the tuning constants of the state machine. Durations are in
// ticks.
type Config struct {
	Gravity         float64
	BounceDamping   float64 // floor: velocity.y *= -BounceDamping
	WallDamping     float64 // walls: velocity.x *= -WallDamping
	Smoothing       float64 // per-tick approach factor towards the target velocity
	JumpVelocity    float64 // reminder attention jump
	FacingThreshold float64
	RestEpsilon     float64 // max |velocity.y| and floor gap that count as resting

	IdleMinTicks    int
	IdleSpreadTicks int
	MoveMinTicks    int
	MoveSpreadTicks int
	SpeedMin        float64
	SpeedSpread     float64

	BubbleTicks int

	FlightTicks      int
	FlightFrameTicks int

	BlinkCheckTicks     int
	BlinkFlipTicks      int
	BlinkStartChance    float64
	BlinkContinueChance float64

	StartX, StartY float64

	Features Features
}

// DefaultConfig returns the stock parrot tuning.
func DefaultConfig() Config {
	return Config{
		Gravity:         0.5,
		BounceDamping:   0.7,
		WallDamping:     0.8,
		Smoothing:       0.1,
		JumpVelocity:    -12.0,
		FacingThreshold: 0.1,
		RestEpsilon:     1.0,

		IdleMinTicks:    180,
		IdleSpreadTicks: 600,
		MoveMinTicks:    30,
		MoveSpreadTicks: 90,
		SpeedMin:        0.5,
		SpeedSpread:     2.5,

		BubbleTicks: 300,

		FlightTicks:      90,
		FlightFrameTicks: 8,

		BlinkCheckTicks:     60,
		BlinkFlipTicks:      30,
		BlinkStartChance:    0.1,
		BlinkContinueChance: 0.7,

		StartX: 300,
		StartY: 300,

		Features: AllFeatures(),
	}
}

// Bounds is the screen and sprite geometry used for hit-testing and
// collisions. It is fixed for the session.
type Bounds struct {
	ScreenWidth  int
	ScreenHeight int
	SpriteWidth  int
	SpriteHeight int
}

// MaxX is the right-most anchor position.
func (b Bounds) MaxX() float64 {
	return float64(max(b.ScreenWidth-b.SpriteWidth, 0))
}

// Floor is the lowest anchor position.
func (b Bounds) Floor() float64 {
	return float64(max(b.ScreenHeight-b.SpriteHeight, 0))
}

// Contains reports whether p lies inside the sprite box anchored at anchor.
func (b Bounds) Contains(anchor, p Point) bool {
	return p.X >= anchor.X && p.X < anchor.X+b.SpriteWidth &&
		p.Y >= anchor.Y && p.Y < anchor.Y+b.SpriteHeight
}
