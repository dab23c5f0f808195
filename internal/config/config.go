// Package config provides the parrot's tuning and startup settings.
// Values come from a TOML file layered over built-in defaults and are read
// once at startup.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"chosenoffset.com/parrotpet/internal/pet"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Duration is a time.Duration written as a string such as "30m" in TOML.
type Duration struct {
	time.Duration
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return fmt.Errorf("failed to parse duration %q: %w", string(b), err)
	}
	d.Duration = v
	return nil
}

// Config holds every setting of a session.
type Config struct {
	Physics   PhysicsConfig   `toml:"physics"`
	Behavior  BehaviorConfig  `toml:"behavior"`
	Animation AnimationConfig `toml:"animation"`
	Bubble    BubbleConfig    `toml:"bubble"`
	Reminders ReminderConfig  `toml:"reminders"`
	Features  FeatureConfig   `toml:"features"`
	Window    WindowConfig    `toml:"window"`
	Sprite    SpriteConfig    `toml:"sprite"`
}

// PhysicsConfig is the motion model.
type PhysicsConfig struct {
	Gravity         float64 `toml:"gravity"`
	BounceDamping   float64 `toml:"bounce_damping"`
	WallDamping     float64 `toml:"wall_damping"`
	Smoothing       float64 `toml:"smoothing"`
	JumpVelocity    float64 `toml:"jump_velocity"`
	FacingThreshold float64 `toml:"facing_threshold"`
	RestEpsilon     float64 `toml:"rest_epsilon"`
}

// BehaviorConfig controls wandering. Durations are in ticks.
type BehaviorConfig struct {
	IdleMinTicks    int     `toml:"idle_min_ticks"`
	IdleSpreadTicks int     `toml:"idle_spread_ticks"`
	MoveMinTicks    int     `toml:"move_min_ticks"`
	MoveSpreadTicks int     `toml:"move_spread_ticks"`
	SpeedMin        float64 `toml:"speed_min"`
	SpeedSpread     float64 `toml:"speed_spread"`
}

// AnimationConfig controls the flight and blink animations.
type AnimationConfig struct {
	FlightTicks         int     `toml:"flight_ticks"`
	FlightFrameTicks    int     `toml:"flight_frame_ticks"`
	BlinkCheckTicks     int     `toml:"blink_check_ticks"`
	BlinkFlipTicks      int     `toml:"blink_flip_ticks"`
	BlinkStartChance    float64 `toml:"blink_start_chance"`
	BlinkContinueChance float64 `toml:"blink_continue_chance"`
}

// BubbleConfig controls the speech bubble.
type BubbleConfig struct {
	DurationTicks int     `toml:"duration_ticks"`
	Width         int     `toml:"width"`
	FontSize      float64 `toml:"font_size"`
	Padding       int     `toml:"padding"`
}

// ReminderConfig points at the text files and sets the reminder period.
type ReminderConfig struct {
	Interval     Duration `toml:"interval"`
	File         string   `toml:"file"`
	MessagesFile string   `toml:"messages_file"`
}

// FeatureConfig switches optional behavior.
type FeatureConfig struct {
	Drag         bool `toml:"drag"`
	Bubble       bool `toml:"bubble"`
	Flight       bool `toml:"flight"`
	Blink        bool `toml:"blink"`
	ClickThrough bool `toml:"click_through"`
	Sound        bool `toml:"sound"`
}

// WindowConfig controls the overlay window.
type WindowConfig struct {
	TPS    int     `toml:"tps"`
	StartX float64 `toml:"start_x"`
	StartY float64 `toml:"start_y"`
}

// SpriteConfig locates the sprite atlas.
type SpriteConfig struct {
	Atlas string  `toml:"atlas"`
	Scale float64 `toml:"scale"`
}

// DefaultConfig returns the stock settings.
func DefaultConfig() *Config {
	p := pet.DefaultConfig()
	return &Config{
		Physics: PhysicsConfig{
			Gravity:         p.Gravity,
			BounceDamping:   p.BounceDamping,
			WallDamping:     p.WallDamping,
			Smoothing:       p.Smoothing,
			JumpVelocity:    p.JumpVelocity,
			FacingThreshold: p.FacingThreshold,
			RestEpsilon:     p.RestEpsilon,
		},
		Behavior: BehaviorConfig{
			IdleMinTicks:    p.IdleMinTicks,
			IdleSpreadTicks: p.IdleSpreadTicks,
			MoveMinTicks:    p.MoveMinTicks,
			MoveSpreadTicks: p.MoveSpreadTicks,
			SpeedMin:        p.SpeedMin,
			SpeedSpread:     p.SpeedSpread,
		},
		Animation: AnimationConfig{
			FlightTicks:         p.FlightTicks,
			FlightFrameTicks:    p.FlightFrameTicks,
			BlinkCheckTicks:     p.BlinkCheckTicks,
			BlinkFlipTicks:      p.BlinkFlipTicks,
			BlinkStartChance:    p.BlinkStartChance,
			BlinkContinueChance: p.BlinkContinueChance,
		},
		Bubble: BubbleConfig{
			DurationTicks: p.BubbleTicks,
			Width:         220,
			FontSize:      14,
			Padding:       8,
		},
		Reminders: ReminderConfig{
			Interval:     Duration{30 * time.Minute},
			File:         "reminders.txt",
			MessagesFile: "messages.txt",
		},
		Features: FeatureConfig{
			Drag:   true,
			Bubble: true,
			Flight: true,
			Blink:  true,
			Sound:  true,
		},
		Window: WindowConfig{
			TPS:    60,
			StartX: p.StartX,
			StartY: p.StartY,
		},
		Sprite: SpriteConfig{
			Atlas: "assets/parrot.json",
			Scale: 0.25,
		},
	}
}

// Load reads a TOML config file over the defaults. A missing file yields the
// defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg as TOML.
func Save(path string, cfg *Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Basic turns off every optional feature, leaving the pet to wander, fall
// and bounce. The window becomes click-through since nothing reacts to the
// mouse.
func (c *Config) Basic() {
	c.Features = FeatureConfig{ClickThrough: true}
}

// DeliversReminders reports whether a due reminder can ever be read. That
// takes a right-click on the parrot, so the bubble has to be on and the
// window has to receive the mouse.
func (c *Config) DeliversReminders() bool {
	return c.Features.Bubble && !c.Features.ClickThrough
}

// Validate checks that the settings describe a runnable pet.
func (c *Config) Validate() error {
	var errs []error
	positive := map[string]int{
		"behavior.idle_min_ticks":      c.Behavior.IdleMinTicks,
		"behavior.move_min_ticks":      c.Behavior.MoveMinTicks,
		"animation.flight_ticks":       c.Animation.FlightTicks,
		"animation.flight_frame_ticks": c.Animation.FlightFrameTicks,
		"animation.blink_check_ticks":  c.Animation.BlinkCheckTicks,
		"animation.blink_flip_ticks":   c.Animation.BlinkFlipTicks,
		"bubble.duration_ticks":        c.Bubble.DurationTicks,
		"bubble.width":                 c.Bubble.Width,
		"window.tps":                   c.Window.TPS,
	}
	for name, v := range positive {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%w: %s must be positive, got %d", ErrInvalidConfig, name, v))
		}
	}
	if c.Behavior.IdleSpreadTicks < 0 || c.Behavior.MoveSpreadTicks < 0 {
		errs = append(errs, fmt.Errorf("%w: behavior spreads must not be negative", ErrInvalidConfig))
	}

	damping := map[string]float64{
		"physics.bounce_damping": c.Physics.BounceDamping,
		"physics.wall_damping":   c.Physics.WallDamping,
		"physics.smoothing":      c.Physics.Smoothing,
	}
	for name, v := range damping {
		if v <= 0 || v > 1 {
			errs = append(errs, fmt.Errorf("%w: %s must be in (0, 1], got %v", ErrInvalidConfig, name, v))
		}
	}

	if c.Sprite.Scale <= 0 {
		errs = append(errs, fmt.Errorf("%w: sprite.scale must be positive, got %v", ErrInvalidConfig, c.Sprite.Scale))
	}
	if c.Sprite.Atlas == "" {
		errs = append(errs, fmt.Errorf("%w: sprite.atlas is empty", ErrInvalidConfig))
	}
	if c.Reminders.File == "" {
		errs = append(errs, fmt.Errorf("%w: reminders.file is empty", ErrInvalidConfig))
	}
	if c.Reminders.MessagesFile == "" {
		errs = append(errs, fmt.Errorf("%w: reminders.messages_file is empty", ErrInvalidConfig))
	}
	if c.Reminders.Interval.Duration <= 0 {
		errs = append(errs, fmt.Errorf("%w: reminders.interval must be positive", ErrInvalidConfig))
	}

	if c.Bubble.FontSize <= 0 {
		errs = append(errs, fmt.Errorf("%w: bubble.font_size must be positive, got %v", ErrInvalidConfig, c.Bubble.FontSize))
	}
	if c.Bubble.Padding < 0 {
		errs = append(errs, fmt.Errorf("%w: bubble.padding must not be negative, got %d", ErrInvalidConfig, c.Bubble.Padding))
	}
	chances := map[string]float64{
		"animation.blink_start_chance":    c.Animation.BlinkStartChance,
		"animation.blink_continue_chance": c.Animation.BlinkContinueChance,
	}
	for name, v := range chances {
		if v < 0 || v > 1 {
			errs = append(errs, fmt.Errorf("%w: %s must be in [0, 1], got %v", ErrInvalidConfig, name, v))
		}
	}
	return errors.Join(errs...)
}

// PetConfig converts the settings into state machine tuning.
func (c *Config) PetConfig() pet.Config {
	return pet.Config{
		Gravity:         c.Physics.Gravity,
		BounceDamping:   c.Physics.BounceDamping,
		WallDamping:     c.Physics.WallDamping,
		Smoothing:       c.Physics.Smoothing,
		JumpVelocity:    c.Physics.JumpVelocity,
		FacingThreshold: c.Physics.FacingThreshold,
		RestEpsilon:     c.Physics.RestEpsilon,

		IdleMinTicks:    c.Behavior.IdleMinTicks,
		IdleSpreadTicks: c.Behavior.IdleSpreadTicks,
		MoveMinTicks:    c.Behavior.MoveMinTicks,
		MoveSpreadTicks: c.Behavior.MoveSpreadTicks,
		SpeedMin:        c.Behavior.SpeedMin,
		SpeedSpread:     c.Behavior.SpeedSpread,

		BubbleTicks: c.Bubble.DurationTicks,

		FlightTicks:      c.Animation.FlightTicks,
		FlightFrameTicks: c.Animation.FlightFrameTicks,

		BlinkCheckTicks:     c.Animation.BlinkCheckTicks,
		BlinkFlipTicks:      c.Animation.BlinkFlipTicks,
		BlinkStartChance:    c.Animation.BlinkStartChance,
		BlinkContinueChance: c.Animation.BlinkContinueChance,

		StartX: c.Window.StartX,
		StartY: c.Window.StartY,

		Features: pet.Features{
			Drag:   c.Features.Drag,
			Bubble: c.Features.Bubble,
			Flight: c.Features.Flight,
			Blink:  c.Features.Blink,
		},
	}
}

// Overrides are command-line values layered over the file. Zero values leave
// the file setting alone.
type Overrides struct {
	Reminders    string
	Messages     string
	Atlas        string
	Scale        float64
	Interval     time.Duration
	Basic        bool
	ClickThrough bool
	Mute         bool
}

// Files keeps only the file locations of o. gen-assets persists these and
// nothing else, so session flags like --basic never end up in the file.
func (o Overrides) Files() Overrides {
	return Overrides{Reminders: o.Reminders, Messages: o.Messages, Atlas: o.Atlas}
}

// Apply layers o over c. Basic is applied first so that ClickThrough and Mute
// still refine it.
func (c *Config) Apply(o Overrides) {
	if o.Basic {
		c.Basic()
	}
	if o.Reminders != "" {
		c.Reminders.File = o.Reminders
	}
	if o.Messages != "" {
		c.Reminders.MessagesFile = o.Messages
	}
	if o.Atlas != "" {
		c.Sprite.Atlas = o.Atlas
	}
	if o.Scale != 0 {
		c.Sprite.Scale = o.Scale
	}
	if o.Interval != 0 {
		c.Reminders.Interval = Duration{o.Interval}
	}
	if o.ClickThrough {
		c.Features.ClickThrough = true
	}
	if o.Mute {
		c.Features.Sound = false
	}
}
