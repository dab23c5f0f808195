package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"chosenoffset.com/parrotpet/internal/assets"
	"chosenoffset.com/parrotpet/internal/audio"
	"chosenoffset.com/parrotpet/internal/game"
	"chosenoffset.com/parrotpet/internal/pet"
	"chosenoffset.com/parrotpet/internal/reminder"
	"chosenoffset.com/parrotpet/internal/render"
	ebitenrender "chosenoffset.com/parrotpet/internal/render/ebiten"
	"chosenoffset.com/parrotpet/internal/rng"
	"chosenoffset.com/parrotpet/internal/sprite"
	"chosenoffset.com/parrotpet/internal/ui/bubble"
)

const chirpVolume = 0.5

func newRunCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Open the parrot window (the default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts)
		},
	}
}

func run(ctx context.Context, opts *options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	log.Info("Scanning assets")
	manifest, err := assets.Scan(assetPaths(cfg))
	if err != nil {
		if errors.Is(err, assets.ErrMissingAsset) {
			log.Warn("Run 'parrotpet gen-assets' to create starter files")
		}
		return err
	}

	reminders, err := reminder.LoadLines(cfg.Reminders.File)
	if err != nil {
		return err
	}
	messages, err := reminder.LoadLines(cfg.Reminders.MessagesFile)
	if err != nil {
		return err
	}
	// Initialize the renderer backend (ebiten)
	renderer, err := ebitenrender.NewRenderer()
	if err != nil {
		return err
	}
	inputMgr := ebitenrender.NewInputManager()
	loader := ebitenrender.NewResourceLoader()
	engine := ebitenrender.NewEngine()

	sprites, err := sprite.Load(manifest.Atlas, loader, cfg.Sprite.Scale)
	if err != nil {
		return err
	}
	log.Info("Loaded sprites", "atlas", sprites.Name(), "path", cfg.Sprite.Atlas)

	screenW, screenH := engine.ScreenSize()
	bounds := sprites.Bounds(screenW, screenH)

	var src pet.Source = rng.New()
	if opts.seedSet {
		src = rng.NewSeeded(opts.seed)
	}

	var (
		petReminders pet.Reminders
		gameSchedule game.Scheduler
	)
	if cfg.DeliversReminders() {
		scheduler := reminder.NewScheduler(reminders, cfg.Reminders.Interval.Duration, time.Now())
		petReminders, gameSchedule = scheduler, scheduler
		log.Info("Loaded reminders", "count", scheduler.Len(), "messages", len(messages), "interval", scheduler.Interval())
	} else {
		log.Info("Reminders off, the bubble cannot be opened", "bubble", cfg.Features.Bubble, "click_through", cfg.Features.ClickThrough)
	}
	machine := pet.NewMachine(cfg.PetConfig(), bounds, src, petReminders, messages)

	var bub *bubble.Bubble
	if cfg.Features.Bubble {
		style := bubble.DefaultStyle()
		style.Width = cfg.Bubble.Width
		style.FontSize = cfg.Bubble.FontSize
		style.Padding = cfg.Bubble.Padding
		bub = bubble.New(renderer, style, cfg.Window.TPS)
	}

	var chirper game.Chirper
	if cfg.Features.Sound {
		c := audio.NewChirper(chirpVolume)
		if err := c.Init(); err != nil {
			log.Warn("Audio unavailable, reminders will be silent", "err", err)
		} else {
			defer c.Close()
			chirper = c
		}
	}

	manager := game.NewManager(ctx, game.Config{
		Pet:       machine,
		Scheduler: gameSchedule,
		Chirper:   chirper,
		Sprites:   sprites,
		Bubble:    bub,
		Input:     inputMgr,
		Window:    engine,
		Logger:    log.Default(),
	})

	layout := manager.WindowLayout()
	x, y := layout.WindowOrigin(machine.View().Position)

	log.Info("Starting parrot",
		"screen", fmt.Sprintf("%dx%d", screenW, screenH),
		"window", fmt.Sprintf("%dx%d", layout.Width, layout.Height),
		"click_through", cfg.Features.ClickThrough)

	err = engine.RunGame(manager, render.WindowOptions{
		Title:          "Parrot",
		Width:          layout.Width,
		Height:         layout.Height,
		X:              x,
		Y:              y,
		TPS:            cfg.Window.TPS,
		Floating:       true,
		Transparent:    true,
		SkipTaskbar:    true,
		ClickThrough:   cfg.Features.ClickThrough,
		RunUnfocused:   true,
		ClearEachFrame: false,
	})
	if err != nil {
		return fmt.Errorf("failed to run game loop: %w", err)
	}
	log.Info("Parrot flew away", "ticks", manager.Ticks())
	return nil
}
