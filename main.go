package main

import (
	"bytes"
	"flag"
	"log"
	"os"

	"rival-snake/config"
	"rival-snake/game"
	"rival-snake/term"
	"rival-snake/ui"

	"github.com/fatih/color"
)

func newLogger() *log.Logger {
	return log.New(color.Output, color.CyanString("[snake] "), log.LstdFlags)
}

// logEvents reports gameplay events. Eat events are frequent, so only
// milestones and penalties are logged.
func logEvents(logger *log.Logger, bus *game.EventBus) {
	bus.Subscribe(game.EventPenalty, func(e game.Event) {
		logger.Printf("%s at %v, hit %s, lives %d", color.RedString("penalty"), e.Pos, e.Cause, e.Lives)
	})
	bus.Subscribe(game.EventBonus, func(e game.Event) {
		logger.Printf("%s, lives %d", color.GreenString("bonus food"), e.Lives)
	})
	bus.Subscribe(game.EventSpecialSpawned, func(e game.Event) {
		logger.Printf("special food at %v", e.Pos)
	})
	bus.Subscribe(game.EventSpeedUp, func(e game.Event) {
		logger.Printf("score %d, speed up to %d fps", e.Score, e.FPS)
	})
	bus.Subscribe(game.EventGameOver, func(e game.Event) {
		logger.Printf("%s with score %d", color.New(color.FgRed, color.Bold).Sprint("game over"), e.Score)
	})
	bus.Subscribe(game.EventRestart, func(game.Event) {
		logger.Println("new game")
	})
}

func run(cfg config.Config, logger *log.Logger) error {
	g, err := game.NewGame(cfg.GameOptions())
	if err != nil {
		return err
	}
	logEvents(logger, g.Events)
	defer logSummary(logger, g.Stats)

	logger.Printf("session %s, %dx%d grid, %s frontend", g.UUID, g.Grid.Width, g.Grid.Height, cfg.Display.Frontend)

	if cfg.Display.Frontend == config.FrontendTerm {
		// The terminal owns the tty while the game runs; hold logs until it exits.
		var held bytes.Buffer
		logger.SetOutput(&held)
		defer func() {
			logger.SetOutput(color.Output)
			held.WriteTo(color.Output)
		}()

		var audio *term.Audio
		if !cfg.Assets.Mute {
			if audio, err = term.NewAudio(); err != nil {
				logger.Printf("%s: %v", color.YellowString("sound disabled"), err)
				audio = nil
			}
		}
		app, err := term.NewApp(g, cfg, audio)
		if err != nil {
			return err
		}
		return app.Run()
	}
	return ui.Run(g, cfg)
}

func main() {
	logger := newLogger()

	cfg, err := config.Load(os.Args[1:])
	if err == flag.ErrHelp {
		return
	}
	if err != nil {
		color.Red("config: %v", err)
		os.Exit(2)
	}

	color.Yellow("%s: arrows steer, P pauses, R restarts after game over", cfg.Display.Title)

	if err := run(cfg, logger); err != nil {
		logger.Printf("%s: %+v", color.RedString("error"), err)
		os.Exit(1)
	}
}
