package ui

import (
	"time"

	"rival-snake/config"
	"rival-snake/game"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Run opens the window and drives g until the window closes or the player
// quits from the game-over screen.
func Run(g *game.Game, cfg config.Config) error {
	width, height := newLayout(cfg).windowSize()
	rl.InitWindow(width, height, cfg.Display.Title)
	defer rl.CloseWindow()

	fps := g.FPS()
	rl.SetTargetFPS(int32(fps))

	renderer := NewRenderer(cfg)
	defer renderer.Unload()

	if !cfg.Assets.Mute {
		sounds := NewSounds(cfg.Assets)
		defer sounds.Close()
		sounds.Attach(g.Events)
	}

	for !rl.WindowShouldClose() {
		cmds := PollCommands(rl.IsKeyPressed, rl.GetKeyPressed)
		quit, err := g.Frame(time.Now(), cmds)
		if err != nil {
			return err
		}
		if quit {
			return nil
		}

		if next := g.FPS(); next != fps {
			fps = next
			rl.SetTargetFPS(int32(fps))
		}
		renderer.Draw(g)
	}
	return nil
}
