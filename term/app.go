package term

import (
	"time"

	"rival-snake/config"
	"rival-snake/game"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
)

type App struct {
	screen   tcell.Screen
	renderer *Renderer
	game     *game.Game
	audio    *Audio
}

// NewApp initialises the terminal. Audio is optional; a nil audio plays nothing.
func NewApp(g *game.Game, cfg config.Config, audio *Audio) (*App, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, errors.Wrap(err, "open terminal")
	}
	if err := s.Init(); err != nil {
		return nil, errors.Wrap(err, "init terminal")
	}
	return newApp(s, g, cfg, audio), nil
}

func newApp(s tcell.Screen, g *game.Game, cfg config.Config, audio *Audio) *App {
	s.HideCursor()
	s.Clear()
	if audio != nil {
		audio.Attach(g.Events)
	}
	return &App{
		screen:   s,
		renderer: NewRenderer(s, ThemeFromPalette(cfg.Palette)),
		game:     g,
		audio:    audio,
	}
}

func frameInterval(fps int) time.Duration {
	if fps <= 0 {
		fps = 1
	}
	return time.Second / time.Duration(fps)
}

// pollEvents forwards screen events until the screen is finalised or done
// is closed.
func pollEvents(s tcell.Screen, events chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := s.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

// Run drives the game until the player quits. Key presses are queued and
// handed to the game once per frame.
func (a *App) Run() error {
	defer a.screen.Fini()

	events := make(chan tcell.Event, 32)
	done := make(chan struct{})
	defer close(done)
	go pollEvents(a.screen, events, done)

	fps := a.game.FPS()
	ticker := time.NewTicker(frameInterval(fps))
	defer ticker.Stop()

	var pending []game.Command
	a.renderer.Draw(a.game)
	for {
		select {
		case ev := <-events:
			switch e := ev.(type) {
			case *tcell.EventResize:
				a.screen.Sync()
			case *tcell.EventKey:
				cmd, quit := KeyCommand(e)
				if quit {
					return nil
				}
				pending = append(pending, cmd)
			}
		case now := <-ticker.C:
			quit, err := a.game.Frame(now, pending)
			pending = pending[:0]
			if err != nil {
				return err
			}
			if quit {
				return nil
			}
			a.renderer.Draw(a.game)

			if next := a.game.FPS(); next != fps {
				fps = next
				ticker.Reset(frameInterval(fps))
			}
		}
	}
}
