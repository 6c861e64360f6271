package ui

import (
	"os"

	"rival-snake/config"
	"rival-snake/game"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Sounds plays the asset files for game cues. Missing files are skipped.
type Sounds struct {
	cues   map[game.Cue]rl.Sound
	loaded []rl.Sound
}

func NewSounds(assets config.Assets) *Sounds {
	rl.InitAudioDevice()
	s := &Sounds{cues: make(map[game.Cue]rl.Sound)}
	s.load(game.CueEat, assets.EatSound)
	s.load(game.CuePenalty, assets.WallSound)
	s.load(game.CueBonus, assets.BonusSound)

	// Fall back to the eat sound when there is no bonus asset.
	if _, ok := s.cues[game.CueBonus]; !ok {
		if eat, ok := s.cues[game.CueEat]; ok {
			s.cues[game.CueBonus] = eat
		}
	}
	return s
}

func (s *Sounds) load(cue game.Cue, path string) {
	if path == "" {
		return
	}
	if _, err := os.Stat(path); err != nil {
		return
	}
	sound := rl.LoadSound(path)
	s.cues[cue] = sound
	s.loaded = append(s.loaded, sound)
}

func (s *Sounds) Play(cue game.Cue) {
	if sound, ok := s.cues[cue]; ok {
		rl.PlaySound(sound)
	}
}

// Attach plays the matching cue for every event on bus.
func (s *Sounds) Attach(bus *game.EventBus) {
	bus.SubscribeAll(func(e game.Event) {
		s.Play(e.Cue())
	})
}

func (s *Sounds) Close() {
	for _, sound := range s.loaded {
		rl.UnloadSound(sound)
	}
	rl.CloseAudioDevice()
}
