package term

import (
	"bytes"
	"math"
	"time"

	"rival-snake/game"

	"github.com/hajimehoshi/oto/v2"
	"github.com/pkg/errors"
)

const (
	sampleRate   = 44100
	channelCount = 2
	frameBytes   = 4 * channelCount
)

// Audio plays short synthesized cues. Terminals have no asset pipeline, so
// the sounds are generated once at startup.
type Audio struct {
	ctx   *oto.Context
	ready chan struct{}
	cues  map[game.Cue][]byte
}

func NewAudio() (*Audio, error) {
	ctx, ready, err := oto.NewContext(sampleRate, channelCount, oto.FormatFloat32LE)
	if err != nil {
		return nil, errors.Wrap(err, "open audio device")
	}
	return &Audio{
		ctx:   ctx,
		ready: ready,
		cues: map[game.Cue][]byte{
			game.CueEat:     eatCue(),
			game.CueBonus:   bonusCue(),
			game.CuePenalty: penaltyCue(),
		},
	}, nil
}

// Play starts the cue in the background. Cues requested before the device
// is ready are dropped.
func (a *Audio) Play(c game.Cue) {
	samples, ok := a.cues[c]
	if !ok {
		return
	}
	select {
	case <-a.ready:
	default:
		return
	}
	go func() {
		player := a.ctx.NewPlayer(bytes.NewReader(samples))
		player.Play()
		for player.IsPlaying() {
			time.Sleep(10 * time.Millisecond)
		}
		player.Close()
	}()
}

// Attach plays the matching cue for every event on bus.
func (a *Audio) Attach(bus *game.EventBus) {
	bus.SubscribeAll(func(e game.Event) {
		a.Play(e.Cue())
	})
}

func putFrame(buf []byte, i int, sample float64) {
	v := math.Float32bits(float32(sample))
	for ch := 0; ch < channelCount; ch++ {
		off := i*frameBytes + ch*4
		buf[off] = byte(v)
		buf[off+1] = byte(v >> 8)
		buf[off+2] = byte(v >> 16)
		buf[off+3] = byte(v >> 24)
	}
}

// decay is a linear attack followed by an exponential fall.
func decay(progress, attack, rate float64) float64 {
	if progress < attack {
		return progress / attack
	}
	return math.Exp(-rate * (progress - attack))
}

// sweep renders a sine tone gliding from f0 to f1 over dur seconds.
func sweep(dur, f0, f1, gain float64) []byte {
	n := int(dur * sampleRate)
	buf := make([]byte, n*frameBytes)
	phase := 0.0
	for i := 0; i < n; i++ {
		p := float64(i) / float64(n)
		freq := f0 + (f1-f0)*p
		phase += 2 * math.Pi * freq / sampleRate
		putFrame(buf, i, math.Sin(phase)*decay(p, 0.02, 5)*gain)
	}
	return buf
}

func eatCue() []byte {
	return sweep(0.08, 520, 1100, 0.45)
}

func penaltyCue() []byte {
	return sweep(0.22, 300, 90, 0.55)
}

// bonusCue is a rising major arpeggio.
func bonusCue() []byte {
	notes := []float64{523.25, 659.25, 783.99, 1046.5}
	var out []byte
	for _, f := range notes {
		out = append(out, sweep(0.07, f, f, 0.35)...)
	}
	return out
}
