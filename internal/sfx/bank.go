package sfx

import "github.com/Garsondee/Relic-Stalker/internal/game"

var tones = map[game.Sound]Tone{
	game.SoundRelic:               {Freq: 800, Wave: Sine, Duration: 0.1},
	game.SoundTeleportItem:        {Freq: 1200, Wave: Square, Duration: 0.15},
	game.SoundMonsterTeleportItem: {Freq: 600, Wave: Sawtooth, Duration: 0.2},
	game.SoundButton:              {Freq: 400, Wave: Triangle, Duration: 0.1},
	game.SoundHealthLoss:          {Freq: 200, Wave: Sawtooth, Duration: 0.3},
	game.SoundWin:                 {Freq: 523, Wave: Sine, Duration: 0.5},
	game.SoundGameOver:            {Freq: 150, Wave: Sawtooth, Duration: 1.0},
}

// ToneFor reports the tone bound to a sound trigger.
func ToneFor(s game.Sound) (Tone, bool) {
	t, ok := tones[s]
	return t, ok
}

// Bank holds pre-rendered PCM for every trigger so playback never
// synthesizes on the game loop.
type Bank struct {
	pcm map[game.Sound][]byte
}

func NewBank() *Bank {
	b := &Bank{pcm: make(map[game.Sound][]byte, len(tones))}
	for s, t := range tones {
		b.pcm[s] = t.PCM()
	}
	return b
}

// PCM returns the rendered clip, or nil for an unbound trigger.
func (b *Bank) PCM(s game.Sound) []byte {
	return b.pcm[s]
}
