package ui

import (
	"github.com/Garsondee/Relic-Stalker/internal/game"
	"github.com/Garsondee/Relic-Stalker/internal/sfx"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/sirupsen/logrus"
)

// soundBoard plays pre-rendered effect clips. One player per trigger is
// rewound on replay, so a repeated trigger restarts its clip.
type soundBoard struct {
	ctx     *audio.Context
	bank    *sfx.Bank
	players map[game.Sound]*audio.Player
	log     *logrus.Entry
}

func newSoundBoard(log *logrus.Entry) *soundBoard {
	return &soundBoard{
		ctx:     audio.NewContext(sfx.SampleRate),
		bank:    sfx.NewBank(),
		players: make(map[game.Sound]*audio.Player),
		log:     log,
	}
}

func (b *soundBoard) play(s game.Sound) {
	p, ok := b.players[s]
	if !ok {
		pcm := b.bank.PCM(s)
		if pcm == nil {
			b.log.WithField("sound", s).Warn("no clip for sound")
			return
		}
		p = b.ctx.NewPlayerFromBytes(pcm)
		b.players[s] = p
	}
	if err := p.Rewind(); err != nil {
		b.log.WithError(err).WithField("sound", s).Warn("rewind failed")
		return
	}
	p.Play()
}
