package game

// Sound names a sound-effect trigger emitted by a session. The presentation
// layer decides how each one is played.
type Sound int

const (
	SoundRelic               Sound = iota // relic collected
	SoundTeleportItem                     // player picked up a redirect item
	SoundMonsterTeleportItem              // stalker picked up a teleport item
	SoundButton                           // restart, mode switch, teleports
	SoundHealthLoss                       // player was hit
	SoundWin                              // all relics found
	SoundGameOver                         // health ran out
	soundCount                            // sentinel
)

func (s Sound) String() string {
	switch s {
	case SoundRelic:
		return "relic"
	case SoundTeleportItem:
		return "teleportItem"
	case SoundMonsterTeleportItem:
		return "monsterTeleportItem"
	case SoundButton:
		return "button"
	case SoundHealthLoss:
		return "healthLoss"
	case SoundWin:
		return "win"
	case SoundGameOver:
		return "gameOver"
	default:
		return "unknown"
	}
}

// AllSounds lists every trigger in declaration order.
func AllSounds() []Sound {
	out := make([]Sound, 0, soundCount)
	for s := Sound(0); s < soundCount; s++ {
		out = append(out, s)
	}
	return out
}
