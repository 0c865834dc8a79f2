package ui

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// tweenAction is what runs while a tween advances and once it completes.
type tweenAction struct {
	name     string
	onChange func(float32)
	onFinish func()
}

// tweens drives cosmetic animations. Each named slot holds at most one
// tween so restarting a banner replaces the running fade.
type tweens struct {
	active map[*gween.Tween]tweenAction
	byName map[string]*gween.Tween
	values map[string]float32
}

func newTweens() *tweens {
	return &tweens{
		active: make(map[*gween.Tween]tweenAction),
		byName: make(map[string]*gween.Tween),
		values: make(map[string]float32),
	}
}

// start begins (or restarts) the named tween.
func (t *tweens) start(name string, from, to, seconds float32, fn ease.TweenFunc, onFinish func()) {
	if old, ok := t.byName[name]; ok {
		delete(t.active, old)
	}
	tw := gween.New(from, to, seconds, fn)
	t.byName[name] = tw
	t.values[name] = from
	t.active[tw] = tweenAction{
		name:     name,
		onChange: func(v float32) { t.values[name] = v },
		onFinish: onFinish,
	}
}

// update advances every running tween by dt seconds.
func (t *tweens) update(dt float32) {
	for tw, a := range t.active {
		curr, finished := tw.Update(dt)
		if a.onChange != nil {
			a.onChange(curr)
		}
		if finished {
			delete(t.active, tw)
			if t.byName[a.name] == tw {
				delete(t.byName, a.name)
			}
			if a.onFinish != nil {
				a.onFinish()
			}
		}
	}
}

// value returns the last value of a tween; finished tweens keep their end value.
func (t *tweens) value(name string) float32 {
	return t.values[name]
}

// running reports whether the named tween is still advancing.
func (t *tweens) running(name string) bool {
	_, ok := t.byName[name]
	return ok
}

func (t *tweens) stop(name string) {
	if tw, ok := t.byName[name]; ok {
		delete(t.active, tw)
		delete(t.byName, name)
	}
}

func (t *tweens) clear() {
	clear(t.active)
	clear(t.byName)
	clear(t.values)
}

// pulse keeps a looping 0.8..1.0 breathing value under name.
func (t *tweens) pulse(name string) {
	var up, down func()
	up = func() { t.start(name, 0.8, 1.0, 0.3, ease.InOutSine, down) }
	down = func() { t.start(name, 1.0, 0.8, 0.3, ease.InOutSine, up) }
	up()
}
