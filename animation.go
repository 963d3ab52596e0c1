package lightscene

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Oscillator eases a value back and forth between two bounds forever. The demo uses it to pulse light colors and bob
// nodes; it's meant to be advanced from a node's OnUpdate hook.
type Oscillator struct {
	from, to float32
	duration float32 // Seconds for one leg (from -> to)
	easing   ease.TweenFunc
	tween    *gween.Tween
	forward  bool
	elapsed  float32 // Seconds into the current leg
	value    float32
}

// NewOscillator returns an Oscillator starting at from, reaching to after duration seconds, and easing back again.
// A nil easing function means ease.InOutSine; a non-positive duration is treated as one second.
func NewOscillator(from, to, duration float32, easing ease.TweenFunc) *Oscillator {
	if easing == nil {
		easing = ease.InOutSine
	}
	if duration <= 0 {
		duration = 1
	}
	osc := &Oscillator{
		from:     from,
		to:       to,
		duration: duration,
		easing:   easing,
		forward:  true,
		value:    from,
	}
	osc.tween = gween.New(from, to, duration, easing)
	return osc
}

// Update advances the oscillator by dt seconds and returns the new value. Time left over when a leg finishes
// carries over into the next one.
func (osc *Oscillator) Update(dt float32) float32 {

	for dt > 0 {

		step := dt
		if remaining := osc.duration - osc.elapsed; step > remaining {
			step = remaining
		}

		osc.value, _ = osc.tween.Update(step)
		osc.elapsed += step
		dt -= step

		if osc.elapsed >= osc.duration {
			osc.forward = !osc.forward
			osc.elapsed = 0
			if osc.forward {
				osc.tween = gween.New(osc.from, osc.to, osc.duration, osc.easing)
			} else {
				osc.tween = gween.New(osc.to, osc.from, osc.duration, osc.easing)
			}
		}

	}

	return osc.value

}

// Value returns the oscillator's current value.
func (osc *Oscillator) Value() float32 {
	return osc.value
}

// Reset puts the oscillator back at its starting bound.
func (osc *Oscillator) Reset() {
	osc.forward = true
	osc.elapsed = 0
	osc.value = osc.from
	osc.tween = gween.New(osc.from, osc.to, osc.duration, osc.easing)
}
