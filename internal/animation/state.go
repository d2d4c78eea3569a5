package animation

import "math"

// State is a playback cursor into one animation. Time is in ticks.
type State struct {
	Armature  *Armature
	Animation *Animation
	Time      float32
	Speed     float32
	Loop      bool
}

func NewState(arm *Armature, anim *Animation, loop bool) *State {
	return &State{Armature: arm, Animation: anim, Speed: 1, Loop: loop}
}

// Advance moves the cursor by seconds of wall time. Looping states wrap around the
// duration; the others stop at either end.
func (s *State) Advance(seconds float32) {
	if s.Animation == nil {
		return
	}
	s.Time += seconds * s.Animation.ticksPerSecond() * s.Speed

	d := s.Animation.Duration
	if d <= 0 {
		s.Time = 0
		return
	}
	if s.Loop {
		s.Time = float32(math.Mod(float64(s.Time), float64(d)))
		if s.Time < 0 {
			s.Time += d
		}
		return
	}
	s.Time = min(max(s.Time, 0), d)
}

// Finished reports whether a non-looping state has reached an end.
func (s *State) Finished() bool {
	if s.Loop || s.Animation == nil {
		return false
	}
	if s.Speed < 0 {
		return s.Time <= 0
	}
	return s.Time >= s.Animation.Duration
}

// Restart rewinds to the start, or the end when playing backwards.
func (s *State) Restart() {
	s.Time = 0
	if s.Speed < 0 && s.Animation != nil {
		s.Time = s.Animation.Duration
	}
}
