package anim

import "time"

type entry struct {
	v        *Variable
	onUpdate func(value float64)
}

// Scheduler advances registered variables on every host tick and drops them
// once they settle.
type Scheduler struct {
	entries        []entry
	onActiveChange func(active bool)
}

func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// OnActiveChange is called when the scheduler goes from idle to busy and
// back, so the host can start or stop its tick.
func (s *Scheduler) OnActiveChange(fn func(active bool)) {
	s.onActiveChange = fn
}

// Start registers v. onUpdate runs after every advance, typically to request
// a repaint. Starting a variable that is already scheduled replaces its
// callback.
func (s *Scheduler) Start(v *Variable, onUpdate func(value float64)) {
	if v == nil || !v.Active() {
		if v != nil && onUpdate != nil {
			onUpdate(v.Value())
		}
		return
	}
	for i := range s.entries {
		if s.entries[i].v == v {
			s.entries[i].onUpdate = onUpdate
			return
		}
	}
	wasIdle := len(s.entries) == 0
	s.entries = append(s.entries, entry{v: v, onUpdate: onUpdate})
	if wasIdle && s.onActiveChange != nil {
		s.onActiveChange(true)
	}
}

// Cancel stops scheduling v. Its value stays where it is.
func (s *Scheduler) Cancel(v *Variable) {
	for i := range s.entries {
		if s.entries[i].v == v {
			v.Stop()
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			if len(s.entries) == 0 && s.onActiveChange != nil {
				s.onActiveChange(false)
			}
			return
		}
	}
}

// Active reports whether any variable is still moving.
func (s *Scheduler) Active() bool {
	return len(s.entries) > 0
}

// Tick advances every variable by dt. It returns whether any is still
// moving afterwards.
func (s *Scheduler) Tick(dt time.Duration) bool {
	if len(s.entries) == 0 {
		return false
	}
	kept := s.entries[:0]
	for _, e := range s.entries {
		value := e.v.Advance(dt)
		if e.onUpdate != nil {
			e.onUpdate(value)
		}
		if e.v.Active() {
			kept = append(kept, e)
		}
	}
	for i := len(kept); i < len(s.entries); i++ {
		s.entries[i] = entry{}
	}
	s.entries = kept
	if len(s.entries) == 0 {
		if s.onActiveChange != nil {
			s.onActiveChange(false)
		}
		return false
	}
	return true
}
