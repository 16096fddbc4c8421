package config

// PendingEdit holds a structural panel edit back until the drag that produced it
// ends, so dragging the particle count or a winding number regenerates the field
// once on release instead of on every frame of the drag.
type PendingEdit struct {
	held *Config
}

// View returns the configuration the panel should display and edit: the held
// edit if there is one, otherwise a copy of live.
func (e *PendingEdit) View(live *Config) *Config {
	if e.held != nil {
		return e.held.Clone()
	}
	return live.Clone()
}

// Pending reports whether an edit is being held.
func (e *PendingEdit) Pending() bool {
	return e.held != nil
}

// Submit takes the panel's result for this frame. edited is the config returned
// by View after the panel drew into it; changed is the panel's report; dragging
// is whether the pointer is still held down. It returns the configuration to
// apply now, or nil when there is nothing to apply yet.
func (e *PendingEdit) Submit(live, edited *Config, changed, dragging bool) *Config {
	if changed {
		if dragging && Diff(live, edited).Structural {
			e.held = edited
			return nil
		}
		e.held = nil
		return edited
	}
	if e.held != nil && !dragging {
		next := e.held
		e.held = nil
		return next
	}
	return nil
}

// Discard drops any held edit.
func (e *PendingEdit) Discard() {
	e.held = nil
}
