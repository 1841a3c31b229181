package registry

import "sort"

// zStack allocates z-order values. Values are strictly increasing for the
// lifetime of the registry and are never reused, so two surfaces can always
// be ordered and a surface only ever moves up relative to its own past.
type zStack struct {
	next int64
}

func newZStack() zStack {
	return zStack{next: 1}
}

// take returns the next z-order value.
func (s *zStack) take() int64 {
	v := s.next
	s.next++
	return v
}

// outranks reports whether a beats b when surfaces compete for focus:
// higher priority first, later registration breaks ties.
func outranks(a, b *entry) bool {
	if a.cfg.Priority != b.cfg.Priority {
		return a.cfg.Priority > b.cfg.Priority
	}
	return a.seq > b.seq
}

// topActive returns the active entry with the highest z-order, nil when no
// entry is active.
func topActive(windows map[WindowID]*entry) *entry {
	var top *entry
	for _, e := range windows {
		if !e.active {
			continue
		}
		if top == nil || e.zOrder > top.zOrder {
			top = e
		}
	}
	return top
}

// focusCandidate returns the active entry that should receive focus when the
// current owner leaves, nil when no entry is active.
func focusCandidate(windows map[WindowID]*entry) *entry {
	var best *entry
	for _, e := range windows {
		if !e.active {
			continue
		}
		if best == nil || outranks(e, best) {
			best = e
		}
	}
	return best
}

// activeModalsAscending returns active modal entries from bottom to top,
// optionally excluding one entry.
func activeModalsAscending(windows map[WindowID]*entry, except *entry) []*entry {
	var modals []*entry
	for _, e := range windows {
		if e == except || !e.active || !e.cfg.Modal {
			continue
		}
		modals = append(modals, e)
	}
	sort.Slice(modals, func(i, j int) bool { return modals[i].zOrder < modals[j].zOrder })
	return modals
}

// ascendingZ returns the given entries sorted bottom to top.
func ascendingZ(windows map[WindowID]*entry) []*entry {
	out := make([]*entry, 0, len(windows))
	for _, e := range windows {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].zOrder < out[j].zOrder })
	return out
}
