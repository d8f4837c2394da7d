// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: scrollbar/listeners.go
// Summary: Listener registry hosts embed to implement EventTarget.

package scrollbar

// Listeners is a per-target listener registry. The zero value is ready to use.
type Listeners struct {
	byKind map[EventKind][]*listener
	fired  map[EventKind]int
}

type listener struct {
	fn      func(*Event)
	removed bool
}

// Listen implements EventTarget.
func (l *Listeners) Listen(kind EventKind, fn func(*Event)) func() {
	if l.byKind == nil {
		l.byKind = make(map[EventKind][]*listener)
	}
	entry := &listener{fn: fn}
	l.byKind[kind] = append(l.byKind[kind], entry)
	return func() {
		if entry.removed {
			return
		}
		entry.removed = true
		list := l.byKind[kind]
		for i, other := range list {
			if other == entry {
				l.byKind[kind] = append(list[:i:i], list[i+1:]...)
				break
			}
		}
	}
}

// Dispatch calls the listeners registered for ev.Kind when dispatch starts.
// Listeners removed by an earlier listener in the same dispatch are skipped.
func (l *Listeners) Dispatch(ev *Event) {
	list := append([]*listener(nil), l.byKind[ev.Kind]...)
	for _, entry := range list {
		if entry.removed {
			continue
		}
		if l.fired == nil {
			l.fired = make(map[EventKind]int)
		}
		l.fired[ev.Kind]++
		entry.fn(ev)
	}
}

// Count returns how many listeners are registered for kind.
func (l *Listeners) Count(kind EventKind) int {
	return len(l.byKind[kind])
}

// Fired returns how many listener calls kind has produced.
func (l *Listeners) Fired(kind EventKind) int {
	return l.fired[kind]
}
