package ecs

import "github.com/milk9111/sandpit/ecs/component"

// First returns the first live entity carrying h.
func First[T any](w *World, h component.ComponentHandle[T]) (Entity, bool) {
	s := storeFor(w, h, false)
	if s == nil {
		return 0, false
	}
	for _, id := range s.ids() {
		if e, ok := w.entities.current(id); ok {
			return e, true
		}
	}
	return 0, false
}

// Query returns all live entities carrying h, in store order.
func Query[T any](w *World, h component.ComponentHandle[T]) []Entity {
	s := storeFor(w, h, false)
	if s == nil {
		return nil
	}
	out := make([]Entity, 0, s.len())
	for _, id := range s.ids() {
		if e, ok := w.entities.current(id); ok {
			out = append(out, e)
		}
	}
	return out
}

// ForEach visits a snapshot of the store so fn may add or remove components
// (including destroying the visited entity) without skipping entries.
func ForEach[T any](w *World, h component.ComponentHandle[T], fn func(Entity, *T)) {
	for _, e := range Query(w, h) {
		if v, ok := Get(w, e, h); ok {
			fn(e, v)
		}
	}
}

func ForEach2[A, B any](w *World, ha component.ComponentHandle[A], hb component.ComponentHandle[B], fn func(Entity, *A, *B)) {
	sa, sb := storeFor(w, ha, false), storeFor(w, hb, false)
	if sa == nil || sb == nil {
		return
	}
	for _, e := range smallerQuery(w, sa, sb) {
		a, okA := Get(w, e, ha)
		b, okB := Get(w, e, hb)
		if okA && okB {
			fn(e, a, b)
		}
	}
}

func ForEach3[A, B, C any](w *World, ha component.ComponentHandle[A], hb component.ComponentHandle[B], hc component.ComponentHandle[C], fn func(Entity, *A, *B, *C)) {
	sa, sb, sc := storeFor(w, ha, false), storeFor(w, hb, false), storeFor(w, hc, false)
	if sa == nil || sb == nil || sc == nil {
		return
	}
	for _, e := range smallerQuery(w, sa, sb, sc) {
		a, okA := Get(w, e, ha)
		b, okB := Get(w, e, hb)
		c, okC := Get(w, e, hc)
		if okA && okB && okC {
			fn(e, a, b, c)
		}
	}
}

// smallerQuery snapshots the live entities of the smallest store.
func smallerQuery(w *World, stores ...store) []Entity {
	var smallest store
	for _, s := range stores {
		if smallest == nil || s.len() < smallest.len() {
			smallest = s
		}
	}
	out := make([]Entity, 0, smallest.len())
	for _, id := range smallest.ids() {
		if e, ok := w.entities.current(id); ok {
			out = append(out, e)
		}
	}
	return out
}
