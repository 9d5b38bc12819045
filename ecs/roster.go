package ecs

// Roster is an ordered live collection with deferred removal. Spawn appends
// immediately; Kill only marks the member, and Flush drops marked members at
// the end of a step. Each visits the members present when it started, so a
// kill or spawn inside the callback never shifts another member out of the pass.
type Roster[T any] struct {
	store   entityStore
	order   []Entity
	members SparseSet[T]
	killed  SparseSet[struct{}]
}

// Spawn adds v and returns its handle.
func (r *Roster[T]) Spawn(v T) Entity {
	e := r.store.create()
	r.order = append(r.order, e)
	r.members.Set(e, v)
	return e
}

// Kill marks e for removal at the next Flush. Killing twice is a no-op.
func (r *Roster[T]) Kill(e Entity) bool {
	if !r.members.Has(e) || r.killed.Has(e) {
		return false
	}
	r.killed.Set(e, struct{}{})
	return true
}

// Alive reports whether e is a member that has not been killed.
func (r *Roster[T]) Alive(e Entity) bool {
	return r.members.Has(e) && !r.killed.Has(e)
}

// Get returns the value of a member, killed or not.
func (r *Roster[T]) Get(e Entity) (T, bool) {
	return r.members.Get(e)
}

// Each calls fn for every live member in spawn order. Members spawned during
// the pass are not visited; members killed during the pass are skipped.
func (r *Roster[T]) Each(fn func(e Entity, v T)) {
	n := len(r.order)
	for i := 0; i < n; i++ {
		e := r.order[i]
		if r.killed.Has(e) {
			continue
		}
		v, ok := r.members.Get(e)
		if !ok {
			continue
		}
		fn(e, v)
	}
}

// Values returns live members in spawn order.
func (r *Roster[T]) Values() []T {
	out := make([]T, 0, len(r.order))
	r.Each(func(_ Entity, v T) {
		out = append(out, v)
	})
	return out
}

// Len counts live members.
func (r *Roster[T]) Len() int {
	return r.members.Len() - r.killed.Len()
}

// Flush removes killed members and returns how many were dropped.
func (r *Roster[T]) Flush() int {
	if r.killed.Len() == 0 {
		return 0
	}
	kept := r.order[:0]
	dropped := 0
	for _, e := range r.order {
		if r.killed.Has(e) {
			r.killed.Remove(e)
			r.members.Remove(e)
			r.store.destroy(e)
			dropped++
			continue
		}
		kept = append(kept, e)
	}
	for i := len(kept); i < len(r.order); i++ {
		r.order[i] = 0
	}
	r.order = kept
	return dropped
}

// Clear drops every member immediately. Handles from before Clear go stale.
func (r *Roster[T]) Clear() {
	for _, e := range r.order {
		r.store.destroy(e)
	}
	r.order = nil
	r.members = SparseSet[T]{}
	r.killed = SparseSet[struct{}]{}
}
