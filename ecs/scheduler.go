package ecs

// System is one phase of a simulation step over state W.
type System[W any] interface {
	Update(w W)
}

// SystemFunc adapts a function to System.
type SystemFunc[W any] func(w W)

func (f SystemFunc[W]) Update(w W) { f(w) }

// Scheduler runs its systems in insertion order.
type Scheduler[W any] struct {
	systems []System[W]
}

func NewScheduler[W any](systems ...System[W]) *Scheduler[W] {
	copied := append([]System[W](nil), systems...)
	return &Scheduler[W]{systems: copied}
}

func (s *Scheduler[W]) Add(system System[W]) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
}

func (s *Scheduler[W]) Update(w W) {
	for _, system := range s.systems {
		system.Update(w)
	}
}

func (s *Scheduler[W]) Systems() []System[W] {
	systems := make([]System[W], 0, len(s.systems))
	return append(systems, s.systems...)
}
