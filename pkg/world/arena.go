package world

// index is a generational arena index: a slot position plus the
// generation counter recorded when the value at that slot was
// inserted. The arena has no removal, so slots are never reused and
// every generation is 0.
type index struct {
	slot Int
	gen  Int
}

// Int is a plain alias kept local to this package so arena bookkeeping
// reads as domain vocabulary rather than bare ints.
type Int = int

// arena is a generic generational arena. World owns one per asset kind
// (shapes, albedos, materials, objects). Items are only ever appended.
// get panics for a slot outside the arena or a generation other than
// the slot's; a handle from a different World whose slot is in range
// is not detected.
type arena[T any] struct {
	items []T
	gens  []Int
}

func (a *arena[T]) insert(v T) index {
	a.items = append(a.items, v)
	a.gens = append(a.gens, 0)
	return index{slot: len(a.items) - 1, gen: 0}
}

func (a *arena[T]) get(i index) T {
	if i.slot < 0 || i.slot >= len(a.items) {
		panic("world: handle does not belong to this World")
	}
	if a.gens[i.slot] != i.gen {
		panic("world: stale handle (generation mismatch)")
	}
	return a.items[i.slot]
}

func (a *arena[T]) len() int {
	return len(a.items)
}
