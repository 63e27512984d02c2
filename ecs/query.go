package ecs

// intersect returns live entities present in every set, in the dense order of
// the smallest set.
func intersect(w *World, sets ...*SparseSet) []Entity {
	if len(sets) == 0 {
		return nil
	}
	smallest := 0
	for i, s := range sets {
		if s == nil {
			return nil
		}
		if s.Len() < sets[smallest].Len() {
			smallest = i
		}
	}
	base := sets[smallest]
	out := make([]Entity, 0, base.Len())
	for _, e := range base.Entities() {
		if !w.IsAlive(e) {
			continue
		}
		ok := true
		for i, s := range sets {
			if i == smallest {
				continue
			}
			if !s.Has(e) {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, e)
		}
	}
	return out
}
