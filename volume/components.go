package volume

// Reachable flood-fills the admissible component containing seed under conn.
// The result is indexed by flat offset. If seed is out of bounds or not
// admissible the result is all false.
//
// Time:   O(N·d), where d = 6 or 26.
// Memory: O(N) for the visited flags and queue.
func Reachable(m *Mask, seed Index, conn Connectivity) []bool {
	g := m.grid
	seen := make([]bool, g.Len())
	if !m.Admissible(seed) {
		return seen
	}
	offsets := conn.Offsets()
	s := g.Offset(seed)
	seen[s] = true
	queue := []int{s}
	for qi := 0; qi < len(queue); qi++ {
		u := g.IndexOf(queue[qi])
		for _, d := range offsets {
			v := u.Shift(d)
			if !m.Admissible(v) {
				continue
			}
			vi := g.Offset(v)
			if !seen[vi] {
				seen[vi] = true
				queue = append(queue, vi)
			}
		}
	}
	return seen
}

// Components finds every connected region of admissible voxels under conn.
// Each component is a slice of flat offsets in BFS order; components are
// ordered by their lowest offset.
//
// Time:   O(N·d).
// Memory: O(N).
func Components(m *Mask, conn Connectivity) [][]int {
	g := m.grid
	seen := make([]bool, g.Len())
	offsets := conn.Offsets()
	var comps [][]int

	for start := range seen {
		if seen[start] || !m.bits[start] {
			continue
		}
		seen[start] = true
		comp := []int{start}
		for qi := 0; qi < len(comp); qi++ {
			u := g.IndexOf(comp[qi])
			for _, d := range offsets {
				v := u.Shift(d)
				if !m.Admissible(v) {
					continue
				}
				vi := g.Offset(v)
				if !seen[vi] {
					seen[vi] = true
					comp = append(comp, vi)
				}
			}
		}
		comps = append(comps, comp)
	}
	return comps
}
