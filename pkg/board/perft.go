package board

// Perft counts the number of leaf nodes in the full game tree of depth
// plies from the current position, the standard move-generator correctness
// benchmark: known node counts exist for a handful of canonical positions
// at small depths.
func (p *Position) Perft(depth int) uint64 {
	if depth == 0 {
		return 1
	}

	var list MoveList
	p.GeneratePseudoLegal(&list)

	var nodes uint64
	for i := 0; i < list.Count; i++ {
		if !p.Make(list.Moves[i]) {
			continue
		}
		nodes += p.Perft(depth - 1)
		p.Unmake()
	}
	return nodes
}

// Divide runs Perft one ply at a time, reporting a per-move subtree count
// for cross-checking against a reference engine's divide output.
func (p *Position) Divide(depth int) map[string]uint64 {
	out := make(map[string]uint64)
	var list MoveList
	p.GeneratePseudoLegal(&list)

	for i := 0; i < list.Count; i++ {
		m := list.Moves[i]
		if !p.Make(m) {
			continue
		}
		var nodes uint64
		if depth <= 1 {
			nodes = 1
		} else {
			nodes = p.Perft(depth - 1)
		}
		out[m.String()] = nodes
		p.Unmake()
	}
	return out
}
