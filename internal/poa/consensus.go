package poa

// consensus extracts the heaviest path through the graph and returns its
// symbols, truncated to maxLen. For each node in topological order the
// best incoming weight sum is computed over its predecessors; ties keep
// the earlier-added (smaller id) predecessor, which keeps extraction
// deterministic and stops a late detour of tied total weight from
// displacing the direct majority edge. The virtual end anchor is scored
// the same way over the recorded per-sequence end weights with the same
// tie rule, and the path is walked backward from its chosen predecessor
func (g *graph) consensus(maxLen int) []byte {
	if g.len() == 0 {
		return nil
	}

	best := make([]int64, g.len())
	from := make([]int, g.len())
	for id := range g.nodes {
		best[id] = minScore
		from[id] = -1
		if len(g.nodes[id].in) == 0 {
			best[id] = 0
		}
	}

	for _, id := range g.topological() {
		for _, ei := range g.nodes[id].in {
			e := g.edges[ei]
			s := best[e.from] + int64(e.weight)
			if s > best[id] || (s == best[id] && e.from < from[id]) {
				best[id] = s
				from[id] = e.from
			}
		}
	}

	// the end anchor's best predecessor, over nodes where sequences ended.
	// Scanning ids in ascending order keeps the earlier-added node on ties,
	// the same rule as above
	last, lastScore := -1, minScore
	for id := range g.nodes {
		w := g.endWeight[id]
		if w == 0 {
			continue
		}
		if s := best[id] + int64(w); s > lastScore {
			lastScore = s
			last = id
		}
	}

	var path []byte
	for id := last; id >= 0; id = from[id] {
		path = append(path, g.nodes[id].symbol)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	if len(path) > maxLen {
		path = path[:maxLen] // documented silent truncation, not an error
	}
	return path
}
