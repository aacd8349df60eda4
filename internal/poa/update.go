package poa

// fold applies a completed traceback to the graph. This is the only place
// the graph is mutated, and it runs only after the whole traceback for a
// sequence is known, so no aligner ever sees a half-folded graph.
//
// Match steps merge the edge from the previous path node. Mismatch steps
// first look for an existing aligned alternative carrying the same symbol
// and merge into it, so repeated observations of the same variant
// accumulate weight on one node; only a genuinely new symbol gets a new
// node, linked into the column's aligned clique. Insert steps always
// create a new node. Delete steps advance past a graph node without
// creating an edge. The final path node is wired to the virtual end anchor
func (g *graph) fold(tb traceback) {
	prev := -1
	for _, o := range tb {
		var cur int
		switch o.kind {
		case opDelete:
			continue // the node is not visited by this sequence

		case opMatch:
			cur = o.node

		case opMismatch:
			cur = -1
			for _, alt := range g.nodes[o.node].alignedTo {
				if g.nodes[alt].symbol == o.symbol {
					cur = alt
					break
				}
			}
			if cur < 0 {
				// new symbol for this column: create the node and link
				// it to every node already in the column
				column := append([]int{o.node}, g.nodes[o.node].alignedTo...)
				cur = g.addNode(o.symbol)
				for _, other := range column {
					g.nodes[cur].alignedTo = append(g.nodes[cur].alignedTo, other)
					g.nodes[other].alignedTo = append(g.nodes[other].alignedTo, cur)
				}
			}

		case opInsert:
			cur = g.addNode(o.symbol)
		}

		if prev >= 0 {
			g.mergeEdge(prev, cur)
		}
		prev = cur
	}

	if prev >= 0 {
		g.endWeight[prev]++
		g.sorted = nil
	}
}
