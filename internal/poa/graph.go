package poa

// node is a single symbol position in the alignment graph. Nodes are
// created once, never removed, and owned by the graph's arena
type node struct {
	// id is the node's index in the graph's arena
	id int

	// symbol is the base or residue code this node carries
	symbol byte

	// in and out are indices into the graph's edge list
	in  []int
	out []int

	// alignedTo are the ids of nodes occupying the same alignment column
	// but carrying a different symbol (kept distinct, not merged)
	alignedTo []int
}

// edge is a weighted link between two nodes. weight counts the input
// sequences whose path traverses the edge
type edge struct {
	from   int
	to     int
	weight int
}

// graph is the partial order alignment DAG: an arena of nodes, a shared
// edge list, and per-node weights for the virtual end anchor. The virtual
// start anchor is implicit (nodes with no incoming edges); the end anchor
// is implicit but its incoming edge weights are recorded so consensus
// extraction can score where sequences actually ended
type graph struct {
	nodes []node
	edges []edge

	// edgeIndex finds the edge between two nodes so repeat traversals
	// increment weight instead of duplicating the edge
	edgeIndex map[[2]int]int

	// endWeight[id] counts the sequences whose path ended at node id,
	// ie the weight of the edge from id to the virtual end anchor
	endWeight []int

	// sorted is the cached topological order, nil when stale
	sorted []int
}

func newGraph() *graph {
	return &graph{edgeIndex: make(map[[2]int]int)}
}

// len is the number of nodes in the graph
func (g *graph) len() int {
	return len(g.nodes)
}

// addNode appends a new node carrying symbol and returns its id
func (g *graph) addNode(symbol byte) int {
	id := len(g.nodes)
	g.nodes = append(g.nodes, node{id: id, symbol: symbol})
	g.endWeight = append(g.endWeight, 0)
	g.sorted = nil
	return id
}

// mergeEdge increments the weight of the edge (u, v), creating it with
// weight 1 on first use
func (g *graph) mergeEdge(u, v int) {
	key := [2]int{u, v}
	if ei, ok := g.edgeIndex[key]; ok {
		g.edges[ei].weight++
		return
	}
	ei := len(g.edges)
	g.edges = append(g.edges, edge{from: u, to: v, weight: 1})
	g.edgeIndex[key] = ei
	g.nodes[u].out = append(g.nodes[u].out, ei)
	g.nodes[v].in = append(g.nodes[v].in, ei)
	g.sorted = nil
}

// seed initializes an empty graph from the first sequence: a linear chain
// of nodes, one per symbol, every edge weight 1, with the final node wired
// to the end anchor
func (g *graph) seed(seq []byte) {
	prev := -1
	for _, symbol := range seq {
		id := g.addNode(symbol)
		if prev >= 0 {
			g.mergeEdge(prev, id)
		}
		prev = id
	}
	if prev >= 0 {
		g.endWeight[prev]++
	}
}

// topological returns node ids with every edge pointing forward. The order
// is cached and rebuilt after mutation: arena order alone is not enough,
// since folding can wire a freshly created alternative node back into an
// older node. Kahn's algorithm with ids visited in ascending order keeps
// the result deterministic
func (g *graph) topological() []int {
	if g.sorted != nil {
		return g.sorted
	}

	indegree := make([]int, len(g.nodes))
	for _, e := range g.edges {
		indegree[e.to]++
	}

	ready := make([]int, 0, len(g.nodes))
	for id := range g.nodes {
		if indegree[id] == 0 {
			ready = append(ready, id)
		}
	}

	order := make([]int, 0, len(g.nodes))
	for len(ready) > 0 {
		id := ready[0]
		ready = ready[1:]
		order = append(order, id)
		for _, ei := range g.nodes[id].out {
			to := g.edges[ei].to
			indegree[to]--
			if indegree[to] == 0 {
				ready = append(ready, to)
			}
		}
	}

	g.sorted = order
	return order
}
