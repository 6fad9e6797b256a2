package pathfind

import (
	"container/heap"
	"math"

	"github.com/1siamBot/rts-nav/engine/geom"
)

// queryGraph overlays the query's start and goal onto a region graph.
// Base nodes keep their indices; start and goal are appended after them.
// The region's adjacency is read, never copied or modified.
type queryGraph struct {
	base        *Region
	start, goal int
	pos         []geom.Vec // world position of every node
	extra       map[int][]Neighbor
}

func newQueryGraph(reg *Region, tileSize int, start, goal geom.Point) *queryGraph {
	n := len(reg.Nodes)
	q := &queryGraph{
		base:  reg,
		start: n,
		goal:  n + 1,
		pos:   make([]geom.Vec, n+2),
		extra: make(map[int][]Neighbor),
	}
	ts := float64(tileSize)
	for i, node := range reg.Nodes {
		c := tileCentre(node.Tile)
		q.pos[i] = geom.Vec{X: c.X * ts, Y: c.Y * ts}
	}
	q.pos[q.start] = geom.Vec{X: float64(start.X), Y: float64(start.Y)}
	q.pos[q.goal] = geom.Vec{X: float64(goal.X), Y: float64(goal.Y)}
	return q
}

func (q *queryGraph) size() int { return len(q.pos) }

func (q *queryGraph) dist(a, b int) float64 {
	return math.Hypot(q.pos[b].X-q.pos[a].X, q.pos[b].Y-q.pos[a].Y)
}

// link adds an undirected edge between a and b
func (q *queryGraph) link(a, b int) {
	d := q.dist(a, b)
	q.extra[a] = append(q.extra[a], Neighbor{Node: b, Dist: d})
	q.extra[b] = append(q.extra[b], Neighbor{Node: a, Dist: d})
}

func (q *queryGraph) neighbors(i int, fn func(Neighbor)) {
	if i < len(q.base.Adj) {
		for _, nb := range q.base.Adj[i] {
			fn(nb)
		}
	}
	for _, nb := range q.extra[i] {
		fn(nb)
	}
}

// astar returns the node indices from start to goal
func (q *queryGraph) astar() ([]int, bool) {
	size := q.size()
	h := make([]float64, size)
	for i := range h {
		h[i] = q.dist(i, q.goal)
	}

	gScore := make([]float64, size)
	came := make([]int, size)
	closed := make([]bool, size)
	for i := range gScore {
		gScore[i] = math.Inf(1)
		came[i] = -1
	}
	gScore[q.start] = 0

	open := &openSet{}
	heap.Push(open, openItem{node: q.start, f: h[q.start]})

	for open.Len() > 0 {
		cur := heap.Pop(open).(openItem)
		if closed[cur.node] {
			continue
		}
		if cur.node == q.goal {
			return reconstructPath(came, q.goal), true
		}
		closed[cur.node] = true

		q.neighbors(cur.node, func(nb Neighbor) {
			if closed[nb.Node] {
				return
			}
			tentG := gScore[cur.node] + nb.Dist
			if tentG < gScore[nb.Node] {
				gScore[nb.Node] = tentG
				came[nb.Node] = cur.node
				heap.Push(open, openItem{node: nb.Node, f: tentG + h[nb.Node]})
			}
		})
	}
	return nil, false
}

func reconstructPath(came []int, goal int) []int {
	path := []int{goal}
	for cur := came[goal]; cur != -1; cur = came[cur] {
		path = append(path, cur)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// --- Priority queue ---

type openItem struct {
	node int
	f    float64
}

type openSet []openItem

func (o openSet) Len() int           { return len(o) }
func (o openSet) Less(i, j int) bool { return o[i].f < o[j].f }
func (o openSet) Swap(i, j int)      { o[i], o[j] = o[j], o[i] }
func (o *openSet) Push(x any)        { *o = append(*o, x.(openItem)) }
func (o *openSet) Pop() any {
	old := *o
	n := len(old)
	item := old[n-1]
	*o = old[:n-1]
	return item
}
