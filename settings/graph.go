package settings

import (
	"fmt"
	"sort"

	"github.com/jrvillar/esviz"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// Producer computes one artifact from its resolved inputs. It must be a pure
// function of those inputs; the engine caches its result until an input
// parameter changes.
type Producer func(in Inputs) (interface{}, error)

// Inputs carries the resolved values a producer reads: the current values of
// its declared parameters and the (recursively computed) values of the
// artifacts it derives from.
type Inputs struct {
	Params map[string]esviz.Value
	From   map[string]interface{}
}

type artState int

const (
	uninitialized artState = iota
	valid
	invalid
)

type artifact struct {
	name        string
	id          int64
	declOrder   int //-1 while the artifact is only known as a forward reference
	reads       []string
	derivesFrom []string
	producer    Producer

	state      artState
	value      interface{}
	generation uint64 //bumped every time a cached value is thrown away
	computedAt uint64 //engine generation at the time of the last computation
	calls      int    //producer invocations, for diagnostics and tests
}

// depGraph maps artifacts onto a gonum directed graph. Edges run from an
// upstream artifact to the artifacts derived from it, so walking From() a
// node yields its dependents. Artifacts may be declared deriving from names
// declared later; such forward references exist in the graph as placeholder
// nodes until their own declaration arrives.
type depGraph struct {
	g      *simple.DirectedGraph
	arts   map[string]*artifact
	byID   map[int64]*artifact
	nextID int64

	declared []*artifact //in declaration order, the topological tie-break
}

func newDepGraph() *depGraph {
	return &depGraph{
		g:    simple.NewDirectedGraph(),
		arts: make(map[string]*artifact),
		byID: make(map[int64]*artifact),
	}
}

func (dg *depGraph) node(name string) *artifact {
	if a, ok := dg.arts[name]; ok {
		return a
	}
	a := &artifact{name: name, id: dg.nextID, declOrder: -1}
	dg.nextID++
	dg.arts[name] = a
	dg.byID[a.id] = a
	dg.g.AddNode(simple.Node(a.id))
	return a
}

// declare registers one artifact. hasParam is the parameter-store membership
// check; every name in reads must pass it. The cycle check runs before any
// mutation, so a rejected declaration leaves the graph exactly as it was.
func (dg *depGraph) declare(name string, reads, derivesFrom []string, producer Producer, hasParam func(string) bool) error {
	if name == "" {
		return fmt.Errorf("settings: artifact with an empty name")
	}
	if producer == nil {
		return fmt.Errorf("settings: artifact %q declared without a producer", name)
	}
	if a, ok := dg.arts[name]; ok && a.declOrder >= 0 {
		return fmt.Errorf("settings: artifact %q declared twice", name)
	}
	for _, r := range reads {
		if !hasParam(r) {
			return &esviz.UnknownParameter{Name: r}
		}
	}
	for _, u := range derivesFrom {
		if u == name {
			return &esviz.CyclicDependency{Artifact: name, Cycle: []string{name, name}}
		}
		if path := dg.path(name, u); path != nil {
			return &esviz.CyclicDependency{Artifact: name, Cycle: append(path, name)}
		}
	}
	a := dg.node(name)
	for _, u := range derivesFrom {
		up := dg.node(u)
		dg.g.SetEdge(simple.Edge{F: simple.Node(up.id), T: simple.Node(a.id)})
	}
	a.declOrder = len(dg.declared)
	a.reads = append([]string(nil), reads...)
	a.derivesFrom = append([]string(nil), derivesFrom...)
	a.producer = producer
	dg.declared = append(dg.declared, a)
	return nil
}

// path does a depth-first search over the existing edges and returns the
// artifact names from src to dst, or nil if dst is unreachable. Used only for
// the pre-insertion cycle check, so no effort is spent making it fast.
func (dg *depGraph) path(src, dst string) []string {
	a, ok := dg.arts[src]
	if !ok {
		return nil
	}
	b, ok := dg.arts[dst]
	if !ok {
		return nil
	}
	parent := map[int64]int64{a.id: a.id}
	stack := []int64{a.id}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur == b.id {
			var rev []string
			for n := cur; ; n = parent[n] {
				rev = append(rev, dg.byID[n].name)
				if n == parent[n] {
					break
				}
			}
			path := make([]string, 0, len(rev))
			for i := len(rev) - 1; i >= 0; i-- {
				path = append(path, rev[i])
			}
			return path
		}
		it := dg.g.From(cur)
		for it.Next() {
			next := it.Node().ID()
			if _, seen := parent[next]; seen {
				continue
			}
			parent[next] = cur
			stack = append(stack, next)
		}
	}
	return nil
}

func (dg *depGraph) artifact(name string) (*artifact, error) {
	a, ok := dg.arts[name]
	if !ok || a.declOrder < 0 {
		return nil, &esviz.UnknownArtifact{Name: name}
	}
	return a, nil
}

// affectedBy returns every declared artifact whose reads intersect the changed
// parameter names, plus everything transitively derived from one, in
// topological order. Artifacts without a dependency relation keep their
// declaration order, so the result is deterministic.
func (dg *depGraph) affectedBy(changed []string) []*artifact {
	if len(changed) == 0 {
		return nil
	}
	isChanged := make(map[string]bool, len(changed))
	for _, c := range changed {
		isChanged[c] = true
	}
	hit := make(map[int64]bool)
	var queue []int64
	for _, a := range dg.declared {
		for _, r := range a.reads {
			if isChanged[r] {
				hit[a.id] = true
				queue = append(queue, a.id)
				break
			}
		}
	}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		it := dg.g.From(cur)
		for it.Next() {
			id := it.Node().ID()
			if !hit[id] {
				hit[id] = true
				queue = append(queue, id)
			}
		}
	}
	if len(hit) == 0 {
		return nil
	}
	sorted, err := topo.SortStabilized(dg.g, dg.byDeclOrder)
	if err != nil {
		//cycles are rejected at declaration time, so this cannot happen
		panic("settings: dependency graph became cyclic: " + err.Error())
	}
	var out []*artifact
	for _, n := range sorted {
		a := dg.byID[n.ID()]
		if hit[a.id] && a.declOrder >= 0 {
			out = append(out, a)
		}
	}
	return out
}

// byDeclOrder is the stabilizer handed to topo.SortStabilized: within a
// topological level, declared artifacts come out in declaration order and
// placeholders last.
func (dg *depGraph) byDeclOrder(ns []graph.Node) {
	sort.Slice(ns, func(i, j int) bool {
		a, b := dg.byID[ns[i].ID()], dg.byID[ns[j].ID()]
		ai, bi := a.declOrder, b.declOrder
		if ai < 0 && bi < 0 {
			return a.id < b.id
		}
		if ai < 0 {
			return false
		}
		if bi < 0 {
			return true
		}
		return ai < bi
	})
}

// invalidate throws away the cached value. Uninitialized artifacts stay
// uninitialized (they already read as invalid).
func (a *artifact) invalidate() {
	if a.state != valid {
		return //nothing cached, nothing to clear
	}
	a.value = nil
	a.generation++
	a.state = invalid
}
