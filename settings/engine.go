package settings

import (
	"github.com/jrvillar/esviz"
)

// Engine ties a parameter store to an artifact dependency graph. One plot
// object owns one Engine; see the package comment for the update/read
// semantics and the (absent) concurrency guarantees.
type Engine struct {
	store *store
	graph *depGraph
	//generation is bumped once per update batch that changed at least one
	//parameter. Artifacts record the generation they were computed at.
	generation uint64
}

// New builds an Engine from a parameter schema. Every parameter starts at its
// default value. Defaults are run through their own validators, so a schema
// whose default cannot pass validation is rejected here rather than failing
// on the first update.
func New(schema Schema) (*Engine, error) {
	st, err := newStore(schema)
	if err != nil {
		return nil, err
	}
	return &Engine{store: st, graph: newDepGraph()}, nil
}

// Declare registers an artifact: the parameter names its producer reads, the
// artifacts it derives from, and the producer itself. DerivesFrom may name
// artifacts declared later; they must exist by the time the artifact is read.
// Declaring an edge that would close a cycle fails with
// esviz.CyclicDependency and leaves the graph untouched.
func (e *Engine) Declare(name string, reads, derivesFrom []string, producer Producer) error {
	return e.graph.declare(name, reads, derivesFrom, producer, e.store.has)
}

// Get returns the current value of a parameter.
func (e *Engine) Get(name string) (esviz.Value, error) {
	return e.store.get(name)
}

// Set updates a single parameter. It is exactly Update with a one-entry map.
func (e *Engine) Set(name string, v esviz.Value) error {
	return e.Update(map[string]esviz.Value{name: v})
}

// Update applies a batch of parameter changes. The whole batch is validated
// before any value is applied (all-or-nothing; see store.update). Artifacts
// depending on a changed parameter, directly or through other artifacts, are
// invalidated in dependency order but not recomputed: recomputation waits for
// the next Read. Values equal to the current ones count as unchanged and
// trigger no invalidation.
func (e *Engine) Update(m map[string]esviz.Value) error {
	changed, err := e.store.update(m)
	if err != nil {
		return err
	}
	if len(changed) == 0 {
		return nil
	}
	e.generation++
	for _, a := range e.graph.affectedBy(changed) {
		a.invalidate()
	}
	return nil
}

// Read returns the current value of an artifact, computing it (and,
// recursively, anything it derives from) if no valid cached value exists.
// A producer failure is returned as an esviz.ArtifactError wrapping the cause;
// the artifact stays invalid so the next Read retries.
func (e *Engine) Read(name string) (interface{}, error) {
	a, err := e.graph.artifact(name)
	if err != nil {
		return nil, err
	}
	return e.resolve(a)
}

func (e *Engine) resolve(a *artifact) (interface{}, error) {
	if a.state == valid {
		return a.value, nil
	}
	in := Inputs{
		Params: make(map[string]esviz.Value, len(a.reads)),
		From:   make(map[string]interface{}, len(a.derivesFrom)),
	}
	for _, u := range a.derivesFrom {
		up, err := e.graph.artifact(u)
		if err != nil {
			return nil, &esviz.ArtifactError{Artifact: a.name, Cause: err}
		}
		v, err := e.resolve(up)
		if err != nil {
			return nil, err
		}
		in.From[u] = v
	}
	for _, r := range a.reads {
		v, err := e.store.get(r)
		if err != nil {
			//reads were checked at declaration time; parameters are never deleted
			panic(err.Error())
		}
		in.Params[r] = v
	}
	a.calls++
	v, err := a.producer(in)
	if err != nil {
		return nil, &esviz.ArtifactError{Artifact: a.name, Cause: err}
	}
	a.value = v
	a.state = valid
	a.computedAt = e.generation
	return v, nil
}

// Peek returns the cached value of an artifact without computing anything.
// The second return is false when the artifact is unknown, uninitialized or
// invalid.
func (e *Engine) Peek(name string) (interface{}, bool) {
	a, err := e.graph.artifact(name)
	if err != nil || a.state != valid {
		return nil, false
	}
	return a.value, true
}

// Info returns the introspection record of a parameter: current value,
// default and help text.
func (e *Engine) Info(name string) (Info, error) {
	return e.store.info(name)
}

// Params returns the parameter names in schema order.
func (e *Engine) Params() []string {
	return e.store.names()
}

// Reset restores the named parameters to their defaults, through the normal
// update path so invalidation runs as usual. With no arguments it resets
// every parameter.
func (e *Engine) Reset(names ...string) error {
	if len(names) == 0 {
		names = e.store.names()
	}
	m := make(map[string]esviz.Value, len(names))
	for _, n := range names {
		info, err := e.store.info(n)
		if err != nil {
			return err
		}
		m[n] = info.Default
	}
	return e.Update(m)
}

// Generation returns an artifact's invalidation counter. It only moves when a
// cached value is actually thrown away, so it is the cheapest way to check
// that an update left an artifact alone.
func (e *Engine) Generation(name string) (uint64, error) {
	a, err := e.graph.artifact(name)
	if err != nil {
		return 0, err
	}
	return a.generation, nil
}

// Calls returns how many times an artifact's producer has run. Unknown names
// report zero.
func (e *Engine) Calls(name string) int {
	a, err := e.graph.artifact(name)
	if err != nil {
		return 0
	}
	return a.calls
}
