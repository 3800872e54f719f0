package settings

import (
	"testing"

	"github.com/jrvillar/esviz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func constProducer(v interface{}) Producer {
	return func(Inputs) (interface{}, error) { return v, nil }
}

func TestDeclareRejectsUnknownReads(t *testing.T) {
	e, err := New(testSchema())
	require.NoError(t, err)

	err = e.Declare("thing", []string{"no_such_param"}, nil, constProducer(1))
	var unknown *esviz.UnknownParameter
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "no_such_param", unknown.Name)
}

func TestDeclareRejectsDuplicates(t *testing.T) {
	e, err := New(testSchema())
	require.NoError(t, err)

	require.NoError(t, e.Declare("thing", nil, nil, constProducer(1)))
	require.Error(t, e.Declare("thing", nil, nil, constProducer(2)))
}

func TestDeclareRejectsSelfDependency(t *testing.T) {
	e, err := New(testSchema())
	require.NoError(t, err)

	err = e.Declare("ouroboros", nil, []string{"ouroboros"}, constProducer(1))
	var cyc *esviz.CyclicDependency
	require.ErrorAs(t, err, &cyc)
	assert.Equal(t, []string{"ouroboros", "ouroboros"}, cyc.Cycle)
}

func TestDeclareRejectsCycleAndLeavesGraphUntouched(t *testing.T) {
	e, err := New(testSchema())
	require.NoError(t, err)

	//B forward-references A; A then tries to close the loop.
	require.NoError(t, e.Declare("B", nil, []string{"A"}, constProducer("b")))
	err = e.Declare("A", nil, []string{"B"}, constProducer("a"))
	var cyc *esviz.CyclicDependency
	require.ErrorAs(t, err, &cyc)
	assert.Equal(t, "A", cyc.Artifact)
	assert.Equal(t, []string{"A", "B", "A"}, cyc.Cycle)

	//The failed declaration must not have mutated anything: A can still be
	//declared with a sound edge set, and B then resolves through it.
	require.NoError(t, e.Declare("A", nil, nil, constProducer("a")))
	v, err := e.Read("B")
	require.NoError(t, err)
	assert.Equal(t, "b", v)
}

func TestDeclareRejectsTransitiveCycle(t *testing.T) {
	e, err := New(testSchema())
	require.NoError(t, err)

	//C <- B <- A, then A deriving from C would close A -> B -> C -> A.
	require.NoError(t, e.Declare("B", nil, []string{"A"}, constProducer("b")))
	require.NoError(t, e.Declare("C", nil, []string{"B"}, constProducer("c")))
	err = e.Declare("A", nil, []string{"C"}, constProducer("a"))
	var cyc *esviz.CyclicDependency
	require.ErrorAs(t, err, &cyc)
	assert.Equal(t, []string{"A", "B", "C", "A"}, cyc.Cycle)
}

func TestAffectedByTopologicalOrder(t *testing.T) {
	e, err := New(testSchema())
	require.NoError(t, err)

	//Diamond: base reads npts; left and right derive from base; top derives
	//from both. All four must be invalidated, producers before consumers,
	//with the declaration order breaking the left/right tie.
	require.NoError(t, e.Declare("base", []string{"npts"}, nil, constProducer(0)))
	require.NoError(t, e.Declare("left", nil, []string{"base"}, constProducer(1)))
	require.NoError(t, e.Declare("right", nil, []string{"base"}, constProducer(2)))
	require.NoError(t, e.Declare("top", nil, []string{"left", "right"}, constProducer(3)))

	affected := e.graph.affectedBy([]string{"npts"})
	names := make([]string, len(affected))
	for i, a := range affected {
		names[i] = a.name
	}
	assert.Equal(t, []string{"base", "left", "right", "top"}, names)
}

func TestAffectedByIsTransitiveButMinimal(t *testing.T) {
	e, err := New(testSchema())
	require.NoError(t, err)

	require.NoError(t, e.Declare("eigen", []string{"npts", "spin"}, nil, constProducer(0)))
	require.NoError(t, e.Declare("wave", []string{"title"}, []string{"eigen"}, constProducer(1)))
	require.NoError(t, e.Declare("other", []string{"Erange"}, nil, constProducer(2)))

	names := func(arts []*artifact) []string {
		out := make([]string, len(arts))
		for i, a := range arts {
			out[i] = a.name
		}
		return out
	}

	assert.Equal(t, []string{"eigen", "wave"}, names(e.graph.affectedBy([]string{"spin"})))
	assert.Equal(t, []string{"wave"}, names(e.graph.affectedBy([]string{"title"})))
	assert.Equal(t, []string{"other"}, names(e.graph.affectedBy([]string{"Erange"})))
	assert.Empty(t, e.graph.affectedBy(nil))
}
