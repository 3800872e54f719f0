package settings

import (
	"strings"
	"testing"

	"github.com/jrvillar/esviz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bandsSchemaYAML = `
parameters:
  - name: spin
    kind: enum
    choices: [unpolarized, polarized]
    default: unpolarized
    help: Spin configuration of the calculation.
  - name: npts
    kind: int
    min: 2
    max: 100000
    default: 100
  - name: Erange
    kind: range
    nillable: true
  - name: broadening
    kind: float
    min: 0
    default: 0.05
  - name: bands
    kind: intlist
  - name: title
    kind: string
`

func TestParseSchema(t *testing.T) {
	schema, err := LoadSchema(strings.NewReader(bandsSchemaYAML))
	require.NoError(t, err)
	require.Len(t, schema, 6)

	e, err := New(schema)
	require.NoError(t, err)

	v, err := e.Get("spin")
	require.NoError(t, err)
	assert.Equal(t, "unpolarized", v.MustStr())

	v, err = e.Get("npts")
	require.NoError(t, err)
	assert.Equal(t, 100, v.MustInt())

	v, err = e.Get("Erange")
	require.NoError(t, err)
	assert.True(t, v.IsNil())

	info, err := e.Info("spin")
	require.NoError(t, err)
	assert.Equal(t, "Spin configuration of the calculation.", info.Help)
}

func TestParsedValidatorsWork(t *testing.T) {
	schema, err := ParseSchema([]byte(bandsSchemaYAML))
	require.NoError(t, err)
	e, err := New(schema)
	require.NoError(t, err)

	var invalid *esviz.InvalidValue
	require.ErrorAs(t, e.Set("spin", esviz.EnumValue("diagonal")), &invalid)
	require.ErrorAs(t, e.Set("npts", esviz.IntValue(1)), &invalid)
	require.ErrorAs(t, e.Set("broadening", esviz.FloatValue(-0.1)), &invalid)
	require.ErrorAs(t, e.Set("Erange", esviz.RangeValue(3, -3)), &invalid)

	require.NoError(t, e.Set("npts", esviz.IntValue(500)))
	require.NoError(t, e.Set("Erange", esviz.RangeValue(-3, 3)))
	require.NoError(t, e.Set("Erange", esviz.NilValue()))
}

func TestParseSchemaErrors(t *testing.T) {
	_, err := ParseSchema([]byte("parameters: []"))
	require.Error(t, err)

	_, err = ParseSchema([]byte("parameters:\n  - name: x\n    kind: quaternion"))
	require.Error(t, err)

	//a range parameter that is neither nillable nor defaulted is unusable
	_, err = ParseSchema([]byte("parameters:\n  - name: window\n    kind: range"))
	require.Error(t, err)

	//enum without choices cannot produce a zero value
	_, err = ParseSchema([]byte("parameters:\n  - name: mode\n    kind: enum"))
	require.Error(t, err)
}
